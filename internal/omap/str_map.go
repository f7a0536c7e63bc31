package omap

import "sort"

// StrMap is an insertion-ordered map keyed by string, backing BYML's Hash
// node (§3.4, §4.2). Unlike U32Map, a second Set of an existing key is a
// normal overwrite: BYML hash keys are compared by their full string
// content, so there is no hidden-collision ambiguity the way there is
// for a 32-bit Name hash.
type StrMap[V any] struct {
	index map[string]int
	keys  []string
	vals  []V
}

// NewStrMap creates an empty StrMap.
func NewStrMap[V any]() *StrMap[V] {
	return &StrMap[V]{index: make(map[string]int)}
}

// Len returns the number of entries.
func (m *StrMap[V]) Len() int { return len(m.keys) }

// IsEmpty reports whether the map has no entries.
func (m *StrMap[V]) IsEmpty() bool { return len(m.keys) == 0 }

// Get returns the value for key and whether it was present.
func (m *StrMap[V]) Get(key string) (V, bool) {
	if i, ok := m.index[key]; ok {
		return m.vals[i], true
	}

	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *StrMap[V]) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Set inserts or overwrites the value for key, preserving the original
// insertion position on overwrite.
func (m *StrMap[V]) Set(key string, val V) {
	if i, exists := m.index[key]; exists {
		m.vals[i] = val
		return
	}

	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Delete removes key if present, preserving the relative order of the
// remaining entries.
func (m *StrMap[V]) Delete(key string) {
	i, exists := m.index[key]
	if !exists {
		return
	}

	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.index, key)
	for k, idx := range m.index {
		if idx > i {
			m.index[k] = idx - 1
		}
	}
}

// Keys returns the keys in insertion order. The returned slice must not
// be mutated by the caller.
func (m *StrMap[V]) Keys() []string { return m.keys }

// SortedKeys returns the keys sorted ascending by byte value, the order
// BYML's writer emits hash entries in (§4.2 "sorted ascending by
// key-string comparison").
func (m *StrMap[V]) SortedKeys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	sort.Strings(out)

	return out
}

// Each calls fn for every entry in insertion order.
func (m *StrMap[V]) Each(fn func(key string, val V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// EachSorted calls fn for every entry ordered ascending by key.
func (m *StrMap[V]) EachSorted(fn func(key string, val V)) {
	for _, k := range m.SortedKeys() {
		v, _ := m.Get(k)
		fn(k, v)
	}
}

// Package omap provides the insertion-ordered mapping used by the AAMP
// tree (ParameterObject's parameters and ParameterList's child lists and
// objects, all keyed by a 32-bit Name hash) and by the BYML tree (Hash,
// keyed by string).
//
// Both maps preserve insertion order for construction ergonomics, as
// recommended by spec §9 "Insertion-ordered maps", but support an
// ascending-sorted-keys view for emission (§3.3 "on write their entries
// are emitted sorted by Name's hash", §4.2 "Entries are sorted ascending
// by key-string comparison"). The shape — a Go native map for O(1) lookup
// plus a parallel insertion-order slice — mirrors the teacher's own
// collision.Tracker (map[uint64]string + []string), just parameterized
// over the map's value type.
package omap

import "sort"

// U32Map is an insertion-ordered map keyed by a uint32 (an AAMP Name's
// raw hash). A second insert of an existing key is rejected by Insert —
// spec §8's "hash keys that collide ... must be rejected on insert with
// a precondition error" — since the original source string behind a Name
// is never retained, there is no way to tell a genuine CRC collision
// between two different names apart from a duplicate insert of the same
// name, so both are treated identically: reject.
type U32Map[V any] struct {
	index map[uint32]int
	keys  []uint32
	vals  []V
}

// NewU32Map creates an empty U32Map.
func NewU32Map[V any]() *U32Map[V] {
	return &U32Map[V]{index: make(map[uint32]int)}
}

// Len returns the number of entries.
func (m *U32Map[V]) Len() int { return len(m.keys) }

// IsEmpty reports whether the map has no entries.
func (m *U32Map[V]) IsEmpty() bool { return len(m.keys) == 0 }

// Get returns the value for key and whether it was present.
func (m *U32Map[V]) Get(key uint32) (V, bool) {
	if i, ok := m.index[key]; ok {
		return m.vals[i], true
	}

	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *U32Map[V]) Has(key uint32) bool {
	_, ok := m.index[key]
	return ok
}

// Insert adds a new key/value pair, returning false if key is already
// present (the caller should treat that as a precondition error).
func (m *U32Map[V]) Insert(key uint32, val V) bool {
	if _, exists := m.index[key]; exists {
		return false
	}

	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)

	return true
}

// Set inserts or overwrites the value for key, preserving the original
// insertion position on overwrite.
func (m *U32Map[V]) Set(key uint32, val V) {
	if i, exists := m.index[key]; exists {
		m.vals[i] = val
		return
	}

	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Keys returns the keys in insertion order. The returned slice must not
// be mutated by the caller.
func (m *U32Map[V]) Keys() []uint32 { return m.keys }

// SortedKeys returns the keys sorted ascending by raw hash value, the
// order AAMP's writer emits records in (§3.3, §4.1).
func (m *U32Map[V]) SortedKeys() []uint32 {
	out := make([]uint32, len(m.keys))
	copy(out, m.keys)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Each calls fn for every entry in insertion order.
func (m *U32Map[V]) Each(fn func(key uint32, val V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// EachSorted calls fn for every entry ordered ascending by key.
func (m *U32Map[V]) EachSorted(fn func(key uint32, val V)) {
	for _, k := range m.SortedKeys() {
		v, _ := m.Get(k)
		fn(k, v)
	}
}

package omap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU32Map_InsertGet(t *testing.T) {
	m := NewU32Map[string]()

	require.True(t, m.Insert(3, "three"))
	require.True(t, m.Insert(1, "one"))
	require.True(t, m.Insert(2, "two"))

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = m.Get(99)
	assert.False(t, ok)
}

func TestU32Map_InsertDuplicateRejected(t *testing.T) {
	m := NewU32Map[int]()

	require.True(t, m.Insert(42, 1))
	require.False(t, m.Insert(42, 2))

	v, _ := m.Get(42)
	assert.Equal(t, 1, v, "rejected insert must not overwrite")
}

func TestU32Map_Set_Overwrites(t *testing.T) {
	m := NewU32Map[int]()
	m.Set(1, 10)
	m.Set(1, 20)

	assert.Equal(t, 1, m.Len())
	v, _ := m.Get(1)
	assert.Equal(t, 20, v)
}

func TestU32Map_KeysPreservesInsertionOrder(t *testing.T) {
	m := NewU32Map[int]()
	m.Insert(5, 0)
	m.Insert(1, 0)
	m.Insert(3, 0)

	assert.Equal(t, []uint32{5, 1, 3}, m.Keys())
}

func TestU32Map_SortedKeysAscending(t *testing.T) {
	m := NewU32Map[int]()
	m.Insert(5, 0)
	m.Insert(1, 0)
	m.Insert(3, 0)

	assert.Equal(t, []uint32{1, 3, 5}, m.SortedKeys())
	// Insertion order must be unaffected by the sorted view.
	assert.Equal(t, []uint32{5, 1, 3}, m.Keys())
}

func TestU32Map_EachSorted(t *testing.T) {
	m := NewU32Map[string]()
	m.Insert(30, "c")
	m.Insert(10, "a")
	m.Insert(20, "b")

	var got []string
	m.EachSorted(func(key uint32, val string) {
		got = append(got, val)
	})

	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestU32Map_EmptyState(t *testing.T) {
	m := NewU32Map[int]()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
}

package byml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByml_ScalarConstructorsAndAccessors(t *testing.T) {
	b := NewBool(true)
	v, ok := b.AsBool()
	require.True(t, ok)
	assert.True(t, v)

	i := NewI32(-7)
	iv, ok := i.AsI32()
	require.True(t, ok)
	assert.Equal(t, int32(-7), iv)

	u := NewU32(42)
	uv, ok := u.AsU32()
	require.True(t, ok)
	assert.Equal(t, uint32(42), uv)

	i64 := NewI64(-9999999999)
	i64v, ok := i64.AsI64()
	require.True(t, ok)
	assert.Equal(t, int64(-9999999999), i64v)

	u64 := NewU64(0xDEADBEEFCAFEBABE)
	u64v, ok := u64.AsU64()
	require.True(t, ok)
	assert.Equal(t, uint64(0xDEADBEEFCAFEBABE), u64v)

	f := NewFloat(1.5)
	fv, ok := f.AsFloat()
	require.True(t, ok)
	assert.Equal(t, float32(1.5), fv)

	d := NewDouble(3.25)
	dv, ok := d.AsDouble()
	require.True(t, ok)
	assert.Equal(t, 3.25, dv)

	s := NewString("hello")
	sv, ok := s.AsString()
	require.True(t, ok)
	assert.Equal(t, "hello", sv)

	bin := NewBinaryData([]byte{1, 2, 3})
	binv, ok := bin.AsBinaryData()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, binv)
}

func TestByml_Null(t *testing.T) {
	n := Null()
	assert.True(t, n.IsNull())
	assert.False(t, NewI32(0).IsNull())
}

func TestByml_WrongAccessorFails(t *testing.T) {
	b := NewI32(1)
	_, ok := b.AsBool()
	assert.False(t, ok)
}

func TestByml_HashSetAndGet(t *testing.T) {
	h := NewHash()
	h.Set("b", NewI32(2))
	h.Set("a", NewI32(1))

	m, ok := h.AsHash()
	require.True(t, ok)
	require.Equal(t, 2, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	iv, _ := v.AsI32()
	assert.Equal(t, int32(1), iv)

	assert.Equal(t, []string{"a", "b"}, m.SortedKeys())
}

func TestByml_ArrayConstructor(t *testing.T) {
	arr := NewArray([]Byml{NewI32(1), NewI32(2), NewI32(3)})
	items, ok := arr.AsArray()
	require.True(t, ok)
	require.Len(t, items, 3)

	v, _ := items[1].AsI32()
	assert.Equal(t, int32(2), v)
}

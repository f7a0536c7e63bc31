package aamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchtoolbox/paramio/format"
)

func TestParameter_BoolRoundTrip(t *testing.T) {
	p := NewBool(true)
	v, ok := p.AsBool()
	require.True(t, ok)
	assert.True(t, v)

	_, ok = p.AsInt()
	assert.False(t, ok)
}

func TestParameter_NumericKinds(t *testing.T) {
	f, ok := NewF32(1.5).AsF32()
	require.True(t, ok)
	assert.Equal(t, float32(1.5), f)

	i, ok := NewInt(-7).AsInt()
	require.True(t, ok)
	assert.Equal(t, int32(-7), i)

	u, ok := NewU32(42).AsU32()
	require.True(t, ok)
	assert.Equal(t, uint32(42), u)
}

func TestParameter_VectorKinds(t *testing.T) {
	v2, ok := NewVec2(Vec2{X: 1, Y: 2}).AsVec2()
	require.True(t, ok)
	assert.Equal(t, Vec2{X: 1, Y: 2}, v2)

	v3, ok := NewVec3(Vec3{X: 1, Y: 2, Z: 3}).AsVec3()
	require.True(t, ok)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, v3)

	v4, ok := NewVec4(Vec4{X: 1, Y: 2, Z: 3, W: 4}).AsVec4()
	require.True(t, ok)
	assert.Equal(t, Vec4{X: 1, Y: 2, Z: 3, W: 4}, v4)

	c, ok := NewColor(Color{R: 1, G: 1, B: 1, A: 1}).AsColor()
	require.True(t, ok)
	assert.Equal(t, Color{R: 1, G: 1, B: 1, A: 1}, c)

	q, ok := NewQuat(Quat{X: 0, Y: 0, Z: 0, W: 1}).AsQuat()
	require.True(t, ok)
	assert.Equal(t, Quat{X: 0, Y: 0, Z: 0, W: 1}, q)
}

func TestParameter_StringKinds(t *testing.T) {
	for _, p := range []Parameter{
		NewString32("a"),
		NewString64("b"),
		NewString256("c"),
		NewStringRef("d"),
	} {
		_, ok := p.AsString()
		assert.True(t, ok, p.Kind.String())
	}

	_, ok := NewBool(true).AsString()
	assert.False(t, ok)
}

func TestParameter_BufferKinds(t *testing.T) {
	bi, ok := NewBufferInt([]int32{1, 2, 3}).AsBufferInt()
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3}, bi)

	bf, ok := NewBufferF32([]F32{1, 2}).AsBufferF32()
	require.True(t, ok)
	assert.Equal(t, []F32{1, 2}, bf)

	bu, ok := NewBufferU32([]uint32{1, 2}).AsBufferU32()
	require.True(t, ok)
	assert.Equal(t, []uint32{1, 2}, bu)

	bb, ok := NewBufferBinary([]byte{0xde, 0xad}).AsBufferBinary()
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad}, bb)
}

func TestParameter_CurveKinds(t *testing.T) {
	c := Curve{Lanes: []SubCurve{{IntA: 1, IntB: 2}}}
	for _, p := range []Parameter{NewCurve1(c), NewCurve2(c), NewCurve3(c), NewCurve4(c)} {
		got, ok := p.AsCurve()
		require.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := NewBool(true).AsCurve()
	assert.False(t, ok)
}

func TestFixedCapacityFor(t *testing.T) {
	cap32, err := fixedCapacityFor(format.AampString32)
	require.NoError(t, err)
	assert.Equal(t, 32, cap32)

	cap64, err := fixedCapacityFor(format.AampString64)
	require.NoError(t, err)
	assert.Equal(t, 64, cap64)

	cap256, err := fixedCapacityFor(format.AampString256)
	require.NoError(t, err)
	assert.Equal(t, 256, cap256)

	_, err = fixedCapacityFor(format.AampBool)
	assert.Error(t, err)
}

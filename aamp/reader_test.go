package aamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchtoolbox/paramio/errs"
)

func buildSampleTree() *ParameterIO {
	pio := NewParameterIO()
	pio.DataType = "xml"

	nested := NewParameterList()
	nestedObj := NewParameterObject()
	nestedObj.Insert(NewName("Nested"), NewInt(42))
	nested.InsertObject(NewName("NestedObj"), nestedObj)
	pio.Root.InsertList(NewName("NestedList"), nested)

	obj := NewParameterObject()
	obj.Insert(NewName("BoolVal"), NewBool(true))
	obj.Insert(NewName("F32Val"), NewF32(3.5))
	obj.Insert(NewName("IntVal"), NewInt(-9))
	obj.Insert(NewName("U32Val"), NewU32(9))
	obj.Insert(NewName("Vec2Val"), NewVec2(Vec2{X: 1, Y: 2}))
	obj.Insert(NewName("Vec3Val"), NewVec3(Vec3{X: 1, Y: 2, Z: 3}))
	obj.Insert(NewName("Vec4Val"), NewVec4(Vec4{X: 1, Y: 2, Z: 3, W: 4}))
	obj.Insert(NewName("ColorVal"), NewColor(Color{R: 1, G: 0, B: 0, A: 1}))
	obj.Insert(NewName("QuatVal"), NewQuat(Quat{X: 0, Y: 0, Z: 0, W: 1}))
	obj.Insert(NewName("Str32"), NewString32("short"))
	obj.Insert(NewName("Str64"), NewString64("medium length string"))
	obj.Insert(NewName("Str256"), NewString256("a longer string value"))
	obj.Insert(NewName("StrRef"), NewStringRef("variable length"))
	obj.Insert(NewName("BufInt"), NewBufferInt([]int32{1, -2, 3}))
	obj.Insert(NewName("BufF32"), NewBufferF32([]F32{1.5, 2.5}))
	obj.Insert(NewName("BufU32"), NewBufferU32([]uint32{1, 2, 3, 4}))
	obj.Insert(NewName("BufBin"), NewBufferBinary([]byte{1, 2, 3, 4, 5}))
	obj.Insert(NewName("Curve1"), NewCurve1(Curve{Lanes: []SubCurve{{IntA: 1, IntB: 2}}}))
	obj.Insert(NewName("Curve2"), NewCurve2(Curve{Lanes: []SubCurve{{}, {}}}))
	obj.Insert(NewName("Curve3"), NewCurve3(Curve{Lanes: []SubCurve{{}, {}, {}}}))
	obj.Insert(NewName("Curve4"), NewCurve4(Curve{Lanes: []SubCurve{{}, {}, {}, {}}}))
	pio.Root.InsertObject(NewName("AllTypes"), obj)

	return pio
}

func TestAAMP_RoundTripAllTypes(t *testing.T) {
	pio := buildSampleTree()

	b, err := EmitAAMP(pio)
	require.NoError(t, err)

	decoded, err := ParseAAMP(b)
	require.NoError(t, err)

	assertTreesEqual(t, pio, decoded)
}

func TestAAMP_DecodeEncodeDecodeIsStable(t *testing.T) {
	pio := buildSampleTree()

	b1, err := EmitAAMP(pio)
	require.NoError(t, err)

	decoded1, err := ParseAAMP(b1)
	require.NoError(t, err)

	b2, err := EmitAAMP(decoded1)
	require.NoError(t, err)

	decoded2, err := ParseAAMP(b2)
	require.NoError(t, err)

	assertTreesEqual(t, decoded1, decoded2)
}

func TestParseAAMP_BoolScenarioRoundTrip(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	obj.Insert(NewName("Foo"), NewBool(true))
	pio.Root.InsertObject(NewName("TestContent"), obj)

	b, err := EmitAAMP(pio)
	require.NoError(t, err)

	decoded, err := ParseAAMP(b)
	require.NoError(t, err)

	b2, err := EmitAAMP(decoded)
	require.NoError(t, err)
	assert.Equal(t, b, b2)
}

func TestParseAAMP_RejectsBadMagic(t *testing.T) {
	b := make([]byte, headerSize)
	copy(b, "XXXX")
	_, err := ParseAAMP(b)
	assert.Error(t, err)
}

func TestParseAAMP_RejectsShortBuffer(t *testing.T) {
	_, err := ParseAAMP([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestParseAAMP_RejectsUnsupportedVersion(t *testing.T) {
	pio := NewParameterIO()
	b, err := EmitAAMP(pio)
	require.NoError(t, err)

	b[4] = 99
	_, err = ParseAAMP(b)
	assert.Error(t, err)
}

func TestParseAAMP_RejectsNonUTF8FixedString(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	require.True(t, obj.Insert(NewName("Str"), NewString32("ok")))
	require.True(t, pio.Root.InsertObject(NewName("obj"), obj))

	b, err := EmitAAMP(pio)
	require.NoError(t, err)

	dataBase := headerSize + listRecordSize + objectRecordSize + paramRecordSize
	b[dataBase] = 0xFF // invalid UTF-8 lead byte, followed by the field's zero padding

	_, err = ParseAAMP(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrBadString)
}

func assertTreesEqual(t *testing.T, a, b *ParameterIO) {
	t.Helper()
	assert.Equal(t, a.Version, b.Version)
	assert.Equal(t, a.DataType, b.DataType)
	assertListsEqual(t, a.Root, b.Root)
}

func assertListsEqual(t *testing.T, a, b *ParameterList) {
	t.Helper()
	require.Equal(t, a.ListCount(), b.ListCount())
	require.Equal(t, a.ObjectCount(), b.ObjectCount())

	a.EachListSorted(func(name Name, child *ParameterList) {
		other, ok := b.List(name)
		require.True(t, ok)
		assertListsEqual(t, child, other)
	})

	a.EachObjectSorted(func(name Name, child *ParameterObject) {
		other, ok := b.Object(name)
		require.True(t, ok)
		assertObjectsEqual(t, child, other)
	})
}

func assertObjectsEqual(t *testing.T, a, b *ParameterObject) {
	t.Helper()
	require.Equal(t, a.Len(), b.Len())

	a.EachSorted(func(name Name, p Parameter) {
		other, ok := b.Get(name)
		require.True(t, ok)
		assert.Equal(t, p.Kind, other.Kind)
		assertParamValuesEqual(t, p, other)
	})
}

func assertParamValuesEqual(t *testing.T, a, b Parameter) {
	t.Helper()

	switch v, ok := a.AsBool(); ok {
	case true:
		got, _ := b.AsBool()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsF32(); ok {
		got, _ := b.AsF32()
		assert.InDelta(t, v, got, 1e-9)

		return
	}

	if v, ok := a.AsInt(); ok {
		got, _ := b.AsInt()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsU32(); ok {
		got, _ := b.AsU32()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsVec2(); ok {
		got, _ := b.AsVec2()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsVec3(); ok {
		got, _ := b.AsVec3()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsVec4(); ok {
		got, _ := b.AsVec4()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsColor(); ok {
		got, _ := b.AsColor()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsQuat(); ok {
		got, _ := b.AsQuat()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsString(); ok {
		got, _ := b.AsString()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsCurve(); ok {
		got, _ := b.AsCurve()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsBufferInt(); ok {
		got, _ := b.AsBufferInt()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsBufferF32(); ok {
		got, _ := b.AsBufferF32()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsBufferU32(); ok {
		got, _ := b.AsBufferU32()
		assert.Equal(t, v, got)

		return
	}

	if v, ok := a.AsBufferBinary(); ok {
		got, _ := b.AsBufferBinary()
		assert.Equal(t, v, got)

		return
	}

	t.Fatalf("unhandled parameter kind %s", a.Kind)
}

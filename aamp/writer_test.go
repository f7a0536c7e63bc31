package aamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/internal/u24"
)

func TestEmitAAMP_BoolScenario(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	require.True(t, obj.Insert(NewName("Foo"), NewBool(true)))
	require.True(t, pio.Root.InsertObject(NewName("TestContent"), obj))

	b, err := EmitAAMP(pio)
	require.NoError(t, err)

	// header + root list record + one object record + one parameter
	// record + 4-byte value + data-type string ("xml\0").
	assert.Equal(t, headerSize+listRecordSize+objectRecordSize+paramRecordSize+4+4, len(b))
	assert.Equal(t, "AAMP", string(b[0:4]))
}

func TestEmitAAMP_Deterministic(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	obj.Insert(NewName("a"), NewInt(1))
	obj.Insert(NewName("b"), NewF32(2.5))
	pio.Root.InsertObject(NewName("obj"), obj)

	b1, err := EmitAAMP(pio)
	require.NoError(t, err)
	b2, err := EmitAAMP(pio)
	require.NoError(t, err)

	assert.Equal(t, b1, b2)
}

func TestEmitAAMP_BufferF32Scenario(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	obj.Insert(NewName("buf"), NewBufferF32([]F32{1.0, 2.0}))
	pio.Root.InsertObject(NewName("obj"), obj)

	b, err := EmitAAMP(pio)
	require.NoError(t, err)

	dataBase := headerSize + listRecordSize + objectRecordSize + paramRecordSize
	// length prefix 2 immediately precedes the two floats.
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, b[dataBase:dataBase+4])
}

func TestEmitAAMP_SortsChildrenByNameHash(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	obj.Insert(Name(300), NewInt(3))
	obj.Insert(Name(100), NewInt(1))
	obj.Insert(Name(200), NewInt(2))
	pio.Root.InsertObject(NewName("obj"), obj)

	lay, err := layoutTree(pio)
	require.NoError(t, err)

	var names []uint32
	for _, p := range lay.params {
		names = append(names, p.name.Hash())
	}
	assert.Equal(t, []uint32{100, 200, 300}, names)
}

func TestPlaceValue_StringsDeduplicated(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	obj.Insert(Name(1), NewString32("hello"))
	obj.Insert(Name(2), NewString32("hello"))
	pio.Root.InsertObject(NewName("obj"), obj)

	lay, err := layoutTree(pio)
	require.NoError(t, err)
	assert.Equal(t, lay.params[0].dataOffset, lay.params[1].dataOffset)
}

func TestPlaceValue_BuffersDeduplicated(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()
	obj.Insert(Name(1), NewBufferInt([]int32{1, 2, 3}))
	obj.Insert(Name(2), NewBufferInt([]int32{1, 2, 3}))
	pio.Root.InsertObject(NewName("obj"), obj)

	lay, err := layoutTree(pio)
	require.NoError(t, err)
	assert.Equal(t, lay.params[0].dataOffset, lay.params[1].dataOffset)
}

func TestEncodeFixedString_OverflowRejected(t *testing.T) {
	long := make([]byte, 40)
	for i := range long {
		long[i] = 'x'
	}

	_, err := encodeFixedString(nil, FixedSafeString{Cap: 32, Value: string(long)})
	assert.Error(t, err)
}

func TestEmitAAMP_RejectsOffsetBeyond24Bits(t *testing.T) {
	pio := NewParameterIO()
	obj := NewParameterObject()

	// Padding large enough that the second parameter's data-section
	// offset, expressed in 4-byte units, no longer fits in 24 bits
	// (u24.Max == 16777215).
	padding := make([]int32, u24.Max+8)
	require.True(t, obj.Insert(NewName("padding"), NewBufferInt(padding)))
	require.True(t, obj.Insert(NewName("tail"), NewInt(1)))
	require.True(t, pio.Root.InsertObject(NewName("obj"), obj))

	_, err := EmitAAMP(pio)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidData)
}

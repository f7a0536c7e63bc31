package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 64, bb.Cap())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWrite([]byte("AAMP"))

	assert.Equal(t, []byte("AAMP"), bb.Bytes())
	assert.Equal(t, 4, bb.Len())
}

func TestByteBuffer_SetLength_ZeroExtends(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWrite([]byte{1, 2, 3})
	bb.SetLength(6)

	assert.Equal(t, []byte{1, 2, 3, 0, 0, 0}, bb.Bytes())

	bb.SetLength(2)
	assert.Equal(t, []byte{1, 2}, bb.Bytes())
}

func TestByteBuffer_Grow_NoReallocWhenSufficient(t *testing.T) {
	bb := NewByteBuffer(128)
	before := bb.Cap()
	bb.Grow(64)
	assert.Equal(t, before, bb.Cap())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("data"))
	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBufferPool_GetPut(t *testing.T) {
	pool := NewByteBufferPool(32, 256)

	bb := pool.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("hello"))
	pool.Put(bb)

	bb2 := pool.Get()
	require.NotNil(t, bb2)
	assert.Equal(t, 0, bb2.Len())
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	pool := NewByteBufferPool(8, 16)

	bb := pool.Get()
	bb.Grow(1024)
	pool.Put(bb)

	bb2 := pool.Get()
	assert.LessOrEqual(t, bb2.Cap(), 16)
}

func TestArenaBufferPool(t *testing.T) {
	bb := GetArenaBuffer()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("param_root"))
	PutArenaBuffer(bb)
}

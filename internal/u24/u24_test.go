package u24

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/switchtoolbox/paramio/internal/endian"
)

func TestPutGet_LittleEndian(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	b := make([]byte, 3)

	Put(b, 0x00ABCDEF&Max, engine)
	assert.Equal(t, uint32(0xABCDEF), Get(b, engine))
}

func TestPutGet_BigEndian(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	b := make([]byte, 3)

	Put(b, 0x123456, engine)
	assert.Equal(t, uint32(0x123456), Get(b, engine))
}

func TestMaxValue(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	b := make([]byte, 3)

	Put(b, Max, engine)
	assert.Equal(t, uint32(Max), Get(b, engine))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, b)
}

func TestFits(t *testing.T) {
	assert.True(t, Fits(0))
	assert.True(t, Fits(Max))
	assert.False(t, Fits(Max+1))
}

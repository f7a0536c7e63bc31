package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLittleEndianEngine(t *testing.T) {
	assert.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
}

func TestGetBigEndianEngine(t *testing.T) {
	assert.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestForFlag(t *testing.T) {
	assert.Equal(t, binary.BigEndian, ForFlag(true))
	assert.Equal(t, binary.LittleEndian, ForFlag(false))
}

func TestEndianEngine_RoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := make([]byte, 4)
		engine.PutUint32(buf, 0xDEADBEEF)
		assert.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))

		appended := engine.AppendUint32(nil, 0x01020304)
		assert.Equal(t, uint32(0x01020304), engine.Uint32(appended))
	}
}

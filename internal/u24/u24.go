// Package u24 provides the 24-bit unsigned integer helper the AAMP writer
// needs for its relative-offset fields. Go has no native 24-bit integer,
// so paramio stores these as uint32 in memory and packs/unpacks the
// low 3 bytes on the wire.
package u24

import "github.com/switchtoolbox/paramio/internal/endian"

// Max is the largest value representable in 24 bits.
const Max = 1<<24 - 1

// Put writes the low 24 bits of v into b[0:3] using engine's byte order.
// Panics if len(b) < 3.
func Put(b []byte, v uint32, engine endian.EndianEngine) {
	var tmp [4]byte
	engine.PutUint32(tmp[:], v)
	if engine == endian.GetBigEndianEngine() {
		copy(b, tmp[1:4])
	} else {
		copy(b, tmp[0:3])
	}
}

// Get reads a 24-bit unsigned integer from b[0:3] using engine's byte
// order, zero-extended to uint32. Panics if len(b) < 3.
func Get(b []byte, engine endian.EndianEngine) uint32 {
	var tmp [4]byte
	if engine == endian.GetBigEndianEngine() {
		copy(tmp[1:4], b[0:3])
	} else {
		copy(tmp[0:3], b[0:3])
	}

	return engine.Uint32(tmp[:])
}

// Fits reports whether v can be represented in 24 bits.
func Fits(v uint32) bool {
	return v <= Max
}

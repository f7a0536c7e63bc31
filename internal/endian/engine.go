// Package endian provides the byte-order abstraction shared by the BYML
// codec (§4.2 selects endianness per-encode from a caller flag) and the
// AAMP writer (always little-endian; it passes the little-endian engine
// to internal/u24 for its 24-bit offset fields).
//
// This extends the standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into a single EndianEngine interface,
// satisfied directly by binary.LittleEndian and binary.BigEndian.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface, satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForFlag returns the big-endian engine when bigEndian is true, otherwise
// the little-endian one. Mirrors the BYML header's magic-byte selection
// ("BY" = big endian, "YB" = little endian).
func ForFlag(bigEndian bool) EndianEngine {
	if bigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// Package aamp implements the AAMP parameter-archive tree model and
// binary codec (spec §3.1-§3.3, §4.1): a three-level hierarchy of
// ParameterList, ParameterObject, and Parameter, keyed throughout by
// Name, a CRC-32 hash of the original (and now discarded) string key.
package aamp

import "hash/crc32"

// Name is the CRC-32/ISO-HDLC hash of an AAMP key string. It is the sole
// identifier used throughout the tree: the string a Name was built from
// is never retained (spec §9 "Name is opaque").
type Name uint32

// ParamRootName is the Name of the root ParameterList of every
// ParameterIO, hash_name("param_root").
var ParamRootName = Name(HashName("param_root"))

// HashName computes the CRC-32/ISO-HDLC hash used as an AAMP Name.
// hash/crc32's IEEE table is exactly this polynomial (0xEDB88320,
// reflected input/output, initial and final value 0xFFFFFFFF), so no
// hand-rolled bit loop is needed.
//
// Go has no general compile-time-evaluable function the way Rust's
// `const fn` is, so unlike the original this is a plain function — safe
// to call from any `var` initializer (see ParamRootName above), just not
// from inside a Go `const` expression.
func HashName(s string) uint32 {
	return crc32.ChecksumIEEE([]byte(s))
}

// NewName builds a Name by hashing s.
func NewName(s string) Name {
	return Name(HashName(s))
}

// Hash returns the raw CRC-32 hash.
func (n Name) Hash() uint32 {
	return uint32(n)
}

// String renders the Name as its hex hash, since the source string
// cannot be recovered.
func (n Name) String() string {
	const hexDigits = "0123456789abcdef"
	b := [10]byte{'0', 'x'}
	v := uint32(n)
	for i := 9; i >= 2; i-- {
		b[i] = hexDigits[v&0xF]
		v >>= 4
	}

	return string(b[:])
}

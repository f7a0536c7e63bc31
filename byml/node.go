// Package byml implements the BYML tagged-tree document model and its
// binary and YAML-text codecs (spec §3.4, §4.2, §4.3): a graph of
// arrays, hashes, strings, typed scalars, and binary blobs.
package byml

import (
	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
	"github.com/switchtoolbox/paramio/internal/omap"
)

// Byml is a BYML tree node: a tagged union over the 12 kinds in §3.4.
// Integer and float widths are distinct tags, never coerced into each
// other, since width is a semantic property of the source data.
type Byml struct {
	kind format.BymlType

	boolValue bool
	i32Value  int32
	u32Value  uint32
	i64Value  int64
	u64Value  uint64
	f32Value  float32
	f64Value  float64
	strValue  string
	binValue  []byte
	arrValue  []Byml
	hashValue *omap.StrMap[Byml]
}

// Kind returns the node's tag.
func (b Byml) Kind() format.BymlType { return b.kind }

// IsNull reports whether b is the Null node.
func (b Byml) IsNull() bool { return b.kind == format.BymlNull }

// Null builds the Null node.
func Null() Byml { return Byml{kind: format.BymlNull} }

// NewBool builds a Bool node.
func NewBool(v bool) Byml { return Byml{kind: format.BymlBool, boolValue: v} }

// NewI32 builds an I32 node.
func NewI32(v int32) Byml { return Byml{kind: format.BymlI32, i32Value: v} }

// NewU32 builds a U32 node.
func NewU32(v uint32) Byml { return Byml{kind: format.BymlU32, u32Value: v} }

// NewI64 builds an I64 node.
func NewI64(v int64) Byml { return Byml{kind: format.BymlI64, i64Value: v} }

// NewU64 builds a U64 node.
func NewU64(v uint64) Byml { return Byml{kind: format.BymlU64, u64Value: v} }

// NewFloat builds a single-precision Float node.
func NewFloat(v float32) Byml { return Byml{kind: format.BymlF32, f32Value: v} }

// NewDouble builds a double-precision Double node.
func NewDouble(v float64) Byml { return Byml{kind: format.BymlF64, f64Value: v} }

// NewString builds a String node.
func NewString(s string) Byml { return Byml{kind: format.BymlString, strValue: s} }

// NewBinaryData builds a BinaryData node.
func NewBinaryData(b []byte) Byml { return Byml{kind: format.BymlBinary, binValue: b} }

// NewArray builds an Array node from items, preserving their order.
func NewArray(items []Byml) Byml { return Byml{kind: format.BymlArray, arrValue: items} }

// NewHash builds an empty Hash node.
func NewHash() Byml {
	return Byml{kind: format.BymlHash, hashValue: omap.NewStrMap[Byml]()}
}

// AsBool returns the Bool payload and whether Kind matches.
func (b Byml) AsBool() (bool, bool) { return b.boolValue, b.kind == format.BymlBool }

// AsI32 returns the I32 payload and whether Kind matches.
func (b Byml) AsI32() (int32, bool) { return b.i32Value, b.kind == format.BymlI32 }

// AsU32 returns the U32 payload and whether Kind matches.
func (b Byml) AsU32() (uint32, bool) { return b.u32Value, b.kind == format.BymlU32 }

// AsI64 returns the I64 payload and whether Kind matches.
func (b Byml) AsI64() (int64, bool) { return b.i64Value, b.kind == format.BymlI64 }

// AsU64 returns the U64 payload and whether Kind matches.
func (b Byml) AsU64() (uint64, bool) { return b.u64Value, b.kind == format.BymlU64 }

// AsFloat returns the Float payload and whether Kind matches.
func (b Byml) AsFloat() (float32, bool) { return b.f32Value, b.kind == format.BymlF32 }

// AsDouble returns the Double payload and whether Kind matches.
func (b Byml) AsDouble() (float64, bool) { return b.f64Value, b.kind == format.BymlF64 }

// AsString returns the String payload and whether Kind matches.
func (b Byml) AsString() (string, bool) { return b.strValue, b.kind == format.BymlString }

// AsBinaryData returns the BinaryData payload and whether Kind matches.
func (b Byml) AsBinaryData() ([]byte, bool) { return b.binValue, b.kind == format.BymlBinary }

// AsArray returns the Array payload and whether Kind matches.
func (b Byml) AsArray() ([]Byml, bool) { return b.arrValue, b.kind == format.BymlArray }

// AsHash returns the underlying ordered map and whether Kind matches.
func (b Byml) AsHash() (*omap.StrMap[Byml], bool) { return b.hashValue, b.kind == format.BymlHash }

// Set inserts or overwrites key in a Hash node. Panics if called on a
// non-Hash node, the same contract omap.StrMap itself exposes for a nil
// receiver: callers are expected to check Kind first.
func (b Byml) Set(key string, val Byml) {
	if b.kind != format.BymlHash {
		panic("byml: Set called on a non-Hash node")
	}

	b.hashValue.Set(key, val)
}

// Append adds an item to an Array node in place. Panics if called on a
// non-Array node.
func (b *Byml) Append(item Byml) {
	if b.kind != format.BymlArray {
		panic("byml: Append called on a non-Array node")
	}

	b.arrValue = append(b.arrValue, item)
}

// requireKind returns an InvalidData error naming the mismatch, used by
// callers that need a recoverable error rather than AsX's boolean form.
func requireKind(b Byml, want format.BymlType) error {
	if b.kind != want {
		return errs.InvalidData("expected %s node, got %s", want, b.kind)
	}

	return nil
}

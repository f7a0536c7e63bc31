// Package format defines the wire-level type-tag enums shared by the AAMP
// and BYML codecs: the AAMP parameter Type byte (§4.1) and the BYML node
// type byte (§4.2). Keeping them in one small package, each with a
// String() method, mirrors how a type-tag byte is handled elsewhere in
// this codebase's ancestry.
package format

// AampType is the one-byte type tag stored in an AAMP ResParameter record,
// identifying which of the 21 Parameter variants follows.
type AampType uint8

const (
	AampBool AampType = iota
	AampF32
	AampInt
	AampVec2
	AampVec3
	AampVec4
	AampColor
	AampString32
	AampString64
	AampCurve1
	AampCurve2
	AampCurve3
	AampCurve4
	AampBufferInt
	AampBufferF32
	AampString256
	AampQuat
	AampU32
	AampBufferU32
	AampBufferBinary
	AampStringRef
)

func (t AampType) String() string {
	switch t {
	case AampBool:
		return "Bool"
	case AampF32:
		return "F32"
	case AampInt:
		return "Int"
	case AampVec2:
		return "Vec2"
	case AampVec3:
		return "Vec3"
	case AampVec4:
		return "Vec4"
	case AampColor:
		return "Color"
	case AampString32:
		return "String32"
	case AampString64:
		return "String64"
	case AampCurve1:
		return "Curve1"
	case AampCurve2:
		return "Curve2"
	case AampCurve3:
		return "Curve3"
	case AampCurve4:
		return "Curve4"
	case AampBufferInt:
		return "BufferInt"
	case AampBufferF32:
		return "BufferF32"
	case AampString256:
		return "String256"
	case AampQuat:
		return "Quat"
	case AampU32:
		return "U32"
	case AampBufferU32:
		return "BufferU32"
	case AampBufferBinary:
		return "BufferBinary"
	case AampStringRef:
		return "StringRef"
	default:
		return "Unknown"
	}
}

// IsBuffer reports whether the type is one of the four length-prefixed
// buffer variants (§3.2).
func (t AampType) IsBuffer() bool {
	switch t {
	case AampBufferInt, AampBufferF32, AampBufferU32, AampBufferBinary:
		return true
	default:
		return false
	}
}

// BymlType is the one-byte node type tag used throughout the BYML binary
// format (§4.2).
type BymlType uint8

const (
	BymlString      BymlType = 0xA0
	BymlBinary      BymlType = 0xA1
	BymlFile        BymlType = 0xA8
	BymlArray       BymlType = 0xC0
	BymlHash        BymlType = 0xC1
	BymlStringTable BymlType = 0xC2
	BymlBool        BymlType = 0xD0
	BymlI32         BymlType = 0xD1
	BymlF32         BymlType = 0xD2
	BymlU32         BymlType = 0xD3
	BymlI64         BymlType = 0xD4
	BymlU64         BymlType = 0xD5
	BymlF64         BymlType = 0xD6
	BymlRawBytes    BymlType = 0xD7
	BymlNull        BymlType = 0xFF
)

func (t BymlType) String() string {
	switch t {
	case BymlString:
		return "String"
	case BymlBinary:
		return "Binary"
	case BymlFile:
		return "File"
	case BymlArray:
		return "Array"
	case BymlHash:
		return "Hash"
	case BymlStringTable:
		return "StringTable"
	case BymlBool:
		return "Bool"
	case BymlI32:
		return "I32"
	case BymlF32:
		return "F32"
	case BymlU32:
		return "U32"
	case BymlI64:
		return "I64"
	case BymlU64:
		return "U64"
	case BymlF64:
		return "F64"
	case BymlRawBytes:
		return "RawBytes"
	case BymlNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// IsWide reports whether a value of this type is stored out-of-line
// (32-bit offset to the value) rather than inline within the 4-byte slot
// that array elements and hash entries reserve. I64/U64/F64 are wide
// because they don't fit in 4 bytes; everything else does (§4.2 "Array").
func (t BymlType) IsWide() bool {
	switch t {
	case BymlI64, BymlU64, BymlF64:
		return true
	default:
		return false
	}
}

// IsIndexed reports whether the inline/offset 4-byte slot for this type
// holds an index into the value-string table rather than a literal value
// or byte offset.
func (t BymlType) IsIndexed() bool {
	return t == BymlString
}

package aamp

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
	"github.com/switchtoolbox/paramio/internal/endian"
)

// headerSize is the fixed AAMP header width (§4.1 "Header").
const headerSize = 0x30

// leEngine is the single byte order AAMP's writer ever emits (§9
// "Endianness").
var leEngine = endian.GetLittleEndianEngine()

const (
	aampMagic           = "AAMP"
	aampVersion  uint32 = 2
	aampFlagsLE  uint32 = 1 << 0
	aampFlagsUTF uint32 = 1 << 1
)

// listRecordSize, objectRecordSize, paramRecordSize are the fixed
// per-record widths from §4.1 "Node records".
const (
	listRecordSize   = 12
	objectRecordSize = 8
	paramRecordSize  = 8
)

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + 3) &^ 3
}

// valueSize returns the data-section byte width a Parameter's payload
// occupies, not counting a buffer's 4-byte length prefix.
func valueSize(p Parameter) (int, error) {
	switch p.Kind {
	case format.AampBool, format.AampF32, format.AampInt, format.AampU32:
		return 4, nil
	case format.AampVec2:
		return 8, nil
	case format.AampVec3:
		return 12, nil
	case format.AampVec4, format.AampColor, format.AampQuat:
		return 16, nil
	case format.AampString32, format.AampString64, format.AampString256:
		width, err := fixedCapacityFor(p.Kind)
		if err != nil {
			return 0, err
		}

		return width, nil
	case format.AampStringRef:
		return align4(len(p.strRef) + 1), nil
	case format.AampCurve1, format.AampCurve2, format.AampCurve3, format.AampCurve4:
		return 128 * len(p.curve.Lanes), nil
	case format.AampBufferInt:
		return len(p.bufInt) * 4, nil
	case format.AampBufferF32:
		return len(p.bufF32) * 4, nil
	case format.AampBufferU32:
		return len(p.bufU32) * 4, nil
	case format.AampBufferBinary:
		return len(p.bufBinary), nil
	default:
		return 0, errs.InvalidData(fmt.Sprintf("unknown parameter kind %d", p.Kind))
	}
}

// encodeValue appends p's value bytes (no buffer length prefix) to dst
// in little-endian, the only byte order AAMP ever writes (§9
// "Endianness").
func encodeValue(dst []byte, p Parameter) ([]byte, error) {
	switch p.Kind {
	case format.AampBool:
		var v uint32
		if p.boolValue {
			v = 1
		}

		return binary.LittleEndian.AppendUint32(dst, v), nil
	case format.AampF32:
		return binary.LittleEndian.AppendUint32(dst, F32Bits(float32(p.f32Value))), nil
	case format.AampInt:
		return binary.LittleEndian.AppendUint32(dst, uint32(p.intValue)), nil
	case format.AampU32:
		return binary.LittleEndian.AppendUint32(dst, p.u32Value), nil
	case format.AampVec2:
		dst = appendF32(dst, p.vec2.X)
		dst = appendF32(dst, p.vec2.Y)

		return dst, nil
	case format.AampVec3:
		dst = appendF32(dst, p.vec3.X)
		dst = appendF32(dst, p.vec3.Y)
		dst = appendF32(dst, p.vec3.Z)

		return dst, nil
	case format.AampVec4:
		return appendVec4(dst, p.vec4), nil
	case format.AampColor:
		dst = appendF32(dst, p.color.R)
		dst = appendF32(dst, p.color.G)
		dst = appendF32(dst, p.color.B)
		dst = appendF32(dst, p.color.A)

		return dst, nil
	case format.AampQuat:
		dst = appendF32(dst, p.quat.X)
		dst = appendF32(dst, p.quat.Y)
		dst = appendF32(dst, p.quat.Z)
		dst = appendF32(dst, p.quat.W)

		return dst, nil
	case format.AampString32, format.AampString64, format.AampString256:
		return encodeFixedString(dst, p.str)
	case format.AampStringRef:
		return encodeStringRef(dst, p.strRef), nil
	case format.AampCurve1, format.AampCurve2, format.AampCurve3, format.AampCurve4:
		return encodeCurve(dst, p.curve), nil
	case format.AampBufferInt:
		for _, v := range p.bufInt {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
		}

		return dst, nil
	case format.AampBufferF32:
		for _, v := range p.bufF32 {
			dst = appendF32(dst, v)
		}

		return dst, nil
	case format.AampBufferU32:
		for _, v := range p.bufU32 {
			dst = binary.LittleEndian.AppendUint32(dst, v)
		}

		return dst, nil
	case format.AampBufferBinary:
		return append(dst, p.bufBinary...), nil
	default:
		return nil, errs.InvalidData(fmt.Sprintf("unknown parameter kind %d", p.Kind))
	}
}

func appendF32(dst []byte, v F32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v)))
}

func appendVec4(dst []byte, v Vec4) []byte {
	dst = appendF32(dst, v.X)
	dst = appendF32(dst, v.Y)
	dst = appendF32(dst, v.Z)
	dst = appendF32(dst, v.W)

	return dst
}

func encodeFixedString(dst []byte, s FixedSafeString) ([]byte, error) {
	if len(s.Value)+1 > s.Cap {
		return nil, errs.InvalidData(fmt.Sprintf(
			"string %q exceeds fixed capacity %d", s.Value, s.Cap))
	}

	start := len(dst)
	dst = append(dst, make([]byte, s.Cap)...)
	copy(dst[start:], s.Value)

	return dst, nil
}

func encodeStringRef(dst []byte, s string) []byte {
	n := align4(len(s) + 1)
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	copy(dst[start:], s)

	return dst
}

func encodeCurve(dst []byte, c Curve) []byte {
	for _, lane := range c.Lanes {
		dst = binary.LittleEndian.AppendUint32(dst, lane.IntA)
		dst = binary.LittleEndian.AppendUint32(dst, lane.IntB)
		for _, f := range lane.Values {
			dst = appendF32(dst, f)
		}
	}

	return dst
}

func curveArity(k format.AampType) int {
	switch k {
	case format.AampCurve1:
		return 1
	case format.AampCurve2:
		return 2
	case format.AampCurve3:
		return 3
	case format.AampCurve4:
		return 4
	default:
		return 0
	}
}

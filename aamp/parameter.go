package aamp

import (
	"fmt"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
)

// Parameter is an AAMP leaf value: a tagged union over the 21 variants
// listed in §3.2. Exactly one of the typed fields is meaningful,
// selected by Kind; Parameter is returned and passed by value since its
// largest payload (Curve) already holds its own slice header.
type Parameter struct {
	Kind format.AampType

	boolValue   bool
	f32Value    F32
	intValue    int32
	u32Value    uint32
	vec2        Vec2
	vec3        Vec3
	vec4        Vec4
	color       Color
	quat        Quat
	str         FixedSafeString
	strRef      string
	curve       Curve
	bufInt      []int32
	bufF32      []F32
	bufU32      []uint32
	bufBinary   []byte
}

// NewBool builds a Bool parameter.
func NewBool(v bool) Parameter { return Parameter{Kind: format.AampBool, boolValue: v} }

// NewF32 builds an F32 parameter.
func NewF32(v float32) Parameter { return Parameter{Kind: format.AampF32, f32Value: F32(v)} }

// NewInt builds an Int parameter.
func NewInt(v int32) Parameter { return Parameter{Kind: format.AampInt, intValue: v} }

// NewU32 builds a U32 parameter.
func NewU32(v uint32) Parameter { return Parameter{Kind: format.AampU32, u32Value: v} }

// NewVec2 builds a Vec2 parameter.
func NewVec2(v Vec2) Parameter { return Parameter{Kind: format.AampVec2, vec2: v} }

// NewVec3 builds a Vec3 parameter.
func NewVec3(v Vec3) Parameter { return Parameter{Kind: format.AampVec3, vec3: v} }

// NewVec4 builds a Vec4 parameter.
func NewVec4(v Vec4) Parameter { return Parameter{Kind: format.AampVec4, vec4: v} }

// NewColor builds a Color parameter.
func NewColor(v Color) Parameter { return Parameter{Kind: format.AampColor, color: v} }

// NewQuat builds a Quat parameter.
func NewQuat(v Quat) Parameter { return Parameter{Kind: format.AampQuat, quat: v} }

// NewString32 builds a String32 parameter.
func NewString32(s string) Parameter {
	return Parameter{Kind: format.AampString32, str: FixedSafeString{Cap: 32, Value: s}}
}

// NewString64 builds a String64 parameter.
func NewString64(s string) Parameter {
	return Parameter{Kind: format.AampString64, str: FixedSafeString{Cap: 64, Value: s}}
}

// NewString256 builds a String256 parameter.
func NewString256(s string) Parameter {
	return Parameter{Kind: format.AampString256, str: FixedSafeString{Cap: 256, Value: s}}
}

// NewStringRef builds a variable-length StringRef parameter.
func NewStringRef(s string) Parameter { return Parameter{Kind: format.AampStringRef, strRef: s} }

// NewCurve1 builds a one-lane curve parameter.
func NewCurve1(c Curve) Parameter { return Parameter{Kind: format.AampCurve1, curve: c} }

// NewCurve2 builds a two-lane curve parameter.
func NewCurve2(c Curve) Parameter { return Parameter{Kind: format.AampCurve2, curve: c} }

// NewCurve3 builds a three-lane curve parameter.
func NewCurve3(c Curve) Parameter { return Parameter{Kind: format.AampCurve3, curve: c} }

// NewCurve4 builds a four-lane curve parameter.
func NewCurve4(c Curve) Parameter { return Parameter{Kind: format.AampCurve4, curve: c} }

// NewBufferInt builds a BufferInt parameter.
func NewBufferInt(v []int32) Parameter { return Parameter{Kind: format.AampBufferInt, bufInt: v} }

// NewBufferF32 builds a BufferF32 parameter.
func NewBufferF32(v []F32) Parameter { return Parameter{Kind: format.AampBufferF32, bufF32: v} }

// NewBufferU32 builds a BufferU32 parameter.
func NewBufferU32(v []uint32) Parameter { return Parameter{Kind: format.AampBufferU32, bufU32: v} }

// NewBufferBinary builds a BufferBinary parameter.
func NewBufferBinary(v []byte) Parameter {
	return Parameter{Kind: format.AampBufferBinary, bufBinary: v}
}

// AsBool returns the Bool payload and whether Kind matches.
func (p Parameter) AsBool() (bool, bool) { return p.boolValue, p.Kind == format.AampBool }

// AsF32 returns the F32 payload and whether Kind matches.
func (p Parameter) AsF32() (float32, bool) { return float32(p.f32Value), p.Kind == format.AampF32 }

// AsInt returns the Int payload and whether Kind matches.
func (p Parameter) AsInt() (int32, bool) { return p.intValue, p.Kind == format.AampInt }

// AsU32 returns the U32 payload and whether Kind matches.
func (p Parameter) AsU32() (uint32, bool) { return p.u32Value, p.Kind == format.AampU32 }

// AsVec2 returns the Vec2 payload and whether Kind matches.
func (p Parameter) AsVec2() (Vec2, bool) { return p.vec2, p.Kind == format.AampVec2 }

// AsVec3 returns the Vec3 payload and whether Kind matches.
func (p Parameter) AsVec3() (Vec3, bool) { return p.vec3, p.Kind == format.AampVec3 }

// AsVec4 returns the Vec4 payload and whether Kind matches.
func (p Parameter) AsVec4() (Vec4, bool) { return p.vec4, p.Kind == format.AampVec4 }

// AsColor returns the Color payload and whether Kind matches.
func (p Parameter) AsColor() (Color, bool) { return p.color, p.Kind == format.AampColor }

// AsQuat returns the Quat payload and whether Kind matches.
func (p Parameter) AsQuat() (Quat, bool) { return p.quat, p.Kind == format.AampQuat }

// AsCurve returns the Curve payload and whether Kind is one of
// Curve1..Curve4.
func (p Parameter) AsCurve() (Curve, bool) {
	switch p.Kind {
	case format.AampCurve1, format.AampCurve2, format.AampCurve3, format.AampCurve4:
		return p.curve, true
	default:
		return Curve{}, false
	}
}

// AsBufferInt returns the BufferInt payload and whether Kind matches.
func (p Parameter) AsBufferInt() ([]int32, bool) {
	return p.bufInt, p.Kind == format.AampBufferInt
}

// AsBufferF32 returns the BufferF32 payload and whether Kind matches.
func (p Parameter) AsBufferF32() ([]F32, bool) {
	return p.bufF32, p.Kind == format.AampBufferF32
}

// AsBufferU32 returns the BufferU32 payload and whether Kind matches.
func (p Parameter) AsBufferU32() ([]uint32, bool) {
	return p.bufU32, p.Kind == format.AampBufferU32
}

// AsBufferBinary returns the BufferBinary payload and whether Kind
// matches.
func (p Parameter) AsBufferBinary() ([]byte, bool) {
	return p.bufBinary, p.Kind == format.AampBufferBinary
}

// AsString returns the string payload of any of the four string-shaped
// kinds (String32/64/256, StringRef), regardless of which fixed
// capacity backs it — the common accessor most callers reach for first.
func (p Parameter) AsString() (string, bool) {
	switch p.Kind {
	case format.AampString32, format.AampString64, format.AampString256:
		return p.str.Value, true
	case format.AampStringRef:
		return p.strRef, true
	default:
		return "", false
	}
}

// fixedCapacityFor returns the byte capacity (including terminator) for
// one of the three fixed string kinds, or an error for anything else.
func fixedCapacityFor(k format.AampType) (int, error) {
	switch k {
	case format.AampString32:
		return 32, nil
	case format.AampString64:
		return 64, nil
	case format.AampString256:
		return 256, nil
	default:
		return 0, errs.InvalidData(fmt.Sprintf("not a fixed-capacity string kind: %s", k))
	}
}


package byml

import (
	"math"
	"strconv"
	"strings"

	"github.com/switchtoolbox/paramio/errs"
)

// ScalarKind is the result of lexing a plain YAML scalar token (§4.4).
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarBool
	ScalarInt
	ScalarFloat
	ScalarString
)

// IntToken holds an integer literal as a sign and unsigned magnitude, so
// the full uint64 range is representable regardless of which concrete
// width (I32/U32/I64/U64) the caller ultimately narrows it to.
type IntToken struct {
	Neg bool
	Mag uint64
}

// AsI32 narrows the token to a signed 32-bit value, failing on overflow.
func (it IntToken) AsI32() (int32, bool) {
	if it.Neg {
		if it.Mag > 1<<31 {
			return 0, false
		}

		return int32(-int64(it.Mag)), true
	}

	if it.Mag > math.MaxInt32 {
		return 0, false
	}

	return int32(it.Mag), true
}

// AsI64 widens the token to a signed 64-bit value. Magnitudes beyond
// math.MaxInt64 wrap, matching Go's own int64(uint64) conversion.
func (it IntToken) AsI64() int64 {
	if it.Neg {
		return -int64(it.Mag)
	}

	return int64(it.Mag)
}

// AsU32 narrows the token to an unsigned 32-bit value, failing on a
// negative sign or overflow.
func (it IntToken) AsU32() (uint32, bool) {
	if it.Neg || it.Mag > math.MaxUint32 {
		return 0, false
	}

	return uint32(it.Mag), true
}

// AsU64 returns the token as an unsigned 64-bit value, failing on a
// negative sign.
func (it IntToken) AsU64() (uint64, bool) {
	if it.Neg {
		return 0, false
	}

	return it.Mag, true
}

// Scalar is the outcome of lexing a single scalar token.
type Scalar struct {
	Kind  ScalarKind
	Bool  bool
	Int   IntToken
	Float float64
	Str   string
}

// LexScalar classifies a plain (untagged) scalar token. A quoted token
// is never reinterpreted as anything but a string (§4.4).
func LexScalar(token string, quoted bool) Scalar {
	if quoted {
		return Scalar{Kind: ScalarString, Str: token}
	}

	switch token {
	case "null", "~", "":
		return Scalar{Kind: ScalarNull}
	case "true", "True":
		return Scalar{Kind: ScalarBool, Bool: true}
	case "false", "False":
		return Scalar{Kind: ScalarBool, Bool: false}
	}

	if it, ok := tryParseIntToken(token); ok {
		return Scalar{Kind: ScalarInt, Int: it}
	}

	if f, ok := tryParseFloatToken(token); ok {
		return Scalar{Kind: ScalarFloat, Float: f}
	}

	return Scalar{Kind: ScalarString, Str: token}
}

// LexIntForced parses token as an integer unconditionally, for scalars
// under a tag (!u, !ul, !l) that mandates a numeric reading. It rejects
// ambiguous tokens rather than guessing (§4.4).
func LexIntForced(token string) (IntToken, error) {
	if it, ok := tryParseIntToken(token); ok {
		return it, nil
	}

	return IntToken{}, errs.InvalidData("byml: %q is not a valid integer literal", token)
}

// LexFloatForced parses token as a float unconditionally, for a scalar
// tagged !f64. A bare integer literal is also accepted as a float.
func LexFloatForced(token string) (float64, error) {
	if f, ok := tryParseFloatToken(token); ok {
		return f, nil
	}

	if it, ok := tryParseIntToken(token); ok {
		return it.AsI64andFloat(), nil
	}

	return 0, errs.InvalidData("byml: %q is not a valid float literal", token)
}

// AsI64andFloat widens the token straight to float64, for LexFloatForced's
// integer-literal fallback.
func (it IntToken) AsI64andFloat() float64 {
	if it.Neg {
		return -float64(it.Mag)
	}

	return float64(it.Mag)
}

func tryParseIntToken(token string) (IntToken, bool) {
	s := token
	neg := false

	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	}

	if s == "" {
		return IntToken{}, false
	}

	if len(s) > 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		mag, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return IntToken{}, false
		}

		return IntToken{Neg: neg, Mag: mag}, true
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return IntToken{}, false
		}
	}

	mag, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return IntToken{}, false
	}

	return IntToken{Neg: neg, Mag: mag}, true
}

func tryParseFloatToken(token string) (float64, bool) {
	if !strings.ContainsAny(token, ".eE") {
		return 0, false
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

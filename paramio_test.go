package paramio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchtoolbox/paramio/aamp"
	"github.com/switchtoolbox/paramio/byml"
)

// TestHashName verifies the exported hash matches the aamp package directly.
func TestHashName(t *testing.T) {
	assert.Equal(t, aamp.HashName("FolderPath"), HashName("FolderPath"))
}

// TestParseEmitAAMP_RoundTrip verifies the wrapper functions delegate to the
// aamp package without altering the tree.
func TestParseEmitAAMP_RoundTrip(t *testing.T) {
	pio := aamp.NewParameterIO()

	data, err := EmitAAMP(pio)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := ParseAAMP(data)
	require.NoError(t, err)
	assert.Equal(t, pio.Version, decoded.Version)
	assert.Equal(t, pio.DataType, decoded.DataType)
}

// TestParseEmitBYML_RoundTrip verifies the wrapper functions delegate to the
// byml package without altering the tree.
func TestParseEmitBYML_RoundTrip(t *testing.T) {
	h := byml.NewHash()
	h.Set("answer", byml.NewI32(42))

	data, err := EmitBYML(&h, false)
	require.NoError(t, err)

	decoded, err := ParseBYML(data)
	require.NoError(t, err)

	m, ok := decoded.AsHash()
	require.True(t, ok)

	v, ok := m.Get("answer")
	require.True(t, ok)
	i, ok := v.AsI32()
	require.True(t, ok)
	assert.Equal(t, int32(42), i)
}

// TestBYMLTextBridge_RoundTrip verifies BYMLFromText and BYMLToText delegate
// to the byml package's text bridge.
func TestBYMLTextBridge_RoundTrip(t *testing.T) {
	doc, err := BYMLFromText("{a: !l 9999999999, b: [1, 2, 3]}")
	require.NoError(t, err)

	text, err := BYMLToText(doc)
	require.NoError(t, err)

	reparsed, err := BYMLFromText(text)
	require.NoError(t, err)

	m, ok := reparsed.AsHash()
	require.True(t, ok)
	a, ok := m.Get("a")
	require.True(t, ok)
	i64, ok := a.AsI64()
	require.True(t, ok)
	assert.Equal(t, int64(9999999999), i64)
}

// TestBYMLToText_NullRoot verifies the literal "null" rendering is reachable
// through the wrapper.
func TestBYMLToText_NullRoot(t *testing.T) {
	n := byml.Null()
	text, err := BYMLToText(&n)
	require.NoError(t, err)
	assert.Equal(t, "null", text)
}

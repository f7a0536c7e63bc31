// Package paramio reads and writes the two binary container formats used by
// modern Nintendo EAD game titles to store structured parameter data: AAMP
// (aamp, "Parameter Archive") and BYML (byml, "Binary YAML"), plus a textual
// YAML bridge for BYML documents.
//
// # Core Features
//
//   - AAMP: parse and emit ParameterIO trees (root object, nested lists,
//     parameter objects holding typed scalar/vector/string parameters)
//   - BYML: parse and emit binary node trees (Null, Bool, signed and
//     unsigned 32- and 64-bit integers, two float widths, strings, binary
//     blobs, arrays, hashes)
//   - A YAML text bridge for BYML documents, so values can be inspected and
//     edited as plain text and re-encoded losslessly
//   - CRC32 name hashing shared by AAMP's attribute/object/list identifiers
//
// # Basic Usage
//
// Parsing an AAMP archive and reading an attribute:
//
//	import "github.com/switchtoolbox/paramio"
//
//	pio, err := paramio.ParseAAMP(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root := pio.Root
//
// Round-tripping a BYML document through the YAML text bridge:
//
//	doc, err := paramio.ParseBYML(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := paramio.BYMLToText(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(text)
//
//	edited, err := paramio.BYMLFromText(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := paramio.EmitBYML(edited, false)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the aamp and
// byml packages. For advanced usage — building trees node by node, walking
// a parsed tree, or inspecting intermediate string tables — use those
// packages directly.
package paramio

import (
	"github.com/switchtoolbox/paramio/aamp"
	"github.com/switchtoolbox/paramio/byml"
)

// ParseAAMP decodes an AAMP binary archive into a ParameterIO tree.
//
// Parameters:
//   - data: The raw archive bytes, as read from disk or network.
//
// Returns:
//   - *aamp.ParameterIO: The decoded root of the archive.
//   - error: An error if the header is malformed, the version is
//     unsupported, or an offset or value in the archive is out of bounds.
//
// Example:
//
//	pio, err := paramio.ParseAAMP(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseAAMP(data []byte) (*aamp.ParameterIO, error) {
	return aamp.ParseAAMP(data)
}

// EmitAAMP encodes a ParameterIO tree into its AAMP binary representation.
//
// The encoder lays out the tree breadth-first and deduplicates repeated
// strings and data buffers, but byte-for-byte equality with an archive
// produced by another encoder is not guaranteed — only that the result
// decodes back to an equivalent tree.
//
// Parameters:
//   - pio: The tree to encode, usually obtained from ParseAAMP or built by
//     hand with the aamp package's constructors.
//
// Returns:
//   - []byte: The encoded archive.
//   - error: An error if the tree contains a parameter this encoder cannot
//     represent, such as a fixed-capacity string that is too long or a
//     data offset that does not fit its field.
//
// Example:
//
//	out, err := paramio.EmitAAMP(pio)
func EmitAAMP(pio *aamp.ParameterIO) ([]byte, error) {
	return aamp.EmitAAMP(pio)
}

// ParseBYML decodes a BYML binary document into a node tree.
//
// The decoder accepts both endiannesses (detected from the 2-byte magic)
// and all four known format versions. It tolerates hash nodes whose keys
// are not in sorted order.
//
// Parameters:
//   - data: The raw document bytes.
//
// Returns:
//   - *byml.Byml: The decoded root node. A document whose root offset is
//     zero decodes to a Null node.
//   - error: An error if the header, string tables, or node tree are
//     malformed.
//
// Example:
//
//	doc, err := paramio.ParseBYML(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseBYML(data []byte) (*byml.Byml, error) {
	return byml.ParseBYML(data)
}

// EmitBYML encodes a node tree into its BYML binary representation.
//
// Distinct hash keys and distinct value-strings are collected into two
// deduplicated string tables; keys are written in sorted order, values in
// first-seen order. Binary blobs and nested containers are never
// deduplicated.
//
// Parameters:
//   - b: The root node to encode. A Null root produces a document with a
//     zero root offset and no string tables.
//   - bigEndian: Selects the byte order used for the header, offsets, and
//     every multi-byte value in the document.
//
// Returns:
//   - []byte: The encoded document.
//   - error: An error if the tree contains a value this encoder cannot
//     represent.
//
// Example:
//
//	out, err := paramio.EmitBYML(doc, false)
func EmitBYML(b *byml.Byml, bigEndian bool) ([]byte, error) {
	return byml.EmitBYML(b, bigEndian)
}

// BYMLFromText parses a YAML document into a BYML node tree.
//
// Scalars are interpreted using the same rules a BYML editor would use:
// an untagged integer is I32, widening to I64 only on overflow; !u and !ul
// force U32 and U64; !l forces I64; !f64 forces a double; every other
// float is F32. Quoted scalars are always kept as strings regardless of
// their shape. !!binary scalars decode their base64 payload into a
// binary-data node.
//
// Parameters:
//   - text: The YAML source to parse.
//
// Returns:
//   - *byml.Byml: The parsed tree. An empty document parses to Null.
//   - error: An error if the YAML itself is malformed, or a tagged scalar
//     cannot be parsed as the numeric kind its tag demands.
//
// Example:
//
//	doc, err := paramio.BYMLFromText("{a: !l 9999999999, b: [1, 2, 3]}")
func BYMLFromText(text string) (*byml.Byml, error) {
	return byml.FromText(text)
}

// BYMLToText renders a BYML node tree as YAML text.
//
// Hash keys are emitted in sorted order. Integers and floats carry the
// tags needed to round-trip their exact kind (!u, !ul, !l, !f64); plain
// I32 and F32 values are left untagged. Strings that would otherwise be
// read back as a different scalar kind are quoted. Small containers of
// scalar-only children are emitted in flow style.
//
// Parameters:
//   - root: The node to render. Must be a Hash, an Array, or Null; any
//     other root kind is rejected since a bare scalar is not a valid YAML
//     document root for this bridge.
//
// Returns:
//   - string: The rendered YAML text. A Null root renders as the literal
//     string "null".
//   - error: An error if root is a scalar kind other than Null.
//
// Example:
//
//	text, err := paramio.BYMLToText(doc)
func BYMLToText(b *byml.Byml) (string, error) {
	return byml.ToText(b)
}

// HashName computes the CRC32/ISO-HDLC hash AAMP uses to identify
// attribute, object, and list names.
//
// Parameters:
//   - name: The human-readable name to hash.
//
// Returns:
//   - uint32: The hash, as stored in the archive's name-hash tables.
//
// Example:
//
//	id := paramio.HashName("FolderPath")
func HashName(name string) uint32 {
	return aamp.HashName(name)
}

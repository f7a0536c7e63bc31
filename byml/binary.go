package byml

import "github.com/switchtoolbox/paramio/internal/endian"

// Header layout: 2-byte magic, u16 version, three u32 absolute offsets
// (key-string table, value-string table, root node), each zero meaning
// absent (§4.2 "Header").
const headerSize = 16

const (
	magicBigEndian    = "BY"
	magicLittleEndian = "YB"
)

// Accepted version numbers (§4.2).
var supportedVersions = map[uint16]bool{2: true, 3: true, 4: true, 7: true}

// currentVersion is written by EmitBYML.
const currentVersion uint16 = 7

func align(n, to int) int {
	rem := n % to
	if rem == 0 {
		return n
	}

	return n + (to - rem)
}

func magicFor(bigEndian bool) string {
	if bigEndian {
		return magicBigEndian
	}

	return magicLittleEndian
}

func engineFor(bigEndian bool) endian.EndianEngine {
	return endian.ForFlag(bigEndian)
}

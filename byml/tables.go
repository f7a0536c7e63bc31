package byml

import (
	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
	"github.com/switchtoolbox/paramio/internal/endian"
	"github.com/switchtoolbox/paramio/internal/pool"
)

// encodeStringTable builds a §4.2 "String table" node: type byte + u24
// count, count+1 offsets relative to the table's own start, then the
// concatenated null-terminated strings. Returns nil if strs is empty,
// signaling the caller to leave the table offset at zero.
func encodeStringTable(strs []string, engine endian.EndianEngine) []byte {
	if len(strs) == 0 {
		return nil
	}

	out := pool.NewByteBuffer(64)
	out.MustWrite(make([]byte, 4+4*(len(strs)+1)))
	putHeaderWord(out.B, 0, uint8(format.BymlStringTable), len(strs), engine)

	offsets := make([]int, len(strs)+1)
	for i, s := range strs {
		offsets[i] = out.Len()
		out.MustWrite([]byte(s))
		out.WriteByte(0)
	}
	offsets[len(strs)] = out.Len()

	for i, off := range offsets {
		pos := 4 + 4*i
		engine.PutUint32(out.B[pos:pos+4], uint32(off))
	}

	return out.Bytes()
}

// decodeStringTable reads a string table node whose absolute start is
// tableBase within buf.
func decodeStringTable(buf []byte, tableBase int, engine endian.EndianEngine) ([]string, error) {
	if tableBase == 0 {
		return nil, nil
	}

	if tableBase < 0 || tableBase+4 > len(buf) {
		return nil, errs.InvalidData("byml: string table offset %d out of range", tableBase)
	}

	tag, count := readHeaderWord(buf, tableBase, engine)
	if format.BymlType(tag) != format.BymlStringTable {
		return nil, errs.InvalidData("byml: expected string table tag at %d, got 0x%02x", tableBase, tag)
	}

	offsetsStart := tableBase + 4
	needed := offsetsStart + 4*(count+1)
	if needed > len(buf) {
		return nil, errs.InvalidData("byml: string table offsets run past end of buffer")
	}

	offsets := make([]int, count+1)
	for i := range offsets {
		pos := offsetsStart + 4*i
		offsets[i] = tableBase + int(engine.Uint32(buf[pos:pos+4]))
	}

	out := make([]string, count)
	for i := 0; i < count; i++ {
		start, end := offsets[i], offsets[i+1]
		if start < 0 || end > len(buf) || start > end {
			return nil, errs.InvalidData("byml: string table entry %d has invalid bounds", i)
		}

		s, err := readCString(buf[start:end])
		if err != nil {
			return nil, err
		}

		out[i] = s
	}

	return out, nil
}

// putHeaderWord writes a type+u24-count node header word at buf[pos:pos+4].
func putHeaderWord(buf []byte, pos int, tag uint8, count int, engine endian.EndianEngine) {
	engine.PutUint32(buf[pos:pos+4], uint32(tag)|uint32(count)<<8)
}

// readHeaderWord reads back a type+u24-count node header word.
func readHeaderWord(buf []byte, pos int, engine endian.EndianEngine) (tag uint8, count int) {
	word := engine.Uint32(buf[pos : pos+4])
	return uint8(word & 0xFF), int(word >> 8)
}

package byml

import (
	"math"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
	"github.com/switchtoolbox/paramio/internal/endian"
)

// ParseBYML decodes a binary BYML document (§4.2). Endianness is
// detected from the magic bytes; the version field is validated but
// not otherwise interpreted.
func ParseBYML(b []byte) (*Byml, error) {
	if len(b) < headerSize {
		return nil, errs.InvalidData("byml: buffer shorter than header (%d bytes)", len(b))
	}

	magic := string(b[0:2])

	var bigEndian bool
	switch magic {
	case magicBigEndian:
		bigEndian = true
	case magicLittleEndian:
		bigEndian = false
	default:
		return nil, errs.InvalidData("byml: bad magic %q", magic)
	}

	engine := engineFor(bigEndian)

	version := engine.Uint16(b[2:4])
	if !supportedVersions[version] {
		return nil, errs.InvalidData("byml: unsupported version %d", version)
	}

	keyOff := engine.Uint32(b[4:8])
	valOff := engine.Uint32(b[8:12])
	rootOff := engine.Uint32(b[12:16])

	keys, err := decodeStringTable(b, int(keyOff), engine)
	if err != nil {
		return nil, err
	}

	vals, err := decodeStringTable(b, int(valOff), engine)
	if err != nil {
		return nil, err
	}

	if rootOff == 0 {
		v := Null()
		return &v, nil
	}

	return decodeSelfDescribing(b, int(rootOff), engine, keys, vals)
}

func lookupTable(tbl []string, idx int) (string, error) {
	if idx < 0 || idx >= len(tbl) {
		return "", errs.InvalidData("byml: string table index %d out of range (table has %d entries)", idx, len(tbl))
	}

	return tbl[idx], nil
}

// decodeSelfDescribing reads a node whose own type tag lives at b[pos]:
// the root, or any Array/Hash (which always carry their own tag).
func decodeSelfDescribing(b []byte, pos int, engine endian.EndianEngine, keys, vals []string) (*Byml, error) {
	if pos < 0 || pos >= len(b) {
		return nil, errs.InvalidData("byml: node offset %d out of range", pos)
	}

	tag := format.BymlType(b[pos])

	switch tag {
	case format.BymlNull:
		v := Null()
		return &v, nil

	case format.BymlBool, format.BymlI32, format.BymlU32, format.BymlF32, format.BymlString:
		if pos+8 > len(b) {
			return nil, errs.InvalidData("byml: scalar node at %d runs past end of buffer", pos)
		}

		word := engine.Uint32(b[pos+4 : pos+8])

		return decodeInlineWord(tag, word, vals)

	case format.BymlI64, format.BymlU64, format.BymlF64:
		if pos+16 > len(b) {
			return nil, errs.InvalidData("byml: wide scalar node at %d runs past end of buffer", pos)
		}

		return decodeWideBits(tag, engine.Uint64(b[pos+8:pos+16])), nil

	case format.BymlBinary:
		return decodeBinaryAt(b, pos+4, engine)

	case format.BymlArray:
		return decodeArray(b, pos, engine, keys, vals)

	case format.BymlHash:
		return decodeHash(b, pos, engine, keys, vals)

	default:
		return nil, errs.InvalidData("byml: unknown node type 0x%02x at offset %d", byte(tag), pos)
	}
}

func decodeArray(b []byte, pos int, engine endian.EndianEngine, keys, vals []string) (*Byml, error) {
	tag, count := readHeaderWord(b, pos, engine)
	if format.BymlType(tag) != format.BymlArray {
		return nil, errs.InvalidData("byml: expected Array tag at %d, got 0x%02x", pos, tag)
	}

	tagsStart := pos + 4
	tagsLen := align(count, 4)
	slotBase := tagsStart + tagsLen

	if slotBase+4*count > len(b) {
		return nil, errs.InvalidData("byml: array at %d runs past end of buffer", pos)
	}

	items := make([]Byml, count)
	for i := 0; i < count; i++ {
		elemKind := format.BymlType(b[tagsStart+i])

		item, err := decodeSlotValue(b, slotBase+4*i, elemKind, engine, keys, vals)
		if err != nil {
			return nil, err
		}

		items[i] = *item
	}

	v := NewArray(items)

	return &v, nil
}

func decodeHash(b []byte, pos int, engine endian.EndianEngine, keys, vals []string) (*Byml, error) {
	tag, count := readHeaderWord(b, pos, engine)
	if format.BymlType(tag) != format.BymlHash {
		return nil, errs.InvalidData("byml: expected Hash tag at %d, got 0x%02x", pos, tag)
	}

	entryBase := pos + 4
	if entryBase+8*count > len(b) {
		return nil, errs.InvalidData("byml: hash at %d runs past end of buffer", pos)
	}

	h := NewHash()

	for i := 0; i < count; i++ {
		entryPos := entryBase + 8*i
		word := engine.Uint32(b[entryPos : entryPos+4])
		keyIdx := int(word & 0xFFFFFF)
		valKind := format.BymlType(word >> 24)

		key, err := lookupTable(keys, keyIdx)
		if err != nil {
			return nil, err
		}

		item, err := decodeSlotValue(b, entryPos+4, valKind, engine, keys, vals)
		if err != nil {
			return nil, err
		}

		h.Set(key, *item)
	}

	return &h, nil
}

func decodeSlotValue(b []byte, slotPos int, kind format.BymlType, engine endian.EndianEngine, keys, vals []string) (*Byml, error) {
	if slotPos+4 > len(b) {
		return nil, errs.InvalidData("byml: value slot at %d runs past end of buffer", slotPos)
	}

	word := engine.Uint32(b[slotPos : slotPos+4])

	switch kind {
	case format.BymlNull, format.BymlBool, format.BymlI32, format.BymlU32, format.BymlF32, format.BymlString:
		return decodeInlineWord(kind, word, vals)

	case format.BymlI64, format.BymlU64, format.BymlF64:
		off := int(word)
		if off+8 > len(b) || off < 0 {
			return nil, errs.InvalidData("byml: wide value offset %d out of range", off)
		}

		return decodeWideBits(kind, engine.Uint64(b[off:off+8])), nil

	case format.BymlBinary:
		return decodeBinaryAt(b, int(word), engine)

	case format.BymlArray, format.BymlHash:
		return decodeSelfDescribing(b, int(word), engine, keys, vals)

	default:
		return nil, errs.InvalidData("byml: unknown element type 0x%02x", byte(kind))
	}
}

func decodeInlineWord(kind format.BymlType, word uint32, vals []string) (*Byml, error) {
	switch kind {
	case format.BymlNull:
		v := Null()
		return &v, nil
	case format.BymlBool:
		v := NewBool(word != 0)
		return &v, nil
	case format.BymlI32:
		v := NewI32(int32(word))
		return &v, nil
	case format.BymlU32:
		v := NewU32(word)
		return &v, nil
	case format.BymlF32:
		v := NewFloat(math.Float32frombits(word))
		return &v, nil
	case format.BymlString:
		s, err := lookupTable(vals, int(word))
		if err != nil {
			return nil, err
		}

		v := NewString(s)

		return &v, nil
	default:
		return nil, errs.InvalidData("byml: 0x%02x is not an inline type", byte(kind))
	}
}

func decodeWideBits(kind format.BymlType, raw uint64) *Byml {
	switch kind {
	case format.BymlI64:
		v := NewI64(int64(raw))
		return &v
	case format.BymlU64:
		v := NewU64(raw)
		return &v
	default:
		v := NewDouble(math.Float64frombits(raw))
		return &v
	}
}

func decodeBinaryAt(b []byte, off int, engine endian.EndianEngine) (*Byml, error) {
	if off < 0 || off+4 > len(b) {
		return nil, errs.InvalidData("byml: binary length offset %d out of range", off)
	}

	length := engine.Uint32(b[off : off+4])
	start := off + 4
	end := start + int(length)

	if end > len(b) || end < start {
		return nil, errs.InvalidData("byml: binary blob at %d overflows buffer", off)
	}

	data := make([]byte, length)
	copy(data, b[start:end])

	v := NewBinaryData(data)

	return &v, nil
}

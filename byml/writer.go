package byml

import (
	"math"
	"sort"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
	"github.com/switchtoolbox/paramio/internal/endian"
	"github.com/switchtoolbox/paramio/internal/pool"
)

// valueSet tracks distinct strings in first-seen order, for the
// value-string table (§4.2 "first-seen order").
type valueSet struct {
	index map[string]int
	order []string
}

func newValueSet() *valueSet {
	return &valueSet{index: make(map[string]int)}
}

func (s *valueSet) add(v string) {
	if _, ok := s.index[v]; ok {
		return
	}

	s.index[v] = len(s.order)
	s.order = append(s.order, v)
}

// collect walks the tree gathering every distinct hash key and every
// distinct String value, for the key- and value-string tables.
func collect(v Byml, keys map[string]struct{}, vals *valueSet) {
	switch v.Kind() {
	case format.BymlString:
		vals.add(v.strValue)
	case format.BymlArray:
		for _, item := range v.arrValue {
			collect(item, keys, vals)
		}
	case format.BymlHash:
		v.hashValue.Each(func(k string, child Byml) {
			keys[k] = struct{}{}
			collect(child, keys, vals)
		})
	}
}

// EmitBYML serializes root to the BYML binary format (§4.2). bigEndian
// selects the "BY"/"YB" magic and the byte order of every multi-byte
// field.
func EmitBYML(root *Byml, bigEndian bool) ([]byte, error) {
	if root == nil {
		return nil, errs.InvalidData("byml: cannot encode a nil root")
	}

	engine := engineFor(bigEndian)

	keySet := make(map[string]struct{})
	vals := newValueSet()
	collect(*root, keySet, vals)

	keyList := make([]string, 0, len(keySet))
	for k := range keySet {
		keyList = append(keyList, k)
	}
	sort.Strings(keyList)

	keyIndex := make(map[string]int, len(keyList))
	for i, k := range keyList {
		keyIndex[k] = i
	}

	out := pool.NewByteBuffer(pool.ArenaDefaultSize)
	out.SetLength(headerSize)

	var keyTableOffset, valueTableOffset, rootOffset uint32

	if kb := encodeStringTable(keyList, engine); kb != nil {
		keyTableOffset = uint32(out.Len())
		out.MustWrite(kb)
	}

	if vb := encodeStringTable(vals.order, engine); vb != nil {
		valueTableOffset = uint32(out.Len())
		out.MustWrite(vb)
	}

	if !root.IsNull() {
		padTo(out, 4)

		off, err := emitSelfDescribing(out, engine, *root, keyIndex, vals.index)
		if err != nil {
			return nil, err
		}

		rootOffset = uint32(off)
	}

	writeHeader(out.B, bigEndian, keyTableOffset, valueTableOffset, rootOffset, engine)

	return out.Bytes(), nil
}

func writeHeader(b []byte, bigEndian bool, keyOff, valOff, rootOff uint32, engine endian.EndianEngine) {
	copy(b[0:2], magicFor(bigEndian))
	engine.PutUint16(b[2:4], currentVersion)
	engine.PutUint32(b[4:8], keyOff)
	engine.PutUint32(b[8:12], valOff)
	engine.PutUint32(b[12:16], rootOff)
}

func padTo(out *pool.ByteBuffer, to int) {
	out.SetLength(align(out.Len(), to))
}

// emitSelfDescribing writes a node that carries its own type tag: the
// root (any kind), and Array/Hash wherever they occur, since a
// container's own §4.2 definition already begins with its type byte.
func emitSelfDescribing(out *pool.ByteBuffer, engine endian.EndianEngine, v Byml, keyIndex, valIndex map[string]int) (int, error) {
	switch v.Kind() {
	case format.BymlNull:
		padTo(out, 4)
		pos := out.Len()
		out.WriteByte(uint8(format.BymlNull))

		return pos, nil

	case format.BymlBool, format.BymlI32, format.BymlU32, format.BymlF32, format.BymlString:
		padTo(out, 4)
		pos := out.Len()
		out.SetLength(pos + 8)
		out.B[pos] = uint8(v.Kind())

		word, err := inlineWord(v, valIndex)
		if err != nil {
			return 0, err
		}

		engine.PutUint32(out.B[pos+4:pos+8], word)

		return pos, nil

	case format.BymlI64, format.BymlU64, format.BymlF64:
		padTo(out, 8)
		pos := out.Len()
		out.SetLength(pos + 16)
		out.B[pos] = uint8(v.Kind())
		engine.PutUint64(out.B[pos+8:pos+16], wideBits(v))

		return pos, nil

	case format.BymlBinary:
		padTo(out, 4)
		pos := out.Len()
		out.SetLength(pos + 8)
		out.B[pos] = uint8(format.BymlBinary)
		engine.PutUint32(out.B[pos+4:pos+8], uint32(len(v.binValue)))
		out.MustWrite(v.binValue)
		padTo(out, 4)

		return pos, nil

	case format.BymlArray:
		return emitArray(out, engine, v.arrValue, keyIndex, valIndex)

	case format.BymlHash:
		return emitHash(out, engine, v.hashValue, keyIndex, valIndex)

	default:
		return 0, errs.InvalidData("byml: cannot encode node kind %s", v.Kind())
	}
}

func emitArray(out *pool.ByteBuffer, engine endian.EndianEngine, items []Byml, keyIndex, valIndex map[string]int) (int, error) {
	padTo(out, 4)
	pos := out.Len()

	tagsLen := align(len(items), 4)
	headerLen := 4 + tagsLen + 4*len(items)
	out.SetLength(pos + headerLen)
	putHeaderWord(out.B, pos, uint8(format.BymlArray), len(items), engine)

	for i, item := range items {
		out.B[pos+4+i] = uint8(item.Kind())
	}

	slotBase := pos + 4 + tagsLen
	for i, item := range items {
		slotPos := slotBase + 4*i

		word, err := writeSlotValue(out, engine, item, keyIndex, valIndex)
		if err != nil {
			return 0, err
		}

		engine.PutUint32(out.B[slotPos:slotPos+4], word)
	}

	return pos, nil
}

func emitHash(out *pool.ByteBuffer, engine endian.EndianEngine, h hashLike, keyIndex, valIndex map[string]int) (int, error) {
	padTo(out, 4)
	pos := out.Len()

	keys := h.SortedKeys()
	headerLen := 4 + 8*len(keys)
	out.SetLength(pos + headerLen)
	putHeaderWord(out.B, pos, uint8(format.BymlHash), len(keys), engine)

	entryBase := pos + 4
	for i, k := range keys {
		val, _ := h.Get(k)

		ki, ok := keyIndex[k]
		if !ok {
			return 0, errs.Any("byml: internal: key missing from key table: " + k)
		}

		entryPos := entryBase + 8*i

		word, err := writeSlotValue(out, engine, val, keyIndex, valIndex)
		if err != nil {
			return 0, err
		}

		engine.PutUint32(out.B[entryPos:entryPos+4], uint32(ki)&0xFFFFFF|uint32(val.Kind())<<24)
		engine.PutUint32(out.B[entryPos+4:entryPos+8], word)
	}

	return pos, nil
}

// writeSlotValue returns the 4-byte word that belongs in a container's
// value slot for item: either the literal inline value, or an offset to
// out-of-line content freshly appended to out.
func writeSlotValue(out *pool.ByteBuffer, engine endian.EndianEngine, item Byml, keyIndex, valIndex map[string]int) (uint32, error) {
	switch item.Kind() {
	case format.BymlBinary:
		off, err := emitOutOfLineBinary(out, engine, item.binValue)
		return uint32(off), err

	case format.BymlI64, format.BymlU64, format.BymlF64:
		off := emitOutOfLineWide(out, engine, item)
		return uint32(off), nil

	case format.BymlArray:
		off, err := emitArray(out, engine, item.arrValue, keyIndex, valIndex)
		return uint32(off), err

	case format.BymlHash:
		off, err := emitHash(out, engine, item.hashValue, keyIndex, valIndex)
		return uint32(off), err

	default:
		return inlineWord(item, valIndex)
	}
}

func emitOutOfLineBinary(out *pool.ByteBuffer, engine endian.EndianEngine, data []byte) (int, error) {
	padTo(out, 4)
	pos := out.Len()
	out.SetLength(pos + 4)
	engine.PutUint32(out.B[pos:pos+4], uint32(len(data)))
	out.MustWrite(data)
	padTo(out, 4)

	return pos, nil
}

func emitOutOfLineWide(out *pool.ByteBuffer, engine endian.EndianEngine, v Byml) int {
	padTo(out, 8)
	pos := out.Len()
	out.SetLength(pos + 8)
	engine.PutUint64(out.B[pos:pos+8], wideBits(v))

	return pos
}

// inlineWord returns the literal 4-byte value for a type that always
// fits inline (Null/Bool/I32/U32/F32/String).
func inlineWord(v Byml, valIndex map[string]int) (uint32, error) {
	switch v.Kind() {
	case format.BymlNull:
		return 0, nil
	case format.BymlBool:
		if v.boolValue {
			return 1, nil
		}

		return 0, nil
	case format.BymlI32:
		return uint32(v.i32Value), nil
	case format.BymlU32:
		return v.u32Value, nil
	case format.BymlF32:
		return math.Float32bits(v.f32Value), nil
	case format.BymlString:
		idx, ok := valIndex[v.strValue]
		if !ok {
			return 0, errs.Any("byml: internal: string missing from value table: " + v.strValue)
		}

		return uint32(idx), nil
	default:
		return 0, errs.InvalidData("byml: %s has no inline representation", v.Kind())
	}
}

func wideBits(v Byml) uint64 {
	switch v.Kind() {
	case format.BymlI64:
		return uint64(v.i64Value)
	case format.BymlU64:
		return v.u64Value
	case format.BymlF64:
		return math.Float64bits(v.f64Value)
	default:
		return 0
	}
}

// hashLike is the subset of *omap.StrMap[Byml] the writer needs; kept
// as an interface so emitHash doesn't import the generic instantiation
// directly into its signature.
type hashLike interface {
	SortedKeys() []string
	Get(string) (Byml, bool)
}

package aamp

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
	"github.com/switchtoolbox/paramio/internal/pool"
	"github.com/switchtoolbox/paramio/internal/u24"
)

// listPlan and objectPlan record, for one node, the contiguous index
// range its children occupy in the flattened lists/objects/params
// arrays built by layoutTree (§4.1 "Encoder contract", pass 1).
type listPlan struct {
	name             Name
	childListsStart  int
	childListsCount  int
	childObjsStart   int
	childObjsCount   int
}

type objectPlan struct {
	name        Name
	paramsStart int
	paramsCount int
}

type paramPlan struct {
	name       Name
	value      Parameter
	dataOffset int // byte offset within the data section, of the value itself
}

type layout struct {
	lists   []listPlan
	objects []objectPlan
	params  []paramPlan
	data    []byte
}

// internEntry is one content-addressed slot in the writer's string/
// buffer dedup table.
type internEntry struct {
	content []byte
	offset  int
}

type internTable struct {
	buckets map[uint64][]internEntry
}

func newInternTable() *internTable {
	return &internTable{buckets: make(map[uint64][]internEntry)}
}

// lookup returns the offset content was previously placed at, or false.
// Candidates are grouped by an xxhash bucket and compared byte-for-byte,
// so a hash collision between different contents never merges them.
func (t *internTable) lookup(content []byte) (int, bool) {
	h := xxhash.Sum64(content)
	for _, e := range t.buckets[h] {
		if bytes.Equal(e.content, content) {
			return e.offset, true
		}
	}

	return 0, false
}

func (t *internTable) insert(content []byte, offset int) {
	h := xxhash.Sum64(content)
	t.buckets[h] = append(t.buckets[h], internEntry{content: content, offset: offset})
}

// layoutTree performs pass 1 of the AAMP encoder: a breadth-first walk
// that flattens the tree into parallel lists/objects/params arrays
// (name-sorted siblings, lists before objects per node, §4.1 "Layout
// order"), and interns string/buffer content into one data section.
func layoutTree(pio *ParameterIO) (*layout, error) {
	lists := []listPlan{{name: ParamRootName}}
	listNodes := []*ParameterList{pio.Root}
	var objects []objectPlan
	var objectNodes []*ParameterObject
	var params []paramPlan

	data := pool.NewByteBuffer(pool.ArenaDefaultSize)
	interned := newInternTable()

	for i := 0; i < len(listNodes); i++ {
		node := listNodes[i]

		childListNames := node.sortedListNames()
		childListsStart := len(listNodes)
		for _, n := range childListNames {
			child, _ := node.List(n)
			listNodes = append(listNodes, child)
			lists = append(lists, listPlan{name: n})
		}

		childObjNames := node.sortedObjectNames()
		childObjsStart := len(objectNodes)
		for _, n := range childObjNames {
			obj, _ := node.Object(n)
			objectNodes = append(objectNodes, obj)
			objects = append(objects, objectPlan{name: n})
		}

		lists[i].childListsStart = childListsStart
		lists[i].childListsCount = len(childListNames)
		lists[i].childObjsStart = childObjsStart
		lists[i].childObjsCount = len(childObjNames)
	}

	for j := 0; j < len(objectNodes); j++ {
		obj := objectNodes[j]
		names := obj.sortedParamNames()

		paramsStart := len(params)
		for _, n := range names {
			v, _ := obj.Get(n)

			offset, err := placeValue(data, interned, v)
			if err != nil {
				return nil, err
			}

			params = append(params, paramPlan{name: n, value: v, dataOffset: offset})
		}

		objects[j].paramsStart = paramsStart
		objects[j].paramsCount = len(names)
	}

	return &layout{lists: lists, objects: objects, params: params, data: data.Bytes()}, nil
}

// placeValue writes one parameter's data-section bytes, interning
// strings and buffers by content (§4.1 "Strings are deduplicated by
// content ... buffers share storage by identical (length, bytes)
// content"), and returns the byte offset of the value (after any
// buffer length prefix).
func placeValue(data *pool.ByteBuffer, interned *internTable, p Parameter) (int, error) {
	size, err := valueSize(p)
	if err != nil {
		return 0, err
	}

	content := make([]byte, 0, size)
	content, err = encodeValue(content, p)
	if err != nil {
		return 0, err
	}

	if p.Kind.IsBuffer() {
		key := internKey(p.Kind, content)
		if offset, ok := interned.lookup(key); ok {
			return offset, nil
		}

		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(bufferElementCount(p)))
		data.MustWrite(lenBuf[:])

		valueStart := data.Len()
		data.MustWrite(content)
		// A BufferBinary length need not be a multiple of 4; pad so the
		// next value stays addressable in 4-byte units.
		data.SetLength(align4(data.Len()))
		interned.insert(key, valueStart)

		return valueStart, nil
	}

	if isStringKind(p.Kind) {
		key := internKey(p.Kind, content)
		if offset, ok := interned.lookup(key); ok {
			return offset, nil
		}

		valueStart := data.Len()
		data.MustWrite(content)
		interned.insert(key, valueStart)

		return valueStart, nil
	}

	valueStart := data.Len()
	data.MustWrite(content)

	return valueStart, nil
}

func internKey(k format.AampType, content []byte) []byte {
	key := make([]byte, 0, len(content)+1)
	key = append(key, byte(k))
	key = append(key, content...)

	return key
}

func isStringKind(k format.AampType) bool {
	switch k {
	case format.AampString32, format.AampString64, format.AampString256, format.AampStringRef:
		return true
	default:
		return false
	}
}

func bufferElementCount(p Parameter) int {
	switch p.Kind {
	case format.AampBufferInt:
		return len(p.bufInt)
	case format.AampBufferF32:
		return len(p.bufF32)
	case format.AampBufferU32:
		return len(p.bufU32)
	case format.AampBufferBinary:
		return len(p.bufBinary)
	default:
		return 0
	}
}

// EmitAAMP encodes pio into an AAMP byte buffer (§4.1 "Encoder
// contract"). Output is deterministic: repeated calls on an unchanged
// tree produce identical bytes.
func EmitAAMP(pio *ParameterIO) ([]byte, error) {
	lay, err := layoutTree(pio)
	if err != nil {
		return nil, err
	}

	listsBase := headerSize
	objectsBase := listsBase + len(lay.lists)*listRecordSize
	paramsBase := objectsBase + len(lay.objects)*objectRecordSize
	dataBase := paramsBase + len(lay.params)*paramRecordSize
	dataTypeBase := dataBase + len(lay.data)

	dataTypeBytes := encodeStringRef(nil, pio.DataType)

	out := pool.NewByteBuffer(dataTypeBase + len(dataTypeBytes))
	out.SetLength(headerSize)

	if err := writeListRecords(out, lay, listsBase, objectsBase); err != nil {
		return nil, err
	}

	if err := writeObjectRecords(out, lay, objectsBase, paramsBase); err != nil {
		return nil, err
	}

	if err := writeParamRecords(out, lay, paramsBase, dataBase); err != nil {
		return nil, err
	}

	out.MustWrite(lay.data)
	out.MustWrite(dataTypeBytes)

	pioOffset := dataTypeBase - headerSize
	if pioOffset < 0 || int64(pioOffset) > int64(^uint32(0)) {
		return nil, errs.InvalidData("AAMP data-type string offset overflow")
	}

	writeHeader(out.Bytes(), header{
		version:            aampVersion,
		flags:              aampFlagsLE | aampFlagsUTF,
		fileSize:           uint32(out.Len()),
		pioVersion:         pio.Version,
		pioOffset:          uint32(pioOffset),
		listCount:          uint32(len(lay.lists)),
		objectCount:        uint32(len(lay.objects)),
		paramCount:         uint32(len(lay.params)),
		dataSectionSize:    uint32(len(lay.data)),
		stringSectionSize:  uint32(len(dataTypeBytes)),
		unknownSectionSize: pio.UnknownSectionSize,
	})

	return out.Bytes(), nil
}

func writeHeader(b []byte, h header) {
	copy(b[0:4], aampMagic)
	binary.LittleEndian.PutUint32(b[4:8], h.version)
	binary.LittleEndian.PutUint32(b[8:12], h.flags)
	binary.LittleEndian.PutUint32(b[12:16], h.fileSize)
	binary.LittleEndian.PutUint32(b[16:20], h.pioVersion)
	binary.LittleEndian.PutUint32(b[20:24], h.pioOffset)
	binary.LittleEndian.PutUint32(b[24:28], h.listCount)
	binary.LittleEndian.PutUint32(b[28:32], h.objectCount)
	binary.LittleEndian.PutUint32(b[32:36], h.paramCount)
	binary.LittleEndian.PutUint32(b[36:40], h.dataSectionSize)
	binary.LittleEndian.PutUint32(b[40:44], h.stringSectionSize)
	binary.LittleEndian.PutUint32(b[44:48], h.unknownSectionSize)
}

func writeListRecords(out *pool.ByteBuffer, lay *layout, listsBase, objectsBase int) error {
	for i, l := range lay.lists {
		recordStart := listsBase + i*listRecordSize

		listsRel, err := relOffset16(recordStart, listsBase+l.childListsStart*listRecordSize, l.childListsCount)
		if err != nil {
			return err
		}

		objsRel, err := relOffset16(recordStart, objectsBase+l.childObjsStart*objectRecordSize, l.childObjsCount)
		if err != nil {
			return err
		}

		var rec [listRecordSize]byte
		binary.LittleEndian.PutUint32(rec[0:4], l.name.Hash())
		binary.LittleEndian.PutUint16(rec[4:6], listsRel)
		binary.LittleEndian.PutUint16(rec[6:8], uint16(l.childListsCount))
		binary.LittleEndian.PutUint16(rec[8:10], objsRel)
		binary.LittleEndian.PutUint16(rec[10:12], uint16(l.childObjsCount))
		out.MustWrite(rec[:])
	}

	return nil
}

func writeObjectRecords(out *pool.ByteBuffer, lay *layout, objectsBase, paramsBase int) error {
	for j, o := range lay.objects {
		recordStart := objectsBase + j*objectRecordSize

		paramsRel, err := relOffset16(recordStart, paramsBase+o.paramsStart*paramRecordSize, o.paramsCount)
		if err != nil {
			return err
		}

		var rec [objectRecordSize]byte
		binary.LittleEndian.PutUint32(rec[0:4], o.name.Hash())
		binary.LittleEndian.PutUint16(rec[4:6], paramsRel)
		binary.LittleEndian.PutUint16(rec[6:8], uint16(o.paramsCount))
		out.MustWrite(rec[:])
	}

	return nil
}

func writeParamRecords(out *pool.ByteBuffer, lay *layout, paramsBase, dataBase int) error {
	for k, p := range lay.params {
		recordStart := paramsBase + k*paramRecordSize
		targetByte := dataBase + p.dataOffset
		delta := targetByte - recordStart

		if delta < 0 || delta%4 != 0 {
			return errs.InvalidData("AAMP parameter data offset is not 4-byte aligned")
		}

		rel := uint32(delta / 4)
		if !u24.Fits(rel) {
			return errs.InvalidData(fmt.Sprintf("AAMP parameter %s data offset exceeds 24 bits", p.name))
		}

		var rec [paramRecordSize]byte
		binary.LittleEndian.PutUint32(rec[0:4], p.name.Hash())
		u24.Put(rec[4:7], rel, leEngine)
		rec[7] = byte(p.value.Kind)
		out.MustWrite(rec[:])
	}

	return nil
}

// relOffset16 computes a 4-byte-unit relative offset for a list/object
// record's 16-bit offset fields, returning 0 when there are no children
// (the field is then meaningless and never read).
func relOffset16(recordStart, targetByte, count int) (uint16, error) {
	if count == 0 {
		return 0, nil
	}

	delta := targetByte - recordStart
	if delta < 0 || delta%4 != 0 {
		return 0, errs.InvalidData("AAMP child offset is not 4-byte aligned")
	}

	rel := delta / 4
	if rel > 0xFFFF {
		return 0, errs.InvalidData("AAMP child offset exceeds 16 bits")
	}

	return uint16(rel), nil
}

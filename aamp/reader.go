package aamp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
)

var errUTF8 = errs.Any("invalid utf-8 byte sequence")

type header struct {
	version            uint32
	flags              uint32
	fileSize           uint32
	pioVersion         uint32
	pioOffset          uint32
	listCount          uint32
	objectCount        uint32
	paramCount         uint32
	dataSectionSize    uint32
	stringSectionSize  uint32
	unknownSectionSize uint32
}

func readHeader(b []byte) (header, error) {
	if len(b) < headerSize {
		return header{}, errs.InvalidData("buffer shorter than AAMP header")
	}

	if string(b[0:4]) != aampMagic {
		return header{}, errs.InvalidData(fmt.Sprintf("bad AAMP magic %q", b[0:4]))
	}

	h := header{
		version:            binary.LittleEndian.Uint32(b[4:8]),
		flags:              binary.LittleEndian.Uint32(b[8:12]),
		fileSize:           binary.LittleEndian.Uint32(b[12:16]),
		pioVersion:         binary.LittleEndian.Uint32(b[16:20]),
		pioOffset:          binary.LittleEndian.Uint32(b[20:24]),
		listCount:          binary.LittleEndian.Uint32(b[24:28]),
		objectCount:        binary.LittleEndian.Uint32(b[28:32]),
		paramCount:         binary.LittleEndian.Uint32(b[32:36]),
		dataSectionSize:    binary.LittleEndian.Uint32(b[36:40]),
		stringSectionSize:  binary.LittleEndian.Uint32(b[40:44]),
		unknownSectionSize: binary.LittleEndian.Uint32(b[44:48]),
	}

	if h.flags&aampFlagsLE == 0 {
		return header{}, errs.InvalidData("big-endian AAMP is not supported")
	}

	if h.version != aampVersion {
		return header{}, errs.InvalidData(fmt.Sprintf("unsupported AAMP version %d", h.version))
	}

	return h, nil
}

// rawListRecord, rawObjectRecord, rawParamRecord mirror §4.1 "Node
// records" verbatim, before being resolved into the tree model.
type rawListRecord struct {
	name           uint32
	listsRelOffset uint32
	listCount      uint16
	objsRelOffset  uint32
	objectCount    uint16
}

type rawObjectRecord struct {
	name            uint32
	paramsRelOffset uint32
	paramCount      uint16
}

type rawParamRecord struct {
	name          uint32
	dataRelOffset uint32
	typ           format.AampType
}

// ParseAAMP decodes an AAMP byte buffer into a ParameterIO tree (§4.1
// "Decoder contract").
func ParseAAMP(b []byte) (*ParameterIO, error) {
	h, err := readHeader(b)
	if err != nil {
		return nil, err
	}

	listsBase := headerSize
	objectsBase := listsBase + int(h.listCount)*listRecordSize
	paramsBase := objectsBase + int(h.objectCount)*objectRecordSize
	dataBase := paramsBase + int(h.paramCount)*paramRecordSize

	if len(b) < dataBase {
		return nil, errs.InvalidData("AAMP record tables run past end of buffer")
	}

	lists, err := readListRecords(b, listsBase, int(h.listCount))
	if err != nil {
		return nil, err
	}

	objects, err := readObjectRecords(b, objectsBase, int(h.objectCount))
	if err != nil {
		return nil, err
	}

	params, err := readParamRecords(b, paramsBase, int(h.paramCount))
	if err != nil {
		return nil, err
	}

	dataEnd := dataBase + int(h.dataSectionSize)
	if dataEnd > len(b) {
		return nil, errs.InvalidData("AAMP data section exceeds buffer length")
	}

	ranges := tableRanges{listsBase, objectsBase, paramsBase, dataBase, len(b)}

	if len(lists) == 0 {
		return nil, errs.InvalidData("AAMP has no root list")
	}

	builder := &treeBuilder{
		buf:     b,
		lists:   lists,
		objects: objects,
		params:  params,
		ranges:  ranges,
	}

	root, err := builder.buildList(0)
	if err != nil {
		return nil, err
	}

	dataType, err := readTrailingString(b, headerSize+int(h.pioOffset))
	if err != nil {
		return nil, err
	}

	return &ParameterIO{
		Version:            h.pioVersion,
		DataType:           dataType,
		Root:               root,
		UnknownSectionSize: h.unknownSectionSize,
	}, nil
}

type tableRanges struct {
	listsBase, objectsBase, paramsBase, dataBase, end int
}

// resolveIndex converts an absolute byte offset produced by a record's
// relative-offset field into an index within whichever table it falls
// in, and the table's record size.
func (r tableRanges) resolveIndex(off int) (table int, recordSize int) {
	switch {
	case off >= r.listsBase && off < r.objectsBase:
		return 0, listRecordSize
	case off >= r.objectsBase && off < r.paramsBase:
		return 1, objectRecordSize
	case off >= r.paramsBase && off < r.dataBase:
		return 2, paramRecordSize
	default:
		return -1, 0
	}
}

func readListRecords(b []byte, base, count int) ([]rawListRecord, error) {
	out := make([]rawListRecord, count)
	for i := 0; i < count; i++ {
		off := base + i*listRecordSize
		if off+listRecordSize > len(b) {
			return nil, errs.InvalidData("AAMP list record out of bounds")
		}

		rec := b[off : off+listRecordSize]
		out[i] = rawListRecord{
			name:           binary.LittleEndian.Uint32(rec[0:4]),
			listsRelOffset: uint32(rec[4]) | uint32(rec[5])<<8,
			listCount:      binary.LittleEndian.Uint16(rec[6:8]),
			objsRelOffset:  uint32(rec[8]) | uint32(rec[9])<<8,
			objectCount:    binary.LittleEndian.Uint16(rec[10:12]),
		}
	}

	return out, nil
}

func readObjectRecords(b []byte, base, count int) ([]rawObjectRecord, error) {
	out := make([]rawObjectRecord, count)
	for i := 0; i < count; i++ {
		off := base + i*objectRecordSize
		if off+objectRecordSize > len(b) {
			return nil, errs.InvalidData("AAMP object record out of bounds")
		}

		rec := b[off : off+objectRecordSize]
		out[i] = rawObjectRecord{
			name:            binary.LittleEndian.Uint32(rec[0:4]),
			paramsRelOffset: uint32(rec[4]) | uint32(rec[5])<<8,
			paramCount:      binary.LittleEndian.Uint16(rec[6:8]),
		}
	}

	return out, nil
}

func readParamRecords(b []byte, base, count int) ([]rawParamRecord, error) {
	out := make([]rawParamRecord, count)
	for i := 0; i < count; i++ {
		off := base + i*paramRecordSize
		if off+paramRecordSize > len(b) {
			return nil, errs.InvalidData("AAMP parameter record out of bounds")
		}

		rec := b[off : off+paramRecordSize]
		offset24 := uint32(rec[4]) | uint32(rec[5])<<8 | uint32(rec[6])<<16
		out[i] = rawParamRecord{
			name:          binary.LittleEndian.Uint32(rec[0:4]),
			dataRelOffset: offset24,
			typ:           format.AampType(rec[7]),
		}
	}

	return out, nil
}

type treeBuilder struct {
	buf     []byte
	lists   []rawListRecord
	objects []rawObjectRecord
	params  []rawParamRecord
	ranges  tableRanges
}

func (t *treeBuilder) buildList(idx int) (*ParameterList, error) {
	if idx < 0 || idx >= len(t.lists) {
		return nil, errs.InvalidData("AAMP list index out of range")
	}

	rec := t.lists[idx]
	list := NewParameterList()

	if rec.listCount > 0 {
		recordStart := t.ranges.listsBase + idx*listRecordSize
		childStart, err := t.childIndex(recordStart, rec.listsRelOffset, 0, listRecordSize)
		if err != nil {
			return nil, err
		}

		for i := 0; i < int(rec.listCount); i++ {
			child, err := t.buildList(childStart + i)
			if err != nil {
				return nil, err
			}

			list.InsertList(Name(t.lists[childStart+i].name), child)
		}
	}

	if rec.objectCount > 0 {
		recordStart := t.ranges.listsBase + idx*listRecordSize
		childStart, err := t.childIndex(recordStart, rec.objsRelOffset, 1, objectRecordSize)
		if err != nil {
			return nil, err
		}

		for i := 0; i < int(rec.objectCount); i++ {
			objIdx := childStart + i
			obj, err := t.buildObject(objIdx)
			if err != nil {
				return nil, err
			}

			list.InsertObject(Name(t.objects[objIdx].name), obj)
		}
	}

	return list, nil
}

func (t *treeBuilder) buildObject(idx int) (*ParameterObject, error) {
	if idx < 0 || idx >= len(t.objects) {
		return nil, errs.InvalidData("AAMP object index out of range")
	}

	rec := t.objects[idx]
	obj := NewParameterObject()

	if rec.paramCount > 0 {
		recordStart := t.ranges.objectsBase + idx*objectRecordSize
		childStart, err := t.childIndex(recordStart, rec.paramsRelOffset, 2, paramRecordSize)
		if err != nil {
			return nil, err
		}

		for i := 0; i < int(rec.paramCount); i++ {
			p, err := t.decodeParam(childStart + i)
			if err != nil {
				return nil, err
			}

			obj.Insert(Name(t.params[childStart+i].name), p)
		}
	}

	return obj, nil
}

// childIndex resolves a record's relative offset field into an index
// in the expected table, validating the target actually lands there.
func (t *treeBuilder) childIndex(recordStart int, relOffset uint32, wantTable int, recordSize int) (int, error) {
	abs := recordStart + int(relOffset)*4
	table, size := t.ranges.resolveIndex(abs)
	if table != wantTable || size != recordSize {
		return 0, errs.InvalidData("AAMP relative offset does not land in expected table")
	}

	base := [...]int{t.ranges.listsBase, t.ranges.objectsBase, t.ranges.paramsBase}[wantTable]

	return (abs - base) / recordSize, nil
}

func (t *treeBuilder) decodeParam(idx int) (Parameter, error) {
	rec := t.params[idx]
	recordStart := t.ranges.paramsBase + idx*paramRecordSize
	dataOff := recordStart + int(rec.dataRelOffset)*4

	return decodeParamValue(t.buf, dataOff, rec.typ, t.ranges)
}

func decodeParamValue(b []byte, off int, typ format.AampType, ranges tableRanges) (Parameter, error) {
	readU32 := func(o int) (uint32, error) {
		if o < 0 || o+4 > len(b) {
			return 0, errs.InvalidData("AAMP parameter value out of bounds")
		}

		return binary.LittleEndian.Uint32(b[o : o+4]), nil
	}

	readF32 := func(o int) (float32, error) {
		v, err := readU32(o)
		if err != nil {
			return 0, err
		}

		return math.Float32frombits(v), nil
	}

	switch typ {
	case format.AampBool:
		v, err := readU32(off)
		if err != nil {
			return Parameter{}, err
		}

		return NewBool(v != 0), nil
	case format.AampF32:
		v, err := readF32(off)
		if err != nil {
			return Parameter{}, err
		}

		return NewF32(v), nil
	case format.AampInt:
		v, err := readU32(off)
		if err != nil {
			return Parameter{}, err
		}

		return NewInt(int32(v)), nil
	case format.AampU32:
		v, err := readU32(off)
		if err != nil {
			return Parameter{}, err
		}

		return NewU32(v), nil
	case format.AampVec2:
		x, err := readF32(off)
		if err != nil {
			return Parameter{}, err
		}

		y, err := readF32(off + 4)
		if err != nil {
			return Parameter{}, err
		}

		return NewVec2(Vec2{X: F32(x), Y: F32(y)}), nil
	case format.AampVec3:
		vals, err := readF32s(b, off, 3)
		if err != nil {
			return Parameter{}, err
		}

		return NewVec3(Vec3{X: F32(vals[0]), Y: F32(vals[1]), Z: F32(vals[2])}), nil
	case format.AampVec4:
		vals, err := readF32s(b, off, 4)
		if err != nil {
			return Parameter{}, err
		}

		return NewVec4(Vec4{X: F32(vals[0]), Y: F32(vals[1]), Z: F32(vals[2]), W: F32(vals[3])}), nil
	case format.AampColor:
		vals, err := readF32s(b, off, 4)
		if err != nil {
			return Parameter{}, err
		}

		return NewColor(Color{R: F32(vals[0]), G: F32(vals[1]), B: F32(vals[2]), A: F32(vals[3])}), nil
	case format.AampQuat:
		vals, err := readF32s(b, off, 4)
		if err != nil {
			return Parameter{}, err
		}

		return NewQuat(Quat{X: F32(vals[0]), Y: F32(vals[1]), Z: F32(vals[2]), W: F32(vals[3])}), nil
	case format.AampString32, format.AampString64, format.AampString256:
		width, err := fixedCapacityFor(typ)
		if err != nil {
			return Parameter{}, err
		}

		if off < 0 || off+width > len(b) {
			return Parameter{}, errs.InvalidData("AAMP fixed string out of bounds")
		}

		s, err := readCString(b[off : off+width])
		if err != nil {
			return Parameter{}, err
		}

		return Parameter{Kind: typ, str: FixedSafeString{Cap: width, Value: s}}, nil
	case format.AampStringRef:
		s, err := readCStringUnbounded(b, off)
		if err != nil {
			return Parameter{}, err
		}

		return NewStringRef(s), nil
	case format.AampCurve1, format.AampCurve2, format.AampCurve3, format.AampCurve4:
		n := curveArity(typ)
		lanes := make([]SubCurve, n)
		cur := off
		for i := 0; i < n; i++ {
			intA, err := readU32(cur)
			if err != nil {
				return Parameter{}, err
			}

			intB, err := readU32(cur + 4)
			if err != nil {
				return Parameter{}, err
			}

			vals, err := readF32s(b, cur+8, 30)
			if err != nil {
				return Parameter{}, err
			}

			var arr [30]F32
			for j, v := range vals {
				arr[j] = F32(v)
			}

			lanes[i] = SubCurve{IntA: intA, IntB: intB, Values: arr}
			cur += 128
		}

		return Parameter{Kind: typ, curve: Curve{Lanes: lanes}}, nil
	case format.AampBufferInt:
		length, err := readBufferLength(b, off)
		if err != nil {
			return Parameter{}, err
		}

		out := make([]int32, length)
		for i := range out {
			v, err := readU32(off + i*4)
			if err != nil {
				return Parameter{}, err
			}

			out[i] = int32(v)
		}

		return NewBufferInt(out), nil
	case format.AampBufferF32:
		length, err := readBufferLength(b, off)
		if err != nil {
			return Parameter{}, err
		}

		vals, err := readF32s(b, off, length)
		if err != nil {
			return Parameter{}, err
		}

		out := make([]F32, length)
		for i, v := range vals {
			out[i] = F32(v)
		}

		return NewBufferF32(out), nil
	case format.AampBufferU32:
		length, err := readBufferLength(b, off)
		if err != nil {
			return Parameter{}, err
		}

		out := make([]uint32, length)
		for i := range out {
			v, err := readU32(off + i*4)
			if err != nil {
				return Parameter{}, err
			}

			out[i] = v
		}

		return NewBufferU32(out), nil
	case format.AampBufferBinary:
		length, err := readBufferLength(b, off)
		if err != nil {
			return Parameter{}, err
		}

		if off < 0 || off+length > len(b) {
			return Parameter{}, errs.InvalidData("AAMP buffer binary out of bounds")
		}

		out := make([]byte, length)
		copy(out, b[off:off+length])

		return NewBufferBinary(out), nil
	default:
		return Parameter{}, errs.InvalidData(fmt.Sprintf("unknown AAMP parameter type byte %d", typ))
	}
}

func readF32s(b []byte, off, n int) ([]float32, error) {
	if off < 0 || off+n*4 > len(b) {
		return nil, errs.InvalidData("AAMP float data out of bounds")
	}

	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[off+i*4 : off+i*4+4]))
	}

	return out, nil
}

func readBufferLength(b []byte, dataOff int) (int, error) {
	if dataOff-4 < 0 || dataOff > len(b) {
		return 0, errs.InvalidData("AAMP buffer length prefix out of bounds")
	}

	length := int32(binary.LittleEndian.Uint32(b[dataOff-4 : dataOff]))
	if length < 0 {
		return 0, errs.InvalidData("AAMP buffer has negative length")
	}

	return int(length), nil
}

func readCString(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	if !utf8.Valid(b) {
		return "", errs.BadString(errUTF8)
	}

	return string(b), nil
}

func readCStringUnbounded(b []byte, off int) (string, error) {
	if off < 0 || off > len(b) {
		return "", errs.InvalidData("AAMP string offset out of bounds")
	}

	for i := off; i < len(b); i++ {
		if b[i] == 0 {
			s := b[off:i]
			if !utf8.Valid(s) {
				return "", errs.BadString(errUTF8)
			}

			return string(s), nil
		}
	}

	return "", errs.InvalidData("AAMP string is not null-terminated")
}

func readTrailingString(b []byte, off int) (string, error) {
	if off < 0 || off > len(b) {
		return "", errs.InvalidData("AAMP data-type string offset out of bounds")
	}

	return readCStringUnbounded(b, off)
}

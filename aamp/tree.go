package aamp

import "github.com/switchtoolbox/paramio/internal/omap"

// ParameterObject is an ordered mapping from Name to Parameter (§3.3).
// It wraps omap.U32Map so a duplicate Name is rejected on insert rather
// than silently shadowing the earlier entry.
type ParameterObject struct {
	params *omap.U32Map[Parameter]
}

// NewParameterObject builds an empty ParameterObject.
func NewParameterObject() *ParameterObject {
	return &ParameterObject{params: omap.NewU32Map[Parameter]()}
}

// Insert adds name/value, returning false if name is already present.
func (o *ParameterObject) Insert(name Name, value Parameter) bool {
	return o.params.Insert(name.Hash(), value)
}

// Get returns the parameter stored under name, if any.
func (o *ParameterObject) Get(name Name) (Parameter, bool) {
	return o.params.Get(name.Hash())
}

// Len returns the number of parameters.
func (o *ParameterObject) Len() int { return o.params.Len() }

// IsEmpty reports whether the object holds no parameters.
func (o *ParameterObject) IsEmpty() bool { return o.params.IsEmpty() }

// Names returns parameter names in insertion order.
func (o *ParameterObject) Names() []Name {
	keys := o.params.Keys()
	out := make([]Name, len(keys))
	for i, k := range keys {
		out[i] = Name(k)
	}

	return out
}

// EachSorted calls fn for every parameter ordered ascending by Name
// hash, the order the writer emits records in (§3.3 "Ordering").
func (o *ParameterObject) EachSorted(fn func(name Name, p Parameter)) {
	o.params.EachSorted(func(k uint32, p Parameter) {
		fn(Name(k), p)
	})
}

// sortedParamNames returns this object's parameter names ascending by
// Name hash, the layout order the writer groups records in.
func (o *ParameterObject) sortedParamNames() []Name {
	keys := o.params.SortedKeys()
	out := make([]Name, len(keys))
	for i, k := range keys {
		out[i] = Name(k)
	}

	return out
}

// ParameterList is a node in the AAMP tree holding child lists and
// child objects, each an ordered mapping from Name (§3.3).
type ParameterList struct {
	lists   *omap.U32Map[*ParameterList]
	objects *omap.U32Map[*ParameterObject]
}

// NewParameterList builds an empty ParameterList.
func NewParameterList() *ParameterList {
	return &ParameterList{
		lists:   omap.NewU32Map[*ParameterList](),
		objects: omap.NewU32Map[*ParameterObject](),
	}
}

// InsertList adds a child list under name, returning false if name is
// already present among this node's child lists.
func (l *ParameterList) InsertList(name Name, child *ParameterList) bool {
	return l.lists.Insert(name.Hash(), child)
}

// InsertObject adds a child object under name, returning false if name
// is already present among this node's child objects.
func (l *ParameterList) InsertObject(name Name, child *ParameterObject) bool {
	return l.objects.Insert(name.Hash(), child)
}

// List returns the child list stored under name, if any.
func (l *ParameterList) List(name Name) (*ParameterList, bool) {
	return l.lists.Get(name.Hash())
}

// Object returns the child object stored under name, if any.
func (l *ParameterList) Object(name Name) (*ParameterObject, bool) {
	return l.objects.Get(name.Hash())
}

// ListCount returns the number of direct child lists.
func (l *ParameterList) ListCount() int { return l.lists.Len() }

// ObjectCount returns the number of direct child objects.
func (l *ParameterList) ObjectCount() int { return l.objects.Len() }

// EachListSorted calls fn for every child list ordered ascending by
// Name hash.
func (l *ParameterList) EachListSorted(fn func(name Name, child *ParameterList)) {
	l.lists.EachSorted(func(k uint32, child *ParameterList) {
		fn(Name(k), child)
	})
}

// EachObjectSorted calls fn for every child object ordered ascending by
// Name hash.
func (l *ParameterList) EachObjectSorted(fn func(name Name, child *ParameterObject)) {
	l.objects.EachSorted(func(k uint32, child *ParameterObject) {
		fn(Name(k), child)
	})
}

// sortedListNames returns this node's child list names ascending by
// Name hash, the layout order the writer groups records in (§4.1
// "Layout order").
func (l *ParameterList) sortedListNames() []Name {
	keys := l.lists.SortedKeys()
	out := make([]Name, len(keys))
	for i, k := range keys {
		out[i] = Name(k)
	}

	return out
}

// sortedObjectNames returns this node's child object names ascending by
// Name hash.
func (l *ParameterList) sortedObjectNames() []Name {
	keys := l.objects.SortedKeys()
	out := make([]Name, len(keys))
	for i, k := range keys {
		out[i] = Name(k)
	}

	return out
}

// ParameterIO is the top-level AAMP document: a version, a data-type
// label, and the root ParameterList (§3.3).
type ParameterIO struct {
	// Version is canonically 0.
	Version uint32
	// DataType defaults to "xml" in reference archives.
	DataType string
	Root     *ParameterList

	// UnknownSectionSize is retained verbatim from the decoded header so
	// a round-trip re-encode reproduces it even though the reference
	// decoder never interprets it (§9 open question (a)).
	UnknownSectionSize uint32
}

// NewParameterIO builds an empty ParameterIO with defaults matching a
// freshly authored archive: version 0, data type "xml", an empty root
// list named param_root.
func NewParameterIO() *ParameterIO {
	return &ParameterIO{
		Version:  0,
		DataType: "xml",
		Root:     NewParameterList(),
	}
}

package object

import "strings"

var (
	arrayType = NewType("Array")
	tupleType = NewType("Tuple")
	mapType   = NewType("Map")
	setType   = NewType("Set")
	rangeType = NewType("Range")
	sliceType = NewType("Slice")
)

// --- Array (mutable, ordered) ---

type Array struct {
	Elems []Object
}

func NewArray(elems []Object) *Array { return &Array{Elems: elems} }

func (*Array) Tag() Tag       { return TArray }
func (*Array) ObjType() *Type { return arrayType }
func (a *Array) ObjBool() (bool, error) { return len(a.Elems) > 0, nil }
func (a *Array) ObjArray() ([]Object, error) { return a.Elems, nil }
func (a *Array) ObjString() (string, error) { return printSeq("[", a.Elems, "]") }
func (a *Array) ObjInt() (int64, error) {
	return 0, NewError(IncompatibleType, "array has no integer coercion")
}
func (a *Array) ObjReal() (float64, error) {
	return 0, NewError(IncompatibleType, "array has no real coercion")
}

func (a *Array) Add(o Object) (Object, error) {
	v, ok := o.(*Array)
	if !ok {
		return nil, incompatible("+", a, o)
	}
	out := make([]Object, 0, len(a.Elems)+len(v.Elems))
	out = append(out, a.Elems...)
	out = append(out, v.Elems...)
	return NewArray(out), nil
}

func (a *Array) GetItem(idx Object) (Object, error) {
	i, err := indexInto(idx, len(a.Elems))
	if err != nil {
		return nil, err
	}
	return a.Elems[i], nil
}
func (a *Array) SetItem(idx, val Object) error {
	i, err := indexInto(idx, len(a.Elems))
	if err != nil {
		return err
	}
	a.Elems[i] = val
	return nil
}
func (a *Array) ObjIter() (Iter, error) { return NewSliceIter(a.Elems), nil }
func (a *Array) Equal(o Object) (Object, error) {
	v, ok := o.(*Array)
	if !ok || len(v.Elems) != len(a.Elems) {
		return Bool(false), nil
	}
	for i := range a.Elems {
		eq, err := elemEqual(a.Elems[i], v.Elems[i])
		if err != nil || !eq {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}
func (a *Array) NotEqual(o Object) (Object, error) { eq, _ := a.Equal(o); return Bool(!bool(eq.(Bool))), nil }
func (a *Array) Print() (string, error)            { return a.ObjString() }

func elemEqual(a, b Object) (bool, error) {
	c, ok := a.(Comparable)
	if !ok {
		return false, NewError(IncompatibleType, "%s is not comparable", a.Tag())
	}
	r, err := c.Equal(b)
	if err != nil {
		return false, err
	}
	bv, _ := r.(Bool)
	return bool(bv), nil
}

func printSeq(open string, elems []Object, close string) (string, error) {
	var sb strings.Builder
	sb.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		s, err := printOne(e)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteString(close)
	return sb.String(), nil
}

func printOne(o Object) (string, error) {
	if p, ok := o.(Printable); ok {
		return p.Print()
	}
	if c, ok := o.(Coercible); ok {
		return c.ObjString()
	}
	return o.Tag().String(), nil
}

// --- Tuple (immutable, ordered) ---

type Tuple struct {
	Elems []Object
}

func NewTuple(elems []Object) *Tuple { return &Tuple{Elems: elems} }

func (*Tuple) Tag() Tag       { return TTuple }
func (*Tuple) ObjType() *Type { return tupleType }
func (t *Tuple) ObjBool() (bool, error)      { return len(t.Elems) > 0, nil }
func (t *Tuple) ObjArray() ([]Object, error) { return t.Elems, nil }
func (t *Tuple) ObjString() (string, error)  { return printSeq("(", t.Elems, ")") }
func (t *Tuple) ObjInt() (int64, error) {
	return 0, NewError(IncompatibleType, "tuple has no integer coercion")
}
func (t *Tuple) ObjReal() (float64, error) {
	return 0, NewError(IncompatibleType, "tuple has no real coercion")
}
func (t *Tuple) GetItem(idx Object) (Object, error) {
	i, err := indexInto(idx, len(t.Elems))
	if err != nil {
		return nil, err
	}
	return t.Elems[i], nil
}
func (t *Tuple) SetItem(Object, Object) error {
	return NewError(IncompatibleType, "tuples are immutable")
}
func (t *Tuple) ObjIter() (Iter, error) { return NewSliceIter(t.Elems), nil }
func (t *Tuple) Equal(o Object) (Object, error) {
	v, ok := o.(*Tuple)
	if !ok || len(v.Elems) != len(t.Elems) {
		return Bool(false), nil
	}
	for i := range t.Elems {
		eq, err := elemEqual(t.Elems[i], v.Elems[i])
		if err != nil || !eq {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}
func (t *Tuple) NotEqual(o Object) (Object, error) { eq, _ := t.Equal(o); return Bool(!bool(eq.(Bool))), nil }
func (t *Tuple) Print() (string, error)            { return t.ObjString() }

// --- Map (insertion-ordered) ---

type mapEntry struct {
	key, val Object
}

type Map struct {
	order []int64 // unused; entries itself keeps insertion order
	index map[int64]int
	entries []mapEntry
}

func NewMap() *Map {
	return &Map{index: make(map[int64]int)}
}

func (*Map) Tag() Tag       { return TMap }
func (*Map) ObjType() *Type { return mapType }
func (m *Map) ObjBool() (bool, error) { return len(m.entries) > 0, nil }
func (m *Map) ObjInt() (int64, error) {
	return 0, NewError(IncompatibleType, "map has no integer coercion")
}
func (m *Map) ObjReal() (float64, error) {
	return 0, NewError(IncompatibleType, "map has no real coercion")
}
func (m *Map) ObjArray() ([]Object, error) {
	out := make([]Object, len(m.entries))
	for i, e := range m.entries {
		out[i] = NewTuple([]Object{e.key, e.val})
	}
	return out, nil
}
func (m *Map) ObjString() (string, error) {
	var sb strings.Builder
	sb.WriteString("{")
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		ks, err := printOne(e.key)
		if err != nil {
			return "", err
		}
		vs, err := printOne(e.val)
		if err != nil {
			return "", err
		}
		sb.WriteString(ks)
		sb.WriteString(": ")
		sb.WriteString(vs)
	}
	sb.WriteString("}")
	return sb.String(), nil
}
func (m *Map) Print() (string, error) { return m.ObjString() }

func hashOf(o Object) (int64, error) {
	h, ok := o.(Hashable)
	if !ok {
		return 0, NewError(IncompatibleType, "%s is not hashable", o.Tag())
	}
	return h.Hash()
}

func (m *Map) GetItem(key Object) (Object, error) {
	h, err := hashOf(key)
	if err != nil {
		return nil, err
	}
	i, ok := m.index[h]
	if !ok {
		return nil, NewError(KeyNotFound, "key not found: %v", key)
	}
	return m.entries[i].val, nil
}

func (m *Map) SetItem(key, val Object) error {
	h, err := hashOf(key)
	if err != nil {
		return err
	}
	if i, ok := m.index[h]; ok {
		m.entries[i].val = val
		return nil
	}
	m.index[h] = len(m.entries)
	m.entries = append(m.entries, mapEntry{key, val})
	return nil
}

func (m *Map) Delete(key Object) error {
	h, err := hashOf(key)
	if err != nil {
		return err
	}
	i, ok := m.index[h]
	if !ok {
		return NewError(KeyNotFound, "key not found: %v", key)
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, h)
	for hh, idx := range m.index {
		if idx > i {
			m.index[hh] = idx - 1
		}
	}
	return nil
}

func (m *Map) Len() int { return len(m.entries) }

func (m *Map) ObjIter() (Iter, error) {
	keys := make([]Object, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return NewSliceIter(keys), nil
}

// --- Set (insertion-ordered, unique) ---

type Set struct {
	order []Object
	index map[int64]int
}

func NewSet() *Set { return &Set{index: make(map[int64]int)} }

func (*Set) Tag() Tag       { return TSet }
func (*Set) ObjType() *Type { return setType }
func (s *Set) ObjBool() (bool, error) { return len(s.order) > 0, nil }
func (s *Set) ObjArray() ([]Object, error) { return s.order, nil }
func (s *Set) ObjInt() (int64, error) {
	return 0, NewError(IncompatibleType, "set has no integer coercion")
}
func (s *Set) ObjReal() (float64, error) {
	return 0, NewError(IncompatibleType, "set has no real coercion")
}
func (s *Set) ObjString() (string, error) { return printSeq("{", s.order, "}") }
func (s *Set) Print() (string, error)     { return s.ObjString() }

func (s *Set) Add(item Object) error {
	h, err := hashOf(item)
	if err != nil {
		return err
	}
	if _, ok := s.index[h]; ok {
		return nil
	}
	s.index[h] = len(s.order)
	s.order = append(s.order, item)
	return nil
}

func (s *Set) Contains(item Object) (bool, error) {
	h, err := hashOf(item)
	if err != nil {
		return false, err
	}
	_, ok := s.index[h]
	return ok, nil
}

func (s *Set) Len() int { return len(s.order) }

func (s *Set) ObjIter() (Iter, error) { return NewSliceIter(s.order), nil }

// --- Range (lazy integer sequence, start inclusive, stop exclusive) ---

type Range struct {
	Start, Stop, Step int64
}

func (*Range) Tag() Tag       { return TRange }
func (*Range) ObjType() *Type { return rangeType }
func (r *Range) ObjBool() (bool, error) {
	n, err := r.len()
	return n > 0, err
}
func (r *Range) ObjString() (string, error) { return r.Print() }
func (r *Range) Print() (string, error) {
	return "range(" + Int(r.Start).mustStr() + ", " + Int(r.Stop).mustStr() + ")", nil
}
func (i Int) mustStr() string { s, _ := i.ObjString(); return s }

func (r *Range) len() (int64, error) {
	if r.Step == 0 {
		return 0, NewError(IncompatibleType, "range step cannot be zero")
	}
	if (r.Step > 0 && r.Start >= r.Stop) || (r.Step < 0 && r.Start <= r.Stop) {
		return 0, nil
	}
	span := r.Stop - r.Start
	n := span / r.Step
	if span%r.Step != 0 {
		n++
	}
	if n < 0 {
		n = -n
	}
	return n, nil
}

func (r *Range) ObjArray() ([]Object, error) {
	n, err := r.len()
	if err != nil {
		return nil, err
	}
	out := make([]Object, 0, n)
	for v := r.Start; (r.Step > 0 && v < r.Stop) || (r.Step < 0 && v > r.Stop); v += r.Step {
		out = append(out, Int(v))
	}
	return out, nil
}

func (r *Range) ObjIter() (Iter, error) {
	elems, err := r.ObjArray()
	if err != nil {
		return nil, err
	}
	return NewSliceIter(elems), nil
}

// --- Slice (a view expression result: start:stop:step over a sequence) ---

type Slice struct {
	Start, Stop, Step Object // each Nil or Int
}

func (*Slice) Tag() Tag       { return TSlice }
func (*Slice) ObjType() *Type { return sliceType }
func (s *Slice) ObjBool() (bool, error) { return true, nil }
func (s *Slice) Print() (string, error) { return "slice", nil }

// Bounds resolves a Slice against a concrete sequence length, clamping per
// the usual Python-like slicing convention.
func (s *Slice) Bounds(n int) (start, stop, step int, err error) {
	step = 1
	if s.Step != nil {
		if _, isNil := s.Step.(Nil); !isNil {
			iv, e := asInt(s.Step)
			if e != nil {
				return 0, 0, 0, e
			}
			step = int(iv)
		}
	}
	if step == 0 {
		return 0, 0, 0, NewError(IncompatibleType, "slice step cannot be zero")
	}

	resolve := func(v Object, def int) (int, error) {
		if v == nil {
			return def, nil
		}
		if _, isNil := v.(Nil); isNil {
			return def, nil
		}
		iv, e := asInt(v)
		if e != nil {
			return 0, e
		}
		i := int(iv)
		if i < 0 {
			i += n
		}
		lo, hi := 0, n
		if step < 0 {
			lo, hi = -1, n-1
		}
		if i < lo {
			i = lo
		}
		if i > hi {
			i = hi
		}
		return i, nil
	}

	defStart, defStop := 0, n
	if step < 0 {
		defStart, defStop = n-1, -1
	}
	start, err = resolve(s.Start, defStart)
	if err != nil {
		return
	}
	stop, err = resolve(s.Stop, defStop)
	return
}

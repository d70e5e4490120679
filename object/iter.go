package object

var iterType = NewType("Iter")

// SliceIter is the generic iterator returned by every builtin sequence
// type's ObjIter. It holds a strong reference to the backing slice, which
// is enough to keep the source collection alive for the iterator's
// lifetime per §3.1's ownership rule, since Go's GC treats that slice
// header as an ordinary reference.
type SliceIter struct {
	elems []Object
	pos   int
}

func NewSliceIter(elems []Object) *SliceIter { return &SliceIter{elems: elems} }

func (*SliceIter) Tag() Tag       { return TIter }
func (*SliceIter) ObjType() *Type { return iterType }

func (it *SliceIter) HasNext() (Object, error) { return Bool(it.pos < len(it.elems)), nil }

func (it *SliceIter) Next() (Object, error) {
	if it.pos >= len(it.elems) {
		return nil, NewError(OutOfRange, "iterator exhausted")
	}
	v := it.elems[it.pos]
	it.pos++
	return v, nil
}

// FuncIter adapts an arbitrary (next, hasNext) pair into an Iter, for a
// source computed lazily rather than materialized up front. No builtin
// type uses it: Cmd iterates through CmdIter and Map/Set through
// SliceIter.
type FuncIter struct {
	next    func() (Object, error)
	hasNext func() (bool, error)
}

func NewFuncIter(hasNext func() (bool, error), next func() (Object, error)) *FuncIter {
	return &FuncIter{next: next, hasNext: hasNext}
}

func (*FuncIter) Tag() Tag       { return TIter }
func (*FuncIter) ObjType() *Type { return iterType }
func (it *FuncIter) HasNext() (Object, error) {
	ok, err := it.hasNext()
	return Bool(ok), err
}
func (it *FuncIter) Next() (Object, error) { return it.next() }

package object

// Factory centralizes value construction the way an object pool would in
// a refcounted host language; here it is a thin namespace of constructors
// kept together so callers reach for one place, grounded on how the
// teacher's vm package builds its handful of AST-adjacent value types.
type Factory struct{}

func (Factory) NewArray(elems []Object) *Array { return NewArray(elems) }
func (Factory) NewTuple(elems []Object) *Tuple { return NewTuple(elems) }
func (Factory) NewMap() *Map                   { return NewMap() }
func (Factory) NewSet() *Set                   { return NewSet() }
func (Factory) NewClass(name string) *Type     { return NewType(name) }
func (Factory) NewInstance(t *Type) *Instance  { return NewInstance(t) }
func (Factory) NewCmd(status int, out, err string) *Cmd {
	return NewCmd(status, out, err)
}

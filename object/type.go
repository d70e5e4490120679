package object

// Type is itself an Object (Tag() == TType) and holds the method table for
// one concrete kind of value — either a builtin type (Int, String, ...) or
// a user-declared class.
type Type struct {
	Name    string
	Bases   []*Type
	Methods map[string]Object // name -> *Func (possibly a FuncWrapper once bound)

	// Builtin is a factory hook for calling a type like a function. No
	// type in this module sets it, so it is nil for builtin types and
	// user classes alike.
	Builtin func(i Interp, args []Object) (Object, error)
}

func NewType(name string) *Type {
	return &Type{Name: name, Methods: make(map[string]Object)}
}

func (t *Type) Tag() Tag      { return TType }
func (t *Type) ObjType() *Type { return typeType }

var typeType = &Type{Name: "Type", Methods: map[string]Object{}}

// Call makes a Type invocable as a constructor (`Foo(...)`), satisfying
// object.Callable the same way a Func does — the expression executor's
// call-expression dispatch doesn't need to special-case classes.
func (t *Type) Call(i Interp, args []Object) (Object, error) {
	return t.Construct(i, args)
}

// Construct creates an instance of t. User classes build an *Instance and
// run their `init` method if declared; builtin types defer to Builtin.
func (t *Type) Construct(i Interp, args []Object) (Object, error) {
	if t.Builtin != nil {
		return t.Builtin(i, args)
	}

	inst := &Instance{class: t, Attrs: make(map[string]Object)}
	if init, ok := t.LookupMethod("init"); ok {
		if fn, ok := init.(*Func); ok {
			if _, err := i.CallFunc(fn, inst, args); err != nil {
				return nil, err
			}
		}
	}
	return inst, nil
}

// LookupMethod searches t then its bases, depth-first, left-to-right —
// the same order a reader would scan a `class Foo(A, B)` declaration.
func (t *Type) LookupMethod(name string) (Object, bool) {
	if m, ok := t.Methods[name]; ok {
		return m, true
	}
	for _, base := range t.Bases {
		if m, ok := base.LookupMethod(name); ok {
			return m, true
		}
	}
	return nil, false
}

func (t *Type) IsSubtype(other *Type) bool {
	if t == other {
		return true
	}
	for _, base := range t.Bases {
		if base.IsSubtype(other) {
			return true
		}
	}
	return false
}

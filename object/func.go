package object

// Package-external forward reference: the closure a Func snapshots is a
// symbol-table stack, but object/ cannot import symtab/ (symtab imports
// object/ for the values it stores). Closure is declared as an opaque
// interface here and satisfied by *symtab.Stack.
type Closure interface {
	// Snapshot rules are implemented by symtab.Stack; object only needs
	// something it can hand back unchanged to the interpreter at call
	// time.
}

var funcType = NewType("Func")

// Func is a user-defined function or lambda: parameter names, a positional
// tail of default-value objects, a variadic flag, a strong pointer to its
// AST body, and the closure snapshot taken at construction (§3.5).
type Func struct {
	Name     string
	Params   []string
	Defaults []Object // aligned to the tail of Params
	Variadic bool
	Lambda   bool
	Body     any // *ast.Block; kept as any to avoid an ast<->object import cycle
	Closure  Closure
}

func (*Func) Tag() Tag       { return TFunc }
func (*Func) ObjType() *Type { return funcType }
func (f *Func) ObjBool() (bool, error) { return true, nil }
func (f *Func) Print() (string, error) { return "func " + f.Name, nil }

func (f *Func) Call(i Interp, args []Object) (Object, error) {
	return i.CallFunc(f, nil, args)
}

// FuncWrapper binds a receiver to a method at attribute-lookup time,
// realizing §4.3's "Method calls receive the bound self as first argument
// via a FuncWrapper that captures (function, self)".
type FuncWrapper struct {
	Fn   *Func
	Self Object
}

func (*FuncWrapper) Tag() Tag       { return TFunc }
func (*FuncWrapper) ObjType() *Type { return funcType }
func (w *FuncWrapper) ObjBool() (bool, error) { return true, nil }
func (w *FuncWrapper) Print() (string, error) { return "bound method " + w.Fn.Name, nil }

func (w *FuncWrapper) Call(i Interp, args []Object) (Object, error) {
	return i.CallFunc(w.Fn, w.Self, args)
}

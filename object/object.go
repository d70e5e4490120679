// Package object implements the tagged-union runtime value model: the
// closed set of value types a nettle program can produce, and the
// operation-dispatch contract each type opts into.
package object

// Tag is the closed set of runtime value kinds.
type Tag int

const (
	TNil Tag = iota
	TBool
	TInt
	TReal
	TString
	TArray
	TTuple
	TMap
	TSet
	TFunc
	TClass
	TInstance
	TIter
	TModule
	TCmd
	TCmdIter
	TFile
	TRange
	TSlice
	TType
)

func (t Tag) String() string {
	names := [...]string{
		"Nil", "Bool", "Int", "Real", "String", "Array", "Tuple", "Map",
		"Set", "Func", "Class", "Instance", "Iter", "Module", "Cmd",
		"CmdIter", "File", "Range", "Slice", "Type",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "?"
}

// Object is the fundamental runtime value. Every concrete value type in
// this package implements it; which of the operation-dispatch interfaces
// below it additionally implements determines what the expression
// executor may do with it.
type Object interface {
	Tag() Tag
	ObjType() *Type
}

// Ref is a stable assignable slot, returned by AttrAssign so a compound
// op can read-modify-write through the same cell exactly once per spec
// §4.2 ("two-call AttrGet + AttrSet protocol").
type Ref interface {
	Get() Object
	Set(Object)
}

// Operation-dispatch contracts (§3.3). A type implements whichever subset
// applies to it; anything else fails with IncompatibleType at the call
// site, not here.

type Arithmetic interface {
	Add(Object) (Object, error)
	Sub(Object) (Object, error)
	Mult(Object) (Object, error)
	Div(Object) (Object, error)
	DivMod(Object) (Object, error)
	Pow(Object) (Object, error)
}

type Bitwise interface {
	BitAnd(Object) (Object, error)
	BitOr(Object) (Object, error)
	BitXor(Object) (Object, error)
	LeftShift(Object) (Object, error)
	RightShift(Object) (Object, error)
	BitNot() (Object, error)
}

type Logical interface {
	And(Object) (Object, error)
	Or(Object) (Object, error)
	Not() (Object, error)
}

type Comparable interface {
	Equal(Object) (Object, error)
	NotEqual(Object) (Object, error)
	Less(Object) (Object, error)
	Greater(Object) (Object, error)
	LessEq(Object) (Object, error)
	GreaterEq(Object) (Object, error)
}

type Indexable interface {
	GetItem(Object) (Object, error)
	SetItem(Object, Object) error
}

type Attributed interface {
	AttrGet(string) (Object, error)
	AttrAssign(string) (Ref, error)
}

type Iterable interface {
	ObjIter() (Iter, error)
}

type Iter interface {
	Object
	Next() (Object, error)
	HasNext() (Object, error)
}

type Coercible interface {
	ObjString() (string, error)
	ObjInt() (int64, error)
	ObjReal() (float64, error)
	ObjBool() (bool, error)
	ObjArray() ([]Object, error)
}

type Callable interface {
	Call(i Interp, args []Object) (Object, error)
}

type Hashable interface {
	Hash() (int64, error)
}

type Printable interface {
	Print() (string, error)
}

// Interp is the narrow slice of the executor a Callable needs to invoke
// user code (functions, bound methods, classes-as-constructors). Kept as
// an interface here, implemented by *interp.Executor, to avoid object/interp
// forming an import cycle.
type Interp interface {
	CallFunc(fn *Func, self Object, args []Object) (Object, error)
}

// Truthy coerces via ObjBool when available, else defaults per-type rules
// documented on each concrete type's ObjBool.
func Truthy(o Object) (bool, error) {
	c, ok := o.(Coercible)
	if !ok {
		return false, NewError(IncompatibleType, "%s has no boolean coercion", o.Tag())
	}
	return c.ObjBool()
}

package object

import (
	"math"
	"strconv"
	"strings"
)

var (
	nilType    = NewType("Nil")
	boolType   = NewType("Bool")
	intType    = NewType("Int")
	realType   = NewType("Real")
	stringType = NewType("String")
)

// --- Nil ---

type Nil struct{}

var NilVal = Nil{}

func (Nil) Tag() Tag       { return TNil }
func (Nil) ObjType() *Type { return nilType }
func (Nil) ObjBool() (bool, error)     { return false, nil }
func (n Nil) ObjString() (string, error) { return "nil", nil }
func (Nil) ObjInt() (int64, error)     { return 0, NewError(IncompatibleType, "nil has no integer coercion") }
func (Nil) ObjReal() (float64, error)  { return 0, NewError(IncompatibleType, "nil has no real coercion") }
func (Nil) ObjArray() ([]Object, error) {
	return nil, NewError(IncompatibleType, "nil has no array coercion")
}
func (n Nil) Equal(o Object) (Object, error)    { _, ok := o.(Nil); return Bool(ok), nil }
func (n Nil) NotEqual(o Object) (Object, error) { eq, _ := n.Equal(o); return Bool(!bool(eq.(Bool))), nil }
func (Nil) Hash() (int64, error) { return 0, nil }
func (n Nil) Print() (string, error) { return "nil", nil }

// --- Bool ---

type Bool bool

func (Bool) Tag() Tag       { return TBool }
func (Bool) ObjType() *Type { return boolType }
func (b Bool) ObjBool() (bool, error) { return bool(b), nil }
func (b Bool) ObjString() (string, error) {
	if b {
		return "true", nil
	}
	return "false", nil
}
func (b Bool) ObjInt() (int64, error) {
	if b {
		return 1, nil
	}
	return 0, nil
}
func (b Bool) ObjReal() (float64, error) { i, _ := b.ObjInt(); return float64(i), nil }
func (Bool) ObjArray() ([]Object, error) {
	return nil, NewError(IncompatibleType, "bool has no array coercion")
}
func (b Bool) And(o Object) (Object, error) {
	ob, err := Truthy(o)
	if err != nil {
		return nil, err
	}
	return Bool(bool(b) && ob), nil
}
func (b Bool) Or(o Object) (Object, error) {
	ob, err := Truthy(o)
	if err != nil {
		return nil, err
	}
	return Bool(bool(b) || ob), nil
}
func (b Bool) Not() (Object, error) { return Bool(!b), nil }
func (b Bool) Equal(o Object) (Object, error) {
	ob, ok := o.(Bool)
	return Bool(ok && ob == b), nil
}
func (b Bool) NotEqual(o Object) (Object, error) { eq, _ := b.Equal(o); return Bool(!bool(eq.(Bool))), nil }
func (b Bool) Hash() (int64, error) {
	if b {
		return 1, nil
	}
	return 0, nil
}
func (b Bool) Print() (string, error) { return b.ObjString() }

// --- Int ---

type Int int64

func (Int) Tag() Tag       { return TInt }
func (Int) ObjType() *Type { return intType }
func (i Int) ObjBool() (bool, error)   { return i != 0, nil }
func (i Int) ObjString() (string, error) { return strconv.FormatInt(int64(i), 10), nil }
func (i Int) ObjInt() (int64, error)   { return int64(i), nil }
func (i Int) ObjReal() (float64, error) { return float64(i), nil }
func (Int) ObjArray() ([]Object, error) {
	return nil, NewError(IncompatibleType, "int has no array coercion")
}

// numeric overflow: this implementation picks wrap (two's-complement,
// matching Go's native int64 semantics), per §7's "implementations should
// pick and document".
func (i Int) Add(o Object) (Object, error) {
	switch v := o.(type) {
	case Int:
		return Int(int64(i) + int64(v)), nil
	case Real:
		return Real(float64(i) + float64(v)), nil
	}
	return nil, incompatible("+", i, o)
}
func (i Int) Sub(o Object) (Object, error) {
	switch v := o.(type) {
	case Int:
		return Int(int64(i) - int64(v)), nil
	case Real:
		return Real(float64(i) - float64(v)), nil
	}
	return nil, incompatible("-", i, o)
}
func (i Int) Mult(o Object) (Object, error) {
	switch v := o.(type) {
	case Int:
		return Int(int64(i) * int64(v)), nil
	case Real:
		return Real(float64(i) * float64(v)), nil
	}
	return nil, incompatible("*", i, o)
}
func (i Int) Div(o Object) (Object, error) {
	switch v := o.(type) {
	case Int:
		if v == 0 {
			return nil, NewError(ZeroDiv, "division by zero")
		}
		return Int(int64(i) / int64(v)), nil
	case Real:
		if v == 0 {
			return nil, NewError(ZeroDiv, "division by zero")
		}
		return Real(float64(i) / float64(v)), nil
	}
	return nil, incompatible("/", i, o)
}
func (i Int) DivMod(o Object) (Object, error) {
	v, ok := o.(Int)
	if !ok {
		return nil, incompatible("%", i, o)
	}
	if v == 0 {
		return nil, NewError(ZeroDiv, "division by zero")
	}
	return Int(int64(i) % int64(v)), nil
}
func (i Int) Pow(o Object) (Object, error) {
	v, ok := o.(Int)
	if !ok {
		r, err := i.ObjReal()
		if err != nil {
			return nil, incompatible("**", i, o)
		}
		rv, err := toReal(o)
		if err != nil {
			return nil, incompatible("**", i, o)
		}
		return Real(math.Pow(r, rv)), nil
	}
	return Int(int64(math.Pow(float64(i), float64(v)))), nil
}

func (i Int) BitAnd(o Object) (Object, error) { v, err := asInt(o); return bit(i, v, err, func(a, b int64) int64 { return a & b }) }
func (i Int) BitOr(o Object) (Object, error)  { v, err := asInt(o); return bit(i, v, err, func(a, b int64) int64 { return a | b }) }
func (i Int) BitXor(o Object) (Object, error) { v, err := asInt(o); return bit(i, v, err, func(a, b int64) int64 { return a ^ b }) }
func (i Int) LeftShift(o Object) (Object, error) {
	v, err := asInt(o)
	return bit(i, v, err, func(a, b int64) int64 { return a << uint(b) })
}
func (i Int) RightShift(o Object) (Object, error) {
	v, err := asInt(o)
	return bit(i, v, err, func(a, b int64) int64 { return a >> uint(b) })
}
func (i Int) BitNot() (Object, error) { return Int(^int64(i)), nil }

func bit(i Int, v int64, err error, f func(a, b int64) int64) (Object, error) {
	if err != nil {
		return nil, err
	}
	return Int(f(int64(i), v)), nil
}
func asInt(o Object) (int64, error) {
	v, ok := o.(Int)
	if !ok {
		return 0, NewError(IncompatibleType, "expected Int, got %s", o.Tag())
	}
	return int64(v), nil
}

func (i Int) Equal(o Object) (Object, error)    { return cmpNum(i, o, func(c int) bool { return c == 0 }) }
func (i Int) NotEqual(o Object) (Object, error) { return cmpNum(i, o, func(c int) bool { return c != 0 }) }
func (i Int) Less(o Object) (Object, error)      { return cmpNum(i, o, func(c int) bool { return c < 0 }) }
func (i Int) Greater(o Object) (Object, error)   { return cmpNum(i, o, func(c int) bool { return c > 0 }) }
func (i Int) LessEq(o Object) (Object, error)    { return cmpNum(i, o, func(c int) bool { return c <= 0 }) }
func (i Int) GreaterEq(o Object) (Object, error) { return cmpNum(i, o, func(c int) bool { return c >= 0 }) }
func (i Int) Hash() (int64, error)               { return int64(i), nil }
func (i Int) Print() (string, error)             { return i.ObjString() }

func cmpNum(a Object, b Object, test func(int) bool) (Object, error) {
	af, aerr := toReal(a)
	bf, berr := toReal(b)
	if aerr != nil || berr != nil {
		return Bool(false), nil
	}
	switch {
	case af < bf:
		return Bool(test(-1)), nil
	case af > bf:
		return Bool(test(1)), nil
	default:
		return Bool(test(0)), nil
	}
}

func toReal(o Object) (float64, error) {
	switch v := o.(type) {
	case Int:
		return float64(v), nil
	case Real:
		return float64(v), nil
	}
	return 0, NewError(IncompatibleType, "expected a number, got %s", o.Tag())
}

func incompatible(op string, a, b Object) error {
	return NewError(IncompatibleType, "unsupported operand types for %s: %s and %s", op, a.Tag(), b.Tag())
}

// --- Real ---

type Real float64

func (Real) Tag() Tag       { return TReal }
func (Real) ObjType() *Type { return realType }
func (r Real) ObjBool() (bool, error)     { return r != 0, nil }
func (r Real) ObjString() (string, error) { return strconv.FormatFloat(float64(r), 'g', -1, 64), nil }
func (r Real) ObjInt() (int64, error)     { return int64(r), nil }
func (r Real) ObjReal() (float64, error)  { return float64(r), nil }
func (Real) ObjArray() ([]Object, error) {
	return nil, NewError(IncompatibleType, "real has no array coercion")
}
func (r Real) Add(o Object) (Object, error) { v, err := toReal(o); if err != nil { return nil, incompatible("+", r, o) }; return Real(float64(r) + v), nil }
func (r Real) Sub(o Object) (Object, error) { v, err := toReal(o); if err != nil { return nil, incompatible("-", r, o) }; return Real(float64(r) - v), nil }
func (r Real) Mult(o Object) (Object, error) { v, err := toReal(o); if err != nil { return nil, incompatible("*", r, o) }; return Real(float64(r) * v), nil }
func (r Real) Div(o Object) (Object, error) {
	v, err := toReal(o)
	if err != nil {
		return nil, incompatible("/", r, o)
	}
	if v == 0 {
		return nil, NewError(ZeroDiv, "division by zero")
	}
	return Real(float64(r) / v), nil
}
func (r Real) DivMod(o Object) (Object, error) {
	v, err := toReal(o)
	if err != nil {
		return nil, incompatible("%", r, o)
	}
	if v == 0 {
		return nil, NewError(ZeroDiv, "division by zero")
	}
	return Real(math.Mod(float64(r), v)), nil
}
func (r Real) Pow(o Object) (Object, error) {
	v, err := toReal(o)
	if err != nil {
		return nil, incompatible("**", r, o)
	}
	return Real(math.Pow(float64(r), v)), nil
}
func (r Real) Equal(o Object) (Object, error)    { return cmpNum(r, o, func(c int) bool { return c == 0 }) }
func (r Real) NotEqual(o Object) (Object, error) { return cmpNum(r, o, func(c int) bool { return c != 0 }) }
func (r Real) Less(o Object) (Object, error)      { return cmpNum(r, o, func(c int) bool { return c < 0 }) }
func (r Real) Greater(o Object) (Object, error)   { return cmpNum(r, o, func(c int) bool { return c > 0 }) }
func (r Real) LessEq(o Object) (Object, error)    { return cmpNum(r, o, func(c int) bool { return c <= 0 }) }
func (r Real) GreaterEq(o Object) (Object, error) { return cmpNum(r, o, func(c int) bool { return c >= 0 }) }
func (r Real) Hash() (int64, error)               { return int64(math.Float64bits(float64(r))), nil }
func (r Real) Print() (string, error)             { return r.ObjString() }

// --- String ---

type String string

func (String) Tag() Tag       { return TString }
func (String) ObjType() *Type { return stringType }
func (s String) ObjBool() (bool, error)     { return len(s) > 0, nil }
func (s String) ObjString() (string, error) { return string(s), nil }
func (s String) ObjInt() (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
	if err != nil {
		return 0, NewError(IncompatibleType, "cannot convert %q to Int", string(s))
	}
	return n, nil
}
func (s String) ObjReal() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		return 0, NewError(IncompatibleType, "cannot convert %q to Real", string(s))
	}
	return f, nil
}
func (s String) ObjArray() ([]Object, error) {
	runes := []rune(s)
	out := make([]Object, len(runes))
	for i, r := range runes {
		out[i] = String(r)
	}
	return out, nil
}
func (s String) Add(o Object) (Object, error) {
	v, ok := o.(String)
	if !ok {
		return nil, incompatible("+", s, o)
	}
	return s + v, nil
}
func (s String) Mult(o Object) (Object, error) {
	n, ok := o.(Int)
	if !ok {
		return nil, incompatible("*", s, o)
	}
	if n < 0 {
		return nil, NewError(OutOfRange, "repeat count %d is negative", n)
	}
	return String(strings.Repeat(string(s), int(n))), nil
}
func (s String) Equal(o Object) (Object, error) {
	v, ok := o.(String)
	return Bool(ok && v == s), nil
}
func (s String) NotEqual(o Object) (Object, error) { eq, _ := s.Equal(o); return Bool(!bool(eq.(Bool))), nil }
func (s String) Less(o Object) (Object, error)      { return cmpStr(s, o, func(c int) bool { return c < 0 }) }
func (s String) Greater(o Object) (Object, error)   { return cmpStr(s, o, func(c int) bool { return c > 0 }) }
func (s String) LessEq(o Object) (Object, error)    { return cmpStr(s, o, func(c int) bool { return c <= 0 }) }
func (s String) GreaterEq(o Object) (Object, error) { return cmpStr(s, o, func(c int) bool { return c >= 0 }) }

func cmpStr(s String, o Object, test func(int) bool) (Object, error) {
	v, ok := o.(String)
	if !ok {
		return nil, incompatible("comparison", s, o)
	}
	return Bool(test(strings.Compare(string(s), string(v)))), nil
}

func (s String) GetItem(idx Object) (Object, error) {
	i, err := indexInto(idx, len(s))
	if err != nil {
		return nil, err
	}
	return String(s[i]), nil
}
func (s String) SetItem(Object, Object) error {
	return NewError(IncompatibleType, "strings are immutable")
}

// indexInto resolves a (possibly negative) index against a collection of
// length n, per Python-like negative-index convention used throughout the
// indexable types.
func indexInto(idx Object, n int) (int, error) {
	iv, ok := idx.(Int)
	if !ok {
		return 0, NewError(IncompatibleType, "index must be Int, got %s", idx.Tag())
	}
	i := int(iv)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, NewError(OutOfRange, "index %d out of range for length %d", iv, n)
	}
	return i, nil
}

func (s String) Hash() (int64, error) {
	var h int64 = 1469598103934665603 // FNV offset basis
	for _, b := range []byte(s) {
		h ^= int64(b)
		h *= 1099511628211
	}
	return h, nil
}
func (s String) Print() (string, error) { return string(s), nil }
func (s String) ObjIter() (Iter, error) {
	runes := []Object{}
	for _, r := range string(s) {
		runes = append(runes, String(r))
	}
	return NewSliceIter(runes), nil
}

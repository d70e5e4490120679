package ast

// Identifier is a bare name reference.
type Identifier struct {
	base
	Name string
}

func (*Identifier) isExpr()       {}
func (*Identifier) isAssignable() {}

// LitKind is the closed set of literal kinds (§6.1 "Literal
// (int/real/string/bool/nil)").
type LitKind int

const (
	LitInt LitKind = iota
	LitReal
	LitString
	LitBool
	LitNil
)

type Literal struct {
	base
	Kind LitKind
	Int  int64
	Real float64
	Str  string
	Bool bool
}

func (*Literal) isExpr() {}

// UnaryOp is `op expr`: -x, !x, ~x.
type UnaryOpKind int

const (
	UnNeg UnaryOpKind = iota
	UnNot
	UnBitNot
)

type UnaryOp struct {
	base
	Op   UnaryOpKind
	Expr Expr
}

func (*UnaryOp) isExpr() {}

// BinOpKind is every binary operator the expression executor dispatches,
// per §3.3 (arithmetic, bitwise, comparison) plus the two short-circuit
// logical operators (§4.3).
type BinOpKind int

const (
	BinAdd BinOpKind = iota
	BinSub
	BinMult
	BinDiv
	BinMod
	BinPow
	BinBitAnd
	BinBitOr
	BinBitXor
	BinLShift
	BinRShift
	BinEqual
	BinNotEqual
	BinLess
	BinGreater
	BinLessEq
	BinGreaterEq
	BinAnd // short-circuit `and`
	BinOr  // short-circuit `or`
)

type BinaryOp struct {
	base
	Op       BinOpKind
	Lhs, Rhs Expr
}

func (*BinaryOp) isExpr() {}

// Call is `callee(args...)`.
type Call struct {
	base
	Callee Expr
	Args   []Expr
}

func (*Call) isExpr() {}

// Attribute is `expr.name`.
type Attribute struct {
	base
	Expr Expr
	Name string
}

func (*Attribute) isExpr()       {}
func (*Attribute) isAssignable() {}

// Subscript is `expr[idx]`, where idx may itself be a Slice expression.
type Subscript struct {
	base
	Expr  Expr
	Index Expr
}

func (*Subscript) isExpr()       {}
func (*Subscript) isAssignable() {}

// SliceExpr is `start:stop:step` inside a subscript, any part optional.
type SliceExpr struct {
	base
	Start, Stop, Step Expr
}

func (*SliceExpr) isExpr() {}

// TupleInstantiation, ArrayInstantiation, MapInstantiation are literal
// collection constructors. A TupleInstantiation is also legal on the LHS
// of assignment as a destructuring pattern (§4.2), as is
// ArrayInstantiation.
type TupleInstantiation struct {
	base
	Elems []Expr
}

func (*TupleInstantiation) isExpr()       {}
func (*TupleInstantiation) isAssignable() {}

type ArrayInstantiation struct {
	base
	Elems []Expr
}

func (*ArrayInstantiation) isExpr()       {}
func (*ArrayInstantiation) isAssignable() {}

type MapEntry struct {
	Key, Val Expr
}

type MapInstantiation struct {
	base
	Entries []MapEntry
}

func (*MapInstantiation) isExpr() {}

type SetInstantiation struct {
	base
	Elems []Expr
}

func (*SetInstantiation) isExpr() {}

// LambdaExpr is an inline function literal (§4.3).
type LambdaExpr struct {
	base
	Params   []string
	Defaults []Expr
	Variadic bool
	Body     *Block
}

func (*LambdaExpr) isExpr() {}

// CmdSubstitution embeds a command pipeline as a value-producing
// expression (§4.3 "command-substitution expressions"; §SUPPLEMENTED
// FEATURES item 3, `$(...)`). Its evaluated form is an *object.Cmd;
// use-site coercion (ObjString/ObjArray) decides whether the caller sees
// a string or a word list.
type CmdSubstitution struct {
	base
	Pipeline *CmdFull
}

func (*CmdSubstitution) isExpr() {}

// ExpressionList is a bare comma-separated list of expressions appearing
// on the RHS of assignment or as call arguments (§6.1).
type ExpressionList struct {
	base
	Exprs []Expr
}

func (*ExpressionList) isExpr() {}

// AssignableList is the LHS counterpart of ExpressionList (§6.1); it
// implements Assignable itself (rather than only Expr) so it can appear
// directly in an AssignmentStatement's Lhs field for n>1 arity forms.
type AssignableList struct {
	base
	Targets []Assignable
}

func (*AssignableList) isExpr()       {}
func (*AssignableList) isAssignable() {}

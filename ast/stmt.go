package ast

// Block is a sequence of statements forming a lexical scope boundary
// (§4.4 "executors push a scope table on entry, pop on all exit paths").
type Block struct {
	base
	Stmts []Stmt
}

func (*Block) isStmt() {}

// AssignOp distinguishes plain `=` from the compound arithmetic/bitwise
// forms (`+=`, `-=`, ...) the assignment engine must desugar to a
// read-modify-write against the same LHS cell (§4.2).
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMult
	AssignDiv
	AssignMod
	AssignPow
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignLShift
	AssignRShift
)

// AssignmentStatement covers every arity the assignment engine supports:
// 1:1, 1:n pack, n:1 unpack, n:n pairwise (§4.2). Lhs/Rhs are themselves
// AssignableList/ExpressionList when arity is not 1:1.
type AssignmentStatement struct {
	base
	Op  AssignOp
	Lhs Assignable
	Rhs Expr
}

func (*AssignmentStatement) isStmt() {}

// ExprStatement is a bare expression evaluated for effect (e.g. a call).
type ExprStatement struct {
	base
	Expr Expr
}

func (*ExprStatement) isStmt() {}

type IfClause struct {
	Cond Expr
	Body *Block
}

// IfStatement is `if`/`elif`*/`else`.
type IfStatement struct {
	base
	Clauses []IfClause
	Else    *Block
}

func (*IfStatement) isStmt() {}

type WhileStatement struct {
	base
	Cond Expr
	Body *Block
}

func (*WhileStatement) isStmt() {}

// ForInStatement binds one or more loop variables from each value
// produced by Iter's iterator protocol (§4.6).
type ForInStatement struct {
	base
	Vars []string
	Iter Expr
	Body *Block
}

func (*ForInStatement) isStmt() {}

type BreakStatement struct{ base }

func (*BreakStatement) isStmt() {}

type ContinueStatement struct{ base }

func (*ContinueStatement) isStmt() {}

// ReturnStatement's Value is nil for a bare `return`.
type ReturnStatement struct {
	base
	Value Expr
}

func (*ReturnStatement) isStmt() {}

// ThrowStatement raises a value as a catchable error (§4.7).
type ThrowStatement struct {
	base
	Value Expr
}

func (*ThrowStatement) isStmt() {}

// TryStatement is a supplemented feature (SPEC_FULL "Supplemented
// Features": try/catch over the Throw stop-flag, grounded in
// original_source's exception machinery that the distilled spec.md's
// stop-flag section alludes to but never surfaces as syntax).
type TryStatement struct {
	base
	Body    *Block
	CatchAs string // bound name for the caught value; "" if none
	Catch   *Block
	Finally *Block
}

func (*TryStatement) isStmt() {}

// GlobalStatement is the supplemented resolution of SPEC_FULL's Open
// Question 3: the only way a symbol's global flag is ever set to true is
// this explicit statement, naming symbols bound in the current scope to
// also be visible through LookupObj from nested scopes via main.
type GlobalStatement struct {
	base
	Names []string
}

func (*GlobalStatement) isStmt() {}

// FunctionDeclaration declares a named function in the enclosing scope
// (§4.6). Unlike LambdaExpr it is not itself an expression.
type FunctionDeclaration struct {
	base
	Name     string
	Params   []string
	Defaults []Expr
	Variadic bool
	Body     *Block
}

func (*FunctionDeclaration) isStmt() {}

// ClassDeclaration declares a class: a Type value bound to Name, whose
// method bodies execute against a KindClass table (§4.6 class creation).
type ClassDeclaration struct {
	base
	Name    string
	Bases   []Expr
	Methods []*FunctionDeclaration
}

func (*ClassDeclaration) isStmt() {}

// ImportStatement binds a Module value, grounded in SPEC_FULL's
// object.Module and the `import` keyword the GLOSSARY names.
type ImportStatement struct {
	base
	Path string
	As   string
}

func (*ImportStatement) isStmt() {}

// Package ast defines the tree the core consumes (§6.1). Lexing and
// parsing are out of scope for the execution core per spec.md; this
// package is the contract between a (straightforward, locally-decided)
// parser and the object/symtab/assign/interp/command packages that form
// the core.
package ast

import "git.sr.ht/~caraway/nettle/object"

// Pos is re-exported so callers don't need to import object just to stamp
// a node.
type Pos = object.Position

// Node is the supertype every AST node satisfies; every node carries a
// source position for error reporting (§6.1).
type Node interface {
	Position() Pos
}

type base struct {
	Pos Pos
}

func (b base) Position() Pos { return b.Pos }

// SetPos stamps a node's source position. Exported so a parser living
// outside this package — which cannot name the unexported base field
// directly in a composite literal — has a way to attach positions after
// construction.
func (b *base) SetPos(p Pos) { b.Pos = p }

// Expr is any node legal in expression position.
type Expr interface {
	Node
	isExpr()
}

// Stmt is any node legal in statement position.
type Stmt interface {
	Node
	isStmt()
}

// Assignable is an expression legal on the LHS of assignment: a name, an
// attribute access, a subscript, or a tuple/array literal (§GLOSSARY).
type Assignable interface {
	Expr
	isAssignable()
}

// Program is the root of a parsed file or REPL chunk: a flat top-level
// statement sequence, distinct from Block in that it carries no implicit
// scope-push (top level runs directly on the interpreter's main table).
type Program struct {
	base
	Stmts []Stmt
}

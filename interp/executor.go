// Package interp implements the tree-walking executor: the expression
// executor (§4.3) and the statement executor (§4.4), including the
// stop-flag propagation model that threads control flow (break/
// continue/return/throw) out of nested constructs. Grounded on
// original_source's Executor/StmtExecutor/WhileExecutor family
// (src/interpreter/executor.h, stmt_executor.h), which models stop-flag
// propagation as a mutable field walked up a parent-executor pointer
// chain; here it is instead carried as an explicit return value threaded
// back up the recursive ExecStmt/ExecBlock calls, which is the safer,
// idiomatic Go shape for the same "signal unwinds to the nearest
// absorber" behaviour — no shared mutable state, no dangling parent
// pointers to manage.
package interp

import (
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// StopFlag is the per-construct unwind signal (§4.1).
type StopFlag int

const (
	Go StopFlag = iota
	Continue
	Break
	Return
	Throw
)

// Signal carries a StopFlag plus whatever payload it unwinds with: the
// evaluated expression for Return, the thrown value for Throw.
type Signal struct {
	Flag   StopFlag
	Value  object.Object // Return's value
	Thrown object.Object // Throw's value
}

var sigGo = Signal{Flag: Go}

// Commander is the narrow interface the command subsystem implements so
// the executor can run pipelines and command substitutions without
// interp importing command — command instead imports interp's
// CmdEvaluator, and the two are wired together by cmd/nettle.
type Commander interface {
	RunPipeline(ev CmdEvaluator, stack *symtab.Stack, node *ast.CmdFull) (*object.Cmd, error)
	RunSubstitution(ev CmdEvaluator, stack *symtab.Stack, node *ast.CmdFull) (*object.Cmd, error)
}

// CmdEvaluator is the slice of the expression executor the command
// subsystem needs to expand argument words (variable interpolation,
// nested command substitution) into values.
type CmdEvaluator interface {
	Eval(ast.Expr) (object.Object, error)
}

// Executor holds everything a running tree-walk needs: the live symbol
// table stack, the loop/function nesting predicates §4.4's break/
// continue/return legality checks require, and the command subsystem
// handle. It has value-ish semantics — withStack, loopChild and
// funcChild spawn a derived copy rather than mutating a shared instance, since Go's recursion
// already gives us the call stack the original's linked Executor chain
// was standing in for.
type Executor struct {
	stack *symtab.Stack

	insideLoop bool
	insideFunc bool

	cmd    Commander
	loader ModuleLoader
}

// NewRoot creates the top-level executor for a fresh program run, with a
// fresh main-only symbol-table stack.
func NewRoot(cmd Commander) *Executor {
	return &Executor{stack: symtab.NewStack(), cmd: cmd}
}

func (e *Executor) Stack() *symtab.Stack { return e.stack }

// SetLoader wires the module loader used by import statements
// (§SUPPLEMENTED FEATURES); left nil, import fails with ImportError.
func (e *Executor) SetLoader(l ModuleLoader) { e.loader = l }

// withStack spawns an executor bound to a different stack — used by
// function calls, whose body runs against the callee's closure snapshot
// rather than the caller's live stack (§3.5).
func (e *Executor) withStack(stack *symtab.Stack, fn bool) *Executor {
	return &Executor{stack: stack, insideFunc: fn, cmd: e.cmd, loader: e.loader}
}

// loopChild/funcChild spawn an executor for a nested construct, flipping
// the relevant nesting predicate; everything else (stack, cmd) carries
// through unchanged since loops and function calls don't, by themselves,
// introduce a new scope table (that's Block's job).
func (e *Executor) loopChild() *Executor {
	cp := *e
	cp.insideLoop = true
	return &cp
}

func (e *Executor) funcChild() *Executor {
	cp := *e
	cp.insideFunc = true
	return &cp
}

func (e *Executor) InsideLoop() bool { return e.insideLoop }
func (e *Executor) InsideFunc() bool { return e.insideFunc }

package interp

import (
	"git.sr.ht/~caraway/nettle/assign"
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// ModuleLoader resolves an import path to a loaded module namespace. It
// is a local decision left unspecified by spec.md's distillation (module
// resolution is a filesystem/packaging concern, not core-interpreter
// semantics); cmd/nettle wires a concrete loader at startup.
type ModuleLoader interface {
	Load(path string) (*object.Module, error)
}

// ExecProgram runs a parsed top-level chunk directly against the
// executor's current stack — no implicit scope push, since top level
// shares the interpreter's main table (§6.1's Program node).
func (e *Executor) ExecProgram(p *ast.Program) (Signal, error) {
	return e.execStmtsInPlace(p.Stmts)
}

// ExecStmt dispatches a single statement (§4.4).
func (e *Executor) ExecStmt(node ast.Stmt) (Signal, error) {
	switch n := node.(type) {
	case *ast.Block:
		return e.execBlock(n)
	case *ast.ExprStatement:
		if _, err := e.Eval(n.Expr); err != nil {
			return Signal{}, err
		}
		return sigGo, nil
	case *ast.AssignmentStatement:
		if _, err := assign.Assign(e, e.stack, n.Op, n.Lhs, n.Rhs); err != nil {
			return Signal{}, err
		}
		return sigGo, nil
	case *ast.IfStatement:
		return e.execIf(n)
	case *ast.WhileStatement:
		return e.execWhile(n)
	case *ast.ForInStatement:
		return e.execForIn(n)
	case *ast.BreakStatement:
		if !e.insideLoop {
			return Signal{}, object.NewError(object.InvalidOpcode, "break outside loop")
		}
		return Signal{Flag: Break}, nil
	case *ast.ContinueStatement:
		if !e.insideLoop {
			return Signal{}, object.NewError(object.InvalidOpcode, "continue outside loop")
		}
		return Signal{Flag: Continue}, nil
	case *ast.ReturnStatement:
		val := object.Object(object.Nil{})
		if n.Value != nil {
			v, err := e.Eval(n.Value)
			if err != nil {
				return Signal{}, err
			}
			val = v
		}
		return Signal{Flag: Return, Value: val}, nil
	case *ast.ThrowStatement:
		v, err := e.Eval(n.Value)
		if err != nil {
			return Signal{}, err
		}
		return Signal{Flag: Throw, Thrown: v}, nil
	case *ast.TryStatement:
		return e.execTry(n)
	case *ast.FunctionDeclaration:
		return e.execFuncDecl(n)
	case *ast.ClassDeclaration:
		return e.execClassDecl(n)
	case *ast.GlobalStatement:
		return e.execGlobal(n)
	case *ast.ImportStatement:
		return e.execImport(n)
	case *ast.CmdFull:
		return e.execCmdFull(n)
	default:
		return Signal{}, object.NewError(object.InvalidOpcode, "unsupported statement %T", node)
	}
}

// execBlock pushes a scope table, runs the block's statements, and pops
// on every exit path (§4.4).
func (e *Executor) execBlock(b *ast.Block) (Signal, error) {
	e.stack.PushNew(symtab.KindScope)
	defer e.stack.Pop()
	return e.execStmtsInPlace(b.Stmts)
}

func (e *Executor) execStmtsInPlace(stmts []ast.Stmt) (Signal, error) {
	for _, s := range stmts {
		sig, err := e.ExecStmt(s)
		if err != nil {
			return Signal{}, err
		}
		if sig.Flag != Go {
			return sig, nil
		}
	}
	return sigGo, nil
}

func (e *Executor) execIf(n *ast.IfStatement) (Signal, error) {
	for _, clause := range n.Clauses {
		cv, err := e.Eval(clause.Cond)
		if err != nil {
			return Signal{}, err
		}
		ok, err := e.Truthy(cv)
		if err != nil {
			return Signal{}, err
		}
		if ok {
			return e.execBlock(clause.Body)
		}
	}
	if n.Else != nil {
		return e.execBlock(n.Else)
	}
	return sigGo, nil
}

func (e *Executor) execWhile(n *ast.WhileStatement) (Signal, error) {
	loopExec := e.loopChild()
	for {
		cv, err := loopExec.Eval(n.Cond)
		if err != nil {
			return Signal{}, err
		}
		ok, err := loopExec.Truthy(cv)
		if err != nil {
			return Signal{}, err
		}
		if !ok {
			return sigGo, nil
		}
		sig, err := loopExec.execBlock(n.Body)
		if err != nil {
			return Signal{}, err
		}
		switch sig.Flag {
		case Break:
			return sigGo, nil
		case Continue, Go:
		default:
			return sig, nil
		}
	}
}

func (e *Executor) execForIn(n *ast.ForInStatement) (Signal, error) {
	src, err := e.Eval(n.Iter)
	if err != nil {
		return Signal{}, err
	}
	iterable, ok := src.(object.Iterable)
	if !ok {
		return Signal{}, object.NewError(object.IncompatibleType, "%s is not iterable", src.Tag())
	}
	it, err := iterable.ObjIter()
	if err != nil {
		return Signal{}, err
	}

	loopExec := e.loopChild()
	for {
		hn, err := it.HasNext()
		if err != nil {
			return Signal{}, err
		}
		cont, err := object.Truthy(hn)
		if err != nil {
			return Signal{}, err
		}
		if !cont {
			return sigGo, nil
		}
		val, err := it.Next()
		if err != nil {
			return Signal{}, err
		}

		loopExec.stack.PushNew(symtab.KindScope)
		bindErr := bindForVars(loopExec.stack, n.Vars, val)
		var sig Signal
		if bindErr == nil {
			sig, err = loopExec.execStmtsInPlace(n.Body.Stmts)
		}
		loopExec.stack.Pop()
		if bindErr != nil {
			return Signal{}, bindErr
		}
		if err != nil {
			return Signal{}, err
		}
		switch sig.Flag {
		case Break:
			return sigGo, nil
		case Continue, Go:
		default:
			return sig, nil
		}
	}
}

// bindForVars implements §4.4's "bind loop variable(s) using the same
// destructuring rules as assignment" for a for-in header.
func bindForVars(stack *symtab.Stack, vars []string, val object.Object) error {
	if len(vars) == 1 {
		stack.SetEntry(vars[0], val)
		return nil
	}
	elems, err := assign.Unpack(val, len(vars))
	if err != nil {
		return err
	}
	for i, name := range vars {
		stack.SetEntry(name, elems[i])
	}
	return nil
}

// execTry implements the supplemented try/catch/finally construct
// (§4.4 expansion): absorbs Throw — whether raised by an explicit
// `throw` statement or surfaced as a Go error from a failed operation —
// binds the thrown value in a fresh scope, and always runs Finally.
func (e *Executor) execTry(n *ast.TryStatement) (Signal, error) {
	sig, err := e.execBlock(n.Body)
	if err != nil {
		if n.Catch == nil {
			e.runFinally(n.Finally)
			return Signal{}, err
		}
		sig = Signal{Flag: Throw, Thrown: errToObject(err)}
	}

	if sig.Flag != Throw {
		e.runFinally(n.Finally)
		return sig, nil
	}
	if n.Catch == nil {
		e.runFinally(n.Finally)
		return sig, nil
	}

	e.stack.PushNew(symtab.KindScope)
	if n.CatchAs != "" {
		e.stack.SetEntry(n.CatchAs, sig.Thrown)
	}
	catchSig, cerr := e.execStmtsInPlace(n.Catch.Stmts)
	e.stack.Pop()

	e.runFinally(n.Finally)
	if cerr != nil {
		return Signal{}, cerr
	}
	return catchSig, nil
}

func (e *Executor) runFinally(finally *ast.Block) {
	if finally == nil {
		return
	}
	// Finally runs for its effects only; a Finally that itself raises
	// replaces any in-flight signal in most languages, but absent a
	// concrete spec rule we keep this conservative and swallow its
	// control-flow result rather than silently discarding an in-flight
	// Throw/Return.
	_, _ = e.execBlock(finally)
}

func errToObject(err error) object.Object {
	if oe, ok := err.(*object.Error); ok {
		if oe.Kind == object.Custom && oe.Thrown != nil {
			return oe.Thrown
		}
		return object.String(oe.Error())
	}
	return object.String(err.Error())
}

func (e *Executor) execFuncDecl(n *ast.FunctionDeclaration) (Signal, error) {
	defaults, err := evalExprs(e, n.Defaults)
	if err != nil {
		return Signal{}, err
	}
	fn := &object.Func{
		Name:     n.Name,
		Params:   n.Params,
		Defaults: defaults,
		Variadic: n.Variadic,
		Body:     n.Body,
		Closure:  e.stack.Snapshot(false),
	}
	bindName(e.stack, n.Name, fn)
	return sigGo, nil
}

// execClassDecl evaluates the base-class list, creates a Type, and
// populates its method table by building a Func per declared method
// against a Class-kind table (§4.4 class declaration).
func (e *Executor) execClassDecl(n *ast.ClassDeclaration) (Signal, error) {
	bases := make([]*object.Type, 0, len(n.Bases))
	for _, be := range n.Bases {
		bv, err := e.Eval(be)
		if err != nil {
			return Signal{}, err
		}
		bt, ok := bv.(*object.Type)
		if !ok {
			return Signal{}, object.NewError(object.IncompatibleType, "base class %s is not a type", bv.Tag())
		}
		bases = append(bases, bt)
	}

	typ := object.NewType(n.Name)
	typ.Bases = bases

	e.stack.PushNew(symtab.KindClass)
	for _, m := range n.Methods {
		defaults, err := evalExprs(e, m.Defaults)
		if err != nil {
			e.stack.Pop()
			return Signal{}, err
		}
		typ.Methods[m.Name] = &object.Func{
			Name:     m.Name,
			Params:   m.Params,
			Defaults: defaults,
			Variadic: m.Variadic,
			Body:     m.Body,
			Closure:  e.stack.Snapshot(false),
		}
	}
	e.stack.Pop()

	bindName(e.stack, n.Name, typ)
	return sigGo, nil
}

func (e *Executor) execGlobal(n *ast.GlobalStatement) (Signal, error) {
	for _, name := range n.Names {
		e.stack.Main().SetValue(name).SetGlobal(true)
	}
	return sigGo, nil
}

func (e *Executor) execImport(n *ast.ImportStatement) (Signal, error) {
	if e.loader == nil {
		return Signal{}, object.NewError(object.ImportError, "no module loader configured")
	}
	mod, err := e.loader.Load(n.Path)
	if err != nil {
		return Signal{}, object.NewError(object.ImportError, "%v", err)
	}
	name := n.As
	if name == "" {
		name = n.Path
	}
	bindName(e.stack, name, mod)
	return sigGo, nil
}

func (e *Executor) execCmdFull(n *ast.CmdFull) (Signal, error) {
	if e.cmd == nil {
		return Signal{}, object.NewError(object.Custom, "command subsystem not configured")
	}
	if _, err := e.cmd.RunPipeline(e, e.stack, n); err != nil {
		return Signal{}, err
	}
	return sigGo, nil
}

// bindName realizes the identifier LHS routing rule (§4.2) for
// declarations: function-table-first, else the enclosing scope.
func bindName(stack *symtab.Stack, name string, val object.Object) {
	if stack.HasFuncTable() {
		stack.FuncTableValue(name).Set(val)
	} else {
		stack.SetEntry(name, val)
	}
}

func evalExprs(e *Executor, exprs []ast.Expr) ([]object.Object, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	out := make([]object.Object, 0, len(exprs))
	for _, x := range exprs {
		v, err := e.Eval(x)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

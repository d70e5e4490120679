package interp

import (
	"testing"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
)

func lit(v object.Object) *ast.Literal {
	switch t := v.(type) {
	case object.Int:
		return &ast.Literal{Kind: ast.LitInt, Int: int64(t)}
	case object.Bool:
		return &ast.Literal{Kind: ast.LitBool, Bool: bool(t)}
	case object.String:
		return &ast.Literal{Kind: ast.LitString, Str: string(t)}
	default:
		return &ast.Literal{Kind: ast.LitNil}
	}
}

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func TestEvalArithmetic(t *testing.T) {
	e := NewRoot(nil)
	v, err := e.Eval(&ast.BinaryOp{Op: ast.BinAdd, Lhs: lit(object.Int(2)), Rhs: lit(object.Int(3))})
	if err != nil {
		t.Fatal(err)
	}
	if v.(object.Int) != 5 {
		t.Fatalf("expected 5, got %v", v)
	}
}

func TestEvalShortCircuitAnd(t *testing.T) {
	e := NewRoot(nil)
	// false and (undefined symbol) must not evaluate the right side.
	v, err := e.Eval(&ast.BinaryOp{Op: ast.BinAnd, Lhs: lit(object.Bool(false)), Rhs: ident("nope")})
	if err != nil {
		t.Fatal(err)
	}
	if v.(object.Bool) != false {
		t.Fatalf("expected false, got %v", v)
	}
}

func TestEvalShortCircuitOrReturnsLastOperand(t *testing.T) {
	e := NewRoot(nil)
	v, err := e.Eval(&ast.BinaryOp{Op: ast.BinOr, Lhs: lit(object.Int(0)), Rhs: lit(object.Int(7))})
	if err != nil {
		t.Fatal(err)
	}
	if v.(object.Int) != 7 {
		t.Fatalf("expected the last evaluated operand 7, got %v", v)
	}
}

func TestExecAssignmentAndLookup(t *testing.T) {
	e := NewRoot(nil)
	stmt := &ast.AssignmentStatement{Op: ast.AssignPlain, Lhs: ident("x"), Rhs: lit(object.Int(42))}
	if _, err := e.ExecStmt(stmt); err != nil {
		t.Fatal(err)
	}
	got, ok := e.Stack().LookupObj("x")
	if !ok || got.(object.Int) != 42 {
		t.Fatalf("expected x == 42, got %v %v", got, ok)
	}
}

func TestExecIfElse(t *testing.T) {
	e := NewRoot(nil)
	e.Stack().SetEntry("x", object.Int(0)) // pre-declared in main so the branch's block-scoped assignment reuses it rather than shadowing it
	stmt := &ast.IfStatement{
		Clauses: []ast.IfClause{{
			Cond: lit(object.Bool(false)),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.AssignmentStatement{Lhs: ident("x"), Rhs: lit(object.Int(1))},
			}},
		}},
		Else: &ast.Block{Stmts: []ast.Stmt{
			&ast.AssignmentStatement{Lhs: ident("x"), Rhs: lit(object.Int(2))},
		}},
	}
	if _, err := e.ExecStmt(stmt); err != nil {
		t.Fatal(err)
	}
	got, _ := e.Stack().LookupObj("x")
	if got.(object.Int) != 2 {
		t.Fatalf("expected else branch to run, got %v", got)
	}
}

func TestExecWhileBreak(t *testing.T) {
	e := NewRoot(nil)
	e.Stack().SetEntry("i", object.Int(0))
	// The loop body runs in pushed scopes, where a read of a main-table
	// name only resolves if that entry is marked global.
	e.Stack().Main().SetValue("i").SetGlobal(true)
	loop := &ast.WhileStatement{
		Cond: lit(object.Bool(true)),
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.AssignmentStatement{Op: ast.AssignAdd, Lhs: ident("i"), Rhs: lit(object.Int(1))},
			&ast.IfStatement{
				Clauses: []ast.IfClause{{
					Cond: &ast.BinaryOp{Op: ast.BinGreaterEq, Lhs: ident("i"), Rhs: lit(object.Int(3))},
					Body: &ast.Block{Stmts: []ast.Stmt{&ast.BreakStatement{}}},
				}},
			},
		}},
	}
	sig, err := e.ExecStmt(loop)
	if err != nil {
		t.Fatal(err)
	}
	if sig.Flag != Go {
		t.Fatalf("expected the outer while to absorb break, got flag %v", sig.Flag)
	}
	got, _ := e.Stack().LookupObj("i")
	if got.(object.Int) != 3 {
		t.Fatalf("expected i == 3, got %v", got)
	}
}

func TestExecForInSum(t *testing.T) {
	e := NewRoot(nil)
	e.Stack().SetEntry("total", object.Int(0))
	loop := &ast.ForInStatement{
		Vars: []string{"v"},
		Iter: &ast.ArrayInstantiation{Elems: []ast.Expr{lit(object.Int(1)), lit(object.Int(2)), lit(object.Int(3))}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.AssignmentStatement{Op: ast.AssignAdd, Lhs: ident("total"), Rhs: ident("v")},
		}},
	}
	if _, err := e.ExecStmt(loop); err != nil {
		t.Fatal(err)
	}
	got, _ := e.Stack().LookupObj("total")
	if got.(object.Int) != 6 {
		t.Fatalf("expected total == 6, got %v", got)
	}
}

func TestFunctionCallReturnsValue(t *testing.T) {
	e := NewRoot(nil)
	decl := &ast.FunctionDeclaration{
		Name:   "double",
		Params: []string{"n"},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStatement{Value: &ast.BinaryOp{Op: ast.BinMult, Lhs: ident("n"), Rhs: lit(object.Int(2))}},
		}},
	}
	if _, err := e.ExecStmt(decl); err != nil {
		t.Fatal(err)
	}
	v, err := e.Eval(&ast.Call{Callee: ident("double"), Args: []ast.Expr{lit(object.Int(21))}})
	if err != nil {
		t.Fatal(err)
	}
	if v.(object.Int) != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestFunctionDefaultAndVariadicParams(t *testing.T) {
	e := NewRoot(nil)
	decl := &ast.FunctionDeclaration{
		Name:     "f",
		Params:   []string{"a", "b", "rest"},
		Defaults: []ast.Expr{lit(object.Int(10))},
		Variadic: true,
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStatement{Value: &ast.TupleInstantiation{Elems: []ast.Expr{ident("a"), ident("b"), ident("rest")}}},
		}},
	}
	if _, err := e.ExecStmt(decl); err != nil {
		t.Fatal(err)
	}
	v, err := e.Eval(&ast.Call{Callee: ident("f"), Args: []ast.Expr{lit(object.Int(1)), lit(object.Int(2)), lit(object.Int(3))}})
	if err != nil {
		t.Fatal(err)
	}
	tup := v.(*object.Tuple)
	if tup.Elems[0].(object.Int) != 1 || tup.Elems[1].(object.Int) != 2 {
		t.Fatalf("unexpected bound params: %v", tup.Elems)
	}
	rest := tup.Elems[2].(*object.Array)
	if len(rest.Elems) != 1 || rest.Elems[0].(object.Int) != 3 {
		t.Fatalf("expected variadic rest [3], got %v", rest.Elems)
	}
}

func TestClosureCapturesEnclosingBinding(t *testing.T) {
	e := NewRoot(nil)
	decl := &ast.FunctionDeclaration{
		Name:   "makeAdder",
		Params: []string{"n"},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStatement{Value: &ast.LambdaExpr{
				Params: []string{"x"},
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.ReturnStatement{Value: &ast.BinaryOp{Op: ast.BinAdd, Lhs: ident("x"), Rhs: ident("n")}},
				}},
			}},
		}},
	}
	if _, err := e.ExecStmt(decl); err != nil {
		t.Fatal(err)
	}
	adder, err := e.Eval(&ast.Call{Callee: ident("makeAdder"), Args: []ast.Expr{lit(object.Int(10))}})
	if err != nil {
		t.Fatal(err)
	}
	fn := adder.(*object.Func)
	result, err := e.CallFunc(fn, nil, []object.Object{object.Int(5)})
	if err != nil {
		t.Fatal(err)
	}
	if result.(object.Int) != 15 {
		t.Fatalf("expected closure to capture n=10, got %v", result)
	}
}

func TestClassInstantiationAndMethodCall(t *testing.T) {
	e := NewRoot(nil)
	classDecl := &ast.ClassDeclaration{
		Name: "Counter",
		Methods: []*ast.FunctionDeclaration{
			{
				Name:   "init",
				Params: []string{"start"},
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.AssignmentStatement{Lhs: &ast.Attribute{Expr: ident("self"), Name: "n"}, Rhs: ident("start")},
				}},
			},
			{
				Name: "bump",
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.AssignmentStatement{Op: ast.AssignAdd, Lhs: &ast.Attribute{Expr: ident("self"), Name: "n"}, Rhs: lit(object.Int(1))},
					&ast.ReturnStatement{Value: &ast.Attribute{Expr: ident("self"), Name: "n"}},
				}},
			},
		},
	}
	if _, err := e.ExecStmt(classDecl); err != nil {
		t.Fatal(err)
	}

	inst, err := e.Eval(&ast.Call{Callee: ident("Counter"), Args: []ast.Expr{lit(object.Int(5))}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := inst.(*object.Instance); !ok {
		t.Fatalf("expected an *object.Instance, got %T", inst)
	}

	e.Stack().SetEntry("c", inst)
	v, err := e.Eval(&ast.Call{Callee: &ast.Attribute{Expr: ident("c"), Name: "bump"}})
	if err != nil {
		t.Fatal(err)
	}
	if v.(object.Int) != 6 {
		t.Fatalf("expected bump() == 6, got %v", v)
	}
}

func TestTryCatchAbsorbsThrow(t *testing.T) {
	e := NewRoot(nil)
	e.Stack().SetEntry("caught", object.Nil{}) // pre-declared so the catch block's write lands in main, not a scope popped at catch exit
	stmt := &ast.TryStatement{
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ThrowStatement{Value: lit(object.String("boom"))},
		}},
		CatchAs: "err",
		Catch: &ast.Block{Stmts: []ast.Stmt{
			&ast.AssignmentStatement{Lhs: ident("caught"), Rhs: ident("err")},
		}},
	}
	sig, err := e.ExecStmt(stmt)
	if err != nil {
		t.Fatal(err)
	}
	if sig.Flag != Go {
		t.Fatalf("expected try/catch to absorb the throw, got flag %v", sig.Flag)
	}
	got, ok := e.Stack().LookupObj("caught")
	if !ok || got.(object.String) != "boom" {
		t.Fatalf("expected caught == \"boom\", got %v %v", got, ok)
	}
}

func TestTryFinallyAlwaysRuns(t *testing.T) {
	e := NewRoot(nil)
	e.Stack().SetEntry("ran", object.Bool(false)) // pre-declared so Finally's own block scope doesn't shadow it away on exit
	stmt := &ast.TryStatement{
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ThrowStatement{Value: lit(object.Int(1))},
		}},
		CatchAs: "e",
		Catch:   &ast.Block{},
		Finally: &ast.Block{Stmts: []ast.Stmt{
			&ast.AssignmentStatement{Lhs: ident("ran"), Rhs: lit(object.Bool(true))},
		}},
	}
	if _, err := e.ExecStmt(stmt); err != nil {
		t.Fatal(err)
	}
	got, ok := e.Stack().LookupObj("ran")
	if !ok || got.(object.Bool) != true {
		t.Fatalf("expected finally to run regardless of the catch outcome")
	}
}

func TestBreakOutsideLoopFails(t *testing.T) {
	e := NewRoot(nil)
	if _, err := e.ExecStmt(&ast.BreakStatement{}); !object.IsKind(err, object.InvalidOpcode) {
		t.Fatalf("expected InvalidOpcode, got %v", err)
	}
}

func TestSubscriptSlice(t *testing.T) {
	e := NewRoot(nil)
	arr := &ast.ArrayInstantiation{Elems: []ast.Expr{
		lit(object.Int(0)), lit(object.Int(1)), lit(object.Int(2)), lit(object.Int(3)), lit(object.Int(4)),
	}}
	v, err := e.Eval(&ast.Subscript{
		Expr:  arr,
		Index: &ast.SliceExpr{Start: lit(object.Int(1)), Stop: lit(object.Int(4))},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := v.(*object.Array)
	if len(got.Elems) != 3 || got.Elems[0].(object.Int) != 1 || got.Elems[2].(object.Int) != 3 {
		t.Fatalf("expected [1,2,3], got %v", got.Elems)
	}
}

func TestGlobalStatementMarksMainEntryGlobal(t *testing.T) {
	e := NewRoot(nil)
	if _, err := e.ExecStmt(&ast.AssignmentStatement{Lhs: ident("g"), Rhs: lit(object.Int(1))}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.ExecStmt(&ast.GlobalStatement{Names: []string{"g"}}); err != nil {
		t.Fatal(err)
	}
	attr, ok := e.Stack().Main().Lookup("g")
	if !ok || !attr.Global() {
		t.Fatalf("expected main entry %q to be flagged global", "g")
	}
}

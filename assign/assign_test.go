package assign

import (
	"testing"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// litEval evaluates a fixed set of expressions by identity, standing in
// for the expression executor in isolation tests.
type litEval struct {
	values map[ast.Expr]object.Object
}

func (e litEval) Eval(x ast.Expr) (object.Object, error) {
	if v, ok := e.values[x]; ok {
		return v, nil
	}
	return nil, object.NewError(object.SymbolNotFound, "unbound test expr")
}

func TestAssignDirect(t *testing.T) {
	stack := symtab.NewStack()
	lhs := &ast.Identifier{Name: "x"}
	rhsExpr := &ast.Literal{}
	ev := litEval{values: map[ast.Expr]object.Object{rhsExpr: object.Int(42)}}

	v, err := Assign(ev, stack, ast.AssignPlain, lhs, rhsExpr)
	if err != nil {
		t.Fatal(err)
	}
	if v.(object.Int) != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
	got, ok := stack.LookupObj("x")
	if !ok || got.(object.Int) != 42 {
		t.Fatalf("expected x bound to 42 in main, got %v %v", got, ok)
	}
}

func TestAssignPackIntoTuple(t *testing.T) {
	stack := symtab.NewStack()
	lhs := &ast.Identifier{Name: "t"}
	e1, e2 := &ast.Literal{}, &ast.Literal{}
	rhs := &ast.ExpressionList{Exprs: []ast.Expr{e1, e2}}
	ev := litEval{values: map[ast.Expr]object.Object{e1: object.Int(1), e2: object.Int(2)}}

	_, err := Assign(ev, stack, ast.AssignPlain, lhs, rhs)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := stack.LookupObj("t")
	tup, ok := got.(*object.Tuple)
	if !ok || len(tup.Elems) != 2 {
		t.Fatalf("expected packed 2-tuple, got %v", got)
	}
}

func TestAssignUnpackTuple(t *testing.T) {
	stack := symtab.NewStack()
	a, b := &ast.Identifier{Name: "a"}, &ast.Identifier{Name: "b"}
	lhs := &ast.AssignableList{Targets: []ast.Assignable{a, b}}
	rhsExpr := &ast.Literal{}
	ev := litEval{values: map[ast.Expr]object.Object{
		rhsExpr: &object.Tuple{Elems: []object.Object{object.Int(1), object.Int(2)}},
	}}

	_, err := Assign(ev, stack, ast.AssignPlain, lhs, rhsExpr)
	if err != nil {
		t.Fatal(err)
	}
	av, _ := stack.LookupObj("a")
	bv, _ := stack.LookupObj("b")
	if av.(object.Int) != 1 || bv.(object.Int) != 2 {
		t.Fatalf("expected a=1 b=2, got %v %v", av, bv)
	}
}

func TestAssignUnpackWrongArityFails(t *testing.T) {
	stack := symtab.NewStack()
	a, b, c := &ast.Identifier{Name: "a"}, &ast.Identifier{Name: "b"}, &ast.Identifier{Name: "c"}
	lhs := &ast.AssignableList{Targets: []ast.Assignable{a, b, c}}
	rhsExpr := &ast.Literal{}
	ev := litEval{values: map[ast.Expr]object.Object{
		rhsExpr: &object.Tuple{Elems: []object.Object{object.Int(1), object.Int(2)}},
	}}

	_, err := Assign(ev, stack, ast.AssignPlain, lhs, rhsExpr)
	if !object.IsKind(err, object.IncompatibleType) {
		t.Fatalf("expected IncompatibleType, got %v", err)
	}
	want := "IncompatibleType: unpack values size different from left values (expected 3, got 2)"
	if err.Error() != want {
		t.Fatalf("got error %q, want %q", err.Error(), want)
	}
}

// TestAssignTopLevelArityMismatchUsesDistinctMessage covers the other
// arity guard in Assign — |targets| != 1, |values| != 1, and the two
// counts disagree — which keeps "different size of tuples" rather than
// the unpack path's "unpack values size different from left values"
// message; the two guard different conditions and must not share text.
func TestAssignTopLevelArityMismatchUsesDistinctMessage(t *testing.T) {
	stack := symtab.NewStack()
	a, b := &ast.Identifier{Name: "a"}, &ast.Identifier{Name: "b"}
	lhs := &ast.AssignableList{Targets: []ast.Assignable{a, b}}
	e1, e2, e3 := &ast.Literal{}, &ast.Literal{}, &ast.Literal{}
	rhs := &ast.ExpressionList{Exprs: []ast.Expr{e1, e2, e3}}
	ev := litEval{values: map[ast.Expr]object.Object{
		e1: object.Int(1), e2: object.Int(2), e3: object.Int(3),
	}}

	_, err := Assign(ev, stack, ast.AssignPlain, lhs, rhs)
	if !object.IsKind(err, object.IncompatibleType) {
		t.Fatalf("expected IncompatibleType, got %v", err)
	}
	if err.Error() != "IncompatibleType: different size of tuples" {
		t.Fatalf("got error %q, want %q", err.Error(), "IncompatibleType: different size of tuples")
	}
}

// TestAssignEmptyTuplePatternFails covers the §8 boundary case where the
// LHS is an empty tuple/array literal pattern — rejected outright rather
// than vacuously unpacking.
func TestAssignEmptyTuplePatternFails(t *testing.T) {
	stack := symtab.NewStack()
	lhs := &ast.TupleInstantiation{}
	rhsExpr := &ast.Literal{}
	ev := litEval{values: map[ast.Expr]object.Object{
		rhsExpr: &object.Tuple{Elems: []object.Object{object.Int(1)}},
	}}

	_, err := Assign(ev, stack, ast.AssignPlain, lhs, rhsExpr)
	if !object.IsKind(err, object.IncompatibleType) {
		t.Fatalf("expected IncompatibleType, got %v", err)
	}
	if err.Error() != "IncompatibleType: tuple can't be empty in assignment operation" {
		t.Fatalf("got error %q", err.Error())
	}
}

func TestAssignPairwise(t *testing.T) {
	stack := symtab.NewStack()
	a, b := &ast.Identifier{Name: "a"}, &ast.Identifier{Name: "b"}
	lhs := &ast.AssignableList{Targets: []ast.Assignable{a, b}}
	e1, e2 := &ast.Literal{}, &ast.Literal{}
	rhs := &ast.ExpressionList{Exprs: []ast.Expr{e1, e2}}
	ev := litEval{values: map[ast.Expr]object.Object{e1: object.Int(10), e2: object.Int(20)}}

	_, err := Assign(ev, stack, ast.AssignPlain, lhs, rhs)
	if err != nil {
		t.Fatal(err)
	}
	av, _ := stack.LookupObj("a")
	bv, _ := stack.LookupObj("b")
	if av.(object.Int) != 10 || bv.(object.Int) != 20 {
		t.Fatalf("expected a=10 b=20, got %v %v", av, bv)
	}
}

func TestAssignCompoundAdd(t *testing.T) {
	stack := symtab.NewStack()
	stack.Main().SetValue("x").Set(object.Int(5))

	lhs := &ast.Identifier{Name: "x"}
	rhsExpr := &ast.Literal{}
	ev := litEval{values: map[ast.Expr]object.Object{rhsExpr: object.Int(3)}}

	v, err := Assign(ev, stack, ast.AssignAdd, lhs, rhsExpr)
	if err != nil {
		t.Fatal(err)
	}
	if v.(object.Int) != 3 {
		t.Fatalf("expected Assign to return the RHS operand 3, got %v", v)
	}
	got, ok := stack.LookupObj("x")
	if !ok || got.(object.Int) != 8 {
		t.Fatalf("expected x == 8, got %v %v", got, ok)
	}
}

func TestAssignIndexedCompound(t *testing.T) {
	stack := symtab.NewStack()
	arr := &object.Array{Elems: []object.Object{object.Int(1), object.Int(2), object.Int(3)}}

	recvExpr := &ast.Literal{}
	idxExpr := &ast.Literal{}
	valExpr := &ast.Literal{}
	target := &ast.Subscript{Expr: recvExpr, Index: idxExpr}
	ev := litEval{values: map[ast.Expr]object.Object{
		recvExpr: arr,
		idxExpr:  object.Int(1),
		valExpr:  object.Int(100),
	}}

	_, err := Assign(ev, stack, ast.AssignAdd, target, valExpr)
	if err != nil {
		t.Fatal(err)
	}
	got, err := arr.GetItem(object.Int(1))
	if err != nil {
		t.Fatal(err)
	}
	if got.(object.Int) != 102 {
		t.Fatalf("expected arr[1] == 102, got %v", got)
	}
}

func TestAssignAttributeCompound(t *testing.T) {
	stack := symtab.NewStack()
	typ := object.NewType("Point")
	inst := object.NewInstance(typ)
	inst.Attrs["n"] = object.Int(1)

	recvExpr := &ast.Literal{}
	valExpr := &ast.Literal{}
	target := &ast.Attribute{Expr: recvExpr, Name: "n"}
	ev := litEval{values: map[ast.Expr]object.Object{
		recvExpr: inst,
		valExpr:  object.Int(9),
	}}

	_, err := Assign(ev, stack, ast.AssignAdd, target, valExpr)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Attrs["n"].(object.Int) != 10 {
		t.Fatalf("expected n == 10, got %v", inst.Attrs["n"])
	}
}

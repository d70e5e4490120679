// Package assign implements the assignment engine (§4.2): arity rules
// across the four LHS shapes, RHS unpacking, and compound-operator
// read-modify-write.
package assign

import (
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// Evaluator is the narrow slice of the expression executor the
// assignment engine needs to evaluate LHS receiver/index subexpressions
// and RHS value expressions. Kept as an interface rather than importing
// interp directly, so assign does not depend on the package that depends
// on it.
type Evaluator interface {
	Eval(ast.Expr) (object.Object, error)
}

// Assign implements §4.2 end to end. lhs is either a single
// ast.Assignable or an *ast.AssignableList; rhs is either a single
// ast.Expr or an *ast.ExpressionList. It returns the value the
// assignment expression itself evaluates to (the RHS value, or the
// packed/unpacked tuple, mirroring assignment-as-expression in most
// C-family languages). For a compound operator the returned value is
// still the RHS operand, not the combined result stored in the target.
func Assign(ev Evaluator, stack *symtab.Stack, op ast.AssignOp, lhs ast.Expr, rhs ast.Expr) (object.Object, error) {
	targets, err := flattenLhs(lhs)
	if err != nil {
		return nil, err
	}
	values, err := evalRhs(ev, rhs)
	if err != nil {
		return nil, err
	}

	switch {
	case len(targets) == 1 && len(values) == 1:
		if err := assignOne(ev, stack, op, targets[0], values[0]); err != nil {
			return nil, err
		}
		return values[0], nil

	case len(targets) == 1 && len(values) > 1:
		tup := &object.Tuple{Elems: values}
		if err := assignOne(ev, stack, op, targets[0], tup); err != nil {
			return nil, err
		}
		return tup, nil

	case len(targets) > 1 && len(values) == 1:
		unpacked, err := Unpack(values[0], len(targets))
		if err != nil {
			return nil, err
		}
		for i, t := range targets {
			if err := assignOne(ev, stack, op, t, unpacked[i]); err != nil {
				return nil, err
			}
		}
		return values[0], nil

	case len(targets) == len(values):
		for i, t := range targets {
			if err := assignOne(ev, stack, op, t, values[i]); err != nil {
				return nil, err
			}
		}
		return &object.Tuple{Elems: values}, nil

	default:
		return nil, object.NewError(object.IncompatibleType, "different size of tuples")
	}
}

func flattenLhs(lhs ast.Expr) ([]ast.Assignable, error) {
	switch v := lhs.(type) {
	case *ast.AssignableList:
		return v.Targets, nil
	case ast.Assignable:
		return []ast.Assignable{v}, nil
	default:
		return nil, object.NewError(object.IncompatibleType, "not a valid assignment target")
	}
}

func evalRhs(ev Evaluator, rhs ast.Expr) ([]object.Object, error) {
	if list, ok := rhs.(*ast.ExpressionList); ok {
		values := make([]object.Object, 0, len(list.Exprs))
		for _, e := range list.Exprs {
			v, err := ev.Eval(e)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}
	v, err := ev.Eval(rhs)
	if err != nil {
		return nil, err
	}
	return []object.Object{v}, nil
}

// Unpack realizes §4.2's "Unpack" rule: a tuple/array's internal
// sequence is used directly; anything else is consumed fully via its
// iterator. Either way the result must have exactly n elements.
func Unpack(v object.Object, n int) ([]object.Object, error) {
	var elems []object.Object
	switch t := v.(type) {
	case *object.Tuple:
		elems = t.Elems
	case *object.Array:
		elems = t.Elems
	default:
		iterable, ok := v.(object.Iterable)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s is not iterable for unpacking", v.Tag())
		}
		it, err := iterable.ObjIter()
		if err != nil {
			return nil, err
		}
		for {
			hn, err := it.HasNext()
			if err != nil {
				return nil, err
			}
			ok, err := object.Truthy(hn)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			e, err := it.Next()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
	}
	if len(elems) != n {
		return nil, object.NewError(object.IncompatibleType,
			"unpack values size different from left values (expected %d, got %d)", n, len(elems))
	}
	return elems, nil
}

// assignOne dispatches on the four LHS shapes (§4.2).
func assignOne(ev Evaluator, stack *symtab.Stack, op ast.AssignOp, target ast.Assignable, val object.Object) error {
	switch t := target.(type) {
	case *ast.Identifier:
		return assignIdentifier(stack, t.Name, op, val)
	case *ast.Attribute:
		return assignAttribute(ev, stack, op, t, val)
	case *ast.Subscript:
		return assignSubscript(ev, stack, op, t, val)
	case *ast.TupleInstantiation:
		if len(t.Elems) == 0 {
			return object.NewError(object.IncompatibleType, "tuple can't be empty in assignment operation")
		}
		elems, err := Unpack(val, len(t.Elems))
		if err != nil {
			return err
		}
		return assignDestructure(ev, stack, op, t.Elems, elems)
	case *ast.ArrayInstantiation:
		if len(t.Elems) == 0 {
			return object.NewError(object.IncompatibleType, "tuple can't be empty in assignment operation")
		}
		elems, err := Unpack(val, len(t.Elems))
		if err != nil {
			return err
		}
		return assignDestructure(ev, stack, op, t.Elems, elems)
	default:
		return object.NewError(object.IncompatibleType, "not a valid assignment target")
	}
}

// assignDestructure recurses into a tuple/array-literal LHS pattern,
// each sub-target of which must itself be Assignable (§4.2 "tuple/array
// literal on LHS: structural destructure").
func assignDestructure(ev Evaluator, stack *symtab.Stack, op ast.AssignOp, targets []ast.Expr, values []object.Object) error {
	for i, te := range targets {
		a, ok := te.(ast.Assignable)
		if !ok {
			return object.NewError(object.IncompatibleType, "not a valid assignment target")
		}
		if err := assignOne(ev, stack, op, a, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignIdentifier(stack *symtab.Stack, name string, op ast.AssignOp, val object.Object) error {
	var attr *symtab.Attr
	if stack.HasFuncTable() {
		attr = stack.FuncTableValue(name)
	} else {
		a, err := stack.Lookup(name, true)
		if err != nil {
			return err
		}
		attr = a
	}
	if op == ast.AssignPlain {
		attr.Set(val)
		return nil
	}
	cur := attr.Get()
	if cur == nil {
		return object.NewError(object.SymbolNotFound, "cannot use compound assignment on undefined symbol %q", name)
	}
	next, err := applyCompound(op, cur, val)
	if err != nil {
		return err
	}
	attr.Set(next)
	return nil
}

func assignAttribute(ev Evaluator, _ *symtab.Stack, op ast.AssignOp, target *ast.Attribute, val object.Object) error {
	recv, err := ev.Eval(target.Expr)
	if err != nil {
		return err
	}
	attributed, ok := recv.(object.Attributed)
	if !ok {
		return object.NewError(object.IncompatibleType, "%s has no attributes", recv.Tag())
	}

	toSet := val
	if op != ast.AssignPlain {
		cur, err := attributed.AttrGet(target.Name)
		if err != nil {
			return err
		}
		toSet, err = applyCompound(op, cur, val)
		if err != nil {
			return err
		}
	}
	ref, err := attributed.AttrAssign(target.Name)
	if err != nil {
		return err
	}
	ref.Set(toSet)
	return nil
}

// assignSubscript implements the indexed LHS shape's read-modify-write
// rule exactly: expr and idx are each evaluated once; for a compound op,
// GetItem then the dispatched op then SetItem — never a cached
// intermediate reference (§4.2).
func assignSubscript(ev Evaluator, _ *symtab.Stack, op ast.AssignOp, target *ast.Subscript, val object.Object) error {
	recv, err := ev.Eval(target.Expr)
	if err != nil {
		return err
	}
	idx, err := ev.Eval(target.Index)
	if err != nil {
		return err
	}
	indexable, ok := recv.(object.Indexable)
	if !ok {
		return object.NewError(object.IncompatibleType, "%s is not indexable", recv.Tag())
	}

	toSet := val
	if op != ast.AssignPlain {
		cur, err := indexable.GetItem(idx)
		if err != nil {
			return err
		}
		toSet, err = applyCompound(op, cur, val)
		if err != nil {
			return err
		}
	}
	return indexable.SetItem(idx, toSet)
}

// applyCompound desugars `x ⊕= v` to the dispatched binary op on the
// current value (§4.2).
func applyCompound(op ast.AssignOp, cur, val object.Object) (object.Object, error) {
	if op == ast.AssignPlain {
		return val, nil
	}
	switch op {
	case ast.AssignAdd, ast.AssignSub, ast.AssignMult, ast.AssignDiv, ast.AssignMod, ast.AssignPow:
		a, ok := cur.(object.Arithmetic)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s does not support arithmetic assignment", cur.Tag())
		}
		switch op {
		case ast.AssignAdd:
			return a.Add(val)
		case ast.AssignSub:
			return a.Sub(val)
		case ast.AssignMult:
			return a.Mult(val)
		case ast.AssignDiv:
			return a.Div(val)
		case ast.AssignMod:
			return a.DivMod(val)
		default:
			return a.Pow(val)
		}

	case ast.AssignBitAnd, ast.AssignBitOr, ast.AssignBitXor, ast.AssignLShift, ast.AssignRShift:
		b, ok := cur.(object.Bitwise)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s does not support bitwise assignment", cur.Tag())
		}
		switch op {
		case ast.AssignBitAnd:
			return b.BitAnd(val)
		case ast.AssignBitOr:
			return b.BitOr(val)
		case ast.AssignBitXor:
			return b.BitXor(val)
		case ast.AssignLShift:
			return b.LeftShift(val)
		default:
			return b.RightShift(val)
		}

	default:
		return nil, object.NewError(object.InvalidOpcode, "unknown assignment operator")
	}
}

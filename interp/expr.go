package interp

import (
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
)

// Eval implements the expression executor (§4.3) and satisfies both
// assign.Evaluator and interp.CmdEvaluator.
func (e *Executor) Eval(node ast.Expr) (object.Object, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		if v, ok := e.stack.LookupObj(n.Name); ok {
			return v, nil
		}
		return nil, object.NewError(object.SymbolNotFound, "symbol %q not found", n.Name)

	case *ast.Literal:
		return evalLiteral(n)

	case *ast.UnaryOp:
		v, err := e.Eval(n.Expr)
		if err != nil {
			return nil, err
		}
		return evalUnaryOp(n.Op, v)

	case *ast.BinaryOp:
		return e.evalBinaryExpr(n)

	case *ast.Call:
		return e.evalCall(n)

	case *ast.Attribute:
		recv, err := e.Eval(n.Expr)
		if err != nil {
			return nil, err
		}
		attributed, ok := recv.(object.Attributed)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s has no attributes", recv.Tag())
		}
		return attributed.AttrGet(n.Name)

	case *ast.Subscript:
		return e.evalSubscript(n)

	case *ast.SliceExpr:
		return e.evalSliceExpr(n)

	case *ast.TupleInstantiation:
		elems, err := evalExprs(e, n.Elems)
		if err != nil {
			return nil, err
		}
		return object.NewTuple(elems), nil

	case *ast.ArrayInstantiation:
		elems, err := evalExprs(e, n.Elems)
		if err != nil {
			return nil, err
		}
		return object.NewArray(elems), nil

	case *ast.MapInstantiation:
		m := object.NewMap()
		for _, entry := range n.Entries {
			k, err := e.Eval(entry.Key)
			if err != nil {
				return nil, err
			}
			v, err := e.Eval(entry.Val)
			if err != nil {
				return nil, err
			}
			if err := m.SetItem(k, v); err != nil {
				return nil, err
			}
		}
		return m, nil

	case *ast.SetInstantiation:
		s := object.NewSet()
		for _, el := range n.Elems {
			v, err := e.Eval(el)
			if err != nil {
				return nil, err
			}
			if err := s.Add(v); err != nil {
				return nil, err
			}
		}
		return s, nil

	case *ast.LambdaExpr:
		defaults, err := evalExprs(e, n.Defaults)
		if err != nil {
			return nil, err
		}
		return &object.Func{
			Params:   n.Params,
			Defaults: defaults,
			Variadic: n.Variadic,
			Lambda:   true,
			Body:     n.Body,
			Closure:  e.stack.Snapshot(true),
		}, nil

	case *ast.CmdSubstitution:
		if e.cmd == nil {
			return nil, object.NewError(object.Custom, "command subsystem not configured")
		}
		return e.cmd.RunSubstitution(e, e.stack, n.Pipeline)

	case *ast.ExpressionList:
		elems, err := evalExprs(e, n.Exprs)
		if err != nil {
			return nil, err
		}
		return object.NewTuple(elems), nil

	default:
		return nil, object.NewError(object.InvalidOpcode, "unsupported expression %T", node)
	}
}

func evalLiteral(n *ast.Literal) (object.Object, error) {
	switch n.Kind {
	case ast.LitInt:
		return object.Int(n.Int), nil
	case ast.LitReal:
		return object.Real(n.Real), nil
	case ast.LitString:
		return object.String(n.Str), nil
	case ast.LitBool:
		return object.Bool(n.Bool), nil
	case ast.LitNil:
		return object.Nil{}, nil
	default:
		return nil, object.NewError(object.InvalidOpcode, "unknown literal kind")
	}
}

// evalBinaryExpr handles the two short-circuit logical operators inline
// (§4.3 "returns the last evaluated operand, not necessarily a Bool") and
// delegates everything else to evalBinOp once both sides are evaluated.
func (e *Executor) evalBinaryExpr(n *ast.BinaryOp) (object.Object, error) {
	if n.Op == ast.BinAnd || n.Op == ast.BinOr {
		lhs, err := e.Eval(n.Lhs)
		if err != nil {
			return nil, err
		}
		lt, err := e.Truthy(lhs)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.BinAnd && !lt {
			return lhs, nil
		}
		if n.Op == ast.BinOr && lt {
			return lhs, nil
		}
		return e.Eval(n.Rhs)
	}

	lhs, err := e.Eval(n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := e.Eval(n.Rhs)
	if err != nil {
		return nil, err
	}
	return evalBinOp(n.Op, lhs, rhs)
}

// evalCall implements §4.3's call protocol: evaluate the callee, then the
// arguments left to right, then dispatch. A bound method call (callee is
// an Attribute whose receiver resolves to something Attributed) picks up
// `self` automatically because Instance.AttrGet already returns a
// FuncWrapper; Type and plain Func/FuncWrapper values are Callable
// directly.
func (e *Executor) evalCall(n *ast.Call) (object.Object, error) {
	callee, err := e.Eval(n.Callee)
	if err != nil {
		return nil, err
	}
	args, err := evalExprs(e, n.Args)
	if err != nil {
		return nil, err
	}
	callable, ok := callee.(object.Callable)
	if !ok {
		return nil, object.NewError(object.IncompatibleType, "%s is not callable", callee.Tag())
	}
	return callable.Call(e, args)
}

// evalSubscript special-cases a Slice index (§4.3's `a[1:3]` form), since
// object.Indexable's GetItem contract is Int-only; anything else routes
// through the receiver's ordinary GetItem.
func (e *Executor) evalSubscript(n *ast.Subscript) (object.Object, error) {
	recv, err := e.Eval(n.Expr)
	if err != nil {
		return nil, err
	}

	if se, ok := n.Index.(*ast.SliceExpr); ok {
		sl, err := e.evalSliceExpr(se)
		if err != nil {
			return nil, err
		}
		return sliceValue(recv, sl.(*object.Slice))
	}

	idx, err := e.Eval(n.Index)
	if err != nil {
		return nil, err
	}
	indexable, ok := recv.(object.Indexable)
	if !ok {
		return nil, object.NewError(object.IncompatibleType, "%s is not indexable", recv.Tag())
	}
	return indexable.GetItem(idx)
}

func (e *Executor) evalSliceExpr(n *ast.SliceExpr) (object.Object, error) {
	sl := &object.Slice{}
	var err error
	if n.Start != nil {
		if sl.Start, err = e.Eval(n.Start); err != nil {
			return nil, err
		}
	}
	if n.Stop != nil {
		if sl.Stop, err = e.Eval(n.Stop); err != nil {
			return nil, err
		}
	}
	if n.Step != nil {
		if sl.Step, err = e.Eval(n.Step); err != nil {
			return nil, err
		}
	}
	return sl, nil
}

// sliceValue applies a resolved Slice to a receiver by coercing it to its
// element sequence via ObjArray and selecting the bounded range. A String
// receiver yields a String; every other receiver (Array, Tuple, Range,
// ...) yields an Array. A receiver without ObjArray fails.
func sliceValue(recv object.Object, sl *object.Slice) (object.Object, error) {
	coercible, ok := recv.(object.Coercible)
	if !ok {
		return nil, object.NewError(object.IncompatibleType, "%s does not support slicing", recv.Tag())
	}
	elems, err := coercible.ObjArray()
	if err != nil {
		return nil, err
	}
	start, stop, step, err := sl.Bounds(len(elems))
	if err != nil {
		return nil, err
	}

	var out []object.Object
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, elems[i])
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, elems[i])
		}
	}

	if _, isStr := recv.(object.String); isStr {
		var sb []byte
		for _, o := range out {
			s, _ := o.(object.String)
			sb = append(sb, string(s)...)
		}
		return object.String(sb), nil
	}
	return object.NewArray(out), nil
}

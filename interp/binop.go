package interp

import (
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
)

// evalBinOp dispatches every non-short-circuit binary operator to the
// object model's operation-dispatch interfaces (§3.3, §4.3). `and`/`or`
// are handled separately in Eval since they must not evaluate their
// right operand eagerly.
func evalBinOp(op ast.BinOpKind, lhs, rhs object.Object) (object.Object, error) {
	switch op {
	case ast.BinAdd, ast.BinSub, ast.BinMult, ast.BinDiv, ast.BinMod, ast.BinPow:
		a, ok := lhs.(object.Arithmetic)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s does not support arithmetic", lhs.Tag())
		}
		switch op {
		case ast.BinAdd:
			return a.Add(rhs)
		case ast.BinSub:
			return a.Sub(rhs)
		case ast.BinMult:
			return a.Mult(rhs)
		case ast.BinDiv:
			return a.Div(rhs)
		case ast.BinMod:
			return a.DivMod(rhs)
		default:
			return a.Pow(rhs)
		}

	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinLShift, ast.BinRShift:
		b, ok := lhs.(object.Bitwise)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s does not support bitwise ops", lhs.Tag())
		}
		switch op {
		case ast.BinBitAnd:
			return b.BitAnd(rhs)
		case ast.BinBitOr:
			return b.BitOr(rhs)
		case ast.BinBitXor:
			return b.BitXor(rhs)
		case ast.BinLShift:
			return b.LeftShift(rhs)
		default:
			return b.RightShift(rhs)
		}

	case ast.BinEqual, ast.BinNotEqual, ast.BinLess, ast.BinGreater, ast.BinLessEq, ast.BinGreaterEq:
		c, ok := lhs.(object.Comparable)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s does not support comparison", lhs.Tag())
		}
		switch op {
		case ast.BinEqual:
			return c.Equal(rhs)
		case ast.BinNotEqual:
			return c.NotEqual(rhs)
		case ast.BinLess:
			return c.Less(rhs)
		case ast.BinGreater:
			return c.Greater(rhs)
		case ast.BinLessEq:
			return c.LessEq(rhs)
		default:
			return c.GreaterEq(rhs)
		}

	default:
		return nil, object.NewError(object.InvalidOpcode, "unknown binary operator")
	}
}

func evalUnaryOp(op ast.UnaryOpKind, v object.Object) (object.Object, error) {
	switch op {
	case ast.UnNeg:
		a, ok := v.(object.Arithmetic)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s does not support negation", v.Tag())
		}
		return a.Mult(object.Int(-1))
	case ast.UnNot:
		l, ok := v.(object.Logical)
		if ok {
			return l.Not()
		}
		b, err := object.Truthy(v)
		if err != nil {
			return nil, err
		}
		return object.Bool(!b), nil
	case ast.UnBitNot:
		b, ok := v.(object.Bitwise)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "%s does not support bitwise not", v.Tag())
		}
		return b.BitNot()
	default:
		return nil, object.NewError(object.InvalidOpcode, "unknown unary operator")
	}
}

package parser

import (
	"strconv"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/lexer"
)

type binInfo struct {
	op    ast.BinOpKind
	prec  int
	right bool
}

var binOps = map[lexer.TokenType]binInfo{
	lexer.TokOr:         {ast.BinOr, 1, false},
	lexer.TokOrOr:       {ast.BinOr, 1, false},
	lexer.TokAnd:        {ast.BinAnd, 2, false},
	lexer.TokAndAnd:     {ast.BinAnd, 2, false},
	lexer.TokEq:         {ast.BinEqual, 3, false},
	lexer.TokNotEq:      {ast.BinNotEqual, 3, false},
	lexer.TokLess:       {ast.BinLess, 4, false},
	lexer.TokGreater:    {ast.BinGreater, 4, false},
	lexer.TokLessEq:     {ast.BinLessEq, 4, false},
	lexer.TokGreaterEq:  {ast.BinGreaterEq, 4, false},
	lexer.TokPipeChar:   {ast.BinBitOr, 5, false},
	lexer.TokCaret:      {ast.BinBitXor, 6, false},
	lexer.TokAmp:        {ast.BinBitAnd, 7, false},
	lexer.TokShl:        {ast.BinLShift, 8, false},
	lexer.TokShr:        {ast.BinRShift, 8, false},
	lexer.TokPlus:       {ast.BinAdd, 9, false},
	lexer.TokMinus:      {ast.BinSub, 9, false},
	lexer.TokStar:       {ast.BinMult, 10, false},
	lexer.TokSlash:      {ast.BinDiv, 10, false},
	lexer.TokPercent:    {ast.BinMod, 10, false},
	lexer.TokPow:        {ast.BinPow, 11, true},
}

// parseExpr climbs the precedence table in binOps, Pratt-style — grounded
// on the teacher's parseValue/parseList recursive structure, generalized
// from a flat value grammar to a full binary-operator hierarchy since the
// core's ast package models arithmetic, bitwise, and comparison exprs the
// teacher's shell-only grammar never had.
func (p *parser) parseExpr() ast.Expr {
	return p.parseBinary(0)
}

func (p *parser) parseBinary(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		info, ok := binOps[p.peek().Kind]
		if !ok || info.prec < minPrec {
			return lhs
		}
		op := p.next()
		nextMin := info.prec + 1
		if info.right {
			nextMin = info.prec
		}
		rhs := p.parseBinary(nextMin)
		lhs = at(&ast.BinaryOp{Op: info.op, Lhs: lhs, Rhs: rhs}, p.pos(op))
	}
}

func (p *parser) parseUnary() ast.Expr {
	switch t := p.peek(); t.Kind {
	case lexer.TokMinus:
		p.next()
		return at(&ast.UnaryOp{Op: ast.UnNeg, Expr: p.parseUnary()}, p.pos(t))
	case lexer.TokBang, lexer.TokNot:
		p.next()
		return at(&ast.UnaryOp{Op: ast.UnNot, Expr: p.parseUnary()}, p.pos(t))
	case lexer.TokTilde:
		p.next()
		return at(&ast.UnaryOp{Op: ast.UnBitNot, Expr: p.parseUnary()}, p.pos(t))
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokLParen:
			p.next()
			args := p.parseExprList(lexer.TokRParen)
			p.expect(lexer.TokRParen, "closing parenthesis")
			expr = at(&ast.Call{Callee: expr, Args: args}, p.pos(t))
		case lexer.TokDot:
			p.next()
			name := p.expect(lexer.TokIdent, "attribute name")
			expr = at(&ast.Attribute{Expr: expr, Name: name.Val}, p.pos(t))
		case lexer.TokLBracket:
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.TokRBracket, "closing bracket")
			expr = at(&ast.Subscript{Expr: expr, Index: idx}, p.pos(t))
		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	switch t := p.next(); t.Kind {
	case lexer.TokInt:
		n, err := strconv.ParseInt(t.Val, 10, 64)
		if err != nil {
			p.die(errExpected{"integer literal", t})
		}
		return at(&ast.Literal{Kind: ast.LitInt, Int: n}, p.pos(t))
	case lexer.TokReal:
		f, err := strconv.ParseFloat(t.Val, 64)
		if err != nil {
			p.die(errExpected{"real literal", t})
		}
		return at(&ast.Literal{Kind: ast.LitReal, Real: f}, p.pos(t))
	case lexer.TokString:
		return at(&ast.Literal{Kind: ast.LitString, Str: t.Val}, p.pos(t))
	case lexer.TokTrue:
		return at(&ast.Literal{Kind: ast.LitBool, Bool: true}, p.pos(t))
	case lexer.TokFalse:
		return at(&ast.Literal{Kind: ast.LitBool, Bool: false}, p.pos(t))
	case lexer.TokNil:
		return at(&ast.Literal{Kind: ast.LitNil}, p.pos(t))
	case lexer.TokIdent:
		return at(&ast.Identifier{Name: t.Val}, p.pos(t))
	case lexer.TokLParen:
		expr := p.parseExpr()
		p.expect(lexer.TokRParen, "closing parenthesis")
		return expr
	case lexer.TokLBracket:
		elems := p.parseExprList(lexer.TokRBracket)
		p.expect(lexer.TokRBracket, "closing bracket")
		return at(&ast.ArrayInstantiation{Elems: elems}, p.pos(t))
	case lexer.TokDollarParen:
		pipeline := p.parseCmdAndOr()
		p.expect(lexer.TokRParen, "closing parenthesis after command substitution")
		return at(&ast.CmdSubstitution{Pipeline: at(&ast.CmdFull{Pipeline: pipeline}, p.pos(t))}, p.pos(t))
	default:
		p.die(errExpected{"expression", t})
		return nil
	}
}

// parseExprList parses a comma-separated expression list terminated by
// end (not consumed), used for call arguments and array literals.
func (p *parser) parseExprList(end lexer.TokenType) []ast.Expr {
	var exprs []ast.Expr
	if p.peek().Kind == end {
		return exprs
	}
	exprs = append(exprs, p.parseExpr())
	for p.peek().Kind == lexer.TokComma {
		p.next()
		if p.peek().Kind == end {
			break
		}
		exprs = append(exprs, p.parseExpr())
	}
	return exprs
}

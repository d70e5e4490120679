package parser

import (
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/lexer"
)

// parseProgram mirrors the teacher's parseProgram/parseCommandList loop:
// skip stray statement terminators between top-level statements, stop on
// EOF, otherwise parse one statement.
func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for {
		switch p.peek().Kind {
		case lexer.TokEndStmt:
			p.next()
		case lexer.TokEof:
			return prog
		default:
			prog.Stmts = append(prog.Stmts, p.parseStmt())
		}
	}
}

func (p *parser) parseBlock() *ast.Block {
	open := p.expect(lexer.TokLBrace, "opening brace")
	block := at(&ast.Block{}, p.pos(open))
	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokEndStmt:
			p.next()
		case lexer.TokRBrace:
			p.next()
			return block
		case lexer.TokEof:
			p.die(errExpected{"closing brace", t})
		default:
			block.Stmts = append(block.Stmts, p.parseStmt())
		}
	}
}

func (p *parser) parseStmt() ast.Stmt {
	switch t := p.peek(); t.Kind {
	case lexer.TokDollar:
		return p.parseCmdLine()
	case lexer.TokIf:
		return p.parseIf()
	case lexer.TokWhile:
		return p.parseWhile()
	case lexer.TokFunc:
		return p.parseFuncDecl()
	case lexer.TokReturn:
		p.next()
		stmt := at(&ast.ReturnStatement{}, p.pos(t))
		if !p.startsStmtEnd() {
			stmt.Value = p.parseExpr()
		}
		return stmt
	case lexer.TokBreak:
		p.next()
		return at(&ast.BreakStatement{}, p.pos(t))
	case lexer.TokContinue:
		p.next()
		return at(&ast.ContinueStatement{}, p.pos(t))
	case lexer.TokGlobal:
		p.next()
		names := []string{p.expect(lexer.TokIdent, "name").Val}
		for p.peek().Kind == lexer.TokComma {
			p.next()
			names = append(names, p.expect(lexer.TokIdent, "name").Val)
		}
		return at(&ast.GlobalStatement{Names: names}, p.pos(t))
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) startsStmtEnd() bool {
	switch p.peek().Kind {
	case lexer.TokEndStmt, lexer.TokEof, lexer.TokRBrace:
		return true
	default:
		return false
	}
}

// parseSimpleStmt handles an assignment or a bare expression statement;
// both start with an expression, so the two are disambiguated by what
// follows it — matching the teacher's lookahead-by-one-token style.
func (p *parser) parseSimpleStmt() ast.Stmt {
	start := p.peek()
	lhs := p.parseExpr()

	if op, ok := assignOps[p.peek().Kind]; ok {
		eq := p.next()
		assignable, ok := lhs.(ast.Assignable)
		if !ok {
			p.die(errExpected{"assignable expression before '='", eq})
		}
		rhs := p.parseExpr()
		return at(&ast.AssignmentStatement{Op: op, Lhs: assignable, Rhs: rhs}, p.pos(eq))
	}

	return at(&ast.ExprStatement{Expr: lhs}, p.pos(start))
}

var assignOps = map[lexer.TokenType]ast.AssignOp{
	lexer.TokAssign:   ast.AssignPlain,
	lexer.TokPlusEq:   ast.AssignAdd,
	lexer.TokMinusEq:  ast.AssignSub,
	lexer.TokStarEq:   ast.AssignMult,
	lexer.TokSlashEq:  ast.AssignDiv,
	lexer.TokPercentEq: ast.AssignMod,
	lexer.TokPowEq:    ast.AssignPow,
	lexer.TokAmpEq:    ast.AssignBitAnd,
	lexer.TokPipeEq:   ast.AssignBitOr,
	lexer.TokCaretEq:  ast.AssignBitXor,
	lexer.TokShlEq:    ast.AssignLShift,
	lexer.TokShrEq:    ast.AssignRShift,
}

func (p *parser) parseIf() *ast.IfStatement {
	first := p.next() // consume 'if'
	stmt := at(&ast.IfStatement{}, p.pos(first))
	cond := p.parseExpr()
	body := p.parseBlock()
	stmt.Clauses = append(stmt.Clauses, ast.IfClause{Cond: cond, Body: body})

	for p.peek().Kind == lexer.TokElif {
		p.next()
		cond := p.parseExpr()
		body := p.parseBlock()
		stmt.Clauses = append(stmt.Clauses, ast.IfClause{Cond: cond, Body: body})
	}

	if p.peek().Kind == lexer.TokElse {
		p.next()
		stmt.Else = p.parseBlock()
	}

	return stmt
}

func (p *parser) parseWhile() *ast.WhileStatement {
	first := p.next() // consume 'while'
	cond := p.parseExpr()
	body := p.parseBlock()
	return at(&ast.WhileStatement{Cond: cond, Body: body}, p.pos(first))
}

func (p *parser) parseFuncDecl() *ast.FunctionDeclaration {
	first := p.next() // consume 'func'
	name := p.expect(lexer.TokIdent, "function name")
	decl := at(&ast.FunctionDeclaration{Name: name.Val}, p.pos(first))

	p.expect(lexer.TokLParen, "opening parenthesis")
	for p.peek().Kind != lexer.TokRParen {
		if len(decl.Params) > 0 {
			p.expect(lexer.TokComma, "comma between parameters")
		}
		if p.peek().Kind == lexer.TokStar {
			p.next()
			decl.Variadic = true
			decl.Params = append(decl.Params, p.expect(lexer.TokIdent, "parameter name").Val)
			break
		}
		param := p.expect(lexer.TokIdent, "parameter name")
		decl.Params = append(decl.Params, param.Val)
		if p.peek().Kind == lexer.TokAssign {
			p.next()
			decl.Defaults = append(decl.Defaults, p.parseExpr())
		} else if len(decl.Defaults) > 0 {
			p.die(errExpected{"default value after preceding defaulted parameter", p.peek()})
		}
	}
	p.expect(lexer.TokRParen, "closing parenthesis")

	decl.Body = p.parseBlock()
	return decl
}

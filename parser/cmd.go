package parser

import (
	"strconv"
	"strings"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/lexer"
)

// parseCmdLine parses a full command-line statement, introduced by a
// leading '$' sigil — nettle's generalization of the teacher's bare shell
// grammar, kept as a distinct sub-grammar entered only from this sigil or
// from a $(...) command substitution.
func (p *parser) parseCmdLine() *ast.CmdFull {
	sigil := p.next() // consume '$'
	pipeline := p.parseCmdAndOr()
	full := at(&ast.CmdFull{Pipeline: pipeline}, p.pos(sigil))
	if p.peek().Kind == lexer.TokAmp {
		p.next()
		full.Background = true
	}
	return full
}

func (p *parser) parseCmdAndOr() ast.Expr {
	var lhs ast.Expr = p.parseCmdPipeSequence()
	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokAndAnd:
			p.next()
			rhs := p.parseCmdPipeSequence()
			lhs = at(&ast.CmdAndOr{Kind: ast.AndOrAnd, Lhs: lhs, Rhs: rhs}, p.pos(t))
		case lexer.TokOrOr:
			p.next()
			rhs := p.parseCmdPipeSequence()
			lhs = at(&ast.CmdAndOr{Kind: ast.AndOrOr, Lhs: lhs, Rhs: rhs}, p.pos(t))
		default:
			return lhs
		}
	}
}

func (p *parser) parseCmdPipeSequence() *ast.CmdPipeSequence {
	first := p.peek()
	seq := at(&ast.CmdPipeSequence{}, p.pos(first))
	seq.Cmds = append(seq.Cmds, p.parseSimpleCmd())
	for p.peek().Kind == lexer.TokPipeChar {
		p.next()
		seq.Cmds = append(seq.Cmds, p.parseSimpleCmd())
	}
	return seq
}

// isRedirTok reports whether t begins a redirection (plain or
// fd-prefixed) rather than an ordinary command word.
func isRedirTok(k lexer.TokenType) bool {
	switch k {
	case lexer.TokLess, lexer.TokGreater, lexer.TokShr, lexer.TokReadWrite,
		lexer.TokDupRead, lexer.TokDupWrite,
		lexer.TokFdRead, lexer.TokFdWrite, lexer.TokFdAppend,
		lexer.TokFdReadWrite, lexer.TokFdDupRead, lexer.TokFdDupWrite:
		return true
	default:
		return false
	}
}

// isCmdWordTok reports whether t can start a command word — a name, an
// argument, or a $(...) substitution.
// keywordText is the set of tokens lexIdent emits for a reserved word —
// the lexer always recognizes "true", "while", "and", and friends as
// keywords regardless of context, so a command line running a program
// named e.g. "true" has to reconstitute the word from the keyword
// token's Val rather than rejecting it outright.
var keywordText = map[lexer.TokenType]bool{
	lexer.TokIf: true, lexer.TokElif: true, lexer.TokElse: true,
	lexer.TokWhile: true, lexer.TokFunc: true, lexer.TokReturn: true,
	lexer.TokBreak: true, lexer.TokContinue: true, lexer.TokGlobal: true,
	lexer.TokTrue: true, lexer.TokFalse: true, lexer.TokNil: true,
	lexer.TokAnd: true, lexer.TokOr: true, lexer.TokNot: true,
}

func isCmdWordTok(k lexer.TokenType) bool {
	if keywordText[k] {
		return true
	}
	switch k {
	case lexer.TokIdent, lexer.TokInt, lexer.TokReal, lexer.TokString, lexer.TokDollarParen:
		return true
	default:
		return false
	}
}

func (p *parser) parseSimpleCmd() *ast.SimpleCmd {
	first := p.peek()
	cmd := at(&ast.SimpleCmd{}, p.pos(first))

	for p.peek().Kind == lexer.TokIdent && p.peekN(1).Kind == lexer.TokAssign {
		name := p.next()
		eq := p.next() // consume '='
		val := p.parseCmdWord()
		assign := at(&ast.AssignmentStatement{
			Op:  ast.AssignPlain,
			Lhs: at(&ast.Identifier{Name: name.Val}, p.pos(name)),
			Rhs: val,
		}, p.pos(eq))
		cmd.PreAssign = append(cmd.PreAssign, assign)
	}

	cmd.Name = p.parseCmdWord()

	for {
		switch t := p.peek(); {
		case isRedirTok(t.Kind):
			cmd.Redirects = append(cmd.Redirects, p.parseRedirect())
		case isCmdWordTok(t.Kind):
			cmd.Args = append(cmd.Args, p.parseCmdWord())
		default:
			return cmd
		}
	}
}

// parseCmdWord parses a single command-position word: a bare name, a
// quoted string, a numeric literal used as a literal word, or a nested
// $(...) command substitution.
func (p *parser) parseCmdWord() ast.Expr {
	switch t := p.next(); {
	case keywordText[t.Kind], t.Kind == lexer.TokIdent, t.Kind == lexer.TokInt,
		t.Kind == lexer.TokReal, t.Kind == lexer.TokString:
		return at(&ast.Literal{Kind: ast.LitString, Str: t.Val}, p.pos(t))
	case t.Kind == lexer.TokDollarParen:
		pipeline := p.parseCmdAndOr()
		p.expect(lexer.TokRParen, "closing parenthesis after command substitution")
		return at(&ast.CmdSubstitution{Pipeline: at(&ast.CmdFull{Pipeline: pipeline}, p.pos(t))}, p.pos(t))
	default:
		p.die(errExpected{"command word", t})
		return nil
	}
}

// parseRedirect parses one redirection. Plain operators (<, >, >>, <>,
// <&, >&) default their fd per POSIX convention (0 for read-side, 1 for
// write-side); fd-prefixed operators (lexed as a single token, e.g.
// "2>>") carry the source fd — and for the dup forms, the target fd too —
// embedded in the token's Val, since the lexer has already consumed past
// any whitespace that might otherwise separate them.
func (p *parser) parseRedirect() *ast.Redirect {
	t := p.next()
	r := at(&ast.Redirect{}, p.pos(t))

	switch t.Kind {
	case lexer.TokLess:
		r.Type, r.Fd = ast.RedirRead, 0
		r.Target = p.parseCmdWord()
	case lexer.TokGreater:
		r.Type, r.Fd = ast.RedirWrite, 1
		r.Target = p.parseCmdWord()
	case lexer.TokShr:
		r.Type, r.Fd = ast.RedirAppend, 1
		r.Target = p.parseCmdWord()
	case lexer.TokReadWrite:
		r.Type, r.Fd = ast.RedirReadWrite, 0
		r.Target = p.parseCmdWord()
	case lexer.TokDupRead:
		r.Type, r.Fd, r.IsDupFd = ast.RedirDup, 0, true
		r.DupFd = p.parseDupTarget()
	case lexer.TokDupWrite:
		r.Type, r.Fd, r.IsDupFd = ast.RedirDup, 1, true
		r.DupFd = p.parseDupTarget()
	case lexer.TokFdRead:
		r.Type, r.Fd = ast.RedirRead, fdPrefix(t.Val, "<")
		r.Target = p.parseCmdWord()
	case lexer.TokFdWrite:
		r.Type, r.Fd = ast.RedirWrite, fdPrefix(t.Val, ">")
		r.Target = p.parseCmdWord()
	case lexer.TokFdAppend:
		r.Type, r.Fd = ast.RedirAppend, fdPrefix(t.Val, ">>")
		r.Target = p.parseCmdWord()
	case lexer.TokFdReadWrite:
		r.Type, r.Fd = ast.RedirReadWrite, fdPrefix(t.Val, "<>")
		r.Target = p.parseCmdWord()
	case lexer.TokFdDupRead:
		r.Type, r.IsDupFd = ast.RedirDup, true
		r.Fd, r.DupFd = fdPrefix(t.Val, "<&"), fdSuffix(t.Val, "<&")
	case lexer.TokFdDupWrite:
		r.Type, r.IsDupFd = ast.RedirDup, true
		r.Fd, r.DupFd = fdPrefix(t.Val, ">&"), fdSuffix(t.Val, ">&")
	default:
		p.die(errExpected{"redirection operator", t})
	}
	return r
}

// parseDupTarget reads the fd number following a bare "<&"/">&" that
// carried no fd prefix of its own.
func (p *parser) parseDupTarget() int {
	t := p.expect(lexer.TokInt, "file descriptor number")
	n, err := strconv.Atoi(t.Val)
	if err != nil {
		p.die(errExpected{"file descriptor number", t})
	}
	return n
}

// fdPrefix extracts the digits preceding op in a fd-prefixed redirect
// token's Val (e.g. "2" from "2>>").
func fdPrefix(val, op string) int {
	idx := strings.Index(val, op)
	if idx <= 0 {
		return 0
	}
	n, _ := strconv.Atoi(val[:idx])
	return n
}

// fdSuffix extracts the digits following op, if any (e.g. "1" from
// "2<&1"); used only for the dup forms.
func fdSuffix(val, op string) int {
	idx := strings.Index(val, op)
	if idx < 0 {
		return 0
	}
	rest := val[idx+len(op):]
	n, _ := strconv.Atoi(rest)
	return n
}

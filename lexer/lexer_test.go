package lexer

import "testing"

func collect(input string) []Token {
	l := New(input)
	go l.Run()
	var toks []Token
	for t := range l.Out {
		toks = append(toks, t)
	}
	return toks
}

func kinds(toks []Token) []TokenType {
	ks := make([]TokenType, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, got []TokenType, want ...TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexIdentKeywordAndLiteral(t *testing.T) {
	toks := collect("if x == 1 { return true }")
	assertKinds(t, kinds(toks),
		TokIf, TokIdent, TokEq, TokInt, TokLBrace, TokReturn, TokTrue, TokRBrace, TokEof)
}

func TestLexAssignmentAndCompoundOps(t *testing.T) {
	toks := collect("x += 1\ny **= 2")
	assertKinds(t, kinds(toks),
		TokIdent, TokPlusEq, TokInt, TokEndStmt,
		TokIdent, TokPowEq, TokInt, TokEof)
}

func TestLexStringEscapes(t *testing.T) {
	toks := collect(`"a\nb"`)
	if len(toks) != 2 || toks[0].Kind != TokString || toks[0].Val != "a\nb" {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexSingleQuotedStringIsLiteral(t *testing.T) {
	toks := collect(`'a\nb'`)
	if len(toks) != 2 || toks[0].Kind != TokString || toks[0].Val != `a\nb` {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexFdPrefixedRedirect(t *testing.T) {
	toks := collect("2>> out")
	assertKinds(t, kinds(toks), TokFdAppend, TokIdent, TokEof)
	if toks[0].Val != "2>>" {
		t.Fatalf("got %q", toks[0].Val)
	}
}

func TestLexCommandLine(t *testing.T) {
	toks := collect("$ ls foo | grep bar &")
	assertKinds(t, kinds(toks),
		TokDollar, TokIdent, TokIdent, TokPipeChar, TokIdent, TokIdent, TokAmp, TokEof)
}

func TestLexCommandSubstitution(t *testing.T) {
	toks := collect("x = $(ls)")
	assertKinds(t, kinds(toks),
		TokIdent, TokAssign, TokDollarParen, TokIdent, TokRParen, TokEof)
}

func TestLexComment(t *testing.T) {
	toks := collect("x = 1 # trailing comment\ny = 2")
	assertKinds(t, kinds(toks),
		TokIdent, TokAssign, TokInt, TokEndStmt, TokIdent, TokAssign, TokInt, TokEof)
}

package command

import (
	"os"
	"os/user"
	"strings"

	"github.com/anmitsu/go-shlex"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/interp"
	"git.sr.ht/~caraway/nettle/object"
)

// ExpandWords implements §SUPPLEMENTED's word-expansion pass: each
// argument expression is evaluated, then turned into zero or more argv
// words. A quoted string literal is always exactly one word; anything
// else (an unquoted identifier, a command substitution, a collection) is
// word-split per §3.6/POSIX rules, since its value only becomes known at
// run time and may itself contain whitespace-separated words (e.g. an
// unquoted `$files` holding "a.txt b.txt"). Tilde expansion (`~`,
// `~user`) is applied to every resulting word, grounded on the teacher's
// vm/ast.go tildeExpand.
func ExpandWords(ev interp.CmdEvaluator, exprs []ast.Expr) ([]string, error) {
	var words []string
	for _, expr := range exprs {
		v, err := ev.Eval(expr)
		if err != nil {
			return nil, err
		}
		ws, err := wordsFor(v, isQuotedLiteral(expr))
		if err != nil {
			return nil, err
		}
		for _, w := range ws {
			words = append(words, expandTilde(w))
		}
	}
	return words, nil
}

func isQuotedLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.Literal)
	return ok && lit.Kind == ast.LitString
}

// wordsFor turns a single evaluated argument into one or more words. A
// Cmd or collection value always expands element-wise (this is how
// `$(ls)` or an Array argument fans out into multiple argv entries); a
// plain scalar is shell-split unless it came from a quoted literal.
func wordsFor(v object.Object, quoted bool) ([]string, error) {
	switch v.(type) {
	case *object.Cmd, *object.Array, *object.Tuple:
		coercible := v.(object.Coercible)
		elems, err := coercible.ObjArray()
		if err != nil {
			return nil, err
		}
		var out []string
		for _, el := range elems {
			s, err := scalarString(el)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}

	s, err := scalarString(v)
	if err != nil {
		return nil, err
	}
	if quoted || s == "" {
		return []string{s}, nil
	}
	return shlex.Split(s, true)
}

func scalarString(v object.Object) (string, error) {
	coercible, ok := v.(object.Coercible)
	if !ok {
		return "", object.NewError(object.IncompatibleType, "%s cannot be used as a command word", v.Tag())
	}
	return coercible.ObjString()
}

// expandTilde implements `~` (current user's home) and `~user` (named
// user's home) at the start of a word, grounded on the teacher's
// vm/ast.go tildeExpand. Only a leading tilde is special; `a~b` is
// left alone.
func expandTilde(word string) string {
	if !strings.HasPrefix(word, "~") {
		return word
	}
	rest := word[1:]
	name, suffix, hasSlash := strings.Cut(rest, "/")

	var home string
	if name == "" {
		home = os.Getenv("HOME")
		if u, err := user.Current(); home == "" && err == nil {
			home = u.HomeDir
		}
	} else if u, err := user.Lookup(name); err == nil {
		home = u.HomeDir
	} else {
		return word
	}
	if home == "" {
		return word
	}
	if hasSlash {
		return home + "/" + suffix
	}
	return home
}

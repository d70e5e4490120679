package builtin

import (
	"unicode"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// set implements the legacy shell-style `set variable [value ...]`
// builtin (distinct from nettle's own `=` assignment, which is scope-
// aware): it binds directly into main, generalizing the teacher's
// single process-global VarTable map into a real nettle variable —
// a String for one value, an Array for several — visible by name
// anywhere `global`-declared code can see it.
func set(st *symtab.Stack, streams command.Streams, args []string) int {
	if len(args) == 1 {
		errorf(streams, args[0], "usage: set variable [value ...]")
		return 1
	}

	ident := args[1]
	for _, r := range ident {
		if !isRefChar(r) {
			errorf(streams, args[0], "rune %q is not allowed in variable names", r)
			return 1
		}
	}

	main := st.Main()
	if len(args) == 2 {
		if !main.Remove(ident) {
			errorf(streams, args[0], "variable %q was already unset", ident)
			return 1
		}
		return 0
	}

	vals := args[2:]
	if len(vals) == 1 {
		main.SetValue(ident).Set(object.String(vals[0]))
	} else {
		elems := make([]object.Object, len(vals))
		for i, v := range vals {
			elems[i] = object.String(v)
		}
		main.SetValue(ident).Set(object.NewArray(elems))
	}
	return 0
}

// isRefChar reports whether r may appear in a nettle variable name;
// grounded on the teacher's lexer.IsRefChar, restated locally since
// nettle's own lexer package governs its token grammar independently.
func isRefChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

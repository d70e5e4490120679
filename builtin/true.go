package builtin

import (
	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

func true_(st *symtab.Stack, streams command.Streams, args []string) int {
	if n := len(args) - 1; n > 0 {
		errorf(streams, args[0], "%d arguments are being ignored", n)
	}
	return 0
}

func false_(st *symtab.Stack, streams command.Streams, args []string) int {
	if n := len(args) - 1; n > 0 {
		errorf(streams, args[0], "%d arguments are being ignored", n)
	}
	return 1
}

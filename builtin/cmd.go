package builtin

import (
	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

// cmd forces its argument to run as an external process, stepping
// around any builtin or alias of the same name — the escape hatch
// for when a script needs the real `cd` or `echo` off $PATH.
func cmd(st *symtab.Stack, streams command.Streams, args []string) int {
	if len(args) < 2 {
		errorf(streams, args[0], "usage: cmd command [args ...]")
		return 1
	}

	res, err := command.RunExternal(args[1], args[2:], streams)
	if err != nil {
		errorf(streams, args[0], "%s", err)
		return 1
	}
	return res.Status
}

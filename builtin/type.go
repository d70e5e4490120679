package builtin

import (
	"fmt"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

// typeBuiltin reports how a name would be dispatched — builtin, alias,
// declared function, or external — closing over the Commander for its
// builtin table.
func typeBuiltin(c *command.Commander) command.Builtin {
	return func(st *symtab.Stack, streams command.Streams, args []string) int {
		if len(args) < 2 {
			errorf(streams, args[0], "usage: type name [name ...]")
			return 1
		}

		for _, name := range args[1:] {
			if _, ok := c.Builtins[name]; ok {
				fmt.Fprintf(streams.Out, "%s is a builtin\n", name)
				continue
			}
			if e, ok := st.LookupCmd(name); ok {
				switch e.Type {
				case symtab.CmdAlias:
					fmt.Fprintf(streams.Out, "%s is an alias for %s\n", name, e.Target)
				case symtab.CmdDecl:
					fmt.Fprintf(streams.Out, "%s is a declared command\n", name)
				}
				continue
			}
			fmt.Fprintf(streams.Out, "%s is an external command\n", name)
		}
		return 0
	}
}

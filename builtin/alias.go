package builtin

import (
	"fmt"

	"github.com/anmitsu/go-shlex"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

// alias registers a textual command alias in the main table's command
// map (§4.5), or — called with no value — lists the ones already set.
func alias(st *symtab.Stack, streams command.Streams, args []string) int {
	if len(args) == 1 {
		for _, name := range st.CmdNames() {
			if e, ok := st.LookupCmd(name); ok && e.Type == symtab.CmdAlias {
				fmt.Fprintf(streams.Out, "alias %s=%q\n", name, e.Target)
			}
		}
		return 0
	}

	name := args[1]
	if len(args) == 2 {
		return listAliases(st, streams, name)
	}

	expansion := args[2]
	words, err := shlex.Split(expansion, true)
	if err != nil {
		errorf(streams, args[0], "%s", err)
		return 1
	}
	if len(words) == 0 {
		errorf(streams, args[0], "alias expansion must not be empty")
		return 1
	}

	st.SetCmd(name, &symtab.CmdEntry{Type: symtab.CmdAlias, Target: expansion, Words: words})
	return 0
}

func listAliases(st *symtab.Stack, streams command.Streams, names ...string) int {
	if len(names) == 0 {
		return 0
	}
	status := 0
	for _, name := range names {
		e, ok := st.LookupCmd(name)
		if !ok || e.Type != symtab.CmdAlias {
			errorf(streams, "alias", "%s: not an alias", name)
			status = 1
			continue
		}
		fmt.Fprintf(streams.Out, "alias %s=%q\n", name, e.Target)
	}
	return status
}

// unalias removes a previously registered alias.
func unalias(st *symtab.Stack, streams command.Streams, args []string) int {
	if len(args) < 2 {
		errorf(streams, args[0], "usage: unalias name [name ...]")
		return 1
	}

	status := 0
	for _, name := range args[1:] {
		e, ok := st.LookupCmd(name)
		if !ok || e.Type != symtab.CmdAlias {
			errorf(streams, args[0], "%s: not an alias", name)
			status = 1
			continue
		}
		st.RemoveCmd(name)
	}
	return status
}

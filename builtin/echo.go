package builtin

import (
	"errors"
	"fmt"
	"syscall"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

func echo(st *symtab.Stack, streams command.Streams, args []string) int {
	words := make([]any, len(args)-1)
	for i := range words {
		words[i] = args[i+1]
	}

	_, err := fmt.Fprintln(streams.Out, words...)
	if err != nil && !errors.Is(err, syscall.EPIPE) {
		errorf(streams, args[0], "%s", err)
		return 1
	}
	return 0
}

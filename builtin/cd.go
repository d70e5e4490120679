package builtin

import (
	"os"
	"os/user"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/pkg/stack"
	"git.sr.ht/~caraway/nettle/symtab"
)

// dirStack backs `cd -`: the previous-working-directory push-down stack
// from the teacher's builtin/cd.go, reimplemented on pkg/stack.Stack
// instead of a hand-rolled slice wrapper.
var dirStack = stack.New[string](64)

func cd(st *symtab.Stack, streams command.Streams, args []string) int {
	var dst string
	switch len(args) {
	case 1:
		u, err := user.Current()
		if err != nil {
			errorf(streams, args[0], "%s", err)
			return 1
		}
		dst = u.HomeDir
	case 2:
		dst = args[1]
		if dst == "-" {
			return cdPop(streams, args[0])
		}
	default:
		errorf(streams, args[0], "usage: cd [directory]")
		return 1
	}

	if cwd, err := os.Getwd(); err != nil {
		errorf(streams, args[0], "%s", err)
	} else {
		dirStack.Push(cwd)
	}

	if err := os.Chdir(dst); err != nil {
		dirStack.Pop()
		errorf(streams, args[0], "%s", err)
		return 1
	}
	return 0
}

func cdPop(streams command.Streams, name string) int {
	dst := dirStack.Pop()
	if dst == nil {
		errorf(streams, name, "the directory stack is empty")
		return 1
	}
	if err := os.Chdir(*dst); err != nil {
		errorf(streams, name, "%s", err)
		return 1
	}
	return 0
}

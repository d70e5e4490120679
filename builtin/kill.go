package builtin

import (
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/signalname"
	"git.sr.ht/~caraway/nettle/symtab"
)

// kill sends a signal to one or more process ids: `kill pid...` defaults
// to sigterm, `kill -signame pid...` resolves the name through
// signalname.Lookup. Adapted from the teacher's cmd/andy per-OS signal
// tables, generalized from a CLI-only feature into a builtin so scripts
// can stop external processes without shelling out to the real kill(1).
func kill(st *symtab.Stack, streams command.Streams, args []string) int {
	name := args[0]
	rest := args[1:]

	sigName := "sigterm"
	if len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
		sigName = rest[0][1:]
		rest = rest[1:]
	}
	sig, err := signalname.Lookup(sigName)
	if err != nil {
		errorf(streams, name, "%s", err)
		return 1
	}

	if len(rest) == 0 {
		errorf(streams, name, "usage: kill [-signal] pid...")
		return 1
	}

	status := 0
	for _, arg := range rest {
		pid, err := strconv.Atoi(arg)
		if err != nil {
			errorf(streams, name, "%q is not a process id", arg)
			status = 1
			continue
		}
		proc, err := os.FindProcess(pid)
		if err != nil {
			errorf(streams, name, "%d: %s", pid, err)
			status = 1
			continue
		}
		if err := proc.Signal(sig); err != nil {
			errorf(streams, name, "%d: %s", pid, err)
			status = 1
		}
	}
	return status
}

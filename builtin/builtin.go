// Package builtin implements nettle's in-process builtin commands
// (§SUPPLEMENTED FEATURES item 1): cd, echo, true, false, read, set,
// cmd, type, alias, unalias, jobs, wait, kill. Each is a command.Builtin —
// given the live symbol-table stack and the pipeline-stage streams it
// was wired up with, it runs to completion and returns a process-style
// exit status, exactly the role the teacher's builtin.Commands map
// fills for execSimple, generalized from `func(*exec.Cmd) uint8` to
// nettle's Stack/Streams shape so a builtin can see and mutate script
// variables (`set`, `read`) and the command-alias table (`alias`).
package builtin

import (
	"fmt"

	"git.sr.ht/~caraway/nettle/command"
)

// Register builds the full builtin table. jobs/wait close over c's job
// table; everything else is stateless beyond the stack/streams each
// call already receives.
func Register(c *command.Commander) map[string]command.Builtin {
	return map[string]command.Builtin{
		"cd":      cd,
		"echo":    echo,
		"true":    true_,
		"false":   false_,
		"read":    read,
		"set":     set,
		"cmd":     cmd,
		"type":    typeBuiltin(c),
		"alias":   alias,
		"unalias": unalias,
		"jobs":    jobsBuiltin(c),
		"wait":    waitBuiltin(c),
		"kill":    kill,
	}
}

func errorf(streams command.Streams, name, format string, args ...any) {
	fmt.Fprintf(streams.Err, "%s: "+format+"\n", append([]any{name}, args...)...)
}

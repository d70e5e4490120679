// Package signalname resolves the symbolic names the `kill` builtin
// accepts ("sigterm", "sigkill", ...) to the os.Signal a process actually
// understands. The table is necessarily per-OS — several signals here
// exist on Linux and not Darwin, and vice versa.
package signalname

import (
	"fmt"
	"strings"
)

// Lookup resolves name (case-insensitively, with or without a leading
// "sig") to a signal. "term" and "sigterm" both resolve to SIGTERM.
func Lookup(name string) (Signal, error) {
	key := strings.ToLower(name)
	if !strings.HasPrefix(key, "sig") {
		key = "sig" + key
	}
	sig, ok := table[key]
	if !ok {
		return 0, fmt.Errorf("unknown signal %q", name)
	}
	return sig, nil
}

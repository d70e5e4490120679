//go:build windows

package signalname

import "os"

// Signal is a plain os.Signal on Windows — there is no syscall.Signal
// numeric space to alias, and the `kill` builtin degrades to the two
// signals os.Process.Signal actually honors there (Kill, Interrupt).
type Signal = os.Signal

var table = map[string]Signal{
	"sigkill": os.Kill,
	"sigint":  os.Interrupt,
	"sigterm": os.Kill,
}

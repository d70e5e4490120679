// Package log implements nettle's diagnostic output: a program-name-
// prefixed, newline-appended writer to standard error, colorized by
// severity and auto-disabled on a non-tty stream.
package log

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// CrashOnError makes Err behave like errx(3) instead of warnx(3): the
// process exits after printing. cmd/nettle leaves it false in every
// mode; its script and -c runners turn an error into exit status 1
// themselves, and the REPL keeps going after one bad statement.
var CrashOnError = false

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
)

func init() {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
}

// Err prints a diagnostic to standard error according to format,
// prefixed with the program name and colorized red. If CrashOnError
// is set the process exits with status 1 afterward.
func Err(format string, args ...any) {
	errColor.Fprintf(os.Stderr, "nettle: "+format+"\n", args...)
	if CrashOnError {
		os.Exit(1)
	}
}

// Warn prints a non-fatal diagnostic, colorized yellow, and never
// exits regardless of CrashOnError.
func Warn(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "nettle: "+format+"\n", args...)
}

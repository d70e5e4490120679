package builtin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

// read splits input from streams.In on a set of delimiter bytes and
// binds the resulting fields to a variable via set, the same way the
// teacher's read builtin layered on top of its own set. Flag parsing
// is hand-rolled against the standard library rather than pulling in
// getopt here too: three fixed flags (each with a short and a long spelling) don't need a general
// option parser, and getopt is reserved for cmd/nettle's own
// POSIX-style CLI flags (see DESIGN.md).
func read(st *symtab.Stack, streams command.Streams, args []string) int {
	var ds []byte
	var noEmpty bool
	cnt := math.MaxInt

	rest := args[1:]
	for len(rest) > 0 && strings.HasPrefix(rest[0], "-") && rest[0] != "-" {
		flag := rest[0]
		rest = rest[1:]
		switch flag {
		case "-D", "--no-empty":
			noEmpty = true
		case "-d", "--delimiters":
			if len(rest) == 0 {
				errorf(streams, args[0], "-d requires an argument")
				return readUsage(streams, args[0])
			}
			ds = []byte(rest[0])
			rest = rest[1:]
		case "-n", "--count":
			if len(rest) == 0 {
				errorf(streams, args[0], "-n requires an argument")
				return readUsage(streams, args[0])
			}
			n, err := strconv.Atoi(rest[0])
			if err != nil {
				errorf(streams, args[0], "%s", err)
				return readUsage(streams, args[0])
			}
			cnt = n
			rest = rest[1:]
		default:
			errorf(streams, args[0], "unknown flag %q", flag)
			return readUsage(streams, args[0])
		}
	}

	if len(rest) != 1 {
		return readUsage(streams, args[0])
	}
	variable := rest[0]

	sb := strings.Builder{}
	buf := make([]byte, 1)
	var parts []string
outer:
	for cnt > 0 {
		_, err := streams.In.Read(buf)
		switch {
		case errors.Is(err, io.EOF):
			if sb.Len() > 0 {
				parts = append(parts, sb.String())
			}
			break outer
		case err != nil:
			errorf(streams, args[0], "%s", err)
			return 1
		}

		b := buf[0]
		if bytes.IndexByte(ds, b) != -1 {
			cnt--
			parts = append(parts, sb.String())
			sb.Reset()
		} else {
			sb.WriteByte(b)
		}
	}

	if noEmpty {
		parts = slices.DeleteFunc(parts, func(s string) bool { return s == "" })
	}

	if len(parts) > 0 {
		p := parts[len(parts)-1]
		if n := len(p); n > 0 && p[n-1] == '\n' {
			parts[len(parts)-1] = p[:n-1]
		}
	}
	if len(parts) == 0 {
		return 1
	}

	return set(st, streams, append([]string{"set", variable}, parts...))
}

func readUsage(streams command.Streams, name string) int {
	fmt.Fprintln(streams.Err, "Usage: read [-D] [-n num] [-d string] variable")
	return 1
}

// Command nettle is the shell's REPL and script-file entry point,
// grounded on the teacher's cmd/andy/main.go dispatch (runRepl/runFile,
// warn/die) and generalized to read a configuration file and persist
// history across sessions.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/anmitsu/go-shlex"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"git.sr.ht/~caraway/nettle/builtin"
	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/config"
	"git.sr.ht/~caraway/nettle/history"
	"git.sr.ht/~caraway/nettle/interp"
	"git.sr.ht/~caraway/nettle/lexer"
	"git.sr.ht/~caraway/nettle/log"
	"git.sr.ht/~caraway/nettle/parser"
	"git.sr.ht/~caraway/nettle/symtab"
)

const versionString = "nettle 0.1.0"

func main() {
	for _, a := range os.Args[1:] {
		if a == "--version" {
			fmt.Println(versionString)
			return
		}
	}

	opts, optind, err := getopt.Getopts(os.Args, "c:i")
	if err != nil {
		die("%s", err)
	}

	var script string
	var haveScript bool
	forceInteractive := false
	for _, o := range opts {
		switch o.Option {
		case 'c':
			script, haveScript = o.Value, true
		case 'i':
			forceInteractive = true
		}
	}
	rest := os.Args[optind:]

	fs := afero.NewOsFs()
	cfg := loadConfig(fs)
	setUpPath(cfg)

	cmdr := command.New(nil)
	cmdr.Builtins = builtin.Register(cmdr)
	cmdr.Fs = fs

	exec := interp.NewRoot(cmdr)
	seedAliases(exec.Stack(), cfg)

	run := &runner{exec: exec}

	switch {
	case haveScript:
		os.Exit(run.runSource(script, "<command-line>"))
	case len(rest) > 0:
		os.Exit(run.runFile(rest[0]))
	default:
		interactive := forceInteractive || isatty.IsTerminal(os.Stdin.Fd())
		run.repl(cfg, interactive)
	}
}

type runner struct {
	exec *interp.Executor
}

// runSource lexes, parses, and executes one chunk of source text,
// reporting any error to stderr without killing the process — the
// fail-soft mode a REPL or a -c one-liner needs, as opposed to
// parser.die's fail-fast behaviour inside a single parse.
func (r *runner) runSource(src, file string) int {
	l := lexer.New(src)
	go l.Run()
	prog := parser.Parse(l.Out, file)

	if _, err := r.exec.ExecProgram(prog); err != nil {
		log.Err("%s", err)
		return 1
	}
	return 0
}

func (r *runner) runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0
		}
		die("%s", err)
	}
	return r.runSource(string(data), path)
}

func (r *runner) repl(cfg *config.Config, interactive bool) {
	var hist *history.Store
	if *cfg.History.Enabled {
		if h, err := history.Open(cfg.History.Path, cfg.History.MaxEntries); err != nil {
			log.Warn("could not open history: %s", err)
		} else {
			hist = h
			defer hist.Close()
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		r.runFile(filepath.Join(home, ".nettle_profile"))
	}

	in := bufio.NewReader(os.Stdin)
	ctx := context.Background()
	for {
		if interactive {
			fmt.Fprint(os.Stdout, cfg.Prompt)
		}
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return
			}
			die("%s", err)
		}

		status := r.runSource(line, "<stdin>")
		if hist != nil {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				if err := hist.Append(ctx, trimmed, status); err != nil {
					log.Warn("could not append history: %s", err)
				}
			}
		}

		if err != nil && errors.Is(err, io.EOF) {
			return
		}
	}
}

func loadConfig(fs afero.Fs) *config.Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg, err := config.Load(fs, filepath.Join(home, config.FileName))
	if err != nil {
		die("%s", err)
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(home, ".nettle_history")
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "$ "
	}
	return cfg
}

func setUpPath(cfg *config.Config) {
	if len(cfg.Path) == 0 {
		return
	}
	joined := strings.Join(cfg.Path, string(os.PathListSeparator))
	os.Setenv("PATH", joined+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func seedAliases(stack *symtab.Stack, cfg *config.Config) {
	for _, a := range cfg.Aliases {
		words, err := shlex.Split(a.Expansion, true)
		if err != nil || len(words) == 0 {
			log.Warn("ignoring malformed alias %q: %v", a.Name, err)
			continue
		}
		stack.SetCmd(a.Name, &symtab.CmdEntry{Type: symtab.CmdAlias, Target: a.Expansion, Words: words})
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "nettle: "+format+"\n", args...)
	os.Exit(1)
}

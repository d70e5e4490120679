// Package command implements the external-command subsystem (§4.5):
// simple commands, pipelines, boolean `&&`/`||` combinators, I/O
// redirection, backgrounding, and command aliasing. It satisfies
// interp.Commander so the tree-walking executor can run a *ast.CmdFull
// (as a statement) or a *ast.CmdSubstitution (as an expression) without
// interp importing anything OS-specific.
//
// Grounded on the teacher's vm/exec.go: one goroutine per pipeline stage
// wired together with os.Pipe, a sync.WaitGroup barrier, and a buffered
// result channel (execPipeline); per-command fd/redirect resolution with
// the same precedence rules (execCommand); and the LAnd/LOr short-circuit
// shape for `&&`/`||` (execCmdList). Builtins and the external-process
// fallback are grounded on execSimple.
package command

import (
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/afero"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/interp"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// Builtin is a nettle builtin command: given argv (Builtin's own name at
// index 0) and the streams a pipeline stage wired up for it, it runs to
// completion and returns a process-style exit status. Builtins run
// in-process rather than forking, matching the teacher's
// builtin.Commands dispatch in execSimple.
type Builtin func(stack *symtab.Stack, streams Streams, args []string) int

// Streams is the stdin/stdout/stderr triple a single pipeline stage (a
// builtin or an external process) reads and writes through.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Commander is the concrete interp.Commander implementation: the
// command subsystem's live state (registered builtins, background job
// table, and the filesystem redirection opens files through).
type Commander struct {
	Builtins map[string]Builtin
	Jobs     *Jobs
	Fs       afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New builds a Commander wired to the real OS filesystem and standard
// streams, the configuration cmd/nettle uses outside of tests; test code
// substitutes Fs with afero.NewMemMapFs() and the streams with buffers,
// per SPEC_FULL's DOMAIN STACK note on afero.
func New(builtins map[string]Builtin) *Commander {
	return &Commander{
		Builtins: builtins,
		Jobs:     NewJobs(),
		Fs:       afero.NewOsFs(),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// RunPipeline implements interp.Commander: it runs node's and-or chain
// to completion (or, if node.Background, hands it to the job table and
// returns immediately per §4.5 step 5), producing the *object.Cmd the
// call site uses as a boolean/status/output value.
func (c *Commander) RunPipeline(ev interp.CmdEvaluator, stack *symtab.Stack, node *ast.CmdFull) (*object.Cmd, error) {
	ctx := &runCtx{c: c, ev: ev, stack: stack, streams: Streams{c.Stdin, c.Stdout, c.Stderr}}

	if node.Background {
		job := c.Jobs.Start(func() *object.Cmd {
			res, err := ctx.runExpr(node.Pipeline)
			if err != nil {
				return object.NewCmd(1, "", err.Error())
			}
			return res
		})
		return object.NewCmd(0, job.ID.String(), ""), nil
	}

	return ctx.runExpr(node.Pipeline)
}

// RunSubstitution implements interp.Commander for `$(...)` command
// substitution. Unlike RunPipeline, the final stage's Out is never
// wired to the Commander's real Stdout — grounded on the teacher's
// vm/ast.go ProcSub.ToStrings, which runs the substituted pipeline
// against a private `ctx.out = &out` buffer instead of the ambient
// context's streams precisely so substitution output is captured, not
// echoed to the terminal. Each stage already captures its own output
// into the *object.Cmd it returns (runSimple/runExternal do this
// independently of where Streams.Out points), so discarding the final
// stage's Out here only stops the terminal echo; the captured text
// still flows through via the returned Cmd. Trailing whitespace is
// trimmed the way ToStrings' strings.TrimRightFunc does, since `$(...)`
// captures a value, not a raw byte stream with its trailing newline.
func (c *Commander) RunSubstitution(ev interp.CmdEvaluator, stack *symtab.Stack, node *ast.CmdFull) (*object.Cmd, error) {
	ctx := &runCtx{c: c, ev: ev, stack: stack, streams: Streams{c.Stdin, io.Discard, c.Stderr}}

	res, err := ctx.runExpr(node.Pipeline)
	if err != nil {
		return nil, err
	}
	res.Stdout = strings.TrimRightFunc(res.Stdout, unicode.IsSpace)
	return res, nil
}

// runCtx threads the evaluator, symbol-table stack, and current stream
// triple through a single and-or/pipeline/command tree walk. A fresh
// runCtx with overridden streams is used whenever a stage's fds are
// wired differently from its parent's (redirection, pipe connection),
// mirroring the teacher's per-call context{in, out, err} value.
type runCtx struct {
	c       *Commander
	ev      interp.CmdEvaluator
	stack   *symtab.Stack
	streams Streams
}

func (ctx *runCtx) withStreams(s Streams) *runCtx {
	cp := *ctx
	cp.streams = s
	return &cp
}

// runExpr dispatches on the and-or/pipeline shape the parser hands a
// CmdFull's Pipeline or a CmdAndOr's Lhs/Rhs.
func (ctx *runCtx) runExpr(node ast.Expr) (*object.Cmd, error) {
	switch n := node.(type) {
	case *ast.CmdAndOr:
		return ctx.runAndOr(n)
	case *ast.CmdPipeSequence:
		return ctx.runPipeline(n)
	default:
		return nil, object.NewError(object.InvalidOpcode, "unsupported command node %T", node)
	}
}

// runAndOr implements §5.4's short-circuit combinators (LAnd/LOr in the
// teacher's execCmdList): the left side always runs; the right side runs
// only if `&&` follows a zero exit or `||` follows a nonzero one.
func (ctx *runCtx) runAndOr(n *ast.CmdAndOr) (*object.Cmd, error) {
	lhs, err := ctx.runExpr(n.Lhs)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case ast.AndOrAnd:
		if lhs.Status != 0 {
			return lhs, nil
		}
	case ast.AndOrOr:
		if lhs.Status == 0 {
			return lhs, nil
		}
	}
	return ctx.runExpr(n.Rhs)
}

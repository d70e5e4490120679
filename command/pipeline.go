package command

import (
	"bytes"
	"io"
	"os"
	"os/exec"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// runPipeline implements §5.3, grounded on the teacher's execPipeline:
// wire os.Pipe() between consecutive stages, run every stage in its own
// goroutine, and barrier before inspecting results. The pipeline's own
// *object.Cmd result (used by `$(...)`, a boolean condition, or a bare
// statement's discarded-but-still-constructed value) is the last
// stage's result — every stage already captures its own stdout/stderr
// internally (runSimple/runExternal), so the last stage's capture is
// exactly the pipeline's output.
func (ctx *runCtx) runPipeline(pl *ast.CmdPipeSequence) (*object.Cmd, error) {
	n := len(pl.Cmds)
	if n == 0 {
		return object.NewCmd(0, "", ""), nil
	}

	stageIn := make([]io.Reader, n)
	stageOut := make([]io.Writer, n)
	stageIn[0] = ctx.streams.In

	var closers []io.Closer
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			return nil, object.NewError(object.FileError, "pipe: %v", err)
		}
		stageOut[i] = w
		stageIn[i+1] = r
		closers = append(closers, r, w)
	}
	stageOut[n-1] = ctx.streams.Out
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	type stageResult struct {
		idx int
		cmd *object.Cmd
		err error
	}

	results := make(chan stageResult, n)

	for i, sc := range pl.Cmds {
		stageCtx := ctx.withStreams(Streams{In: stageIn[i], Out: stageOut[i], Err: ctx.streams.Err})

		go func(i int, sc *ast.SimpleCmd, stageCtx *runCtx) {
			cmd, err := stageCtx.runSimple(sc)
			if pw, ok := stageOut[i].(io.Closer); ok && i < n-1 {
				pw.Close()
			}
			results <- stageResult{idx: i, cmd: cmd, err: err}
		}(i, sc, stageCtx)
	}

	statuses := make([]*object.Cmd, n)
	var firstErr error
	for range pl.Cmds {
		res := <-results
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		statuses[res.idx] = res.cmd
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return statuses[n-1], nil
}

// runSimple implements §5.1/execSimple: expand the command's words,
// apply its redirections, then dispatch to a registered builtin or fork
// an external process, mapping its exit code exactly as the teacher's
// execSimple does.
func (ctx *runCtx) runSimple(sc *ast.SimpleCmd) (*object.Cmd, error) {
	env, err := ctx.expandEnv(sc.PreAssign)
	if err != nil {
		return nil, err
	}

	words, err := ExpandWords(ctx.ev, append([]ast.Expr{sc.Name}, sc.Args...))
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return object.NewCmd(0, "", ""), nil
	}

	streams, closeAll, err := ctx.c.applyRedirects(ctx.ev, sc.Redirects, ctx.streams)
	defer closeAll()
	if err != nil {
		return nil, err
	}

	name := words[0]
	args := words[1:]

	if entry, ok := ctx.stack.LookupCmd(name); ok && entry.Type == symtab.CmdAlias {
		name, args = resolveAlias(entry, name, args)
	}

	if b, ok := ctx.c.Builtins[name]; ok {
		var out, errOut bytes.Buffer
		status := b(ctx.stack, Streams{streams.In, io.MultiWriter(streams.Out, &out), io.MultiWriter(streams.Err, &errOut)}, append([]string{name}, args...))
		return object.NewCmd(status, out.String(), errOut.String()), nil
	}

	return runExternal(name, args, env, streams)
}

// RunExternal forces a name to run as an external process, bypassing
// builtin and alias lookup — the primitive behind the `cmd` builtin,
// which exists precisely to escape a shadowing alias or builtin.
func RunExternal(name string, args []string, streams Streams) (*object.Cmd, error) {
	return runExternal(name, args, nil, streams)
}

func runExternal(name string, args []string, env []string, streams Streams) (*object.Cmd, error) {
	var out, errOut bytes.Buffer
	c := exec.Command(name, args...)
	c.Stdin = streams.In
	c.Stdout = io.MultiWriter(streams.Out, &out)
	c.Stderr = io.MultiWriter(streams.Err, &errOut)
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}

	err := c.Run()
	switch {
	case err == nil:
		return object.NewCmd(0, out.String(), errOut.String()), nil
	default:
		if exitErr, ok := err.(*exec.ExitError); ok {
			return object.NewCmd(exitErr.ExitCode(), out.String(), errOut.String()), nil
		}
		return nil, object.NewError(object.FileError, "%s: %v", name, err)
	}
}

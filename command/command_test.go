package command

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// testEvaluator stands in for the expression executor: literals evaluate
// to their own value, identifiers look up a fixed map, mirroring
// assign_test.go's litEval.
type testEvaluator struct {
	vars map[string]object.Object
}

func (e testEvaluator) Eval(x ast.Expr) (object.Object, error) {
	switch n := x.(type) {
	case *ast.Literal:
		switch n.Kind {
		case ast.LitString:
			return object.String(n.Str), nil
		case ast.LitInt:
			return object.Int(n.Int), nil
		}
		return object.Nil{}, nil
	case *ast.Identifier:
		if v, ok := e.vars[n.Name]; ok {
			return v, nil
		}
		return nil, object.NewError(object.SymbolNotFound, "unbound test var %q", n.Name)
	}
	return nil, object.NewError(object.InvalidOpcode, "unsupported test expr %T", x)
}

func lit(s string) *ast.Literal { return &ast.Literal{Kind: ast.LitString, Str: s} }

func simpleCmd(name string, args ...string) *ast.SimpleCmd {
	sc := &ast.SimpleCmd{Name: lit(name)}
	for _, a := range args {
		sc.Args = append(sc.Args, lit(a))
	}
	return sc
}

func pipeline(cmds ...*ast.SimpleCmd) *ast.CmdPipeSequence {
	return &ast.CmdPipeSequence{Cmds: cmds}
}

func cmdFull(p ast.Expr) *ast.CmdFull { return &ast.CmdFull{Pipeline: p} }

func newTestCommander() *Commander {
	return &Commander{
		Builtins: map[string]Builtin{},
		Jobs:     NewJobs(),
		Fs:       afero.NewMemMapFs(),
		Stdin:    strings.NewReader(""),
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}
}

func TestRunSimpleDispatchesRegisteredBuiltin(t *testing.T) {
	c := newTestCommander()
	c.Builtins["greet"] = func(stack *symtab.Stack, streams Streams, args []string) int {
		streams.Out.Write([]byte("hello " + args[1] + "\n"))
		return 0
	}

	node := cmdFull(pipeline(simpleCmd("greet", "world")))
	res, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), node)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != 0 || res.Stdout != "hello world\n" {
		t.Fatalf("got status=%d stdout=%q", res.Status, res.Stdout)
	}
}

func TestRunSimpleExternalProcessExitCode(t *testing.T) {
	c := newTestCommander()
	node := cmdFull(pipeline(simpleCmd("false")))
	res, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), node)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status == 0 {
		t.Fatalf("expected nonzero exit status from false, got %d", res.Status)
	}
}

func TestRunPipelineConnectsStages(t *testing.T) {
	c := newTestCommander()
	c.Builtins["produce"] = func(stack *symtab.Stack, streams Streams, args []string) int {
		streams.Out.Write([]byte("line one\nline two\n"))
		return 0
	}
	c.Builtins["countlines"] = func(stack *symtab.Stack, streams Streams, args []string) int {
		data, _ := io.ReadAll(streams.In)
		lines := bytes.Count(data, []byte("\n"))
		streams.Out.Write([]byte{byte('0' + lines)})
		return 0
	}

	node := cmdFull(pipeline(simpleCmd("produce"), simpleCmd("countlines")))
	res, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), node)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stdout != "2" {
		t.Fatalf("expected pipeline to observe 2 lines, got %q", res.Stdout)
	}
}

func TestRunAndOrShortCircuits(t *testing.T) {
	c := newTestCommander()
	called := false
	c.Builtins["shouldnotrun"] = func(stack *symtab.Stack, streams Streams, args []string) int {
		called = true
		return 0
	}

	node := cmdFull(&ast.CmdAndOr{
		Kind: ast.AndOrAnd,
		Lhs:  pipeline(simpleCmd("false")),
		Rhs:  pipeline(simpleCmd("shouldnotrun")),
	})
	res, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), node)
	if err != nil {
		t.Fatal(err)
	}
	if called {
		t.Fatal("&& must not run its right side after a failing left side")
	}
	if res.Status == 0 {
		t.Fatalf("expected the short-circuited result to carry the failing status, got %d", res.Status)
	}
}

func TestRunAndOrOrRunsRightSideOnFailure(t *testing.T) {
	c := newTestCommander()
	c.Builtins["recover"] = func(stack *symtab.Stack, streams Streams, args []string) int { return 0 }

	node := cmdFull(&ast.CmdAndOr{
		Kind: ast.AndOrOr,
		Lhs:  pipeline(simpleCmd("false")),
		Rhs:  pipeline(simpleCmd("recover")),
	})
	res, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), node)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != 0 {
		t.Fatalf("expected || to fall through to a succeeding right side, got status %d", res.Status)
	}
}

func TestApplyRedirectsWritesThroughMemFs(t *testing.T) {
	c := newTestCommander()
	c.Builtins["write"] = func(stack *symtab.Stack, streams Streams, args []string) int {
		streams.Out.Write([]byte("payload\n"))
		return 0
	}

	sc := simpleCmd("write")
	sc.Redirects = []*ast.Redirect{{Type: ast.RedirWrite, Target: lit("out.txt")}}

	node := cmdFull(pipeline(sc))
	if _, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), node); err != nil {
		t.Fatal(err)
	}

	got, err := afero.ReadFile(c.Fs, "out.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload\n" {
		t.Fatalf("got file contents %q", got)
	}
}

func TestApplyRedirectsRefusesToClobberExistingFile(t *testing.T) {
	c := newTestCommander()
	afero.WriteFile(c.Fs, "out.txt", []byte("already here"), 0666)
	c.Builtins["write"] = func(stack *symtab.Stack, streams Streams, args []string) int { return 0 }

	sc := simpleCmd("write")
	sc.Redirects = []*ast.Redirect{{Type: ast.RedirWrite, Target: lit("out.txt")}}

	_, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), cmdFull(pipeline(sc)))
	if err == nil {
		t.Fatal("expected plain > to refuse to clobber an existing file")
	}
}

func TestExpandWordsSplitsUnquotedValueButNotQuotedLiteral(t *testing.T) {
	ev := testEvaluator{vars: map[string]object.Object{"files": object.String("a.txt b.txt")}}

	words, err := ExpandWords(ev, []ast.Expr{&ast.Identifier{Name: "files"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 || words[0] != "a.txt" || words[1] != "b.txt" {
		t.Fatalf("expected unquoted value to split into two words, got %v", words)
	}

	words, err = ExpandWords(ev, []ast.Expr{lit("a.txt b.txt")})
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0] != "a.txt b.txt" {
		t.Fatalf("expected a quoted literal to stay one word, got %v", words)
	}
}

func TestExpandWordsFansOutArrayElements(t *testing.T) {
	ev := testEvaluator{vars: map[string]object.Object{
		"xs": object.NewArray([]object.Object{object.String("one"), object.String("two")}),
	}}
	words, err := ExpandWords(ev, []ast.Expr{&ast.Identifier{Name: "xs"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 || words[0] != "one" || words[1] != "two" {
		t.Fatalf("expected an Array argument to fan out element-wise, got %v", words)
	}
}

func TestExpandTildeHome(t *testing.T) {
	t.Setenv("HOME", "/home/nettle")
	got := expandTilde("~/scripts/run.nt")
	if got != "/home/nettle/scripts/run.nt" {
		t.Fatalf("got %q", got)
	}
}

func TestBackgroundJobTracked(t *testing.T) {
	jobs := NewJobs()
	job := jobs.Start(func() *object.Cmd {
		time.Sleep(10 * time.Millisecond)
		return object.NewCmd(0, "done", "")
	})

	if _, ok := jobs.Lookup(job.ID); !ok {
		t.Fatal("expected job to be registered immediately on Start")
	}
	res := job.Wait()
	if res.Stdout != "done" {
		t.Fatalf("got %q", res.Stdout)
	}
	if job.Status != JobDone {
		t.Fatalf("expected job to be marked done after Wait, got %v", job.Status)
	}
}

func TestRunPipelineBackgroundReturnsImmediately(t *testing.T) {
	c := newTestCommander()
	c.Builtins["slow"] = func(stack *symtab.Stack, streams Streams, args []string) int {
		time.Sleep(20 * time.Millisecond)
		return 0
	}

	node := &ast.CmdFull{Pipeline: pipeline(simpleCmd("slow")), Background: true}
	res, err := c.RunPipeline(testEvaluator{}, symtab.NewStack(), node)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stdout == "" {
		t.Fatal("expected the backgrounded result to carry a job id")
	}
}

func TestRunSubstitutionDoesNotLeakToRealStdout(t *testing.T) {
	c := newTestCommander()
	var realStdout bytes.Buffer
	c.Stdout = &realStdout
	c.Builtins["greet"] = func(stack *symtab.Stack, streams Streams, args []string) int {
		streams.Out.Write([]byte("hello world\n"))
		return 0
	}

	node := cmdFull(pipeline(simpleCmd("greet")))
	res, err := c.RunSubstitution(testEvaluator{}, symtab.NewStack(), node)
	if err != nil {
		t.Fatal(err)
	}
	if realStdout.Len() != 0 {
		t.Fatalf("expected nothing written to the real stdout, got %q", realStdout.String())
	}
	if res.Stdout != "hello world" {
		t.Fatalf("got captured stdout %q, want trailing whitespace trimmed", res.Stdout)
	}
}

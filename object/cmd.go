package object

import (
	"strings"
	"unicode"

	"git.sr.ht/~caraway/nettle/pkg/stringsx"
)

var (
	cmdType     = NewType("Cmd")
	cmdIterType = NewType("CmdIter")
)

// Cmd is the captured result of an external command execution (§3.6):
// exit status, stdout, stderr, and a word delimiter used by iteration.
// The default delimiter is any run of whitespace, matching a shell's
// natural word splitting.
type Cmd struct {
	Status         int
	Stdout, Stderr string
	Delim          string // empty means "any whitespace run"
}

func NewCmd(status int, stdout, stderr string) *Cmd {
	return &Cmd{Status: status, Stdout: stdout, Stderr: stderr}
}

func (*Cmd) Tag() Tag       { return TCmd }
func (*Cmd) ObjType() *Type { return cmdType }
func (c *Cmd) ObjBool() (bool, error)   { return c.Status == 0, nil }
func (c *Cmd) ObjInt() (int64, error)   { return int64(c.Status), nil }
func (c *Cmd) ObjReal() (float64, error) { return float64(c.Status), nil }
func (c *Cmd) ObjString() (string, error) { return c.Stdout, nil }
func (c *Cmd) ObjArray() ([]Object, error) { return splitWords(c.Stdout, c.Delim), nil }
func (c *Cmd) Print() (string, error)      { return c.Stdout, nil }

func (c *Cmd) AttrGet(name string) (Object, error) {
	switch name {
	case "status":
		return Int(c.Status), nil
	case "stdout", "out":
		return String(c.Stdout), nil
	case "stderr", "err":
		return String(c.Stderr), nil
	case "delim":
		return String(c.Delim), nil
	}
	return nil, NewError(IncompatibleType, "Cmd has no attribute %q", name)
}

func (c *Cmd) AttrAssign(name string) (Ref, error) {
	if name != "delim" {
		return nil, NewError(IncompatibleType, "Cmd attribute %q is read-only", name)
	}
	return &cmdDelimRef{c}, nil
}

type cmdDelimRef struct{ c *Cmd }

func (r *cmdDelimRef) Get() Object { return String(r.c.Delim) }
func (r *cmdDelimRef) Set(v Object) {
	if s, ok := v.(String); ok {
		r.c.Delim = string(s)
	}
}

// ObjIter iterates stdout words; NewCmdIter's stderr flag selects stderr
// instead.
func (c *Cmd) ObjIter() (Iter, error) {
	return NewCmdIter(c, false), nil
}

// splitWords implements §3.6's word splitting: split by the delimiter (or
// any whitespace run if unset), trim, and coalesce consecutive delimiters
// into no empty words. An explicit delimiter goes through
// pkg/stringsx.SplitMulti, the teacher's own multi-separator splitter;
// with no delimiter the text is split by strings.FieldsFunc on
// unicode.IsSpace.
func splitWords(s, delim string) []Object {
	var fields []string
	if delim == "" {
		fields = strings.FieldsFunc(s, unicode.IsSpace)
	} else {
		for _, f := range stringsx.SplitMulti(s, []string{delim}) {
			if strings.TrimSpace(f) != "" {
				fields = append(fields, f)
			}
		}
	}
	out := make([]Object, len(fields))
	for i, f := range fields {
		out[i] = String(strings.TrimSpace(f))
	}
	return out
}

// CmdIter walks the words of a Cmd's stdout or stderr, per §3.6.
type CmdIter struct {
	words []Object
	pos   int
}

func NewCmdIter(c *Cmd, stderr bool) *CmdIter {
	src := c.Stdout
	if stderr {
		src = c.Stderr
	}
	return &CmdIter{words: splitWords(src, c.Delim)}
}

func (*CmdIter) Tag() Tag       { return TCmdIter }
func (*CmdIter) ObjType() *Type { return cmdIterType }
func (it *CmdIter) HasNext() (Object, error) { return Bool(it.pos < len(it.words)), nil }
func (it *CmdIter) Next() (Object, error) {
	if it.pos >= len(it.words) {
		return nil, NewError(OutOfRange, "iterator exhausted")
	}
	w := it.words[it.pos]
	it.pos++
	return w, nil
}

package command

import (
	"io"
	"os"

	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/interp"
	"git.sr.ht/~caraway/nettle/object"
)

// applyRedirects implements §6.3/execCommand's redirection switch: each
// Redirect opens (or duplicates) a file against the Commander's afero.Fs
// and overrides the corresponding stream, defaulting to base for any fd
// not mentioned. RedirWrite additionally refuses to clobber an existing
// file (stat-then-create, exactly like the teacher), while RedirAppend
// and RedirDup never do.
func (c *Commander) applyRedirects(ev interp.CmdEvaluator, redirs []*ast.Redirect, base Streams) (Streams, func(), error) {
	streams := base
	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, r := range redirs {
		if r.IsDupFd || r.Type == ast.RedirDup {
			// n>&m / n<&m: fd n now points wherever fd m currently
			// points. Only 0/1/2 are meaningful without a real fd
			// table, matching the teacher's own stdio-only scope.
			dest := streamByFd(streams, r.DupFd)
			switch r.Fd {
			case 1:
				if w, ok := dest.(io.Writer); ok {
					streams.Out = w
				}
			case 2:
				if w, ok := dest.(io.Writer); ok {
					streams.Err = w
				}
			case 0:
				if rd, ok := dest.(io.Reader); ok {
					streams.In = rd
				}
			}
			continue
		}

		name, err := redirectTarget(ev, r.Target)
		if err != nil {
			return streams, closeAll, err
		}

		switch r.Type {
		case ast.RedirAppend:
			f, err := c.Fs.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
			if err != nil {
				return streams, closeAll, object.NewError(object.FileError, "%s: %v", name, err)
			}
			opened = append(opened, f)
			if r.Fd == 2 {
				streams.Err = f
			} else {
				streams.Out = f
			}

		case ast.RedirWrite:
			if _, err := c.Fs.Stat(name); err == nil {
				return streams, closeAll, object.NewError(object.FileError, "%s: file exists (use >> to append)", name)
			}
			f, err := c.Fs.Create(name)
			if err != nil {
				return streams, closeAll, object.NewError(object.FileError, "%s: %v", name, err)
			}
			opened = append(opened, f)
			if r.Fd == 2 {
				streams.Err = f
			} else {
				streams.Out = f
			}

		case ast.RedirRead:
			f, err := c.Fs.Open(name)
			if err != nil {
				return streams, closeAll, object.NewError(object.FileError, "%s: %v", name, err)
			}
			opened = append(opened, f)
			streams.In = f

		case ast.RedirReadWrite:
			f, err := c.Fs.OpenFile(name, os.O_RDWR|os.O_CREATE, 0666)
			if err != nil {
				return streams, closeAll, object.NewError(object.FileError, "%s: %v", name, err)
			}
			opened = append(opened, f)
			streams.In, streams.Out = f, f
		}
	}

	return streams, closeAll, nil
}

func streamByFd(streams Streams, fd int) any {
	switch fd {
	case 0:
		return streams.In
	case 1:
		return streams.Out
	case 2:
		return streams.Err
	default:
		return nil
	}
}

func redirectTarget(ev interp.CmdEvaluator, target ast.Expr) (string, error) {
	v, err := ev.Eval(target)
	if err != nil {
		return "", err
	}
	return scalarString(v)
}

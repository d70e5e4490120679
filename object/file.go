package object

import "io"

var fileType = NewType("File")

// File wraps an open file descriptor-like handle. The command subsystem
// constructs these over an afero.File (see command.Filesystem) so
// redirection targets are values scripts can hold onto and close
// explicitly; object/ only needs the narrow io interface.
type File struct {
	Name   string
	Handle io.ReadWriteCloser
}

func NewFile(name string, h io.ReadWriteCloser) *File {
	return &File{Name: name, Handle: h}
}

func (*File) Tag() Tag       { return TFile }
func (*File) ObjType() *Type { return fileType }
func (f *File) ObjBool() (bool, error) { return f.Handle != nil, nil }
func (f *File) Print() (string, error) { return "file " + f.Name, nil }

func (f *File) AttrGet(name string) (Object, error) {
	if name == "name" {
		return String(f.Name), nil
	}
	return nil, NewError(IncompatibleType, "File has no attribute %q", name)
}

func (f *File) Close() error {
	if f.Handle == nil {
		return nil
	}
	return f.Handle.Close()
}

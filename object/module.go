package object

var moduleType = NewType("Module")

// Module is a namespace of exported names, produced by `import`. Not
// covered in depth by spec.md (imports are mentioned only via the
// ImportError error kind); modeled minimally as an attribute bag so
// scripts can do `math.sqrt(2)`.
type Module struct {
	Name    string
	Exports map[string]Object
}

func NewModule(name string) *Module {
	return &Module{Name: name, Exports: make(map[string]Object)}
}

func (*Module) Tag() Tag       { return TModule }
func (*Module) ObjType() *Type { return moduleType }
func (m *Module) ObjBool() (bool, error) { return true, nil }
func (m *Module) Print() (string, error) { return "module " + m.Name, nil }

func (m *Module) AttrGet(name string) (Object, error) {
	if v, ok := m.Exports[name]; ok {
		return v, nil
	}
	return nil, NewError(ImportError, "module %q has no member %q", m.Name, name)
}

func (m *Module) AttrAssign(name string) (Ref, error) {
	return &moduleRef{m, name}, nil
}

type moduleRef struct {
	m    *Module
	name string
}

func (r *moduleRef) Get() Object   { return r.m.Exports[r.name] }
func (r *moduleRef) Set(v Object)  { r.m.Exports[r.name] = v }

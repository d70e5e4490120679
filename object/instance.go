package object

// Instance is a user-class object. It holds a non-owning handle to its
// class: the class is always independently rooted by the scope that
// declared it (§5, §9's "instances refer to their type via a non-owning
// handle"), so no cycle-breaking bookkeeping is needed under Go's GC.
type Instance struct {
	class *Type
	Attrs map[string]Object
}

func NewInstance(class *Type) *Instance {
	return &Instance{class: class, Attrs: make(map[string]Object)}
}

func (*Instance) Tag() Tag         { return TInstance }
func (i *Instance) ObjType() *Type { return i.class }

// ObjBool defaults to true; an instance whose class defines objBool is
// coerced through that method instead — see (*interp.Executor).Truthy,
// which needs the executor to invoke it and so special-cases *Instance
// ahead of this fallback.
func (i *Instance) ObjBool() (bool, error) { return true, nil }

// HasBoolMethod reports whether the instance's class overrides truthiness,
// letting interp.Truthy decide when to bypass the default above.
func (i *Instance) HasBoolMethod() (*Func, bool) {
	m, ok := i.class.LookupMethod("objBool")
	if !ok {
		return nil, false
	}
	fn, ok := m.(*Func)
	return fn, ok
}

func (i *Instance) AttrGet(name string) (Object, error) {
	if v, ok := i.Attrs[name]; ok {
		return v, nil
	}
	if m, ok := i.class.LookupMethod(name); ok {
		if fn, ok := m.(*Func); ok {
			return &FuncWrapper{Fn: fn, Self: i}, nil
		}
		return m, nil
	}
	return nil, NewError(IncompatibleType, "%s has no attribute %q", i.class.Name, name)
}

func (i *Instance) AttrAssign(name string) (Ref, error) {
	return &instanceRef{inst: i, name: name}, nil
}

type instanceRef struct {
	inst *Instance
	name string
}

func (r *instanceRef) Get() Object {
	v, ok := r.inst.Attrs[r.name]
	if !ok {
		return Nil{}
	}
	return v
}
func (r *instanceRef) Set(v Object) { r.inst.Attrs[r.name] = v }

func (i *Instance) Print() (string, error) { return "instance of " + i.class.Name, nil }

func (i *Instance) Equal(o Object) (Object, error) {
	v, ok := o.(*Instance)
	return Bool(ok && v == i), nil
}
func (i *Instance) NotEqual(o Object) (Object, error) {
	eq, _ := i.Equal(o)
	return Bool(!bool(eq.(Bool))), nil
}

// Call makes an Instance whose class defines `call` invocable as a
// function value, per §3.3's "callable Instance".
func (i *Instance) Call(ip Interp, args []Object) (Object, error) {
	m, ok := i.class.LookupMethod("call")
	if !ok {
		return nil, NewError(IncompatibleType, "%s is not callable", i.class.Name)
	}
	fn, ok := m.(*Func)
	if !ok {
		return nil, NewError(IncompatibleType, "%s is not callable", i.class.Name)
	}
	return ip.CallFunc(fn, i, args)
}

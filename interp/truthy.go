package interp

import "git.sr.ht/~caraway/nettle/object"

// Truthy coerces v to a bool the way an `if`/`while`/short-circuit
// operator does (§4.3, §4.4). *object.Instance gets special treatment:
// if its class overrides objBool, that method is invoked through the
// executor (object.Truthy alone can't do this — it has no way to call
// user code); otherwise it falls back to object.Truthy's default (which
// is always true for a plain Instance).
func (e *Executor) Truthy(v object.Object) (bool, error) {
	if inst, ok := v.(*object.Instance); ok {
		if fn, ok := inst.HasBoolMethod(); ok {
			result, err := e.CallFunc(fn, inst, nil)
			if err != nil {
				return false, err
			}
			return object.Truthy(result)
		}
	}
	return object.Truthy(v)
}

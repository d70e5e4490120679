package interp

import (
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
	"git.sr.ht/~caraway/nettle/symtab"
)

// CallFunc implements object.Interp: invoking a Func/FuncWrapper/Type
// constructor from anywhere a Callable is dispatched (§4.3's call
// protocol). The callee's body runs against a fork of its closure
// snapshot with a fresh Func-kind table pushed for parameters and
// locals (§3.5, §4.6).
func (e *Executor) CallFunc(fn *object.Func, self object.Object, args []object.Object) (object.Object, error) {
	closureStack, _ := fn.Closure.(*symtab.Stack)
	if closureStack == nil {
		closureStack = e.stack.Snapshot(false)
	}
	callStack := closureStack.Fork()
	funcTable := callStack.PushNew(symtab.KindFunc)

	if self != nil {
		funcTable.SetValue("self").Set(self)
	}
	if err := bindParams(funcTable, fn, args); err != nil {
		return nil, err
	}

	body, ok := fn.Body.(*ast.Block)
	if !ok {
		return nil, object.NewError(object.InvalidOpcode, "function %q has no body", fn.Name)
	}

	callExec := e.withStack(callStack, true)
	sig, err := callExec.ExecStmt(body)
	if err != nil {
		return nil, err
	}
	switch sig.Flag {
	case Return:
		return sig.Value, nil
	case Throw:
		return nil, object.NewThrow(sig.Thrown)
	default:
		return object.Nil{}, nil
	}
}

// bindParams assigns positional arguments to parameter names, filling
// any missing trailing arguments from Defaults and collecting overflow
// into the variadic parameter's Array if the function is variadic. This
// binding algorithm is a local decision (the distilled spec names the
// pieces — Params/Defaults/Variadic — without prescribing arity-mismatch
// wording), grounded on the general shape of default/variadic binding in
// original_source's FuncObject constructor call path.
func bindParams(table *symtab.Table, fn *object.Func, args []object.Object) error {
	params := fn.Params
	n := len(params)
	if fn.Variadic {
		n--
	}
	minRequired := n - len(fn.Defaults)
	if minRequired < 0 {
		minRequired = 0
	}

	if fn.Variadic {
		if len(args) < minRequired {
			return object.NewError(object.FuncParams, "%s expects at least %d arguments, got %d", fn.Name, minRequired, len(args))
		}
	} else if len(args) < minRequired || len(args) > n {
		return object.NewError(object.FuncParams, "%s expects between %d and %d arguments, got %d", fn.Name, minRequired, n, len(args))
	}

	for i := 0; i < n; i++ {
		var v object.Object
		if i < len(args) {
			v = args[i]
		} else if di := i - minRequired; di >= 0 && di < len(fn.Defaults) {
			v = fn.Defaults[di]
		} else {
			v = object.Nil{}
		}
		table.SetValue(params[i]).Set(v)
	}

	if fn.Variadic {
		var rest []object.Object
		if len(args) > n {
			rest = append(rest, args[n:]...)
		}
		table.SetValue(params[len(params)-1]).Set(object.NewArray(rest))
	}
	return nil
}

package command

import (
	"git.sr.ht/~caraway/nettle/ast"
	"git.sr.ht/~caraway/nettle/object"
)

// expandEnv implements the `FOO=bar cmd` prefix-assignment form (§5.1):
// each PreAssign sets an environment variable scoped to this one command
// invocation, not a nettle variable — it never touches the symbol table.
func (ctx *runCtx) expandEnv(preAssign []*ast.AssignmentStatement) ([]string, error) {
	if len(preAssign) == 0 {
		return nil, nil
	}
	env := make([]string, 0, len(preAssign))
	for _, stmt := range preAssign {
		ident, ok := stmt.Lhs.(*ast.Identifier)
		if !ok {
			return nil, object.NewError(object.IncompatibleType, "command prefix assignment must target a name")
		}
		v, err := ctx.ev.Eval(stmt.Rhs)
		if err != nil {
			return nil, err
		}
		s, err := scalarString(v)
		if err != nil {
			return nil, err
		}
		env = append(env, ident.Name+"="+s)
	}
	return env, nil
}

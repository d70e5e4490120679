package ast

// RedirType is the closed set of I/O redirection forms the command
// subsystem understands (§5.2): file opened for read/write/append on a
// given fd, or fd-to-fd duplication.
type RedirType int

const (
	RedirRead       RedirType = iota // n< file
	RedirWrite                       // n> file
	RedirAppend                      // n>> file
	RedirReadWrite                   // n<> file
	RedirDup                         // n>&m or n<&m
)

// Redirect is a single redirection attached to a SimpleCmd (§5.2).
type Redirect struct {
	base
	Type    RedirType
	Fd      int  // source fd, defaults per Type if unset by the parser
	Target  Expr // file path expression, nil for RedirDup
	DupFd   int  // target fd for RedirDup
	IsDupFd bool
}

func (*Redirect) isExpr() {} // attaches to SimpleCmd.Redirects, not a standalone stmt

// SimpleCmd is a single command word plus arguments plus any redirections
// and an optional variable-assignment prefix (`FOO=bar cmd`, §5.1).
type SimpleCmd struct {
	base
	Name      Expr // word or command-substitution producing the program name
	Args      []Expr
	Redirects []*Redirect
	PreAssign []*AssignmentStatement // FOO=bar prefix assignments, scoped to this command's environment
}

func (*SimpleCmd) isExpr() {}

// CmdPipeSequence is one or more SimpleCmds joined by `|`, run
// concurrently with their stdout/stdin connected pairwise (§5.3,
// execPipeline grounding).
type CmdPipeSequence struct {
	base
	Cmds []*SimpleCmd
}

func (*CmdPipeSequence) isExpr() {}

// CmdAndOrKind distinguishes `&&` from `||` (§5.4).
type CmdAndOrKind int

const (
	AndOrAnd CmdAndOrKind = iota
	AndOrOr
)

// CmdAndOr chains pipelines with short-circuiting boolean combinators.
type CmdAndOr struct {
	base
	Kind     CmdAndOrKind
	Lhs, Rhs Expr // *CmdPipeSequence or nested *CmdAndOr
}

func (*CmdAndOr) isExpr() {}

// CmdFull is a full command line: a pipeline/and-or chain plus an
// optional `&` backgrounding flag (§5.5).
type CmdFull struct {
	base
	Pipeline   Expr // *CmdPipeSequence or *CmdAndOr
	Background bool
}

func (*CmdFull) isStmt() {}
func (*CmdFull) isExpr() {} // also legal as a $(...) substitution source, see CmdSubstitution

package symtab

import "git.sr.ht/~caraway/nettle/object"

// Stack is an ordered sequence of tables plus a distinguished main table
// (§3.4). The main table is process-wide global scope; every Stack that
// shares one is really a view onto the same underlying process, which is
// how closures work: a lambda's captured Stack and the live interpreter's
// current Stack both point at the same *Table for main.
//
// The source models the main-table reference as a weak pointer purely so
// tables reachable only through old closures don't keep the whole process
// alive after it ends; under Go's GC that concern doesn't arise; main is
// held as a plain pointer, and it stays alive for the process's lifetime
// regardless (see DESIGN.md).
type Stack struct {
	tables []*Table
	main   *Table
}

// NewStack creates a stack whose main table is a fresh, empty scope table.
func NewStack() *Stack {
	return &Stack{main: New(KindScope)}
}

// Push appends table, or — if isMain — installs it as the main table.
func (s *Stack) Push(t *Table, isMain bool) {
	if isMain {
		s.main = t
		return
	}
	s.tables = append(s.tables, t)
}

// PushNew is the common case: push a fresh table of the given kind.
func (s *Stack) PushNew(kind Kind) *Table {
	t := New(kind)
	s.tables = append(s.tables, t)
	return t
}

// Pop removes the topmost table. Popping an empty stack is a caller bug;
// executors always pair Push/Pop lexically (§4.4 "pop on all exit paths").
func (s *Stack) Pop() {
	if len(s.tables) == 0 {
		return
	}
	s.tables = s.tables[:len(s.tables)-1]
}

func (s *Stack) Main() *Table { return s.main }

func (s *Stack) Len() int { return len(s.tables) }

// Lookup searches the stack top-down, then main; if not found and create
// is true, inserts a fresh cell in the topmost scope (or main if the
// stack is empty) and returns it. Otherwise fails with SymbolNotFound.
func (s *Stack) Lookup(name string, create bool) (*Attr, error) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if a, ok := s.tables[i].Lookup(name); ok {
			return a, nil
		}
	}
	if a, ok := s.main.Lookup(name); ok {
		return a, nil
	}
	if create {
		if len(s.tables) > 0 {
			return s.tables[len(s.tables)-1].SetValue(name), nil
		}
		return s.main.SetValue(name), nil
	}
	return nil, object.NewError(object.SymbolNotFound, "symbol %q not found", name)
}

// LookupObj is the read-only counterpart used for plain name reads. When
// no scope table is pushed, main IS the current frame (top level runs
// directly against it), so a hit there always counts. Once a scope is
// pushed, reaching past it into main is shadowing-through-nesting and
// only counts if the entry is explicitly marked global (§3.4), e.g. via
// a `global` statement.
func (s *Stack) LookupObj(name string) (object.Object, bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if a, ok := s.tables[i].Lookup(name); ok {
			return a.Get(), true
		}
	}
	if a, ok := s.main.Lookup(name); ok && (len(s.tables) == 0 || a.Global()) {
		return a.Get(), true
	}
	return nil, false
}

// SetEntry implements the sane reading of the source's ambiguous
// SetEntry (SPEC_FULL §OPEN QUESTIONS item 1): assign in the topmost
// scope if the stack is non-empty, else in main. The original C++ sets
// in both places unconditionally, which is very likely a bug (the main
// write is immediately shadowed by the scope entry on every subsequent
// lookup) rather than intended semantics.
func (s *Stack) SetEntry(name string, value object.Object) {
	if len(s.tables) > 0 {
		s.tables[len(s.tables)-1].SetValue(name).Set(value)
		return
	}
	s.main.SetValue(name).Set(value)
}

// SetEntryOnFunc sets a binding in the innermost Func-kind table, used by
// function-parameter binding (§4.6).
func (s *Stack) SetEntryOnFunc(name string, value object.Object) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if s.tables[i].Kind() == KindFunc {
			s.tables[i].SetValue(name).Set(value)
			return
		}
	}
}

// FuncTableValue gets-or-creates a cell for name in the nearest Func
// table, or main if there is none, used by identifier-assignment
// routing when a function table is present (§4.2 "insert/bind in the
// topmost function table").
func (s *Stack) FuncTableValue(name string) *Attr {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if s.tables[i].Kind() == KindFunc {
			return s.tables[i].SetValue(name)
		}
	}
	return s.main.SetValue(name)
}

// HasFuncTable reports whether any table on the stack is a Func table,
// which governs identifier-assignment routing in the assignment engine
// (§4.2 "if HasFuncTable, insert/bind in the topmost function table").
func (s *Stack) HasFuncTable() bool {
	for _, t := range s.tables {
		if t.Kind() == KindFunc {
			return true
		}
	}
	return false
}

func (s *Stack) HasClassTable() bool {
	for _, t := range s.tables {
		if t.Kind() == KindClass {
			return true
		}
	}
	return false
}

// GetUntilFuncTable returns the slice of scopes from the bottom up to and
// including the first Func-kind table (or the whole stack if there is
// none), used for lambda closure capture (§3.5, §4.6).
func (s *Stack) GetUntilFuncTable() []*Table {
	return getUntil(s.tables, KindFunc)
}

// GetUntilClassTable is GetUntilFuncTable's class-table counterpart.
func (s *Stack) GetUntilClassTable() []*Table {
	return getUntil(s.tables, KindClass)
}

func getUntil(tables []*Table, kind Kind) []*Table {
	out := make([]*Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, t)
		if t.Kind() == kind {
			break
		}
	}
	return out
}

// Snapshot implements §3.5's closure-capture rule. A lambda copies the
// tables up to and including the nearest enclosing Func (or Class) table,
// plus a reference to main; a non-lambda function copies only main.
func (s *Stack) Snapshot(lambda bool) *Stack {
	if !lambda {
		return &Stack{main: s.main}
	}

	tables := s.GetUntilFuncTable()
	if !hasKind(tables, KindFunc) {
		if classTables := s.GetUntilClassTable(); hasKind(classTables, KindClass) {
			tables = classTables
		}
	}
	cp := make([]*Table, len(tables))
	copy(cp, tables)
	return &Stack{tables: cp, main: s.main}
}

func hasKind(tables []*Table, kind Kind) bool {
	for _, t := range tables {
		if t.Kind() == kind {
			return true
		}
	}
	return false
}

// Fork copies the table-pointer slice (not the tables themselves) so a
// caller can push/pop its own scopes without mutating the original —
// used by function calls, which must extend the callee's closure
// snapshot with a fresh Func table per invocation without corrupting the
// snapshot other concurrent calls to the same closure will also fork.
func (s *Stack) Fork() *Stack {
	cp := make([]*Table, len(s.tables))
	copy(cp, s.tables)
	return &Stack{tables: cp, main: s.main}
}

// LookupCmd/SetCmd/RemoveCmd delegate to the main table, per §3.4's
// "command-alias map" living on the main scope only.
func (s *Stack) LookupCmd(name string) (*CmdEntry, bool) { return s.main.LookupCmd(name) }
func (s *Stack) SetCmd(name string, e *CmdEntry)         { s.main.SetCmd(name, e) }
func (s *Stack) RemoveCmd(name string) bool              { return s.main.RemoveCmd(name) }
func (s *Stack) CmdNames() []string                      { return s.main.CmdNames() }

// Package symtab implements the lexical scoping model: symbol tables and
// the stack of them an executor threads through a running program (§3.4,
// §4.6).
package symtab

import "git.sr.ht/~caraway/nettle/object"

// Kind distinguishes what a table was pushed for, since lookup and
// closure-capture rules both need to find "the nearest enclosing function
// table" or "class table".
type Kind int

const (
	KindScope Kind = iota
	KindFunc
	KindClass
)

// Attr is a named cell: a strong reference to an Object plus the global
// flag that governs whether a main-table hit is visible to a read-only
// LookupObj from an inner scope (§3.4).
type Attr struct {
	value  object.Object
	global bool
}

func (a *Attr) Get() object.Object { return a.value }
func (a *Attr) Set(v object.Object) { a.value = v }
func (a *Attr) Global() bool        { return a.global }
func (a *Attr) SetGlobal(g bool)    { a.global = g }

// CmdEntryType distinguishes a user-declared shell function from a
// textual alias in the main table's command map (§4.5, §GLOSSARY).
type CmdEntryType int

const (
	CmdDecl CmdEntryType = iota
	CmdAlias
)

type CmdEntry struct {
	Type   CmdEntryType
	Target string   // for CmdAlias: the expansion; for CmdDecl: unused
	Words  []string // for CmdAlias: the expanded argv prefix
}

// Table is a single scope: a name -> Attr map plus the command-alias map
// (only ever populated on the main table, per §4.5) and the Kind that
// closure capture and function/class binding rules key off of.
type Table struct {
	kind    Kind
	symbols map[string]*Attr
	cmds    map[string]*CmdEntry
}

func New(kind Kind) *Table {
	return &Table{kind: kind, symbols: make(map[string]*Attr)}
}

func (t *Table) Kind() Kind { return t.kind }

// Lookup returns the entry for name if present in this table only (no
// stack traversal — that's Stack.Lookup).
func (t *Table) Lookup(name string) (*Attr, bool) {
	a, ok := t.symbols[name]
	return a, ok
}

// SetValue inserts name with global=false unconditionally if absent, or
// returns the existing cell — matching the source's SymbolTable::SetValue
// behaviour exactly (§9 Open Questions, item 3). Nothing here flips this
// flag; only the `global` statement (ast.GlobalStatement, SPEC_FULL §OPEN
// QUESTIONS item 3) does, by calling SetGlobal directly on the returned
// cell.
func (t *Table) SetValue(name string) *Attr {
	if a, ok := t.symbols[name]; ok {
		return a
	}
	a := &Attr{}
	t.symbols[name] = a
	return a
}

func (t *Table) Remove(name string) bool {
	if _, ok := t.symbols[name]; !ok {
		return false
	}
	delete(t.symbols, name)
	return true
}

func (t *Table) SetCmd(name string, e *CmdEntry) {
	if t.cmds == nil {
		t.cmds = make(map[string]*CmdEntry)
	}
	t.cmds[name] = e
}

func (t *Table) LookupCmd(name string) (*CmdEntry, bool) {
	e, ok := t.cmds[name]
	return e, ok
}

func (t *Table) RemoveCmd(name string) bool {
	if _, ok := t.cmds[name]; !ok {
		return false
	}
	delete(t.cmds, name)
	return true
}

// CmdNames lists every name registered in this table's command map,
// for builtins like `alias` that list their whole table when called
// with no arguments.
func (t *Table) CmdNames() []string {
	names := make([]string, 0, len(t.cmds))
	for n := range t.cmds {
		names = append(names, n)
	}
	return names
}

func (t *Table) Names() []string {
	names := make([]string, 0, len(t.symbols))
	for n := range t.symbols {
		names = append(names, n)
	}
	return names
}

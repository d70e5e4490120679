package symtab

import (
	"testing"

	"git.sr.ht/~caraway/nettle/object"
)

func TestLookupCreatesInTopScope(t *testing.T) {
	s := NewStack()
	s.PushNew(KindScope)

	a, err := s.Lookup("x", true)
	if err != nil {
		t.Fatal(err)
	}
	a.Set(object.Int(1))

	a2, err := s.Lookup("x", false)
	if err != nil {
		t.Fatal(err)
	}
	if a2.Get().(object.Int) != 1 {
		t.Fatalf("expected 1, got %v", a2.Get())
	}
}

func TestLookupNotFound(t *testing.T) {
	s := NewStack()
	_, err := s.Lookup("nope", false)
	if !object.IsKind(err, object.SymbolNotFound) {
		t.Fatalf("expected SymbolNotFound, got %v", err)
	}
}

func TestLookupObjRequiresGlobalFlagOnMain(t *testing.T) {
	s := NewStack()
	a := s.Main().SetValue("g")
	a.Set(object.Int(5))
	s.PushNew(KindScope)

	if _, ok := s.LookupObj("g"); ok {
		t.Fatalf("expected main hit to be invisible without global=true")
	}

	a.SetGlobal(true)
	v, ok := s.LookupObj("g")
	if !ok || v.(object.Int) != 5 {
		t.Fatalf("expected global main entry to be visible, got %v, %v", v, ok)
	}
}

func TestSetEntryPrefersTopScope(t *testing.T) {
	s := NewStack()
	s.PushNew(KindScope)
	s.SetEntry("y", object.Int(10))

	if _, ok := s.main.Lookup("y"); ok {
		t.Fatalf("SetEntry must not also write main when a scope is active")
	}
	a, ok := s.tables[0].Lookup("y")
	if !ok || a.Get().(object.Int) != 10 {
		t.Fatalf("expected y=10 in top scope")
	}
}

func TestLambdaClosureSnapshotCapturesFuncTable(t *testing.T) {
	s := NewStack()
	s.PushNew(KindScope)
	funcTable := s.PushNew(KindFunc)
	funcTable.SetValue("n").Set(object.Int(0))

	snap := s.Snapshot(true)
	if snap.Len() != 2 {
		t.Fatalf("expected lambda snapshot to carry 2 tables, got %d", snap.Len())
	}

	// Mutate n in the live stack's func table; the closure sees the same
	// cell, not a copy, since Snapshot copies table pointers not tables.
	a, _ := s.Lookup("n", false)
	a.Set(object.Int(1))

	snapAttr, err := snap.Lookup("n", false)
	if err != nil {
		t.Fatal(err)
	}
	if snapAttr.Get().(object.Int) != 1 {
		t.Fatalf("expected closure to observe later mutation, got %v", snapAttr.Get())
	}
}

func TestNonLambdaClosureCapturesOnlyMain(t *testing.T) {
	s := NewStack()
	s.PushNew(KindScope)
	s.PushNew(KindFunc)

	snap := s.Snapshot(false)
	if snap.Len() != 0 {
		t.Fatalf("expected non-lambda snapshot to carry no scopes, got %d", snap.Len())
	}
	if snap.Main() != s.Main() {
		t.Fatalf("expected non-lambda snapshot to share the main table")
	}
}

func TestSetEntryOnFunc(t *testing.T) {
	s := NewStack()
	s.PushNew(KindScope)
	s.PushNew(KindFunc)
	s.PushNew(KindScope)

	s.SetEntryOnFunc("p", object.Int(7))
	a, ok := s.tables[1].Lookup("p")
	if !ok || a.Get().(object.Int) != 7 {
		t.Fatalf("expected param bound in func table")
	}
	if _, ok := s.tables[2].Lookup("p"); ok {
		t.Fatalf("expected param not bound in innermost scope")
	}
}

func TestGetUntilFuncTable(t *testing.T) {
	s := NewStack()
	s.PushNew(KindScope)
	s.PushNew(KindFunc)
	s.PushNew(KindScope) // beyond the func table, excluded

	got := s.GetUntilFuncTable()
	if len(got) != 2 {
		t.Fatalf("expected 2 tables up to and including the func table, got %d", len(got))
	}
	if got[1].Kind() != KindFunc {
		t.Fatalf("expected last table to be the func table")
	}
}

package object

import "testing"

func TestIntStringRoundTrip(t *testing.T) {
	s, err := Int(42).ObjString()
	if err != nil || s != "42" {
		t.Fatalf("ObjInt(42).ObjString() = %q, %v", s, err)
	}

	n, err := String("42").ObjInt()
	if err != nil || n != 42 {
		t.Fatalf("ObjString(\"42\").ObjInt() = %d, %v", n, err)
	}
}

func TestArrayNegativeIndex(t *testing.T) {
	a := NewArray([]Object{Int(1), Int(2), Int(3)})
	v, err := a.GetItem(Int(-1))
	if err != nil {
		t.Fatal(err)
	}
	if v.(Int) != 3 {
		t.Fatalf("expected 3, got %v", v)
	}
}

func TestArrayIndexOutOfRange(t *testing.T) {
	a := NewArray([]Object{Int(1)})
	_, err := a.GetItem(Int(5))
	if !IsKind(err, OutOfRange) {
		t.Fatalf("expected OutOfRange, got %v", err)
	}
}

func TestMapSetGet(t *testing.T) {
	m := NewMap()
	if err := m.SetItem(String("a"), Int(1)); err != nil {
		t.Fatal(err)
	}
	v, err := m.GetItem(String("a"))
	if err != nil || v.(Int) != 1 {
		t.Fatalf("got %v, %v", v, err)
	}
	if _, err := m.GetItem(String("b")); !IsKind(err, KeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}
}

func TestSetUnique(t *testing.T) {
	s := NewSet()
	s.Add(Int(1))
	s.Add(Int(1))
	s.Add(Int(2))
	if s.Len() != 2 {
		t.Fatalf("expected 2 unique elements, got %d", s.Len())
	}
}

func TestCmdWordIteration(t *testing.T) {
	c := NewCmd(0, "a b  c\n", "")
	it, err := c.ObjIter()
	if err != nil {
		t.Fatal(err)
	}
	var words []string
	for {
		hasNext, _ := it.HasNext()
		if !bool(hasNext.(Bool)) {
			break
		}
		w, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		words = append(words, string(w.(String)))
	}
	if len(words) != 3 || words[0] != "a" || words[1] != "b" || words[2] != "c" {
		t.Fatalf("unexpected split: %v", words)
	}
}

func TestIncompatibleTypeOnUnsupportedOp(t *testing.T) {
	_, err := String("x").Add(Int(1))
	if !IsKind(err, IncompatibleType) {
		t.Fatalf("expected IncompatibleType, got %v", err)
	}
}

func TestBoolOrWithTruthyOperandIsTrue(t *testing.T) {
	// Short-circuit itself lives in interp (the executor decides whether to
	// evaluate the rhs); here we only check the primitive And/Or dispatch
	// used once both operands are known.
	r, err := Bool(false).Or(String("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !bool(r.(Bool)) {
		t.Fatalf("expected true")
	}
}

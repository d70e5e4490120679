package stack

import "testing"

func TestPush(t *testing.T) {
	s := New[int](0)
	s.Push(1)
	if p := s.Peek(); p == nil || *p != 1 {
		t.Fatalf("expected top to be 1")
	}
	s.Push(69)
	if p := s.Peek(); p == nil || *p != 69 {
		t.Fatalf("expected top to be 69")
	}
	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
}

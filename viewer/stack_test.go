package viewer

import (
	"testing"

	"manview/man/doc"
)

func TestStackPushBackForward(t *testing.T) {
	var s Stack
	a, b, c := doc.New(), doc.New(), doc.New()

	if s.Current() != nil {
		t.Fatal("empty stack has a current page")
	}

	s.Push(a)
	s.Push(b)
	s.Push(c)

	if s.Current() != c || s.Pos() != 3 || s.Len() != 3 {
		t.Fatalf("after pushes: pos=%d len=%d", s.Pos(), s.Len())
	}

	if !s.Back() || s.Current() != b {
		t.Fatal("Back did not land on b")
	}
	if !s.Back() || s.Current() != a {
		t.Fatal("Back did not land on a")
	}
	if s.Back() {
		t.Error("Back at the bottom was not a no-op")
	}

	if !s.Forward() || s.Current() != b {
		t.Fatal("Forward did not replay b")
	}
	if !s.Forward() || s.Current() != c {
		t.Fatal("Forward did not replay c")
	}
	if s.Forward() {
		t.Error("Forward at the top was not a no-op")
	}
}

func TestStackBranchTruncatesForwardHistory(t *testing.T) {
	var s Stack
	a, b, c, d := doc.New(), doc.New(), doc.New(), doc.New()

	s.Push(a)
	s.Push(b)
	s.Push(c)
	s.Back()
	s.Back() // cursor on a, forward history is b, c

	s.Push(d)

	if s.Len() != 2 || s.Pos() != 2 || s.Current() != d {
		t.Fatalf("after branch: pos=%d len=%d", s.Pos(), s.Len())
	}

	// The discarded forward history is gone for good.
	if s.Forward() {
		t.Error("Forward replayed a discarded page")
	}

	if !s.Back() || s.Current() != a {
		t.Error("Back after branch did not land on a")
	}
}

package history

import "testing"

func TestPushAndCurrent(t *testing.T) {
	s := New()
	if _, ok := s.Current(); ok {
		t.Fatal("empty stack should have no current entry")
	}

	s.Push(Entry{View: "login"})
	s.Push(Entry{View: "menu"})

	cur, ok := s.Current()
	if !ok || cur.View != "menu" {
		t.Fatalf("current = %+v, ok = %v", cur, ok)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestBackDeliversReachedEntry(t *testing.T) {
	s := New()
	var reached []Entry
	s.SetHandler(func(e Entry) { reached = append(reached, e) })

	s.Push(Entry{View: "login"})
	s.Push(Entry{View: "menu"})
	s.Push(Entry{View: "tournament"})

	s.Back()
	s.Back()

	if len(reached) != 2 {
		t.Fatalf("handler called %d times", len(reached))
	}
	if reached[0].View != "menu" || reached[1].View != "login" {
		t.Fatalf("reached = %+v", reached)
	}
}

func TestBackAtBottomIsNoop(t *testing.T) {
	s := New()
	calls := 0
	s.SetHandler(func(Entry) { calls++ })

	s.Push(Entry{View: "login"})
	s.Back()
	s.Back()

	if calls != 0 {
		t.Fatalf("handler called %d times at bottom", calls)
	}
	if cur, _ := s.Current(); cur.View != "login" {
		t.Fatalf("current = %+v", cur)
	}
}

func TestPushTruncatesForwardEntries(t *testing.T) {
	s := New()
	s.SetHandler(func(Entry) {})

	s.Push(Entry{View: "login"})
	s.Push(Entry{View: "menu"})
	s.Push(Entry{View: "tournament"})
	s.Back()
	s.Back()
	s.Push(Entry{View: "profile"})

	if s.Len() != 2 {
		t.Fatalf("len = %d after truncating push", s.Len())
	}

	// Nothing to go forward to anymore.
	calls := 0
	s.SetHandler(func(Entry) { calls++ })
	s.Forward()
	if calls != 0 {
		t.Fatal("forward should be a no-op after truncation")
	}
}

func TestForwardMirrorsBack(t *testing.T) {
	s := New()
	var reached []string
	s.SetHandler(func(e Entry) { reached = append(reached, e.View) })

	s.Push(Entry{View: "login"})
	s.Push(Entry{View: "menu"})
	s.Back()
	s.Forward()

	if len(reached) != 2 || reached[1] != "menu" {
		t.Fatalf("reached = %v", reached)
	}
}

func TestReplace(t *testing.T) {
	s := New()

	// Replace on empty behaves like push.
	s.Replace(Entry{View: "login"})
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}

	s.Push(Entry{View: "menu"})
	s.Replace(Entry{View: "game"})

	if s.Len() != 2 {
		t.Fatalf("replace grew the stack: len = %d", s.Len())
	}
	if cur, _ := s.Current(); cur.View != "game" {
		t.Fatalf("current = %+v", cur)
	}
}

package session

import "testing"

type fakeSession struct {
	cleanups int
}

func (f *fakeSession) Start() error               { return nil }
func (f *fakeSession) HandleServerMessage([]byte) {}
func (f *fakeSession) Cleanup()                   { f.cleanups++ }

func TestSwapTearsDownPrevious(t *testing.T) {
	slot := NewSlot()

	first := &fakeSession{}
	second := &fakeSession{}

	if prev := slot.Swap(KindMenu, first); prev != KindNone {
		t.Fatalf("prev kind = %v", prev)
	}
	if prev := slot.Swap(KindGame, second); prev != KindMenu {
		t.Fatalf("prev kind = %v", prev)
	}

	if first.cleanups != 1 {
		t.Fatalf("first cleaned up %d times", first.cleanups)
	}
	if second.cleanups != 0 {
		t.Fatal("live session must not be cleaned up")
	}
	if slot.Kind() != KindGame {
		t.Fatalf("kind = %v", slot.Kind())
	}
}

func TestClearEmptiesSlot(t *testing.T) {
	slot := NewSlot()
	s := &fakeSession{}
	slot.Swap(KindTournament, s)

	slot.Clear()
	slot.Clear()

	if s.cleanups != 1 {
		t.Fatalf("cleaned up %d times", s.cleanups)
	}
	if slot.Kind() != KindNone || slot.Active() != nil {
		t.Fatalf("slot not empty: kind=%v active=%v", slot.Kind(), slot.Active())
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNone:       "none",
		KindMenu:       "menu",
		KindGame:       "game",
		KindTournament: "tournament",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

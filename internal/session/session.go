package session

import "sync"

// Session is the active controller for exactly one of menu browsing, a live
// match, or a tournament bracket. Cleanup must release every timer, channel
// and listener the session owns; leaking any of them is a correctness bug.
type Session interface {
	Start() error
	HandleServerMessage(payload []byte)
	Cleanup()
}

type Kind int

const (
	KindNone Kind = iota
	KindMenu
	KindGame
	KindTournament
)

func (k Kind) String() string {
	switch k {
	case KindMenu:
		return "menu"
	case KindGame:
		return "game"
	case KindTournament:
		return "tournament"
	default:
		return "none"
	}
}

// Slot holds the single live session. Swapping in a new session always tears
// the previous one down first, exactly once.
type Slot struct {
	mu     sync.Mutex
	kind   Kind
	active Session
}

func NewSlot() *Slot {
	return &Slot{}
}

func (s *Slot) Kind() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

func (s *Slot) Active() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Swap tears down the current session (if any) and installs next. It returns
// the kind that was torn down.
func (s *Slot) Swap(kind Kind, next Session) Kind {
	s.mu.Lock()
	prev := s.active
	prevKind := s.kind
	s.active = next
	s.kind = kind
	s.mu.Unlock()

	if prev != nil {
		prev.Cleanup()
	}
	return prevKind
}

// Clear tears down the current session and leaves the slot empty.
func (s *Slot) Clear() {
	s.Swap(KindNone, nil)
}

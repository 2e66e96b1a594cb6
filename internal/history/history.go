package history

import "sync"

// Entry is one (view tag, payload) pair as persisted to browser history.
// Payloads must survive a round trip through history storage, so only
// JSON-friendly values belong here.
type Entry struct {
	View    string
	Payload any
}

// Handler receives the entry reached by a back/forward navigation, the
// popstate equivalent.
type Handler func(Entry)

// Stack models browser session history: an ordered list of entries with a
// cursor. Push discards any forward entries, exactly as a browser does.
type Stack struct {
	mu      sync.Mutex
	entries []Entry
	cursor  int
	handler Handler
}

func New() *Stack {
	return &Stack{cursor: -1}
}

func (s *Stack) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *Stack) Push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries[:s.cursor+1], e)
	s.cursor = len(s.entries) - 1
}

// Replace overwrites the current entry without growing the stack. On an
// empty stack it behaves like Push.
func (s *Stack) Replace(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 {
		s.entries = append(s.entries, e)
		s.cursor = 0
		return
	}
	s.entries[s.cursor] = e
}

func (s *Stack) Current() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 {
		return Entry{}, false
	}
	return s.entries[s.cursor], true
}

func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Back moves the cursor one entry back and delivers the reached entry to
// the handler. At the bottom of the stack it does nothing.
func (s *Stack) Back() {
	s.mu.Lock()
	if s.cursor <= 0 {
		s.mu.Unlock()
		return
	}
	s.cursor--
	e := s.entries[s.cursor]
	h := s.handler
	s.mu.Unlock()

	if h != nil {
		h(e)
	}
}

// Forward is the mirror of Back.
func (s *Stack) Forward() {
	s.mu.Lock()
	if s.cursor >= len(s.entries)-1 {
		s.mu.Unlock()
		return
	}
	s.cursor++
	e := s.entries[s.cursor]
	h := s.handler
	s.mu.Unlock()

	if h != nil {
		h(e)
	}
}

package input

import (
	"sync"

	"pongclient/internal/protocol"
)

// Control identifiers, matching what the server expects in key_update.
// player1 owns a/d, player2 owns the arrows.
const (
	KeyA          = "a"
	KeyD          = "d"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

var trackedKeys = []string{KeyA, KeyD, KeyArrowLeft, KeyArrowRight}

// KeyState tracks pressed/released for the fixed control set. Presses are
// filtered by role before any mutation; a role can never set a key that
// belongs to the other side.
type KeyState struct {
	mu      sync.Mutex
	role    protocol.PlayerRole
	pressed map[string]bool
}

func NewKeyState(role protocol.PlayerRole) *KeyState {
	pressed := make(map[string]bool, len(trackedKeys))
	for _, k := range trackedKeys {
		pressed[k] = false
	}
	return &KeyState{role: role, pressed: pressed}
}

func (s *KeyState) allowed(key string) bool {
	switch s.role {
	case protocol.RoleBoth:
		_, tracked := s.pressed[key]
		return tracked
	case protocol.RolePlayer1:
		return key == KeyA || key == KeyD
	case protocol.RolePlayer2:
		return key == KeyArrowLeft || key == KeyArrowRight
	default:
		return false
	}
}

// Press marks key as held. It reports whether the key was accepted for the
// session's role.
func (s *KeyState) Press(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.allowed(key) {
		return false
	}
	s.pressed[key] = true
	return true
}

// Release clears any tracked key. Releases are not role-filtered: a key the
// role cannot press is never true, so clearing it is harmless.
func (s *KeyState) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pressed[key]; ok {
		s.pressed[key] = false
	}
}

// Snapshot returns a copy of the full key map and whether any tracked
// control is currently held.
func (s *KeyState) Snapshot() (map[string]bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.pressed))
	any := false
	for k, v := range s.pressed {
		out[k] = v
		if v {
			any = true
		}
	}
	return out, any
}

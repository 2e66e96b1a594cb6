package input

import (
	"testing"
	"time"

	"pongclient/internal/protocol"
)

func TestPressRoleFilter(t *testing.T) {
	cases := []struct {
		name string
		role protocol.PlayerRole
		key  string
		want bool
	}{
		{"player1 own key", protocol.RolePlayer1, KeyA, true},
		{"player1 other side", protocol.RolePlayer1, KeyArrowLeft, false},
		{"player2 own key", protocol.RolePlayer2, KeyArrowRight, true},
		{"player2 other side", protocol.RolePlayer2, KeyD, false},
		{"both takes either side", protocol.RoleBoth, KeyArrowLeft, true},
		{"both ignores untracked", protocol.RoleBoth, "w", false},
		{"player1 untracked", protocol.RolePlayer1, "Escape", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewKeyState(tc.role)
			if got := s.Press(tc.key); got != tc.want {
				t.Fatalf("Press(%q) = %v, want %v", tc.key, got, tc.want)
			}
			keys, any := s.Snapshot()
			if any != tc.want {
				t.Fatalf("anyPressed = %v after press accepted=%v", any, tc.want)
			}
			if tc.want && !keys[tc.key] {
				t.Fatalf("key %q not held in snapshot", tc.key)
			}
		})
	}
}

func TestRejectedPressNeverMutates(t *testing.T) {
	s := NewKeyState(protocol.RolePlayer1)
	s.Press(KeyArrowLeft)
	s.Press(KeyArrowRight)

	keys, any := s.Snapshot()
	if any {
		t.Fatal("filtered presses must leave all keys released")
	}
	for k, v := range keys {
		if v {
			t.Fatalf("key %q unexpectedly held", k)
		}
	}
}

func TestReleaseClearsKey(t *testing.T) {
	s := NewKeyState(protocol.RoleBoth)
	s.Press(KeyA)
	s.Press(KeyArrowRight)
	s.Release(KeyA)

	keys, any := s.Snapshot()
	if keys[KeyA] {
		t.Fatal("released key still held")
	}
	if !any || !keys[KeyArrowRight] {
		t.Fatal("other key should remain held")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewKeyState(protocol.RoleBoth)
	keys, _ := s.Snapshot()
	keys[KeyA] = true

	got, any := s.Snapshot()
	if any || got[KeyA] {
		t.Fatal("mutating a snapshot must not affect state")
	}
}

func TestSampleSendsNothingWhileIdle(t *testing.T) {
	sent := 0
	s := NewSampler(NewKeyState(protocol.RoleBoth), time.Hour, func(map[string]bool) { sent++ })

	s.sample()
	s.sample()

	if sent != 0 {
		t.Fatalf("sent %d messages with no key held", sent)
	}
}

func TestSampleSendsOnePerTickWhileHeld(t *testing.T) {
	keys := NewKeyState(protocol.RoleBoth)
	var got []map[string]bool
	s := NewSampler(keys, time.Hour, func(m map[string]bool) { got = append(got, m) })

	keys.Press(KeyD)
	s.sample()
	s.sample()
	keys.Release(KeyD)
	s.sample()

	if len(got) != 2 {
		t.Fatalf("sent %d messages, want 2", len(got))
	}
	if !got[0][KeyD] || !got[1][KeyD] {
		t.Fatalf("payloads = %v", got)
	}
}

func TestSamplerStopIsIdempotent(t *testing.T) {
	s := NewSampler(NewKeyState(protocol.RoleBoth), time.Millisecond, func(map[string]bool) {})
	s.Start()
	s.Stop()
	s.Stop()
}

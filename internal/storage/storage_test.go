package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"pongclient/internal/protocol"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "state", "client.json"))
}

func TestTokensRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if s.AccessToken() != "" || s.RefreshToken() != "" {
		t.Fatal("fresh store should hold no tokens")
	}

	if err := s.SetTokens("acc1", "ref1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	if s.AccessToken() != "acc1" || s.RefreshToken() != "ref1" {
		t.Fatalf("tokens = %q / %q", s.AccessToken(), s.RefreshToken())
	}
}

func TestSetTokensKeepsRefreshWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetTokens("acc1", "ref1"); err != nil {
		t.Fatal(err)
	}

	// A token refresh returns only a new access token.
	if err := s.SetTokens("acc2", ""); err != nil {
		t.Fatal(err)
	}

	if s.AccessToken() != "acc2" {
		t.Fatalf("access = %q", s.AccessToken())
	}
	if s.RefreshToken() != "ref1" {
		t.Fatalf("refresh = %q, want the original kept", s.RefreshToken())
	}
}

func TestClearTokens(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetTokens("acc", "ref"); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearTokens(); err != nil {
		t.Fatal(err)
	}
	if s.AccessToken() != "" || s.RefreshToken() != "" {
		t.Fatal("tokens survived ClearTokens")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Profile(); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("err = %v, want ErrNoProfile", err)
	}

	want := protocol.UserProfile{Username: "alice", TournamentName: "Alice", Email: "a@example.com"}
	if err := s.SetProfile(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Profile()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("profile = %+v, want %+v", got, want)
	}

	if err := s.RemoveProfile(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Profile(); !errors.Is(err, ErrNoProfile) {
		t.Fatal("profile survived RemoveProfile")
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	s := New(path)
	if err := s.SetTokens("acc", "ref"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetProfile(protocol.UserProfile{Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	reopened := New(path)
	if reopened.AccessToken() != "acc" {
		t.Fatal("access token lost across reopen")
	}
	p, err := reopened.Profile()
	if err != nil || p.Username != "alice" {
		t.Fatalf("profile lost across reopen: %+v, %v", p, err)
	}
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pongclient/internal/protocol"
)

// Store is the durable local collaborator: access token, refresh token and
// the cached user profile. It is a fallback source only; history payloads
// win when present.
type Store struct {
	mu   sync.Mutex
	path string
}

type contents struct {
	AccessToken  string                `json:"access_token,omitempty"`
	RefreshToken string                `json:"refresh_token,omitempty"`
	Profile      *protocol.UserProfile `json:"profile,omitempty"`
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() contents {
	var c contents
	data, err := os.ReadFile(s.path)
	if err != nil {
		return c
	}
	_ = json.Unmarshal(data, &c)
	return c
}

// save rewrites the whole file atomically via a temp file rename.
func (s *Store) save(c contents) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing storage file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) mutate(fn func(*contents)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load()
	fn(&c)
	return s.save(c)
}

func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().RefreshToken
}

func (s *Store) SetTokens(access, refresh string) error {
	return s.mutate(func(c *contents) {
		c.AccessToken = access
		if refresh != "" {
			c.RefreshToken = refresh
		}
	})
}

func (s *Store) ClearTokens() error {
	return s.mutate(func(c *contents) {
		c.AccessToken = ""
		c.RefreshToken = ""
	})
}

var ErrNoProfile = errors.New("no cached profile")

func (s *Store) Profile() (protocol.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load()
	if c.Profile == nil {
		return protocol.UserProfile{}, ErrNoProfile
	}
	return *c.Profile, nil
}

func (s *Store) SetProfile(p protocol.UserProfile) error {
	return s.mutate(func(c *contents) { c.Profile = &p })
}

func (s *Store) RemoveProfile() error {
	return s.mutate(func(c *contents) { c.Profile = nil })
}

package menu

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pongclient/internal/channel"
	"pongclient/internal/diag"
	"pongclient/internal/protocol"
)

// Screen identifiers for the server-named menu screens. The client holds no
// authoritative menu state; the current screen is only remembered so local
// "back" can re-render without a round trip.
const (
	ScreenRoot        = "root"
	ScreenSubmenu     = "submenu"
	ScreenSettings    = "settings"
	ScreenPlayerNames = "player-names"
	ScreenSearching   = "searching"
	ScreenLeaderboard = "leaderboard"
)

// Presenter renders menu view models. Rendering is wholesale and idempotent;
// callers may re-present the same model any number of times.
type Presenter interface {
	ShowMenu(items []protocol.MenuItem)
	ShowSettingsForm(s protocol.Settings)
	ShowSettingsSaved(s protocol.Settings)
	ShowSettingsError(msg string)
	ShowSearching(msg string)
	ShowPlayerNames(numPlayers int, tournament bool)
	ShowLeaderboard()
	ShowOnlineUsers(users []protocol.UserProfile)
	ShowFriends(friends []protocol.UserProfile)
	ShowError(msg string)
}

// Directory is the slice of the REST collaborator the polling loop needs.
type Directory interface {
	OnlineUsers(ctx context.Context) ([]protocol.UserProfile, error)
	Friends(ctx context.Context) ([]protocol.UserProfile, error)
}

// Callbacks are the narrow upward handles injected by the router. Sessions
// never reach into sibling views directly.
type Callbacks struct {
	GameFound       func(info protocol.MatchInfo)
	TournamentReady func(seed protocol.MenuEvent)
}

type Config struct {
	Dialer     channel.Dialer
	MenuURL    string
	Profile    protocol.UserProfile
	Presenter  Presenter
	Directory  Directory
	PollPeriod time.Duration
	Log        *zap.Logger
	Metrics    *diag.Metrics
	Callbacks  Callbacks
}

type screen struct {
	name  string
	items []protocol.MenuItem
}

// Session drives the menu view: all transitions are server-pushed; local
// clicks only send a selection id and wait.
type Session struct {
	cfg Config

	mu       sync.Mutex
	conn     channel.Conn
	current  screen
	navStack []screen
	settings protocol.Settings

	pollDone    chan struct{}
	cleanupOnce sync.Once
}

func New(cfg Config) *Session {
	if cfg.PollPeriod <= 0 {
		cfg.PollPeriod = 10 * time.Second
	}
	return &Session{
		cfg:      cfg,
		settings: protocol.DefaultSettings(),
		pollDone: make(chan struct{}),
	}
}

func (s *Session) Start() error {
	conn, err := s.cfg.Dialer.Dial(context.Background(), s.cfg.MenuURL, s.HandleServerMessage, s.handleChannelError)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	if err := conn.Send(context.Background(), protocol.MenuRequest{Action: protocol.ActionGetMenuItems}); err != nil {
		return err
	}

	if s.cfg.Directory != nil {
		go s.pollLoop()
	}
	s.cfg.Metrics.SessionStarted("menu")
	return nil
}

func (s *Session) handleChannelError(err error) {
	s.cfg.Log.Error("menu channel failed", zap.Error(err))
	s.cfg.Presenter.ShowError("Connection to the menu server was lost.")
}

// Select sends a menu selection upstream and records the current screen so a
// later local "back" can restore it.
func (s *Session) Select(id string) {
	s.mu.Lock()
	conn := s.conn
	if id != "back" && s.current.name != "" {
		s.navStack = append(s.navStack, s.current)
	}
	s.mu.Unlock()

	if conn == nil {
		return
	}
	if err := conn.Send(context.Background(), protocol.MenuRequest{
		Action:    protocol.ActionMenuSelection,
		Selection: id,
	}); err != nil {
		s.cfg.Log.Error("sending selection failed", zap.String("selection", id), zap.Error(err))
	}
}

// Back pops the local navigation stack and re-renders the previous screen
// without a server round trip. Leaving the searching screen additionally
// cancels matchmaking upstream.
func (s *Session) Back() {
	s.mu.Lock()
	conn := s.conn
	searching := s.current.name == ScreenSearching

	var prev screen
	restored := false
	if n := len(s.navStack); n > 0 {
		prev = s.navStack[n-1]
		s.navStack = s.navStack[:n-1]
		s.current = prev
		restored = true
	}
	s.mu.Unlock()

	if searching && conn != nil {
		if err := conn.Send(context.Background(), protocol.MenuRequest{
			Action:    protocol.ActionMenuSelection,
			Selection: "cancel_search",
		}); err != nil {
			s.cfg.Log.Error("cancelling search failed", zap.Error(err))
		}
	}

	if restored {
		s.render(prev)
		return
	}
	// Nothing local to restore; ask the server for the main menu.
	if conn != nil {
		_ = conn.Send(context.Background(), protocol.MenuRequest{
			Action:    protocol.ActionMenuSelection,
			Selection: "main",
		})
	}
}

func (s *Session) render(sc screen) {
	switch sc.name {
	case ScreenSettings:
		s.mu.Lock()
		current := s.settings
		s.mu.Unlock()
		s.cfg.Presenter.ShowSettingsForm(current)
	case ScreenSearching:
		s.cfg.Presenter.ShowSearching("Searching for opponent...")
	case ScreenLeaderboard:
		s.cfg.Presenter.ShowLeaderboard()
	default:
		s.cfg.Presenter.ShowMenu(sc.items)
	}
}

// SaveSettings validates locally, then sends the edited fields upstream.
// Only a later settings_updated push makes the change authoritative.
func (s *Session) SaveSettings(edited protocol.Settings) error {
	if err := edited.Validate(); err != nil {
		s.cfg.Presenter.ShowSettingsError(err.Error())
		return err
	}
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return channel.ErrClosed
	}
	return conn.Send(context.Background(), protocol.MenuRequest{
		Action:   protocol.ActionUpdateSettings,
		Settings: &edited,
	})
}

// StartGameWithPlayers submits the entered player names for a local or
// tournament game.
func (s *Session) StartGameWithPlayers(names []string, tournament bool) error {
	s.mu.Lock()
	settings := s.settings
	conn := s.conn
	s.mu.Unlock()

	settings.IsTournament = tournament
	if conn == nil {
		return channel.ErrClosed
	}
	return conn.Send(context.Background(), protocol.MenuRequest{
		Action:      protocol.ActionStartGame,
		Settings:    &settings,
		PlayerNames: names,
	})
}

// Settings returns the cached copy from the last show_settings or
// settings_updated push.
func (s *Session) Settings() protocol.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Session) Cleanup() {
	s.cleanupOnce.Do(func() {
		close(s.pollDone)
		s.mu.Lock()
		conn := s.conn
		s.conn = nil
		s.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		s.cfg.Metrics.SessionCleaned("menu")
	})
}

func (s *Session) pollLoop() {
	s.pollOnce()
	ticker := time.NewTicker(s.cfg.PollPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.pollDone:
			return
		case <-ticker.C:
			s.pollOnce()
		}
	}
}

func (s *Session) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	users, err := s.cfg.Directory.OnlineUsers(ctx)
	if err != nil {
		s.cfg.Log.Debug("online users poll failed", zap.Error(err))
		return
	}
	s.cfg.Presenter.ShowOnlineUsers(users)
	friends, err := s.cfg.Directory.Friends(ctx)
	if err != nil {
		s.cfg.Log.Debug("friends poll failed", zap.Error(err))
		return
	}
	s.cfg.Presenter.ShowFriends(friends)
}

func (s *Session) setScreen(name string, items []protocol.MenuItem) screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = screen{name: name, items: items}
	return s.current
}

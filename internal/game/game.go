package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pongclient/internal/channel"
	"pongclient/internal/diag"
	"pongclient/internal/input"
	"pongclient/internal/protocol"
	"pongclient/internal/render"
)

// DefaultFramePeriod approximates display refresh for the decoupled render
// loop.
const DefaultFramePeriod = 16 * time.Millisecond

// Presenter renders the match chrome around the scene: scoreboard and the
// terminal result screen.
type Presenter interface {
	ShowScoreboard(snap protocol.GameSnapshot)
	ShowWinner(name string, score int)
	ShowError(msg string)
}

type Config struct {
	Info      protocol.MatchInfo
	Dialer    channel.Dialer
	GameURL   string
	MenuURL   string
	Renderer  render.Adapter
	Presenter Presenter
	Log       *zap.Logger
	Metrics   *diag.Metrics

	SamplePeriod time.Duration
	FramePeriod  time.Duration

	// OnFinished is invoked once with the winner's name after a terminal
	// snapshot; the tournament context is passed through when the match
	// belonged to a bracket.
	OnFinished func(winner string, tournament *protocol.TournamentContext)
	// BackToMenu is the user's explicit exit from the result screen.
	BackToMenu func()
}

// Session runs one match: handshake, input sampling, snapshot-driven
// rendering, win detection and hand-off.
type Session struct {
	cfg     Config
	keys    *input.KeyState
	sampler *input.Sampler

	mu           sync.Mutex
	conn         channel.Conn
	latest       protocol.GameSnapshot
	haveSnapshot bool
	finished     bool

	frameDone   chan struct{}
	frameOnce   sync.Once
	readyOnce   sync.Once
	cleanupOnce sync.Once
}

func New(cfg Config) *Session {
	if cfg.FramePeriod <= 0 {
		cfg.FramePeriod = DefaultFramePeriod
	}
	s := &Session{
		cfg:       cfg,
		keys:      input.NewKeyState(cfg.Info.PlayerRole),
		frameDone: make(chan struct{}),
	}
	s.sampler = input.NewSampler(s.keys, cfg.SamplePeriod, s.sendKeys)
	return s
}

// Start runs the setup phase: open the match channel and load render assets
// concurrently, then announce the local player. The session goes live only
// after the local Ready click; the server decides when both sides are ready.
func (s *Session) Start() error {
	g, ctx := errgroup.WithContext(context.Background())

	var conn channel.Conn
	g.Go(func() error {
		c, err := s.cfg.Dialer.Dial(ctx, s.cfg.GameURL, s.HandleServerMessage, s.handleChannelError)
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	g.Go(func() error {
		return s.cfg.Renderer.LoadAssets(ctx)
	})
	if err := g.Wait(); err != nil {
		if conn != nil {
			conn.Close()
		}
		s.cfg.Presenter.ShowError("Failed to start the match.")
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	settings := s.cfg.Info.Settings
	if err := conn.Send(context.Background(), protocol.GameRequest{
		Action:     protocol.ActionPlayerInfo,
		PlayerRole: s.cfg.Info.PlayerRole,
		Profile:    s.cfg.Info.Profile,
		Settings:   &settings,
	}); err != nil {
		return err
	}

	s.cfg.Renderer.Mount("game-container")
	go s.frameLoop()
	s.cfg.Metrics.SessionStarted("game")
	return nil
}

// Ready sends the local ready signal and begins input sampling. Safe to call
// more than once; only the first call has any effect.
func (s *Session) Ready() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn != nil {
			if err := conn.Send(context.Background(), protocol.GameRequest{
				Action:     protocol.ActionPlayerReady,
				PlayerRole: s.cfg.Info.PlayerRole,
			}); err != nil {
				s.cfg.Log.Error("sending ready failed", zap.Error(err))
				return
			}
		}
		s.sampler.Start()
	})
}

// Press forwards a key-down event through the role filter.
func (s *Session) Press(key string) bool {
	return s.keys.Press(key)
}

func (s *Session) Release(key string) {
	s.keys.Release(key)
}

func (s *Session) sendKeys(keys map[string]bool) {
	s.mu.Lock()
	conn := s.conn
	finished := s.finished
	s.mu.Unlock()
	if conn == nil || finished {
		return
	}
	if err := conn.Send(context.Background(), protocol.GameRequest{
		Action: protocol.ActionKeyUpdate,
		Keys:   keys,
	}); err != nil {
		s.cfg.Log.Debug("key update failed", zap.Error(err))
		return
	}
	s.cfg.Metrics.InputSent()
}

// frameLoop repaints the most recent snapshot at frame rate, independent of
// message arrival. Redrawing an unchanged snapshot is idempotent; the scene
// must not stall when messages arrive slower than frames.
func (s *Session) frameLoop() {
	ticker := time.NewTicker(s.cfg.FramePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.frameDone:
			return
		case <-ticker.C:
			s.mu.Lock()
			have := s.haveSnapshot
			s.mu.Unlock()
			if have {
				s.cfg.Renderer.RenderFrame()
			}
		}
	}
}

func (s *Session) handleChannelError(err error) {
	// Terminal by design: no retry. The view stays frozen on the last
	// snapshot until the user navigates away.
	s.cfg.Log.Error("game channel failed", zap.String("game_id", s.cfg.Info.GameID), zap.Error(err))
	s.sampler.Stop()
	s.cfg.Presenter.ShowError("Connection to the match was lost.")
}

// HandleServerMessage applies one authoritative snapshot. Each message
// wholesale-replaces local state; snapshots are never interpolated or queued.
func (s *Session) HandleServerMessage(payload []byte) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	snap, err := protocol.DecodeGameSnapshot(payload)
	if err != nil {
		s.cfg.Log.Warn("malformed snapshot", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.latest = snap
	s.haveSnapshot = true
	winner := snap.Winner
	if winner != nil {
		s.finished = true
	}
	s.mu.Unlock()

	s.cfg.Renderer.ApplySnapshot(snap)
	s.cfg.Presenter.ShowScoreboard(snap)
	s.cfg.Metrics.SnapshotApplied()

	if winner != nil {
		s.finish(*winner)
	}
}

// finish is terminal: stop the input timer, stop consuming snapshots, close
// the channel and show the result. Tournament matches report the winner on a
// fresh menu-channel connection before handing control back.
func (s *Session) finish(w protocol.WinnerInfo) {
	s.sampler.Stop()
	s.frameOnce.Do(func() { close(s.frameDone) })

	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn != nil {
		conn.Close()
	}

	s.cfg.Log.Info("match finished",
		zap.String("game_id", s.cfg.Info.GameID),
		zap.String("winner", w.Name),
		zap.Int("score", w.Score))
	s.cfg.Presenter.ShowWinner(w.Name, w.Score)

	t := s.cfg.Info.Tournament
	if t != nil && t.Active {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.cfg.Dialer.SendOnce(ctx, s.cfg.MenuURL, protocol.MenuRequest{
			Action: protocol.ActionTournamentResult,
			Winner: w.Name,
		}); err != nil {
			s.cfg.Log.Error("reporting tournament result failed", zap.Error(err))
		}
	}
	if s.cfg.OnFinished != nil {
		s.cfg.OnFinished(w.Name, t)
	}
}

// Snapshot returns the most recently applied game state.
func (s *Session) Snapshot() (protocol.GameSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.haveSnapshot
}

// BackToMenu is the user's exit from the result screen.
func (s *Session) BackToMenu() {
	if s.cfg.BackToMenu != nil {
		s.cfg.BackToMenu()
	}
}

func (s *Session) Cleanup() {
	s.cleanupOnce.Do(func() {
		s.sampler.Stop()
		s.frameOnce.Do(func() { close(s.frameDone) })

		s.mu.Lock()
		conn := s.conn
		s.conn = nil
		s.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		s.cfg.Renderer.Dispose()
		s.cfg.Metrics.SessionCleaned("game")
	})
}

package tournament

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pongclient/internal/channel"
	"pongclient/internal/diag"
	"pongclient/internal/protocol"
)

// Action is the single primary control the bracket screen offers, derived
// from the latest pushed state and the local player's name.
type Action int

const (
	ActionNone Action = iota
	ActionStartTournament
	ActionStartNextRound
	ActionWon
)

func (a Action) String() string {
	switch a {
	case ActionStartTournament:
		return "start_tournament"
	case ActionStartNextRound:
		return "start_next_round"
	case ActionWon:
		return "won"
	default:
		return "none"
	}
}

// State mirrors the server's bracket. Every update_tournament_results push
// replaces it wholesale; nothing mutates it locally between pushes.
type State struct {
	Players      []protocol.TournamentPlayer
	Round        int
	TotalRounds  int
	Matchups     []protocol.Matchup
	Results      map[string]int
	Winner       string
	Finished     bool
	MatchHistory []protocol.MatchRecord
}

// Advancing reports whether name appears in the results of the current round.
func (st State) Advancing(name string) bool {
	_, ok := st.Results[name]
	return ok
}

// Eliminated means results exist for the round and name is not among them.
// Between a round finishing and its results arriving this also covers
// players whose match simply has not been reported yet; the server resolves
// the ambiguity with the next push.
func (st State) Eliminated(name string) bool {
	return len(st.Results) > 0 && !st.Advancing(name)
}

// PrimaryAction derives the one actionable control for the local player.
func (st State) PrimaryAction(name string) Action {
	switch {
	case st.Winner != "" && st.Winner == name:
		return ActionWon
	case st.Winner != "":
		return ActionNone
	case st.Round == 1 && len(st.Results) == 0:
		return ActionStartTournament
	case len(st.Results) > 0 && st.Advancing(name):
		return ActionStartNextRound
	default:
		return ActionNone
	}
}

// Presenter draws bracket screens.
type Presenter interface {
	ShowBracket(st State, action Action)
	ShowChampion(winner string, history []protocol.MatchRecord)
	ShowError(msg string)
}

type Config struct {
	Dialer    channel.Dialer
	MenuURL   string
	LocalName string
	Presenter Presenter
	Log       *zap.Logger
	Metrics   *diag.Metrics

	// OnStartMatch hands a bracket match to a fresh game session. The
	// tournament context rides along so the result comes back here.
	OnStartMatch func(protocol.MatchInfo)
}

// Session tracks one bracket over the persistent menu channel. Round-advance
// requests go out on short-lived connections; the server never answers them
// directly, confirmation always arrives as a later push here.
type Session struct {
	cfg Config

	mu    sync.Mutex
	conn  channel.Conn
	state State

	cleanupOnce sync.Once
}

func New(cfg Config) *Session {
	return &Session{cfg: cfg}
}

// Seed installs bracket state carried by the event that opened this view
// (tournament_ready) so the first render does not wait for a push.
func (s *Session) Seed(ev protocol.MenuEvent) {
	s.mu.Lock()
	s.state = stateFromEvent(ev)
	st := s.state
	s.mu.Unlock()
	s.cfg.Presenter.ShowBracket(st, st.PrimaryAction(s.cfg.LocalName))
}

func (s *Session) Start() error {
	conn, err := s.cfg.Dialer.Dial(context.Background(), s.cfg.MenuURL, s.HandleServerMessage, s.handleChannelError)
	if err != nil {
		s.cfg.Presenter.ShowError("Failed to open the tournament channel.")
		return err
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	if err := conn.Send(context.Background(), protocol.MenuRequest{
		Action: protocol.ActionRequestTournamentResults,
	}); err != nil {
		return err
	}
	s.cfg.Metrics.SessionStarted("tournament")
	return nil
}

// State returns a copy of the latest bracket state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartTournament requests the bracket start. Fire and forget; the bracket
// mutation arrives later on the push channel.
func (s *Session) StartTournament() {
	s.sendOnce(protocol.MenuRequest{Action: protocol.ActionStartTournamentNow})
}

// StartNextRound requests the next round once the current one is decided.
func (s *Session) StartNextRound() {
	s.sendOnce(protocol.MenuRequest{Action: protocol.ActionStartNextRound})
}

func (s *Session) sendOnce(req protocol.MenuRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.cfg.Dialer.SendOnce(ctx, s.cfg.MenuURL, req); err != nil {
		s.cfg.Log.Error("tournament action failed", zap.String("action", req.Action), zap.Error(err))
		s.cfg.Presenter.ShowError("The tournament server is not responding.")
	}
}

func (s *Session) handleChannelError(err error) {
	s.cfg.Log.Error("tournament channel failed", zap.Error(err))
	s.cfg.Presenter.ShowError("Connection to the tournament was lost.")
}

func (s *Session) HandleServerMessage(payload []byte) {
	ev, err := protocol.DecodeMenuEvent(payload)
	if err != nil {
		s.cfg.Log.Warn("malformed tournament event", zap.Error(err))
		return
	}

	switch ev.Action {
	case protocol.ActionTournamentReady, protocol.ActionUpdateTournamentResults:
		s.mu.Lock()
		s.state = stateFromEvent(ev)
		st := s.state
		s.mu.Unlock()
		s.cfg.Presenter.ShowBracket(st, st.PrimaryAction(s.cfg.LocalName))

	case protocol.ActionTournamentFinished:
		s.mu.Lock()
		s.state.Winner = firstNonEmpty(ev.TournamentWinner, ev.Winner)
		s.state.Finished = true
		s.state.MatchHistory = ev.MatchHistory
		winner := s.state.Winner
		history := s.state.MatchHistory
		s.mu.Unlock()
		s.cfg.Presenter.ShowChampion(winner, history)

	case protocol.ActionGameFound:
		s.handleGameFound(ev)

	default:
		s.cfg.Log.Debug("ignoring menu event on tournament channel", zap.String("action", ev.Action))
	}
}

// handleGameFound hands a bracket match off to a game session. The server
// announces bracket matches on the same menu channel the bracket view holds.
func (s *Session) handleGameFound(ev protocol.MenuEvent) {
	if s.cfg.OnStartMatch == nil {
		return
	}
	settings := protocol.DefaultSettings()
	if ev.Settings != nil {
		settings = *ev.Settings
	}
	settings.IsTournament = true
	role := protocol.RoleBoth
	if ev.PlayerRole != "" {
		role = protocol.PlayerRole(ev.PlayerRole)
	}
	s.cfg.OnStartMatch(protocol.MatchInfo{
		GameID:     ev.GameID,
		Player1:    ev.Player1,
		Player2:    ev.Player2,
		PlayerRole: role,
		Settings:   settings,
		Tournament: &protocol.TournamentContext{Active: true, MatchID: ev.GameID},
	})
}

func (s *Session) Cleanup() {
	s.cleanupOnce.Do(func() {
		s.mu.Lock()
		conn := s.conn
		s.conn = nil
		s.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		s.cfg.Metrics.SessionCleaned("tournament")
	})
}

func stateFromEvent(ev protocol.MenuEvent) State {
	round := ev.Round
	if round == 0 {
		round = 1
	}
	return State{
		Players:     ev.Players,
		Round:       round,
		TotalRounds: ev.TotalRounds,
		Matchups:    ev.Matchups,
		Results:     ev.Results,
		Winner:      ev.TournamentWinner,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

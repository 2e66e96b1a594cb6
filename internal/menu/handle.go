package menu

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pongclient/internal/protocol"
)

// HandleServerMessage dispatches one inbound menu channel payload. Malformed
// or unknown messages skip the render step but never tear the session down.
func (s *Session) HandleServerMessage(payload []byte) {
	ev, err := protocol.DecodeMenuEvent(payload)
	if err != nil {
		s.cfg.Log.Warn("malformed menu message", zap.Error(err))
		return
	}

	switch ev.Action {
	case protocol.ActionMenuItems, protocol.ActionShowMainMenu:
		s.mu.Lock()
		s.navStack = s.navStack[:0]
		s.mu.Unlock()
		sc := s.setScreen(ScreenRoot, ev.MenuItems)
		s.render(sc)

	case protocol.ActionShowSubmenu:
		sc := s.setScreen(ScreenSubmenu, ev.MenuItems)
		s.render(sc)

	case protocol.ActionShowSettings:
		if ev.Settings == nil {
			s.cfg.Log.Warn("show_settings without settings payload")
			return
		}
		s.mu.Lock()
		s.settings = *ev.Settings
		s.mu.Unlock()
		s.setScreen(ScreenSettings, nil)
		s.cfg.Presenter.ShowSettingsForm(*ev.Settings)

	case protocol.ActionSettingsUpdated:
		if ev.Settings != nil {
			s.mu.Lock()
			s.settings = *ev.Settings
			s.mu.Unlock()
			s.cfg.Presenter.ShowSettingsSaved(*ev.Settings)
		}
		s.Back()

	case protocol.ActionSettingsError:
		// The form stays open with the user's rejected values.
		s.cfg.Presenter.ShowSettingsError(ev.Message)

	case protocol.ActionSearchingOpponent:
		msg := ev.Message
		if msg == "" {
			msg = "Searching for opponent..."
		}
		s.setScreen(ScreenSearching, nil)
		s.cfg.Presenter.ShowSearching(msg)

	case protocol.ActionShowPlayerNames:
		s.setScreen(ScreenPlayerNames, nil)
		s.cfg.Presenter.ShowPlayerNames(ev.NumPlayers, ev.Tournament)

	case protocol.ActionShowLeaderboard:
		s.setScreen(ScreenLeaderboard, nil)
		s.cfg.Presenter.ShowLeaderboard()

	case protocol.ActionGameFound:
		s.handleGameFound(ev)

	case protocol.ActionStartGame:
		s.handleStartGame(ev)

	case protocol.ActionTournamentReady:
		if s.cfg.Callbacks.TournamentReady != nil {
			s.cfg.Callbacks.TournamentReady(ev)
		}

	case protocol.ActionUpdateTournamentResults, protocol.ActionTournamentFinished:
		// Bracket pushes belong to the tournament session; while the menu is
		// active they carry no renderable state here.
		s.cfg.Log.Debug("ignoring bracket push on menu session", zap.String("action", ev.Action))

	default:
		s.cfg.Log.Warn("unknown menu action", zap.String("action", ev.Action))
	}
}

// handleGameFound synthesizes the match handshake and hands off upward. The
// server decides the pairing; the client contributes its profile and the
// cached settings when the push carries none.
func (s *Session) handleGameFound(ev protocol.MenuEvent) {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	if ev.Settings != nil {
		settings = *ev.Settings
	}

	role := protocol.PlayerRole(ev.PlayerRole)
	if role == "" {
		role = protocol.RoleBoth
	}
	if role != protocol.RoleBoth && settings.Mode == "" {
		settings.Mode = "online"
	}

	gameID := ev.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	profile := s.cfg.Profile
	info := protocol.MatchInfo{
		GameID:     gameID,
		Player1:    ev.Player1,
		Player2:    ev.Player2,
		PlayerRole: role,
		Settings:   settings,
		Profile:    &profile,
	}
	s.cfg.Log.Info("match found",
		zap.String("game_id", info.GameID),
		zap.String("role", string(info.PlayerRole)))

	if s.cfg.Callbacks.GameFound != nil {
		s.cfg.Callbacks.GameFound(info)
	}
}

// handleStartGame covers the local/AI path where the server confirms only
// the settings and the client names the match itself.
func (s *Session) handleStartGame(ev protocol.MenuEvent) {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	if ev.Settings != nil {
		settings = *ev.Settings
	}

	profile := s.cfg.Profile
	info := protocol.MatchInfo{
		GameID:     uuid.NewString(),
		Player1:    "Player 1",
		Player2:    "Player 2",
		PlayerRole: protocol.RoleBoth,
		Settings:   settings,
		Profile:    &profile,
	}
	if s.cfg.Callbacks.GameFound != nil {
		s.cfg.Callbacks.GameFound(info)
	}
}

package protocol

import "encoding/json"

// Client -> server actions on the menu channel.
const (
	ActionGetMenuItems             = "get_menu_items"
	ActionMenuSelection            = "menu_selection"
	ActionUpdateSettings           = "update_settings"
	ActionStartGame                = "start_game"
	ActionStartTournamentNow       = "start_tournament_now"
	ActionStartNextRound           = "start_next_round"
	ActionRequestTournamentResults = "request_tournament_results"
	ActionTournamentResult         = "tournament_result"
)

// Server -> client actions on the menu channel.
const (
	ActionMenuItems               = "menu_items"
	ActionShowMainMenu            = "show_main_menu"
	ActionShowSubmenu             = "show_submenu"
	ActionShowSettings            = "show_settings"
	ActionSettingsUpdated         = "settings_updated"
	ActionSettingsError           = "settings_error"
	ActionSearchingOpponent       = "searching_opponent"
	ActionShowPlayerNames         = "show_player_names"
	ActionShowLeaderboard         = "show_leaderboard"
	ActionGameFound               = "game_found"
	ActionTournamentReady         = "tournament_ready"
	ActionUpdateTournamentResults = "update_tournament_results"
	ActionTournamentFinished      = "tournament_finished"
)

type MenuItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MenuRequest is the client->server message shape for the menu channel.
// Fields beyond Action are populated per action.
type MenuRequest struct {
	Action      string       `json:"action"`
	Selection   string       `json:"selection,omitempty"`
	Settings    *Settings    `json:"settings,omitempty"`
	Winner      string       `json:"winner,omitempty"`
	PlayerNames []string     `json:"playerNames,omitempty"`
	Profile     *UserProfile `json:"userProfile,omitempty"`
}

// MenuEvent is the server->client envelope for the menu channel. The server
// tags messages with "action"; the one exception is the initial menu list,
// which arrives as a bare {"menu_items": [...]} object.
type MenuEvent struct {
	Action    string     `json:"action"`
	MenuItems []MenuItem `json:"menu_items,omitempty"`
	Settings  *Settings  `json:"settings,omitempty"`
	Message   string     `json:"message,omitempty"`

	// game_found
	GameID     string `json:"game_id,omitempty"`
	Player1    string `json:"player1,omitempty"`
	Player2    string `json:"player2,omitempty"`
	PlayerRole string `json:"playerRole,omitempty"`

	// show_player_names
	NumPlayers int  `json:"num_players,omitempty"`
	Tournament bool `json:"tournament,omitempty"`

	// tournament_ready / update_tournament_results / tournament_finished
	Players          []TournamentPlayer `json:"players,omitempty"`
	Round            int                `json:"round,omitempty"`
	TotalRounds      int                `json:"total_rounds,omitempty"`
	Results          map[string]int     `json:"results,omitempty"`
	Matchups         []Matchup          `json:"matchups,omitempty"`
	TournamentWinner string             `json:"tournament_winner,omitempty"`
	Winner           string             `json:"winner,omitempty"`
	MatchHistory     []MatchRecord      `json:"match_history,omitempty"`
}

// DecodeMenuEvent parses a raw menu channel payload and normalizes the bare
// menu list form onto ActionMenuItems.
func DecodeMenuEvent(payload []byte) (MenuEvent, error) {
	var ev MenuEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return MenuEvent{}, err
	}
	if ev.Action == "" && len(ev.MenuItems) > 0 {
		ev.Action = ActionMenuItems
	}
	return ev, nil
}

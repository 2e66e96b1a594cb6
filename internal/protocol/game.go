package protocol

import "encoding/json"

// Client -> server actions on the game channel.
const (
	ActionPlayerInfo  = "player_info"
	ActionPlayerReady = "player_ready"
	ActionKeyUpdate   = "key_update"
)

// PlayerRole fixes which side(s) of the match local input may control for
// the lifetime of a GameSession.
type PlayerRole string

const (
	RolePlayer1 PlayerRole = "player1"
	RolePlayer2 PlayerRole = "player2"
	RoleBoth    PlayerRole = "both"
)

// GameRequest is the client->server message shape for the game channel.
type GameRequest struct {
	Action     string          `json:"action"`
	PlayerRole PlayerRole      `json:"player_role,omitempty"`
	Profile    *UserProfile    `json:"user_profile,omitempty"`
	Settings   *Settings       `json:"settings,omitempty"`
	Keys       map[string]bool `json:"keys,omitempty"`
}

type PaddleSpan struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Center float64 `json:"center"`
}

type SideState struct {
	Name   string     `json:"name"`
	Score  int        `json:"score"`
	Paddle PaddleSpan `json:"paddle"`
}

type WinnerInfo struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameSnapshot is one authoritative, wholesale game state from the server.
// Coordinates are normalized to [-1,1] per axis. A non-nil Winner is
// terminal for the match.
type GameSnapshot struct {
	Ball       [2]float64  `json:"ball"`
	Player1    SideState   `json:"player1"`
	Player2    SideState   `json:"player2"`
	GameActive bool        `json:"game_active"`
	Winner     *WinnerInfo `json:"winner,omitempty"`
}

func DecodeGameSnapshot(payload []byte) (GameSnapshot, error) {
	var snap GameSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return GameSnapshot{}, err
	}
	return snap, nil
}

// TournamentContext marks a match as belonging to a bracket so the result
// can be reported back when it ends.
type TournamentContext struct {
	Active  bool   `json:"isActive"`
	MatchID string `json:"matchId,omitempty"`
}

// MatchInfo is the handshake payload a GameSession is constructed with,
// synthesized from game_found (or locally for local/AI matches).
type MatchInfo struct {
	GameID     string             `json:"game_id"`
	Player1    string             `json:"player1"`
	Player2    string             `json:"player2"`
	PlayerRole PlayerRole         `json:"playerRole"`
	Settings   Settings           `json:"settings"`
	Profile    *UserProfile       `json:"userProfile,omitempty"`
	Tournament *TournamentContext `json:"tournament,omitempty"`
}

package protocol

import "errors"

var ErrBallSpeedRange = errors.New("ball speed must be between 1 and 10")
var ErrPaddleSpeedRange = errors.New("paddle speed must be between 1 and 10")
var ErrWinningScoreRange = errors.New("winning score must be between 1 and 20")
var ErrPaddleSize = errors.New("paddle size must be 'small', 'middle', or 'big'")

// Settings is the game configuration the server persists. The local copy is
// a cache only; settings_updated is the source of truth for what was stored.
type Settings struct {
	BallSpeed    int    `json:"ball_speed"`
	PaddleSpeed  int    `json:"paddle_speed"`
	WinningScore int    `json:"winning_score"`
	PaddleSize   string `json:"paddle_size"`
	Mode         string `json:"mode,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	IsTournament bool   `json:"is_tournament,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		BallSpeed:    2,
		PaddleSpeed:  5,
		WinningScore: 5,
		PaddleSize:   "middle",
	}
}

// Validate enforces the same ranges the server does, so obviously bad values
// are rejected before they are ever sent.
func (s Settings) Validate() error {
	if s.BallSpeed < 1 || s.BallSpeed > 10 {
		return ErrBallSpeedRange
	}
	if s.PaddleSpeed < 1 || s.PaddleSpeed > 10 {
		return ErrPaddleSpeedRange
	}
	if s.WinningScore < 1 || s.WinningScore > 20 {
		return ErrWinningScoreRange
	}
	switch s.PaddleSize {
	case "small", "middle", "big":
	default:
		return ErrPaddleSize
	}
	return nil
}

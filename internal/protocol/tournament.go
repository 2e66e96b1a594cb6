package protocol

type TournamentPlayer struct {
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	TournamentName string `json:"tournament_name"`
}

type Matchup struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type MatchRecord struct {
	Round   int    `json:"round"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Winner  string `json:"winner"`
	Loser   string `json:"loser,omitempty"`
}

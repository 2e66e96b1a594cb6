package router

import (
	"pongclient/internal/protocol"
	"pongclient/internal/session"
)

// Synthetic tags for transitions driven by local outcomes rather than a
// server push.
const (
	tagMatchWon           = "match_won"
	tagMatchWonTournament = "match_won_tournament"
)

type transitionKey struct {
	from session.Kind
	tag  string
}

// transitions is the explicit hand-off table: which view takes the screen
// when a given message tag lands while a given session kind is live. Pairs
// not listed here cause no transition.
// Local start_game pushes are not listed: the menu session synthesizes a
// match and reports it through the same game_found hand-off.
var transitions = map[transitionKey]View{
	{session.KindMenu, protocol.ActionGameFound}:       ViewGame,
	{session.KindMenu, protocol.ActionTournamentReady}: ViewTournament,
	{session.KindTournament, protocol.ActionGameFound}: ViewGame,
	{session.KindGame, tagMatchWon}:                    ViewMenu,
	{session.KindGame, tagMatchWonTournament}:          ViewTournament,
}

// NextView resolves one hand-off. It is pure so transition logic can be
// checked without mounting anything.
func NextView(from session.Kind, tag string) (View, bool) {
	v, ok := transitions[transitionKey{from: from, tag: tag}]
	return v, ok
}

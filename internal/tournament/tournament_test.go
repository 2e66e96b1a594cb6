package tournament

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pongclient/internal/channel"
	"pongclient/internal/protocol"
)

func TestPrimaryAction(t *testing.T) {
	cases := []struct {
		name  string
		state State
		local string
		want  Action
	}{
		{
			name:  "fresh bracket offers start",
			state: State{Round: 1, Results: map[string]int{}},
			local: "Alice",
			want:  ActionStartTournament,
		},
		{
			name:  "advancing player may start next round",
			state: State{Round: 1, Results: map[string]int{"Alice": 1}},
			local: "Alice",
			want:  ActionStartNextRound,
		},
		{
			name:  "eliminated player gets nothing",
			state: State{Round: 1, Results: map[string]int{"Alice": 1}},
			local: "Bob",
			want:  ActionNone,
		},
		{
			name:  "champion sees the won state",
			state: State{Round: 2, Results: map[string]int{"Alice": 2}, Winner: "Alice"},
			local: "Alice",
			want:  ActionWon,
		},
		{
			name:  "loser of the final gets nothing",
			state: State{Round: 2, Results: map[string]int{"Alice": 2}, Winner: "Alice"},
			local: "Bob",
			want:  ActionNone,
		},
		{
			name:  "later round without results is not actionable",
			state: State{Round: 2, Results: map[string]int{}},
			local: "Alice",
			want:  ActionNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.PrimaryAction(tc.local); got != tc.want {
				t.Fatalf("PrimaryAction(%q) = %v, want %v", tc.local, got, tc.want)
			}
		})
	}
}

func TestAdvancingAndEliminated(t *testing.T) {
	st := State{Results: map[string]int{"Alice": 1}}

	if !st.Advancing("Alice") || st.Advancing("Bob") {
		t.Fatal("advancing should mirror presence in results")
	}
	if st.Eliminated("Alice") || !st.Eliminated("Bob") {
		t.Fatal("eliminated should mirror absence from non-empty results")
	}

	empty := State{}
	if empty.Eliminated("Bob") {
		t.Fatal("no one is eliminated before any results exist")
	}
}

type fakeConn struct {
	mu     sync.Mutex
	sent   []protocol.MenuRequest
	closed int
}

func (c *fakeConn) Send(_ context.Context, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v.(protocol.MenuRequest))
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
}

type fakeDialer struct {
	conn *fakeConn
	once []protocol.MenuRequest
}

func (d *fakeDialer) Dial(_ context.Context, _ string, _ channel.Handler, _ func(error)) (channel.Conn, error) {
	return d.conn, nil
}

func (d *fakeDialer) SendOnce(_ context.Context, _ string, v any) error {
	d.once = append(d.once, v.(protocol.MenuRequest))
	return nil
}

type recordingPresenter struct {
	brackets []State
	actions  []Action
	champion string
	history  []protocol.MatchRecord
	errors   []string
}

func (p *recordingPresenter) ShowBracket(st State, a Action) {
	p.brackets = append(p.brackets, st)
	p.actions = append(p.actions, a)
}

func (p *recordingPresenter) ShowChampion(winner string, history []protocol.MatchRecord) {
	p.champion = winner
	p.history = history
}

func (p *recordingPresenter) ShowError(msg string) {
	p.errors = append(p.errors, msg)
}

func newTestSession(t *testing.T, onStart func(protocol.MatchInfo)) (*Session, *fakeConn, *fakeDialer, *recordingPresenter) {
	t.Helper()
	conn := &fakeConn{}
	d := &fakeDialer{conn: conn}
	p := &recordingPresenter{}
	s := New(Config{
		Dialer:       d,
		MenuURL:      "ws://test/menu/",
		LocalName:    "Alice",
		Presenter:    p,
		Log:          zap.NewNop(),
		OnStartMatch: onStart,
	})
	require.NoError(t, s.Start())
	t.Cleanup(s.Cleanup)
	return s, conn, d, p
}

func TestStartRequestsResults(t *testing.T) {
	_, conn, _, _ := newTestSession(t, nil)

	require.Len(t, conn.sent, 1)
	require.Equal(t, protocol.ActionRequestTournamentResults, conn.sent[0].Action)
}

func TestResultsPushReplacesState(t *testing.T) {
	s, _, _, p := newTestSession(t, nil)

	s.HandleServerMessage([]byte(`{
		"action": "update_tournament_results",
		"round": 1,
		"total_rounds": 2,
		"matchups": [{"player1":"Alice","player2":"Bob"},{"player1":"Carol","player2":"Dave"}],
		"results": {}
	}`))
	s.HandleServerMessage([]byte(`{
		"action": "update_tournament_results",
		"round": 2,
		"total_rounds": 2,
		"matchups": [{"player1":"Alice","player2":"Carol"}],
		"results": {"Alice":1,"Carol":1}
	}`))

	st := s.State()
	require.Equal(t, 2, st.Round)
	require.Len(t, st.Matchups, 1)
	require.Equal(t, 1, st.Results["Alice"])

	require.Len(t, p.actions, 2)
	require.Equal(t, ActionStartTournament, p.actions[0])
	require.Equal(t, ActionStartNextRound, p.actions[1])
}

func TestFinishedPushIsTerminal(t *testing.T) {
	s, _, _, p := newTestSession(t, nil)

	s.HandleServerMessage([]byte(`{
		"action": "tournament_finished",
		"tournament_winner": "Alice",
		"match_history": [{"round":1,"player1":"Alice","player2":"Bob","winner":"Alice"}]
	}`))

	require.Equal(t, "Alice", p.champion)
	require.Len(t, p.history, 1)
	require.True(t, s.State().Finished)
}

func TestGameFoundHandsOffWithTournamentContext(t *testing.T) {
	var got protocol.MatchInfo
	s, _, _, _ := newTestSession(t, func(info protocol.MatchInfo) { got = info })

	s.HandleServerMessage([]byte(`{
		"action": "game_found",
		"game_id": "t-semi-1",
		"player1": "Alice",
		"player2": "Bob",
		"playerRole": "player1"
	}`))

	require.Equal(t, "t-semi-1", got.GameID)
	require.NotNil(t, got.Tournament)
	require.True(t, got.Tournament.Active)
	require.True(t, got.Settings.IsTournament)
	require.Equal(t, protocol.RolePlayer1, got.PlayerRole)
}

func TestRoundActionsUseShortLivedConnections(t *testing.T) {
	s, conn, d, _ := newTestSession(t, nil)

	s.StartTournament()
	s.StartNextRound()

	require.Len(t, d.once, 2)
	require.Equal(t, protocol.ActionStartTournamentNow, d.once[0].Action)
	require.Equal(t, protocol.ActionStartNextRound, d.once[1].Action)
	// The persistent channel carried only the initial results request.
	require.Len(t, conn.sent, 1)
}

func TestSeedRendersImmediately(t *testing.T) {
	s, _, _, p := newTestSession(t, nil)

	s.Seed(protocol.MenuEvent{
		Action:      protocol.ActionTournamentReady,
		Round:       1,
		TotalRounds: 2,
		Matchups:    []protocol.Matchup{{Player1: "Alice", Player2: "Bob"}},
	})

	require.Len(t, p.brackets, 1)
	require.Equal(t, ActionStartTournament, p.actions[0])
}

func TestCleanupClosesChannelOnce(t *testing.T) {
	s, conn, _, _ := newTestSession(t, nil)

	s.Cleanup()
	s.Cleanup()

	require.Equal(t, 1, conn.closed)
}

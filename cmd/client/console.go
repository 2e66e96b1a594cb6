package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"pongclient/internal/auth"
	"pongclient/internal/protocol"
	"pongclient/internal/router"
	"pongclient/internal/tournament"
)

// console is the terminal front end: it implements every presenter surface
// the router needs and drives it from stdin commands.
type console struct {
	mu     sync.Mutex
	out    io.Writer
	auth   *auth.Client
	log    *zap.Logger
	router *router.Router
}

func newConsole(out io.Writer, a *auth.Client, log *zap.Logger) *console {
	return &console{out: out, auth: a, log: log}
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format+"\n", args...)
}

// run reads one command per line until EOF, "quit", or context cancellation.
func (c *console) run(ctx context.Context, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !c.dispatch(strings.Fields(line)) {
				return
			}
		}
	}
}

func (c *console) dispatch(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "quit":
		return false
	case "login":
		if len(args) != 3 {
			c.printf("usage: login <username> <password>")
			return true
		}
		profile, err := c.auth.Login(context.Background(), args[1], args[2])
		if err != nil {
			c.printf("login failed: %v", err)
			return true
		}
		c.router.Show(router.ViewMenu, profile, true)
	case "logout":
		if err := c.auth.Logout(context.Background()); err != nil {
			c.log.Warn("logout", zap.Error(err))
		}
		c.router.Show(router.ViewLogin, nil, true)
	case "select":
		if s := c.router.ActiveMenu(); s != nil && len(args) == 2 {
			s.Select(args[1])
		}
	case "names":
		if s := c.router.ActiveMenu(); s != nil && len(args) == 2 {
			if err := s.StartGameWithPlayers(strings.Split(args[1], ","), false); err != nil {
				c.printf("invalid names: %v", err)
			}
		}
	case "back":
		if s := c.router.ActiveMenu(); s != nil {
			s.Back()
			return true
		}
		c.router.Back()
	case "forward":
		c.router.Forward()
	case "menu":
		c.router.Show(router.ViewMenu, nil, true)
	case "ready":
		if s := c.router.ActiveGame(); s != nil {
			s.Ready()
		}
	case "press":
		if s := c.router.ActiveGame(); s != nil && len(args) == 2 {
			s.Press(args[1])
		}
	case "release":
		if s := c.router.ActiveGame(); s != nil && len(args) == 2 {
			s.Release(args[1])
		}
	case "start-tournament":
		if s := c.router.ActiveTournament(); s != nil {
			s.StartTournament()
		}
	case "next-round":
		if s := c.router.ActiveTournament(); s != nil {
			s.StartNextRound()
		}
	default:
		c.printf("unknown command: %s", args[0])
	}
	return true
}

// Background scene.

func (c *console) Show() { c.printf("[scene] background visible") }
func (c *console) Hide() { c.printf("[scene] background hidden") }

// Static views.

func (c *console) MountStatic(v router.View, payload any) {
	switch v {
	case router.ViewLogin:
		c.printf("== login == (login <username> <password>)")
	case router.ViewSignup:
		c.printf("== sign up ==")
	case router.ViewVerify:
		c.printf("== verify ==")
	case router.ViewProfile:
		c.printf("== profile == %v", payload)
	}
}

// Menu presenter.

func (c *console) ShowMenu(items []protocol.MenuItem) {
	c.printf("== menu ==")
	for _, it := range items {
		c.printf("  [%s] %s", it.ID, it.Text)
	}
}

func (c *console) ShowSettingsForm(s protocol.Settings) {
	c.printf("== settings == ball=%d paddle=%d win=%d size=%s",
		s.BallSpeed, s.PaddleSpeed, s.WinningScore, s.PaddleSize)
}

func (c *console) ShowSettingsSaved(s protocol.Settings) {
	c.printf("settings saved")
}

func (c *console) ShowSettingsError(msg string) {
	c.printf("settings rejected: %s", msg)
}

func (c *console) ShowSearching(msg string) {
	c.printf("%s", msg)
}

func (c *console) ShowPlayerNames(numPlayers int, tournamentMode bool) {
	c.printf("enter %d player names (names a,b,...) tournament=%v", numPlayers, tournamentMode)
}

func (c *console) ShowLeaderboard() {
	c.printf("== leaderboard ==")
}

func (c *console) ShowOnlineUsers(users []protocol.UserProfile) {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.DisplayName())
	}
	c.printf("online: %s", strings.Join(names, ", "))
}

func (c *console) ShowFriends(friends []protocol.UserProfile) {
	names := make([]string, 0, len(friends))
	for _, f := range friends {
		names = append(names, f.DisplayName())
	}
	c.printf("friends: %s", strings.Join(names, ", "))
}

func (c *console) ShowError(msg string) {
	c.printf("error: %s", msg)
}

// Game presenter.

func (c *console) ShowScoreboard(snap protocol.GameSnapshot) {
	c.printf("%s %d : %d %s",
		snap.Player1.Name, snap.Player1.Score, snap.Player2.Score, snap.Player2.Name)
}

func (c *console) ShowWinner(name string, score int) {
	c.printf("%s wins! (%d)", name, score)
}

// Tournament presenter.

func (c *console) ShowBracket(st tournament.State, action tournament.Action) {
	c.printf("== tournament == round %d/%d", st.Round, st.TotalRounds)
	for _, m := range st.Matchups {
		c.printf("  %s vs %s", m.Player1, m.Player2)
	}
	for name, wins := range st.Results {
		c.printf("  advancing: %s (%d)", name, wins)
	}
	if action != tournament.ActionNone {
		c.printf("  action: %s", action)
	}
}

func (c *console) ShowChampion(winner string, history []protocol.MatchRecord) {
	c.printf("== champion: %s ==", winner)
	for _, m := range history {
		c.printf("  r%d %s vs %s -> %s", m.Round, m.Player1, m.Player2, m.Winner)
	}
}

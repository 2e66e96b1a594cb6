package router

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pongclient/internal/channel"
	"pongclient/internal/diag"
	"pongclient/internal/game"
	"pongclient/internal/history"
	"pongclient/internal/menu"
	"pongclient/internal/protocol"
	"pongclient/internal/render"
	"pongclient/internal/session"
	"pongclient/internal/storage"
	"pongclient/internal/tournament"
)

// View names a mountable screen. The three session views carry a live
// controller; the rest are static forms.
type View string

const (
	ViewSignup     View = "signup"
	ViewVerify     View = "verify"
	ViewLogin      View = "login"
	ViewMenu       View = "menu"
	ViewGame       View = "game"
	ViewTournament View = "tournament"
	ViewProfile    View = "profile"
)

var knownViews = map[View]bool{
	ViewSignup:     true,
	ViewVerify:     true,
	ViewLogin:      true,
	ViewMenu:       true,
	ViewGame:       true,
	ViewTournament: true,
	ViewProfile:    true,
}

// Background is the persistent scene behind every view except a live match.
type Background interface {
	Show()
	Hide()
}

// Screens mounts the static auth and profile views.
type Screens interface {
	MountStatic(v View, payload any)
}

type Config struct {
	Dialer  channel.Dialer
	MenuURL string
	// WSBase is the websocket root; match channels hang off it per game id.
	WSBase string

	Store      *storage.Store
	Directory  menu.Directory
	Background Background
	Screens    Screens

	MenuPresenter       menu.Presenter
	GamePresenter       game.Presenter
	TournamentPresenter tournament.Presenter

	// NewRenderer builds one scene adapter per match; adapters are disposed
	// with their session and never reused.
	NewRenderer func() render.Adapter

	Log     *zap.Logger
	Metrics *diag.Metrics

	SamplePeriod time.Duration
	FramePeriod  time.Duration
	PollPeriod   time.Duration
}

// Router is the single entry and exit point for view transitions. It owns
// the one live session, the background scene, and the history stack; sessions
// only ever reach back through the narrow callbacks injected here.
type Router struct {
	cfg  Config
	slot *session.Slot
	hist *history.Stack

	mu      sync.Mutex
	profile protocol.UserProfile
}

func New(cfg Config, hist *history.Stack) *Router {
	r := &Router{
		cfg:  cfg,
		slot: session.NewSlot(),
		hist: hist,
	}
	hist.SetHandler(r.handleNavigation)
	return r
}

// Show transitions to the named view. The previous session is always torn
// down before the new view mounts. Unknown views are a configuration error:
// logged, nothing mounted, the current view stays up.
func (r *Router) Show(v View, payload any, pushHistory bool) {
	if !knownViews[v] {
		r.cfg.Log.Error("unknown view", zap.String("view", string(v)))
		return
	}

	switch v {
	case ViewMenu:
		r.showMenu(payload, pushHistory)
	case ViewGame:
		r.showGame(payload)
	case ViewTournament:
		r.showTournament(payload, pushHistory)
	default:
		r.slot.Clear()
		r.cfg.Background.Show()
		r.cfg.Screens.MountStatic(v, payload)
		if pushHistory {
			r.hist.Push(history.Entry{View: string(v), Payload: payload})
		}
	}
}

func (r *Router) showMenu(payload any, pushHistory bool) {
	profile := r.resolveProfile(payload)

	sess := menu.New(menu.Config{
		Dialer:     r.cfg.Dialer,
		MenuURL:    r.cfg.MenuURL,
		Profile:    profile,
		Presenter:  r.cfg.MenuPresenter,
		Directory:  r.cfg.Directory,
		PollPeriod: r.cfg.PollPeriod,
		Log:        r.cfg.Log,
		Metrics:    r.cfg.Metrics,
		Callbacks: menu.Callbacks{
			GameFound: func(info protocol.MatchInfo) {
				if v, ok := NextView(session.KindMenu, protocol.ActionGameFound); ok {
					r.Show(v, info, true)
				}
			},
			TournamentReady: func(seed protocol.MenuEvent) {
				if v, ok := NextView(session.KindMenu, protocol.ActionTournamentReady); ok {
					r.Show(v, seed, true)
				}
			},
		},
	})

	r.slot.Swap(session.KindMenu, sess)
	r.cfg.Background.Show()
	if err := sess.Start(); err != nil {
		r.cfg.Log.Error("menu session failed to start", zap.Error(err))
	}
	if pushHistory {
		r.hist.Push(history.Entry{View: string(ViewMenu), Payload: profile})
	}
}

func (r *Router) showGame(payload any) {
	info, ok := payload.(protocol.MatchInfo)
	if !ok {
		r.cfg.Log.Error("game view requires match info")
		return
	}

	sess := game.New(game.Config{
		Info:         info,
		Dialer:       r.cfg.Dialer,
		GameURL:      r.gameURL(info.GameID),
		MenuURL:      r.cfg.MenuURL,
		Renderer:     r.cfg.NewRenderer(),
		Presenter:    r.cfg.GamePresenter,
		Log:          r.cfg.Log,
		Metrics:      r.cfg.Metrics,
		SamplePeriod: r.cfg.SamplePeriod,
		FramePeriod:  r.cfg.FramePeriod,
		OnFinished: func(winner string, t *protocol.TournamentContext) {
			tag := tagMatchWon
			if t != nil && t.Active {
				tag = tagMatchWonTournament
			}
			if tag == tagMatchWon {
				// The result screen stays up; the user leaves it with an
				// explicit back-to-menu action.
				return
			}
			if v, ok := NextView(session.KindGame, tag); ok {
				r.Show(v, nil, true)
			}
		},
		BackToMenu: func() {
			r.Show(ViewMenu, nil, true)
		},
	})

	r.slot.Swap(session.KindGame, sess)
	r.cfg.Background.Hide()
	if err := sess.Start(); err != nil {
		r.cfg.Log.Error("game session failed to start", zap.Error(err))
	}

	// The match never gets its own back target: the current entry is
	// replaced and a guard entry keeps one press of back on this page.
	r.hist.Replace(history.Entry{View: string(ViewGame)})
	r.hist.Push(history.Entry{View: string(ViewGame)})
}

func (r *Router) showTournament(payload any, pushHistory bool) {
	profile := r.resolveProfile(nil)

	sess := tournament.New(tournament.Config{
		Dialer:    r.cfg.Dialer,
		MenuURL:   r.cfg.MenuURL,
		LocalName: profile.DisplayName(),
		Presenter: r.cfg.TournamentPresenter,
		Log:       r.cfg.Log,
		Metrics:   r.cfg.Metrics,
		OnStartMatch: func(info protocol.MatchInfo) {
			info.Profile = &profile
			if v, ok := NextView(session.KindTournament, protocol.ActionGameFound); ok {
				r.Show(v, info, true)
			}
		},
	})

	r.slot.Swap(session.KindTournament, sess)
	r.cfg.Background.Show()
	// Seed strictly before the channel opens; a push that lands during the
	// dial is newer than the seed and must not be overwritten by it.
	if seed, ok := payload.(protocol.MenuEvent); ok {
		sess.Seed(seed)
	}
	if err := sess.Start(); err != nil {
		r.cfg.Log.Error("tournament session failed to start", zap.Error(err))
	}
	if pushHistory {
		r.hist.Push(history.Entry{View: string(ViewTournament)})
	}
}

// handleNavigation services browser-style back/forward events. While a match
// is live every navigation is neutralized by re-pushing the match entry; a
// history entry naming the match view is never restored, it redirects to the
// menu with the durable profile instead.
func (r *Router) handleNavigation(e history.Entry) {
	if r.slot.Kind() == session.KindGame {
		r.hist.Push(history.Entry{View: string(ViewGame)})
		return
	}

	if e.View == string(ViewGame) {
		profile := r.storedProfile()
		r.Show(ViewMenu, profile, false)
		r.hist.Replace(history.Entry{View: string(ViewMenu), Payload: profile})
		return
	}

	r.Show(View(e.View), e.Payload, false)
}

// Back forwards the user's back action to the history stack.
func (r *Router) Back() {
	r.hist.Back()
}

func (r *Router) Forward() {
	r.hist.Forward()
}

// ActiveKind reports which session currently owns the screen.
func (r *Router) ActiveKind() session.Kind {
	return r.slot.Kind()
}

// ActiveGame returns the live match session, if any. Input sources use it to
// forward key events.
func (r *Router) ActiveGame() *game.Session {
	s, _ := r.slot.Active().(*game.Session)
	return s
}

func (r *Router) ActiveMenu() *menu.Session {
	s, _ := r.slot.Active().(*menu.Session)
	return s
}

func (r *Router) ActiveTournament() *tournament.Session {
	s, _ := r.slot.Active().(*tournament.Session)
	return s
}

// Shutdown tears down whatever session is live.
func (r *Router) Shutdown() {
	r.slot.Clear()
}

func (r *Router) resolveProfile(payload any) protocol.UserProfile {
	if p, ok := payload.(protocol.UserProfile); ok {
		r.mu.Lock()
		r.profile = p
		r.mu.Unlock()
		return p
	}
	r.mu.Lock()
	cached := r.profile
	r.mu.Unlock()
	if cached.Username != "" || cached.TournamentName != "" {
		return cached
	}
	return r.storedProfile()
}

func (r *Router) storedProfile() protocol.UserProfile {
	if r.cfg.Store == nil {
		return protocol.UserProfile{}
	}
	p, err := r.cfg.Store.Profile()
	if err != nil {
		return protocol.UserProfile{}
	}
	return p
}

func (r *Router) gameURL(id string) string {
	return strings.TrimSuffix(r.cfg.WSBase, "/") + "/game/" + id + "/"
}

package render

import (
	"context"

	"go.uber.org/zap"

	"pongclient/internal/protocol"
)

// Adapter is the narrow surface of the 3D rendering collaborator. It is
// owned exclusively by the active GameSession; menu and tournament views
// never touch the scene.
type Adapter interface {
	LoadAssets(ctx context.Context) error
	Mount(container string)
	ApplySnapshot(snap protocol.GameSnapshot)
	RenderFrame()
	Resize(width, height int)
	Dispose()
}

// ConsoleAdapter is the default adapter for the headless binary: it keeps
// the most recent snapshot and logs score changes.
type ConsoleAdapter struct {
	log       *zap.Logger
	last      protocol.GameSnapshot
	lastScore [2]int
}

func NewConsoleAdapter(log *zap.Logger) *ConsoleAdapter {
	return &ConsoleAdapter{log: log}
}

func (a *ConsoleAdapter) LoadAssets(ctx context.Context) error { return nil }

func (a *ConsoleAdapter) Mount(container string) {
	a.log.Info("scene mounted", zap.String("container", container))
}

func (a *ConsoleAdapter) ApplySnapshot(snap protocol.GameSnapshot) {
	a.last = snap
	score := [2]int{snap.Player1.Score, snap.Player2.Score}
	if score != a.lastScore {
		a.lastScore = score
		a.log.Info("score",
			zap.String("player1", snap.Player1.Name), zap.Int("p1", score[0]),
			zap.String("player2", snap.Player2.Name), zap.Int("p2", score[1]))
	}
}

func (a *ConsoleAdapter) RenderFrame() {}

func (a *ConsoleAdapter) Resize(width, height int) {}

func (a *ConsoleAdapter) Dispose() {
	a.log.Debug("scene disposed")
}

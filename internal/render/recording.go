package render

import (
	"context"
	"sync"

	"pongclient/internal/protocol"
)

// RecordingAdapter counts every adapter call so tests can assert on session
// behavior without a real scene.
type RecordingAdapter struct {
	mu          sync.Mutex
	LoadErr     error
	Loaded      int
	Mounted     []string
	Applied     []protocol.GameSnapshot
	FramesDrawn int
	Disposed    int
}

func (a *RecordingAdapter) LoadAssets(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Loaded++
	return a.LoadErr
}

func (a *RecordingAdapter) Mount(container string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Mounted = append(a.Mounted, container)
}

func (a *RecordingAdapter) ApplySnapshot(snap protocol.GameSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Applied = append(a.Applied, snap)
}

func (a *RecordingAdapter) RenderFrame() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.FramesDrawn++
}

func (a *RecordingAdapter) Resize(width, height int) {}

func (a *RecordingAdapter) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Disposed++
}

func (a *RecordingAdapter) AppliedCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Applied)
}

func (a *RecordingAdapter) LastApplied() (protocol.GameSnapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.Applied) == 0 {
		return protocol.GameSnapshot{}, false
	}
	return a.Applied[len(a.Applied)-1], true
}

package extract

import (
	"errors"
	"sync"
	"time"
)

// ErrExtractionRunning is returned when an extraction run is requested while
// another is in flight. Callers surface it as a conflict, not a failure.
var ErrExtractionRunning = errors.New("extraction already in progress")

// Guard serializes extraction runs within a process. Extraction hammers
// external rate limits hard enough that two overlapping runs would starve
// each other.
type Guard struct {
	mu        sync.Mutex
	running   bool
	startedAt time.Time
	gen       uint64
}

// NewGuard returns an idle guard.
func NewGuard() *Guard {
	return &Guard{}
}

// TryAcquire claims the guard. On success it returns a release func that
// must be called on every exit path; otherwise it returns
// ErrExtractionRunning.
func (g *Guard) TryAcquire() (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return nil, ErrExtractionRunning
	}
	g.running = true
	g.startedAt = time.Now()
	g.gen++
	gen := g.gen

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		// A release from a run that was force-reset must not free the
		// guard out from under a newer acquirer.
		if g.gen != gen {
			return
		}
		g.running = false
		g.startedAt = time.Time{}
	}, nil
}

// Running reports whether a run is in flight and when it started.
func (g *Guard) Running() (bool, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running, g.startedAt
}

// ForceReset unconditionally marks the guard idle. If the previous run is
// in fact still alive it keeps running unguarded; only use this to recover
// from a run known to be dead.
func (g *Guard) ForceReset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

// ResetIfStale force-resets the guard when the current run started more than
// timeout ago, and reports whether it did. Long-lived schedulers use this to
// recover from a run that died without releasing.
func (g *Guard) ResetIfStale(timeout time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running || time.Since(g.startedAt) <= timeout {
		return false
	}
	g.reset()
	return true
}

// reset must be called with the mutex held.
func (g *Guard) reset() {
	g.running = false
	g.startedAt = time.Time{}
	g.gen++
}

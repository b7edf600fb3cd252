// Package timer provides a periodic callback scheduler with an idempotent
// start/stop lifecycle.
package timer

import (
	"sync"
	"time"
)

// DefaultInterval is the progress sampling period.
const DefaultInterval = 200 * time.Millisecond

// Timer fires a callback at a fixed interval while running. Missed ticks are
// never queued: if the callback is still busy when the next tick is due, the
// tick is coalesced by the underlying time.Ticker.
type Timer struct {
	interval time.Duration
	fn       func()

	mu   sync.Mutex
	stop chan struct{}
}

// New creates a stopped timer. An interval <= 0 falls back to
// DefaultInterval.
func New(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{interval: interval, fn: fn}
}

// Start begins periodic firing. Calling Start on a running timer is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	go t.run(stop)
}

// Stop cancels periodic firing. Safe to call on a stopped or never-started
// timer.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}

// Running reports whether the timer is currently scheduled.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *Timer) run(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.fn()
		case <-stop:
			return
		}
	}
}

package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestTimer_FiresPeriodically(t *testing.T) {
	var ticks atomic.Int64
	tm := New(10*time.Millisecond, func() { ticks.Add(1) })

	tm.Start()
	defer tm.Stop()

	waitFor(t, func() bool { return ticks.Load() >= 3 })
}

func TestTimer_StartIdempotent(t *testing.T) {
	var ticks atomic.Int64
	tm := New(10*time.Millisecond, func() { ticks.Add(1) })

	tm.Start()
	tm.Start()
	tm.Start()
	defer tm.Stop()

	waitFor(t, func() bool { return ticks.Load() >= 2 })

	// One running loop only: after stopping, count settles.
	tm.Stop()
	time.Sleep(30 * time.Millisecond) // let any in-flight tick finish
	settled := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Errorf("ticks after Stop() = %d, want %d", got, settled)
	}
}

func TestTimer_StopIdempotent(t *testing.T) {
	tm := New(10*time.Millisecond, func() {})

	// Never started.
	tm.Stop()

	tm.Start()
	tm.Stop()
	tm.Stop()

	if tm.Running() {
		t.Error("Running() = true after Stop()")
	}
}

func TestTimer_Restart(t *testing.T) {
	var ticks atomic.Int64
	tm := New(10*time.Millisecond, func() { ticks.Add(1) })

	tm.Start()
	waitFor(t, func() bool { return ticks.Load() >= 1 })
	tm.Stop()

	before := ticks.Load()
	tm.Start()
	defer tm.Stop()
	waitFor(t, func() bool { return ticks.Load() > before })
}

func TestTimer_DefaultInterval(t *testing.T) {
	tm := New(0, func() {})
	if tm.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", tm.interval, DefaultInterval)
	}
}

func TestTimer_Running(t *testing.T) {
	tm := New(time.Minute, func() {})
	if tm.Running() {
		t.Error("Running() = true before Start()")
	}
	tm.Start()
	if !tm.Running() {
		t.Error("Running() = false after Start()")
	}
	tm.Stop()
	if tm.Running() {
		t.Error("Running() = true after Stop()")
	}
}

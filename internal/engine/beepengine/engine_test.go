package beepengine

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"playkit/internal/engine"
	"playkit/internal/source"
)

// recordingListener collects notifications delivered by the dispatch
// goroutine.
type recordingListener struct {
	mu         sync.Mutex
	states     []engine.RawState
	loadErrors []error
	fatals     []error
}

func (l *recordingListener) OnStateChanged(_ bool, s engine.RawState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, s)
}

func (l *recordingListener) OnLoadError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadErrors = append(l.loadErrors, err)
}

func (l *recordingListener) OnFatalError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fatals = append(l.fatals, err)
}

func (l *recordingListener) waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		l.mu.Lock()
		ok := cond()
		l.mu.Unlock()
		if ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("notification not delivered before deadline")
}

func TestFactory_NilListener(t *testing.T) {
	if _, err := Factory(nil); err == nil {
		t.Error("Factory(nil) error = nil, want error")
	}
}

func TestPrepare_StreamingSource_LoadError(t *testing.T) {
	l := &recordingListener{}
	e, err := Factory(l)
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	defer e.Release()

	e.Prepare(source.NewHLS("https://cdn.example.com/master.m3u8", ""))

	l.waitFor(t, func() bool { return len(l.loadErrors) == 1 })
	if len(l.states) != 0 {
		t.Errorf("states = %v, want none for rejected source", l.states)
	}
}

func TestPrepare_MissingFile_LoadErrorAfterBuffering(t *testing.T) {
	l := &recordingListener{}
	e, err := Factory(l)
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	defer e.Release()

	e.Prepare(source.NewProgressive("/nonexistent/track.mp3", ""))

	l.waitFor(t, func() bool { return len(l.loadErrors) == 1 })
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.states) != 1 || l.states[0] != engine.RawBuffering {
		t.Errorf("states = %v, want [buffering]", l.states)
	}
}

func TestPrepare_UnsupportedContainer_LoadError(t *testing.T) {
	l := &recordingListener{}
	e, err := Factory(l)
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	defer e.Release()

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	e.Prepare(source.NewProgressive(path, ""))

	l.waitFor(t, func() bool { return len(l.loadErrors) == 1 })
}

func TestStop_ReportsIdle(t *testing.T) {
	l := &recordingListener{}
	e, err := Factory(l)
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	defer e.Release()

	e.Stop()

	l.waitFor(t, func() bool {
		return len(l.states) == 1 && l.states[0] == engine.RawIdle
	})
}

func TestUnprepared_Readbacks(t *testing.T) {
	l := &recordingListener{}
	e, err := Factory(l)
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	defer e.Release()

	if e.Duration() != 0 {
		t.Errorf("Duration() = %d, want 0", e.Duration())
	}
	if e.Position() != 0 {
		t.Errorf("Position() = %d, want 0", e.Position())
	}
	if e.BufferedPercent() != 0 {
		t.Errorf("BufferedPercent() = %d, want 0", e.BufferedPercent())
	}

	// Seek with no stream is a no-op.
	e.SeekTo(5000)
}

func TestRelease_Idempotent(t *testing.T) {
	l := &recordingListener{}
	e, err := Factory(l)
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}

	e.Release()
	e.Release()
}

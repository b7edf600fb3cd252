// Package beepengine implements the engine contract for progressive local
// audio sources on top of gopxl/beep. Streaming manifest types (DASH,
// SmoothStreaming, HLS) are rejected with a load error; this engine exists
// so the playback layer can be exercised end to end without an external
// player binary.
package beepengine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"playkit/internal/engine"
	"playkit/internal/source"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

type noticeKind int

const (
	noticeState noticeKind = iota
	noticeLoadError
	noticeFatalError
)

type notice struct {
	kind          noticeKind
	playWhenReady bool
	state         engine.RawState
	err           error
}

// Engine plays mp3/flac files through the system speaker. Listener
// notifications are delivered from a dedicated dispatch goroutine, never
// synchronously from an Engine method, per the engine.Listener contract.
type Engine struct {
	mu sync.Mutex

	listener  engine.Listener
	notices   chan notice
	done      chan struct{}
	closeOnce sync.Once

	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File

	playWhenReady bool
	prepared      bool
	// session invalidates completion callbacks from a superseded stream.
	session int
}

// Factory creates a beep engine bound to the given listener.
func Factory(l engine.Listener) (engine.Engine, error) {
	if l == nil {
		return nil, errors.New("beepengine: nil listener")
	}
	e := &Engine{
		listener: l,
		notices:  make(chan notice, 16),
		done:     make(chan struct{}),
	}
	go e.dispatch()
	return e, nil
}

var _ engine.Engine = (*Engine)(nil)

func (e *Engine) dispatch() {
	for {
		select {
		case n := <-e.notices:
			switch n.kind {
			case noticeState:
				e.listener.OnStateChanged(n.playWhenReady, n.state)
			case noticeLoadError:
				e.listener.OnLoadError(n.err)
			case noticeFatalError:
				e.listener.OnFatalError(n.err)
			}
		case <-e.done:
			return
		}
	}
}

func (e *Engine) post(n notice) {
	select {
	case e.notices <- n:
	case <-e.done:
	}
}

func (e *Engine) postState(playWhenReady bool, s engine.RawState) {
	e.post(notice{kind: noticeState, playWhenReady: playWhenReady, state: s})
}

// Prepare opens and decodes the media file, then reports buffering followed
// by ready. Failures surface through OnLoadError.
func (e *Engine) Prepare(media source.Media) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pwr := e.playWhenReady

	if media.Type != source.Progressive {
		e.post(notice{kind: noticeLoadError,
			err: fmt.Errorf("beepengine: %s sources not supported", media.Type)})
		return
	}

	e.session++
	e.releaseStreamLocked()
	e.postState(pwr, engine.RawBuffering)

	path := strings.TrimPrefix(media.URI, "file://")
	f, err := os.Open(path)
	if err != nil {
		e.post(notice{kind: noticeLoadError, err: err})
		return
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		e.post(notice{kind: noticeLoadError,
			err: fmt.Errorf("beepengine: unsupported container %s", ext)})
		return
	}
	if err != nil {
		f.Close()
		e.post(notice{kind: noticeLoadError, err: err})
		return
	}

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		streamer.Close()
		f.Close()
		e.post(notice{kind: noticeFatalError,
			err: fmt.Errorf("init speaker: %w", speakerErr)})
		return
	}

	e.file = f
	e.streamer = streamer
	e.format = format
	e.ctrl = &beep.Ctrl{Streamer: streamer, Paused: !pwr}
	e.prepared = true

	session := e.session
	// The completion callback runs on the speaker goroutine; it must not
	// take e.mu there or it would invert lock order with Stop.
	speaker.Play(beep.Seq(e.ctrl, beep.Callback(func() {
		go e.finished(session)
	})))

	e.postState(pwr, engine.RawReady)
}

func (e *Engine) finished(session int) {
	e.mu.Lock()
	if session != e.session || !e.prepared {
		e.mu.Unlock()
		return
	}
	pwr := e.playWhenReady
	e.mu.Unlock()
	e.postState(pwr, engine.RawEnded)
}

// SetPlayWhenReady flips the auto-play intent and reports the resulting
// ready state when a stream is loaded.
func (e *Engine) SetPlayWhenReady(on bool) {
	e.mu.Lock()
	if e.playWhenReady == on && e.prepared {
		e.mu.Unlock()
		return
	}
	e.playWhenReady = on
	ctrl := e.ctrl
	prepared := e.prepared
	e.mu.Unlock()

	if ctrl != nil {
		speaker.Lock()
		ctrl.Paused = !on
		speaker.Unlock()
	}
	if prepared {
		e.postState(on, engine.RawReady)
	}
}

// Stop halts playback, releases the stream and reports idle.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.session++
	e.releaseStreamLocked()
	pwr := e.playWhenReady
	e.mu.Unlock()
	e.postState(pwr, engine.RawIdle)
}

// SeekTo moves the stream position, clamped to the stream bounds.
func (e *Engine) SeekTo(ms int64) {
	e.mu.Lock()
	streamer := e.streamer
	format := e.format
	e.mu.Unlock()
	if streamer == nil {
		return
	}

	target := format.SampleRate.N(time.Duration(ms) * time.Millisecond)
	speaker.Lock()
	target = max(target, 0)
	if l := streamer.Len(); target >= l {
		target = max(l-1, 0)
	}
	_ = streamer.Seek(target)
	speaker.Unlock()
}

func (e *Engine) Duration() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.prepared || e.streamer == nil {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len()).Milliseconds()
}

func (e *Engine) Position() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.prepared || e.streamer == nil {
		return 0
	}
	// Read without the speaker lock; may be slightly stale but avoids
	// contending with the mixer.
	return e.format.SampleRate.D(e.streamer.Position()).Milliseconds()
}

// BufferedPercent reports 100 for a loaded local stream, 0 otherwise.
func (e *Engine) BufferedPercent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prepared {
		return 100
	}
	return 0
}

// Release frees the stream and stops the dispatch goroutine. Idempotent.
//
// The beep speaker is process-global: releasing a stream clears the shared
// mixer, so this engine assumes it is the only one playing in the process
// (one playback instance owns one engine at a time).
func (e *Engine) Release() {
	e.mu.Lock()
	e.session++
	e.releaseStreamLocked()
	e.mu.Unlock()
	e.closeOnce.Do(func() { close(e.done) })
}

func (e *Engine) releaseStreamLocked() {
	if e.ctrl != nil {
		// Clears the process-global mixer; see Release.
		speaker.Clear()
	}
	if e.streamer != nil {
		e.streamer.Close()
		e.streamer = nil
	}
	if e.file != nil {
		e.file.Close()
		e.file = nil
	}
	e.ctrl = nil
	e.prepared = false
}

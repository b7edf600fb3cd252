// Package playback normalizes a third-party streaming media engine into a
// uniform player lifecycle: a small finite state machine driven by engine
// notifications, transport controls, derived capability flags and a
// standardized event stream.
package playback

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"playkit/internal/engine"
	"playkit/internal/events"
	"playkit/internal/source"
	"playkit/internal/timer"
)

// Options configures a Playback instance.
type Options struct {
	// ProgressInterval is the progress sampling period. Zero means
	// timer.DefaultInterval.
	ProgressInterval time.Duration

	// Logger receives structured lifecycle logs. Nil means slog.Default().
	Logger *slog.Logger
}

// Playback owns one engine instance at a time and exposes the normalized
// transport surface. The per-instance mutex is the single marshaling point:
// transport commands, funneled engine notifications and timer ticks all
// serialize through it, so no transition or event trigger ever runs
// concurrently with another on the same instance.
//
// Event listeners are invoked synchronously on whichever serialized path
// triggered the event. They must not call back into transport methods.
type Playback struct {
	mu sync.Mutex

	id      uuid.UUID
	log     *slog.Logger
	emitter *events.Emitter
	factory engine.Factory
	sampler *timer.Timer

	uri  string
	mime string

	eng           engine.Engine
	media         source.Media
	state         State
	playWhenReady bool
	initialized   bool
	closed        bool
}

// New creates a playback instance for the given locator. The engine is not
// created until the first Play or Load.
func New(uri, mime string, factory engine.Factory, opts Options) *Playback {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	id := uuid.New()
	log = log.With("playback_id", id.String())

	p := &Playback{
		id:      id,
		log:     log,
		emitter: events.NewEmitter(log),
		factory: factory,
		uri:     uri,
		mime:    mime,
		state:   StateNone,
	}
	p.sampler = timer.New(opts.ProgressInterval, p.sampleProgress)
	return p
}

// On registers a listener for a normalized event.
func (p *Playback) On(t events.Type, l events.Listener) {
	p.emitter.On(t, l)
}

// State returns the current normalized state.
func (p *Playback) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Source returns the currently loaded media descriptor. Zero value before
// the first successful load.
func (p *Playback) Source() source.Media {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.media
}

// Duration returns the media duration, 0 when unknown.
func (p *Playback) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.eng == nil {
		return 0
	}
	return time.Duration(p.eng.Duration()) * time.Millisecond
}

// Position returns the current playback position.
func (p *Playback) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.eng == nil {
		return 0
	}
	return time.Duration(p.eng.Position()) * time.Millisecond
}

// CanPlay reports whether a Play call would be meaningful in the current
// state. Derived, never stored.
func (p *Playback) CanPlay() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StatePaused || p.state == StateIdle ||
		(p.state == StateStalled && !p.playWhenReady)
}

// CanPause reports whether a Pause call would be meaningful.
func (p *Playback) CanPause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StatePlaying || p.state == StateStalled
}

// CanSeek reports whether seeking is currently possible.
func (p *Playback) CanSeek() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.eng == nil || p.eng.Duration() == 0 {
		return false
	}
	return p.state != StateIdle && p.state != StateError
}

// Play starts or resumes playback, lazily creating the engine and loading
// the configured source on first use. It does not block on the engine; the
// transition to StatePlaying is driven by the engine's ready notification.
// Returns false when initialization fails.
func (p *Playback) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	if err := p.ensureInitializedLocked(); err != nil {
		p.log.Error("playback init failed", "uri", p.uri, "err", err)
		return false
	}
	p.emitLocked(events.WillPlay, nil)
	p.eng.SetPlayWhenReady(true)
	return true
}

// Pause requests a pause. Valid from any state; the engine treats redundant
// intent changes as no-ops.
func (p *Playback) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.eng == nil {
		return
	}
	p.emitLocked(events.WillPause, nil)
	p.eng.SetPlayWhenReady(false)
}

// Stop instructs the engine to stop. The engine's resulting idle
// notification drives the actual IDLE transition.
func (p *Playback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.eng == nil {
		return
	}
	p.stopLocked()
}

// Seek moves playback to the given position. DidSeek fires immediately after
// the engine seek is issued; the engine seek itself may still be in flight.
func (p *Playback) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.eng == nil {
		return
	}
	p.emitLocked(events.WillSeek, nil)
	p.eng.SeekTo(pos.Milliseconds())
	p.emitLocked(events.DidSeek, nil)
}

// Load resolves the locator into a typed media source and hands it to the
// engine's prepare step, creating the engine if needed. Returns
// source.ErrUnsupportedSourceType (wrapped) when inference fails; in that
// case no engine prepare happens. Loading resets the machine to StateNone so
// the engine's next idle notification yields READY again.
func (p *Playback) Load(uri, mime string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("load %q: playback closed", uri)
	}
	if err := p.loadLocked(uri, mime); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// Close tears the instance down: stops the sampler and releases the engine.
// Unconditional and idempotent.
func (p *Playback) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.sampler.Stop()
	if p.eng != nil {
		p.eng.Release()
		p.eng = nil
	}
	p.log.Debug("playback closed")
	return nil
}

// ensureInitializedLocked is the explicit init guard behind Play's lazy
// path: uninitialized instances get an engine plus an initial load, then
// Play proceeds with the actual play command.
func (p *Playback) ensureInitializedLocked() error {
	if p.initialized {
		return nil
	}
	if err := p.loadLocked(p.uri, p.mime); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

func (p *Playback) loadLocked(uri, mime string) error {
	media, err := source.Resolve(uri, mime)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if p.eng == nil {
		eng, err := p.factory(&engineAdapter{p: p})
		if err != nil {
			return fmt.Errorf("create engine: %w", err)
		}
		p.eng = eng
	}
	p.sampler.Stop()
	p.uri = uri
	p.mime = mime
	p.media = media
	p.setStateLocked(StateNone)
	p.log.Debug("loading source", "uri", uri, "content_type", media.Type.String())
	p.eng.Prepare(media)
	return nil
}

func (p *Playback) stopLocked() {
	p.emitLocked(events.WillStop, nil)
	p.eng.Stop()
}

// applyEngineStateLocked is the transition table, keyed by the engine's
// raw state. Unrecognized raw states cause no transition.
func (p *Playback) applyEngineStateLocked(playWhenReady bool, raw engine.RawState) {
	p.playWhenReady = playWhenReady

	switch raw {
	case engine.RawIdle:
		if p.state == StateNone {
			p.setStateLocked(StateIdle)
			p.emitLocked(events.Ready, nil)
		} else {
			p.sampler.Stop()
			p.setStateLocked(StateIdle)
			p.emitLocked(events.DidStop, nil)
		}
	case engine.RawEnded:
		p.emitLocked(events.DidComplete, nil)
		p.stopLocked()
		p.sampler.Stop()
		p.setStateLocked(StateIdle)
	case engine.RawBuffering:
		p.setStateLocked(StateStalled)
		p.emitLocked(events.Stalled, nil)
	case engine.RawReady:
		if playWhenReady {
			p.sampler.Start()
			p.setStateLocked(StatePlaying)
			p.emitLocked(events.Playing, nil)
		} else {
			p.setStateLocked(StatePaused)
			p.emitLocked(events.DidPause, nil)
		}
	default:
		// Unknown raw state from the engine: no transition.
	}
}

// reportErrorLocked surfaces an asynchronous engine fault as an ERROR event.
// A fatal fault additionally moves the machine to StateError and stops the
// sampler; the instance is unusable until the next Load. Load errors emit
// only, leaving the state untouched.
func (p *Playback) reportErrorLocked(err error, fatal bool) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	p.log.Warn("engine error", "fatal", fatal, "message", msg)
	p.emitLocked(events.Error, events.ErrorInfo{Message: msg})
	if fatal {
		p.sampler.Stop()
		p.setStateLocked(StateError)
	}
}

// sampleProgress runs on every timer tick: it reads buffered percentage and
// position from the engine and emits progress events. No state mutation.
func (p *Playback) sampleProgress() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.eng == nil {
		return
	}

	buffered := float64(p.eng.BufferedPercent())
	pos := p.eng.Position()
	dur := p.eng.Duration()

	positionPct := 0.0
	if dur != 0 {
		positionPct = float64(pos) / float64(dur) * 100
	}

	p.emitLocked(events.BufferUpdate, events.Progress{Percentage: buffered})
	p.emitLocked(events.PositionUpdate, events.Progress{
		Percentage: positionPct,
		Position:   time.Duration(pos) * time.Millisecond,
	})
}

func (p *Playback) setStateLocked(next State) {
	if p.state == next {
		return
	}
	p.log.Debug("state transition", "from", p.state.String(), "to", next.String())
	p.state = next
}

func (p *Playback) emitLocked(t events.Type, payload events.Payload) {
	p.emitter.Trigger(t, payload)
}

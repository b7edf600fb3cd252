package playback

import "playkit/internal/engine"

// engineAdapter translates engine-native notifications into state machine
// inputs. Engine callbacks arrive on the engine's own worker context; the
// adapter funnels every notification through the playback mutex so nothing
// races the state machine.
type engineAdapter struct {
	p *Playback
}

var _ engine.Listener = (*engineAdapter)(nil)

func (a *engineAdapter) OnStateChanged(playWhenReady bool, state engine.RawState) {
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	if a.p.closed {
		return
	}
	a.p.applyEngineStateLocked(playWhenReady, state)
}

func (a *engineAdapter) OnLoadError(err error) {
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	if a.p.closed {
		return
	}
	a.p.reportErrorLocked(err, false)
}

func (a *engineAdapter) OnFatalError(err error) {
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	if a.p.closed {
		return
	}
	a.p.reportErrorLocked(err, true)
}

package events

import (
	"log/slog"
	"sync"
)

// Listener receives events. Listeners run synchronously on the goroutine
// that triggered the event and must not block or call back into the
// playback transport surface.
type Listener func(Event)

// Emitter fans out events to registered listeners in registration order.
// A panicking listener is recovered and logged so that one failing observer
// cannot break event propagation for the others.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[Type][]Listener
	log       *slog.Logger
}

// NewEmitter creates an emitter. A nil logger falls back to slog.Default().
func NewEmitter(log *slog.Logger) *Emitter {
	if log == nil {
		log = slog.Default()
	}
	return &Emitter{
		listeners: make(map[Type][]Listener),
		log:       log,
	}
}

// On registers a listener for the given event type.
func (e *Emitter) On(t Type, l Listener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	e.listeners[t] = append(e.listeners[t], l)
	e.mu.Unlock()
}

// Trigger invokes every listener registered for t, in registration order.
// Delivery is at-most-once per call; there is no replay for late subscribers.
func (e *Emitter) Trigger(t Type, p Payload) {
	e.mu.RLock()
	ls := e.listeners[t]
	e.mu.RUnlock()

	ev := Event{Type: t, Payload: p}
	for _, l := range ls {
		e.invoke(l, ev)
	}
}

func (e *Emitter) invoke(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("event listener panicked",
				"event", ev.Type.String(),
				"panic", r)
		}
	}()
	l(ev)
}

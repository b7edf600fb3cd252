// Package engine defines the contract consumed from external media-playback
// engines. The playback layer owns exactly one engine instance at a time,
// created lazily on first play and released on teardown.
package engine

import "playkit/internal/source"

// RawState is an engine's native state enumeration, distinct from the
// normalized playback state.
type RawState int

const (
	RawUnknown RawState = iota
	RawIdle
	RawBuffering
	RawReady
	RawEnded
)

// String returns the raw state name.
func (s RawState) String() string {
	switch s {
	case RawIdle:
		return "idle"
	case RawBuffering:
		return "buffering"
	case RawReady:
		return "ready"
	case RawEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Listener receives asynchronous engine notifications.
//
// Engines deliver notifications from their own worker context and MUST NOT
// invoke listener methods synchronously from within an Engine method call;
// the playback layer serializes notifications against transport commands and
// a synchronous callback would deadlock that serialization.
type Listener interface {
	// OnStateChanged reports a native state change together with the
	// engine's current auto-play intent.
	OnStateChanged(playWhenReady bool, state RawState)

	// OnLoadError reports a failure while loading the prepared source.
	// err may be nil when the engine supplied no message.
	OnLoadError(err error)

	// OnFatalError reports an unrecoverable playback fault.
	// err may be nil when the engine supplied no message.
	OnFatalError(err error)
}

// Engine is the consumed media engine capability. Durations and positions
// are in milliseconds; a Duration of 0 means unknown.
type Engine interface {
	// Prepare hands a resolved media source to the engine. Load failures
	// are reported asynchronously through the Listener.
	Prepare(media source.Media)

	// SetPlayWhenReady sets the auto-play intent: playback proceeds as soon
	// as buffering permits when true, pauses when false.
	SetPlayWhenReady(on bool)

	// Stop halts playback. The engine's resulting idle notification is what
	// drives the normalized IDLE transition.
	Stop()

	// SeekTo moves the playback position to the given offset in ms.
	SeekTo(ms int64)

	Duration() int64
	Position() int64

	// BufferedPercent reports how much of the source is buffered, 0-100.
	BufferedPercent() int

	// Release frees all native resources. Idempotent.
	Release()
}

// Factory creates an engine bound to a listener. The playback layer calls it
// at most once per loaded source.
type Factory func(l Listener) (Engine, error)

// Package events defines the normalized playback event vocabulary and a
// synchronous emitter. Events decouple player internals from UI and
// analytics consumers: downstream code subscribes to the fixed vocabulary
// below and never sees engine-native callback shapes.
package events

import "time"

// Type identifies a normalized playback event.
type Type int

const (
	Ready Type = iota
	WillPlay
	Playing
	WillPause
	DidPause
	WillStop
	DidStop
	WillSeek
	DidSeek
	Stalled
	DidComplete
	Error
	BufferUpdate
	PositionUpdate
)

// String returns the event name.
func (t Type) String() string {
	switch t {
	case Ready:
		return "ready"
	case WillPlay:
		return "willPlay"
	case Playing:
		return "playing"
	case WillPause:
		return "willPause"
	case DidPause:
		return "didPause"
	case WillStop:
		return "willStop"
	case DidStop:
		return "didStop"
	case WillSeek:
		return "willSeek"
	case DidSeek:
		return "didSeek"
	case Stalled:
		return "stalled"
	case DidComplete:
		return "didComplete"
	case Error:
		return "error"
	case BufferUpdate:
		return "bufferUpdate"
	case PositionUpdate:
		return "positionUpdate"
	default:
		return "unknown"
	}
}

// Payload is the marker interface for event payloads. Each event type carries
// at most one payload schema; most events carry none.
type Payload interface {
	payload()
}

// Progress is the payload for BufferUpdate and PositionUpdate.
// For BufferUpdate only Percentage is set (buffered 0-100).
// For PositionUpdate Percentage is position relative to duration (0-100,
// 0 when duration is unknown) and Position is the playback position.
type Progress struct {
	Percentage float64
	Position   time.Duration
}

func (Progress) payload() {}

// ErrorInfo is the payload for Error events. Message may be empty when the
// engine reported a fault without a message.
type ErrorInfo struct {
	Message string
}

func (ErrorInfo) payload() {}

// Event is a named signal plus its optional payload. Events are transient:
// not persisted, not queued, delivered synchronously at trigger time.
type Event struct {
	Type    Type
	Payload Payload
}

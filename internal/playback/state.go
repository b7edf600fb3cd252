package playback

// State is the normalized playback state.
//
// The machine starts in StateNone and moves through:
//
//	StateNone ──(engine idle)──▶ StateIdle ──(ready+intent)──▶ StatePlaying
//	StatePlaying ⇄ StatePaused / StateStalled
//	any ──(stop / completion, via engine idle)──▶ StateIdle
//	any ──(fatal engine error)──▶ StateError (terminal until reload)
//
// State is mutated only by the machine in response to engine notifications
// or transport commands; consumers read it through Playback.State().
type State int

const (
	StateNone State = iota
	StateIdle
	StatePlaying
	StatePaused
	StateStalled
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStalled:
		return "stalled"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// IsActive returns true while an engine session is underway.
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused || s == StateStalled
}

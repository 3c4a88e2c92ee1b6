package devicebridge

// State is the lifecycle state of the device-access session.
type State int32

const (
	// StateUnrequested is the initial state; no platform request was issued.
	StateUnrequested State = iota
	// StatePending means the platform request is in flight.
	StatePending
	// StateGranted means the device tables are populated.
	StateGranted
	// StateDenied means the platform refused access or failed.
	StateDenied
	// StateUnsupported means the platform has no MIDI capability.
	StateUnsupported
)

func (s State) String() string {
	switch s {
	case StateUnrequested:
		return "unrequested"
	case StatePending:
		return "pending"
	case StateGranted:
		return "granted"
	case StateDenied:
		return "denied"
	case StateUnsupported:
		return "unsupported"
	default:
		return "invalid"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateGranted || s == StateDenied || s == StateUnsupported
}

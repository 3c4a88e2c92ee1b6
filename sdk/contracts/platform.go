package contracts

import (
	"context"
	"errors"
)

// Errors returned by access providers. The bridge inspects them with
// errors.Is to tell a denial from a platform without MIDI.
var (
	ErrUnsupported   = errors.New("MIDI access is not supported on this platform")
	ErrAccessDenied  = errors.New("MIDI access denied")
	ErrNoMIDIDevices = errors.New("no MIDI devices found")
)

// AccessRequest carries the feature flags of an access request.
type AccessRequest struct {
	SysEx bool // Raw system-exclusive access. The bridge never sets it.
}

// AccessProvider is the platform's device-access capability.
// RequestAccess may block; the bridge always calls it off the host's
// control flow. On failure it returns an untyped nil Access.
type AccessProvider interface {
	RequestAccess(ctx context.Context, req AccessRequest) (Access, error)
}

// Access is a granted device-access session. Inputs and Outputs return the
// devices visible at grant time in platform enumeration order.
type Access interface {
	Inputs() []InputPort
	Outputs() []Port
	Close() error
}

// Port is a native MIDI endpoint.
type Port interface {
	Name() string
	Manufacturer() string
}

// InputPort is a native MIDI source that can deliver messages.
type InputPort interface {
	Port
	// Listen installs handler for every inbound message and returns a
	// function that removes it. handler may be called from any goroutine;
	// the slice is only valid for the duration of the call.
	Listen(handler func(data []byte)) (stop func(), err error)
}

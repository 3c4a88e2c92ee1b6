package midiweb

import "github.com/leandrodaf/midibridge/sdk/contracts"

// classifyRejection maps the DOMException name of a rejected
// requestMIDIAccess to the provider error it stands for.
func classifyRejection(name string) error {
	switch name {
	case "NotSupportedError", "InvalidStateError":
		return contracts.ErrUnsupported
	default:
		// NotAllowedError, SecurityError, AbortError and anything unknown
		// leave the host without access.
		return contracts.ErrAccessDenied
	}
}

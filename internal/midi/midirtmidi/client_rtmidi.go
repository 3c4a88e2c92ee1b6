//go:build cgo && (linux || freebsd || netbsd || openbsd)

// Package midirtmidi provides MIDI access through RtMidi (ALSA or JACK) on
// Unix systems.
package midirtmidi

import (
	"github.com/leandrodaf/midibridge/internal/midi/gomidiaccess"
	"github.com/leandrodaf/midibridge/sdk/contracts"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// NewAccessProvider creates a provider that opens an RtMidi driver per
// access request.
func NewAccessProvider(options *contracts.BridgeOptions) contracts.AccessProvider {
	options.Logger.Info("MIDI client created for RtMidi")
	return gomidiaccess.New(func() (drivers.Driver, error) {
		return rtmididrv.New()
	}, options.Logger)
}

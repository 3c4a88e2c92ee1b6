//go:build !cgo || !(linux || freebsd || netbsd || openbsd)

// Package midirtmidi provides MIDI access through RtMidi (ALSA or JACK) on
// Unix systems.
package midirtmidi

import (
	"context"
	"fmt"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// DummyAccessProvider is used without cgo or outside Unix systems.
type DummyAccessProvider struct {
	logger contracts.Logger
}

func NewAccessProvider(options *contracts.BridgeOptions) contracts.AccessProvider {
	options.Logger.Info("Using dummy MIDI client; RtMidi requires cgo on a Unix system")
	return &DummyAccessProvider{logger: options.Logger}
}

func (m *DummyAccessProvider) RequestAccess(context.Context, contracts.AccessRequest) (contracts.Access, error) {
	m.logger.Warn("RequestAccess called on dummy MIDI client")
	return nil, fmt.Errorf("RtMidi: %w", contracts.ErrUnsupported)
}

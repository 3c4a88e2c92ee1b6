//go:build !(js && wasm)

// Package midiweb provides MIDI access through the browser's Web MIDI API.
package midiweb

import (
	"context"
	"fmt"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// DummyAccessProvider is used outside the browser.
type DummyAccessProvider struct {
	logger contracts.Logger
}

func NewAccessProvider(options *contracts.BridgeOptions) contracts.AccessProvider {
	options.Logger.Info("Using dummy MIDI client outside the browser")
	return &DummyAccessProvider{logger: options.Logger}
}

func (m *DummyAccessProvider) RequestAccess(context.Context, contracts.AccessRequest) (contracts.Access, error) {
	m.logger.Warn("RequestAccess called on dummy MIDI client")
	return nil, fmt.Errorf("Web MIDI: %w", contracts.ErrUnsupported)
}

//go:build !darwin || !cgo
// +build !darwin !cgo

package mididarwin

import (
	"context"
	"fmt"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// DummyAccessProvider stands in for CoreMIDI on other systems.
type DummyAccessProvider struct {
	logger contracts.Logger
}

func NewAccessProvider(options *contracts.BridgeOptions) contracts.AccessProvider {
	options.Logger.Info("Using dummy MIDI client for non-macOS system or a build without cgo")
	return &DummyAccessProvider{logger: options.Logger}
}

func (m *DummyAccessProvider) RequestAccess(context.Context, contracts.AccessRequest) (contracts.Access, error) {
	m.logger.Warn("RequestAccess called on dummy MIDI client")
	return nil, fmt.Errorf("CoreMIDI: %w", contracts.ErrUnsupported)
}

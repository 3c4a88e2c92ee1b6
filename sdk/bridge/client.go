package bridge

import (
	"github.com/leandrodaf/midibridge/internal/devicebridge"
	"github.com/leandrodaf/midibridge/internal/surface"
	"github.com/leandrodaf/midibridge/internal/surface/ggcanvas"
	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// Bridge bundles the two halves of the host bridge.
type Bridge struct {
	// Devices owns MIDI access, the device tables and inbound delivery.
	Devices *devicebridge.Bridge
	// Surface forwards drawing calls to the current rendering surface.
	Surface *surface.Forwarder
	// Canvas is the offscreen surface created when no surface option was
	// given and the program does not run in a browser. It is nil otherwise.
	Canvas *ggcanvas.Canvas

	logger contracts.Logger
}

// New creates a bridge with the specified options.
// It applies default options, picks the access provider for the current
// operating system and the default rendering surface.
//
// opts ...contracts.Option: A variadic list of option functions to customize the configuration.
//
// Returns:
//   - *Bridge: The device bridge and surface forwarder.
//   - error: An error, if any occurred during initialization.
func New(opts ...contracts.Option) (*Bridge, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	if options.AccessProvider == nil {
		options.AccessProvider = NewAccessProvider(&options)
	}

	var offscreen *ggcanvas.Canvas
	if options.Surface == nil {
		options.Surface, offscreen = NewSurface(&options)
	}

	devices, err := devicebridge.NewBridge(&options)
	if err != nil {
		return nil, err
	}

	return &Bridge{
		Devices: devices,
		Surface: surface.NewForwarder(options.Surface, options.Logger),
		Canvas:  offscreen,
		logger:  options.Logger,
	}, nil
}

// Logger returns the logger the bridge was configured with.
func (b *Bridge) Logger() contracts.Logger {
	return b.logger
}

// Close releases MIDI access and the offscreen surface.
func (b *Bridge) Close() error {
	err := b.Devices.Close()
	if b.Canvas != nil {
		if cerr := b.Canvas.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

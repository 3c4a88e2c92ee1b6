package bridge

import (
	"context"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midibridge/internal/midi/mididarwin"
	"github.com/leandrodaf/midibridge/internal/midi/midirtmidi"
	"github.com/leandrodaf/midibridge/internal/midi/midiweb"
	"github.com/leandrodaf/midibridge/internal/midi/midiwindows"
	"github.com/leandrodaf/midibridge/internal/surface/ggcanvas"
	"github.com/leandrodaf/midibridge/internal/surface/jscanvas"
	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI provider.
var ErrUnsupportedOS = fmt.Errorf("unsupported operating system: %w", contracts.ErrUnsupported)

// providerInitializers maps OS names to MIDI access provider initializers.
var providerInitializers = map[string]func(*contracts.BridgeOptions) contracts.AccessProvider{
	"darwin":  mididarwin.NewAccessProvider,  // CoreMIDI
	"windows": midiwindows.NewAccessProvider, // winmm
	"js":      midiweb.NewAccessProvider,     // Web MIDI
	"linux":   midirtmidi.NewAccessProvider,  // ALSA through RtMidi
	"freebsd": midirtmidi.NewAccessProvider,
	"netbsd":  midirtmidi.NewAccessProvider,
	"openbsd": midirtmidi.NewAccessProvider,
}

// NewAccessProvider returns the access provider for the current operating
// system. On systems without one, every request fails with ErrUnsupportedOS.
func NewAccessProvider(opts *contracts.BridgeOptions) contracts.AccessProvider {
	return accessProviderFor(runtime.GOOS, opts)
}

func accessProviderFor(goos string, opts *contracts.BridgeOptions) contracts.AccessProvider {
	if initializer, exists := providerInitializers[goos]; exists {
		return initializer(opts)
	}
	opts.Logger.Warn("No MIDI provider for this operating system",
		opts.Logger.Field().String("os", goos))
	return unsupportedProvider{err: fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)}
}

// DisabledProvider returns a provider that never grants access, for hosts
// that run without MIDI.
func DisabledProvider() contracts.AccessProvider {
	return unsupportedProvider{err: fmt.Errorf("MIDI disabled: %w", contracts.ErrUnsupported)}
}

type unsupportedProvider struct {
	err error
}

func (p unsupportedProvider) RequestAccess(context.Context, contracts.AccessRequest) (contracts.Access, error) {
	return nil, p.err
}

// NewSurface returns the default rendering surface: the page's canvas
// element in a browser, an offscreen raster otherwise. The raster is also
// returned so callers can encode it.
func NewSurface(opts *contracts.BridgeOptions) (contracts.SurfaceResolver, *ggcanvas.Canvas) {
	if runtime.GOOS == "js" {
		return jscanvas.NewResolver(opts.CanvasConfig.ElementID), nil
	}
	c := ggcanvas.New(opts.CanvasConfig.Width, opts.CanvasConfig.Height, opts.Logger)
	return contracts.StaticSurface(c), c
}

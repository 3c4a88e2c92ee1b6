package contracts

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the CoreMIDI client.
}

// CanvasConfig describes the rendering surface the bridge draws on.
type CanvasConfig struct {
	ElementID string // DOM element id on js/wasm.
	Width     int    // Offscreen surface width.
	Height    int    // Offscreen surface height.
}

// BridgeOptions defines the configuration of the device bridge and the
// surface forwarder.
type BridgeOptions struct {
	Logger         Logger          // Logger for lifecycle events and swallowed failures.
	LogLevel       LogLevel        // Level of logging to use.
	LogFilePath    string          // Log file; empty logs to the console.
	MessageFilter  *MessageFilter  // Optional filter applied before OnMIDIMessage.
	CoreMIDIConfig *CoreMIDIConfig // Configuration specific to CoreMIDI.
	CanvasConfig   *CanvasConfig   // Rendering surface configuration.
	AccessProvider AccessProvider  // Platform device access; chosen per OS when nil.
	Surface        SurfaceResolver // Rendering surface; an offscreen raster when nil.
	Host           Host            // Outbound callbacks; may be set later on the bridge.
}

// Option is a function that modifies BridgeOptions.
type Option func(*BridgeOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *BridgeOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *BridgeOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends log output to path instead of the console.
func WithLogFile(path string) Option {
	return func(opts *BridgeOptions) {
		opts.LogFilePath = path
	}
}

// WithMessageFilter drops inbound messages whose command is not listed.
func WithMessageFilter(filter MessageFilter) Option {
	return func(opts *BridgeOptions) {
		opts.MessageFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *BridgeOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithCanvasConfig sets the rendering surface configuration.
func WithCanvasConfig(config CanvasConfig) Option {
	return func(opts *BridgeOptions) {
		opts.CanvasConfig = &config
	}
}

// WithAccessProvider overrides the platform device-access provider.
func WithAccessProvider(p AccessProvider) Option {
	return func(opts *BridgeOptions) {
		opts.AccessProvider = p
	}
}

// WithSurface overrides the rendering surface resolver.
func WithSurface(s SurfaceResolver) Option {
	return func(opts *BridgeOptions) {
		opts.Surface = s
	}
}

// WithHost sets the outbound callback receiver.
func WithHost(h Host) Option {
	return func(opts *BridgeOptions) {
		opts.Host = h
	}
}

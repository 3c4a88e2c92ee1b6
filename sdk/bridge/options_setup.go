package bridge

import (
	"github.com/leandrodaf/midibridge/internal/logger"
	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// DefaultCanvasID is the DOM element id used when none is configured.
const DefaultCanvasID = "canvas"

// applyDefaultOptions sets default values for BridgeOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify BridgeOptions.
//
// Returns:
//   - contracts.BridgeOptions: The finalized options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.BridgeOptions, error) {
	options := &contracts.BridgeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}

	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "GO MIDI Bridge"}
	}

	canvas := contracts.CanvasConfig{}
	if options.CanvasConfig != nil {
		canvas = *options.CanvasConfig
	}
	if canvas.ElementID == "" {
		canvas.ElementID = DefaultCanvasID
	}
	if canvas.Width <= 0 {
		canvas.Width = 640
	}
	if canvas.Height <= 0 {
		canvas.Height = 480
	}
	options.CanvasConfig = &canvas

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}

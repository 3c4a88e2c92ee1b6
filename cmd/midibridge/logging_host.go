package main

import (
	"github.com/leandrodaf/midibridge/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// loggingHost logs each callback before handing it to the guest.
type loggingHost struct {
	next   contracts.Host
	logger contracts.Logger
}

func (h *loggingHost) OnMIDIReady() {
	h.logger.Debug("MIDI ready")
	h.next.OnMIDIReady()
}

func (h *loggingHost) OnMIDIMessage(deviceIndex, status, data1, data2 int) {
	raw := midi.Message{byte(status), byte(data1), byte(data2)}
	h.logger.Debug("MIDI message",
		h.logger.Field().Int("device", deviceIndex),
		h.logger.Field().String("type", raw.Type().String()),
		h.logger.Field().String("message", raw.String()))
	h.next.OnMIDIMessage(deviceIndex, status, data1, data2)
}

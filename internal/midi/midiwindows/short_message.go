package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// decodeShortMessage unpacks the dwParam1 of a MIM_DATA callback: status in
// the low byte, then up to two data bytes. Unused bytes are trimmed.
func decodeShortMessage(param uint32) []byte {
	status := byte(param)
	n := contracts.MessageLength(status)
	if n == 0 {
		return nil
	}
	msg := []byte{status, byte(param >> 8), byte(param >> 16)}
	return msg[:n]
}

// manufacturerLabel formats the winmm manufacturer and product ids.
func manufacturerLabel(mid, pid uint16) string {
	if mid == 0 && pid == 0 {
		return ""
	}
	return fmt.Sprintf("MID: %d PID: %d", mid, pid)
}

// shutdown stops then closes an open device. Close and release run even
// when stopping fails, since the handle is no longer tracked; the first
// error is returned.
func shutdown(stop, close func() error, release func()) error {
	err := stop()
	if cerr := close(); err == nil {
		err = cerr
	}
	release()
	return err
}

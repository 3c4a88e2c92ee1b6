package devicebridge

import (
	"fmt"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

type inputEntry struct {
	info contracts.DeviceInfo
	port contracts.InputPort
}

// deviceTables is the immutable snapshot published at grant time.
type deviceTables struct {
	inputs  []inputEntry
	outputs []contracts.DeviceInfo
}

var emptyTables = &deviceTables{}

// safeSnapshot snapshots access and turns a panicking provider into a
// denied session.
func safeSnapshot(access contracts.Access) (t *deviceTables, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w: enumerating devices: %v", contracts.ErrAccessDenied, r)
		}
	}()
	return snapshotTables(access), nil
}

// snapshotTables captures the devices of access in platform order.
func snapshotTables(access contracts.Access) *deviceTables {
	ins := access.Inputs()
	outs := access.Outputs()

	t := &deviceTables{
		inputs:  make([]inputEntry, 0, len(ins)),
		outputs: make([]contracts.DeviceInfo, 0, len(outs)),
	}
	for i, port := range ins {
		if port == nil {
			continue
		}
		t.inputs = append(t.inputs, inputEntry{
			info: deviceInfo(len(t.inputs), port, fmt.Sprintf("MIDI In %d", i+1)),
			port: port,
		})
	}
	for i, port := range outs {
		if port == nil {
			continue
		}
		t.outputs = append(t.outputs, deviceInfo(len(t.outputs), port, fmt.Sprintf("MIDI Out %d", i+1)))
	}
	return t
}

func deviceInfo(index int, port contracts.Port, fallback string) contracts.DeviceInfo {
	name := port.Name()
	if name == "" {
		name = fallback
	}
	return contracts.DeviceInfo{
		Index:        index,
		Name:         name,
		Manufacturer: port.Manufacturer(),
	}
}

func (t *deviceTables) inputName(index int) string {
	if index < 0 || index >= len(t.inputs) {
		return contracts.UnknownDeviceName
	}
	return t.inputs[index].info.Name
}

func (t *deviceTables) outputName(index int) string {
	if index < 0 || index >= len(t.outputs) {
		return contracts.UnknownDeviceName
	}
	return t.outputs[index].Name
}

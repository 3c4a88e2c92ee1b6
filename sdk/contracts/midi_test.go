package contracts

import "testing"

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Message
		ok   bool
	}{
		{"note on", []byte{0x90, 0x40, 0x7F}, Message{DeviceIndex: 2, Status: 0x90, Data1: 0x40, Data2: 0x7F}, true},
		{"clock", []byte{0xF8}, Message{DeviceIndex: 2, Status: 0xF8}, true},
		{"program change", []byte{0xC3, 0x05}, Message{DeviceIndex: 2, Status: 0xC3, Data1: 0x05}, true},
		{"extra bytes ignored", []byte{0xB0, 0x07, 0x64, 0x99}, Message{DeviceIndex: 2, Status: 0xB0, Data1: 0x07, Data2: 0x64}, true},
		{"empty", nil, Message{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeMessage(2, tt.data)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("DecodeMessage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMessageCommandAndChannel(t *testing.T) {
	msg := Message{Status: 0x93}
	if msg.Command() != NoteOn {
		t.Errorf("Command() = %#x, want %#x", msg.Command(), NoteOn)
	}
	if msg.Channel() != 3 {
		t.Errorf("Channel() = %d, want 3", msg.Channel())
	}
	if (Message{Status: 0xFE}).Command() != System {
		t.Error("active sensing should report System")
	}
}

func TestMessageFilterAllows(t *testing.T) {
	var nilFilter *MessageFilter
	if !nilFilter.Allows(Message{Status: 0xB0}) {
		t.Error("nil filter must allow everything")
	}

	f := &MessageFilter{Commands: []MIDICommand{NoteOn, NoteOff}}
	if !f.Allows(Message{Status: 0x91}) {
		t.Error("note on should pass")
	}
	if f.Allows(Message{Status: 0xB0}) {
		t.Error("control change should be filtered")
	}
	if f.Allows(Message{Status: 0xF8}) {
		t.Error("clock should be filtered")
	}
}

func TestHostFuncs(t *testing.T) {
	var ready bool
	var got Message
	h := HostFuncs{
		Ready:   func() { ready = true },
		Message: func(m Message) { got = m },
	}
	h.OnMIDIReady()
	h.OnMIDIMessage(1, 0x80, 60, 0)

	if !ready {
		t.Error("Ready not called")
	}
	want := Message{DeviceIndex: 1, Status: 0x80, Data1: 60}
	if got != want {
		t.Errorf("Message = %+v, want %+v", got, want)
	}

	// Zero value must not panic.
	HostFuncs{}.OnMIDIReady()
	HostFuncs{}.OnMIDIMessage(0, 0, 0, 0)
}

package contracts

// MIDICommand is the high nibble of a channel-voice status byte.
type MIDICommand byte

const (
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// PolyAftertouch is the MIDI command for polyphonic key pressure (0xA0).
	PolyAftertouch MIDICommand = 0xA0
	// ControlChange is the MIDI command for a controller change (0xB0).
	ControlChange MIDICommand = 0xB0
	// ProgramChange is the MIDI command for a program change (0xC0).
	ProgramChange MIDICommand = 0xC0
	// ChannelAftertouch is the MIDI command for channel pressure (0xD0).
	ChannelAftertouch MIDICommand = 0xD0
	// PitchBend is the MIDI command for a pitch bend change (0xE0).
	PitchBend MIDICommand = 0xE0
	// System covers system common and realtime messages (0xF0-0xFF).
	System MIDICommand = 0xF0
)

// Message is an inbound MIDI message attributed to an input table index.
type Message struct {
	DeviceIndex int
	Status      byte
	Data1       byte // Zero when the raw message had fewer than two bytes.
	Data2       byte // Zero when the raw message had fewer than three bytes.
}

// DecodeMessage decodes raw bytes received from the input at deviceIndex.
// Missing trailing bytes are zero-padded. ok is false for an empty message.
func DecodeMessage(deviceIndex int, data []byte) (msg Message, ok bool) {
	if len(data) == 0 {
		return Message{}, false
	}
	msg = Message{DeviceIndex: deviceIndex, Status: data[0]}
	if len(data) > 1 {
		msg.Data1 = data[1]
	}
	if len(data) > 2 {
		msg.Data2 = data[2]
	}
	return msg, true
}

// Command returns the command nibble of the status byte.
// System messages (0xF0-0xFF) all report System.
func (m Message) Command() MIDICommand {
	if m.Status >= 0xF0 {
		return System
	}
	return MIDICommand(m.Status & 0xF0)
}

// Channel returns the zero-based channel of a channel-voice message.
func (m Message) Channel() int {
	return int(m.Status & 0x0F)
}

// MessageFilter restricts which commands reach the host. A nil filter or an
// empty command list lets every message through.
type MessageFilter struct {
	Commands []MIDICommand // Commands allowed through.
}

// Allows reports whether msg passes the filter.
func (f *MessageFilter) Allows(msg Message) bool {
	if f == nil || len(f.Commands) == 0 {
		return true
	}
	cmd := msg.Command()
	for _, allowed := range f.Commands {
		if cmd == allowed {
			return true
		}
	}
	return false
}

// Host is the outbound call surface. Both methods are invoked only from the
// bridge's dispatch loop, never from platform goroutines.
type Host interface {
	// OnMIDIReady fires once, after both device tables are populated.
	OnMIDIReady()
	// OnMIDIMessage fires per inbound message once inputs are open.
	OnMIDIMessage(deviceIndex, status, data1, data2 int)
}

// HostFuncs adapts plain functions to Host. Nil fields are skipped.
type HostFuncs struct {
	Ready   func()
	Message func(msg Message)
}

// OnMIDIReady implements Host.
func (h HostFuncs) OnMIDIReady() {
	if h.Ready != nil {
		h.Ready()
	}
}

// OnMIDIMessage implements Host.
func (h HostFuncs) OnMIDIMessage(deviceIndex, status, data1, data2 int) {
	if h.Message != nil {
		h.Message(Message{
			DeviceIndex: deviceIndex,
			Status:      byte(status),
			Data1:       byte(data1),
			Data2:       byte(data2),
		})
	}
}

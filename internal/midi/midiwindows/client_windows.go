//go:build windows
// +build windows

package midiwindows

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/midibridge/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_LONGDATA  = 0x3C4 // Sysex buffer returned
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs  = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps  = winmm.NewProc("midiInGetDevCapsW")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiInOpen        = winmm.NewProc("midiInOpen")
	procMidiInStart       = winmm.NewProc("midiInStart")
	procMidiInStop        = winmm.NewProc("midiInStop")
	procMidiInClose       = winmm.NewProc("midiInClose")
)

// Callbacks created with windows.NewCallback are never released, so a single
// one serves every open device. dwInstance carries a registry id.
var (
	callbackOnce sync.Once
	callbackPtr  uintptr

	registryMu sync.Mutex
	registry   = map[uintptr]*listener{}
	nextID     uintptr
)

func midiCallback() uintptr {
	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(midiInCallback)
	})
	return callbackPtr
}

type listener struct {
	handler func([]byte)
	logger  contracts.Logger
	name    string
}

// AccessProvider grants access to the winmm MIDI devices.
type AccessProvider struct {
	logger contracts.Logger
}

// NewAccessProvider creates a winmm provider.
func NewAccessProvider(options *contracts.BridgeOptions) contracts.AccessProvider {
	options.Logger.Info("MIDI client created for Windows")
	return &AccessProvider{logger: options.Logger}
}

// RequestAccess enumerates input and output devices. winmm never prompts.
func (p *AccessProvider) RequestAccess(ctx context.Context, _ contracts.AccessRequest) (contracts.Access, error) {
	if err := winmm.Load(); err != nil {
		return nil, fmt.Errorf("winmm: %w", contracts.ErrUnsupported)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := &access{open: map[*inPort]HMIDIIN{}}

	r0, _, _ := procMidiInGetNumDevs.Call()
	for i := uint32(0); i < uint32(r0); i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			p.logger.Warn("Failed to get information for MIDI input device",
				p.logger.Field().Int("deviceID", int(i)))
			continue
		}
		a.inputs = append(a.inputs, &inPort{
			id:           i,
			name:         windows.UTF16ToString(caps.szPname[:]),
			manufacturer: manufacturerLabel(caps.wMid, caps.wPid),
			access:       a,
			logger:       p.logger,
		})
	}

	r0, _, _ = procMidiOutGetNumDevs.Call()
	for i := uint32(0); i < uint32(r0); i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			p.logger.Warn("Failed to get information for MIDI output device",
				p.logger.Field().Int("deviceID", int(i)))
			continue
		}
		a.outputs = append(a.outputs, outPort{
			name:         windows.UTF16ToString(caps.szPname[:]),
			manufacturer: manufacturerLabel(caps.wMid, caps.wPid),
		})
	}

	return a, nil
}

type access struct {
	inputs  []contracts.InputPort
	outputs []contracts.Port

	mu   sync.Mutex
	open map[*inPort]HMIDIIN
}

func (a *access) Inputs() []contracts.InputPort { return a.inputs }
func (a *access) Outputs() []contracts.Port     { return a.outputs }

// Close stops and closes every device that is still open.
func (a *access) Close() error {
	a.mu.Lock()
	ports := make([]*inPort, 0, len(a.open))
	for port := range a.open {
		ports = append(ports, port)
	}
	a.mu.Unlock()

	var firstErr error
	for _, port := range ports {
		if err := port.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type outPort struct {
	name         string
	manufacturer string
}

func (p outPort) Name() string         { return p.name }
func (p outPort) Manufacturer() string { return p.manufacturer }

type inPort struct {
	id           uint32
	name         string
	manufacturer string
	access       *access
	logger       contracts.Logger
	instance     uintptr
}

func (p *inPort) Name() string         { return p.name }
func (p *inPort) Manufacturer() string { return p.manufacturer }

// Listen opens the device and starts input. winmm allows a single open
// handle per device, so a second Listen fails until stop is called.
func (p *inPort) Listen(handler func(data []byte)) (func(), error) {
	p.access.mu.Lock()
	defer p.access.mu.Unlock()

	if _, ok := p.access.open[p]; ok {
		return nil, fmt.Errorf("MIDI device %d is already open", p.id)
	}

	registryMu.Lock()
	nextID++
	p.instance = nextID
	registry[p.instance] = &listener{handler: handler, logger: p.logger, name: p.name}
	registryMu.Unlock()

	var handle HMIDIIN
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&handle)),
		uintptr(p.id),
		midiCallback(),
		p.instance,
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		p.unregister()
		p.logger.Error("Failed to open MIDI device",
			p.logger.Field().Int("deviceID", int(p.id)),
			p.logger.Field().Error("error", err))
		return nil, fmt.Errorf("failed to open MIDI device %d: %v", p.id, err)
	}

	r1, _, err = procMidiInStart.Call(uintptr(handle))
	if r1 != 0 {
		procMidiInClose.Call(uintptr(handle))
		p.unregister()
		p.logger.Error("Failed to start MIDI capture",
			p.logger.Field().Int("deviceID", int(p.id)),
			p.logger.Field().Error("error", err))
		return nil, fmt.Errorf("failed to start MIDI device %d: %v", p.id, err)
	}

	p.access.open[p] = handle
	p.logger.Info("MIDI device connected",
		p.logger.Field().Int("deviceID", int(p.id)),
		p.logger.Field().String("deviceName", p.name))

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := p.close(); err != nil {
				p.logger.Error("Failed to close MIDI device",
					p.logger.Field().Int("deviceID", int(p.id)),
					p.logger.Field().Error("error", err))
			}
		})
	}, nil
}

func (p *inPort) close() error {
	p.access.mu.Lock()
	handle, ok := p.access.open[p]
	delete(p.access.open, p)
	p.access.mu.Unlock()
	if !ok {
		return nil
	}

	return shutdown(
		func() error {
			if r1, _, err := procMidiInStop.Call(uintptr(handle)); r1 != 0 {
				return fmt.Errorf("failed to stop MIDI capture: %v", err)
			}
			return nil
		},
		func() error {
			if r1, _, err := procMidiInClose.Call(uintptr(handle)); r1 != 0 {
				return fmt.Errorf("failed to close MIDI device: %v", err)
			}
			return nil
		},
		p.unregister,
	)
}

func (p *inPort) unregister() {
	registryMu.Lock()
	delete(registry, p.instance)
	registryMu.Unlock()
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uintptr, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	registryMu.Lock()
	l := registry[dwInstance]
	registryMu.Unlock()
	if l == nil {
		return 0
	}

	switch wMsg {
	case MIM_OPEN:
		l.logger.Debug("MIDI device opened", l.logger.Field().String("deviceName", l.name))
	case MIM_CLOSE:
		l.logger.Debug("MIDI device closed", l.logger.Field().String("deviceName", l.name))
	case MIM_DATA, MIM_MOREDATA:
		if msg := decodeShortMessage(uint32(dwParam1)); msg != nil {
			l.handler(msg)
		}
	case MIM_LONGDATA:
		l.logger.Debug("Sysex buffer ignored", l.logger.Field().String("deviceName", l.name))
	case MIM_ERROR, MIM_LONGERROR:
		l.logger.Error("MIDI error",
			l.logger.Field().String("deviceName", l.name),
			l.logger.Field().Uint64("msg", uint64(wMsg)))
	default:
		l.logger.Warn("Unknown MIDI message", l.logger.Field().Uint64("msg", uint64(wMsg)))
	}

	return 0
}

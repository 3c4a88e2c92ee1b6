//go:build darwin && cgo
// +build darwin,cgo

package mididarwin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/midibridge/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for CoreMIDI connection issues.
var (
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// AccessProvider grants access to CoreMIDI sources and destinations.
type AccessProvider struct {
	logger     contracts.Logger
	clientName string

	clientOnce sync.Once
	client     coremidi.Client
	clientErr  error
}

// NewAccessProvider creates a CoreMIDI provider. The CoreMIDI client is
// created on the first request.
func NewAccessProvider(options *contracts.BridgeOptions) contracts.AccessProvider {
	name := "GO MIDI Client"
	if options.CoreMIDIConfig != nil && options.CoreMIDIConfig.ClientName != "" {
		name = options.CoreMIDIConfig.ClientName
	}
	return &AccessProvider{logger: options.Logger, clientName: name}
}

// RequestAccess snapshots the CoreMIDI endpoints using the shared client.
// CoreMIDI never prompts, so the context only guards against a caller that
// already gave up.
func (p *AccessProvider) RequestAccess(ctx context.Context, _ contracts.AccessRequest) (contracts.Access, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// One CoreMIDI client serves every request; the framework keeps it for
	// the life of the process.
	p.clientOnce.Do(func() {
		p.client, p.clientErr = coremidi.NewClient(p.clientName)
		if p.clientErr == nil {
			p.logger.Info("MIDI client successfully created",
				p.logger.Field().String("clientName", p.clientName))
		}
	})
	if p.clientErr != nil {
		return nil, fmt.Errorf("create CoreMIDI client: %w", p.clientErr)
	}
	client := p.client

	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}

	a := &access{conns: make(map[*sourcePort]internalPortConnection)}
	for _, source := range sources {
		a.inputs = append(a.inputs, &sourcePort{
			source: source,
			client: client,
			access: a,
			logger: p.logger,
		})
	}
	for _, dest := range destinations {
		a.outputs = append(a.outputs, destinationPort{dest: dest})
	}
	return a, nil
}

type access struct {
	inputs  []contracts.InputPort
	outputs []contracts.Port

	mu    sync.Mutex
	conns map[*sourcePort]internalPortConnection
}

func (a *access) Inputs() []contracts.InputPort { return a.inputs }
func (a *access) Outputs() []contracts.Port     { return a.outputs }

// Close disconnects every source that is still connected.
func (a *access) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for port, conn := range a.conns {
		conn.Disconnect()
		port.slot.clear()
		delete(a.conns, port)
	}
	return nil
}

type destinationPort struct {
	dest coremidi.Destination
}

func (p destinationPort) Name() string         { return p.dest.Name() }
func (p destinationPort) Manufacturer() string { return p.dest.Entity().Manufacturer() }

type sourcePort struct {
	source coremidi.Source
	client coremidi.Client
	access *access
	logger contracts.Logger

	slot      handlerSlot
	portMu    sync.Mutex
	inputPort *coremidi.InputPort
}

func (p *sourcePort) Name() string         { return p.source.Name() }
func (p *sourcePort) Manufacturer() string { return p.source.Entity().Manufacturer() }

// Listen connects the source's input port, creating it on first use. A
// CoreMIDI packet may carry several messages; each one is delivered
// separately.
func (p *sourcePort) Listen(handler func(data []byte)) (func(), error) {
	inputPort, err := p.port()
	if err != nil {
		return nil, err
	}

	p.slot.set(handler)
	conn, err := inputPort.Connect(p.source)
	if err != nil {
		p.slot.clear()
		p.logger.Error(ErrMIDIConnectionError.Error(),
			p.logger.Field().String("deviceName", p.source.Name()))
		return nil, fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	p.access.mu.Lock()
	p.access.conns[p] = conn
	p.access.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.access.mu.Lock()
			defer p.access.mu.Unlock()
			if c, ok := p.access.conns[p]; ok {
				c.Disconnect()
				delete(p.access.conns, p)
			}
			p.slot.clear()
		})
	}, nil
}

// port returns the source's input port. It is created once and reused by
// every later Listen.
func (p *sourcePort) port() (*coremidi.InputPort, error) {
	p.portMu.Lock()
	defer p.portMu.Unlock()
	if p.inputPort != nil {
		return p.inputPort, nil
	}

	inputPort, err := coremidi.NewInputPort(p.client, "Input Port", func(_ coremidi.Source, packet coremidi.Packet) {
		p.slot.deliver(packet.Data)
	})
	if err != nil {
		p.logger.Error(ErrCreateInputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}
	p.inputPort = &inputPort
	return p.inputPort, nil
}

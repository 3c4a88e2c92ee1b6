// Package gomidiaccess adapts a gomidi driver to contracts.AccessProvider.
package gomidiaccess

import (
	"context"
	"fmt"

	"github.com/leandrodaf/midibridge/sdk/contracts"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// OpenFunc opens the underlying driver. It may block, for example while the
// operating system enumerates ports.
type OpenFunc func() (drivers.Driver, error)

// Provider opens a gomidi driver on request.
type Provider struct {
	open   OpenFunc
	logger contracts.Logger
}

// New creates a provider that opens its driver with open.
func New(open OpenFunc, logger contracts.Logger) *Provider {
	return &Provider{open: open, logger: logger}
}

type openResult struct {
	drv drivers.Driver
	err error
}

// RequestAccess opens the driver and enumerates its ports. If ctx ends
// first, the driver is closed as soon as it finishes opening.
func (p *Provider) RequestAccess(ctx context.Context, req contracts.AccessRequest) (contracts.Access, error) {
	done := make(chan openResult, 1)
	go func() {
		drv, err := p.open()
		done <- openResult{drv: drv, err: err}
	}()

	var res openResult
	select {
	case <-ctx.Done():
		go func() {
			if r := <-done; r.drv != nil {
				_ = r.drv.Close()
			}
		}()
		return nil, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("open MIDI driver: %w", res.err)
	}

	ins, err := res.drv.Ins()
	if err != nil {
		_ = res.drv.Close()
		return nil, fmt.Errorf("list MIDI inputs of %s: %w", res.drv, err)
	}
	outs, err := res.drv.Outs()
	if err != nil {
		_ = res.drv.Close()
		return nil, fmt.Errorf("list MIDI outputs of %s: %w", res.drv, err)
	}

	a := &access{drv: res.drv}
	for _, in := range ins {
		a.inputs = append(a.inputs, &inPort{in: in, sysex: req.SysEx, logger: p.logger})
	}
	for _, out := range outs {
		a.outputs = append(a.outputs, outPort{out: out})
	}
	p.logger.Debug("MIDI driver opened",
		p.logger.Field().String("driver", res.drv.String()),
		p.logger.Field().Int("inputs", len(a.inputs)),
		p.logger.Field().Int("outputs", len(a.outputs)))
	return a, nil
}

type access struct {
	drv     drivers.Driver
	inputs  []contracts.InputPort
	outputs []contracts.Port
}

func (a *access) Inputs() []contracts.InputPort { return a.inputs }
func (a *access) Outputs() []contracts.Port     { return a.outputs }
func (a *access) Close() error                  { return a.drv.Close() }

type outPort struct {
	out drivers.Out
}

func (p outPort) Name() string         { return p.out.String() }
func (p outPort) Manufacturer() string { return "" }

type inPort struct {
	in     drivers.In
	sysex  bool
	logger contracts.Logger
}

func (p *inPort) Name() string         { return p.in.String() }
func (p *inPort) Manufacturer() string { return "" }

// Listen opens the port if needed and forwards every raw message. Clock and
// active-sensing bytes are delivered too; only sysex follows the request.
func (p *inPort) Listen(handler func(data []byte)) (func(), error) {
	if !p.in.IsOpen() {
		if err := p.in.Open(); err != nil {
			return nil, fmt.Errorf("open MIDI input %q: %w", p.in.String(), err)
		}
	}

	stop, err := p.in.Listen(func(msg []byte, _ int32) {
		handler(msg)
	}, drivers.ListenConfig{
		TimeCode:    true,
		ActiveSense: true,
		SysEx:       p.sysex,
		OnErr: func(err error) {
			p.logger.Error("MIDI input error",
				p.logger.Field().String("port", p.in.String()),
				p.logger.Field().Error("error", err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("listen on MIDI input %q: %w", p.in.String(), err)
	}
	return stop, nil
}

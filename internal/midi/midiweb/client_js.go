//go:build js && wasm

// Package midiweb provides MIDI access through the browser's Web MIDI API.
package midiweb

import (
	"context"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// AccessProvider requests access through navigator.requestMIDIAccess.
type AccessProvider struct {
	logger contracts.Logger
}

// NewAccessProvider creates a Web MIDI provider.
func NewAccessProvider(options *contracts.BridgeOptions) contracts.AccessProvider {
	options.Logger.Info("MIDI client created for Web MIDI")
	return &AccessProvider{logger: options.Logger}
}

type promiseResult struct {
	value js.Value
	err   error
}

// RequestAccess waits for the browser's permission prompt to settle.
func (p *AccessProvider) RequestAccess(ctx context.Context, req contracts.AccessRequest) (contracts.Access, error) {
	navigator := js.Global().Get("navigator")
	if navigator.IsUndefined() || navigator.Get("requestMIDIAccess").IsUndefined() {
		return nil, fmt.Errorf("navigator.requestMIDIAccess: %w", contracts.ErrUnsupported)
	}

	done := make(chan promiseResult, 1)
	var onResolve, onReject js.Func
	onResolve = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		done <- promiseResult{value: args[0]}
		return nil
	})
	onReject = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		var reason js.Value
		if len(args) > 0 {
			reason = args[0]
		}
		done <- promiseResult{err: rejectionError(reason)}
		return nil
	})

	options := js.ValueOf(map[string]interface{}{"sysex": req.SysEx})
	navigator.Call("requestMIDIAccess", options).Call("then", onResolve, onReject)

	select {
	case <-ctx.Done():
		// The promise may still settle; the buffered channel absorbs it and
		// the callbacks stay alive until then.
		go func() {
			<-done
			onResolve.Release()
			onReject.Release()
		}()
		return nil, ctx.Err()
	case res := <-done:
		onResolve.Release()
		onReject.Release()
		if res.err != nil {
			return nil, res.err
		}
		return p.snapshot(res.value), nil
	}
}

// rejectionError maps a DOMException name to the provider errors.
func rejectionError(reason js.Value) error {
	name, message := "", ""
	if reason.Type() == js.TypeObject {
		if n := reason.Get("name"); n.Type() == js.TypeString {
			name = n.String()
		}
		if m := reason.Get("message"); m.Type() == js.TypeString {
			message = m.String()
		}
	}
	return fmt.Errorf("requestMIDIAccess rejected (%s %s): %w", name, message, classifyRejection(name))
}

func (p *AccessProvider) snapshot(midiAccess js.Value) *access {
	a := &access{}
	forEachPort(midiAccess.Get("inputs"), func(port js.Value) {
		a.inputs = append(a.inputs, &inPort{port: port, logger: p.logger})
	})
	forEachPort(midiAccess.Get("outputs"), func(port js.Value) {
		a.outputs = append(a.outputs, outPort{port: port})
	})
	return a
}

// forEachPort walks a MIDIInputMap or MIDIOutputMap in insertion order.
func forEachPort(ports js.Value, fn func(port js.Value)) {
	if ports.IsUndefined() || ports.IsNull() {
		return
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn(args[0])
		return nil
	})
	defer cb.Release()
	ports.Call("forEach", cb)
}

func stringProp(v js.Value, name string) string {
	p := v.Get(name)
	if p.Type() != js.TypeString {
		return ""
	}
	return p.String()
}

type access struct {
	inputs  []contracts.InputPort
	outputs []contracts.Port
}

func (a *access) Inputs() []contracts.InputPort { return a.inputs }
func (a *access) Outputs() []contracts.Port     { return a.outputs }

// Close is a no-op: Web MIDI has no way to give access back. Listeners are
// removed by their stop functions.
func (a *access) Close() error { return nil }

type outPort struct {
	port js.Value
}

func (p outPort) Name() string         { return stringProp(p.port, "name") }
func (p outPort) Manufacturer() string { return stringProp(p.port, "manufacturer") }

type inPort struct {
	port   js.Value
	logger contracts.Logger
}

func (p *inPort) Name() string         { return stringProp(p.port, "name") }
func (p *inPort) Manufacturer() string { return stringProp(p.port, "manufacturer") }

// Listen adds a "midimessage" listener. Adding the listener implicitly
// opens the port.
func (p *inPort) Listen(handler func(data []byte)) (func(), error) {
	onMessage := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		data := args[0].Get("data")
		if data.IsUndefined() || data.IsNull() {
			return nil
		}
		buf := make([]byte, data.Get("length").Int())
		js.CopyBytesToGo(buf, data)
		handler(buf)
		return nil
	})
	p.port.Call("addEventListener", "midimessage", onMessage)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.port.Call("removeEventListener", "midimessage", onMessage)
			onMessage.Release()
		})
	}, nil
}

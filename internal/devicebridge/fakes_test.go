package devicebridge

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midibridge/internal/logger"
	"github.com/leandrodaf/midibridge/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	access  *fakeAccess
	err     error
	release chan struct{}
}

func (p *fakeProvider) RequestAccess(ctx context.Context, req contracts.AccessRequest) (contracts.Access, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if req.SysEx {
		return nil, fmt.Errorf("sysex requested")
	}
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.access == nil {
		return nil, nil
	}
	return p.access, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakeAccess struct {
	inputs  []*fakeInput
	outputs []*fakePort
	closed  bool
}

func (a *fakeAccess) Inputs() []contracts.InputPort {
	out := make([]contracts.InputPort, len(a.inputs))
	for i, in := range a.inputs {
		out[i] = in
	}
	return out
}

func (a *fakeAccess) Outputs() []contracts.Port {
	out := make([]contracts.Port, len(a.outputs))
	for i, o := range a.outputs {
		out[i] = o
	}
	return out
}

func (a *fakeAccess) Close() error {
	a.closed = true
	return nil
}

type fakePort struct {
	name string
}

func (p *fakePort) Name() string         { return p.name }
func (p *fakePort) Manufacturer() string { return "Acme" }

type fakeInput struct {
	fakePort
	mu        sync.Mutex
	handlers  []func([]byte)
	listenErr error
}

func newFakeInput(name string) *fakeInput {
	return &fakeInput{fakePort: fakePort{name: name}}
}

func (f *fakeInput) Listen(handler func([]byte)) (func(), error) {
	if f.listenErr != nil {
		return nil, f.listenErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	slot := len(f.handlers)
	f.handlers = append(f.handlers, handler)
	return func() {
		f.mu.Lock()
		f.handlers[slot] = nil
		f.mu.Unlock()
	}, nil
}

func (f *fakeInput) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.handlers {
		if h != nil {
			n++
		}
	}
	return n
}

func (f *fakeInput) emit(data []byte) {
	f.mu.Lock()
	handlers := append([]func([]byte){}, f.handlers...)
	f.mu.Unlock()
	for _, h := range handlers {
		if h != nil {
			h(data)
		}
	}
}

type recordingHost struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHost) OnMIDIReady() {
	h.mu.Lock()
	h.events = append(h.events, "ready")
	h.mu.Unlock()
}

func (h *recordingHost) OnMIDIMessage(deviceIndex, status, data1, data2 int) {
	h.mu.Lock()
	h.events = append(h.events, fmt.Sprintf("msg %d %#x %#x %#x", deviceIndex, status, data1, data2))
	h.mu.Unlock()
}

func (h *recordingHost) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func (h *recordingHost) count(event string) int {
	n := 0
	for _, e := range h.snapshot() {
		if e == event {
			n++
		}
	}
	return n
}

func newTestBridge(t *testing.T, p contracts.AccessProvider, opts ...contracts.Option) (*Bridge, *recordingHost, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	host := &recordingHost{}
	options := &contracts.BridgeOptions{
		Logger:         logger.New(zap.New(core)),
		AccessProvider: p,
		Host:           host,
	}
	for _, opt := range opts {
		opt(options)
	}

	b, err := NewBridge(options)
	if err != nil {
		t.Fatalf("NewBridge: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b, host, logs
}

// dispatchUntil pumps the bridge until cond holds or the deadline passes.
func dispatchUntil(t *testing.T, b *Bridge, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		b.Dispatch()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("condition not reached before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func threeInputAccess() *fakeAccess {
	return &fakeAccess{
		inputs: []*fakeInput{
			newFakeInput("Keystation 49"),
			newFakeInput("Launchkey Mini"),
			newFakeInput("Digital Piano"),
		},
		outputs: []*fakePort{{name: "Synth Out"}},
	}
}

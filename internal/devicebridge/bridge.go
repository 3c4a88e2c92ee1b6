// Package devicebridge reconciles an asynchronous MIDI platform with a host
// that polls synchronously and receives two narrow callbacks.
//
// Platform goroutines never call the host. Access completion and inbound
// messages are posted to a FIFO queue that the host drains with Dispatch or
// Run; host callbacks only ever fire from there.
package devicebridge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// ErrBridgeClosed is recorded when access completes after Close.
var ErrBridgeClosed = errors.New("device bridge closed")

// Bridge owns the device-access session, both device tables and every
// listener registration. The host only sees indices and queried attributes.
type Bridge struct {
	logger   contracts.Logger
	provider contracts.AccessProvider
	filter   *contracts.MessageFilter

	state  atomic.Int32
	tables atomic.Pointer[deviceTables]
	closed atomic.Bool

	queue       *taskQueue
	dispatching atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex // guards host, access, err, listeners
	host      contracts.Host
	access    contracts.Access
	err       error
	listeners map[int]*listener
}

// NewBridge creates a bridge in the Unrequested state. No platform call is
// made until RequestAccess.
func NewBridge(options *contracts.BridgeOptions) (*Bridge, error) {
	if options == nil || options.Logger == nil {
		return nil, errors.New("devicebridge: options with a logger are required")
	}
	if options.AccessProvider == nil {
		return nil, errors.New("devicebridge: access provider is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bridge{
		logger:    options.Logger,
		provider:  options.AccessProvider,
		filter:    options.MessageFilter,
		queue:     newTaskQueue(),
		ctx:       ctx,
		cancel:    cancel,
		host:      options.Host,
		listeners: make(map[int]*listener),
	}
	b.tables.Store(emptyTables)
	return b, nil
}

// listener is one installed input registration. Messages queued under a
// registration are dropped once it is removed.
type listener struct {
	stop func()
}

// SetHost replaces the outbound callback receiver.
func (b *Bridge) SetHost(h contracts.Host) {
	b.mu.Lock()
	b.host = h
	b.mu.Unlock()
}

// State returns the current session state.
func (b *Bridge) State() State {
	return State(b.state.Load())
}

// Err returns the error that ended the session in Denied or Unsupported.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// RequestAccess starts the one-time acquisition. Any call after the first is
// a no-op, whatever the session state. It never blocks.
func (b *Bridge) RequestAccess() {
	if !b.state.CompareAndSwap(int32(StateUnrequested), int32(StatePending)) {
		b.logger.Debug("MIDI access already requested",
			b.logger.Field().String("state", b.State().String()))
		return
	}
	b.tables.Store(emptyTables)
	b.logger.Info("Requesting MIDI access")

	go func() {
		access, err := b.provider.RequestAccess(b.ctx, contracts.AccessRequest{SysEx: false})
		b.queue.post(func() { b.completeAccess(access, err) })
	}()
}

// completeAccess runs on the dispatch loop.
func (b *Bridge) completeAccess(access contracts.Access, err error) {
	if err == nil && b.closed.Load() {
		if access != nil {
			_ = access.Close()
		}
		err = ErrBridgeClosed
	}
	if err == nil && access == nil {
		err = contracts.ErrAccessDenied
	}
	var tables *deviceTables
	if err == nil {
		tables, err = safeSnapshot(access)
	}

	if err != nil {
		next := StateDenied
		if errors.Is(err, contracts.ErrUnsupported) {
			next = StateUnsupported
		}
		b.mu.Lock()
		b.err = err
		b.mu.Unlock()
		b.state.Store(int32(next))
		b.logger.Warn("MIDI access failed",
			b.logger.Field().String("state", next.String()),
			b.logger.Field().Error("error", err))
		return
	}

	b.mu.Lock()
	b.access = access
	host := b.host
	b.mu.Unlock()

	b.tables.Store(tables)
	b.state.Store(int32(StateGranted))
	b.logger.Info("MIDI access granted",
		b.logger.Field().Int("inputs", len(tables.inputs)),
		b.logger.Field().Int("outputs", len(tables.outputs)))

	if host != nil {
		host.OnMIDIReady()
	}
}

// InputCount returns the number of input devices; 0 until access is granted.
func (b *Bridge) InputCount() int {
	return len(b.tables.Load().inputs)
}

// OutputCount returns the number of output devices; 0 until access is granted.
func (b *Bridge) OutputCount() int {
	return len(b.tables.Load().outputs)
}

// InputName returns the name of input index, or contracts.UnknownDeviceName.
func (b *Bridge) InputName(index int) string {
	return b.tables.Load().inputName(index)
}

// OutputName returns the name of output index, or contracts.UnknownDeviceName.
func (b *Bridge) OutputName(index int) string {
	return b.tables.Load().outputName(index)
}

// CopyInputName writes the input name into buf. See CopyCString.
func (b *Bridge) CopyInputName(index int, buf []byte) int {
	return CopyCString(buf, b.InputName(index))
}

// CopyOutputName writes the output name into buf. See CopyCString.
func (b *Bridge) CopyOutputName(index int, buf []byte) int {
	return CopyCString(buf, b.OutputName(index))
}

// Inputs returns a copy of the input table.
func (b *Bridge) Inputs() []contracts.DeviceInfo {
	t := b.tables.Load()
	out := make([]contracts.DeviceInfo, len(t.inputs))
	for i, in := range t.inputs {
		out[i] = in.info
	}
	return out
}

// Outputs returns a copy of the output table.
func (b *Bridge) Outputs() []contracts.DeviceInfo {
	t := b.tables.Load()
	return append([]contracts.DeviceInfo(nil), t.outputs...)
}

// OpenInputs installs one message listener per input device. Devices that
// already have a listener are skipped, so repeated calls never duplicate
// delivery. With an empty input table it only logs.
func (b *Bridge) OpenInputs() {
	t := b.tables.Load()
	if len(t.inputs) == 0 {
		b.logger.Warn("No MIDI inputs to open",
			b.logger.Field().String("state", b.State().String()))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	installed := 0
	for _, in := range t.inputs {
		index := in.info.Index
		if _, ok := b.listeners[index]; ok {
			continue
		}
		reg := &listener{}
		stop, err := in.port.Listen(func(data []byte) {
			b.receive(reg, index, data)
		})
		if err != nil {
			b.logger.Error("Failed to listen on MIDI input",
				b.logger.Field().Int("index", index),
				b.logger.Field().String("name", in.info.Name),
				b.logger.Field().Error("error", err))
			continue
		}
		if stop == nil {
			stop = func() {}
		}
		reg.stop = stop
		b.listeners[index] = reg
		installed++
	}
	b.logger.Info("MIDI inputs opened",
		b.logger.Field().Int("installed", installed),
		b.logger.Field().Int("listening", len(b.listeners)))
}

// ListenerCount returns the number of installed input listeners.
func (b *Bridge) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// receive is called from platform goroutines.
func (b *Bridge) receive(reg *listener, index int, data []byte) {
	msg, ok := contracts.DecodeMessage(index, data)
	if !ok {
		b.logger.Debug("Empty MIDI message dropped", b.logger.Field().Int("index", index))
		return
	}
	if !b.filter.Allows(msg) {
		b.logger.Debug("MIDI message filtered out",
			b.logger.Field().Int("index", index),
			b.logger.Field().Uint8("status", msg.Status))
		return
	}
	b.queue.post(func() { b.deliver(reg, msg) })
}

func (b *Bridge) deliver(reg *listener, msg contracts.Message) {
	b.mu.Lock()
	host := b.host
	current := b.listeners[msg.DeviceIndex] == reg
	b.mu.Unlock()
	if !current {
		b.logger.Debug("MIDI message dropped after its input was closed",
			b.logger.Field().Int("index", msg.DeviceIndex))
		return
	}
	if host == nil {
		return
	}
	host.OnMIDIMessage(msg.DeviceIndex, int(msg.Status), int(msg.Data1), int(msg.Data2))
}

// CloseInputs removes every installed listener. OpenInputs may be called
// again afterwards.
func (b *Bridge) CloseInputs() {
	b.mu.Lock()
	listeners := b.listeners
	b.listeners = make(map[int]*listener)
	b.mu.Unlock()

	for _, reg := range listeners {
		reg.stop()
	}
	if len(listeners) > 0 {
		b.logger.Info("MIDI inputs closed", b.logger.Field().Int("count", len(listeners)))
	}
}

// Close stops listeners, cancels a pending request and releases platform
// access. Tables stay readable.
func (b *Bridge) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	b.cancel()
	b.CloseInputs()

	b.mu.Lock()
	access := b.access
	b.access = nil
	b.mu.Unlock()

	if access != nil {
		return access.Close()
	}
	return nil
}

// Dispatch runs every queued continuation on the caller's goroutine and
// returns how many ran. Calls made from inside a callback return 0.
func (b *Bridge) Dispatch() int {
	if !b.dispatching.CompareAndSwap(false, true) {
		return 0
	}
	defer b.dispatching.Store(false)

	n := 0
	for {
		tasks := b.queue.take()
		if len(tasks) == 0 {
			return n
		}
		for _, task := range tasks {
			task()
			n++
		}
	}
}

// Pending returns the number of queued continuations.
func (b *Bridge) Pending() int {
	return b.queue.len()
}

// Run dispatches continuations as they arrive until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		b.Dispatch()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.queue.notify:
		}
	}
}

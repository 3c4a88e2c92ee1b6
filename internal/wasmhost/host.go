// Package wasmhost runs a WebAssembly guest against the device bridge and
// the surface forwarder. The guest imports the drawing and MIDI calls from
// the "env" module and exports on_midi_ready and on_midi_message.
package wasmhost

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midibridge/internal/devicebridge"
	"github.com/leandrodaf/midibridge/internal/surface"
	"github.com/leandrodaf/midibridge/sdk/contracts"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/emscripten"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// Guest export names. Emscripten prefixes C symbols with an underscore in
// some configurations, so both spellings are looked up.
const (
	exportReady   = "on_midi_ready"
	exportMessage = "on_midi_message"
	exportStart   = "_start"
)

// ErrNotLoaded is returned by Start before a guest was loaded.
var ErrNotLoaded = errors.New("wasmhost: no guest module loaded")

// Runtime hosts one guest module.
type Runtime struct {
	devices *devicebridge.Bridge
	surface *surface.Forwarder
	logger  contracts.Logger

	runtime wazero.Runtime

	mu      sync.Mutex
	ctx     context.Context
	module  api.Module
	ready   api.Function
	message api.Function
	exited  atomic.Bool

	missingReady   sync.Once
	missingMessage sync.Once
}

// New creates a wazero runtime with WASI available to the guest.
func New(ctx context.Context, devices *devicebridge.Bridge, forwarder *surface.Forwarder, logger contracts.Logger) (*Runtime, error) {
	r := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}
	return &Runtime{
		devices: devices,
		surface: forwarder,
		logger:  logger,
		runtime: r,
		ctx:     ctx,
	}, nil
}

// Load compiles and instantiates the guest, then makes the runtime the
// bridge's host. Only a reactor "_initialize" runs here; call Start to run
// the guest's entry point.
func (r *Runtime) Load(ctx context.Context, wasm []byte, config wazero.ModuleConfig) error {
	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return fmt.Errorf("compile guest module: %w", err)
	}

	builder := r.runtime.NewHostModuleBuilder("env")
	exporter, err := emscripten.NewFunctionExporterForModule(compiled)
	if err != nil {
		return fmt.Errorf("emscripten imports: %w", err)
	}
	exporter.ExportFunctions(builder)
	r.exportSurface(builder)
	r.exportDevices(builder)
	if _, err := builder.Instantiate(ctx); err != nil {
		return fmt.Errorf("instantiate host module: %w", err)
	}

	if config == nil {
		config = wazero.NewModuleConfig()
	}
	mod, err := r.runtime.InstantiateModule(ctx, compiled, config.WithStartFunctions("_initialize"))
	if err != nil {
		return fmt.Errorf("instantiate guest module: %w", err)
	}

	r.mu.Lock()
	r.ctx = ctx
	r.module = mod
	r.ready = lookup(mod, exportReady)
	r.message = lookup(mod, exportMessage)
	r.mu.Unlock()

	r.devices.SetHost(r)
	r.logger.Info("Guest module loaded",
		r.logger.Field().Bool("onMIDIReady", r.ready != nil),
		r.logger.Field().Bool("onMIDIMessage", r.message != nil))
	return nil
}

func lookup(mod api.Module, name string) api.Function {
	if fn := mod.ExportedFunction(name); fn != nil {
		return fn
	}
	return mod.ExportedFunction("_" + name)
}

// Start calls the guest's "_start". A guest that exits with status 0 is not
// an error, but its callbacks are no longer invoked.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	mod := r.module
	r.mu.Unlock()
	if mod == nil {
		return ErrNotLoaded
	}

	start := mod.ExportedFunction(exportStart)
	if start == nil {
		r.logger.Debug("Guest has no entry point", r.logger.Field().String("export", exportStart))
		return nil
	}
	if _, err := start.Call(ctx); err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			r.exited.Store(true)
			if exitErr.ExitCode() == 0 {
				r.logger.Info("Guest exited")
				return nil
			}
			return fmt.Errorf("guest exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run guest: %w", err)
	}
	return nil
}

// OnMIDIReady calls the guest's on_midi_ready.
func (r *Runtime) OnMIDIReady() {
	fn, ctx, live := r.callback(func(r *Runtime) api.Function { return r.ready })
	if !live {
		return
	}
	if fn == nil {
		r.missingReady.Do(func() {
			r.logger.Warn("Guest does not export a ready callback", r.logger.Field().String("export", exportReady))
		})
		return
	}
	if _, err := fn.Call(ctx); err != nil {
		r.logger.Error("Guest ready callback failed", r.logger.Field().Error("error", err))
	}
}

// OnMIDIMessage calls the guest's on_midi_message.
func (r *Runtime) OnMIDIMessage(deviceIndex, status, data1, data2 int) {
	fn, ctx, live := r.callback(func(r *Runtime) api.Function { return r.message })
	if !live {
		return
	}
	if fn == nil {
		r.missingMessage.Do(func() {
			r.logger.Warn("Guest does not export a message callback", r.logger.Field().String("export", exportMessage))
		})
		return
	}
	_, err := fn.Call(ctx,
		api.EncodeI32(int32(deviceIndex)),
		api.EncodeI32(int32(status)),
		api.EncodeI32(int32(data1)),
		api.EncodeI32(int32(data2)))
	if err != nil {
		r.logger.Error("Guest message callback failed", r.logger.Field().Error("error", err))
	}
}

// callback reports live=false once the guest has exited or before it was
// loaded.
func (r *Runtime) callback(pick func(*Runtime) api.Function) (fn api.Function, ctx context.Context, live bool) {
	if r.exited.Load() {
		return nil, nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.module == nil {
		return nil, nil, false
	}
	return pick(r), r.ctx, true
}

// Close releases the guest and the runtime.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

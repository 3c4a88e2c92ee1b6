// Command midibridge runs a WebAssembly guest against the MIDI devices of
// this machine and an offscreen canvas, then writes the canvas as a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/leandrodaf/midibridge/internal/wasmhost"
	"github.com/leandrodaf/midibridge/sdk/bridge"
	"github.com/leandrodaf/midibridge/sdk/contracts"
	"github.com/tetratelabs/wazero"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "midibridge:", err)
		os.Exit(1)
	}
}

type config struct {
	wasmPath string
	width    int
	height   int
	out      string
	duration time.Duration
	logLevel contracts.LogLevel
	logFile  string
	noMIDI   bool
}

func parseFlags(args []string) (config, error) {
	var cfg config
	var level string

	fs := flag.NewFlagSet("midibridge", flag.ContinueOnError)
	fs.StringVar(&cfg.wasmPath, "wasm", "", "guest WebAssembly module (required)")
	fs.IntVar(&cfg.width, "width", 640, "canvas width in pixels")
	fs.IntVar(&cfg.height, "height", 480, "canvas height in pixels")
	fs.StringVar(&cfg.out, "out", "canvas.png", "PNG written on exit; empty to skip")
	fs.DurationVar(&cfg.duration, "duration", 0, "how long to deliver MIDI events after start; 0 runs until interrupted")
	fs.StringVar(&level, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr")
	fs.BoolVar(&cfg.noMIDI, "no-midi", false, "run without MIDI access")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.wasmPath == "" {
		fs.Usage()
		return cfg, errors.New("-wasm is required")
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return cfg, fmt.Errorf("invalid canvas size %dx%d", cfg.width, cfg.height)
	}

	var err error
	cfg.logLevel, err = parseLogLevel(level)
	return cfg, err
}

func parseLogLevel(s string) (contracts.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return contracts.DebugLevel, nil
	case "info", "":
		return contracts.InfoLevel, nil
	case "warn", "warning":
		return contracts.WarnLevel, nil
	case "error":
		return contracts.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	wasm, err := os.ReadFile(cfg.wasmPath)
	if err != nil {
		return err
	}

	opts := []contracts.Option{
		contracts.WithLogLevel(cfg.logLevel),
		contracts.WithCanvasConfig(contracts.CanvasConfig{Width: cfg.width, Height: cfg.height}),
	}
	if cfg.logFile != "" {
		opts = append(opts, contracts.WithLogFile(cfg.logFile))
	}
	if cfg.noMIDI {
		opts = append(opts, contracts.WithAccessProvider(bridge.DisabledProvider()))
	}

	b, err := bridge.New(opts...)
	if err != nil {
		return err
	}
	defer b.Close()
	log := b.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt, err := wasmhost.New(ctx, b.Devices, b.Surface, log)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	moduleConfig := wazero.NewModuleConfig().
		WithName(cfg.wasmPath).
		WithArgs(cfg.wasmPath).
		WithStdout(os.Stdout).
		WithStderr(os.Stderr)
	if err := rt.Load(ctx, wasm, moduleConfig); err != nil {
		return err
	}
	b.Devices.SetHost(&loggingHost{next: rt, logger: log})

	if err := rt.Start(ctx); err != nil {
		return err
	}

	runCtx := ctx
	if cfg.duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.duration)
		defer cancel()
	}
	log.Info("Delivering MIDI events", log.Field().String("duration", cfg.duration.String()))
	if err := b.Devices.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if cfg.out != "" && b.Canvas != nil {
		if err := b.Canvas.SavePNG(cfg.out); err != nil {
			return fmt.Errorf("save canvas: %w", err)
		}
		log.Info("Canvas saved", log.Field().String("path", cfg.out))
	}
	return nil
}

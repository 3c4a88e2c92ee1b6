package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leandrodaf/midibridge/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Info("device ready",
		l.Field().Int("index", 2),
		l.Field().String("name", "Keystation"),
		l.Field().Uint8("status", 0x90),
		l.Field().Error("error", errors.New("boom")))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["index"] != int64(2) {
		t.Errorf("index = %v", ctx["index"])
	}
	if ctx["name"] != "Keystation" {
		t.Errorf("name = %v", ctx["name"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("error = %v", ctx["error"])
	}
}

func TestZapLoggerSetLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))
	l.SetLevel(contracts.WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")

	if logs.Len() != 2 {
		t.Fatalf("got %d entries, want 2", logs.Len())
	}
	for _, e := range logs.All() {
		if e.Message != "shown" {
			t.Errorf("unexpected entry %q", e.Message)
		}
	}
}

func TestZapLoggerFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	l := NewZapLogger().(*ZapLogger)
	l.SetDestination(contracts.FileLog, path)
	l.Info("written to file", l.Field().Bool("ok", true))
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestZapLoggerFileDestinationWithoutPath(t *testing.T) {
	l := NewZapLogger().(*ZapLogger)
	// Must keep the console destination and not panic.
	l.SetDestination(contracts.FileLog)
	l.Info("still logging")
}

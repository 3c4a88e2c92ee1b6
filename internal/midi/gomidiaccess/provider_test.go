package gomidiaccess

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midibridge/internal/logger"
	"github.com/leandrodaf/midibridge/sdk/contracts"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeDriver struct {
	ins    []drivers.In
	outs   []drivers.Out
	insErr error
	mu     sync.Mutex
	closed bool
}

func (d *fakeDriver) Ins() ([]drivers.In, error)   { return d.ins, d.insErr }
func (d *fakeDriver) Outs() ([]drivers.Out, error) { return d.outs, nil }
func (d *fakeDriver) String() string               { return "fake" }
func (d *fakeDriver) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

func (d *fakeDriver) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

type fakePort struct {
	name   string
	number int
	open   bool
}

func (p *fakePort) Open() error             { p.open = true; return nil }
func (p *fakePort) Close() error            { p.open = false; return nil }
func (p *fakePort) IsOpen() bool            { return p.open }
func (p *fakePort) Number() int             { return p.number }
func (p *fakePort) String() string          { return p.name }
func (p *fakePort) Underlying() interface{} { return nil }

type fakeIn struct {
	fakePort
	onMsg  func([]byte, int32)
	config drivers.ListenConfig
}

func (p *fakeIn) Listen(onMsg func(msg []byte, milliseconds int32), config drivers.ListenConfig) (func(), error) {
	p.onMsg = onMsg
	p.config = config
	return func() { p.onMsg = nil }, nil
}

type fakeOut struct {
	fakePort
}

func (p *fakeOut) Send([]byte) error { return nil }

func testLogger() contracts.Logger {
	return logger.New(zap.NewNop())
}

func TestRequestAccessEnumeratesPorts(t *testing.T) {
	drv := &fakeDriver{
		ins:  []drivers.In{&fakeIn{fakePort: fakePort{name: "Keystation 49"}}, &fakeIn{fakePort: fakePort{name: "Launchkey", number: 1}}},
		outs: []drivers.Out{&fakeOut{fakePort: fakePort{name: "Synth Out"}}},
	}
	p := New(func() (drivers.Driver, error) { return drv, nil }, testLogger())

	access, err := p.RequestAccess(context.Background(), contracts.AccessRequest{})
	if err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}
	ins := access.Inputs()
	if len(ins) != 2 || ins[0].Name() != "Keystation 49" || ins[1].Name() != "Launchkey" {
		t.Fatalf("unexpected inputs: %v", ins)
	}
	outs := access.Outputs()
	if len(outs) != 1 || outs[0].Name() != "Synth Out" || outs[0].Manufacturer() != "" {
		t.Fatalf("unexpected outputs: %v", outs)
	}

	if err := access.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !drv.isClosed() {
		t.Error("driver not closed")
	}
}

func TestRequestAccessOpenError(t *testing.T) {
	boom := errors.New("no backend")
	p := New(func() (drivers.Driver, error) { return nil, boom }, testLogger())

	if _, err := p.RequestAccess(context.Background(), contracts.AccessRequest{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestRequestAccessListError(t *testing.T) {
	drv := &fakeDriver{insErr: errors.New("enumeration failed")}
	p := New(func() (drivers.Driver, error) { return drv, nil }, testLogger())

	if _, err := p.RequestAccess(context.Background(), contracts.AccessRequest{}); err == nil {
		t.Fatal("expected error")
	}
	if !drv.isClosed() {
		t.Error("driver left open after enumeration failure")
	}
}

func TestRequestAccessCancelClosesLateDriver(t *testing.T) {
	drv := &fakeDriver{}
	release := make(chan struct{})
	p := New(func() (drivers.Driver, error) {
		<-release
		return drv, nil
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.RequestAccess(ctx, contracts.AccessRequest{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	close(release)
	deadline := time.Now().Add(2 * time.Second)
	for !drv.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("late driver was not closed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestListenOpensPortAndForwards(t *testing.T) {
	in := &fakeIn{fakePort: fakePort{name: "Keystation 49"}}
	drv := &fakeDriver{ins: []drivers.In{in}}
	p := New(func() (drivers.Driver, error) { return drv, nil }, testLogger())

	access, err := p.RequestAccess(context.Background(), contracts.AccessRequest{})
	if err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}

	var got [][]byte
	stop, err := access.Inputs()[0].Listen(func(data []byte) {
		got = append(got, append([]byte(nil), data...))
	})
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	if !in.IsOpen() {
		t.Error("port not opened")
	}
	if in.config.SysEx || !in.config.TimeCode || !in.config.ActiveSense {
		t.Errorf("unexpected listen config: %+v", in.config)
	}

	in.onMsg([]byte{0x90, 60, 100}, 0)
	in.onMsg([]byte{0xF8}, 10)
	if len(got) != 2 || got[0][0] != 0x90 || got[1][0] != 0xF8 {
		t.Fatalf("forwarded %v", got)
	}

	stop()
	if in.onMsg != nil {
		t.Error("stop did not detach listener")
	}
}

func TestListenDoesNotLogPerMessage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	in := &fakeIn{fakePort: fakePort{name: "Keystation 49"}}
	drv := &fakeDriver{ins: []drivers.In{in}}
	p := New(func() (drivers.Driver, error) { return drv, nil }, logger.New(zap.New(core)))

	access, err := p.RequestAccess(context.Background(), contracts.AccessRequest{})
	if err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}
	count := 0
	stop, err := access.Inputs()[0].Listen(func([]byte) { count++ })
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer stop()

	before := logs.Len()
	for i := 0; i < 100; i++ {
		in.onMsg([]byte{0x90, 60, 100}, int32(i))
	}
	if count != 100 {
		t.Fatalf("forwarded %d messages, want 100", count)
	}
	if n := logs.Len() - before; n != 0 {
		t.Errorf("inbound messages produced %d log entries: %v", n, logs.All())
	}
}

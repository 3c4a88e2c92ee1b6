package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/leandrodaf/midibridge/internal/logger"
	"github.com/leandrodaf/midibridge/sdk/bridge"
	"github.com/leandrodaf/midibridge/sdk/contracts"
)

func main() {
	log := logger.NewZapLogger()

	var b *bridge.Bridge
	notes := 0

	host := contracts.HostFuncs{
		Ready: func() {
			fmt.Println("Available MIDI inputs:", b.Devices.Inputs())
			b.Devices.OpenInputs()
		},
		Message: func(msg contracts.Message) {
			if msg.Command() != contracts.NoteOn || msg.Data2 == 0 {
				return
			}
			// One bar per note, height from velocity.
			x := float64(notes%64) * 10
			h := float64(msg.Data2) * 3
			b.Surface.SetColor(fmt.Sprintf("hsl(%d, 80%%, 50%%)", int(msg.Data1)*3%360))
			b.Surface.FillRect(x, float64(b.Surface.Height())-h, 8, h)
			notes++
		},
	}

	var err error
	b, err = bridge.New(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithMessageFilter(contracts.MessageFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
		contracts.WithHost(host),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI bridge", log.Field().Error("error", err))
		return
	}
	defer b.Close()

	b.Surface.SetColor("black")
	b.Surface.FillRect(0, 0, float64(b.Surface.Width()), float64(b.Surface.Height()))
	b.Devices.RequestAccess()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	fmt.Println("Capturing MIDI events for 30s... Press Ctrl+C to exit.")
	_ = b.Devices.Run(ctx)

	if err := b.Devices.Err(); err != nil {
		log.Warn("MIDI unavailable", log.Field().Error("error", err))
	}
	if b.Canvas != nil {
		if err := b.Canvas.SavePNG("notes.png"); err != nil {
			log.Error("Failed to save canvas", log.Field().Error("error", err))
			return
		}
		fmt.Printf("Drew %d notes to notes.png\n", notes)
	}
}

// Command gintendo runs an NES ROM in an ebiten window. It is the
// only part of this module that touches ebiten or keyboard state; the
// core packages stay free of any UI dependency. The machine runs on
// its own goroutine, exactly as the teacher's console.Bus.Run did;
// ebiten's Update/Draw only poll controller state and copy the
// published framebuffer.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nesemu/gintendo/console"
	"github.com/nesemu/gintendo/input"
	"github.com/nesemu/gintendo/mappers"
	"github.com/nesemu/gintendo/nesrom"
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")

var keymap = []struct {
	button uint8
	key    ebiten.Key
}{
	{input.A, ebiten.KeyA},
	{input.B, ebiten.KeyB},
	{input.Select, ebiten.KeySpace},
	{input.Start, ebiten.KeyEnter},
	{input.Up, ebiten.KeyUp},
	{input.Down, ebiten.KeyDown},
	{input.Left, ebiten.KeyLeft},
	{input.Right, ebiten.KeyRight},
}

// driver adapts a NesBus to the ebiten.Game interface.
type driver struct {
	bus *console.NesBus
}

func (d *driver) Update() error {
	var buttons uint8
	for _, k := range keymap {
		if ebiten.IsKeyPressed(k.key) {
			buttons |= k.button
		}
	}
	d.bus.Controller(0).SetButtons(buttons)
	if ebiten.IsKeyPressed(ebiten.KeyF1) {
		d.bus.TriggerReset()
	}
	return nil
}

func (d *driver) Draw(screen *ebiten.Image) {
	screen.WritePixels(d.bus.Pixels())
}

func (d *driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.bus.Resolution()
}

func main() {
	flag.Parse()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		log.Fatalf("couldn't get mapper: %v", err)
	}

	bus := console.New(m)
	w, h := bus.Resolution()
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("gintendo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	go bus.Run(ctx)

	startAudio(bus)

	if err := ebiten.RunGame(&driver{bus: bus}); err != nil {
		log.Fatal(err)
	}

	cancel()
	os.Exit(0)
}

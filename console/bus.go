// Package console wires the CPU, PPU, APU/DMA engines, mapper, and
// controllers together into one tick-synchronous machine. NesBus owns
// every byte of memory that isn't cartridge-resident: the 2KB CPU
// RAM, the 2KB nametable RAM, and the 32B palette RAM, all reached
// only through the Read/Write/PPURead/PPUWrite calls its attached
// components issue against it.
package console

import (
	"context"

	"github.com/nesemu/gintendo/apu"
	"github.com/nesemu/gintendo/input"
	"github.com/nesemu/gintendo/mappers"
	"github.com/nesemu/gintendo/mos6502"
	"github.com/nesemu/gintendo/ppu"
)

const (
	ramSize     = 0x0800
	vramSize    = 0x0800
	paletteSize = 0x0020
)

// NesBus is the conductor: one Step call is one CPU cycle, fanning
// out to three PPU dots and one APU/DMA tick, per the bus routing
// table. It implements mos6502.Bus and apu.DMABus with the same
// Read/Write pair (both operate over the identical CPU address
// space) and ppu.Bus with the separately named PPURead/PPUWrite,
// since a single type can't otherwise carry two same-signature
// methods with different bodies.
type NesBus struct {
	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	apu    *apu.APU
	mapper mappers.Mapper
	pads   [2]*input.Pad

	ram     [ramSize]uint8
	vram    [vramSize]uint8
	palette [paletteSize]uint8

	dataBus    uint8
	cycle      uint64
	resetArmed bool
}

// New builds a machine around an already-constructed mapper (see
// mappers.Get). The CPU's power-up reset-vector fetch happens inside
// mos6502.New, so the mapper must already have its PRG/CHR banks
// initialized.
func New(m mappers.Mapper) *NesBus {
	nb := &NesBus{mapper: m, apu: apu.New()}
	nb.pads[0] = &input.Pad{}
	nb.pads[1] = &input.Pad{}
	nb.ppu = ppu.New(nb)
	nb.cpu = mos6502.New(nb)
	return nb
}

// Controller returns the shift register for pad 0 or 1, so a driver
// can call SetButtons on it every frame.
func (nb *NesBus) Controller(i int) *input.Pad { return nb.pads[i] }

// Pixels returns the current front buffer flattened to RGBA bytes,
// four per pixel, row-major. The PPU's own pixel type is unexported,
// so this is the shape a driver gets to build a texture from.
func (nb *NesBus) Pixels() []uint8 {
	px := nb.ppu.GetPixels()
	out := make([]uint8, 0, len(px)*4)
	for _, c := range px {
		out = append(out, []uint8(c)...)
	}
	return out
}

func (nb *NesBus) Resolution() (int, int) { return nb.ppu.GetResolution() }

func (nb *NesBus) Samples() *apu.SampleQueue { return nb.apu.Samples }

// Reset arms the CPU's reset line for exactly the next fetch
// boundary; mos6502's fetch loop consumes it and runs the reset
// interrupt sequence.
func (nb *NesBus) Reset() bool {
	if nb.resetArmed {
		nb.resetArmed = false
		return true
	}
	return false
}

// TriggerReset is the driver-facing reset button.
func (nb *NesBus) TriggerReset() { nb.resetArmed = true }

func (nb *NesBus) NMI() bool    { return nb.ppu.NMI() }
func (nb *NesBus) IRQ() bool    { return nb.apu.IRQ() }
func (nb *NesBus) Halted() bool { return nb.apu.Halted() }

// Step advances the machine by one master (CPU) cycle: the APU/DMA
// engines act, the PPU runs its three dots for this cycle (one ahead
// of the CPU transaction, two trailing it), and the CPU either
// performs its one bus transaction or stays suspended if a DMA
// engine currently owns the bus.
func (nb *NesBus) Step() {
	nb.apu.Tick(nb)
	nb.ppu.Step()
	nb.cpu.Tick(nb)
	nb.ppu.Step()
	nb.ppu.Step()
	nb.cycle++
}

// RunUntilVBlank steps the machine until the PPU's vblank flag makes
// a rising edge, matching spec's "the driver then copies the
// framebuffer" cadence: one call produces one renderable frame.
func (nb *NesBus) RunUntilVBlank() {
	was := nb.ppu.InVBlank()
	for {
		nb.Step()
		now := nb.ppu.InVBlank()
		if now && !was {
			return
		}
		was = now
	}
}

// Run steps the machine continuously until ctx is done, driving
// emulation from its own goroutine the way the teacher's console.Bus
// did, so an ebiten driver's Update/Draw only ever poll state rather
// than pace it.
func (nb *NesBus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			nb.Step()
		}
	}
}

// Read services the full CPU address space. It backs both
// mos6502.Bus and apu.DMABus.
func (nb *NesBus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = nb.ram[addr&0x07FF]
	case addr < 0x4000:
		v = nb.ppu.ReadReg(0x2000 | (addr & 0x0007))
	case addr == 0x4015:
		v = nb.apu.Read(addr)
	case addr == 0x4016:
		v = nb.pads[0].Read()
	case addr == 0x4017:
		v = nb.pads[1].Read()
	case addr < 0x4020:
		v = nb.dataBus // write-only APU/IO registers: open bus
	case addr < 0x8000:
		v = nb.dataBus // no cartridge SRAM implemented: open bus
	default:
		v = nb.mapper.PrgRead(addr)
	}
	nb.dataBus = v
	return v
}

// Write services the full CPU address space.
func (nb *NesBus) Write(addr uint16, val uint8) {
	nb.dataBus = val
	switch {
	case addr < 0x2000:
		nb.ram[addr&0x07FF] = val
	case addr < 0x4000:
		nb.ppu.WriteReg(0x2000|(addr&0x0007), val)
	case addr == 0x4014:
		// put_cycle parity (odd/even master cycles since power-on)
		// decides the 513 vs 514 cycle stall, not whether this
		// particular transaction happened to be a write.
		nb.apu.TriggerOAMDMA(val, nb.cycle%2 == 1)
	case addr == 0x4016:
		// The strobe line is physically shared by both controller
		// ports.
		nb.pads[0].Write(val)
		nb.pads[1].Write(val)
	case addr < 0x4018:
		nb.apu.Write(addr, val)
	case addr < 0x4020:
		// unused test-mode registers
	case addr < 0x8000:
		// no cartridge SRAM implemented
	default:
		nb.mapper.PrgWrite(addr, val)
	}
}

// PPURead services the PPU's $0000-$3FFF address space: pattern
// tables route to the mapper, nametables to the internal 2KB VRAM
// gated by the mapper's mirroring bit, and palette indices to the
// internal 32B palette RAM with the canonical mirror applied.
func (nb *NesBus) PPURead(addr uint16) uint8 {
	a := addr & 0x3FFF
	switch {
	case a < 0x2000:
		return nb.mapper.ChrRead(a)
	case a < 0x3F00:
		return nb.vram[nb.nametableIndex(a)]
	default:
		return nb.palette[nb.paletteIndex(a)]
	}
}

func (nb *NesBus) PPUWrite(addr uint16, val uint8) {
	a := addr & 0x3FFF
	switch {
	case a < 0x2000:
		nb.mapper.ChrWrite(a, val)
	case a < 0x3F00:
		nb.vram[nb.nametableIndex(a)] = val
	default:
		nb.palette[nb.paletteIndex(a)] = val
	}
}

func (nb *NesBus) nametableIndex(a uint16) uint16 {
	off := a & 0x03FF
	if nb.mapper.VRAMA10(a) {
		off |= 0x0400
	}
	return off
}

// paletteIndex folds $3F10/$3F14/$3F18/$3F1C onto $3F00/$3F04/$3F08/$3F0C.
func (nb *NesBus) paletteIndex(a uint16) uint16 {
	idx := a & 0x1F
	if idx&0x13 == 0x10 {
		idx &^= 0x10
	}
	return idx
}

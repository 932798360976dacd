// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files.
package mappers

import (
	"fmt"

	"github.com/nesemu/gintendo/nesrom"
)

// A global registry of mapper constructors, keyed by mapper id. Get
// calls the constructor for a fresh instance so two ROMs loaded in the
// same process never share banking state.
var allMappers = map[uint16]func() Mapper{}

func RegisterMapper(id uint16, ctor func() Mapper) {
	if _, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	allMappers[id] = ctor
}

// Get constructs the mapper named by rom's header and initializes it
// against rom's PRG/CHR banks.
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNum()
	ctor, ok := allMappers[id]
	if !ok {
		return nil, &nesrom.RomError{Kind: nesrom.UnsupportedMapper, Mapper: id}
	}
	m := ctor()
	m.Init(rom)
	return m, nil
}

// Mapper decodes cartridge-space PRG/CHR accesses and drives
// nametable mirroring. It is invoked once per CPU cycle
// (PrgRead/PrgWrite) and once per PPU memory cycle
// (ChrRead/ChrWrite/VRAMA10/VRAMEnable); it owns no internal NES RAM
// of its own (that lives on NesBus per the console's C7 memory map).
type Mapper interface {
	ID() uint16
	Init(*nesrom.ROM)
	Name() string
	PrgRead(uint16) uint8   // addr in $8000-$FFFF
	PrgWrite(uint16, uint8) // addr in $8000-$FFFF
	ChrRead(uint16) uint8   // addr in $0000-$1FFF
	ChrWrite(uint16, uint8) // addr in $0000-$1FFF; no-op on CHR ROM
	MirroringMode() uint8
	// VRAMA10 reports the nametable-select bit a PPU memory cycle
	// to addr would see, per the mapper's mirroring mode.
	VRAMA10(addr uint16) bool
	// VRAMEnable reports whether the 2KB internal nametable RAM
	// should respond to this PPU memory cycle.
	VRAMEnable(addr uint16) bool
	HasSaveRAM() bool
}

type baseMapper struct {
	id   uint16
	rom  *nesrom.ROM
	name string
}

func (bm *baseMapper) ID() uint16 { return bm.id }

func (bm *baseMapper) String() string { return bm.name }

func (bm *baseMapper) Name() string { return bm.name }

func (bm *baseMapper) Init(r *nesrom.ROM) { bm.rom = r }

func (bm *baseMapper) MirroringMode() uint8 {
	return bm.rom.MirroringMode()
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}

// VRAMA10 implements the horizontal/vertical mirroring math common to
// NROM and UxROM: horizontal mirroring takes a10 from bit 11 of the
// address, vertical mirroring takes it from bit 10. Four-screen
// cartridges disable mirroring entirely (a10 tracks the raw address
// bit, since all four nametables are distinct banks); this module
// doesn't implement four-screen VRAM expansion, so that case degrades
// to vertical mirroring math.
func (bm *baseMapper) VRAMA10(addr uint16) bool {
	switch bm.MirroringMode() {
	case nesrom.MirrorHorizontal:
		return addr&0x0800 != 0
	default:
		return addr&0x0400 != 0
	}
}

func (bm *baseMapper) VRAMEnable(addr uint16) bool {
	return addr >= 0x2000 && addr < 0x3000
}

package mappers

import (
	"math"

	"github.com/nesemu/gintendo/nesrom"
)

// dummyMapper is a Mapper test double backed by a single flat 64KB
// array, with a settable mirroring mode so bus/PPU tests can drive
// VRAMA10 directly without constructing a real ROM.
type dummyMapper struct {
	memory []uint8
	MM     uint8 // mirroring mode - tests can set as needed
}

func (dm *dummyMapper) ID() uint16 { return 0 }

func (dm *dummyMapper) Init(r *nesrom.ROM) {}

func (dm *dummyMapper) Name() string { return "dummy mapper" }

func (dm *dummyMapper) PrgRead(addr uint16) uint8 { return dm.memory[addr] }

func (dm *dummyMapper) PrgWrite(addr uint16, val uint8) { dm.memory[addr] = val }

func (dm *dummyMapper) ChrRead(addr uint16) uint8 { return dm.memory[addr] }

func (dm *dummyMapper) ChrWrite(addr uint16, val uint8) { dm.memory[addr] = val }

func (dm *dummyMapper) MirroringMode() uint8 { return dm.MM }

func (dm *dummyMapper) VRAMA10(addr uint16) bool {
	if dm.MM == nesrom.MirrorHorizontal {
		return addr&0x0800 != 0
	}
	return addr&0x0400 != 0
}

func (dm *dummyMapper) VRAMEnable(addr uint16) bool {
	return addr >= 0x2000 && addr < 0x3000
}

func (dm *dummyMapper) HasSaveRAM() bool { return true }

// Dummy is a package-level instance for tests that just need some
// Mapper and don't care about isolation between them.
var Dummy *dummyMapper = &dummyMapper{memory: make([]uint8, math.MaxUint16+1)}

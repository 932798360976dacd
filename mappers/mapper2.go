package mappers

import "github.com/nesemu/gintendo/nesrom"

func init() {
	RegisterMapper(2, func() Mapper {
		return &mapper2{baseMapper: &baseMapper{id: 2, name: "UxROM"}}
	})
}

// mapper2 implements UxROM: $8000-$BFFF is a switchable 16KB PRG
// bank, $C000-$FFFF is fixed to the last bank. CHR is always RAM.
// Submapper 2 (UNROM 512-style bus conflicts) ANDs the written value
// with the ROM byte already at that address before it's latched into
// the bank register.
type mapper2 struct {
	*baseMapper
	chrRAM   []uint8
	bank     uint8
	lastBank uint8
	conflict bool
}

func (m *mapper2) Init(r *nesrom.ROM) {
	m.baseMapper.Init(r)
	m.chrRAM = make([]uint8, 0x2000)
	m.lastBank = uint8(r.NumPrgBlocks()) - 1
	m.conflict = r.Submapper() == 2
}

func (m *mapper2) PrgRead(addr uint16) uint8 {
	prg := m.rom.Prg()
	var bank uint8
	if addr < 0xC000 {
		bank = m.bank
	} else {
		bank = m.lastBank
	}
	off := int(bank)*0x4000 + int(addr&0x3FFF)
	return prg[off]
}

func (m *mapper2) PrgWrite(addr uint16, val uint8) {
	if m.conflict {
		val &= m.PrgRead(addr)
	}
	m.bank = val
}

func (m *mapper2) ChrRead(addr uint16) uint8 {
	return m.chrRAM[addr]
}

func (m *mapper2) ChrWrite(addr uint16, val uint8) {
	m.chrRAM[addr] = val
}

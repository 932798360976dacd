package mappers

import "github.com/nesemu/gintendo/nesrom"

func init() {
	RegisterMapper(0, func() Mapper {
		return &mapper0{baseMapper: &baseMapper{id: 0, name: "NROM"}}
	})
}

// mapper0 implements NROM: a fixed 16KB or 32KB PRG bank (mirrored if
// only 16KB is present) and either CHR ROM or a single 8KB CHR RAM
// bank. No bank switching.
type mapper0 struct {
	*baseMapper
	chrRAM []uint8
}

func (m *mapper0) Init(r *nesrom.ROM) {
	m.baseMapper.Init(r)
	if r.HasChrRAM() {
		m.chrRAM = make([]uint8, 0x2000)
	}
}

func (m *mapper0) PrgRead(addr uint16) uint8 {
	prg := m.rom.Prg()
	return prg[int(addr-0x8000)%len(prg)]
}

func (m *mapper0) PrgWrite(addr uint16, val uint8) {
	// NROM has no writable PRG; ignore.
}

func (m *mapper0) ChrRead(addr uint16) uint8 {
	if m.chrRAM != nil {
		return m.chrRAM[addr]
	}
	return m.rom.Chr()[addr]
}

func (m *mapper0) ChrWrite(addr uint16, val uint8) {
	if m.chrRAM != nil {
		m.chrRAM[addr] = val
	}
	// writes to CHR ROM are ignored
}

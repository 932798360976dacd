// Package nesrom implements support for the NES (iNES, NES2) ROM
// format. https://www.nesdev.org/wiki/INES
package nesrom

import (
	"fmt"
	"os"
)

const (
	headerSize     = 16
	trainerSize    = 512
	prgBlockSize   = 16384
	chrBlockSize   = 8192
	consoleTypeNES = 0
)

// ROM holds a fully parsed cartridge image: header plus the raw PRG
// and CHR byte slices a Mapper indexes into. Once New returns
// successfully, nothing about the image can fail later - all
// fallibility lives here.
type ROM struct {
	path    string
	h       *header
	trainer []byte // 512B, if present
	prg     []byte
	chr     []byte // empty means CHR RAM; Mapper allocates it
}

// New reads and validates path as an iNES/NES2.0 image.
func New(path string) (*ROM, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read ROM file %q: %w", path, err)
	}
	return NewFromBytes(path, b)
}

// NewFromBytes parses an in-memory cartridge image. path is used only
// for error messages and may be empty.
func NewFromBytes(path string, b []byte) (*ROM, error) {
	if len(b) < headerSize {
		return nil, errHeaderIncomplete(fmt.Sprintf("got %d bytes", len(b)))
	}

	h, err := parseHeader(b[:headerSize])
	if err != nil {
		return nil, err
	}
	if ct := h.consoleType(); ct != consoleTypeNES {
		return nil, errWrongConsoleType(ct)
	}

	r := &ROM{path: path, h: h}
	off := headerSize

	if h.hasTrainer() {
		if len(b) < off+trainerSize {
			return nil, errTrainerIncomplete(len(b)-off, trainerSize)
		}
		r.trainer = append([]byte(nil), b[off:off+trainerSize]...)
		off += trainerSize
	}

	prgLen := h.prgBlocks() * prgBlockSize
	if len(b) < off+prgLen {
		return nil, errPrgRomIncomplete(len(b)-off, prgLen)
	}
	r.prg = append([]byte(nil), b[off:off+prgLen]...)
	off += prgLen

	chrLen := h.chrBlocks() * chrBlockSize
	if len(b) < off+chrLen {
		return nil, errChrRomIncomplete(len(b)-off, chrLen)
	}
	r.chr = append([]byte(nil), b[off:off+chrLen]...)

	return r, nil
}

func (r *ROM) String() string {
	return fmt.Sprintf("%s: %s, trainer=%d prg=%d chr=%d", r.path, r.h, len(r.trainer), len(r.prg), len(r.chr))
}

// Prg returns the raw PRG ROM bytes. Mappers index into this
// directly; the ROM performs no address translation of its own.
func (r *ROM) Prg() []byte { return r.prg }

// Chr returns the raw CHR ROM bytes. An empty slice means the
// cartridge uses CHR RAM and the Mapper must allocate its own 8KB
// bank.
func (r *ROM) Chr() []byte { return r.chr }

func (r *ROM) NumPrgBlocks() int { return r.h.prgBlocks() }
func (r *ROM) NumChrBlocks() int { return r.h.chrBlocks() }

func (r *ROM) MapperNum() uint16 { return r.h.mapperNum() }
func (r *ROM) Submapper() uint8  { return r.h.submapper() }

func (r *ROM) MirroringMode() uint8 { return r.h.mirroringMode() }
func (r *ROM) HasSaveRAM() bool     { return r.h.hasPrgRAM() }
func (r *ROM) HasChrRAM() bool      { return len(r.chr) == 0 }

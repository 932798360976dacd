package ppu

import "testing"

type fakeBus struct {
	mem [0x4000]uint8
}

func (b *fakeBus) PPURead(addr uint16) uint8 { return b.mem[addr&0x3FFF] }
func (b *fakeBus) PPUWrite(addr uint16, val uint8) { b.mem[addr&0x3FFF] = val }

func stepN(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

// toVBlankSetCalls is the number of Step() calls, from PPU reset, that
// land on (scanline=241, dot=1): the 242-line pre-render/visible block
// (line 261, then 0..240) at 341 dots each, plus the two dots (0 and 1)
// into line 241 itself.
const toVBlankSetCalls = 242*341 + 2

func TestVBlankSetAtLine241Dot1(t *testing.T) {
	p := New(&fakeBus{})
	stepN(p, toVBlankSetCalls)
	if !p.InVBlank() {
		t.Fatal("InVBlank() = false at line 241 dot 1, want true")
	}
}

func TestVBlankClearedAtPreRenderDot1(t *testing.T) {
	p := New(&fakeBus{})
	stepN(p, toVBlankSetCalls)
	if !p.InVBlank() {
		t.Fatal("setup: vblank not set")
	}
	// One full frame is 89342 dots; pre-render's dot 1 is 2 dots past
	// the frame boundary, measured from the earlier vblank-set point.
	stepN(p, (89342+2)-toVBlankSetCalls)
	if p.InVBlank() {
		t.Error("InVBlank() = true at pre-render dot 1, want false")
	}
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p := New(&fakeBus{})
	stepN(p, toVBlankSetCalls)
	p.wLatch = true
	got := p.ReadReg(PPUSTATUS)
	if got&STATUS_VERTICAL_BLANK == 0 {
		t.Fatal("status read did not report vblank bit set")
	}
	if p.InVBlank() {
		t.Error("vblank bit not cleared by status read")
	}
	if p.wLatch {
		t.Error("write latch not reset by status read")
	}
}

func TestPPUAddrTwoWriteLatchSetsV(t *testing.T) {
	p := New(&fakeBus{})
	p.WriteReg(PPUADDR, 0x23)
	p.WriteReg(PPUADDR, 0x45)
	if p.v.data != 0x2345 {
		t.Errorf("v = %#x, want 0x2345", p.v.data)
	}
}

func TestPPUDataWriteThenReadUsesBufferedRead(t *testing.T) {
	bus := &fakeBus{}
	p := New(bus)
	p.WriteReg(PPUADDR, 0x23)
	p.WriteReg(PPUADDR, 0x45)
	p.WriteReg(PPUDATA, 0xAB)
	if bus.mem[0x2345] != 0xAB {
		t.Fatalf("bus not written: got %#x", bus.mem[0x2345])
	}

	p.WriteReg(PPUADDR, 0x23)
	p.WriteReg(PPUADDR, 0x45)
	first := p.ReadReg(PPUDATA)
	if first == 0xAB {
		t.Error("first PPUDATA read returned fresh value, want stale buffered value")
	}
	second := p.ReadReg(PPUDATA)
	if second != 0xAB {
		t.Errorf("second PPUDATA read = %#x, want 0xAB", second)
	}
}

func TestPPUDataPaletteReadIsNotBuffered(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[0x3F05] = 0x12
	p := New(bus)
	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x05)
	if got := p.ReadReg(PPUDATA); got != 0x12 {
		t.Errorf("palette read = %#x, want 0x12 (no buffering delay)", got)
	}
}

func TestPPUDataIncrementsByScrollModeStep(t *testing.T) {
	bus := &fakeBus{}
	p := New(bus)
	p.WriteReg(PPUCTRL, CTRL_VRAM_ADD_INCREMENT)
	p.WriteReg(PPUADDR, 0x20)
	p.WriteReg(PPUADDR, 0x00)
	p.WriteReg(PPUDATA, 1)
	if p.v.data != 0x2020 {
		t.Errorf("v after +32 increment = %#x, want 0x2020", p.v.data)
	}
}

func TestOAMDataWriteAutoIncrements(t *testing.T) {
	p := New(&fakeBus{})
	p.WriteReg(OAMADDR, 0x10)
	p.WriteReg(OAMDATA, 0xFE)
	if p.oamAddr != 0x11 {
		t.Errorf("oamAddr = %#x, want 0x11", p.oamAddr)
	}
	if p.oamMem[0x10] != 0xFE {
		t.Error("OAMDATA write did not land at OAMADDR")
	}
}

func TestOddFrameDotSkipShortensFrame(t *testing.T) {
	p := New(&fakeBus{})
	p.mask = MASK_SHOW_BG
	// Frame 1 (even, frameOdd starts false): the full 89342-dot frame,
	// landing back at the next pre-render line's dot 0.
	stepN(p, 341*262)
	if p.scanline != 261 || p.dot != 0 {
		t.Fatalf("after even frame, at (%d,%d), want (261,0)", p.scanline, p.dot)
	}
	if !p.frameOdd {
		t.Fatal("frameOdd not toggled after first frame")
	}
	// Frame 2 is odd: the pre-render line loses its last idle dot.
	stepN(p, 341*262-1)
	if p.scanline != 261 || p.dot != 0 {
		t.Errorf("after odd frame, at (%d,%d), want (261,0)", p.scanline, p.dot)
	}
	if p.frameOdd {
		t.Error("frameOdd not toggled back after second frame")
	}
}

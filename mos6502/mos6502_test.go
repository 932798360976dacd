package mos6502

import "testing"

// fakeBus is a flat 64K RAM with settable interrupt lines, used by
// every test in this file in place of a real NesBus.
type fakeBus struct {
	data         [65536]uint8
	nmi, irq     bool
	reset        bool
	halted       bool
	reads, wrts  int
	lastWasWrite bool
}

func (b *fakeBus) Read(addr uint16) uint8 {
	b.reads++
	b.lastWasWrite = false
	return b.data[addr]
}

func (b *fakeBus) Write(addr uint16, val uint8) {
	b.wrts++
	b.lastWasWrite = true
	b.data[addr] = val
}

func (b *fakeBus) NMI() bool    { return b.nmi }
func (b *fakeBus) IRQ() bool    { return b.irq }
func (b *fakeBus) Reset() bool  { return b.reset }
func (b *fakeBus) Halted() bool { return b.halted }

func newTestCPU() (*CPU, *fakeBus) {
	bus := &fakeBus{}
	bus.data[INT_RESET] = 0x00
	bus.data[INT_RESET+1] = 0x80
	c := New(bus)
	return c, bus
}

// run ticks the CPU n times, asserting exactly one bus transaction
// happens per Tick (the invariant the whole queue design exists to
// guarantee).
func run(t *testing.T, c *CPU, bus *fakeBus, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		before := bus.reads + bus.wrts
		c.Tick(bus)
		if bus.halted {
			continue
		}
		if got := bus.reads + bus.wrts - before; got != 1 {
			t.Fatalf("tick %d: %d bus transactions, want exactly 1", i, got)
		}
	}
}

func TestImmediateADCTakesTwoCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x69 // ADC #imm
	bus.data[0x8001] = 0x05
	c.A = 0x01

	run(t, c, bus, 2)

	if c.A != 0x06 {
		t.Errorf("A = %#x, want 0x06", c.A)
	}
	if c.PC != 0x8002 {
		t.Errorf("PC = %#x, want 0x8002", c.PC)
	}
}

func TestAbsoluteXReadNoPageCrossIsFourCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x7D // ADC abs,X
	bus.data[0x8001] = 0x00
	bus.data[0x8002] = 0x03
	bus.data[0x0301] = 0x04
	c.X = 1
	c.A = 0x01

	run(t, c, bus, 4)

	if c.A != 0x05 {
		t.Errorf("A = %#x, want 0x05", c.A)
	}
	if c.PC != 0x8003 {
		t.Errorf("PC = %#x, want 0x8003", c.PC)
	}
}

func TestAbsoluteXReadPageCrossIsFiveCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x7D // ADC abs,X
	bus.data[0x8001] = 0xFF
	bus.data[0x8002] = 0x02
	bus.data[0x0300] = 0x04 // 0x02FF + 1 = 0x0300
	c.X = 1
	c.A = 0x01

	run(t, c, bus, 5)

	if c.A != 0x05 {
		t.Errorf("A = %#x, want 0x05", c.A)
	}
}

func TestAbsoluteXWriteAlwaysPaysExtraCycle(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x9D // STA abs,X
	bus.data[0x8001] = 0x00
	bus.data[0x8002] = 0x03
	c.X = 1
	c.A = 0x42

	run(t, c, bus, 5)

	if got := bus.data[0x0301]; got != 0x42 {
		t.Errorf("mem[0x301] = %#x, want 0x42", got)
	}
}

func TestZeroPageRMWIsFiveCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0xE6 // INC zp
	bus.data[0x8001] = 0x10
	bus.data[0x0010] = 0x7F

	run(t, c, bus, 5)

	if got := bus.data[0x0010]; got != 0x80 {
		t.Errorf("mem[0x10] = %#x, want 0x80", got)
	}
	if !c.flag(STATUS_FLAG_NEGATIVE) {
		t.Errorf("N flag not set after INC wrapped to 0x80")
	}
}

func TestBranchTakenSamePageIsThreeCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0xF0 // BEQ
	bus.data[0x8001] = 0x05
	c.flagsOn(STATUS_FLAG_ZERO)

	run(t, c, bus, 3)

	if c.PC != 0x8007 {
		t.Errorf("PC = %#x, want 0x8007", c.PC)
	}
}

func TestBranchNotTakenIsTwoCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0xF0 // BEQ
	bus.data[0x8001] = 0x05

	run(t, c, bus, 2)

	if c.PC != 0x8002 {
		t.Errorf("PC = %#x, want 0x8002", c.PC)
	}
}

func TestBranchTakenPageCrossIsFourCycles(t *testing.T) {
	c, bus := newTestCPU()
	c.PokePC(0x80F0)
	bus.data[0x80F0] = 0xF0 // BEQ
	bus.data[0x80F1] = 0x20
	c.flagsOn(STATUS_FLAG_ZERO)

	run(t, c, bus, 4)

	if c.PC != 0x8112 {
		t.Errorf("PC = %#x, want 0x8112", c.PC)
	}
}

func TestJSRThenRTSRoundTrips(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x20 // JSR
	bus.data[0x8001] = 0x00
	bus.data[0x8002] = 0x90
	bus.data[0x9000] = 0x60 // RTS

	run(t, c, bus, 6)
	if c.PC != 0x9000 {
		t.Fatalf("after JSR: PC = %#x, want 0x9000", c.PC)
	}

	run(t, c, bus, 6)
	if c.PC != 0x8003 {
		t.Errorf("after RTS: PC = %#x, want 0x8003", c.PC)
	}
}

func TestJmpIndirectPageWrapBug(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x6C // JMP (ind)
	bus.data[0x8001] = 0xFF
	bus.data[0x8002] = 0x02
	bus.data[0x02FF] = 0x34
	bus.data[0x0200] = 0x12 // high byte read wraps to 0x0200, not 0x0300
	bus.data[0x0300] = 0x99

	run(t, c, bus, 5)

	if c.PC != 0x1234 {
		t.Errorf("PC = %#x, want 0x1234 (page-wrap bug)", c.PC)
	}
}

func TestBRKPushesBreakFlagSet(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x00 // BRK
	bus.data[INT_BRK] = 0x00
	bus.data[INT_BRK+1] = 0x95

	run(t, c, bus, 7)

	if c.PC != 0x9500 {
		t.Fatalf("PC = %#x, want 0x9500", c.PC)
	}
	pushedStatus := bus.data[STACK_PAGE|uint16(c.SP+1)]
	if pushedStatus&STATUS_FLAG_BREAK == 0 {
		t.Errorf("pushed status %#x missing BREAK bit", pushedStatus)
	}
}

func TestNMIDiscardsOpcodeWithoutAdvancingPC(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0xEA // NOP: runs to completion, since NMI is
	// only sampled once per Tick, after that tick's transaction
	bus.data[INT_NMI] = 0x00
	bus.data[INT_NMI+1] = 0x85

	bus.nmi = true
	c.Tick(bus) // fetches and starts the NOP; edge latched afterward
	bus.nmi = false

	run(t, c, bus, 8) // 1 to finish the NOP, 1 discard, 6-cycle NMI tail

	if c.PC != 0x8500 {
		t.Fatalf("PC = %#x, want 0x8500 after NMI vector", c.PC)
	}
	pushedStatus := bus.data[STACK_PAGE|uint16(c.SP+1)]
	if pushedStatus&STATUS_FLAG_BREAK != 0 {
		t.Errorf("pushed status %#x has BREAK set, want clear for NMI", pushedStatus)
	}
}

func TestIRQIgnoredWhenInterruptDisableSet(t *testing.T) {
	c, bus := newTestCPU()
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	bus.data[0x8000] = 0xEA // NOP
	bus.irq = true

	run(t, c, bus, 2)

	if c.PC != 0x8001 {
		t.Errorf("PC = %#x, want 0x8001 (IRQ should have been masked)", c.PC)
	}
}

func TestResetBeatsNMIAndSuppressesStackWrites(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[INT_RESET] = 0x00
	bus.data[INT_RESET+1] = 0x86
	startSP := c.SP

	bus.reset = true
	bus.nmi = true
	run(t, c, bus, 7)

	if c.PC != 0x8600 {
		t.Errorf("PC = %#x, want 0x8600", c.PC)
	}
	if got := startSP - c.SP; got != 3 {
		t.Errorf("SP moved by %d, want 3 (reset still walks SP down)", got)
	}
	if bus.wrts != 0 {
		t.Errorf("reset performed %d writes, want 0 (stack cycles must be reads)", bus.wrts)
	}
}

func TestJamHaltsFetchUntilReset(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x02 // JAM
	bus.data[INT_RESET] = 0x00
	bus.data[INT_RESET+1] = 0x81

	run(t, c, bus, 1)
	if !c.Jammed() {
		t.Fatal("Jammed() = false after executing a JAM opcode")
	}

	for i := 0; i < 5; i++ {
		c.Tick(bus)
	}
	if !c.Jammed() || c.PC != 0x8001 {
		t.Errorf("jammed CPU should hold PC at %#x, got Jammed=%v PC=%#x", 0x8001, c.Jammed(), c.PC)
	}

	bus.reset = true
	c.Tick(bus)
	if c.Jammed() {
		t.Errorf("Jammed() still true after a reset tick")
	}
}

func TestHaltedSuspendsCPUMidInstruction(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x69 // ADC #imm
	bus.data[0x8001] = 0x01
	c.A = 0x01

	c.Tick(bus) // consumes the opcode fetch
	bus.halted = true
	for i := 0; i < 3; i++ {
		c.Tick(bus) // DMA owns the bus; CPU makes no progress
	}
	if c.A != 0x01 {
		t.Fatalf("A changed to %#x while halted, want unchanged 0x01", c.A)
	}

	bus.halted = false
	c.Tick(bus)
	if c.A != 0x02 {
		t.Errorf("A = %#x after resuming from halt, want 0x02", c.A)
	}
}

func TestIllegalLAXLoadsBothAccumulatorAndX(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0xA7 // LAX zp
	bus.data[0x8001] = 0x10
	bus.data[0x0010] = 0x77

	run(t, c, bus, 3)

	if c.A != 0x77 || c.X != 0x77 {
		t.Errorf("A=%#x X=%#x, want both 0x77", c.A, c.X)
	}
}

func TestIllegalSLOCombinesASLAndORA(t *testing.T) {
	c, bus := newTestCPU()
	bus.data[0x8000] = 0x07 // SLO zp
	bus.data[0x8001] = 0x10
	bus.data[0x0010] = 0x81
	c.A = 0x01

	run(t, c, bus, 5)

	if got := bus.data[0x0010]; got != 0x02 {
		t.Errorf("mem[0x10] = %#x, want 0x02 (ASL of 0x81)", got)
	}
	if c.A != 0x03 {
		t.Errorf("A = %#x, want 0x03 (0x01 ORA 0x02)", c.A)
	}
	if !c.flag(STATUS_FLAG_CARRY) {
		t.Errorf("carry not set from ASL of 0x81")
	}
}

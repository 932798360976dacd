package mos6502

// Bus is everything the CPU needs from its owner each cycle. Exactly
// one Read or Write happens per Tick; the CPU never calls both in the
// same cycle. NMI() is sampled once per Tick, after the cycle's
// single bus transaction, matching real 6502 interrupt sampling;
// IRQ() and Reset() are consulted at each instruction fetch boundary.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)

	// NMI reports the current level of the /NMI line. The CPU
	// edge-detects this itself; the bus just reports the level.
	NMI() bool
	// IRQ reports the current level of the /IRQ line (wired-OR of
	// every interrupt source on the bus).
	IRQ() bool
	// Reset reports whether RESET is currently asserted.
	Reset() bool
	// Halted reports whether DMA (OAM or DMC) currently owns the
	// bus. While true, Tick does not consume a cycle of CPU
	// progress: the CPU is suspended mid-instruction.
	Halted() bool
}

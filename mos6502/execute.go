package mos6502

// buildQueue turns a decoded instruction into the micro-op sequence
// that will run it, one bus transaction per Tick. The queue excludes
// the opcode-fetch cycle itself, which fetch() already spent.
func buildQueue(in instr) []microOp {
	switch in.cat {
	case catImplied:
		return []microOp{
			func(c *CPU, bus Bus) {
				bus.Read(c.PC) // dummy read of the next byte, discarded
				impliedOps[in.op](c)
			},
		}
	case catAccumulator:
		return []microOp{
			func(c *CPU, bus Bus) {
				bus.Read(c.PC)
				c.A = accOps[in.op](c, c.A)
			},
		}
	case catRead:
		return buildReadQueue(in)
	case catWrite:
		return buildWriteQueue(in)
	case catRMW:
		return buildRMWQueue(in)
	case catBranch:
		return buildBranchQueue(in)
	case catJmpAbs:
		return []microOp{
			func(c *CPU, bus Bus) { c.val = bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) {
				hi := bus.Read(c.PC)
				c.PC++
				c.PC = uint16(c.val) | uint16(hi)<<8
			},
		}
	case catJmpInd:
		return []microOp{
			func(c *CPU, bus Bus) { c.val = bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) { hi := bus.Read(c.PC); c.PC++; c.addr = uint16(c.val) | uint16(hi)<<8 },
			func(c *CPU, bus Bus) { c.val = bus.Read(c.addr) },
			func(c *CPU, bus Bus) {
				// Page-wrap bug: the high byte is fetched from
				// (addr & 0xFF00) | ((addr+1) & 0x00FF), never
				// crossing into the next page.
				hiAddr := (c.addr & 0xFF00) | ((c.addr + 1) & 0x00FF)
				hi := bus.Read(hiAddr)
				c.PC = uint16(c.val) | uint16(hi)<<8
			},
		}
	case catJSR:
		return []microOp{
			func(c *CPU, bus Bus) { c.val = bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) { bus.Read(c.stackAddr()) }, // internal delay
			func(c *CPU, bus Bus) { c.push(bus, uint8(c.PC>>8)) },
			func(c *CPU, bus Bus) { c.push(bus, uint8(c.PC)) },
			func(c *CPU, bus Bus) {
				hi := bus.Read(c.PC)
				c.PC = uint16(c.val) | uint16(hi)<<8
			},
		}
	case catRTS:
		return []microOp{
			func(c *CPU, bus Bus) { bus.Read(c.PC) },
			func(c *CPU, bus Bus) { bus.Read(c.stackAddr()) },
			func(c *CPU, bus Bus) { c.val = c.pull(bus) },
			func(c *CPU, bus Bus) {
				hi := c.pull(bus)
				c.PC = uint16(c.val) | uint16(hi)<<8
			},
			func(c *CPU, bus Bus) { bus.Read(c.PC); c.PC++ },
		}
	case catRTI:
		return []microOp{
			func(c *CPU, bus Bus) { bus.Read(c.PC) },
			func(c *CPU, bus Bus) { bus.Read(c.stackAddr()) },
			func(c *CPU, bus Bus) { c.Status = (c.pull(bus) &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG },
			func(c *CPU, bus Bus) { c.val = c.pull(bus) },
			func(c *CPU, bus Bus) {
				hi := c.pull(bus)
				c.PC = uint16(c.val) | uint16(hi)<<8
			},
		}
	case catBRK:
		return []microOp{
			func(c *CPU, bus Bus) { bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) { c.push(bus, uint8(c.PC>>8)) },
			func(c *CPU, bus Bus) { c.push(bus, uint8(c.PC)) },
			func(c *CPU, bus Bus) { c.push(bus, c.Status|UNUSED_STATUS_FLAG|STATUS_FLAG_BREAK) },
			func(c *CPU, bus Bus) { c.val = bus.Read(INT_BRK) },
			func(c *CPU, bus Bus) {
				hi := bus.Read(INT_BRK + 1)
				c.PC = uint16(c.val) | uint16(hi)<<8
				c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
			},
		}
	case catPHA:
		return []microOp{
			func(c *CPU, bus Bus) { bus.Read(c.PC) },
			func(c *CPU, bus Bus) { c.push(bus, c.A) },
		}
	case catPHP:
		return []microOp{
			func(c *CPU, bus Bus) { bus.Read(c.PC) },
			func(c *CPU, bus Bus) { c.push(bus, c.Status|UNUSED_STATUS_FLAG|STATUS_FLAG_BREAK) },
		}
	case catPLA:
		return []microOp{
			func(c *CPU, bus Bus) { bus.Read(c.PC) },
			func(c *CPU, bus Bus) { bus.Read(c.stackAddr()) },
			func(c *CPU, bus Bus) { c.A = c.pull(bus); c.setNegativeAndZeroFlags(c.A) },
		}
	case catPLP:
		return []microOp{
			func(c *CPU, bus Bus) { bus.Read(c.PC) },
			func(c *CPU, bus Bus) { bus.Read(c.stackAddr()) },
			func(c *CPU, bus Bus) { c.Status = (c.pull(bus) &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG },
		}
	}
	return nil
}

// addrOps builds the micro-ops that compute an effective address for
// modes shared between read/write/RMW instructions, leaving the
// address in c.addr. lastAccess performs the final read or write and
// is supplied by the caller, since it differs by category and (for
// indexed modes) by whether a page boundary was crossed.
func addrOps(mode uint8, final func(category) []microOp, cat category) []microOp {
	switch mode {
	case IMMEDIATE:
		return []microOp{
			func(c *CPU, bus Bus) {
				c.addr = c.PC
				c.PC++
				final(cat)[0](c, bus)
			},
		}
	case ZERO_PAGE:
		ops := []microOp{
			func(c *CPU, bus Bus) { c.addr = uint16(bus.Read(c.PC)); c.PC++ },
		}
		return append(ops, final(cat)...)
	case ZERO_PAGE_X:
		ops := []microOp{
			func(c *CPU, bus Bus) { c.ptr = bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) { bus.Read(uint16(c.ptr)); c.addr = uint16(c.ptr + c.X) },
		}
		return append(ops, final(cat)...)
	case ZERO_PAGE_Y:
		ops := []microOp{
			func(c *CPU, bus Bus) { c.ptr = bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) { bus.Read(uint16(c.ptr)); c.addr = uint16(c.ptr + c.Y) },
		}
		return append(ops, final(cat)...)
	case ABSOLUTE:
		ops := []microOp{
			func(c *CPU, bus Bus) { c.val = bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) { hi := bus.Read(c.PC); c.PC++; c.addr = uint16(c.val) | uint16(hi)<<8 },
		}
		return append(ops, final(cat)...)
	case ABSOLUTE_X:
		return absoluteIndexed(func(c *CPU) uint8 { return c.X }, final, cat)
	case ABSOLUTE_Y:
		return absoluteIndexed(func(c *CPU) uint8 { return c.Y }, final, cat)
	case INDIRECT_X:
		ops := []microOp{
			func(c *CPU, bus Bus) { c.ptr = bus.Read(c.PC); c.PC++ },
			func(c *CPU, bus Bus) { bus.Read(uint16(c.ptr)); c.ptr += c.X },
			func(c *CPU, bus Bus) { c.val = bus.Read(uint16(c.ptr)) },
			func(c *CPU, bus Bus) {
				hi := bus.Read(uint16(c.ptr + 1))
				c.addr = uint16(c.val) | uint16(hi)<<8
			},
		}
		return append(ops, final(cat)...)
	case INDIRECT_Y:
		return indirectIndexed(final, cat)
	}
	return nil
}

func absoluteIndexed(index func(*CPU) uint8, final func(category) []microOp, cat category) []microOp {
	ops := []microOp{
		func(c *CPU, bus Bus) { c.val = bus.Read(c.PC); c.PC++ },
		func(c *CPU, bus Bus) {
			hi := bus.Read(c.PC)
			c.PC++
			base := uint16(c.val) | uint16(hi)<<8
			c.addr = base + uint16(index(c))
			c.pageXed = (base & 0xFF00) != (c.addr & 0xFF00)
		},
	}

	switch cat {
	case catRead:
		speculative := func(c *CPU, bus Bus) {
			// Speculative read at the uncorrected address. If no
			// page cross occurred this is the real read and the
			// queued corrective cycle is dropped; otherwise it's
			// discarded and the next op redoes it at c.addr.
			wrong := (c.addr & 0x00FF) | ((c.addr - uint16(index(c))) & 0xFF00)
			v := bus.Read(wrong)
			if !c.pageXed {
				readOps[curOp](c, v)
				c.queue = nil
			}
		}
		corrective := func(c *CPU, bus Bus) { readOps[curOp](c, bus.Read(c.addr)) }
		return append(ops, speculative, corrective)
	default: // write, RMW always pay the extra cycle
		ops = append(ops, func(c *CPU, bus Bus) {
			wrong := (c.addr & 0x00FF) | ((c.addr - uint16(index(c))) & 0xFF00)
			bus.Read(wrong)
		})
		return append(ops, final(cat)...)
	}
}

func indirectIndexed(final func(category) []microOp, cat category) []microOp {
	ops := []microOp{
		func(c *CPU, bus Bus) { c.ptr = bus.Read(c.PC); c.PC++ },
		func(c *CPU, bus Bus) { c.val = bus.Read(uint16(c.ptr)) },
		func(c *CPU, bus Bus) {
			hi := bus.Read(uint16(c.ptr + 1))
			base := uint16(c.val) | uint16(hi)<<8
			c.addr = base + uint16(c.Y)
			c.pageXed = (base & 0xFF00) != (c.addr & 0xFF00)
		},
	}

	switch cat {
	case catRead:
		speculative := func(c *CPU, bus Bus) {
			wrong := (c.addr & 0x00FF) | ((c.addr - uint16(c.Y)) & 0xFF00)
			v := bus.Read(wrong)
			if !c.pageXed {
				readOps[curOp](c, v)
				c.queue = nil
			}
		}
		corrective := func(c *CPU, bus Bus) { readOps[curOp](c, bus.Read(c.addr)) }
		return append(ops, speculative, corrective)
	default:
		ops = append(ops, func(c *CPU, bus Bus) {
			wrong := (c.addr & 0x00FF) | ((c.addr - uint16(c.Y)) & 0xFF00)
			bus.Read(wrong)
		})
		return append(ops, final(cat)...)
	}
}

// curOp is a hack-free way to let absoluteIndexed/indirectIndexed's
// read continuation know which instruction it's finishing without
// threading the opcode through every helper signature: buildQueue
// sets it immediately before calling addrOps and it is only ever read
// back within the same synchronous call tree (the CPU is
// single-instruction-in-flight, never reentrant), so there is no
// concurrency hazard despite the package-level storage.
var curOp uint8

func buildReadQueue(in instr) []microOp {
	curOp = in.op
	op := in.op
	final := func(cat category) []microOp {
		return []microOp{func(c *CPU, bus Bus) { readOps[op](c, bus.Read(c.addr)) }}
	}
	return addrOps(in.mode, final, catRead)
}

func buildWriteQueue(in instr) []microOp {
	op := in.op
	final := func(cat category) []microOp {
		return []microOp{func(c *CPU, bus Bus) { bus.Write(c.addr, writeOps[op](c)) }}
	}
	return addrOps(in.mode, final, catWrite)
}

func buildRMWQueue(in instr) []microOp {
	op := in.op
	final := func(cat category) []microOp {
		return []microOp{
			func(c *CPU, bus Bus) { c.val = bus.Read(c.addr) },
			func(c *CPU, bus Bus) { bus.Write(c.addr, c.val) }, // dummy write-back, unmodified
			func(c *CPU, bus Bus) { bus.Write(c.addr, rmwOps[op](c, c.val)) },
		}
	}
	return addrOps(in.mode, final, catRMW)
}

func buildBranchQueue(in instr) []microOp {
	op := in.op
	return []microOp{
		func(c *CPU, bus Bus) { c.val = bus.Read(c.PC); c.PC++ },
		func(c *CPU, bus Bus) {
			if !branchConds[op](c) {
				c.queue = nil
				return
			}
			old := c.PC
			target := uint16(int32(old) + int32(int8(c.val)))
			c.addr = target
			if old&0xFF00 == target&0xFF00 {
				bus.Read(old)
				c.PC = target
				c.queue = nil
			} else {
				bus.Read((old & 0xFF00) | (target & 0x00FF))
				c.queue = []microOp{
					func(c *CPU, bus Bus) { bus.Read(c.PC); c.PC = c.addr },
				}
			}
		},
	}
}

// ---- instruction semantics ----

func addWithCarry(c *CPU, b uint8) {
	carry := uint16(0)
	if c.flag(STATUS_FLAG_CARRY) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(b) + carry
	res := uint8(sum)
	c.flagSet(STATUS_FLAG_CARRY, sum > 0xFF)
	c.flagSet(STATUS_FLAG_OVERFLOW, (c.A^res)&(b^res)&0x80 != 0)
	c.A = res
	c.setNegativeAndZeroFlags(c.A)
}

func compare(c *CPU, reg, v uint8) {
	c.setNegativeAndZeroFlags(reg - v)
	c.flagSet(STATUS_FLAG_CARRY, reg >= v)
}

var readOps = map[uint8]func(c *CPU, v uint8){
	ADC: addWithCarry,
	SBC: func(c *CPU, v uint8) { addWithCarry(c, ^v) },
	AND: func(c *CPU, v uint8) { c.A &= v; c.setNegativeAndZeroFlags(c.A) },
	ORA: func(c *CPU, v uint8) { c.A |= v; c.setNegativeAndZeroFlags(c.A) },
	EOR: func(c *CPU, v uint8) { c.A ^= v; c.setNegativeAndZeroFlags(c.A) },
	LDA: func(c *CPU, v uint8) { c.A = v; c.setNegativeAndZeroFlags(c.A) },
	LDX: func(c *CPU, v uint8) { c.X = v; c.setNegativeAndZeroFlags(c.X) },
	LDY: func(c *CPU, v uint8) { c.Y = v; c.setNegativeAndZeroFlags(c.Y) },
	CMP: func(c *CPU, v uint8) { compare(c, c.A, v) },
	CPX: func(c *CPU, v uint8) { compare(c, c.X, v) },
	CPY: func(c *CPU, v uint8) { compare(c, c.Y, v) },
	BIT: func(c *CPU, v uint8) {
		c.flagSet(STATUS_FLAG_ZERO, c.A&v == 0)
		c.flagSet(STATUS_FLAG_NEGATIVE, v&0x80 != 0)
		c.flagSet(STATUS_FLAG_OVERFLOW, v&0x40 != 0)
	},
	NOP: func(c *CPU, v uint8) {},
	LAX: func(c *CPU, v uint8) { c.A, c.X = v, v; c.setNegativeAndZeroFlags(v) },
	ANC: func(c *CPU, v uint8) {
		c.A &= v
		c.setNegativeAndZeroFlags(c.A)
		c.flagSet(STATUS_FLAG_CARRY, c.A&0x80 != 0)
	},
	ALR: func(c *CPU, v uint8) {
		c.A &= v
		c.flagSet(STATUS_FLAG_CARRY, c.A&1 != 0)
		c.A >>= 1
		c.setNegativeAndZeroFlags(c.A)
	},
	ARR: func(c *CPU, v uint8) {
		c.A &= v
		carry := uint8(0)
		if c.flag(STATUS_FLAG_CARRY) {
			carry = 0x80
		}
		c.A = (c.A >> 1) | carry
		c.setNegativeAndZeroFlags(c.A)
		c.flagSet(STATUS_FLAG_CARRY, c.A&0x40 != 0)
		c.flagSet(STATUS_FLAG_OVERFLOW, (c.A>>6)&1 != (c.A>>5)&1)
	},
	SBX: func(c *CPU, v uint8) {
		r := (c.A & c.X) - v
		c.flagSet(STATUS_FLAG_CARRY, (c.A&c.X) >= v)
		c.X = r
		c.setNegativeAndZeroFlags(c.X)
	},
	LAS: func(c *CPU, v uint8) {
		r := v & c.SP
		c.A, c.X, c.SP = r, r, r
		c.setNegativeAndZeroFlags(r)
	},
	// ANE and LXA are hardware-unstable; this implements the commonly
	// documented "safe" approximation rather than the magic-constant-
	// dependent real behavior.
	ANE: func(c *CPU, v uint8) { c.A = (c.A | 0xFF) & c.X & v; c.setNegativeAndZeroFlags(c.A) },
	LXA: func(c *CPU, v uint8) { c.A = (c.A | 0xFF) & v; c.X = c.A; c.setNegativeAndZeroFlags(c.A) },
}

var writeOps = map[uint8]func(c *CPU) uint8{
	STA: func(c *CPU) uint8 { return c.A },
	STX: func(c *CPU) uint8 { return c.X },
	STY: func(c *CPU) uint8 { return c.Y },
	SAX: func(c *CPU) uint8 { return c.A & c.X },
	// SHA/SHX/SHY/TAS are unstable on real silicon when the index
	// addition crosses a page; this implements the documented "AND
	// with address-high+1" approximation unconditionally.
	SHA: func(c *CPU) uint8 { return c.A & c.X & uint8(highByteOf(c)+1) },
	SHX: func(c *CPU) uint8 { return c.X & uint8(highByteOf(c)+1) },
	SHY: func(c *CPU) uint8 { return c.Y & uint8(highByteOf(c)+1) },
	TAS: func(c *CPU) uint8 { c.SP = c.A & c.X; return c.SP & uint8(highByteOf(c)+1) },
}

func highByteOf(c *CPU) uint8 { return uint8(c.addr >> 8) }

var rmwOps = map[uint8]func(c *CPU, v uint8) uint8{
	ASL: func(c *CPU, v uint8) uint8 {
		c.flagSet(STATUS_FLAG_CARRY, v&0x80 != 0)
		r := v << 1
		c.setNegativeAndZeroFlags(r)
		return r
	},
	LSR: func(c *CPU, v uint8) uint8 {
		c.flagSet(STATUS_FLAG_CARRY, v&0x01 != 0)
		r := v >> 1
		c.setNegativeAndZeroFlags(r)
		return r
	},
	ROL: func(c *CPU, v uint8) uint8 {
		carryIn := uint8(0)
		if c.flag(STATUS_FLAG_CARRY) {
			carryIn = 1
		}
		c.flagSet(STATUS_FLAG_CARRY, v&0x80 != 0)
		r := (v << 1) | carryIn
		c.setNegativeAndZeroFlags(r)
		return r
	},
	ROR: func(c *CPU, v uint8) uint8 {
		carryIn := uint8(0)
		if c.flag(STATUS_FLAG_CARRY) {
			carryIn = 0x80
		}
		c.flagSet(STATUS_FLAG_CARRY, v&0x01 != 0)
		r := (v >> 1) | carryIn
		c.setNegativeAndZeroFlags(r)
		return r
	},
	INC: func(c *CPU, v uint8) uint8 { r := v + 1; c.setNegativeAndZeroFlags(r); return r },
	DEC: func(c *CPU, v uint8) uint8 { r := v - 1; c.setNegativeAndZeroFlags(r); return r },
	SLO: func(c *CPU, v uint8) uint8 {
		c.flagSet(STATUS_FLAG_CARRY, v&0x80 != 0)
		r := v << 1
		c.A |= r
		c.setNegativeAndZeroFlags(c.A)
		return r
	},
	RLA: func(c *CPU, v uint8) uint8 {
		carryIn := uint8(0)
		if c.flag(STATUS_FLAG_CARRY) {
			carryIn = 1
		}
		c.flagSet(STATUS_FLAG_CARRY, v&0x80 != 0)
		r := (v << 1) | carryIn
		c.A &= r
		c.setNegativeAndZeroFlags(c.A)
		return r
	},
	SRE: func(c *CPU, v uint8) uint8 {
		c.flagSet(STATUS_FLAG_CARRY, v&0x01 != 0)
		r := v >> 1
		c.A ^= r
		c.setNegativeAndZeroFlags(c.A)
		return r
	},
	RRA: func(c *CPU, v uint8) uint8 {
		carryIn := uint8(0)
		if c.flag(STATUS_FLAG_CARRY) {
			carryIn = 0x80
		}
		c.flagSet(STATUS_FLAG_CARRY, v&0x01 != 0)
		r := (v >> 1) | carryIn
		addWithCarry(c, r)
		return r
	},
	DCP: func(c *CPU, v uint8) uint8 {
		r := v - 1
		compare(c, c.A, r)
		return r
	},
	ISC: func(c *CPU, v uint8) uint8 {
		r := v + 1
		addWithCarry(c, ^r)
		return r
	},
}

var accOps = map[uint8]func(c *CPU, v uint8) uint8{
	ASL: rmwOps[ASL],
	LSR: rmwOps[LSR],
	ROL: rmwOps[ROL],
	ROR: rmwOps[ROR],
}

var impliedOps = map[uint8]func(c *CPU){
	CLC: func(c *CPU) { c.flagsOff(STATUS_FLAG_CARRY) },
	CLD: func(c *CPU) { c.flagsOff(STATUS_FLAG_DECIMAL) },
	CLI: func(c *CPU) { c.flagsOff(STATUS_FLAG_INTERRUPT_DISABLE) },
	CLV: func(c *CPU) { c.flagsOff(STATUS_FLAG_OVERFLOW) },
	SEC: func(c *CPU) { c.flagsOn(STATUS_FLAG_CARRY) },
	SED: func(c *CPU) { c.flagsOn(STATUS_FLAG_DECIMAL) },
	SEI: func(c *CPU) { c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE) },
	DEX: func(c *CPU) { c.X--; c.setNegativeAndZeroFlags(c.X) },
	DEY: func(c *CPU) { c.Y--; c.setNegativeAndZeroFlags(c.Y) },
	INX: func(c *CPU) { c.X++; c.setNegativeAndZeroFlags(c.X) },
	INY: func(c *CPU) { c.Y++; c.setNegativeAndZeroFlags(c.Y) },
	TAX: func(c *CPU) { c.X = c.A; c.setNegativeAndZeroFlags(c.X) },
	TAY: func(c *CPU) { c.Y = c.A; c.setNegativeAndZeroFlags(c.Y) },
	TSX: func(c *CPU) { c.X = c.SP; c.setNegativeAndZeroFlags(c.X) },
	TXA: func(c *CPU) { c.A = c.X; c.setNegativeAndZeroFlags(c.A) },
	TXS: func(c *CPU) { c.SP = c.X },
	TYA: func(c *CPU) { c.A = c.Y; c.setNegativeAndZeroFlags(c.A) },
	NOP: func(c *CPU) {},
}

var branchConds = map[uint8]func(c *CPU) bool{
	BCC: func(c *CPU) bool { return !c.flag(STATUS_FLAG_CARRY) },
	BCS: func(c *CPU) bool { return c.flag(STATUS_FLAG_CARRY) },
	BEQ: func(c *CPU) bool { return c.flag(STATUS_FLAG_ZERO) },
	BNE: func(c *CPU) bool { return !c.flag(STATUS_FLAG_ZERO) },
	BMI: func(c *CPU) bool { return c.flag(STATUS_FLAG_NEGATIVE) },
	BPL: func(c *CPU) bool { return !c.flag(STATUS_FLAG_NEGATIVE) },
	BVC: func(c *CPU) bool { return !c.flag(STATUS_FLAG_OVERFLOW) },
	BVS: func(c *CPU) bool { return c.flag(STATUS_FLAG_OVERFLOW) },
}

package mos6502

// Addressing modes, named per https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X
	INDIRECT_Y
)

// Instruction identifiers. The first 56 are the official 6502
// mnemonics; the remainder are the documented undocumented opcodes
// the decode table must still decode per spec.
const (
	ADC = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	// Documented undocumented opcodes.
	SLO
	RLA
	SRE
	RRA
	DCP
	ISC
	LAX
	SAX
	ANC
	ALR
	ARR
	SBX
	LAS
	ANE
	LXA
	SHA
	SHX
	SHY
	TAS
	JAM
)

// category buckets instructions by the shape of bus cycles their
// addressing mode produces, independent of what the instruction
// actually does with the value.
type category uint8

const (
	catImplied category = iota
	catAccumulator
	catRead
	catWrite
	catRMW
	catBranch
	catJmpAbs
	catJmpInd
	catJSR
	catRTS
	catRTI
	catBRK
	catPHA
	catPHP
	catPLA
	catPLP
	catJAM
)

type instr struct {
	name    string
	op      uint8
	mode    uint8
	cat     category
	illegal bool
}

// opcodeTable maps each of the 256 possible opcode bytes to its
// decoded instruction. Unused official slots never occur: every byte
// 0x00-0xFF decodes to something on NMOS 6502 hardware.
var opcodeTable [256]instr

func reg(code uint8, name string, op uint8, mode uint8, cat category, illegal bool) {
	opcodeTable[code] = instr{name: name, op: op, mode: mode, cat: cat, illegal: illegal}
}

func init() {
	type row struct {
		code    uint8
		name    string
		op      uint8
		mode    uint8
		cat     category
		illegal bool
	}
	rows := []row{
		{0x00, "BRK", BRK, IMPLICIT, catBRK, false},
		{0x01, "ORA", ORA, INDIRECT_X, catRead, false},
		{0x02, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x03, "SLO", SLO, INDIRECT_X, catRMW, true},
		{0x04, "NOP", NOP, ZERO_PAGE, catRead, true},
		{0x05, "ORA", ORA, ZERO_PAGE, catRead, false},
		{0x06, "ASL", ASL, ZERO_PAGE, catRMW, false},
		{0x07, "SLO", SLO, ZERO_PAGE, catRMW, true},
		{0x08, "PHP", PHP, IMPLICIT, catPHP, false},
		{0x09, "ORA", ORA, IMMEDIATE, catRead, false},
		{0x0A, "ASL", ASL, ACCUMULATOR, catAccumulator, false},
		{0x0B, "ANC", ANC, IMMEDIATE, catRead, true},
		{0x0C, "NOP", NOP, ABSOLUTE, catRead, true},
		{0x0D, "ORA", ORA, ABSOLUTE, catRead, false},
		{0x0E, "ASL", ASL, ABSOLUTE, catRMW, false},
		{0x0F, "SLO", SLO, ABSOLUTE, catRMW, true},

		{0x10, "BPL", BPL, RELATIVE, catBranch, false},
		{0x11, "ORA", ORA, INDIRECT_Y, catRead, false},
		{0x12, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x13, "SLO", SLO, INDIRECT_Y, catRMW, true},
		{0x14, "NOP", NOP, ZERO_PAGE_X, catRead, true},
		{0x15, "ORA", ORA, ZERO_PAGE_X, catRead, false},
		{0x16, "ASL", ASL, ZERO_PAGE_X, catRMW, false},
		{0x17, "SLO", SLO, ZERO_PAGE_X, catRMW, true},
		{0x18, "CLC", CLC, IMPLICIT, catImplied, false},
		{0x19, "ORA", ORA, ABSOLUTE_Y, catRead, false},
		{0x1A, "NOP", NOP, IMPLICIT, catImplied, true},
		{0x1B, "SLO", SLO, ABSOLUTE_Y, catRMW, true},
		{0x1C, "NOP", NOP, ABSOLUTE_X, catRead, true},
		{0x1D, "ORA", ORA, ABSOLUTE_X, catRead, false},
		{0x1E, "ASL", ASL, ABSOLUTE_X, catRMW, false},
		{0x1F, "SLO", SLO, ABSOLUTE_X, catRMW, true},

		{0x20, "JSR", JSR, ABSOLUTE, catJSR, false},
		{0x21, "AND", AND, INDIRECT_X, catRead, false},
		{0x22, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x23, "RLA", RLA, INDIRECT_X, catRMW, true},
		{0x24, "BIT", BIT, ZERO_PAGE, catRead, false},
		{0x25, "AND", AND, ZERO_PAGE, catRead, false},
		{0x26, "ROL", ROL, ZERO_PAGE, catRMW, false},
		{0x27, "RLA", RLA, ZERO_PAGE, catRMW, true},
		{0x28, "PLP", PLP, IMPLICIT, catPLP, false},
		{0x29, "AND", AND, IMMEDIATE, catRead, false},
		{0x2A, "ROL", ROL, ACCUMULATOR, catAccumulator, false},
		{0x2B, "ANC", ANC, IMMEDIATE, catRead, true},
		{0x2C, "BIT", BIT, ABSOLUTE, catRead, false},
		{0x2D, "AND", AND, ABSOLUTE, catRead, false},
		{0x2E, "ROL", ROL, ABSOLUTE, catRMW, false},
		{0x2F, "RLA", RLA, ABSOLUTE, catRMW, true},

		{0x30, "BMI", BMI, RELATIVE, catBranch, false},
		{0x31, "AND", AND, INDIRECT_Y, catRead, false},
		{0x32, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x33, "RLA", RLA, INDIRECT_Y, catRMW, true},
		{0x34, "NOP", NOP, ZERO_PAGE_X, catRead, true},
		{0x35, "AND", AND, ZERO_PAGE_X, catRead, false},
		{0x36, "ROL", ROL, ZERO_PAGE_X, catRMW, false},
		{0x37, "RLA", RLA, ZERO_PAGE_X, catRMW, true},
		{0x38, "SEC", SEC, IMPLICIT, catImplied, false},
		{0x39, "AND", AND, ABSOLUTE_Y, catRead, false},
		{0x3A, "NOP", NOP, IMPLICIT, catImplied, true},
		{0x3B, "RLA", RLA, ABSOLUTE_Y, catRMW, true},
		{0x3C, "NOP", NOP, ABSOLUTE_X, catRead, true},
		{0x3D, "AND", AND, ABSOLUTE_X, catRead, false},
		{0x3E, "ROL", ROL, ABSOLUTE_X, catRMW, false},
		{0x3F, "RLA", RLA, ABSOLUTE_X, catRMW, true},

		{0x40, "RTI", RTI, IMPLICIT, catRTI, false},
		{0x41, "EOR", EOR, INDIRECT_X, catRead, false},
		{0x42, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x43, "SRE", SRE, INDIRECT_X, catRMW, true},
		{0x44, "NOP", NOP, ZERO_PAGE, catRead, true},
		{0x45, "EOR", EOR, ZERO_PAGE, catRead, false},
		{0x46, "LSR", LSR, ZERO_PAGE, catRMW, false},
		{0x47, "SRE", SRE, ZERO_PAGE, catRMW, true},
		{0x48, "PHA", PHA, IMPLICIT, catPHA, false},
		{0x49, "EOR", EOR, IMMEDIATE, catRead, false},
		{0x4A, "LSR", LSR, ACCUMULATOR, catAccumulator, false},
		{0x4B, "ALR", ALR, IMMEDIATE, catRead, true},
		{0x4C, "JMP", JMP, ABSOLUTE, catJmpAbs, false},
		{0x4D, "EOR", EOR, ABSOLUTE, catRead, false},
		{0x4E, "LSR", LSR, ABSOLUTE, catRMW, false},
		{0x4F, "SRE", SRE, ABSOLUTE, catRMW, true},

		{0x50, "BVC", BVC, RELATIVE, catBranch, false},
		{0x51, "EOR", EOR, INDIRECT_Y, catRead, false},
		{0x52, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x53, "SRE", SRE, INDIRECT_Y, catRMW, true},
		{0x54, "NOP", NOP, ZERO_PAGE_X, catRead, true},
		{0x55, "EOR", EOR, ZERO_PAGE_X, catRead, false},
		{0x56, "LSR", LSR, ZERO_PAGE_X, catRMW, false},
		{0x57, "SRE", SRE, ZERO_PAGE_X, catRMW, true},
		{0x58, "CLI", CLI, IMPLICIT, catImplied, false},
		{0x59, "EOR", EOR, ABSOLUTE_Y, catRead, false},
		{0x5A, "NOP", NOP, IMPLICIT, catImplied, true},
		{0x5B, "SRE", SRE, ABSOLUTE_Y, catRMW, true},
		{0x5C, "NOP", NOP, ABSOLUTE_X, catRead, true},
		{0x5D, "EOR", EOR, ABSOLUTE_X, catRead, false},
		{0x5E, "LSR", LSR, ABSOLUTE_X, catRMW, false},
		{0x5F, "SRE", SRE, ABSOLUTE_X, catRMW, true},

		{0x60, "RTS", RTS, IMPLICIT, catRTS, false},
		{0x61, "ADC", ADC, INDIRECT_X, catRead, false},
		{0x62, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x63, "RRA", RRA, INDIRECT_X, catRMW, true},
		{0x64, "NOP", NOP, ZERO_PAGE, catRead, true},
		{0x65, "ADC", ADC, ZERO_PAGE, catRead, false},
		{0x66, "ROR", ROR, ZERO_PAGE, catRMW, false},
		{0x67, "RRA", RRA, ZERO_PAGE, catRMW, true},
		{0x68, "PLA", PLA, IMPLICIT, catPLA, false},
		{0x69, "ADC", ADC, IMMEDIATE, catRead, false},
		{0x6A, "ROR", ROR, ACCUMULATOR, catAccumulator, false},
		{0x6B, "ARR", ARR, IMMEDIATE, catRead, true},
		{0x6C, "JMP", JMP, INDIRECT, catJmpInd, false},
		{0x6D, "ADC", ADC, ABSOLUTE, catRead, false},
		{0x6E, "ROR", ROR, ABSOLUTE, catRMW, false},
		{0x6F, "RRA", RRA, ABSOLUTE, catRMW, true},

		{0x70, "BVS", BVS, RELATIVE, catBranch, false},
		{0x71, "ADC", ADC, INDIRECT_Y, catRead, false},
		{0x72, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x73, "RRA", RRA, INDIRECT_Y, catRMW, true},
		{0x74, "NOP", NOP, ZERO_PAGE_X, catRead, true},
		{0x75, "ADC", ADC, ZERO_PAGE_X, catRead, false},
		{0x76, "ROR", ROR, ZERO_PAGE_X, catRMW, false},
		{0x77, "RRA", RRA, ZERO_PAGE_X, catRMW, true},
		{0x78, "SEI", SEI, IMPLICIT, catImplied, false},
		{0x79, "ADC", ADC, ABSOLUTE_Y, catRead, false},
		{0x7A, "NOP", NOP, IMPLICIT, catImplied, true},
		{0x7B, "RRA", RRA, ABSOLUTE_Y, catRMW, true},
		{0x7C, "NOP", NOP, ABSOLUTE_X, catRead, true},
		{0x7D, "ADC", ADC, ABSOLUTE_X, catRead, false},
		{0x7E, "ROR", ROR, ABSOLUTE_X, catRMW, false},
		{0x7F, "RRA", RRA, ABSOLUTE_X, catRMW, true},

		{0x80, "NOP", NOP, IMMEDIATE, catRead, true},
		{0x81, "STA", STA, INDIRECT_X, catWrite, false},
		{0x82, "NOP", NOP, IMMEDIATE, catRead, true},
		{0x83, "SAX", SAX, INDIRECT_X, catWrite, true},
		{0x84, "STY", STY, ZERO_PAGE, catWrite, false},
		{0x85, "STA", STA, ZERO_PAGE, catWrite, false},
		{0x86, "STX", STX, ZERO_PAGE, catWrite, false},
		{0x87, "SAX", SAX, ZERO_PAGE, catWrite, true},
		{0x88, "DEY", DEY, IMPLICIT, catImplied, false},
		{0x89, "NOP", NOP, IMMEDIATE, catRead, true},
		{0x8A, "TXA", TXA, IMPLICIT, catImplied, false},
		{0x8B, "ANE", ANE, IMMEDIATE, catRead, true},
		{0x8C, "STY", STY, ABSOLUTE, catWrite, false},
		{0x8D, "STA", STA, ABSOLUTE, catWrite, false},
		{0x8E, "STX", STX, ABSOLUTE, catWrite, false},
		{0x8F, "SAX", SAX, ABSOLUTE, catWrite, true},

		{0x90, "BCC", BCC, RELATIVE, catBranch, false},
		{0x91, "STA", STA, INDIRECT_Y, catWrite, false},
		{0x92, "JAM", JAM, IMPLICIT, catJAM, true},
		{0x93, "SHA", SHA, INDIRECT_Y, catWrite, true},
		{0x94, "STY", STY, ZERO_PAGE_X, catWrite, false},
		{0x95, "STA", STA, ZERO_PAGE_X, catWrite, false},
		{0x96, "STX", STX, ZERO_PAGE_Y, catWrite, false},
		{0x97, "SAX", SAX, ZERO_PAGE_Y, catWrite, true},
		{0x98, "TYA", TYA, IMPLICIT, catImplied, false},
		{0x99, "STA", STA, ABSOLUTE_Y, catWrite, false},
		{0x9A, "TXS", TXS, IMPLICIT, catImplied, false},
		{0x9B, "TAS", TAS, ABSOLUTE_Y, catWrite, true},
		{0x9C, "SHY", SHY, ABSOLUTE_X, catWrite, true},
		{0x9D, "STA", STA, ABSOLUTE_X, catWrite, false},
		{0x9E, "SHX", SHX, ABSOLUTE_Y, catWrite, true},
		{0x9F, "SHA", SHA, ABSOLUTE_Y, catWrite, true},

		{0xA0, "LDY", LDY, IMMEDIATE, catRead, false},
		{0xA1, "LDA", LDA, INDIRECT_X, catRead, false},
		{0xA2, "LDX", LDX, IMMEDIATE, catRead, false},
		{0xA3, "LAX", LAX, INDIRECT_X, catRead, true},
		{0xA4, "LDY", LDY, ZERO_PAGE, catRead, false},
		{0xA5, "LDA", LDA, ZERO_PAGE, catRead, false},
		{0xA6, "LDX", LDX, ZERO_PAGE, catRead, false},
		{0xA7, "LAX", LAX, ZERO_PAGE, catRead, true},
		{0xA8, "TAY", TAY, IMPLICIT, catImplied, false},
		{0xA9, "LDA", LDA, IMMEDIATE, catRead, false},
		{0xAA, "TAX", TAX, IMPLICIT, catImplied, false},
		{0xAB, "LXA", LXA, IMMEDIATE, catRead, true},
		{0xAC, "LDY", LDY, ABSOLUTE, catRead, false},
		{0xAD, "LDA", LDA, ABSOLUTE, catRead, false},
		{0xAE, "LDX", LDX, ABSOLUTE, catRead, false},
		{0xAF, "LAX", LAX, ABSOLUTE, catRead, true},

		{0xB0, "BCS", BCS, RELATIVE, catBranch, false},
		{0xB1, "LDA", LDA, INDIRECT_Y, catRead, false},
		{0xB2, "JAM", JAM, IMPLICIT, catJAM, true},
		{0xB3, "LAX", LAX, INDIRECT_Y, catRead, true},
		{0xB4, "LDY", LDY, ZERO_PAGE_X, catRead, false},
		{0xB5, "LDA", LDA, ZERO_PAGE_X, catRead, false},
		{0xB6, "LDX", LDX, ZERO_PAGE_Y, catRead, false},
		{0xB7, "LAX", LAX, ZERO_PAGE_Y, catRead, true},
		{0xB8, "CLV", CLV, IMPLICIT, catImplied, false},
		{0xB9, "LDA", LDA, ABSOLUTE_Y, catRead, false},
		{0xBA, "TSX", TSX, IMPLICIT, catImplied, false},
		{0xBB, "LAS", LAS, ABSOLUTE_Y, catRead, true},
		{0xBC, "LDY", LDY, ABSOLUTE_X, catRead, false},
		{0xBD, "LDA", LDA, ABSOLUTE_X, catRead, false},
		{0xBE, "LDX", LDX, ABSOLUTE_Y, catRead, false},
		{0xBF, "LAX", LAX, ABSOLUTE_Y, catRead, true},

		{0xC0, "CPY", CPY, IMMEDIATE, catRead, false},
		{0xC1, "CMP", CMP, INDIRECT_X, catRead, false},
		{0xC2, "NOP", NOP, IMMEDIATE, catRead, true},
		{0xC3, "DCP", DCP, INDIRECT_X, catRMW, true},
		{0xC4, "CPY", CPY, ZERO_PAGE, catRead, false},
		{0xC5, "CMP", CMP, ZERO_PAGE, catRead, false},
		{0xC6, "DEC", DEC, ZERO_PAGE, catRMW, false},
		{0xC7, "DCP", DCP, ZERO_PAGE, catRMW, true},
		{0xC8, "INY", INY, IMPLICIT, catImplied, false},
		{0xC9, "CMP", CMP, IMMEDIATE, catRead, false},
		{0xCA, "DEX", DEX, IMPLICIT, catImplied, false},
		{0xCB, "SBX", SBX, IMMEDIATE, catRead, true},
		{0xCC, "CPY", CPY, ABSOLUTE, catRead, false},
		{0xCD, "CMP", CMP, ABSOLUTE, catRead, false},
		{0xCE, "DEC", DEC, ABSOLUTE, catRMW, false},
		{0xCF, "DCP", DCP, ABSOLUTE, catRMW, true},

		{0xD0, "BNE", BNE, RELATIVE, catBranch, false},
		{0xD1, "CMP", CMP, INDIRECT_Y, catRead, false},
		{0xD2, "JAM", JAM, IMPLICIT, catJAM, true},
		{0xD3, "DCP", DCP, INDIRECT_Y, catRMW, true},
		{0xD4, "NOP", NOP, ZERO_PAGE_X, catRead, true},
		{0xD5, "CMP", CMP, ZERO_PAGE_X, catRead, false},
		{0xD6, "DEC", DEC, ZERO_PAGE_X, catRMW, false},
		{0xD7, "DCP", DCP, ZERO_PAGE_X, catRMW, true},
		{0xD8, "CLD", CLD, IMPLICIT, catImplied, false},
		{0xD9, "CMP", CMP, ABSOLUTE_Y, catRead, false},
		{0xDA, "NOP", NOP, IMPLICIT, catImplied, true},
		{0xDB, "DCP", DCP, ABSOLUTE_Y, catRMW, true},
		{0xDC, "NOP", NOP, ABSOLUTE_X, catRead, true},
		{0xDD, "CMP", CMP, ABSOLUTE_X, catRead, false},
		{0xDE, "DEC", DEC, ABSOLUTE_X, catRMW, false},
		{0xDF, "DCP", DCP, ABSOLUTE_X, catRMW, true},

		{0xE0, "CPX", CPX, IMMEDIATE, catRead, false},
		{0xE1, "SBC", SBC, INDIRECT_X, catRead, false},
		{0xE2, "NOP", NOP, IMMEDIATE, catRead, true},
		{0xE3, "ISC", ISC, INDIRECT_X, catRMW, true},
		{0xE4, "CPX", CPX, ZERO_PAGE, catRead, false},
		{0xE5, "SBC", SBC, ZERO_PAGE, catRead, false},
		{0xE6, "INC", INC, ZERO_PAGE, catRMW, false},
		{0xE7, "ISC", ISC, ZERO_PAGE, catRMW, true},
		{0xE8, "INX", INX, IMPLICIT, catImplied, false},
		{0xE9, "SBC", SBC, IMMEDIATE, catRead, false},
		{0xEA, "NOP", NOP, IMPLICIT, catImplied, false},
		{0xEB, "SBC", SBC, IMMEDIATE, catRead, true},
		{0xEC, "CPX", CPX, ABSOLUTE, catRead, false},
		{0xED, "SBC", SBC, ABSOLUTE, catRead, false},
		{0xEE, "INC", INC, ABSOLUTE, catRMW, false},
		{0xEF, "ISC", ISC, ABSOLUTE, catRMW, true},

		{0xF0, "BEQ", BEQ, RELATIVE, catBranch, false},
		{0xF1, "SBC", SBC, INDIRECT_Y, catRead, false},
		{0xF2, "JAM", JAM, IMPLICIT, catJAM, true},
		{0xF3, "ISC", ISC, INDIRECT_Y, catRMW, true},
		{0xF4, "NOP", NOP, ZERO_PAGE_X, catRead, true},
		{0xF5, "SBC", SBC, ZERO_PAGE_X, catRead, false},
		{0xF6, "INC", INC, ZERO_PAGE_X, catRMW, false},
		{0xF7, "ISC", ISC, ZERO_PAGE_X, catRMW, true},
		{0xF8, "SED", SED, IMPLICIT, catImplied, false},
		{0xF9, "SBC", SBC, ABSOLUTE_Y, catRead, false},
		{0xFA, "NOP", NOP, IMPLICIT, catImplied, true},
		{0xFB, "ISC", ISC, ABSOLUTE_Y, catRMW, true},
		{0xFC, "NOP", NOP, ABSOLUTE_X, catRead, true},
		{0xFD, "SBC", SBC, ABSOLUTE_X, catRead, false},
		{0xFE, "INC", INC, ABSOLUTE_X, catRMW, false},
		{0xFF, "ISC", ISC, ABSOLUTE_X, catRMW, true},
	}

	for _, r := range rows {
		reg(r.code, r.name, r.op, r.mode, r.cat, r.illegal)
	}
}

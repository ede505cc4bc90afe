package isa

// Opcode is the 5-bit operation ordinal.
type Opcode uint8

const (
	OP_ADD  = Opcode(0)  // add
	OP_SUB  = Opcode(1)  // sub
	OP_MUL  = Opcode(2)  // mul
	OP_DIV  = Opcode(3)  // div
	OP_MOD  = Opcode(4)  // mod
	OP_CMP  = Opcode(5)  // cmp
	OP_AND  = Opcode(6)  // and
	OP_OR   = Opcode(7)  // or
	OP_NOT  = Opcode(8)  // not
	OP_MOV  = Opcode(9)  // mov
	OP_LSL  = Opcode(10) // lsl
	OP_LSR  = Opcode(11) // lsr
	OP_ASR  = Opcode(12) // asr
	OP_NOP  = Opcode(13) // nop
	OP_LD   = Opcode(14) // ld
	OP_ST   = Opcode(15) // st
	OP_BEQ  = Opcode(16) // beq
	OP_BGT  = Opcode(17) // bgt
	OP_B    = Opcode(18) // b
	OP_CALL = Opcode(19) // call
	OP_RET  = Opcode(20) // ret
	OP_SYS  = Opcode(21) // sys
)

// Mod selects how a 16-bit immediate is widened to 32 bits.
type Mod uint8

const (
	MOD_DEFAULT  = Mod(0b00) // sign-extend
	MOD_UNSIGNED = Mod(0b01) // zero-extend
	MOD_HIGH     = Mod(0b10) // upper half, lower 16 bits zero
)

// Register conventions. r14 doubles as the stack pointer, r15 holds the
// return address after a call. Neither is enforced by the machine model.
const (
	REG_SP   = 14
	REG_RET  = 15
	NUM_REGS = 16
)

// SupportsMod reports whether the u/h modifier suffixes are legal for
// the opcode. Eligible opcodes are those at or before mov in table order.
func (op Opcode) SupportsMod() bool {
	return op <= OP_MOV
}

// IsBranch reports whether the opcode uses the offset or bare layout
// instead of the reg/imm layouts.
func (op Opcode) IsBranch() bool {
	return op >= OP_BEQ && op <= OP_RET
}

// IsMem reports whether the opcode is a memory access.
func (op Opcode) IsMem() bool {
	return op == OP_LD || op == OP_ST
}

// String returns the mnemonic for the opcode.
func (op Opcode) String() string {
	if int(op) < len(Instructions) {
		return Instructions[op].Name
	}
	return "???"
}

// Instruction is one static entry of the instruction metadata table,
// plus (on tokenized copies) the modifier resolved from a mnemonic suffix.
type Instruction struct {
	Name   string
	Opcode Opcode
	NDst   uint8
	NSrc   uint8
	Mod    Mod
}

// Instructions is the fixed instruction metadata table. Its index is the
// opcode ordinal.
var Instructions = [22]Instruction{
	{Name: "add", Opcode: OP_ADD, NDst: 1, NSrc: 2},
	{Name: "sub", Opcode: OP_SUB, NDst: 1, NSrc: 2},
	{Name: "mul", Opcode: OP_MUL, NDst: 1, NSrc: 2},
	{Name: "div", Opcode: OP_DIV, NDst: 1, NSrc: 2},
	{Name: "mod", Opcode: OP_MOD, NDst: 1, NSrc: 2},
	{Name: "cmp", Opcode: OP_CMP, NDst: 0, NSrc: 2},
	{Name: "and", Opcode: OP_AND, NDst: 1, NSrc: 2},
	{Name: "or", Opcode: OP_OR, NDst: 1, NSrc: 2},
	{Name: "not", Opcode: OP_NOT, NDst: 1, NSrc: 1},
	{Name: "mov", Opcode: OP_MOV, NDst: 1, NSrc: 1},
	{Name: "lsl", Opcode: OP_LSL, NDst: 1, NSrc: 2},
	{Name: "lsr", Opcode: OP_LSR, NDst: 1, NSrc: 2},
	{Name: "asr", Opcode: OP_ASR, NDst: 1, NSrc: 2},
	{Name: "nop", Opcode: OP_NOP, NDst: 0, NSrc: 0},
	{Name: "ld", Opcode: OP_LD, NDst: 1, NSrc: 2},
	{Name: "st", Opcode: OP_ST, NDst: 1, NSrc: 2},
	// The single source of beq/bgt/b/call is a label.
	{Name: "beq", Opcode: OP_BEQ, NDst: 0, NSrc: 1},
	{Name: "bgt", Opcode: OP_BGT, NDst: 0, NSrc: 1},
	{Name: "b", Opcode: OP_B, NDst: 0, NSrc: 1},
	{Name: "call", Opcode: OP_CALL, NDst: 0, NSrc: 1},
	{Name: "ret", Opcode: OP_RET, NDst: 0, NSrc: 0},
	// The single source of sys is the call number, register or immediate.
	{Name: "sys", Opcode: OP_SYS, NDst: 0, NSrc: 1},
}

// Lookup finds the table entry for a mnemonic.
func Lookup(name string) (inst Instruction, ok bool) {
	for _, inst = range Instructions {
		if inst.Name == name {
			ok = true
			return
		}
	}
	return Instruction{}, false
}

// register name table, checked before mnemonics during tokenizing.
var registers = [17]struct {
	Name  string
	Index uint8
}{
	{"r0", 0},
	{"r1", 1},
	{"r2", 2},
	{"r3", 3},
	{"r4", 4},
	{"r5", 5},
	{"r6", 6},
	{"r7", 7},
	{"r8", 8},
	{"r9", 9},
	{"r10", 10},
	{"r11", 11},
	{"r12", 12},
	{"r13", 13},
	{"r14", 14},
	{"sp", REG_SP},
	{"r15", 15},
}

// LookupRegister resolves a register name to its index.
func LookupRegister(name string) (index uint8, ok bool) {
	for _, reg := range registers {
		if reg.Name == name {
			return reg.Index, true
		}
	}
	return 0, false
}

// RegisterName returns the canonical name of a register index. Aliases
// come after the canonical names in the table, so the first match wins.
func RegisterName(index uint8) string {
	for _, reg := range registers {
		if reg.Index == index {
			return reg.Name
		}
	}
	return "??"
}

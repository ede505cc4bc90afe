// Package emu executes assembled simpleRISC words against a register,
// flag, and memory model with exact two's-complement wraparound
// arithmetic. One Emulator instance owns all machine state for one run;
// the program counter leaving the instruction sequence is the only
// normal termination.
package emu

import (
	"fmt"
	"io"
	"log"

	"github.com/simple-risc/srisc/isa"
)

// MEM_WORD_MAX is the number of 32-bit memory slots. Memory is word
// addressed: 16 KiB reachable in 4-byte aligned units.
const MEM_WORD_MAX = 4096

// Emulator is the machine state for one run.
type Emulator struct {
	Verbose bool // If set, logs each executed instruction.

	Regs  [isa.NUM_REGS]int32 // Register file.
	Mem   [MEM_WORD_MAX]int32 // Word-addressed memory.
	Pc    int32               // Program counter, in word indexes.
	FlagE bool                // Equal flag, written only by cmp.
	FlagG bool                // Greater flag, written only by cmp.

	Input  io.Reader // Host input for the getchar syscall.
	Output io.Writer // Host output for putchar and the register dump.

	words []isa.Word
}

// New creates an emulator holding the instruction sequence, with all
// state zeroed.
func New(words []isa.Word) *Emulator {
	return &Emulator{words: words}
}

// unpacked is the result of decoding one word. The branch target and
// effective address are computed unconditionally, whether or not the
// opcode uses them.
type unpacked struct {
	opcode  isa.Opcode
	dst     uint8
	src1    int32
	src2    int32
	memaddr int32
	newPc   int32
}

// Run executes the fetch/decode/execute loop until the program counter
// leaves the instruction range or an error aborts the run. Errors are
// wrapped with the program counter of the failing instruction.
func (emu *Emulator) Run() (err error) {
	for emu.Pc >= 0 && int(emu.Pc) < len(emu.words) {
		if err = emu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step fetches, decodes, and executes the word at the current program
// counter. The caller is responsible for checking that the counter is
// in range before calling.
func (emu *Emulator) Step() (err error) {
	pc := emu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	word := emu.words[pc]
	if emu.Verbose {
		log.Printf("emu: %4d: %v", pc, word)
	}

	ins, err := emu.decode(word)
	if err != nil {
		return err
	}
	next, err := emu.execute(ins)
	if err != nil {
		return err
	}
	emu.Pc = next
	return nil
}

// decode unpacks one word per the layout of its opcode class.
func (emu *Emulator) decode(word isa.Word) (ins unpacked, err error) {
	ins.opcode = word.Op()
	ins.dst = word.Dst()
	ins.src1 = emu.Regs[word.Src1()]

	if word.HasImm() {
		imm := uint32(word.Imm())
		switch word.Modifier() {
		case isa.MOD_DEFAULT:
			ins.src2 = isa.SignExtend(imm, isa.IMM_BITS)
		case isa.MOD_UNSIGNED:
			ins.src2 = int32(imm)
		case isa.MOD_HIGH:
			ins.src2 = int32(imm << 16)
		default:
			return unpacked{}, ErrInvalidModifier
		}
	} else {
		ins.src2 = emu.Regs[word.Src2Reg()]
	}

	ins.newPc = emu.Pc + word.Offset()
	// imm[reg] reads as reg + imm, so register and displacement forms
	// address memory symmetrically.
	ins.memaddr = ins.src1 + ins.src2

	return ins, nil
}

// execute runs one decoded instruction and returns the next program
// counter. Non-branching opcodes write their destination and advance by
// one; branch opcodes return their own target instead.
func (emu *Emulator) execute(ins unpacked) (next int32, err error) {
	opcode := ins.opcode
	src1, src2 := ins.src1, ins.src2

	switch opcode {
	// A conditional branch whose flag is clear behaves exactly as a nop.
	case isa.OP_BEQ:
		if !emu.FlagE {
			opcode = isa.OP_NOP
		}
	case isa.OP_BGT:
		if !emu.FlagG {
			opcode = isa.OP_NOP
		}
	case isa.OP_LSL, isa.OP_LSR, isa.OP_ASR:
		// Only the low 5 bits of the shift amount apply.
		src2 &= 0b11111
	case isa.OP_DIV, isa.OP_MOD:
		if src2 == 0 {
			return 0, ErrDivideByZero
		}
	}

	var out int32
	switch opcode {
	case isa.OP_ADD:
		out = src1 + src2
	case isa.OP_SUB:
		out = src1 - src2
	case isa.OP_MUL:
		out = src1 * src2
	case isa.OP_DIV:
		out = src1 / src2
	case isa.OP_MOD:
		out = src1 % src2
	case isa.OP_CMP:
		emu.FlagE = src1 == src2
		emu.FlagG = src1 > src2
		out = emu.Regs[ins.dst]
	case isa.OP_AND:
		out = src1 & src2
	case isa.OP_OR:
		out = src1 | src2
	case isa.OP_NOT:
		out = ^src2
	case isa.OP_MOV:
		out = src2
	case isa.OP_LSL:
		out = src1 << src2
	case isa.OP_LSR:
		out = int32(uint32(src1) >> src2)
	case isa.OP_ASR:
		out = src1 >> src2
	case isa.OP_NOP:
		// Including not-taken conditional branches; the destination is
		// rewritten with its own prior value.
		out = emu.Regs[ins.dst]
	case isa.OP_LD:
		var index int32
		if index, err = wordIndex(ins.memaddr); err != nil {
			return 0, err
		}
		out = emu.Mem[index]
	case isa.OP_ST:
		var index int32
		if index, err = wordIndex(ins.memaddr); err != nil {
			return 0, err
		}
		emu.Mem[index] = emu.Regs[ins.dst]
		out = emu.Regs[ins.dst]
	case isa.OP_BEQ, isa.OP_BGT, isa.OP_B:
		return ins.newPc, nil
	case isa.OP_CALL:
		emu.Regs[isa.REG_RET] = emu.Pc + 1
		return ins.newPc, nil
	case isa.OP_RET:
		return emu.Regs[isa.REG_RET], nil
	case isa.OP_SYS:
		// The call number is src2; the return value lands in r0.
		var ret int32
		if ret, err = emu.syscall(src2); err != nil {
			return 0, err
		}
		emu.Regs[0] = ret
		return emu.Pc + 1, nil
	default:
		return 0, ErrInvalidOpcode
	}

	emu.Regs[ins.dst] = out
	return emu.Pc + 1, nil
}

// wordIndex converts a byte address into a memory slot index, checking
// sign, alignment, and bounds, in that order.
func wordIndex(memaddr int32) (index int32, err error) {
	if memaddr < 0 {
		return 0, ErrInvalidAddress
	}
	if memaddr%4 != 0 {
		return 0, ErrUnalignedAddress
	}
	index = memaddr / 4
	if index >= MEM_WORD_MAX {
		return 0, ErrInvalidAddress
	}
	return index, nil
}

// String renders the register file and flags.
func (emu *Emulator) String() (text string) {
	for n, val := range emu.Regs {
		text += fmt.Sprintf("%-3s = %v\n", isa.RegisterName(uint8(n)), val)
	}
	text += fmt.Sprintf("pc  = %v\n", emu.Pc)
	text += fmt.Sprintf("e   = %v\ng   = %v\n", emu.FlagE, emu.FlagG)
	return text
}

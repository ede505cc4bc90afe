package isa

import (
	"fmt"
)

// Field offsets within an instruction word, bit 31 most significant.
const (
	OPCODE_OFF = 27
	IMMBIT_OFF = 26
	DST_OFF    = 22
	SRC1_OFF   = 18
	MOD_OFF    = 16
	SRC2_OFF   = 14
)

// Field widths in bits.
const (
	OPCODE_BITS = 5
	REG_BITS    = 4
	MOD_BITS    = 2
	IMM_BITS    = 16
	OFFSET_BITS = 27
)

// Word is one encoded instruction.
type Word uint32

// getBits extracts an n-bit field at the given offset.
func getBits(bits uint32, n, offset uint8) uint32 {
	return (bits >> offset) & (^uint32(0) >> (32 - n))
}

// SignExtend widens the low nbits of a field to a signed 32-bit value.
func SignExtend(field uint32, nbits uint8) int32 {
	if field>>(nbits-1) != 0 {
		return int32(field | (^uint32(0) << nbits))
	}
	return int32(field)
}

// MakeReg builds a register-operand layout word.
func MakeReg(op Opcode, dst, src1, src2 uint8) Word {
	return Word(uint32(op)<<OPCODE_OFF |
		uint32(dst)<<DST_OFF |
		uint32(src1)<<SRC1_OFF |
		uint32(src2)<<SRC2_OFF)
}

// MakeImm builds an immediate-operand layout word.
func MakeImm(op Opcode, dst, src1 uint8, mod Mod, imm uint16) Word {
	return Word(uint32(op)<<OPCODE_OFF |
		1<<IMMBIT_OFF |
		uint32(dst)<<DST_OFF |
		uint32(src1)<<SRC1_OFF |
		uint32(mod)<<MOD_OFF |
		uint32(imm))
}

// MakeOffset builds a single-offset layout word. The offset is measured
// in whole instruction words and truncated to the 27-bit field.
func MakeOffset(op Opcode, offset int32) Word {
	return Word(uint32(op)<<OPCODE_OFF | (uint32(offset) & (^uint32(0) >> OPCODE_BITS)))
}

// MakeBare builds a no-operand layout word.
func MakeBare(op Opcode) Word {
	return Word(uint32(op) << OPCODE_OFF)
}

// Op extracts the opcode ordinal.
func (w Word) Op() Opcode {
	return Opcode(getBits(uint32(w), OPCODE_BITS, OPCODE_OFF))
}

// HasImm reports whether the immediate-select bit is set. Branch opcodes
// have no immediate bit; their layouts repurpose those bits.
func (w Word) HasImm() bool {
	if w.Op().IsBranch() {
		return false
	}
	return getBits(uint32(w), 1, IMMBIT_OFF) == 1
}

// Dst extracts the destination register index.
func (w Word) Dst() uint8 {
	return uint8(getBits(uint32(w), REG_BITS, DST_OFF))
}

// Src1 extracts the first source register index.
func (w Word) Src1() uint8 {
	return uint8(getBits(uint32(w), REG_BITS, SRC1_OFF))
}

// Src2Reg extracts the second source register index (register layout).
func (w Word) Src2Reg() uint8 {
	return uint8(getBits(uint32(w), REG_BITS, SRC2_OFF))
}

// Modifier extracts the immediate modifier bits (immediate layout).
func (w Word) Modifier() Mod {
	return Mod(getBits(uint32(w), MOD_BITS, MOD_OFF))
}

// Imm extracts the 16-bit immediate pattern (immediate layout).
func (w Word) Imm() uint16 {
	return uint16(getBits(uint32(w), IMM_BITS, 0))
}

// Offset extracts the signed word offset (single-offset layout).
func (w Word) Offset() int32 {
	return SignExtend(getBits(uint32(w), OFFSET_BITS, 0), OFFSET_BITS)
}

// String renders the word in assembly syntax, for traces and dumps.
func (w Word) String() string {
	op := w.Op()
	if int(op) >= len(Instructions) {
		return fmt.Sprintf("??? %#08x", uint32(w))
	}

	inst := Instructions[op]
	switch {
	case op.IsBranch():
		if inst.NSrc == 0 {
			return inst.Name
		}
		return fmt.Sprintf("%s %+d", inst.Name, w.Offset())
	case inst.NDst == 0 && inst.NSrc == 0:
		return inst.Name
	}

	name := inst.Name
	src2 := RegisterName(w.Src2Reg())
	if w.HasImm() {
		switch w.Modifier() {
		case MOD_UNSIGNED:
			name += "u"
		case MOD_HIGH:
			name += "h"
		}
		src2 = fmt.Sprintf("%#x", w.Imm())
	}

	switch {
	case op.IsMem():
		return fmt.Sprintf("%s %s, %s[%s]", name, RegisterName(w.Dst()), src2, RegisterName(w.Src1()))
	case inst.NDst == 0 && inst.NSrc == 1:
		return fmt.Sprintf("%s %s", name, src2)
	case inst.NDst == 0:
		return fmt.Sprintf("%s %s, %s", name, RegisterName(w.Src1()), src2)
	case inst.NSrc == 1:
		return fmt.Sprintf("%s %s, %s", name, RegisterName(w.Dst()), src2)
	default:
		return fmt.Sprintf("%s %s, %s, %s", name, RegisterName(w.Dst()), RegisterName(w.Src1()), src2)
	}
}

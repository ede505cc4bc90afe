package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(-1), SignExtend(0b11111, 5))
	assert.Equal(int32(-16), SignExtend(0b10000, 5))
	assert.Equal(int32(15), SignExtend(0b01111, 5))
	assert.Equal(int32(-1), SignExtend(0xffff, IMM_BITS))
	assert.Equal(int32(-1), SignExtend(0x7ffffff, OFFSET_BITS))
}

func TestRegLayout(t *testing.T) {
	assert := assert.New(t)

	word := MakeReg(OP_ADD, 0, 1, 2)
	assert.Equal(Word(0b00000_0_0000_0001_0010<<14), word)
	assert.Equal(OP_ADD, word.Op())
	assert.False(word.HasImm())
	assert.Equal(uint8(0), word.Dst())
	assert.Equal(uint8(1), word.Src1())
	assert.Equal(uint8(2), word.Src2Reg())
}

func TestImmLayout(t *testing.T) {
	assert := assert.New(t)

	word := MakeImm(OP_MOV, 0, 0, MOD_DEFAULT, 0xffff)
	assert.Equal(Word(0b01001_1_0000_0000_00_1111111111111111), word)
	assert.Equal(OP_MOV, word.Op())
	assert.True(word.HasImm())
	assert.Equal(MOD_DEFAULT, word.Modifier())
	assert.Equal(uint16(0xffff), word.Imm())

	word = MakeImm(OP_SUB, 7, 3, MOD_HIGH, 0x8001)
	assert.Equal(OP_SUB, word.Op())
	assert.Equal(uint8(7), word.Dst())
	assert.Equal(uint8(3), word.Src1())
	assert.Equal(MOD_HIGH, word.Modifier())
	assert.Equal(uint16(0x8001), word.Imm())
}

func TestOffsetLayout(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		offset int32
	}){
		{"zero", 0},
		{"forward", 3},
		{"backward", -2},
		{"far_forward", 1<<26 - 1},
		{"far_backward", -(1 << 26)},
	}

	for _, entry := range table {
		word := MakeOffset(OP_B, entry.offset)
		assert.Equal(OP_B, word.Op(), entry.name)
		assert.Equal(entry.offset, word.Offset(), entry.name)
	}

	// Branch layouts have no immediate bit, whatever the offset bits say.
	assert.False(MakeOffset(OP_B, -1).HasImm())
	assert.False(MakeOffset(OP_CALL, -1).HasImm())
}

func TestBareLayout(t *testing.T) {
	assert := assert.New(t)

	word := MakeBare(OP_RET)
	assert.Equal(Word(0b10100<<27), word)
	assert.Equal(OP_RET, word.Op())
}

func TestInstructionTable(t *testing.T) {
	assert := assert.New(t)

	// Opcode ordinal is the table index.
	for n, inst := range Instructions {
		assert.Equal(Opcode(n), inst.Opcode, inst.Name)
	}

	inst, ok := Lookup("add")
	assert.True(ok)
	assert.Equal(OP_ADD, inst.Opcode)
	assert.Equal(uint8(1), inst.NDst)
	assert.Equal(uint8(2), inst.NSrc)

	_, ok = Lookup("nosuchins")
	assert.False(ok)
}

func TestModifierEligibility(t *testing.T) {
	assert := assert.New(t)

	assert.True(OP_ADD.SupportsMod())
	assert.True(OP_MOV.SupportsMod())
	assert.False(OP_LSL.SupportsMod())
	assert.False(OP_NOP.SupportsMod())
	assert.False(OP_B.SupportsMod())
}

func TestPredicates(t *testing.T) {
	assert := assert.New(t)

	assert.True(OP_BEQ.IsBranch())
	assert.True(OP_RET.IsBranch())
	assert.False(OP_SYS.IsBranch())
	assert.False(OP_ADD.IsBranch())

	assert.True(OP_LD.IsMem())
	assert.True(OP_ST.IsMem())
	assert.False(OP_MOV.IsMem())
}

func TestRegisterNames(t *testing.T) {
	assert := assert.New(t)

	index, ok := LookupRegister("sp")
	assert.True(ok)
	assert.Equal(uint8(REG_SP), index)

	index, ok = LookupRegister("r15")
	assert.True(ok)
	assert.Equal(uint8(15), index)

	_, ok = LookupRegister("r16")
	assert.False(ok)

	assert.Equal("r14", RegisterName(14))
	assert.Equal("r15", RegisterName(15))
}

func TestWordString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word Word
		text string
	}){
		{MakeReg(OP_ADD, 0, 1, 2), "add r0, r1, r2"},
		{MakeImm(OP_MOV, 3, 0, MOD_UNSIGNED, 0x10), "movu r3, 0x10"},
		{MakeImm(OP_LD, 5, 14, MOD_DEFAULT, 8), "ld r5, 0x8[r14]"},
		{MakeReg(OP_CMP, 0, 1, 2), "cmp r1, r2"},
		{MakeOffset(OP_B, 3), "b +3"},
		{MakeBare(OP_RET), "ret"},
		{MakeBare(OP_NOP), "nop"},
		{MakeImm(OP_SYS, 0, 0, MOD_DEFAULT, 1), "sys 0x1"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.word.String())
	}
}

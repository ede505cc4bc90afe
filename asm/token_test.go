package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simple-risc/srisc/isa"
)

func TestImmediate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		input string
		imm   uint16
		err   error
	}){
		{"decimal", "42", 42, nil},
		{"zero", "0", 0, nil},
		{"plus", "+7", 7, nil},
		{"negative", "-42", ^uint16(42) + 1, nil},
		{"negative_hex", "-0x69", ^uint16(0x69) + 1, nil},
		{"hex", "0xFFFF", 0xffff, nil},
		{"octal", "0o17", 15, nil},
		{"binary", "0b1101", 13, nil},
		{"min_signed", "-32768", 0x8000, nil},
		{"overflow", "0x1FFFF", 0, ErrImmOverflow},
		{"neg_overflow", "-32769", 0, ErrImmOverflow},
		{"garbage", "0x1oops", 0, ErrInvalidImm},
	}

	for _, entry := range table {
		tok, err := immediate(NewScanner(entry.input))
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
			continue
		}
		assert.NoError(err, entry.name)
		assert.Equal(TokImm, tok.Kind, entry.name)
		assert.Equal(entry.imm, tok.Imm, entry.name)
	}
}

func TestInstruction(t *testing.T) {
	assert := assert.New(t)

	tok, ok, err := instruction("add")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(isa.OP_ADD, tok.Inst.Opcode)
	assert.Equal(isa.MOD_DEFAULT, tok.Inst.Mod)

	tok, ok, err = instruction("addh")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(isa.OP_ADD, tok.Inst.Opcode)
	assert.Equal(isa.MOD_HIGH, tok.Inst.Mod)

	tok, ok, err = instruction("movu")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(isa.OP_MOV, tok.Inst.Opcode)
	assert.Equal(isa.MOD_UNSIGNED, tok.Inst.Mod)

	// nop is past mov in table order, so modifiers are illegal.
	_, _, err = instruction("nopu")
	assert.ErrorIs(err, ErrIllegalModifier)

	_, ok, err = instruction("nosuchins")
	assert.NoError(err)
	assert.False(ok)
}

func TestIdentifierResolution(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		input string
		kind  TokenKind
	}){
		{"register", "r13", TokReg},
		{"sp_alias", "sp", TokReg},
		{"mnemonic", "cmp", TokInst},
		{"label", "loop_1.x$", TokIdent},
	}

	for _, entry := range table {
		tok, err := identifier(NewScanner(entry.input))
		assert.NoError(err, entry.name)
		assert.Equal(entry.kind, tok.Kind, entry.name)
	}

	tok, err := identifier(NewScanner("sp"))
	assert.NoError(err)
	assert.Equal(uint8(isa.REG_SP), tok.Reg)
}

func TestComments(t *testing.T) {
	assert := assert.New(t)

	scn := NewScanner("@ line comment\nadd")
	tok, err := nextToken(scn)
	assert.NoError(err)
	assert.Equal(TokChar, tok.Kind)
	assert.Equal('\n', tok.Char)

	scn = NewScanner("/* block\ncomment */ret")
	tok, err = nextToken(scn)
	assert.NoError(err)
	assert.Equal(TokInst, tok.Kind)
	assert.Equal(isa.OP_RET, tok.Inst.Opcode)

	_, err = nextToken(NewScanner("/* unterminated"))
	assert.ErrorIs(err, ErrOpenComment)

	_, err = nextToken(NewScanner("/ oops */"))
	assert.Equal(ErrCharExpected('*'), err)
}

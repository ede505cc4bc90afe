package asm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simple-risc/srisc/isa"
)

func TestProgramBytes(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Words: []isa.Word{0x11223344, 0xdeadbeef}}

	// Little-endian 32-bit words in program order.
	assert.Equal([]byte{
		0x44, 0x33, 0x22, 0x11,
		0xef, 0xbe, 0xad, 0xde,
	}, prog.Bytes())
}

func TestProgramReadBack(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble("mov r0, -0x1\nadd r0, r1, r2\nret\n")
	assert.NoError(err)

	var buf bytes.Buffer
	n, err := prog.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(12), n)

	loaded, err := Read(&buf)
	assert.NoError(err)
	assert.Equal(prog.Words, loaded.Words)
}

func TestProgramReadTruncated(t *testing.T) {
	assert := assert.New(t)

	_, err := Read(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(err, ErrTruncatedProgram)
}

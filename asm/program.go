package asm

import (
	"encoding/binary"
	"io"

	"github.com/simple-risc/srisc/isa"
)

// Program is an assembled word sequence in program order.
type Program struct {
	Words []isa.Word
}

// Bytes serializes the program as little-endian 32-bit words, the only
// binary artifact format.
func (prog *Program) Bytes() []byte {
	buf := make([]byte, 0, len(prog.Words)*4)
	for _, word := range prog.Words {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(word))
	}
	return buf
}

// WriteTo writes the serialized program to w.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	written, err := w.Write(prog.Bytes())
	return int64(written), err
}

// Read loads a program back from its serialized form. The input must
// contain whole 32-bit words.
func Read(r io.Reader) (prog *Program, err error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(buf)%4 != 0 {
		return nil, ErrTruncatedProgram
	}

	prog = &Program{Words: make([]isa.Word, 0, len(buf)/4)}
	for at := 0; at < len(buf); at += 4 {
		prog.Words = append(prog.Words, isa.Word(binary.LittleEndian.Uint32(buf[at:])))
	}
	return prog, nil
}

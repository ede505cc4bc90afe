package emu

import (
	"errors"

	"github.com/simple-risc/srisc/translate"
)

var f = translate.From

var (
	ErrInvalidModifier  = errors.New(f("invalid modifier bits"))
	ErrInvalidAddress   = errors.New(f("memory address out of range"))
	ErrUnalignedAddress = errors.New(f("unaligned memory address"))
	ErrInvalidOpcode    = errors.New(f("invalid opcode"))
	ErrInvalidSyscall   = errors.New(f("invalid syscall number"))
	ErrDivideByZero     = errors.New(f("divide by zero"))
)

// ErrRuntime locates an execution error at the program counter where
// the simulator aborted.
type ErrRuntime struct {
	Pc  int32
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d: %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

package emu

import (
	"github.com/k0kubun/pp/v3"
)

// Syscall numbers.
const (
	SYS_GETCHAR = 0 // read one byte from host input into r0
	SYS_PUTCHAR = 1 // write the byte in r1 to host output
	SYS_DUMP    = 2 // pretty-print the machine state to host output
)

// syscalls is the fixed host dispatch table. A syscall may block on
// host input; host I/O failures are absorbed into the -1 sentinel
// rather than aborting the run.
var syscalls = [...]func(*Emulator) int32{
	SYS_GETCHAR: sysGetChar,
	SYS_PUTCHAR: sysPutChar,
	SYS_DUMP:    sysDump,
}

// syscall dispatches on the call number. Only an unrecognized number is
// an error.
func (emu *Emulator) syscall(num int32) (ret int32, err error) {
	if num < 0 || int(num) >= len(syscalls) {
		return 0, ErrInvalidSyscall
	}
	return syscalls[num](emu), nil
}

func sysGetChar(emu *Emulator) int32 {
	if emu.Input == nil {
		return -1
	}
	var buf [1]byte
	n, err := emu.Input.Read(buf[:])
	if err != nil || n != 1 {
		return -1
	}
	return int32(buf[0])
}

func sysPutChar(emu *Emulator) int32 {
	c := emu.Regs[1]
	if emu.Output == nil {
		return -1
	}
	if _, err := emu.Output.Write([]byte{byte(c)}); err != nil {
		return -1
	}
	return c
}

// machineState is the diagnostic view written by the dump syscall.
type machineState struct {
	Regs  [16]int32
	Pc    int32
	FlagE bool
	FlagG bool
}

func sysDump(emu *Emulator) int32 {
	if emu.Output == nil {
		return -1
	}
	printer := pp.New()
	printer.SetOutput(emu.Output)
	printer.SetColoringEnabled(false)
	if _, err := printer.Println(machineState{
		Regs:  emu.Regs,
		Pc:    emu.Pc,
		FlagE: emu.FlagE,
		FlagG: emu.FlagG,
	}); err != nil {
		return -1
	}
	return 0
}

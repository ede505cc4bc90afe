// Command srisc assembles and runs simpleRISC programs.
//
// With -o, the assembled words are written to a file as little-endian
// 32-bit words instead of being executed. Otherwise the program runs to
// completion and the final register state is printed.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/simple-risc/srisc/asm"
	"github.com/simple-risc/srisc/emu"
)

func main() {
	var output string
	var dump bool
	var verbose bool

	flag.StringVar(&output, "o", "", "write assembled words to file, do not execute")
	flag.BoolVar(&dump, "d", false, "pretty-dump the final machine state")
	flag.BoolVar(&verbose, "v", false, "verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: %v [-o out.bin] [-d] [-v] source.s", os.Args[0])
	}
	source := flag.Arg(0)

	text, err := os.ReadFile(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	assembler := &asm.Assembler{Verbose: verbose}
	prog, err := assembler.Assemble(string(text))
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if output != "" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		if _, err = prog.WriteTo(ouf); err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	machine := emu.New(prog.Words)
	machine.Verbose = verbose
	machine.Input = os.Stdin
	machine.Output = os.Stdout

	if err = machine.Run(); err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if dump {
		pp.Println(machine.Regs)
		return
	}
	fmt.Print(machine.String())
}

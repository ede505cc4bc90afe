package asm

import (
	"fmt"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/simple-risc/srisc/emu"
	"github.com/simple-risc/srisc/isa"
)

// Predefined system equates, available to .equ values and $() expressions.
var sysEquate = map[string]int64{
	"MEM_WORDS": emu.MEM_WORD_MAX,
	"MEM_BYTES": emu.MEM_WORD_MAX * 4,
	"NUM_REGS":  isa.NUM_REGS,
}

var exprRe = regexp.MustCompile(`\$\(([^()]*)\)`)

// Predefine injects a host-side equate, visible to $() expressions.
func (asm *Assembler) Predefine(name string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{}
	}
	asm.predefine[name] = value
}

// evalExpr evaluates one compile-time expression with Starlark. All
// equates are predeclared as ints.
func (asm *Assembler) evalExpr(expr string) (value int64, err error) {
	defer func() {
		if err != nil {
			err = &ErrExpr{Expr: expr, Err: err}
		}
	}()

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, val := range asm.equate {
		pred[name] = starlark.MakeInt64(val)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	rc, ok := dict["rc"]
	if !ok {
		err = fmt.Errorf("no result")
		return
	}
	rcInt, ok := rc.(starlark.Int)
	if !ok {
		err = fmt.Errorf("result is not an integer")
		return
	}
	value, ok = rcInt.Int64()
	if !ok {
		err = fmt.Errorf("result does not fit in 64 bits")
		return
	}
	return
}

// expandSource runs the preprocessor over the whole source text: .equ
// lines define equates and are blanked out, and $() spans are replaced
// by their evaluated value. Both transformations preserve line numbers,
// so scanner diagnostics still point at the original source.
func (asm *Assembler) expandSource(src string) (out string, err error) {
	asm.equate = map[string]int64{}
	for name, val := range sysEquate {
		asm.equate[name] = val
	}
	for name, val := range asm.predefine {
		asm.equate[name] = val
	}

	lines := strings.Split(src, "\n")
	for n, line := range lines {
		lineno := n + 1

		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == ".equ" {
			if len(fields) < 3 {
				return "", &ErrSyntax{LineNo: lineno, Err: ErrEquateSyntax}
			}
			name := fields[1]
			if _, ok := asm.equate[name]; ok {
				return "", &ErrSyntax{LineNo: lineno, Err: ErrEquateDuplicate}
			}
			var value int64
			value, err = asm.evalExpr(strings.Join(fields[2:], " "))
			if err != nil {
				return "", &ErrSyntax{LineNo: lineno, Err: err}
			}
			asm.equate[name] = value
			lines[n] = ""
			continue
		}

		if !strings.Contains(line, "$(") {
			continue
		}
		lines[n] = exprRe.ReplaceAllStringFunc(line, func(span string) string {
			value, everr := asm.evalExpr(span[2 : len(span)-1])
			if everr != nil {
				err = everr
			}
			return fmt.Sprintf("%v", value)
		})
		if err != nil {
			return "", &ErrSyntax{LineNo: lineno, Err: err}
		}
	}

	return strings.Join(lines, "\n"), nil
}

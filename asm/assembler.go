package asm

import (
	"log"

	"github.com/simple-risc/srisc/isa"
)

// OperandKind tags the Operand variant.
type OperandKind int

const (
	OperandReg = OperandKind(iota)
	OperandImm
	OperandLabel
)

// Operand is the variable second source of a statement: a register, a
// 16-bit immediate pattern, or a label reference.
type Operand struct {
	Kind  OperandKind
	Reg   uint8
	Imm   uint16
	Label string
}

// Statement is one parsed instruction line. Its position in the
// statement list is its word index, the unit both the program counter
// and branch offsets are measured in.
type Statement struct {
	Inst isa.Instruction
	Dst  uint8
	Src1 uint8
	Src2 Operand
}

// Assembler is a two-pass assembler for simpleRISC source text. Pass 1
// builds the statement list and the label table; pass 2 encodes one
// 32-bit word per statement. The label table is complete before any
// label-referencing instruction is encoded, so forward references need
// no backpatching.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]int64
	equate    map[string]int64
	labels    map[string]int
	stmts     []Statement
	scn       *Scanner
	line      int // line the most recent token started on
}

// Assemble compiles source text into a Program. It fails fast on the
// first error; all pass-1 errors carry the source line.
func (asm *Assembler) Assemble(src string) (prog *Program, err error) {
	src, err = asm.expandSource(src)
	if err != nil {
		return
	}

	asm.scn = NewScanner(src)
	asm.labels = map[string]int{}
	asm.stmts = asm.stmts[:0]

	err = asm.parse()
	if err != nil {
		return nil, &ErrSyntax{LineNo: asm.line, Err: err}
	}

	words, err := asm.encode()
	if err != nil {
		// Undefined labels surface here, after pass 1 has consumed all
		// input; they carry no line number.
		return nil, err
	}

	return &Program{Words: words}, nil
}

// parse is pass 1: it consumes the token stream line by line, appending
// statements and filling the label table.
func (asm *Assembler) parse() (err error) {
	for {
		tok, err := asm.next()
		if err != nil {
			return err
		}

		switch tok.Kind {
		case TokIdent:
			// A label definition names the next statement appended.
			next, err := asm.next()
			if err != nil {
				return err
			}
			if err = next.tryChar(':'); err != nil {
				return err
			}
			if _, ok := asm.labels[tok.Ident]; ok {
				return ErrDuplicateLabel(tok.Ident)
			}
			asm.labels[tok.Ident] = len(asm.stmts)
		case TokInst:
			stmt, err := asm.makeStatement(tok.Inst)
			if err != nil {
				return err
			}
			if asm.Verbose {
				log.Printf("asm: %v: %v %v", len(asm.stmts), stmt.Inst.Name, stmt.Src2)
			}
			asm.stmts = append(asm.stmts, stmt)
		case TokChar:
			if tok.Char == '\n' {
				// Blank line between statements.
				continue
			}
			return ErrTokenUnexpected
		case TokEOF:
			return nil
		default:
			return ErrTokenUnexpected
		}
	}
}

// next runs the tokenizer for one token, remembering the line it
// started on so errors point at the right place even after the token
// (a statement-terminating newline in particular) has been consumed.
func (asm *Assembler) next() (Token, error) {
	asm.line = asm.scn.Line()
	return nextToken(asm.scn)
}

// makeStatement parses the operands of one instruction statement. The
// grammar class is selected by the descriptor's operand counts and by
// whether the opcode is a memory access:
//
//	ld/st:      [dst ','] imm '[' reg ']'
//	branches:   label
//	unary:      dst ',' (reg|imm)
//	binary:     [dst ','] reg ',' (reg|imm)
//	nullary:    (no operands)
func (asm *Assembler) makeStatement(inst isa.Instruction) (stmt Statement, err error) {
	stmt = Statement{Inst: inst, Src2: Operand{Kind: OperandReg}}

	// Branch opcodes take a single label operand. sys is also (0,1)
	// but its operand is a plain register-or-immediate call number.
	isLabel := inst.NDst == 0 && inst.NSrc == 1 && inst.Opcode.IsBranch()

	if inst.NDst == 1 {
		var tok Token
		if tok, err = asm.next(); err != nil {
			return
		}
		if stmt.Dst, err = tok.tryReg(); err != nil {
			return
		}
		if inst.NSrc > 0 {
			if err = asm.expectChar(','); err != nil {
				return
			}
		}
	}

	switch {
	case inst.Opcode.IsMem():
		// The displacement immediate becomes src2, the base register src1.
		var tok Token
		if tok, err = asm.next(); err != nil {
			return
		}
		var imm uint16
		if imm, err = tok.tryImm(); err != nil {
			return
		}
		stmt.Src2 = Operand{Kind: OperandImm, Imm: imm}
		if err = asm.expectChar('['); err != nil {
			return
		}
		if tok, err = asm.next(); err != nil {
			return
		}
		if stmt.Src1, err = tok.tryReg(); err != nil {
			return
		}
		if err = asm.expectChar(']'); err != nil {
			return
		}
	case isLabel:
		var tok Token
		if tok, err = asm.next(); err != nil {
			return
		}
		var name string
		if name, err = tok.tryIdent(); err != nil {
			return
		}
		stmt.Src2 = Operand{Kind: OperandLabel, Label: name}
	case inst.NSrc == 1:
		if stmt.Src2, err = asm.operand(); err != nil {
			return
		}
	case inst.NSrc == 2:
		var tok Token
		if tok, err = asm.next(); err != nil {
			return
		}
		if stmt.Src1, err = tok.tryReg(); err != nil {
			return
		}
		if err = asm.expectChar(','); err != nil {
			return
		}
		if stmt.Src2, err = asm.operand(); err != nil {
			return
		}
	}

	// A modifier suffix is only legal on an immediate operand.
	if stmt.Src2.Kind != OperandImm && inst.Mod != isa.MOD_DEFAULT {
		err = ErrIllegalModifier
		return
	}

	// Every statement is terminated by a newline.
	if err = asm.expectChar('\n'); err != nil {
		return
	}

	return stmt, nil
}

// operand parses a register-or-immediate operand.
func (asm *Assembler) operand() (op Operand, err error) {
	tok, err := asm.next()
	if err != nil {
		return
	}
	switch tok.Kind {
	case TokReg:
		return Operand{Kind: OperandReg, Reg: tok.Reg}, nil
	case TokImm:
		return Operand{Kind: OperandImm, Imm: tok.Imm}, nil
	default:
		return Operand{}, ErrOperandExpected
	}
}

// expectChar consumes one token and requires it to be the given character.
func (asm *Assembler) expectChar(want rune) error {
	tok, err := asm.next()
	if err != nil {
		return err
	}
	return tok.tryChar(want)
}

// encode is pass 2: it walks the statement list in order and emits one
// word per statement. Label references resolve against the completed
// label table; the encoded offset is the signed distance in whole words.
func (asm *Assembler) encode() (words []isa.Word, err error) {
	words = make([]isa.Word, 0, len(asm.stmts))

	for _, stmt := range asm.stmts {
		var word isa.Word

		switch stmt.Src2.Kind {
		case OperandLabel:
			at, ok := asm.labels[stmt.Src2.Label]
			if !ok {
				return nil, ErrUndefinedLabel(stmt.Src2.Label)
			}
			word = isa.MakeOffset(stmt.Inst.Opcode, int32(at)-int32(len(words)))
		case OperandImm:
			word = isa.MakeImm(stmt.Inst.Opcode, stmt.Dst, stmt.Src1, stmt.Inst.Mod, stmt.Src2.Imm)
		default:
			if stmt.Inst.NDst == 0 && stmt.Inst.NSrc == 0 {
				word = isa.MakeBare(stmt.Inst.Opcode)
			} else {
				word = isa.MakeReg(stmt.Inst.Opcode, stmt.Dst, stmt.Src1, stmt.Src2.Reg)
			}
		}

		if asm.Verbose {
			log.Printf("asm: %v: %#08x %v", len(words), uint32(word), word)
		}
		words = append(words, word)
	}

	return words, nil
}

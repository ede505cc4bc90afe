package asm

import (
	"errors"
	"strconv"
	"strings"

	"github.com/simple-risc/srisc/isa"
)

// TokenKind tags the Token variant.
type TokenKind int

const (
	TokEOF = TokenKind(iota)
	TokIdent
	TokInst
	TokReg
	TokImm
	TokChar
)

// Token is one lexical element of the source text.
type Token struct {
	Kind  TokenKind
	Ident string          // TokIdent
	Inst  isa.Instruction // TokInst, with the resolved modifier
	Reg   uint8           // TokReg
	Imm   uint16          // TokImm, a raw 16-bit pattern
	Char  rune            // TokChar
}

func (t Token) tryImm() (uint16, error) {
	if t.Kind != TokImm {
		return 0, ErrImmediateExpected
	}
	return t.Imm, nil
}

func (t Token) tryReg() (uint8, error) {
	if t.Kind != TokReg {
		return 0, ErrRegisterExpected
	}
	return t.Reg, nil
}

func (t Token) tryIdent() (string, error) {
	if t.Kind != TokIdent {
		return "", ErrIdentExpected
	}
	return t.Ident, nil
}

func (t Token) tryChar(want rune) error {
	if t.Kind != TokChar || t.Char != want {
		return ErrCharExpected(want)
	}
	return nil
}

// nextToken scans the next token, skipping horizontal whitespace and
// comments. Newlines are significant and come back as Char tokens.
func nextToken(scn *Scanner) (tok Token, err error) {
	for {
		ch, ok := scn.Peek()
		if !ok {
			return Token{Kind: TokEOF}, nil
		}

		if ch == ' ' || ch == '\t' {
			scn.Next()
			continue
		}
		if ch == '@' || ch == '/' {
			if err = eatComment(scn); err != nil {
				return
			}
			continue
		}

		switch {
		case ch == '+' || ch == '-' || (ch >= '0' && ch <= '9'):
			return immediate(scn)
		case isIdentRune(ch):
			return identifier(scn)
		default:
			scn.Next()
			return Token{Kind: TokChar, Char: ch}, nil
		}
	}
}

// eatComment consumes a line comment ('@' to end of line) or a block
// comment ('/*' to '*/'). The terminating newline of a line comment is
// left for the tokenizer, since newlines are statement terminators.
func eatComment(scn *Scanner) error {
	if scn.EatPrefix("@") {
		scn.TakeWhile(func(ch rune) bool { return ch != '\n' })
		return nil
	}
	if scn.EatPrefix("/*") {
		for !scn.EatPrefix("*/") {
			if _, ok := scn.Next(); !ok {
				return ErrOpenComment
			}
		}
		return nil
	}
	// First rune was '/', so the '*' is missing.
	return ErrCharExpected('*')
}

// immediate scans a numeric literal: optional sign, optional base prefix
// (0x, 0o, 0b), then a run of digits in that base. The result is a raw
// 16-bit pattern; negative values are stored as two's complement and the
// signed/unsigned reading is deferred to the modifier bits at decode time.
func immediate(scn *Scanner) (tok Token, err error) {
	base := 10
	neg := false

	if ch, ok := scn.Peek(); ok && (ch == '+' || ch == '-') {
		scn.Next()
		neg = ch == '-'
	}
	if ch, _ := scn.Peek(); ch == '0' {
		switch ch, _ := scn.PeekN(1); ch {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 10 {
			scn.Next()
			scn.Next()
		}
	}

	digits := scn.TakeWhile(isAlnum)
	num, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Token{}, ErrImmOverflow
		}
		return Token{}, ErrInvalidImm
	}

	imm := uint16(num)
	if neg {
		// The magnitude must fit the signed 16-bit range.
		if num > 1<<15 {
			return Token{}, ErrImmOverflow
		}
		imm = ^imm + 1
	}
	return Token{Kind: TokImm, Imm: imm}, nil
}

func isAlnum(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentRune(ch rune) bool {
	return isAlnum(ch) || ch == '_' || ch == '.' || ch == '$'
}

// identifier scans an identifier run and resolves it: register names
// first, then mnemonics with an optional trailing modifier suffix, and
// finally a generic identifier (a label reference or definition).
func identifier(scn *Scanner) (tok Token, err error) {
	ident := scn.TakeWhile(isIdentRune)

	if reg, ok := isa.LookupRegister(ident); ok {
		return Token{Kind: TokReg, Reg: reg}, nil
	}
	if tok, ok, err := instruction(ident); err != nil || ok {
		return tok, err
	}
	return Token{Kind: TokIdent, Ident: ident}, nil
}

// instruction matches an identifier against the mnemonic table, after
// stripping an optional 'u' (unsigned) or 'h' (high) modifier suffix.
// A suffix on an opcode that does not support modifiers is an error even
// when the stripped mnemonic matches.
func instruction(name string) (tok Token, ok bool, err error) {
	mod := isa.MOD_DEFAULT
	switch {
	case strings.HasSuffix(name, "u"):
		name = strings.TrimSuffix(name, "u")
		mod = isa.MOD_UNSIGNED
	case strings.HasSuffix(name, "h"):
		name = strings.TrimSuffix(name, "h")
		mod = isa.MOD_HIGH
	}

	inst, found := isa.Lookup(name)
	if !found {
		return Token{}, false, nil
	}
	if mod != isa.MOD_DEFAULT && !inst.Opcode.SupportsMod() {
		return Token{}, false, ErrIllegalModifier
	}

	inst.Mod = mod
	return Token{Kind: TokInst, Inst: inst}, true, nil
}

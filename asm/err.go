package asm

import (
	"errors"

	"github.com/simple-risc/srisc/translate"
)

var f = translate.From

var (
	// Tokenizer errors
	ErrIllegalModifier = errors.New(f("modifier not allowed"))
	ErrImmOverflow     = errors.New(f("immediate out of range (overflow)"))
	ErrInvalidImm      = errors.New(f("invalid immediate"))
	ErrOpenComment     = errors.New(f("comment not closed"))

	// Statement grammar errors
	ErrRegisterExpected  = errors.New(f("register expected"))
	ErrImmediateExpected = errors.New(f("immediate expected"))
	ErrOperandExpected   = errors.New(f("immediate or register expected"))
	ErrIdentExpected     = errors.New(f("label expected"))
	ErrTokenUnexpected   = errors.New(f("token not expected by any rule"))

	// Preprocessor errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))

	// Binary artifact errors
	ErrTruncatedProgram = errors.New(f("program not a whole number of words"))
)

// ErrCharExpected names the punctuation character the grammar required.
type ErrCharExpected rune

func (err ErrCharExpected) Error() string {
	return f("character %q expected", rune(err))
}

// ErrDuplicateLabel names a label defined twice.
type ErrDuplicateLabel string

func (err ErrDuplicateLabel) Error() string {
	return f("duplicate label '%v'", string(err))
}

// ErrUndefinedLabel names a referenced label that was never defined.
// Forward references are legal, so this only surfaces during encoding,
// after the whole label table has been built; it carries no line number.
type ErrUndefinedLabel string

func (err ErrUndefinedLabel) Error() string {
	return f("label not found '%v'", string(err))
}

// ErrExpr reports a compile-time $(...) expression that failed to evaluate.
type ErrExpr struct {
	Expr string
	Err  error
}

func (err *ErrExpr) Error() string {
	return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
}

func (err *ErrExpr) Unwrap() error {
	return err.Err
}

// ErrSyntax locates an assembly error on its source line.
type ErrSyntax struct {
	LineNo int
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

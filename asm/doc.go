// Package asm compiles simpleRISC assembly text into 32-bit machine
// words.
//
// Assembly is staged: a preprocessor expands .equ equates and
// compile-time $() Starlark expressions, a scanner/tokenizer turns the
// text into typed tokens, pass 1 builds the statement list and label
// table, and pass 2 encodes one word per statement. Labels may be
// forward-referenced, which is why resolution waits for pass 2.
package asm

// Package isa describes the simpleRISC instruction set: the fixed
// instruction metadata table, the register name table, and the bit-field
// codec shared by the assembler's encode pass and the emulator's decoder.
//
// Every instruction occupies one 32-bit word in one of four layouts:
//
//	5       1   4       4        4        14
//	opcode  I=0 dst     src1     src2reg  (unused)
//
//	5       1   4       4        2        16
//	opcode  I=1 dst     src1     modbits  immediate
//
//	5       27
//	opcode  word offset (two's complement)
//
//	5       27
//	opcode  (unused)
package isa

package codegen

import (
	"math"

	"github.com/lithic-lang/lithic/mods/asm"
)

// ifEqual replaces rax with #t or #f from the current ZF flag.
func ifEqual() []asm.Statement {
	return []asm.Statement{
		asm.Mov(asm.RAX, asm.Imm(int64(ValFalse))),
		asm.Mov(asm.R9, asm.Imm(int64(ValTrue))),
		asm.Cmove(asm.RAX, asm.R9),
	}
}

// ifLessThan replaces rax with #t or #f from the current SF/OF flags.
func ifLessThan() []asm.Statement {
	return []asm.Statement{
		asm.Mov(asm.RAX, asm.Imm(int64(ValFalse))),
		asm.Mov(asm.R9, asm.Imm(int64(ValTrue))),
		asm.Cmovl(asm.RAX, asm.R9),
	}
}

// cmpImm compares a register against a constant. cmp only accepts a
// sign-extended 32-bit immediate, so wide values go through r9 first.
func cmpImm(reg asm.Register, w Word) []asm.Statement {
	if w >= math.MinInt32 && w <= math.MaxInt32 {
		return []asm.Statement{asm.Cmp(reg, asm.Imm(int64(w)))}
	}
	return []asm.Statement{
		asm.Mov(asm.R9, asm.Imm(int64(w))),
		asm.Cmp(reg, asm.R9),
	}
}

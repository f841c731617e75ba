package codegen

import "github.com/lithic-lang/lithic/mods/asm"

// Type assertions jump to the runtime error handler on failure. They
// clobber r9 and leave the checked register untouched.

func assertType(t UnaryType, reg asm.Register) []asm.Statement {
	return []asm.Statement{
		asm.Mov(asm.R9, reg),
		asm.And(asm.R9, asm.Imm(int64(t.Mask()))),
		asm.Cmp(asm.R9, asm.Imm(int64(t.Tag))),
		asm.Jne(errLabel),
	}
}

func assertInt(reg asm.Register) []asm.Statement {
	return assertType(IntType, reg)
}

func assertChar(reg asm.Register) []asm.Statement {
	return assertType(CharType, reg)
}

func assertPtrTag(tag Word, reg asm.Register) []asm.Statement {
	return []asm.Statement{
		asm.Mov(asm.R9, reg),
		asm.And(asm.R9, asm.Imm(int64(PtrMask))),
		asm.Cmp(asm.R9, asm.Imm(int64(tag))),
		asm.Jne(errLabel),
	}
}

// assertNatural requires a non-negative integer.
func assertNatural(reg asm.Register) []asm.Statement {
	out := assertInt(reg)
	return append(out,
		asm.Cmp(reg, asm.Imm(0)),
		asm.Jl(errLabel),
	)
}

// assertByte requires an integer in 0..255.
func assertByte(reg asm.Register) []asm.Statement {
	out := assertInt(reg)
	return append(out,
		asm.Cmp(reg, asm.Imm(int64(EncodeInt(0)))),
		asm.Jl(errLabel),
		asm.Cmp(reg, asm.Imm(int64(EncodeInt(255)))),
		asm.Jg(errLabel),
	)
}

// assertCodepoint requires an integer that is a valid Unicode scalar
// value: 0..0x10FFFF excluding the surrogate range D800..DFFF.
func (c *Compiler) assertCodepoint(reg asm.Register) []asm.Statement {
	ok := c.seq.fresh("codepoint_ok")
	out := assertInt(reg)
	return append(out,
		asm.Cmp(reg, asm.Imm(int64(EncodeInt(0)))),
		asm.Jl(errLabel),
		asm.Cmp(reg, asm.Imm(int64(EncodeInt(0x10FFFF)))),
		asm.Jg(errLabel),
		asm.Cmp(reg, asm.Imm(int64(EncodeInt(0xD800-1)))),
		asm.Jle(ok),
		asm.Cmp(reg, asm.Imm(int64(EncodeInt(0xDFFF+1)))),
		asm.Jl(errLabel),
		asm.Label(ok),
	)
}

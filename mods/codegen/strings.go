package codegen

import "github.com/lithic-lang/lithic/mods/asm"

// A string is a length word followed by 4-byte codepoints, padded out
// to a word boundary. The empty string is an immediate.

// stringBytes is the padded heap footprint of an n-character string.
func stringBytes(length int) int64 {
	return int64(8 + (4*length+7)&^7)
}

// stringLit builds a literal string on the heap.
func (c *Compiler) stringLit(value string) []asm.Statement {
	runes := []rune(value)
	if len(runes) == 0 {
		return loadValue(ValEmptyString)
	}
	out := []asm.Statement{
		asm.Mov(asm.RAX, asm.RBX),
		asm.Or(asm.RAX, asm.Imm(int64(StringTag))),
		asm.Mov(asm.R9, asm.Imm(int64(len(runes)))),
		asm.Mov(asm.Offset{Base: asm.RBX}, asm.R9),
	}
	for i, r := range runes {
		out = append(out,
			asm.Mov(asm.R9, asm.Imm(int64(r))),
			asm.Mov(asm.Offset{Base: asm.RBX, Disp: 8 + 4*i}, asm.R9D),
		)
	}
	return append(out, asm.Add(asm.RBX, asm.Imm(stringBytes(len(runes)))))
}

// makeString allocates a string of r8 (encoded length) copies of the
// character in rax.
func (c *Compiler) makeString() []asm.Statement {
	empty := c.seq.fresh("string_empty")
	loop := c.seq.fresh("string_fill")
	end := c.seq.fresh("string_end")

	out := assertNatural(asm.R8)
	out = append(out, assertChar(asm.RAX)...)
	return append(out,
		asm.Cmp(asm.R8, asm.Imm(0)),
		asm.Je(empty),
		asm.Sar(asm.R8, asm.Imm(int64(IntType.Shift))),
		asm.Sar(asm.RAX, asm.Imm(int64(CharType.Shift))),
		asm.Mov(asm.R9, asm.RBX),
		asm.Or(asm.R9, asm.Imm(int64(StringTag))),
		asm.Mov(asm.Offset{Base: asm.RBX}, asm.R8),
		asm.Add(asm.RBX, asm.Imm(8)),
		asm.Label(loop),
		asm.Mov(asm.Offset{Base: asm.RBX}, asm.EAX),
		asm.Add(asm.RBX, asm.Imm(4)),
		asm.Sub(asm.R8, asm.Imm(1)),
		asm.Cmp(asm.R8, asm.Imm(0)),
		asm.Jne(loop),
		asm.Add(asm.RBX, asm.Imm(7)),
		asm.And(asm.RBX, asm.Imm(-8)),
		asm.Mov(asm.RAX, asm.R9),
		asm.Jmp(end),
		asm.Label(empty),
		asm.Mov(asm.RAX, asm.Imm(int64(ValEmptyString))),
		asm.Label(end),
	)
}

// stringRef reads character rax (encoded index) of string r8.
func stringRef() []asm.Statement {
	out := []asm.Statement{
		asm.Cmp(asm.R8, asm.Imm(int64(ValEmptyString))),
		asm.Je(errLabel),
	}
	out = append(out, assertPtrTag(StringTag, asm.R8)...)
	out = append(out, assertInt(asm.RAX)...)
	return append(out,
		asm.Xor(asm.R8, asm.Imm(int64(StringTag))),
		asm.Sar(asm.RAX, asm.Imm(int64(IntType.Shift))),
		asm.Cmp(asm.RAX, asm.Imm(0)),
		asm.Jl(errLabel),
		asm.Mov(asm.R9, asm.Offset{Base: asm.R8}),
		asm.Cmp(asm.RAX, asm.R9),
		asm.Jge(errLabel),
		asm.Sal(asm.RAX, asm.Imm(2)),
		asm.Add(asm.R8, asm.RAX),
		asm.Mov(asm.EAX, asm.Offset{Base: asm.R8, Disp: 8}),
		asm.Sal(asm.RAX, asm.Imm(int64(CharType.Shift))),
		asm.Or(asm.RAX, asm.Imm(int64(CharType.Tag))),
	)
}

// compareStringLit compares the string in rax against a non-empty
// literal, leaving ZF set exactly when they are equal. Clobbers r8, r9.
func (c *Compiler) compareStringLit(lit string) []asm.Statement {
	runes := []rune(lit)
	ne := c.seq.fresh("str_ne")
	end := c.seq.fresh("str_cmp_end")

	out := []asm.Statement{
		asm.Mov(asm.R8, asm.RAX),
		asm.And(asm.R8, asm.Imm(int64(PtrMask))),
		asm.Cmp(asm.R8, asm.Imm(int64(StringTag))),
		asm.Jne(ne),
		asm.Mov(asm.R8, asm.RAX),
		asm.Xor(asm.R8, asm.Imm(int64(StringTag))),
		asm.Mov(asm.R9, asm.Offset{Base: asm.R8}),
		asm.Cmp(asm.R9, asm.Imm(int64(len(runes)))),
		asm.Jne(ne),
	}
	for i, r := range runes {
		out = append(out,
			asm.Mov(asm.R9D, asm.Offset{Base: asm.R8, Disp: 8 + 4*i}),
			asm.Cmp(asm.R9, asm.Imm(int64(r))),
			asm.Jne(ne),
		)
	}
	return append(out,
		asm.Cmp(asm.R8, asm.R8),
		asm.Jmp(end),
		asm.Label(ne),
		asm.Mov(asm.R9, asm.Imm(0)),
		asm.Cmp(asm.R9, asm.Imm(1)),
		asm.Label(end),
	)
}

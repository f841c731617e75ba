package codegen

import "github.com/lithic-lang/lithic/mods/asm"

// A vector is a length word followed by one word per element. The
// empty vector is an immediate, so a tagged vector pointer always
// addresses at least one element.

// makeVector allocates a vector of r8 (encoded length) copies of rax.
func (c *Compiler) makeVector() []asm.Statement {
	empty := c.seq.fresh("vector_empty")
	loop := c.seq.fresh("vector_fill")
	end := c.seq.fresh("vector_end")

	out := assertNatural(asm.R8)
	return append(out,
		asm.Cmp(asm.R8, asm.Imm(0)),
		asm.Je(empty),
		asm.Sar(asm.R8, asm.Imm(int64(IntType.Shift))),
		asm.Mov(asm.R9, asm.RBX),
		asm.Or(asm.R9, asm.Imm(int64(VectorTag))),
		asm.Mov(asm.Offset{Base: asm.RBX}, asm.R8),
		asm.Add(asm.RBX, asm.Imm(8)),
		asm.Label(loop),
		asm.Mov(asm.Offset{Base: asm.RBX}, asm.RAX),
		asm.Add(asm.RBX, asm.Imm(8)),
		asm.Sub(asm.R8, asm.Imm(1)),
		asm.Cmp(asm.R8, asm.Imm(0)),
		asm.Jne(loop),
		asm.Mov(asm.RAX, asm.R9),
		asm.Jmp(end),
		asm.Label(empty),
		asm.Mov(asm.RAX, asm.Imm(int64(ValEmptyVector))),
		asm.Label(end),
	)
}

// vectorRef reads element rax (encoded index) of vector r8.
func vectorRef() []asm.Statement {
	out := []asm.Statement{
		asm.Cmp(asm.R8, asm.Imm(int64(ValEmptyVector))),
		asm.Je(errLabel),
	}
	out = append(out, assertPtrTag(VectorTag, asm.R8)...)
	out = append(out, assertInt(asm.RAX)...)
	return append(out,
		asm.Xor(asm.R8, asm.Imm(int64(VectorTag))),
		asm.Sar(asm.RAX, asm.Imm(int64(IntType.Shift))),
		asm.Cmp(asm.RAX, asm.Imm(0)),
		asm.Jl(errLabel),
		asm.Mov(asm.R9, asm.Offset{Base: asm.R8}),
		asm.Cmp(asm.RAX, asm.R9),
		asm.Jge(errLabel),
		asm.Sal(asm.RAX, asm.Imm(3)),
		asm.Add(asm.R8, asm.RAX),
		asm.Mov(asm.RAX, asm.Offset{Base: asm.R8, Disp: 8}),
	)
}

// vectorSet stores rax at element r10 (encoded index) of vector r8 and
// yields void.
func vectorSet() []asm.Statement {
	out := []asm.Statement{
		asm.Cmp(asm.R8, asm.Imm(int64(ValEmptyVector))),
		asm.Je(errLabel),
	}
	out = append(out, assertPtrTag(VectorTag, asm.R8)...)
	out = append(out, assertInt(asm.R10)...)
	return append(out,
		asm.Xor(asm.R8, asm.Imm(int64(VectorTag))),
		asm.Sar(asm.R10, asm.Imm(int64(IntType.Shift))),
		asm.Cmp(asm.R10, asm.Imm(0)),
		asm.Jl(errLabel),
		asm.Mov(asm.R9, asm.Offset{Base: asm.R8}),
		asm.Cmp(asm.R10, asm.R9),
		asm.Jge(errLabel),
		asm.Sal(asm.R10, asm.Imm(3)),
		asm.Add(asm.R8, asm.R10),
		asm.Mov(asm.Offset{Base: asm.R8, Disp: 8}, asm.RAX),
		asm.Mov(asm.RAX, asm.Imm(int64(ValVoid))),
	)
}

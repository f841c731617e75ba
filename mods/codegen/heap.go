package codegen

import "github.com/lithic-lang/lithic/mods/asm"

// Heap values are bump-allocated off rbx in 8-byte words. A box is one
// word; a pair is two, cdr first so car sits at offset 8.

func boxValue() []asm.Statement {
	return []asm.Statement{
		asm.Mov(asm.Offset{Base: asm.RBX}, asm.RAX),
		asm.Mov(asm.RAX, asm.RBX),
		asm.Or(asm.RAX, asm.Imm(int64(BoxTag))),
		asm.Add(asm.RBX, asm.Imm(8)),
	}
}

func unboxValue() []asm.Statement {
	out := assertPtrTag(BoxTag, asm.RAX)
	return append(out,
		asm.Xor(asm.RAX, asm.Imm(int64(BoxTag))),
		asm.Mov(asm.RAX, asm.Offset{Base: asm.RAX}),
	)
}

// consPair allocates a pair from r8 (car) and rax (cdr).
func consPair() []asm.Statement {
	return []asm.Statement{
		asm.Mov(asm.Offset{Base: asm.RBX}, asm.RAX),
		asm.Mov(asm.Offset{Base: asm.RBX, Disp: 8}, asm.R8),
		asm.Mov(asm.RAX, asm.RBX),
		asm.Or(asm.RAX, asm.Imm(int64(ConsTag))),
		asm.Add(asm.RBX, asm.Imm(16)),
	}
}

// consField projects car (disp 8) or cdr (disp 0) out of a pair.
func consField(disp int) []asm.Statement {
	out := assertPtrTag(ConsTag, asm.RAX)
	return append(out,
		asm.Xor(asm.RAX, asm.Imm(int64(ConsTag))),
		asm.Mov(asm.RAX, asm.Offset{Base: asm.RAX, Disp: disp}),
	)
}

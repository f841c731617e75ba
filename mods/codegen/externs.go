package codegen

import (
	"fmt"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/lang"
)

// The System V ABI requires rsp to be 16-byte aligned at a call
// instruction. The compiled code only ever pushes whole words, so the
// misalignment is either 0 or 8; it is measured into r15 and undone
// after the call returns.

func padStack() []asm.Statement {
	return []asm.Statement{
		asm.Mov(asm.R15, asm.RSP),
		asm.And(asm.R15, asm.Imm(8)),
		asm.Sub(asm.RSP, asm.R15),
	}
}

func unpadStack() []asm.Statement {
	return []asm.Statement{
		asm.Add(asm.RSP, asm.R15),
	}
}

func externalCall(name string) []asm.Statement {
	out := padStack()
	out = append(out, asm.Call(name))
	return append(out, unpadStack()...)
}

// prim0 covers the input primitives. The C runtime returns the already
// encoded value: an int for a byte, or the eof object.
func (c *Compiler) prim0(p *lang.Prim0) ([]asm.Statement, error) {
	switch p.Op {
	case lang.OpReadByte:
		return externalCall("read_byte"), nil
	case lang.OpPeekByte:
		return externalCall("peek_byte"), nil
	}
	return nil, fmt.Errorf("unknown nullary operator %s", p.Op)
}

// writeByte passes the encoded byte to the runtime and yields void.
func writeByte() []asm.Statement {
	out := assertByte(asm.RAX)
	out = append(out, asm.Mov(asm.RDI, asm.RAX))
	out = append(out, externalCall("write_byte")...)
	return append(out, asm.Mov(asm.RAX, asm.Imm(int64(ValVoid))))
}

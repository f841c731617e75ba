package codegen

import (
	"fmt"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/lang"
)

func (c *Compiler) prim1(p *lang.Prim1, env *variables) ([]asm.Statement, error) {
	out, err := c.expr(p.Arg, env, false)
	if err != nil {
		return nil, err
	}

	switch p.Op {
	case lang.OpAdd1:
		out = append(out, assertInt(asm.RAX)...)
		out = append(out, asm.Add(asm.RAX, asm.Imm(int64(EncodeInt(1)))))
	case lang.OpSub1:
		out = append(out, assertInt(asm.RAX)...)
		out = append(out, asm.Sub(asm.RAX, asm.Imm(int64(EncodeInt(1)))))
	case lang.OpIsZero:
		out = append(out, assertInt(asm.RAX)...)
		out = append(out, asm.Cmp(asm.RAX, asm.Imm(0)))
		out = append(out, ifEqual()...)
	case lang.OpIsChar:
		out = append(out,
			asm.Mov(asm.R9, asm.RAX),
			asm.And(asm.R9, asm.Imm(int64(CharType.Mask()))),
			asm.Cmp(asm.R9, asm.Imm(int64(CharType.Tag))),
		)
		out = append(out, ifEqual()...)
	case lang.OpIsEof:
		out = append(out, asm.Cmp(asm.RAX, asm.Imm(int64(ValEof))))
		out = append(out, ifEqual()...)
	case lang.OpIsBox:
		out = append(out, c.ptrPredicate(BoxTag, 0)...)
	case lang.OpIsCons:
		out = append(out, c.ptrPredicate(ConsTag, 0)...)
	case lang.OpIsVector:
		out = append(out, c.ptrPredicate(VectorTag, ValEmptyVector)...)
	case lang.OpIsString:
		out = append(out, c.ptrPredicate(StringTag, ValEmptyString)...)
	case lang.OpIntToChar:
		out = append(out, c.assertCodepoint(asm.RAX)...)
		out = append(out,
			asm.Sal(asm.RAX, asm.Imm(int64(CharType.Shift-IntType.Shift))),
			asm.Xor(asm.RAX, asm.Imm(int64(CharType.Tag))),
		)
	case lang.OpCharToInt:
		out = append(out, assertChar(asm.RAX)...)
		out = append(out,
			asm.Sar(asm.RAX, asm.Imm(int64(CharType.Shift))),
			asm.Sal(asm.RAX, asm.Imm(int64(IntType.Shift))),
		)
	case lang.OpWriteByte:
		out = append(out, writeByte()...)
	case lang.OpBox:
		out = append(out, boxValue()...)
	case lang.OpUnbox:
		out = append(out, unboxValue()...)
	case lang.OpCar:
		out = append(out, consField(8)...)
	case lang.OpCdr:
		out = append(out, consField(0)...)
	default:
		return nil, fmt.Errorf("unknown unary operator %s", p.Op)
	}
	return out, nil
}

// ptrPredicate tests the pointer tag of rax. Vectors and strings have
// an immediate empty form that also satisfies the predicate.
func (c *Compiler) ptrPredicate(tag Word, emptyForm Word) []asm.Statement {
	yes := c.seq.fresh("is_type")
	end := c.seq.fresh("is_type_end")
	out := []asm.Statement{
		asm.Mov(asm.R9, asm.RAX),
		asm.And(asm.R9, asm.Imm(int64(PtrMask))),
		asm.Cmp(asm.R9, asm.Imm(int64(tag))),
		asm.Je(yes),
	}
	if emptyForm != 0 {
		out = append(out,
			asm.Cmp(asm.RAX, asm.Imm(int64(emptyForm))),
			asm.Je(yes),
		)
	}
	return append(out,
		asm.Mov(asm.RAX, asm.Imm(int64(ValFalse))),
		asm.Jmp(end),
		asm.Label(yes),
		asm.Mov(asm.RAX, asm.Imm(int64(ValTrue))),
		asm.Label(end),
	)
}

// binaryOperands compiles both operands: the first ends up in r8, the
// second in rax.
func (c *Compiler) binaryOperands(first, second lang.Expr, env *variables) ([]asm.Statement, error) {
	out, err := c.expr(first, env, false)
	if err != nil {
		return nil, err
	}
	out = append(out, asm.Push(asm.RAX))
	secondCode, err := c.expr(second, env.extendTemp(), false)
	if err != nil {
		return nil, err
	}
	out = append(out, secondCode...)
	out = append(out, asm.Pop(asm.R8))
	return out, nil
}

func (c *Compiler) prim2(p *lang.Prim2, env *variables) ([]asm.Statement, error) {
	out, err := c.binaryOperands(p.First, p.Second, env)
	if err != nil {
		return nil, err
	}

	switch p.Op {
	case lang.OpAdd:
		out = append(out, assertInt(asm.R8)...)
		out = append(out, assertInt(asm.RAX)...)
		out = append(out, asm.Add(asm.RAX, asm.R8))
	case lang.OpSub:
		out = append(out, assertInt(asm.R8)...)
		out = append(out, assertInt(asm.RAX)...)
		out = append(out,
			asm.Sub(asm.R8, asm.RAX),
			asm.Mov(asm.RAX, asm.R8),
		)
	case lang.OpLessThan:
		out = append(out, assertInt(asm.R8)...)
		out = append(out, assertInt(asm.RAX)...)
		out = append(out, asm.Cmp(asm.R8, asm.RAX))
		out = append(out, ifLessThan()...)
	case lang.OpEqual:
		out = append(out, assertInt(asm.R8)...)
		out = append(out, assertInt(asm.RAX)...)
		out = append(out, asm.Cmp(asm.R8, asm.RAX))
		out = append(out, ifEqual()...)
	case lang.OpCons:
		out = append(out, consPair()...)
	case lang.OpMakeVector:
		out = append(out, c.makeVector()...)
	case lang.OpVectorRef:
		out = append(out, vectorRef()...)
	case lang.OpMakeString:
		out = append(out, c.makeString()...)
	case lang.OpStringRef:
		out = append(out, stringRef()...)
	default:
		return nil, fmt.Errorf("unknown binary operator %s", p.Op)
	}
	return out, nil
}

func (c *Compiler) prim3(p *lang.Prim3, env *variables) ([]asm.Statement, error) {
	out, err := c.expr(p.First, env, false)
	if err != nil {
		return nil, err
	}
	out = append(out, asm.Push(asm.RAX))
	env1 := env.extendTemp()

	second, err := c.expr(p.Second, env1, false)
	if err != nil {
		return nil, err
	}
	out = append(out, second...)
	out = append(out, asm.Push(asm.RAX))
	env2 := env1.extendTemp()

	third, err := c.expr(p.Third, env2, false)
	if err != nil {
		return nil, err
	}
	out = append(out, third...)
	out = append(out,
		asm.Pop(asm.R10),
		asm.Pop(asm.R8),
	)

	switch p.Op {
	case lang.OpVectorSet:
		out = append(out, vectorSet()...)
	default:
		return nil, fmt.Errorf("unknown ternary operator %s", p.Op)
	}
	return out, nil
}

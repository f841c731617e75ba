package codegen

import (
	"fmt"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/lang"
)

// matchExpr compiles a match form. The scrutinee is kept on the stack
// while arms are tried in order; a value matching no arm is a runtime
// error.
func (c *Compiler) matchExpr(m *lang.Match, env *variables, tail bool) ([]asm.Statement, error) {
	out, err := c.expr(m.Target, env, false)
	if err != nil {
		return nil, err
	}
	out = append(out, asm.Push(asm.RAX))
	envT := env.extendTemp()
	done := c.seq.fresh("match_done")

	for _, arm := range m.Arms {
		next := c.seq.fresh("match_next")
		out = append(out, asm.Mov(asm.RAX, asm.Offset{Base: asm.RSP}))

		patCode, armEnv, err := c.pattern(arm.Pattern, next, envT, envT.depth())
		if err != nil {
			return nil, err
		}
		out = append(out, patCode...)

		body, err := c.expr(arm.Body, armEnv, tail)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)

		// discard bindings, pattern temporaries and the scrutinee
		delta := armEnv.depth() - env.depth()
		out = append(out,
			asm.Add(asm.RSP, asm.Imm(int64(8*delta))),
			asm.Jmp(done),
			asm.Label(next),
		)
	}

	out = append(out, asm.Jmp(errLabel), asm.Label(done))
	return out, nil
}

// pattern tests the value in rax. On a match execution falls through
// with bound variables pushed; on a mismatch it jumps to fail with the
// stack restored to base depth.
func (c *Compiler) pattern(p lang.Pattern, fail string, env *variables, base int) ([]asm.Statement, *variables, error) {
	switch v := p.(type) {
	case *lang.PWildcard:
		return nil, env, nil

	case *lang.PVariable:
		return []asm.Statement{asm.Push(asm.RAX)}, env.extendVar(v.Name), nil

	case *lang.PLit:
		code, err := c.litCompare(v.Lit)
		if err != nil {
			return nil, nil, err
		}
		return append(code, c.failUnlessEqual(fail, env, base)...), env, nil

	case *lang.PCons:
		out := []asm.Statement{
			asm.Mov(asm.R9, asm.RAX),
			asm.And(asm.R9, asm.Imm(int64(PtrMask))),
			asm.Cmp(asm.R9, asm.Imm(int64(ConsTag))),
		}
		out = append(out, c.failUnlessEqual(fail, env, base)...)
		out = append(out,
			asm.Xor(asm.RAX, asm.Imm(int64(ConsTag))),
			asm.Push(asm.RAX),
			asm.Mov(asm.RAX, asm.Offset{Base: asm.RAX, Disp: 8}),
		)
		env1 := env.extendTemp()
		carCode, env2, err := c.pattern(v.Car, fail, env1, base)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, carCode...)
		out = append(out,
			asm.Mov(asm.RAX, asm.Offset{Base: asm.RSP, Disp: 8 * (env2.depth() - env1.depth())}),
			asm.Mov(asm.RAX, asm.Offset{Base: asm.RAX}),
		)
		cdrCode, env3, err := c.pattern(v.Cdr, fail, env2, base)
		if err != nil {
			return nil, nil, err
		}
		return append(out, cdrCode...), env3, nil

	case *lang.PBox:
		out := []asm.Statement{
			asm.Mov(asm.R9, asm.RAX),
			asm.And(asm.R9, asm.Imm(int64(PtrMask))),
			asm.Cmp(asm.R9, asm.Imm(int64(BoxTag))),
		}
		out = append(out, c.failUnlessEqual(fail, env, base)...)
		out = append(out,
			asm.Xor(asm.RAX, asm.Imm(int64(BoxTag))),
			asm.Mov(asm.RAX, asm.Offset{Base: asm.RAX}),
		)
		subCode, env1, err := c.pattern(v.Sub, fail, env, base)
		if err != nil {
			return nil, nil, err
		}
		return append(out, subCode...), env1, nil

	case *lang.PAnd:
		out := []asm.Statement{asm.Push(asm.RAX)}
		env1 := env.extendTemp()
		leftCode, env2, err := c.pattern(v.Left, fail, env1, base)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, leftCode...)
		out = append(out,
			asm.Mov(asm.RAX, asm.Offset{Base: asm.RSP, Disp: 8 * (env2.depth() - env1.depth())}),
		)
		rightCode, env3, err := c.pattern(v.Right, fail, env2, base)
		if err != nil {
			return nil, nil, err
		}
		return append(out, rightCode...), env3, nil
	}
	return nil, nil, fmt.Errorf("cannot compile pattern of type %T", p)
}

// litCompare leaves ZF set exactly when rax equals the literal.
func (c *Compiler) litCompare(lit lang.Expr) ([]asm.Statement, error) {
	switch l := lit.(type) {
	case *lang.IntLit:
		return cmpImm(asm.RAX, EncodeInt(l.Value)), nil
	case *lang.BoolLit:
		return cmpImm(asm.RAX, EncodeBool(l.Value)), nil
	case *lang.CharLit:
		return cmpImm(asm.RAX, EncodeChar(l.Value)), nil
	case *lang.EmptyListLit:
		return cmpImm(asm.RAX, ValEmptyList), nil
	case *lang.StringLit:
		if l.Value == "" {
			return cmpImm(asm.RAX, ValEmptyString), nil
		}
		return c.compareStringLit(l.Value), nil
	}
	return nil, fmt.Errorf("cannot compile literal pattern of type %T", lit)
}

// failUnlessEqual escapes to fail when ZF is clear, popping whatever
// this arm's pattern has pushed so far.
func (c *Compiler) failUnlessEqual(fail string, env *variables, base int) []asm.Statement {
	delta := env.depth() - base
	if delta == 0 {
		return []asm.Statement{asm.Jne(fail)}
	}
	ok := c.seq.fresh("pat_ok")
	return []asm.Statement{
		asm.Je(ok),
		asm.Add(asm.RSP, asm.Imm(int64(8*delta))),
		asm.Jmp(fail),
		asm.Label(ok),
	}
}

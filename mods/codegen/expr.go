package codegen

import (
	"fmt"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/lang"
)

// expr compiles one expression. The result lands in rax. When tail is
// true the expression is in tail position of a function body and calls
// may reuse the current frame.
func (c *Compiler) expr(e lang.Expr, env *variables, tail bool) ([]asm.Statement, error) {
	switch v := e.(type) {
	case *lang.IntLit:
		return loadValue(EncodeInt(v.Value)), nil
	case *lang.BoolLit:
		return loadValue(EncodeBool(v.Value)), nil
	case *lang.CharLit:
		return loadValue(EncodeChar(v.Value)), nil
	case *lang.Eof:
		return loadValue(ValEof), nil
	case *lang.EmptyListLit:
		return loadValue(ValEmptyList), nil
	case *lang.StringLit:
		return c.stringLit(v.Value), nil
	case *lang.Variable:
		return c.variable(v, env)
	case *lang.Prim0:
		return c.prim0(v)
	case *lang.Prim1:
		return c.prim1(v, env)
	case *lang.Prim2:
		return c.prim2(v, env)
	case *lang.Prim3:
		return c.prim3(v, env)
	case *lang.Begin:
		return c.begin(v, env, tail)
	case *lang.If:
		return c.ifExpr(v, env, tail)
	case *lang.Let:
		return c.letExpr(v, env, tail)
	case *lang.Match:
		return c.matchExpr(v, env, tail)
	case *lang.App:
		return c.app(v, env, tail)
	}
	return nil, fmt.Errorf("cannot compile expression of type %T", e)
}

func loadValue(w Word) []asm.Statement {
	return []asm.Statement{asm.Mov(asm.RAX, asm.Imm(int64(w)))}
}

func (c *Compiler) variable(v *lang.Variable, env *variables) ([]asm.Statement, error) {
	pos, ok := env.position(v.Name)
	if !ok {
		return nil, fmt.Errorf("undefined variable `%s`", v.Name)
	}
	return []asm.Statement{
		asm.Mov(asm.RAX, asm.Offset{Base: asm.RSP, Disp: 8 * pos}),
	}, nil
}

func (c *Compiler) begin(b *lang.Begin, env *variables, tail bool) ([]asm.Statement, error) {
	first, err := c.expr(b.First, env, false)
	if err != nil {
		return nil, err
	}
	second, err := c.expr(b.Second, env, tail)
	if err != nil {
		return nil, err
	}
	return append(first, second...), nil
}

func (c *Compiler) ifExpr(e *lang.If, env *variables, tail bool) ([]asm.Statement, error) {
	elseLabel := c.seq.fresh("if_else")
	endLabel := c.seq.fresh("if_end")

	cond, err := c.expr(e.Cond, env, false)
	if err != nil {
		return nil, err
	}
	then, err := c.expr(e.Then, env, tail)
	if err != nil {
		return nil, err
	}
	els, err := c.expr(e.Else, env, tail)
	if err != nil {
		return nil, err
	}

	out := cond
	out = append(out,
		asm.Cmp(asm.RAX, asm.Imm(int64(ValFalse))),
		asm.Je(elseLabel),
	)
	out = append(out, then...)
	out = append(out, asm.Jmp(endLabel), asm.Label(elseLabel))
	out = append(out, els...)
	out = append(out, asm.Label(endLabel))
	return out, nil
}

func (c *Compiler) letExpr(e *lang.Let, env *variables, tail bool) ([]asm.Statement, error) {
	rhs, err := c.expr(e.Binding.RHS, env, false)
	if err != nil {
		return nil, err
	}
	body, err := c.expr(e.Body, env.extendVar(e.Binding.Name), tail)
	if err != nil {
		return nil, err
	}
	out := rhs
	out = append(out, asm.Push(asm.RAX))
	out = append(out, body...)
	out = append(out, asm.Add(asm.RSP, asm.Imm(8)))
	return out, nil
}

package codegen

import (
	"fmt"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/lang"
)

// app compiles a function application. Arity is checked at compile
// time, so the emitted code never verifies argument counts.
func (c *Compiler) app(a *lang.App, env *variables, tail bool) ([]asm.Statement, error) {
	def, ok := c.defs[a.Function]
	if !ok {
		return nil, fmt.Errorf("undefined function `%s`", a.Function)
	}
	if len(a.Args) != len(def.Params) {
		return nil, fmt.Errorf("function `%s` takes %d arguments, got %d",
			a.Function, len(def.Params), len(a.Args))
	}
	if tail {
		return c.tailCall(a, env)
	}
	return c.call(a, env)
}

// call pushes the return address, then the arguments left to right,
// and jumps to the function. The callee pops its arguments and returns
// past them.
func (c *Compiler) call(a *lang.App, env *variables) ([]asm.Statement, error) {
	ret := c.seq.fresh("ret")
	out := []asm.Statement{
		asm.Lea(asm.RAX, asm.LabelRef(ret)),
		asm.Push(asm.RAX),
	}
	env = env.extendTemp()
	for _, arg := range a.Args {
		code, err := c.expr(arg, env, false)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
		out = append(out, asm.Push(asm.RAX))
		env = env.extendTemp()
	}
	out = append(out, asm.Jmp(funLabel(a.Function)), asm.Label(ret))
	return out, nil
}

// tailCall reuses the current frame: the fresh arguments are slid down
// over the frame's slots and control jumps without pushing a return
// address.
func (c *Compiler) tailCall(a *lang.App, env *variables) ([]asm.Statement, error) {
	var out []asm.Statement
	argEnv := env
	for _, arg := range a.Args {
		code, err := c.expr(arg, argEnv, false)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
		out = append(out, asm.Push(asm.RAX))
		argEnv = argEnv.extendTemp()
	}
	discard := env.depth()
	out = append(out, moveArgs(len(a.Args), discard)...)
	if discard > 0 {
		out = append(out, asm.Add(asm.RSP, asm.Imm(int64(8*discard))))
	}
	out = append(out, asm.Jmp(funLabel(a.Function)))
	return out, nil
}

// moveArgs slides count stack words down by discard slots, deepest
// first so the source range is never overwritten before it is read.
func moveArgs(count, discard int) []asm.Statement {
	if discard == 0 {
		return nil
	}
	var out []asm.Statement
	for i := count - 1; i >= 0; i-- {
		out = append(out,
			asm.Mov(asm.R8, asm.Offset{Base: asm.RSP, Disp: 8 * i}),
			asm.Mov(asm.Offset{Base: asm.RSP, Disp: 8 * (discard + i)}, asm.R8),
		)
	}
	return out
}

package codegen

import (
	"fmt"
	"strings"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/lang"
	"github.com/lithic-lang/lithic/mods/logging"
)

// Register conventions: rax holds the result, rbx the heap allocation
// pointer, r8-r10 are scratch, r15 holds the stack alignment pad and
// rdi carries the single C call argument. The heap base is read from
// the runtime's `heap` global on entry.
const errLabel = "err"

type Compiler struct {
	log  logging.Log
	seq  labelSeq
	defs map[lang.Identifier]*lang.FunDef
}

func New() *Compiler {
	return &Compiler{
		log: logging.GetLog("codegen"),
	}
}

// Compile lowers a program to an assembly program exporting `entry`.
func (c *Compiler) Compile(prog *lang.Program) (*asm.Program, error) {
	c.defs = map[lang.Identifier]*lang.FunDef{}
	for _, def := range prog.Defs {
		if _, exists := c.defs[def.Name]; exists {
			return nil, fmt.Errorf("function `%s` is defined more than once", def.Name)
		}
		c.defs[def.Name] = def
	}

	out := &asm.Program{}
	out.Add(
		asm.Global("entry"),
		asm.Extern("read_byte"),
		asm.Extern("peek_byte"),
		asm.Extern("write_byte"),
		asm.Extern("raise_error"),
		asm.Extern("heap"),
		asm.Section("text"),
		asm.Label("entry"),
		asm.Push(asm.RBX),
		asm.Push(asm.R15),
		asm.Mov(asm.RBX, asm.LabelRef("heap")),
	)

	main, err := c.expr(prog.Main, &variables{}, false)
	if err != nil {
		return nil, err
	}
	out.Add(main...)
	out.Add(
		asm.Pop(asm.R15),
		asm.Pop(asm.RBX),
		asm.Ret(),
	)

	for _, def := range prog.Defs {
		body, err := c.fundef(def)
		if err != nil {
			return nil, err
		}
		out.Add(body...)
	}

	out.Add(asm.Label(errLabel))
	out.Add(padStack()...)
	out.Add(asm.Call("raise_error"))

	c.log.Debugf("compiled %d definitions, %d statements", len(prog.Defs), len(out.Statements))
	return out, nil
}

// fundef compiles one function. The caller pushes the return address,
// then the arguments left to right, so the last parameter sits on top
// of the stack. The body is compiled in tail position.
func (c *Compiler) fundef(def *lang.FunDef) ([]asm.Statement, error) {
	env := &variables{slots: def.Params}
	body, err := c.expr(def.Body, env, true)
	if err != nil {
		return nil, err
	}
	out := []asm.Statement{asm.Label(funLabel(def.Name))}
	out = append(out, body...)
	if n := len(def.Params); n > 0 {
		out = append(out, asm.Add(asm.RSP, asm.Imm(int64(8*n))))
	}
	out = append(out, asm.Ret())
	return out, nil
}

// funLabel mangles a function name into a valid assembler label.
// Source identifiers may contain characters like '?' or '->'.
func funLabel(name lang.Identifier) string {
	var sb strings.Builder
	sb.WriteString("fn_")
	for _, r := range string(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "x%X", r)
		}
	}
	return sb.String()
}

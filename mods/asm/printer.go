package asm

import (
	"fmt"
	"strings"
)

// Platform selects the object format and symbol naming conventions of
// the assembler output.
type Platform int

const (
	PlatformLinux Platform = iota
	PlatformMacOS
)

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformMacOS:
		return "macos"
	}
	return "unknown"
}

// NasmFormat is the value for nasm's -f flag on this platform.
func (p Platform) NasmFormat() string {
	switch p {
	case PlatformMacOS:
		return "macho64"
	default:
		return "elf64"
	}
}

func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(name) {
	case "linux":
		return PlatformLinux, nil
	case "macos", "darwin":
		return PlatformMacOS, nil
	}
	return PlatformLinux, fmt.Errorf("unsupported platform %q", name)
}

type printer struct {
	platform Platform
	public   map[string]bool
	sb       strings.Builder
}

// Print renders the program as NASM source. On MacOS the C toolchain
// prefixes public symbols with an underscore, so every global and
// extern name is mangled wherever it appears.
func Print(prog *Program, platform Platform) string {
	p := &printer{
		platform: platform,
		public:   map[string]bool{},
	}
	for _, stmt := range prog.Statements {
		if stmt.Op == OP_GLOBAL || stmt.Op == OP_EXTERN {
			p.public[stmt.Name] = true
		}
	}

	p.line("\tdefault rel")
	for _, stmt := range prog.Statements {
		p.statement(stmt)
	}
	return p.sb.String()
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(&p.sb, format+"\n", args...)
}

func (p *printer) symbol(name string) string {
	if p.platform == PlatformMacOS && p.public[name] {
		return "_" + name
	}
	return name
}

func (p *printer) statement(stmt Statement) {
	switch stmt.Op {
	case OP_LABEL:
		p.line("%s:", p.symbol(stmt.Name))
	case OP_GLOBAL, OP_EXTERN:
		p.line("\t%s %s", stmt.Op, p.symbol(stmt.Name))
	case OP_SECTION:
		p.line("\tsection .%s", stmt.Name)
	case OP_JMP, OP_JE, OP_JNE, OP_JL, OP_JG, OP_JLE, OP_JGE, OP_CALL:
		p.line("\t%s %s", stmt.Op, p.symbol(stmt.Name))
	case OP_RET:
		p.line("\tret")
	case OP_PUSH:
		p.line("\tpush %s", p.operand(stmt.Src))
	case OP_POP:
		p.line("\tpop %s", p.operand(stmt.Dst))
	case OP_DQ, OP_DD:
		p.line("\t%s %d", stmt.Op, stmt.Value)
	default:
		p.line("\t%s %s, %s", stmt.Op, p.operand(stmt.Dst), p.operand(stmt.Src))
	}
}

func (p *printer) operand(op Operand) string {
	switch v := op.(type) {
	case Register:
		return v.String()
	case Imm:
		return v.String()
	case Offset:
		return v.String()
	case LabelRef:
		return fmt.Sprintf("[rel %s]", p.symbol(string(v)))
	}
	return "<nil>"
}

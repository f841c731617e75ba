// Package asm models the subset of x86-64 emitted by the code generator
// and prints it as NASM source.
package asm

import "fmt"

type Op int

const (
	OP_INVALID Op = iota

	// directives
	OP_LABEL
	OP_GLOBAL
	OP_EXTERN
	OP_SECTION

	// instructions
	OP_MOV
	OP_ADD
	OP_SUB
	OP_CMP
	OP_AND
	OP_OR
	OP_XOR
	OP_SAL
	OP_SAR
	OP_LEA
	OP_CMOVE
	OP_CMOVL
	OP_PUSH
	OP_POP
	OP_JMP
	OP_JE
	OP_JNE
	OP_JL
	OP_JG
	OP_JLE
	OP_JGE
	OP_CALL
	OP_RET

	// data definitions
	OP_DQ
	OP_DD
)

func (op Op) String() string {
	switch op {
	case OP_LABEL:
		return "label"
	case OP_GLOBAL:
		return "global"
	case OP_EXTERN:
		return "extern"
	case OP_SECTION:
		return "section"
	case OP_MOV:
		return "mov"
	case OP_ADD:
		return "add"
	case OP_SUB:
		return "sub"
	case OP_CMP:
		return "cmp"
	case OP_AND:
		return "and"
	case OP_OR:
		return "or"
	case OP_XOR:
		return "xor"
	case OP_SAL:
		return "sal"
	case OP_SAR:
		return "sar"
	case OP_LEA:
		return "lea"
	case OP_CMOVE:
		return "cmove"
	case OP_CMOVL:
		return "cmovl"
	case OP_PUSH:
		return "push"
	case OP_POP:
		return "pop"
	case OP_JMP:
		return "jmp"
	case OP_JE:
		return "je"
	case OP_JNE:
		return "jne"
	case OP_JL:
		return "jl"
	case OP_JG:
		return "jg"
	case OP_JLE:
		return "jle"
	case OP_JGE:
		return "jge"
	case OP_CALL:
		return "call"
	case OP_RET:
		return "ret"
	case OP_DQ:
		return "dq"
	case OP_DD:
		return "dd"
	}
	return "invalid"
}

// Operand is a register, an immediate, a memory reference or a label
// reference.
type Operand interface {
	isOperand()
}

type Register int

const (
	RAX Register = iota
	RBX
	RCX
	RDX
	RSP
	RBP
	RDI
	RSI
	R8
	R9
	R10
	R15

	// 32-bit views
	EAX
	R9D
)

func (r Register) isOperand() {}

func (r Register) String() string {
	switch r {
	case RAX:
		return "rax"
	case RBX:
		return "rbx"
	case RCX:
		return "rcx"
	case RDX:
		return "rdx"
	case RSP:
		return "rsp"
	case RBP:
		return "rbp"
	case RDI:
		return "rdi"
	case RSI:
		return "rsi"
	case R8:
		return "r8"
	case R9:
		return "r9"
	case R10:
		return "r10"
	case R15:
		return "r15"
	case EAX:
		return "eax"
	case R9D:
		return "r9d"
	}
	return "invalid"
}

// Imm is an immediate integer operand.
type Imm int64

func (i Imm) isOperand() {}

func (i Imm) String() string { return fmt.Sprintf("%d", int64(i)) }

// Offset is a memory reference [base + disp]. Disp is in bytes and may
// be negative or zero.
type Offset struct {
	Base Register
	Disp int
}

func (o Offset) isOperand() {}

func (o Offset) String() string {
	if o.Disp == 0 {
		return fmt.Sprintf("[%s]", o.Base)
	}
	if o.Disp < 0 {
		return fmt.Sprintf("[%s - %d]", o.Base, -o.Disp)
	}
	return fmt.Sprintf("[%s + %d]", o.Base, o.Disp)
}

// LabelRef references a label by name, as in `lea rax, [rel name]`.
type LabelRef string

func (l LabelRef) isOperand() {}

// Statement is one line of output: a directive, an instruction or a
// data definition. Which fields are meaningful depends on Op.
type Statement struct {
	Op    Op
	Dst   Operand
	Src   Operand
	Name  string
	Value int64
}

func Label(name string) Statement  { return Statement{Op: OP_LABEL, Name: name} }
func Global(name string) Statement { return Statement{Op: OP_GLOBAL, Name: name} }
func Extern(name string) Statement { return Statement{Op: OP_EXTERN, Name: name} }
func Section(name string) Statement {
	return Statement{Op: OP_SECTION, Name: name}
}

func Mov(dst, src Operand) Statement   { return Statement{Op: OP_MOV, Dst: dst, Src: src} }
func Add(dst, src Operand) Statement   { return Statement{Op: OP_ADD, Dst: dst, Src: src} }
func Sub(dst, src Operand) Statement   { return Statement{Op: OP_SUB, Dst: dst, Src: src} }
func Cmp(dst, src Operand) Statement   { return Statement{Op: OP_CMP, Dst: dst, Src: src} }
func And(dst, src Operand) Statement   { return Statement{Op: OP_AND, Dst: dst, Src: src} }
func Or(dst, src Operand) Statement    { return Statement{Op: OP_OR, Dst: dst, Src: src} }
func Xor(dst, src Operand) Statement   { return Statement{Op: OP_XOR, Dst: dst, Src: src} }
func Sal(dst, src Operand) Statement   { return Statement{Op: OP_SAL, Dst: dst, Src: src} }
func Sar(dst, src Operand) Statement   { return Statement{Op: OP_SAR, Dst: dst, Src: src} }
func Lea(dst, src Operand) Statement   { return Statement{Op: OP_LEA, Dst: dst, Src: src} }
func Cmove(dst, src Operand) Statement { return Statement{Op: OP_CMOVE, Dst: dst, Src: src} }
func Cmovl(dst, src Operand) Statement { return Statement{Op: OP_CMOVL, Dst: dst, Src: src} }

func Push(src Operand) Statement { return Statement{Op: OP_PUSH, Src: src} }
func Pop(dst Operand) Statement  { return Statement{Op: OP_POP, Dst: dst} }

func Jmp(name string) Statement { return Statement{Op: OP_JMP, Name: name} }
func Je(name string) Statement  { return Statement{Op: OP_JE, Name: name} }
func Jne(name string) Statement { return Statement{Op: OP_JNE, Name: name} }
func Jl(name string) Statement  { return Statement{Op: OP_JL, Name: name} }
func Jg(name string) Statement  { return Statement{Op: OP_JG, Name: name} }
func Jle(name string) Statement { return Statement{Op: OP_JLE, Name: name} }
func Jge(name string) Statement { return Statement{Op: OP_JGE, Name: name} }

func Call(name string) Statement { return Statement{Op: OP_CALL, Name: name} }
func Ret() Statement             { return Statement{Op: OP_RET} }

func Dq(value int64) Statement { return Statement{Op: OP_DQ, Value: value} }
func Dd(value int64) Statement { return Statement{Op: OP_DD, Value: value} }

// Program is an ordered statement list.
type Program struct {
	Statements []Statement
}

func (p *Program) Add(stmts ...Statement) {
	p.Statements = append(p.Statements, stmts...)
}

package lang_test

import (
	"testing"

	"github.com/lithic-lang/lithic/mods/lang"
	"github.com/stretchr/testify/require"
)

func parseMain(t *testing.T, source string) lang.Expr {
	t.Helper()
	prog, err := lang.Parse(source)
	require.NoError(t, err)
	require.Empty(t, prog.Defs)
	return prog.Main
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		source string
		expect lang.Expr
	}{
		{"42", &lang.IntLit{Value: 42}},
		{"-42", &lang.IntLit{Value: -42}},
		{"#t", &lang.BoolLit{Value: true}},
		{"#f", &lang.BoolLit{Value: false}},
		{`#\a`, &lang.CharLit{Value: 'a'}},
		{`"hello"`, &lang.StringLit{Value: "hello"}},
		{"()", &lang.EmptyListLit{}},
		{"eof", &lang.Eof{}},
		{"x", &lang.Variable{Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			require.Equal(t, tt.expect, parseMain(t, tt.source))
		})
	}
}

func TestParsePrims(t *testing.T) {
	tests := []struct {
		source string
		expect lang.Expr
	}{
		{
			"(read-byte)",
			&lang.Prim0{Op: lang.OpReadByte},
		},
		{
			"(add1 (sub1 (add1 42)))",
			&lang.Prim1{Op: lang.OpAdd1, Arg: &lang.Prim1{Op: lang.OpSub1,
				Arg: &lang.Prim1{Op: lang.OpAdd1, Arg: &lang.IntLit{Value: 42}}}},
		},
		{
			"(+ 1 2)",
			&lang.Prim2{Op: lang.OpAdd, First: &lang.IntLit{Value: 1}, Second: &lang.IntLit{Value: 2}},
		},
		{
			"(- 3 1)",
			&lang.Prim2{Op: lang.OpSub, First: &lang.IntLit{Value: 3}, Second: &lang.IntLit{Value: 1}},
		},
		{
			"(vector-set! v 0 9)",
			&lang.Prim3{Op: lang.OpVectorSet,
				First:  &lang.Variable{Name: "v"},
				Second: &lang.IntLit{Value: 0},
				Third:  &lang.IntLit{Value: 9}},
		},
		{
			"(cons 1 ())",
			&lang.Prim2{Op: lang.OpCons, First: &lang.IntLit{Value: 1}, Second: &lang.EmptyListLit{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			require.Equal(t, tt.expect, parseMain(t, tt.source))
		})
	}
}

func TestParseForms(t *testing.T) {
	t.Run("if", func(t *testing.T) {
		expr := parseMain(t, "(if (zero? 0) 42 43)")
		require.Equal(t, &lang.If{
			Cond: &lang.Prim1{Op: lang.OpIsZero, Arg: &lang.IntLit{Value: 0}},
			Then: &lang.IntLit{Value: 42},
			Else: &lang.IntLit{Value: 43},
		}, expr)
	})

	t.Run("begin", func(t *testing.T) {
		expr := parseMain(t, "(begin (write-byte 104) 42)")
		require.Equal(t, &lang.Begin{
			First:  &lang.Prim1{Op: lang.OpWriteByte, Arg: &lang.IntLit{Value: 104}},
			Second: &lang.IntLit{Value: 42},
		}, expr)
	})

	t.Run("let", func(t *testing.T) {
		expr := parseMain(t, "(let ((x 1)) (add1 x))")
		require.Equal(t, &lang.Let{
			Binding: lang.Binding{Name: "x", RHS: &lang.IntLit{Value: 1}},
			Body:    &lang.Prim1{Op: lang.OpAdd1, Arg: &lang.Variable{Name: "x"}},
		}, expr)
	})

	t.Run("match", func(t *testing.T) {
		expr := parseMain(t, "(match x ((cons a _) a) (_ 0))")
		require.Equal(t, &lang.Match{
			Target: &lang.Variable{Name: "x"},
			Arms: []lang.Arm{
				{
					Pattern: &lang.PCons{Car: &lang.PVariable{Name: "a"}, Cdr: &lang.PWildcard{}},
					Body:    &lang.Variable{Name: "a"},
				},
				{
					Pattern: &lang.PWildcard{},
					Body:    &lang.IntLit{Value: 0},
				},
			},
		}, expr)
	})

	t.Run("match literal and compound patterns", func(t *testing.T) {
		expr := parseMain(t, `(match x (1 2) ("s" 3) ((box b) b) ((and p q) q))`)
		m, ok := expr.(*lang.Match)
		require.True(t, ok)
		require.Len(t, m.Arms, 4)
		require.Equal(t, &lang.PLit{Lit: &lang.IntLit{Value: 1}}, m.Arms[0].Pattern)
		require.Equal(t, &lang.PLit{Lit: &lang.StringLit{Value: "s"}}, m.Arms[1].Pattern)
		require.Equal(t, &lang.PBox{Sub: &lang.PVariable{Name: "b"}}, m.Arms[2].Pattern)
		require.Equal(t, &lang.PAnd{Left: &lang.PVariable{Name: "p"}, Right: &lang.PVariable{Name: "q"}}, m.Arms[3].Pattern)
	})
}

func TestParseProgram(t *testing.T) {
	prog, err := lang.Parse(`
		(define (double x) (+ x x))
		(define (quad x) (double (double x)))
		(quad 10)`)
	require.NoError(t, err)
	require.Len(t, prog.Defs, 2)
	require.Equal(t, &lang.FunDef{
		Name:   "double",
		Params: []lang.Identifier{"x"},
		Body: &lang.Prim2{Op: lang.OpAdd,
			First:  &lang.Variable{Name: "x"},
			Second: &lang.Variable{Name: "x"}},
	}, prog.Defs[0])
	require.Equal(t, &lang.App{
		Function: "quad",
		Args:     []lang.Expr{&lang.IntLit{Value: 10}},
	}, prog.Main)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		errMsg string
	}{
		{
			name:   "empty program",
			source: "   ",
			errMsg: "1:1: empty program",
		},
		{
			name:   "define without main",
			source: "(define (f x) x)",
			errMsg: "1:1: program must end with an expression",
		},
		{
			name:   "expression before define",
			source: "42 (define (f x) x) (f 1)",
			errMsg: "1:1: only function definitions may precede the main expression",
		},
		{
			name:   "non-symbol operator",
			source: "((add1 1))",
			errMsg: "1:2: expected an operator",
		},
		{
			name:   "unary missing operand",
			source: "(add1)",
			errMsg: "1:2: missing operand",
		},
		{
			name:   "unary extra operand",
			source: "(add1 1 2)",
			errMsg: "1:9: expected 1 argument, got at least 2",
		},
		{
			name:   "binary missing operand",
			source: "(+ 1)",
			errMsg: "1:2: operator `+` takes 2 operands",
		},
		{
			name:   "if missing else",
			source: "(if #t 1)",
			errMsg: "1:2: `if` takes a condition, a 'then' and an 'else' expression",
		},
		{
			name:   "let with two bindings",
			source: "(let ((x 1) (y 2)) x)",
			errMsg: "1:6: expected a single variable binding",
		},
		{
			name:   "malformed binding",
			source: "(let ((x)) x)",
			errMsg: "1:7: a binding should be of the form `(name value)`",
		},
		{
			name:   "nested define",
			source: "(add1 (define (f x) x))",
			errMsg: "1:8: `define` is only allowed at the top level",
		},
		{
			name:   "bad match arm",
			source: "(match x (1))",
			errMsg: "1:10: a match arm should be of the form `(pattern body)`",
		},
		{
			name:   "unknown pattern operator",
			source: "(match x ((list a) a))",
			errMsg: "1:12: unknown pattern operator: list",
		},
		{
			name:   "unexpected closing paren",
			source: "(add1 1))",
			errMsg: "1:9: unexpected closing parenthesis",
		},
		{
			name:   "unterminated list",
			source: "(add1 1",
			errMsg: "1:1: unexpected end of input while reading list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lang.Parse(tt.source)
			require.Error(t, err)
			require.Equal(t, tt.errMsg, err.Error())
		})
	}
}

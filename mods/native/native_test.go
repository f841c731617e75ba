package native_test

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/codegen"
	"github.com/lithic-lang/lithic/mods/lang"
	"github.com/lithic-lang/lithic/mods/native"
	"github.com/stretchr/testify/require"
)

func newToolchain(t *testing.T) *native.Toolchain {
	t.Helper()
	if _, err := exec.LookPath("nasm"); err != nil {
		t.Skip("nasm not installed")
	}
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("cc not installed")
	}
	conf := native.DefaultConfig()
	conf.WorkDir = t.TempDir()
	tc, err := native.New(conf)
	require.NoError(t, err)
	return tc
}

func run(t *testing.T, tc *native.Toolchain, source, stdin string) (string, int) {
	t.Helper()
	prog, err := lang.Parse(source)
	require.NoError(t, err)
	compiled, err := codegen.New().Compile(prog)
	require.NoError(t, err)

	exe, err := tc.Build(context.Background(), asm.Print(compiled, tc.Platform()))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	code, err := exe.Exec(context.Background(), strings.NewReader(stdin), out)
	require.NoError(t, err)
	return out.String(), code
}

func TestBuildAndRun(t *testing.T) {
	tc := newToolchain(t)

	tests := []struct {
		name   string
		source string
		stdin  string
		expect string
	}{
		{name: "negative number", source: "-42", expect: "-42"},
		{name: "add and subtract", source: "(add1 (sub1 (add1 42)))", expect: "43"},
		{name: "if zero", source: "(if (zero? 0) 42 43)", expect: "42"},
		{name: "if nonzero", source: "(if (zero? 1) 42 43)", expect: "43"},
		{name: "nested if", source: "(add1 (if (zero? (if (zero? 1) 0 43)) -21 18))", expect: "19"},
		{name: "if false", source: "(if #f 42 43)", expect: "43"},
		{name: "if true", source: "(if #t 42 43)", expect: "42"},
		{name: "non boolean condition is truthy", source: "(if -1 42 43)", expect: "42"},
		{name: "boolean result", source: "(zero? 0)", expect: "#t"},
		{name: "character", source: `#\a`, expect: "#\\a"},
		{name: "string", source: `"hi"`, expect: `"hi"`},
		{name: "pair", source: "(cons 1 (cons 2 ()))", expect: "(1 2)"},
		{name: "improper pair", source: "(cons 1 2)", expect: "(1 . 2)"},
		{name: "box", source: "(box 7)", expect: "#&7"},
		{name: "vector", source: "(make-vector 3 0)", expect: "#(0 0 0)"},
		{name: "empty vector", source: "(make-vector 0 1)", expect: "#()"},
		{
			name:   "vector set",
			source: "(let ((v (make-vector 3 0))) (begin (vector-set! v 1 7) v))",
			expect: "#(0 7 0)",
		},
		{name: "make string", source: `(make-string 3 #\a)`, expect: `"aaa"`},
		{name: "empty make string", source: `(make-string 0 #\a)`, expect: `""`},
		{name: "integer to char", source: "(integer->char 97)", expect: "#\\a"},
		{name: "char roundtrip", source: "(char->integer (integer->char 955))", expect: "955"},
		{name: "write byte", source: "(begin (write-byte 104) (write-byte 105))", expect: "hi"},
		{name: "read byte", source: "(write-byte (read-byte))", stdin: "x", expect: "x"},
		{name: "eof", source: "(read-byte)", expect: "#<eof>"},
		{name: "let", source: "(let ((x 20)) (+ x 22))", expect: "42"},
		{name: "match", source: "(match (cons 1 2) ((cons a b) (+ a b)) (_ 0))", expect: "3"},
		{name: "string ref", source: `(string-ref "abc" 1)`, expect: "#\\b"},
		{
			name: "recursion",
			source: `
				(define (sum n acc) (if (zero? n) acc (sum (sub1 n) (+ acc n))))
				(sum 100 0)`,
			expect: "5050",
		},
		{
			name: "cat",
			source: `
				(define (cat b) (if (eof-object? b) () (begin (write-byte b) (cat (read-byte)))))
				(cat (read-byte))`,
			stdin:  "hello",
			expect: "hello()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, code := run(t, tc, tt.source, tt.stdin)
			require.Equal(t, tt.expect, stdout)
			require.Equal(t, 0, code)
		})
	}
}

func TestRuntimeError(t *testing.T) {
	tc := newToolchain(t)

	tests := []struct {
		name   string
		source string
	}{
		{name: "add1 non integer", source: "(add1 #t)"},
		{name: "integer to char surrogate", source: "(integer->char 55296)"},
		{name: "integer to char beyond unicode", source: "(integer->char 1114112)"},
		{name: "vector set out of bounds", source: "(vector-set! (make-vector 1 0) 1 5)"},
		{name: "vector set on empty vector", source: "(vector-set! (make-vector 0 0) 0 5)"},
		{name: "make string negative length", source: `(make-string -1 #\a)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, code := run(t, tc, tt.source, "")
			require.Empty(t, stdout)
			require.Equal(t, 1, code)
		})
	}
}

func TestBuildCache(t *testing.T) {
	tc := newToolchain(t)
	prog, err := lang.Parse("42")
	require.NoError(t, err)
	compiled, err := codegen.New().Compile(prog)
	require.NoError(t, err)
	text := asm.Print(compiled, tc.Platform())

	first, err := tc.Build(context.Background(), text)
	require.NoError(t, err)
	second, err := tc.Build(context.Background(), text)
	require.NoError(t, err)
	require.Equal(t, first.Path, second.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := native.LoadConfig("/no/such/config.yaml")
	require.Error(t, err)
}

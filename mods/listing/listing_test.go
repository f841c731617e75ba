package listing_test

import (
	"strings"
	"testing"

	"github.com/lithic-lang/lithic/mods/lang"
	"github.com/lithic-lang/lithic/mods/listing"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tokens, err := lang.Tokenize("(add1 41)")
	require.NoError(t, err)

	sb := &strings.Builder{}
	listing.Tokens(sb, tokens)
	out := sb.String()
	require.Contains(t, out, "PAREN_OPEN")
	require.Contains(t, out, "SYMBOL")
	require.Contains(t, out, "add1")
	require.Contains(t, out, "INTEGER")
	require.Contains(t, out, "41")
	require.Contains(t, out, "1:2")
}

func TestTree(t *testing.T) {
	prog, err := lang.Parse("(define (double x) (+ x x)) (if #t (double 3) 0)")
	require.NoError(t, err)

	sb := &strings.Builder{}
	listing.Tree(sb, prog)
	out := sb.String()
	require.Contains(t, out, "define double (x)")
	require.Contains(t, out, "var x")
	require.Contains(t, out, "main")
	require.Contains(t, out, "if")
	require.Contains(t, out, "bool true")
	require.Contains(t, out, "call double")
	require.Contains(t, out, "int 3")
}

func TestTreeMatch(t *testing.T) {
	prog, err := lang.Parse("(match x ((cons a _) a) (_ 0))")
	require.NoError(t, err)

	sb := &strings.Builder{}
	listing.Tree(sb, prog)
	out := sb.String()
	require.Contains(t, out, "match")
	require.Contains(t, out, "arm (cons a _)")
	require.Contains(t, out, "arm _")
}

func TestAssemblyPlain(t *testing.T) {
	sb := &strings.Builder{}
	err := listing.Assembly(sb, "\tmov rax, 42\n\tret\n", false)
	require.NoError(t, err)
	require.Equal(t, "\tmov rax, 42\n\tret\n", sb.String())
}

func TestAssemblyColorized(t *testing.T) {
	sb := &strings.Builder{}
	err := listing.Assembly(sb, "\tmov rax, 42\n\tret\n", true)
	require.NoError(t, err)
	// escape sequences wrap the original text
	require.Contains(t, sb.String(), "mov")
	require.Contains(t, sb.String(), "\x1b[")
}
package lang_test

import (
	"math"
	"testing"

	"github.com/lithic-lang/lithic/mods/lang"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		source string
		expect []lang.Token
	}{
		{
			name:   "integer",
			source: "42",
			expect: []lang.Token{
				{Kind: lang.INTEGER, Value: int64(42), Pos: lang.Position{Line: 1, Column: 1}},
			},
		},
		{
			name:   "negative integer",
			source: "-42",
			expect: []lang.Token{
				{Kind: lang.INTEGER, Value: int64(-42), Pos: lang.Position{Line: 1, Column: 1}},
			},
		},
		{
			name:   "lone minus is a symbol",
			source: "(- 3 1)",
			expect: []lang.Token{
				{Kind: lang.PAREN_OPEN, Value: "(", Pos: lang.Position{Line: 1, Column: 1}},
				{Kind: lang.SYMBOL, Value: "-", Pos: lang.Position{Line: 1, Column: 2}},
				{Kind: lang.INTEGER, Value: int64(3), Pos: lang.Position{Line: 1, Column: 4}},
				{Kind: lang.INTEGER, Value: int64(1), Pos: lang.Position{Line: 1, Column: 6}},
				{Kind: lang.PAREN_CLOSE, Value: ")", Pos: lang.Position{Line: 1, Column: 7}},
			},
		},
		{
			name:   "smallest integer",
			source: "-9223372036854775808",
			expect: []lang.Token{
				{Kind: lang.INTEGER, Value: int64(math.MinInt64), Pos: lang.Position{Line: 1, Column: 1}},
			},
		},
		{
			name:   "booleans",
			source: "#t #f",
			expect: []lang.Token{
				{Kind: lang.BOOLEAN, Value: true, Pos: lang.Position{Line: 1, Column: 1}},
				{Kind: lang.BOOLEAN, Value: false, Pos: lang.Position{Line: 1, Column: 4}},
			},
		},
		{
			name:   "characters",
			source: `#\a #\space #\newline`,
			expect: []lang.Token{
				{Kind: lang.CHARACTER, Value: 'a', Pos: lang.Position{Line: 1, Column: 1}},
				{Kind: lang.CHARACTER, Value: ' ', Pos: lang.Position{Line: 1, Column: 5}},
				{Kind: lang.CHARACTER, Value: '\n', Pos: lang.Position{Line: 1, Column: 13}},
			},
		},
		{
			name:   "string with escapes",
			source: `"he said \"hi\"\n"`,
			expect: []lang.Token{
				{Kind: lang.STRING, Value: "he said \"hi\"\n", Pos: lang.Position{Line: 1, Column: 1}},
			},
		},
		{
			name:   "symbols",
			source: "zero? char->integer vector-set!",
			expect: []lang.Token{
				{Kind: lang.SYMBOL, Value: "zero?", Pos: lang.Position{Line: 1, Column: 1}},
				{Kind: lang.SYMBOL, Value: "char->integer", Pos: lang.Position{Line: 1, Column: 7}},
				{Kind: lang.SYMBOL, Value: "vector-set!", Pos: lang.Position{Line: 1, Column: 21}},
			},
		},
		{
			name:   "comments and newlines",
			source: "; leading comment\n(add1 ; trailing\n 41)",
			expect: []lang.Token{
				{Kind: lang.PAREN_OPEN, Value: "(", Pos: lang.Position{Line: 2, Column: 1}},
				{Kind: lang.SYMBOL, Value: "add1", Pos: lang.Position{Line: 2, Column: 2}},
				{Kind: lang.INTEGER, Value: int64(41), Pos: lang.Position{Line: 3, Column: 2}},
				{Kind: lang.PAREN_CLOSE, Value: ")", Pos: lang.Position{Line: 3, Column: 4}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := lang.Tokenize(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.expect, tokens)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		errMsg string
	}{
		{
			name:   "unterminated string",
			source: `"abc`,
			errMsg: `1:1: unterminated string literal`,
		},
		{
			name:   "unknown escape",
			source: `"a\q"`,
			errMsg: `1:1: unknown escape \q`,
		},
		{
			name:   "unknown character name",
			source: `#\frobnicate`,
			errMsg: `1:1: unknown character name #\frobnicate`,
		},
		{
			name:   "bad hash token",
			source: `#x`,
			errMsg: `1:1: unexpected character 'x' after '#'`,
		},
		{
			name:   "stray character",
			source: `(add1 $)`,
			errMsg: `1:7: unexpected character '$'`,
		},
		{
			name:   "integer literal too large",
			source: `99999999999999999999`,
			errMsg: `1:1: integer literal out of range: 99999999999999999999`,
		},
		{
			name:   "negative integer literal too small",
			source: `(add1 -9223372036854775809)`,
			errMsg: `1:7: integer literal out of range: -9223372036854775809`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lang.Tokenize(tt.source)
			require.Error(t, err)
			require.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestTokenKindString(t *testing.T) {
	require.Equal(t, "INTEGER", lang.INTEGER.String())
	require.Equal(t, "SYMBOL", lang.SYMBOL.String())
	require.Equal(t, "UNKNOWN", lang.UNKNOWN.String())
}

package glob_test

import (
	"testing"

	"github.com/lithic-lang/lithic/mods/util/glob"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		str     string
		expect  bool
	}{
		{"codegen", "codegen", true},
		{"codegen", "codegen.expr", false},
		{"codegen*", "codegen.expr", true},
		{"*", "anything", true},
		{"lang.?exer", "lang.lexer", true},
		{"lang.?exer", "lang.lexers", false},
		{"native*", "launcher", false},
		{"", "", true},
		{"", "x", false},
	}
	for _, tt := range tests {
		matched, err := glob.Match(tt.pattern, tt.str)
		require.NoError(t, err)
		require.Equal(t, tt.expect, matched, "pattern=%q str=%q", tt.pattern, tt.str)
	}
}

func TestIsGlob(t *testing.T) {
	require.True(t, glob.IsGlob("codegen*"))
	require.True(t, glob.IsGlob("l?ng"))
	require.False(t, glob.IsGlob("launcher"))
}

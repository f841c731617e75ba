package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, LevelTrace, ParseLogLevel("trace"))
	require.Equal(t, LevelError, ParseLogLevel("ERROR"))
	require.Equal(t, LevelAll, ParseLogLevel("bogus"))
	require.Equal(t, "WARN", LogLevelName(LevelWarn))
	require.Equal(t, "UNKNOWN", LogLevelName(Level(99)))
}

func TestLevelFilter(t *testing.T) {
	buf := &strings.Builder{}
	log := NewLog("codegen", buf)
	log.SetLevel(LevelWarn)

	log.Debug("should not appear")
	log.Warnf("emitted %d statements", 42)

	output := buf.String()
	require.NotContains(t, output, "should not appear")
	require.Contains(t, output, "WARN")
	require.Contains(t, output, "emitted 42 statements")
	require.Contains(t, output, "codegen")
}

func TestLevelPattern(t *testing.T) {
	SetDefaultLevel(LevelInfo)
	SetLevel("lang.*", LevelTrace)

	require.Equal(t, LevelTrace, GetLevel("lang.lexer"))
	require.Equal(t, LevelTrace, GetLevel("lang.parser"))
	require.Equal(t, LevelInfo, GetLevel("native"))
}

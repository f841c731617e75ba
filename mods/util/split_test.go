package util_test

import (
	"testing"

	"github.com/lithic-lang/lithic/mods/util"
	"github.com/stretchr/testify/require"
)

func TestSplitFields(t *testing.T) {
	fields := util.SplitFields(`nasm -f elf64 -o out.o -`, false)
	require.Equal(t, []string{"nasm", "-f", "elf64", "-o", "out.o", "-"}, fields)

	fields = util.SplitFields(`cc -o "my out.bin" main.o`, true)
	require.Equal(t, []string{"cc", "-o", "my out.bin", "main.o"}, fields)

	fields = util.SplitFields(`cc -o "my out.bin" main.o`, false)
	require.Equal(t, []string{"cc", "-o", `"my out.bin"`, "main.o"}, fields)
}

func TestStripQuote(t *testing.T) {
	require.Equal(t, "hello world", util.StripQuote(`"hello world"`))
	require.Equal(t, "plain", util.StripQuote("plain"))
	require.Equal(t, "", util.StripQuote(""))
}

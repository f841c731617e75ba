package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeImmediates(t *testing.T) {
	require.Equal(t, Word(42<<4), EncodeInt(42))
	require.Equal(t, Word(-1<<4), EncodeInt(-1))
	require.Equal(t, Word('a'<<5|0b01000), EncodeChar('a'))
	require.Equal(t, ValTrue, EncodeBool(true))
	require.Equal(t, ValFalse, EncodeBool(false))
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 42, -42, 1 << 40} {
		require.Equal(t, Word(v), IntType.Decode(EncodeInt(v)))
	}
	for _, r := range []rune{'a', ' ', '\n', '世'} {
		require.Equal(t, Word(r), CharType.Decode(EncodeChar(r)))
	}
}

// Tag spaces must be disjoint: no immediate may look like a heap
// pointer, and no singleton may look like an int or a char.
func TestTagsDisjoint(t *testing.T) {
	singletons := []Word{
		ValTrue, ValFalse, ValEof, ValVoid,
		ValEmptyList, ValEmptyVector, ValEmptyString,
	}
	for _, s := range singletons {
		require.False(t, IntType.Matches(s), "%d matches int", s)
		require.False(t, CharType.Matches(s), "%d matches char", s)
		require.Zero(t, s&PtrMask, "%d looks like a heap pointer", s)
	}
	require.Zero(t, EncodeInt(123)&PtrMask)
	require.Zero(t, EncodeChar('x')&PtrMask)
	require.False(t, CharType.Matches(EncodeInt(8)))
	require.False(t, IntType.Matches(EncodeChar('a')))
}

func TestWordString(t *testing.T) {
	require.Equal(t, "42", EncodeInt(42).String())
	require.Equal(t, "#\\a", EncodeChar('a').String())
	require.Equal(t, "#t", ValTrue.String())
	require.Equal(t, "()", ValEmptyList.String())
	require.Equal(t, "#<cons>", (Word(0x1000) | ConsTag).String())
}

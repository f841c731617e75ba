// Package codegen lowers the AST to x86-64 assembly.
//
// Runtime values are 64-bit words. Immediates carry a tag in their low
// bits; heap values are 8-byte-aligned pointers tagged in the low three
// bits. The C runtime shares these constants, see mods/native/runtime/values.h.
package codegen

import "fmt"

type Word int64

// UnaryType tags an immediate payload: value<<Shift | Tag.
type UnaryType struct {
	Shift uint
	Tag   Word
}

func (t UnaryType) Mask() Word { return (1 << t.Shift) - 1 }

func (t UnaryType) Encode(v Word) Word { return v<<t.Shift | t.Tag }

func (t UnaryType) Decode(v Word) Word { return v >> t.Shift }

func (t UnaryType) Matches(v Word) bool { return v&t.Mask() == t.Tag }

var (
	IntType  = UnaryType{Shift: 4, Tag: 0b0000}
	CharType = UnaryType{Shift: 5, Tag: 0b01000}
)

// Heap pointers are 8-byte aligned, leaving the low three bits for the
// type tag. Every immediate tag has zero low three bits, so the two
// spaces cannot collide.
const (
	PtrMask Word = 0b111

	BoxTag    Word = 0b001
	ConsTag   Word = 0b010
	VectorTag Word = 0b011
	StringTag Word = 0b100
)

// Singleton values follow the pattern (n<<5)|0b11000.
const (
	ValTrue        Word = 24
	ValFalse       Word = 56
	ValEof         Word = 88
	ValVoid        Word = 120
	ValEmptyList   Word = 152
	ValEmptyVector Word = 184
	ValEmptyString Word = 216
)

func EncodeInt(v int64) Word { return IntType.Encode(Word(v)) }

func EncodeChar(r rune) Word { return CharType.Encode(Word(r)) }

func EncodeBool(b bool) Word {
	if b {
		return ValTrue
	}
	return ValFalse
}

func (w Word) String() string {
	switch {
	case IntType.Matches(w):
		return fmt.Sprintf("%d", IntType.Decode(w))
	case CharType.Matches(w):
		return fmt.Sprintf("#\\%c", rune(CharType.Decode(w)))
	}
	switch w {
	case ValTrue:
		return "#t"
	case ValFalse:
		return "#f"
	case ValEof:
		return "#<eof>"
	case ValVoid:
		return "#<void>"
	case ValEmptyList:
		return "()"
	case ValEmptyVector:
		return "#()"
	case ValEmptyString:
		return `""`
	}
	switch w & PtrMask {
	case BoxTag:
		return "#<box>"
	case ConsTag:
		return "#<cons>"
	case VectorTag:
		return "#<vector>"
	case StringTag:
		return "#<string>"
	}
	return fmt.Sprintf("#<unknown:%d>", int64(w))
}

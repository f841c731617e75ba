package lang

import (
	"fmt"
	"strconv"
	"unicode"
)

type lexerStream struct {
	source    []rune
	positions []Position
	position  int
	length    int
}

func newLexerStream(source string) *lexerStream {
	ls := &lexerStream{}
	ls.source = []rune(source)
	ls.length = len(ls.source)
	ls.positions = make([]Position, ls.length+1)
	line, column := 1, 1
	for i, r := range ls.source {
		ls.positions[i] = Position{Line: line, Column: column}
		if r == '\n' {
			line, column = line+1, 1
		} else {
			column++
		}
	}
	ls.positions[ls.length] = Position{Line: line, Column: column}
	return ls
}

func (ls *lexerStream) readCharacter() rune {
	if ls.length <= ls.position {
		return 0
	}
	r := ls.source[ls.position]
	ls.position++
	return r
}

func (ls *lexerStream) peekCharacter() rune {
	if ls.length <= ls.position {
		return 0
	}
	return ls.source[ls.position]
}

func (ls *lexerStream) rewind(amount int) {
	ls.position -= amount
	if ls.position < 0 {
		ls.position = 0
	}
}

func (ls *lexerStream) canRead() bool {
	return ls.position < ls.length
}

func (ls *lexerStream) pos() Position {
	return ls.positions[ls.position]
}

// Tokenize scans the source into a token slice. The sign of negative
// integer literals is folded into the INTEGER token; a lone '-' is a SYMBOL.
func Tokenize(source string) ([]Token, error) {
	stream := newLexerStream(source)
	var tokens []Token

	for stream.canRead() {
		skipBlanks(stream)
		if !stream.canRead() {
			break
		}
		tok, err := readToken(stream)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func skipBlanks(stream *lexerStream) {
	for stream.canRead() {
		c := stream.readCharacter()
		if unicode.IsSpace(c) {
			continue
		}
		if c == ';' {
			for stream.canRead() && stream.readCharacter() != '\n' {
			}
			continue
		}
		stream.rewind(1)
		return
	}
}

func readToken(stream *lexerStream) (Token, error) {
	start := stream.pos()
	c := stream.readCharacter()

	switch {
	case c == '(':
		return Token{Kind: PAREN_OPEN, Value: "(", Pos: start}, nil

	case c == ')':
		return Token{Kind: PAREN_CLOSE, Value: ")", Pos: start}, nil

	case c == '"':
		return readStringToken(stream, start)

	case c == '#':
		return readHashToken(stream, start)

	case c == '-' && isDigit(stream.peekCharacter()):
		return readIntToken(stream, start, true)

	case isDigit(c):
		stream.rewind(1)
		return readIntToken(stream, start, false)

	case isSymbolChar(c):
		stream.rewind(1)
		sym := readTokenUntilFalse(stream, isSymbolChar)
		return Token{Kind: SYMBOL, Value: sym, Pos: start}, nil
	}
	return Token{}, &TokenError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

func readIntToken(stream *lexerStream, start Position, negative bool) (Token, error) {
	digits := readTokenUntilFalse(stream, isDigit)
	if negative {
		digits = "-" + digits
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Token{}, &TokenError{Pos: start, Msg: fmt.Sprintf("integer literal out of range: %s", digits)}
	}
	return Token{Kind: INTEGER, Value: value, Pos: start}, nil
}

func readStringToken(stream *lexerStream, start Position) (Token, error) {
	var buf []rune
	for stream.canRead() {
		c := stream.readCharacter()
		switch c {
		case '"':
			return Token{Kind: STRING, Value: string(buf), Pos: start}, nil
		case '\\':
			if !stream.canRead() {
				return Token{}, &TokenError{Pos: start, Msg: "unterminated string literal"}
			}
			e := stream.readCharacter()
			switch e {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			case '\\', '"':
				buf = append(buf, e)
			default:
				return Token{}, &TokenError{Pos: start, Msg: fmt.Sprintf("unknown escape \\%c", e)}
			}
		default:
			buf = append(buf, c)
		}
	}
	return Token{}, &TokenError{Pos: start, Msg: "unterminated string literal"}
}

var namedCharacters = map[string]rune{
	"space":   ' ',
	"newline": '\n',
	"tab":     '\t',
	"nul":     0,
}

func readHashToken(stream *lexerStream, start Position) (Token, error) {
	if !stream.canRead() {
		return Token{}, &TokenError{Pos: start, Msg: "unexpected end of input after '#'"}
	}
	c := stream.readCharacter()
	switch c {
	case 't':
		return Token{Kind: BOOLEAN, Value: true, Pos: start}, nil
	case 'f':
		return Token{Kind: BOOLEAN, Value: false, Pos: start}, nil
	case '\\':
		if !stream.canRead() {
			return Token{}, &TokenError{Pos: start, Msg: "unexpected end of input after '#\\'"}
		}
		first := stream.readCharacter()
		if !unicode.IsLetter(first) {
			return Token{Kind: CHARACTER, Value: first, Pos: start}, nil
		}
		rest := readTokenUntilFalse(stream, unicode.IsLetter)
		if rest == "" {
			return Token{Kind: CHARACTER, Value: first, Pos: start}, nil
		}
		name := string(first) + rest
		if r, ok := namedCharacters[name]; ok {
			return Token{Kind: CHARACTER, Value: r, Pos: start}, nil
		}
		return Token{}, &TokenError{Pos: start, Msg: fmt.Sprintf("unknown character name #\\%s", name)}
	}
	return Token{}, &TokenError{Pos: start, Msg: fmt.Sprintf("unexpected character %q after '#'", c)}
}

func readTokenUntilFalse(stream *lexerStream, cond func(rune) bool) string {
	var buf []rune
	for stream.canRead() {
		c := stream.readCharacter()
		if !cond(c) {
			stream.rewind(1)
			break
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isSymbolChar(c rune) bool {
	if unicode.IsLetter(c) || unicode.IsDigit(c) {
		return true
	}
	switch c {
	case '_', '?', '!', '-', '<', '>', '=', '+', '*', '/', '&':
		return true
	}
	return false
}

package lang

type Token struct {
	Kind  TokenKind
	Value any
	Pos   Position
}

type TokenKind int

const (
	UNKNOWN TokenKind = iota

	PAREN_OPEN
	PAREN_CLOSE
	INTEGER
	SYMBOL
	BOOLEAN
	CHARACTER
	STRING
)

func (kind TokenKind) String() string {
	switch kind {
	case PAREN_OPEN:
		return "PAREN_OPEN"
	case PAREN_CLOSE:
		return "PAREN_CLOSE"
	case INTEGER:
		return "INTEGER"
	case SYMBOL:
		return "SYMBOL"
	case BOOLEAN:
		return "BOOLEAN"
	case CHARACTER:
		return "CHARACTER"
	case STRING:
		return "STRING"
	}
	return "UNKNOWN"
}

type tokenStream struct {
	tokens []Token
	index  int
	length int
}

func newTokenStream(tokens []Token) *tokenStream {
	return &tokenStream{
		tokens: tokens,
		index:  0,
		length: len(tokens),
	}
}

func (ts *tokenStream) next() Token {
	tok := ts.tokens[ts.index]
	ts.index++
	return tok
}

func (ts *tokenStream) peek() Token {
	return ts.tokens[ts.index]
}

func (ts *tokenStream) hasNext() bool {
	return ts.index < ts.length
}

// lastPos is the position just after the final token, for EOF errors.
func (ts *tokenStream) lastPos() Position {
	if ts.length == 0 {
		return Position{Line: 1, Column: 1}
	}
	return ts.tokens[ts.length-1].Pos
}

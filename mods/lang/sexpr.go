package lang

// SExpr is either an Atom or a List, carrying its source position.
type SExpr interface {
	Pos() Position
}

type AtomKind int

const (
	AtomSymbol AtomKind = iota
	AtomInteger
	AtomBoolean
	AtomCharacter
	AtomString
)

type Atom struct {
	Kind     AtomKind
	Value    any
	position Position
}

func (a *Atom) Pos() Position { return a.position }

func (a *Atom) Symbol() (string, bool) {
	if a.Kind == AtomSymbol {
		return a.Value.(string), true
	}
	return "", false
}

type List struct {
	Items    []SExpr
	position Position
}

func (l *List) Pos() Position { return l.position }

// Read forms the token slice into a sequence of top-level s-expressions.
func Read(tokens []Token) ([]SExpr, error) {
	ts := newTokenStream(tokens)
	var exprs []SExpr
	for ts.hasNext() {
		expr, err := readExpr(ts)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func readExpr(ts *tokenStream) (SExpr, error) {
	tok := ts.peek()
	switch tok.Kind {
	case PAREN_OPEN:
		return readList(ts)
	case PAREN_CLOSE:
		return nil, &ReadError{Pos: tok.Pos, Msg: "unexpected closing parenthesis"}
	case INTEGER:
		ts.next()
		return &Atom{Kind: AtomInteger, Value: tok.Value, position: tok.Pos}, nil
	case SYMBOL:
		ts.next()
		return &Atom{Kind: AtomSymbol, Value: tok.Value, position: tok.Pos}, nil
	case BOOLEAN:
		ts.next()
		return &Atom{Kind: AtomBoolean, Value: tok.Value, position: tok.Pos}, nil
	case CHARACTER:
		ts.next()
		return &Atom{Kind: AtomCharacter, Value: tok.Value, position: tok.Pos}, nil
	case STRING:
		ts.next()
		return &Atom{Kind: AtomString, Value: tok.Value, position: tok.Pos}, nil
	}
	return nil, &ReadError{Pos: tok.Pos, Msg: "unexpected token"}
}

func readList(ts *tokenStream) (SExpr, error) {
	open := ts.next() // consume '('
	var items []SExpr
	for ts.hasNext() {
		if ts.peek().Kind == PAREN_CLOSE {
			ts.next()
			return &List{Items: items, position: open.Pos}, nil
		}
		item, err := readExpr(ts)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return nil, &ReadError{Pos: open.Pos, Msg: "unexpected end of input while reading list"}
}

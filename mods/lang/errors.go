package lang

import "fmt"

// The front-end reports errors in three stages; each carries the source
// position of the offending token or form.

// TokenError is an error detected while tokenizing the source.
type TokenError struct {
	Pos Position
	Msg string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ReadError is an error detected while forming s-expressions from tokens.
type ReadError struct {
	Pos Position
	Msg string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ParseError is an error detected while parsing s-expressions into the AST.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func parseErr(msg string, pos Position) *ParseError {
	return &ParseError{Pos: pos, Msg: msg}
}

package lang

import "fmt"

// Position locates a character in the source document.
// Lines and columns are 1-based.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

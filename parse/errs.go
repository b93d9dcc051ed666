package parse

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax = errors.New("syntax error")
	ErrDepth  = errors.New("nesting too deep")
)

// SyntaxError reports the first offending byte of a failed parse.
// Line is 1-based; Col is the column of the offending byte within its line.
type SyntaxError struct {
	Line int
	Col  int
	Tok  byte
	EOF  bool
	Err  error // ErrSyntax or ErrDepth
}

func (e *SyntaxError) Unwrap() error {
	if e.Err == nil {
		return ErrSyntax
	}
	return e.Err
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, e.What())
}

// What describes the offense without its position
func (e *SyntaxError) What() string {
	switch {
	case errors.Is(e.Err, ErrDepth):
		return ErrDepth.Error()
	case e.EOF:
		return "unexpected end of input"
	case e.Tok == '\n':
		return "unexpected end of line"
	case e.Tok < 0x20 || e.Tok >= 0x7f:
		return fmt.Sprintf("unexpected byte 0x%02x", e.Tok)
	default:
		return fmt.Sprintf("unexpected '%c'", e.Tok)
	}
}

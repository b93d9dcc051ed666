package parse

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	diagLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	diagLocation = color.New(color.Bold).SprintfFunc()
)

// Diagnostic writes a one-line report of a failed parse of name.
// Syntax errors carry file:line:column; other errors are printed as is.
func Diagnostic(w io.Writer, name string, err error) {
	var se *SyntaxError
	if errors.As(err, &se) {
		fmt.Fprintf(w, "%s %s %s\n", diagLocation("%s:%d:%d:", name, se.Line, se.Col), diagLabel("error:"), se.What())
		return
	}
	fmt.Fprintf(w, "%s %s %v\n", diagLocation("%s:", name), diagLabel("error:"), err)
}

// Package parse reads a single JSON document into a value tree.
//
// The parser is recursive descent over a one-byte lookahead. The first syntax
// error aborts the whole parse; no partial tree is returned.
package parse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/jv/value"
)

type options struct {
	decodeUnicode bool
	maxDepth      int
}

// Option configures a parse
type Option func(*options)

// DecodeUnicode selects surrogate-aware UTF-8 encoding of \uXXXX escapes.
// When off, each escape emits the two raw bytes formed from its nibble pairs.
func DecodeUnicode(on bool) Option {
	return func(o *options) { o.decodeUnicode = on }
}

// MaxDepth limits container nesting; 0 means unlimited
func MaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

type parser struct {
	r    *bufio.Reader
	opts options

	tok     byte
	eof     bool
	readErr error
	line    int
	col     int
	depth   int

	scratch []byte
}

// Parse reads one JSON document from r
func Parse(r io.Reader, opts ...Option) (value.Value, error) {
	p := &parser{line: 1}
	for _, opt := range opts {
		opt(&p.opts)
	}
	if br, ok := r.(*bufio.Reader); ok {
		p.r = br
	} else {
		p.r = bufio.NewReader(r)
	}

	p.advance()
	v, err := p.document()
	if p.readErr != nil {
		return nil, fmt.Errorf("read input: %w", p.readErr)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseBytes parses an in-memory document
func ParseBytes(data []byte, opts ...Option) (value.Value, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// ParseFile opens and parses the file at path
func ParseFile(path string, opts ...Option) (value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

// advance moves the lookahead to the next byte. Stepping past a newline
// increments the line and resets the column, so a newline token is reported
// just past the end of its own line.
func (p *parser) advance() {
	if p.eof {
		return
	}
	if p.tok == '\n' {
		p.line++
		p.col = 0
	}
	c, err := p.r.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			p.readErr = err
		}
		p.eof = true
		p.tok = 0
		p.col++
		return
	}
	p.tok = c
	p.col++
}

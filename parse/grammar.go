package parse

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/lixenwraith/jv/value"
)

// fail builds a syntax error at the current lookahead
func (p *parser) fail() error {
	return &SyntaxError{Line: p.line, Col: p.col, Tok: p.tok, EOF: p.eof, Err: ErrSyntax}
}

func (p *parser) peek(c byte) bool {
	return !p.eof && p.tok == c
}

// consume advances past c if it is the lookahead
func (p *parser) consume(c byte) bool {
	if p.peek(c) {
		p.advance()
		return true
	}
	return false
}

// consumeAnyOf advances past the lookahead if it is one of set
func (p *parser) consumeAnyOf(set string) (byte, bool) {
	if p.eof {
		return 0, false
	}
	for i := 0; i < len(set); i++ {
		if p.tok == set[i] {
			c := p.tok
			p.advance()
			return c, true
		}
	}
	return 0, false
}

func (p *parser) expect(c byte) error {
	if !p.consume(c) {
		return p.fail()
	}
	return nil
}

func (p *parser) ws() {
	for {
		if _, ok := p.consumeAnyOf(" \t\n\r"); !ok {
			return
		}
	}
}

// document = ws value ws EOF
func (p *parser) document() (value.Value, error) {
	v, err := p.element()
	if err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, p.fail()
	}
	return v, nil
}

func (p *parser) element() (value.Value, error) {
	p.ws()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.ws()
	return v, nil
}

func (p *parser) value() (value.Value, error) {
	if p.eof {
		return nil, p.fail()
	}
	switch c := p.tok; {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"':
		s, err := p.str()
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case c == '-' || isDigit(c):
		return p.number()
	case c == 't':
		return value.True{}, p.word("true")
	case c == 'f':
		return value.False{}, p.word("false")
	case c == 'n':
		return value.Null{}, p.word("null")
	}
	return nil, p.fail()
}

func (p *parser) word(w string) error {
	for i := 0; i < len(w); i++ {
		if err := p.expect(w[i]); err != nil {
			return err
		}
	}
	return nil
}

// enter accounts for one more level of container nesting
func (p *parser) enter() error {
	p.depth++
	if p.opts.maxDepth > 0 && p.depth > p.opts.maxDepth {
		err := p.fail().(*SyntaxError)
		err.Err = ErrDepth
		return err
	}
	return nil
}

func (p *parser) object() (value.Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	if err := p.expect('{'); err != nil {
		return nil, err
	}
	obj := value.NewObject()
	p.ws()
	if p.consume('}') {
		obj.Compact()
		return obj, nil
	}
	for {
		p.ws()
		key, err := p.str()
		if err != nil {
			return nil, err
		}
		p.ws()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		v, err := p.element()
		if err != nil {
			return nil, err
		}
		obj.Append(key, v)
		if !p.consume(',') {
			break
		}
	}
	if err := p.expect('}'); err != nil {
		return nil, err
	}
	obj.Compact()
	return obj, nil
}

func (p *parser) array() (value.Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	if err := p.expect('['); err != nil {
		return nil, err
	}
	arr := value.NewArray()
	p.ws()
	if p.consume(']') {
		arr.Compact()
		return arr, nil
	}
	for {
		v, err := p.element()
		if err != nil {
			return nil, err
		}
		arr.Append(v)
		if !p.consume(',') {
			break
		}
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	arr.Compact()
	return arr, nil
}

// str reads a quoted string and returns its bytes after escape processing
func (p *parser) str() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	p.scratch = p.scratch[:0]
	for {
		if p.eof || p.tok < 0x20 {
			return "", p.fail()
		}
		switch p.tok {
		case '"':
			p.advance()
			return string(p.scratch), nil
		case '\\':
			p.advance()
			if err := p.escape(); err != nil {
				return "", err
			}
		default:
			p.scratch = append(p.scratch, p.tok)
			p.advance()
		}
	}
}

func (p *parser) escape() error {
	if p.eof {
		return p.fail()
	}
	var c byte
	switch p.tok {
	case '"', '\\', '/':
		c = p.tok
	case 'b':
		c = '\b'
	case 'f':
		c = '\f'
	case 'n':
		c = '\n'
	case 'r':
		c = '\r'
	case 't':
		c = '\t'
	case 'u':
		p.advance()
		return p.unicode()
	default:
		return p.fail()
	}
	p.scratch = append(p.scratch, c)
	p.advance()
	return nil
}

// hex4 reads four hex digits
func (p *parser) hex4() ([4]byte, error) {
	var h [4]byte
	for i := range h {
		if p.eof {
			return h, p.fail()
		}
		n, ok := hexValue(p.tok)
		if !ok {
			return h, p.fail()
		}
		h[i] = n
		p.advance()
	}
	return h, nil
}

func (p *parser) unicode() error {
	h, err := p.hex4()
	if err != nil {
		return err
	}
	if !p.opts.decodeUnicode {
		p.scratch = append(p.scratch, h[0]<<4|h[1], h[2]<<4|h[3])
		return nil
	}

	r := codeUnit(h)
	if r >= 0xd800 && r < 0xdc00 {
		// High surrogate: combine with a following low surrogate escape
		if !p.consume('\\') {
			p.scratch = utf8.AppendRune(p.scratch, utf8.RuneError)
			return nil
		}
		if err := p.expect('u'); err != nil {
			return err
		}
		h2, err := p.hex4()
		if err != nil {
			return err
		}
		lo := codeUnit(h2)
		if lo >= 0xdc00 && lo < 0xe000 {
			r = 0x10000 + (r-0xd800)<<10 + (lo - 0xdc00)
		} else {
			p.scratch = utf8.AppendRune(p.scratch, utf8.RuneError)
			r = lo
		}
	}
	p.scratch = utf8.AppendRune(p.scratch, r)
	return nil
}

func codeUnit(h [4]byte) rune {
	return rune(h[0])<<12 | rune(h[1])<<8 | rune(h[2])<<4 | rune(h[3])
}

// number reads -?int frac? exp? and re-renders the digit groups as
// [-]I.FeS E text before converting to single precision
func (p *parser) number() (value.Value, error) {
	p.scratch = p.scratch[:0]
	if p.consume('-') {
		p.scratch = append(p.scratch, '-')
	}

	switch {
	case p.peek('0'):
		p.scratch = append(p.scratch, '0')
		p.advance()
	case !p.eof && p.tok >= '1' && p.tok <= '9':
		p.digits()
	default:
		return nil, p.fail()
	}

	p.scratch = append(p.scratch, '.')
	if p.consume('.') {
		if p.eof || !isDigit(p.tok) {
			return nil, p.fail()
		}
		p.digits()
	} else {
		p.scratch = append(p.scratch, '0')
	}

	p.scratch = append(p.scratch, 'e')
	if _, ok := p.consumeAnyOf("eE"); ok {
		if sign, ok := p.consumeAnyOf("+-"); ok {
			p.scratch = append(p.scratch, sign)
		}
		if p.eof || !isDigit(p.tok) {
			return nil, p.fail()
		}
		p.digits()
	} else {
		p.scratch = append(p.scratch, '0')
	}

	f, err := strconv.ParseFloat(string(p.scratch), 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, p.fail()
	}
	return value.Number(float32(f)), nil
}

func (p *parser) digits() {
	for !p.eof && isDigit(p.tok) {
		p.scratch = append(p.scratch, p.tok)
		p.advance()
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

package value

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const hexDigits = "0123456789abcdef"

// Text renders a scalar the way search compares it; containers have no text
func Text(v Value) string {
	switch s := v.(type) {
	case String:
		return string(s)
	case Number:
		return fmt.Sprintf("%f", float64(s))
	case True:
		return "true"
	case False:
		return "false"
	case Null:
		return "null"
	}
	return ""
}

// Encode writes v as JSON text. A non-empty indent selects the multi-line
// layout with one member or element per line.
func Encode(w io.Writer, v Value, indent string) error {
	e := encoder{w: bufio.NewWriter(w), indent: indent}
	e.value(v, 0)
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// EncodeString returns the JSON text of v
func EncodeString(v Value, indent string) string {
	var sb strings.Builder
	_ = Encode(&sb, v, indent)
	return sb.String()
}

type encoder struct {
	w      *bufio.Writer
	indent string
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.w.WriteByte('\n')
	for range depth {
		e.w.WriteString(e.indent)
	}
}

func (e *encoder) value(v Value, depth int) {
	switch c := v.(type) {
	case *Object:
		if c.Len() == 0 {
			e.w.WriteString("{}")
			return
		}
		e.w.WriteByte('{')
		for i, m := range c.Members() {
			if i > 0 {
				e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			e.str(m.Key)
			e.w.WriteByte(':')
			if e.indent != "" {
				e.w.WriteByte(' ')
			}
			e.value(m.Value, depth+1)
		}
		e.newline(depth)
		e.w.WriteByte('}')
	case *Array:
		if c.Len() == 0 {
			e.w.WriteString("[]")
			return
		}
		e.w.WriteByte('[')
		for i, el := range c.Elements() {
			if i > 0 {
				e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			e.value(el, depth+1)
		}
		e.newline(depth)
		e.w.WriteByte(']')
	case String:
		e.str(string(c))
	case Number:
		e.number(c)
	case True:
		e.w.WriteString("true")
	case False:
		e.w.WriteString("false")
	case Null:
		e.w.WriteString("null")
	}
}

// number writes the shortest text that reads back to the same float32.
// Infinities are written as out-of-range literals that parse back to themselves.
func (e *encoder) number(n Number) {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		e.w.WriteString("1e39")
	case math.IsInf(f, -1):
		e.w.WriteString("-1e39")
	case math.IsNaN(f):
		e.w.WriteString("null")
	default:
		e.w.WriteString(strconv.FormatFloat(f, 'g', -1, 32))
	}
}

// str writes a quoted string. Bytes >= 0x80 pass through unchanged.
// A \uHHLL escape reads back as the two bytes HH LL, so a control byte
// without a short escape is written together with a neighbour: the next
// byte, or the previous one when it ends the string.
func (e *encoder) str(s string) {
	e.w.WriteByte('"')
	held := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isBareControl(c) {
			e.flush(held)
			held = int(c)
			continue
		}
		switch {
		case i+1 < len(s):
			e.flush(held)
			held = -1
			e.pair(c, s[i+1])
			i++
		case held >= 0:
			e.pair(byte(held), c)
			held = -1
		default:
			// lone control byte; no neighbour to pair with
			e.pair(0, c)
		}
	}
	e.flush(held)
	e.w.WriteByte('"')
}

// isBareControl reports a control byte that has no short escape
func isBareControl(c byte) bool {
	switch c {
	case '\b', '\f', '\n', '\r', '\t':
		return false
	}
	return c < 0x20
}

func (e *encoder) pair(hi, lo byte) {
	e.w.WriteString(`\u`)
	e.w.WriteByte(hexDigits[hi>>4])
	e.w.WriteByte(hexDigits[hi&0xf])
	e.w.WriteByte(hexDigits[lo>>4])
	e.w.WriteByte(hexDigits[lo&0xf])
}

// flush writes a held byte, escaping it when needed; -1 means none
func (e *encoder) flush(held int) {
	if held < 0 {
		return
	}
	switch c := byte(held); c {
	case '"', '\\':
		e.w.WriteByte('\\')
		e.w.WriteByte(c)
	case '\b':
		e.w.WriteString(`\b`)
	case '\f':
		e.w.WriteString(`\f`)
	case '\n':
		e.w.WriteString(`\n`)
	case '\r':
		e.w.WriteString(`\r`)
	case '\t':
		e.w.WriteString(`\t`)
	default:
		e.w.WriteByte(c)
	}
}

package render

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/jv/buffer"
	"github.com/lixenwraith/jv/value"
)

// intRoundThreshold is the distance to the nearest integer under which a
// number is shown without a fraction
const intRoundThreshold = 1e-6

// replacement stands in for invalid UTF-8 and C1 control characters
const replacement = "\uFFFD"

// PrintCols writes src into dst using at most maxCols display columns and
// returns the columns used and the source bytes consumed. Tab and carriage
// return are shown as \t and \r, other control bytes as ^X. With escape set a
// newline is shown as \n; otherwise it ends the row and is consumed.
// A character that would cross the budget is not written.
func PrintCols(dst *buffer.Bytes, src string, maxCols int, escape bool) (cols, consumed int) {
	i := 0
	for i < len(src) && cols < maxCols {
		c := src[i]

		if c < 0x80 {
			var esc byte
			switch {
			case c == '\n' && !escape:
				return cols, i + 1
			case c == '\n':
				esc = 'n'
			case c == '\r':
				esc = 'r'
			case c == '\t':
				esc = 't'
			}
			switch {
			case esc != 0:
				if cols+2 > maxCols {
					return cols, i
				}
				dst.PutByte('\\')
				dst.PutByte(esc)
				cols += 2
			case c < 0x20 || c == 0x7f:
				if cols+2 > maxCols {
					return cols, i
				}
				dst.PutByte('^')
				dst.PutByte(c ^ 0x40)
				cols += 2
			default:
				dst.PutByte(c)
				cols++
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size <= 1 || r < 0xa0 {
			if cols+1 > maxCols {
				return cols, i
			}
			dst.AppendString(replacement)
			cols++
			i += size
			continue
		}
		w := runewidth.RuneWidth(r)
		if cols+w > maxCols {
			return cols, i
		}
		dst.AppendString(src[i : i+size])
		cols += w
		i += size
	}
	return cols, i
}

// textf formats into dst within cols columns of ASCII output
func textf(dst *buffer.Bytes, cols int, format string, args ...any) int {
	if cols <= 0 {
		return 0
	}
	return dst.Printf(cols, format, args...)
}

// FormatNumber shows near-integers without a fraction and everything else in %f
func FormatNumber(n value.Number) string {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprintf("%f", f)
	}
	r := math.Round(f)
	if math.Abs(f-r) < intRoundThreshold {
		if r == 0 {
			r = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return fmt.Sprintf("%f", f)
}

// Summarize writes a one-line preview of v and returns the columns used
func Summarize(dst *buffer.Bytes, v value.Value, cols int) int {
	switch c := v.(type) {
	case *value.Object:
		if c.Len() > 0 {
			return textf(dst, cols, "{..}")
		}
		return textf(dst, cols, "{}")
	case *value.Array:
		if c.Len() > 0 {
			return textf(dst, cols, "[..]")
		}
		return textf(dst, cols, "[]")
	case value.String:
		used, _ := PrintCols(dst, string(c), cols, true)
		return used
	case value.Number:
		return textf(dst, cols, "%s", FormatNumber(c))
	case value.True:
		return textf(dst, cols, "true")
	case value.False:
		return textf(dst, cols, "false")
	case value.Null:
		return textf(dst, cols, "null")
	}
	return 0
}

// PrintRow writes one child row: key or index, two spaces, the value summary,
// then padding to the full width so a selected row highlights edge to edge.
// Returns the columns used before padding.
func (r *Renderer) PrintRow(dst *buffer.Bytes, key string, isMember bool, index int, v value.Value, maxCols int, selected bool) int {
	keyStyle, valStyle := r.Theme.Key, r.Theme.Value
	if selected {
		keyStyle, valStyle = r.Theme.SelectedKey, r.Theme.Selected
	}

	cols := maxCols
	r.style(dst, keyStyle)
	if isMember {
		used, _ := PrintCols(dst, key, cols, true)
		cols -= used
		cols -= textf(dst, cols, "  ")
	} else {
		cols -= textf(dst, cols, "%d  ", index)
	}

	r.style(dst, valStyle)
	cols -= Summarize(dst, v, cols)
	used := maxCols - cols
	for ; cols > 0; cols-- {
		dst.PutByte(' ')
	}
	r.reset(dst)
	return used
}

package terminal

import (
	"bufio"
	"strconv"
)

// Pre-allocated ANSI sequences
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// ?7l keeps the cursor at the right edge so writing the bottom-right cell never scrolls
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Mouse reporting: 1000 press/release, 1002 drag, 1003 any motion, 1006 SGR coordinates
	csiMouseClickOn   = []byte("\x1b[?1000h")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOn    = []byte("\x1b[?1002h")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOn  = []byte("\x1b[?1003h")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROn     = []byte("\x1b[?1006h")
	csiMouseSGROff    = []byte("\x1b[?1006l")
)

// writeInt writes a non-negative integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	var buf [20]byte
	w.Write(strconv.AppendInt(buf[:0], int64(n), 10))
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// AppendReset appends the SGR reset sequence
func AppendReset(dst []byte) []byte {
	return append(dst, csiSGR0...)
}

// AppendStyle appends one SGR sequence that resets and then applies st.
// In 256-color mode RGB values are mapped to the nearest palette index.
func AppendStyle(dst []byte, st Style, mode ColorMode) []byte {
	dst = append(dst, csi...)
	dst = append(dst, '0')

	attrCodes := [...]struct {
		bit  Attr
		code byte
	}{
		{AttrBold, '1'},
		{AttrDim, '2'},
		{AttrItalic, '3'},
		{AttrUnderline, '4'},
		{AttrReverse, '7'},
	}
	for _, a := range attrCodes {
		if st.Attrs&a.bit != 0 {
			dst = append(dst, ';', a.code)
		}
	}

	dst = appendColor(dst, "38", st.Fg, mode)
	dst = appendColor(dst, "48", st.Bg, mode)
	return append(dst, 'm')
}

// appendColor appends ;38;2;r;g;b or ;38;5;n style parameters for a set color
func appendColor(dst []byte, layer string, c Color, mode ColorMode) []byte {
	if !c.Set {
		return dst
	}
	dst = append(dst, ';')
	dst = append(dst, layer...)
	if mode == ColorModeTrueColor {
		dst = append(dst, ";2;"...)
		dst = strconv.AppendUint(dst, uint64(c.R), 10)
		dst = append(dst, ';')
		dst = strconv.AppendUint(dst, uint64(c.G), 10)
		dst = append(dst, ';')
		return strconv.AppendUint(dst, uint64(c.B), 10)
	}
	dst = append(dst, ";5;"...)
	return strconv.AppendUint(dst, uint64(RGBTo256(c.RGB)), 10)
}

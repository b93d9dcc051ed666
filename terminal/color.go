package terminal

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Color is an optional color; the zero value keeps the terminal default
type Color struct {
	RGB
	Set bool
}

// ColorOf wraps an RGB value as a set color
func ColorOf(c RGB) Color {
	return Color{RGB: c, Set: true}
}

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrReverse   Attr = 1 << 4
)

// Style is a complete graphic rendition state
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// Bold returns a copy of s with bold added
func (s Style) Bold() Style {
	s.Attrs |= AttrBold
	return s
}

// Italic returns a copy of s with italic added
func (s Style) Italic() Style {
	s.Attrs |= AttrItalic
	return s
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubeLevel returns the nearest cube index 0-5 for a channel value
func cubeLevel(v uint8) uint8 {
	best := uint8(0)
	bestDist := abs(int(v) - int(cubeValues[0]))
	for j := 1; j < len(cubeValues); j++ {
		if d := abs(int(v) - int(cubeValues[j])); d < bestDist {
			bestDist = d
			best = uint8(j)
		}
	}
	return best
}

// RGBTo256 converts RGB to the nearest 256-color palette index
func RGBTo256(c RGB) uint8 {
	cr, cg, cb := cubeLevel(c.R), cubeLevel(c.G), cubeLevel(c.B)
	cube := 16 + 36*cr + 6*cg + cb

	// Near-gray colors may sit closer to the grayscale ramp: 232-255 covers 8..238 in steps of 10
	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	spread := max(abs(int(c.R)-gray), abs(int(c.G)-gray), abs(int(c.B)-gray))
	if spread >= 10 || gray < 4 || gray > 243 {
		return cube
	}

	step := min(max((gray-8+5)/10, 0), 23)
	level := 8 + step*10
	grayDist := abs(int(c.R)-level) + abs(int(c.G)-level) + abs(int(c.B)-level)
	cubeDist := abs(int(c.R)-int(cubeValues[cr])) +
		abs(int(c.G)-int(cubeValues[cg])) +
		abs(int(c.B)-int(cubeValues[cb]))
	if grayDist < cubeDist {
		return uint8(grayscaleStart + step)
	}
	return cube
}

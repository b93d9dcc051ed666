package render

import (
	"github.com/lixenwraith/jv/buffer"
	"github.com/lixenwraith/jv/terminal"
)

// Theme holds the styles of every rendered element
type Theme struct {
	Key         terminal.Style // member key or array index
	Value       terminal.Style // value summary
	SelectedKey terminal.Style
	Selected    terminal.Style
	Empty       terminal.Style // <Empty ...> markers
	Path        terminal.Style // breadcrumb in the top bar
	Status      terminal.Style
	Search      terminal.Style // search prompt in the status bar
	Message     terminal.Style // transient status messages
}

// DefaultTheme mirrors a plain terminal with a blue selection bar
func DefaultTheme() Theme {
	selBg := terminal.ColorOf(terminal.RGB{R: 0x26, G: 0x4f, B: 0x78})
	selFg := terminal.ColorOf(terminal.RGB{R: 0xff, G: 0xff, B: 0xff})
	selected := terminal.Style{Fg: selFg, Bg: selBg}

	return Theme{
		Key:         terminal.Style{}.Bold(),
		Value:       terminal.Style{},
		SelectedKey: selected.Bold(),
		Selected:    selected,
		Empty:       terminal.Style{}.Italic(),
		Path:        terminal.Style{}.Bold(),
		Status:      terminal.Style{},
		Search:      terminal.Style{}.Bold(),
		Message:     terminal.Style{Fg: terminal.ColorOf(terminal.RGB{R: 0xd7, G: 0x5f, B: 0x00})},
	}
}

// Renderer writes styled rows into byte buffers
type Renderer struct {
	Theme Theme
	Mode  terminal.ColorMode
	sgr   []byte
}

func NewRenderer(theme Theme, mode terminal.ColorMode) *Renderer {
	return &Renderer{Theme: theme, Mode: mode, sgr: make([]byte, 0, 64)}
}

// style switches dst to st
func (r *Renderer) style(dst *buffer.Bytes, st terminal.Style) {
	r.sgr = terminal.AppendStyle(r.sgr[:0], st, r.Mode)
	dst.Write(r.sgr)
}

func (r *Renderer) reset(dst *buffer.Bytes) {
	r.sgr = terminal.AppendReset(r.sgr[:0])
	dst.Write(r.sgr)
}

package config

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/jv/render"
	"github.com/lixenwraith/jv/terminal"
)

// themeElements maps [theme] table names to theme fields
func themeElements(t *render.Theme) map[string]*terminal.Style {
	return map[string]*terminal.Style{
		"key":          &t.Key,
		"value":        &t.Value,
		"selected_key": &t.SelectedKey,
		"selected":     &t.Selected,
		"empty":        &t.Empty,
		"path":         &t.Path,
		"status":       &t.Status,
		"search":       &t.Search,
		"message":      &t.Message,
	}
}

// ResolveTheme returns the default theme with the [theme] entries applied.
// An entry replaces the whole style of its element.
func (c *Config) ResolveTheme() (render.Theme, error) {
	theme := render.DefaultTheme()
	elements := themeElements(&theme)

	for name, spec := range c.Theme {
		dst, ok := elements[strings.ToLower(name)]
		if !ok {
			return theme, fmt.Errorf("[theme] %q: %w", name, ErrUnknownElement)
		}
		st, err := spec.Style()
		if err != nil {
			return theme, fmt.Errorf("[theme.%s] %w", name, err)
		}
		*dst = st
	}
	return theme, nil
}

// Style resolves the spec's colors and attributes
func (s StyleSpec) Style() (terminal.Style, error) {
	var st terminal.Style
	var err error
	if st.Fg, err = ResolveColor(s.Fg); err != nil {
		return st, fmt.Errorf("fg: %w", err)
	}
	if st.Bg, err = ResolveColor(s.Bg); err != nil {
		return st, fmt.Errorf("bg: %w", err)
	}

	attrs := [...]struct {
		on  bool
		bit terminal.Attr
	}{
		{s.Bold, terminal.AttrBold},
		{s.Dim, terminal.AttrDim},
		{s.Italic, terminal.AttrItalic},
		{s.Underline, terminal.AttrUnderline},
		{s.Reverse, terminal.AttrReverse},
	}
	for _, a := range attrs {
		if a.on {
			st.Attrs |= a.bit
		}
	}
	return st, nil
}

// ResolveColor turns a W3C/X11 color name or #rrggbb into a color.
// Empty and "default" leave the terminal's own color in place.
func ResolveColor(name string) (terminal.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return terminal.Color{}, nil
	}

	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return terminal.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return terminal.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return terminal.ColorOf(terminal.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}), nil
}

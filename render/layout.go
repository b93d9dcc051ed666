// Package render lays the screen out in panes and renders the navigation
// stack into per-row byte buffers.
//
// Row 0 shows the path to the focused value, the last row shows the file
// name or the search prompt, and up to NumViews view panes between them show
// the deepest levels of the stack side by side, the focused value rightmost.
package render

import (
	"github.com/lixenwraith/jv/buffer"
	"github.com/lixenwraith/jv/nav"
	"github.com/lixenwraith/jv/terminal"
	"github.com/lixenwraith/jv/value"
)

// NumViews is the maximum number of view panes
const NumViews = 3

const (
	viewTop       = 2 // first row of the view panes
	reservedRows  = 4 // top bar, gap, gap, status bar
	rowSlackBytes = 32
)

// Pane is a rectangular screen region with one byte buffer per row
type Pane struct {
	Top, Left  int
	Rows, Cols int
	rows       []buffer.Bytes
}

// realloc rebuilds the row buffers for rows rows of the current width
func (p *Pane) realloc(rows int) {
	p.Rows = max(rows, 0)
	p.rows = make([]buffer.Bytes, p.Rows)
	for i := range p.rows {
		p.rows[i] = buffer.MakeBytes(4*p.Cols + rowSlackBytes)
	}
}

// Row returns the buffer of row i; do not keep it across a Resize
func (p *Pane) Row(i int) *buffer.Bytes {
	return &p.rows[i]
}

func (p *Pane) clear() {
	for i := range p.rows {
		p.rows[i].Clear()
	}
}

func (p *Pane) contains(x, y int) bool {
	return x >= p.Left && x < p.Left+p.Cols && y >= p.Top && y < p.Top+p.Rows
}

// Status is the content of the status bar
type Status struct {
	Filename  string
	Searching bool
	Query     string
	Message   string
}

// Layout owns every pane of the screen
type Layout struct {
	Width, Height int
	TopBar        Pane
	StatusBar     Pane
	Views         [NumViews]Pane
	NumViews      int

	r *Renderer
}

func NewLayout(r *Renderer) *Layout {
	return &Layout{r: r}
}

// Resize recomputes all panes for a w x h screen and the current stack.
// Width is split evenly with the remainder going to the leftmost panes and
// one separator column after each; every pane but the focused one shrinks
// to its longest row, passing the freed columns to the panes on its right.
func (l *Layout) Resize(w, h int, s *nav.Stack) {
	l.Width, l.Height = w, h

	l.TopBar = Pane{Top: 0, Left: 0, Cols: w}
	l.TopBar.realloc(1)
	l.StatusBar = Pane{Top: max(h-1, 0), Left: 0, Cols: w}
	l.StatusBar.realloc(1)

	l.NumViews = min(s.Len(), NumViews)
	col := 0
	for i := 0; i < l.NumViews; i++ {
		p := &l.Views[i]
		rem := l.NumViews - i
		p.Top = viewTop
		p.Left = col
		p.Cols = max((w-col+rem-1)/rem-1, 0)
		p.realloc(h - reservedRows)

		if i < l.NumViews-1 {
			f := s.PeekN(l.NumViews - 1 - i)
			p.Cols = min(p.Cols, l.longestRow(p, f))
			p.clear()
		}
		col += p.Cols + 1
	}
	for i := l.NumViews; i < NumViews; i++ {
		l.Views[i] = Pane{}
	}
}

// longestRow renders the visible children of f into p and returns the widest
func (l *Layout) longestRow(p *Pane, f nav.Frame) int {
	n := value.ChildCount(f.Value)
	off := RowOffset(p.Rows, n, f.Index)
	longest := 0
	for ri := 0; ri < p.Rows && off+ri < n; ri++ {
		key, isMember, child := value.Child(f.Value, off+ri)
		longest = max(longest, l.r.PrintRow(&p.rows[ri], key, isMember, off+ri, child, p.Cols, false))
	}
	return longest
}

// RowOffset returns the first child shown when n children scroll through
// rows rows with index selected. The selection sits just below the middle
// once the list scrolls.
func RowOffset(rows, n, index int) int {
	if rows <= 0 || n <= rows {
		return 0
	}
	lim := min(rows/2+1, rows-1)
	if index <= lim {
		return 0
	}
	return index - lim
}

// Populate renders frame f into p; isTop marks the focused value, which is
// shown as a preview without a selection bar
func (l *Layout) Populate(p *Pane, f nav.Frame, isTop bool) {
	if p.Rows == 0 || p.Cols == 0 {
		return
	}
	r := l.r

	switch v := f.Value.(type) {
	case *value.Object, *value.Array:
		n := value.ChildCount(v)
		if n == 0 {
			marker := "<Empty array>"
			if _, ok := v.(*value.Object); ok {
				marker = "<Empty object>"
			}
			r.style(p.Row(0), r.Theme.Empty)
			textf(p.Row(0), p.Cols, "%s", marker)
			r.reset(p.Row(0))
			return
		}
		off := RowOffset(p.Rows, n, f.Index)
		for ri := 0; ri < p.Rows && off+ri < n; ri++ {
			di := off + ri
			key, isMember, child := value.Child(v, di)
			r.PrintRow(p.Row(ri), key, isMember, di, child, p.Cols, !isTop && di == f.Index)
		}

	case value.String:
		if len(v) == 0 {
			r.style(p.Row(0), r.Theme.Empty)
			textf(p.Row(0), p.Cols, "<Empty string>")
			r.reset(p.Row(0))
			return
		}
		// Wrap across rows; newlines start a new row
		rest := string(v)
		for ri := 0; ri < p.Rows && len(rest) > 0; ri++ {
			r.style(p.Row(ri), r.Theme.Value)
			_, consumed := PrintCols(p.Row(ri), rest, p.Cols, false)
			r.reset(p.Row(ri))
			if consumed == 0 {
				break
			}
			rest = rest[consumed:]
		}

	default:
		r.style(p.Row(0), r.Theme.Value)
		Summarize(p.Row(0), v, p.Cols)
		r.reset(p.Row(0))
	}
}

// PathBar renders the .key and [index] steps leading to the focused value
func (l *Layout) PathBar(dst *buffer.Bytes, s *nav.Stack, cols int) {
	r := l.r
	r.style(dst, r.Theme.Path)
	for _, g := range s.Path() {
		if cols <= 0 {
			break
		}
		if g.IsMember {
			cols -= textf(dst, cols, ".")
			used, _ := PrintCols(dst, g.Key, cols, true)
			cols -= used
		} else {
			cols -= textf(dst, cols, "[%d]", g.Index)
		}
	}
	r.reset(dst)
}

// statusLine renders the search prompt, a message or the file name
func (l *Layout) statusLine(dst *buffer.Bytes, st Status, cols int) {
	r := l.r
	switch {
	case st.Searching:
		r.style(dst, r.Theme.Search)
		cols -= textf(dst, cols, "/")
		PrintCols(dst, st.Query, cols, true)
	case st.Message != "":
		r.style(dst, r.Theme.Message)
		PrintCols(dst, st.Message, cols, true)
	default:
		r.style(dst, r.Theme.Status)
		PrintCols(dst, st.Filename, cols, true)
	}
	r.reset(dst)
}

// Render fills every pane's rows from the stack and status
func (l *Layout) Render(s *nav.Stack, st Status) {
	l.TopBar.clear()
	l.StatusBar.clear()
	for i := 0; i < l.NumViews; i++ {
		l.Views[i].clear()
	}

	if l.TopBar.Rows > 0 {
		l.PathBar(l.TopBar.Row(0), s, l.TopBar.Cols)
	}
	if l.StatusBar.Rows > 0 {
		l.statusLine(l.StatusBar.Row(0), st, l.StatusBar.Cols)
	}
	for i := 0; i < l.NumViews; i++ {
		depthFromTop := l.NumViews - 1 - i
		l.Populate(&l.Views[i], s.PeekN(depthFromTop), depthFromTop == 0)
	}
}

// Draw renders and writes a complete frame to term
func (l *Layout) Draw(term terminal.Terminal, s *nav.Stack, st Status) error {
	l.Render(s, st)

	term.BeginFrame()
	panes := []*Pane{&l.TopBar, &l.StatusBar}
	for i := 0; i < l.NumViews; i++ {
		panes = append(panes, &l.Views[i])
	}
	for _, p := range panes {
		for ri := range p.rows {
			if p.rows[ri].Len() > 0 {
				term.WriteAt(p.Left, p.Top+ri, p.rows[ri].Bytes())
			}
		}
	}
	return term.EndFrame()
}

// Hit maps a screen cell to a view pane and row within it
func (l *Layout) Hit(x, y int) (pane, row int, ok bool) {
	for i := 0; i < l.NumViews; i++ {
		if p := &l.Views[i]; p.contains(x, y) {
			return i, y - p.Top, true
		}
	}
	return 0, 0, false
}

// Pick focuses the child drawn at screen cell (x, y). Clicking a sibling
// in a parent pane selects it; clicking a row of the focused pane enters it.
func (l *Layout) Pick(s *nav.Stack, x, y int) bool {
	pane, row, ok := l.Hit(x, y)
	if !ok {
		return false
	}
	depth := s.Len() - l.NumViews + pane
	if depth < 0 || depth >= s.Len() {
		return false
	}
	f := s.At(depth)
	n := value.ChildCount(f.Value)
	di := RowOffset(l.Views[pane].Rows, n, f.Index) + row
	if di >= n {
		return false
	}
	return s.Pick(depth, di)
}

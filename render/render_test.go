package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/lixenwraith/jv/buffer"
	"github.com/lixenwraith/jv/nav"
	"github.com/lixenwraith/jv/parse"
	"github.com/lixenwraith/jv/terminal"
	"github.com/lixenwraith/jv/value"
)

var sgrPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(b []byte) string {
	return sgrPattern.ReplaceAllString(string(b), "")
}

func newTestLayout() *Layout {
	return NewLayout(NewRenderer(DefaultTheme(), terminal.ColorModeTrueColor))
}

func mustParse(t *testing.T, doc string) value.Value {
	t.Helper()
	v, err := parse.ParseBytes([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return v
}

func TestPrintCols(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		maxCols  int
		escape   bool
		want     string
		cols     int
		consumed int
	}{
		{"ascii truncated", "hello", 3, true, "hel", 3, 3},
		{"ascii fits", "hi", 10, true, "hi", 2, 2},
		{"wide chars", "世界", 4, true, "世界", 4, 6},
		{"wide stops before budget", "世界", 3, true, "世", 2, 3},
		{"tab escaped", "a\tb", 10, true, "a\\tb", 4, 3},
		{"escape needs two columns", "a\tb", 2, true, "a", 1, 1},
		{"carriage return", "\r", 10, false, "\\r", 2, 1},
		{"newline escaped", "a\nb", 10, true, "a\\nb", 4, 3},
		{"newline ends row", "a\nb", 10, false, "a", 1, 2},
		{"caret control", "\x01", 10, true, "^A", 2, 1},
		{"delete", "\x7f", 10, true, "^?", 2, 1},
		{"invalid utf8", "\xffx", 10, true, "�x", 2, 2},
		{"c1 control", "\u0085", 10, true, "�", 1, 2},
		{"zero budget", "abc", 0, true, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.MakeBytes(16)
			cols, consumed := PrintCols(&b, tt.src, tt.maxCols, tt.escape)
			if b.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, b.String())
			}
			if cols != tt.cols || consumed != tt.consumed {
				t.Errorf("Expected cols=%d consumed=%d, got cols=%d consumed=%d", tt.cols, tt.consumed, cols, consumed)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    value.Number
		want string
	}{
		{3, "3"},
		{-42, "-42"},
		{value.Number(float32(-0.0000001)), "0"},
		{1.5, "1.500000"},
		{0.1, "0.100000"},
		{1e6, "1000000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%v): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	full := value.NewObject()
	full.Append("k", value.Null{})
	arr := value.NewArray()
	arr.Append(value.True{})

	tests := []struct {
		v    value.Value
		want string
	}{
		{full, "{..}"},
		{value.NewObject(), "{}"},
		{arr, "[..]"},
		{value.NewArray(), "[]"},
		{value.String("a\nb"), "a\\nb"},
		{value.Number(7), "7"},
		{value.True{}, "true"},
		{value.False{}, "false"},
		{value.Null{}, "null"},
	}
	for _, tt := range tests {
		b := buffer.MakeBytes(16)
		n := Summarize(&b, tt.v, 20)
		if b.String() != tt.want || n != len(tt.want) {
			t.Errorf("Expected %q (%d cols), got %q (%d cols)", tt.want, len(tt.want), b.String(), n)
		}
	}
}

func TestPrintRow(t *testing.T) {
	r := NewRenderer(DefaultTheme(), terminal.ColorModeTrueColor)

	b := buffer.MakeBytes(64)
	used := r.PrintRow(&b, "name", true, 0, value.String("x"), 10, false)
	if used != 7 {
		t.Errorf("Expected 7 columns used, got %d", used)
	}
	if got := plain(b.Bytes()); got != "name  x   " {
		t.Errorf("Expected padded member row, got %q", got)
	}

	b.Clear()
	used = r.PrintRow(&b, "", false, 12, value.Null{}, 20, true)
	if used != 8 {
		t.Errorf("Expected 8 columns used, got %d", used)
	}
	if got := plain(b.Bytes()); !strings.HasPrefix(got, "12  null") || len(got) != 20 {
		t.Errorf("Expected padded index row, got %q", got)
	}
	if !strings.Contains(b.String(), "48;2;38;79;120") {
		t.Error("Expected selection background on selected row")
	}

	b.Clear()
	used = r.PrintRow(&b, "longkey", true, 0, value.Null{}, 5, false)
	if used != 5 || plain(b.Bytes()) != "longk" {
		t.Errorf("Expected row truncated to 5 columns, got %q (%d)", plain(b.Bytes()), used)
	}
}

func TestRowOffsetKeepsSelectionVisible(t *testing.T) {
	for rows := 1; rows <= 12; rows++ {
		for n := 1; n <= 40; n++ {
			for index := 0; index < n; index++ {
				off := RowOffset(rows, n, index)
				if off < 0 || index < off || index >= off+rows {
					t.Fatalf("RowOffset(%d, %d, %d) = %d hides the selection", rows, n, index, off)
				}
			}
		}
	}
	if RowOffset(0, 10, 5) != 0 {
		t.Error("Expected zero offset for a pane without rows")
	}
	if RowOffset(10, 10, 9) != 0 {
		t.Error("Expected zero offset when all children fit")
	}
	if got := RowOffset(10, 50, 20); got != 14 {
		t.Errorf("Expected offset 14, got %d", got)
	}
}

func TestResizeGeometry(t *testing.T) {
	s := nav.New(mustParse(t, `{"name":"x","list":[1,2]}`))
	l := newTestLayout()
	l.Resize(80, 24, s)

	if l.NumViews != 2 {
		t.Fatalf("Expected 2 views, got %d", l.NumViews)
	}
	if l.TopBar.Top != 0 || l.StatusBar.Top != 23 || l.TopBar.Cols != 80 {
		t.Errorf("Unexpected bars: top=%+v status=%+v", l.TopBar, l.StatusBar)
	}

	p0, p1 := l.Views[0], l.Views[1]
	if p0.Top != 2 || p0.Rows != 20 || p0.Left != 0 || p0.Cols != 10 {
		t.Errorf("Expected parent pane shrunk to 10 columns, got top=%d rows=%d left=%d cols=%d", p0.Top, p0.Rows, p0.Left, p0.Cols)
	}
	if p1.Left != 11 || p1.Cols != 68 {
		t.Errorf("Expected focused pane at 11 with 68 columns, got left=%d cols=%d", p1.Left, p1.Cols)
	}
}

func TestResizeSplitsRemainderLeft(t *testing.T) {
	// Three levels of long keys keep every pane at its even share
	long := strings.Repeat("k", 60)
	doc := `{"` + long + `":{"` + long + `":{"` + long + `":1}}}`
	s := nav.New(mustParse(t, doc))
	s.Descend()
	s.Descend()

	l := newTestLayout()
	l.Resize(100, 10, s)
	if l.NumViews != 3 {
		t.Fatalf("Expected 3 views, got %d", l.NumViews)
	}

	want := []struct{ left, cols int }{{0, 33}, {34, 32}, {67, 32}}
	for i, w := range want {
		if l.Views[i].Left != w.left || l.Views[i].Cols != w.cols {
			t.Errorf("View %d: expected left=%d cols=%d, got left=%d cols=%d", i, w.left, w.cols, l.Views[i].Left, l.Views[i].Cols)
		}
	}
}

func TestPopulateStringWraps(t *testing.T) {
	l := newTestLayout()
	p := Pane{Cols: 4}
	p.realloc(3)

	l.Populate(&p, nav.Frame{Value: value.String("abcdefghij")}, true)
	for i, want := range []string{"abcd", "efgh", "ij"} {
		if got := plain(p.Row(i).Bytes()); got != want {
			t.Errorf("Row %d: expected %q, got %q", i, want, got)
		}
	}

	p.clear()
	l.Populate(&p, nav.Frame{Value: value.String("ab\ncd")}, true)
	if plain(p.Row(0).Bytes()) != "ab" || plain(p.Row(1).Bytes()) != "cd" {
		t.Errorf("Expected newline to start a row, got %q %q", plain(p.Row(0).Bytes()), plain(p.Row(1).Bytes()))
	}
}

func TestPopulateEmptyMarkers(t *testing.T) {
	l := newTestLayout()
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.NewObject(), "<Empty object>"},
		{value.NewArray(), "<Empty array>"},
		{value.String(""), "<Empty string>"},
	}
	for _, tt := range tests {
		p := Pane{Cols: 20}
		p.realloc(2)
		l.Populate(&p, nav.Frame{Value: tt.v}, true)
		if got := plain(p.Row(0).Bytes()); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestPopulateHighlightsParentSelection(t *testing.T) {
	l := newTestLayout()
	root := mustParse(t, `[1,2,3]`)

	p := Pane{Cols: 10}
	p.realloc(3)
	l.Populate(&p, nav.Frame{Value: root, Index: 1}, false)
	sel := "48;2;38;79;120"
	if strings.Contains(p.Row(0).String(), sel) || !strings.Contains(p.Row(1).String(), sel) {
		t.Error("Expected only the selected row highlighted")
	}

	p.clear()
	l.Populate(&p, nav.Frame{Value: root, Index: 1}, true)
	for i := 0; i < 3; i++ {
		if strings.Contains(p.Row(i).String(), sel) {
			t.Errorf("Expected no highlight in focused pane, row %d", i)
		}
	}
}

func TestPopulateScrolls(t *testing.T) {
	l := newTestLayout()
	arr := value.NewArray()
	for i := 0; i < 50; i++ {
		arr.Append(value.Number(i))
	}
	p := Pane{Cols: 10}
	p.realloc(10)
	l.Populate(&p, nav.Frame{Value: arr, Index: 20}, false)
	if got := plain(p.Row(0).Bytes()); !strings.HasPrefix(got, "14  14") {
		t.Errorf("Expected first visible row 14, got %q", got)
	}
}

func TestPick(t *testing.T) {
	s := nav.New(mustParse(t, `{"a":[10,20,30],"b":true}`))
	l := newTestLayout()
	l.Resize(80, 24, s)

	if l.Views[0].Cols != 7 || l.Views[1].Left != 8 {
		t.Fatalf("Unexpected geometry: %+v %+v", l.Views[0], l.Views[1])
	}

	if l.Pick(s, 7, 3) {
		t.Error("Expected separator column to miss")
	}
	if l.Pick(s, 0, 0) {
		t.Error("Expected top bar to miss")
	}
	if l.Pick(s, 9, 10) {
		t.Error("Expected row past the last child to miss")
	}

	if !l.Pick(s, 9, 3) {
		t.Fatal("Expected pick in focused pane")
	}
	if got := s.PathString(); got != ".a[1]" {
		t.Errorf("Expected .a[1], got %q", got)
	}

	l.Resize(80, 24, s)
	if !l.Pick(s, 0, 3) {
		t.Fatal("Expected pick in ancestor pane")
	}
	if got := s.PathString(); got != ".b" {
		t.Errorf("Expected .b, got %q", got)
	}
}

type fakeTerm struct {
	rows   map[int][]string
	frames int
}

func (f *fakeTerm) Init() error                           { return nil }
func (f *fakeTerm) Fini()                                 {}
func (f *fakeTerm) Size() (int, int)                      { return 80, 24 }
func (f *fakeTerm) ColorMode() terminal.ColorMode         { return terminal.ColorModeTrueColor }
func (f *fakeTerm) PollEvent() terminal.Event             { return terminal.Event{} }
func (f *fakeTerm) PostEvent(terminal.Event)              {}
func (f *fakeTerm) SetMouseMode(terminal.MouseMode) error { return nil }
func (f *fakeTerm) BeginFrame()                           { f.rows = make(map[int][]string) }
func (f *fakeTerm) EndFrame() error                       { f.frames++; return nil }
func (f *fakeTerm) WriteAt(x, y int, p []byte) {
	f.rows[y] = append(f.rows[y], plain(p))
}

func TestDraw(t *testing.T) {
	s := nav.New(mustParse(t, `{"a":[10,20,30],"b":true}`))
	l := newTestLayout()
	l.Resize(80, 24, s)

	term := &fakeTerm{}
	if err := l.Draw(term, s, Status{Filename: "data.json"}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if term.frames != 1 {
		t.Errorf("Expected one frame, got %d", term.frames)
	}
	if got := strings.Join(term.rows[0], ""); got != ".a" {
		t.Errorf("Expected path .a, got %q", got)
	}
	if got := strings.Join(term.rows[23], ""); got != "data.json" {
		t.Errorf("Expected file name in status bar, got %q", got)
	}
	if got := strings.Join(term.rows[2], "|"); !strings.Contains(got, "a  [..]") || !strings.Contains(got, "0  10") {
		t.Errorf("Expected parent and child rows on line 2, got %q", got)
	}

	if err := l.Draw(term, s, Status{Searching: true, Query: "ab"}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if got := strings.Join(term.rows[23], ""); got != "/ab" {
		t.Errorf("Expected search prompt, got %q", got)
	}
}

package nav

import (
	"math"
	"testing"

	"github.com/lixenwraith/jv/parse"
	"github.com/lixenwraith/jv/value"
)

func load(t *testing.T, src string) *Stack {
	t.Helper()
	v, err := parse.ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", src, err)
	}
	return New(v)
}

func TestNewFocusesFirstChild(t *testing.T) {
	s := load(t, `{"a":1,"b":[2,3]}`)
	if s.Len() != 2 {
		t.Fatalf("Expected 2 frames, got %d", s.Len())
	}
	if s.Focus() != value.Number(1) {
		t.Errorf("Expected focus on 1, got %v", s.Focus())
	}

	empty := load(t, `[]`)
	if empty.Len() != 1 {
		t.Errorf("Expected single root frame for empty array, got %d", empty.Len())
	}
}

func TestDescendAscendSymmetry(t *testing.T) {
	s := load(t, `{"a":{"x":[1,2,{"y":true}]},"b":[[],[3]]}`)

	var walk func(depth int)
	walk = func(depth int) {
		if depth > 6 {
			return
		}
		n := value.ChildCount(s.Focus())
		for i := 0; i < n; i++ {
			before := s.Peek()
			beforeLen := s.Len()
			if !s.Descend() {
				t.Fatalf("Expected descend into non-empty container")
			}
			walk(depth + 1)
			if !s.Ascend() {
				t.Fatalf("Expected ascend after descend")
			}
			if s.Len() != beforeLen || s.Peek() != before {
				t.Errorf("Expected frame %+v restored, got %+v", before, s.Peek())
			}
			if i+1 < n {
				s.Descend()
				s.Move(1)
				s.Ascend()
			}
		}
	}
	walk(0)
}

func TestAscendKeepsTwoFrames(t *testing.T) {
	s := load(t, `{"a":[1]}`)
	if s.Ascend() {
		t.Error("Expected ascend to refuse at two frames")
	}
	s.Descend()
	if !s.Ascend() {
		t.Error("Expected ascend from three frames")
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 frames, got %d", s.Len())
	}
}

func TestMoveClamps(t *testing.T) {
	tests := []struct {
		offset int
		want   int
	}{
		{100, 2},
		{-100, 0},
		{1, 2},
		{-1, 0},
		{0, 1},
		{math.MaxInt, 2},
		{math.MinInt, 0},
	}
	for _, tt := range tests {
		s := load(t, `[10,20,30]`)
		s.Move(1)
		s.Move(tt.offset)
		if got := s.PeekN(1).Index; got != tt.want {
			t.Errorf("Move(%d): expected index %d, got %d", tt.offset, tt.want, got)
		}
		if s.Focus() != value.Number(10*(tt.want+1)) {
			t.Errorf("Move(%d): expected focus %d, got %v", tt.offset, 10*(tt.want+1), s.Focus())
		}
	}
}

func TestSearchEndToEnd(t *testing.T) {
	s := load(t, `{"a":1,"b":[2,3]}`)
	if !s.Search("3", false) {
		t.Fatal("Expected search for 3 to match")
	}
	if s.Focus() != value.Number(3) {
		t.Errorf("Expected focus on 3, got %v", s.Focus())
	}
	if s.Len() != 3 {
		t.Errorf("Expected 3 frames, got %d", s.Len())
	}
	if got := s.PathString(); got != ".b[1]" {
		t.Errorf("Expected path .b[1], got %s", got)
	}
}

func TestSearchMissLeavesStackUnchanged(t *testing.T) {
	s := load(t, `{"a":{"b":[1,"two",{"c":null}]},"d":false}`)
	s.Descend()
	s.Descend()
	before := *s

	if s.Search("absent-needle", false) {
		t.Error("Expected forward search to miss")
	}
	if s.Search("absent-needle", true) {
		t.Error("Expected reverse search to miss")
	}
	if !s.Equal(&before) || s.frames != before.frames {
		t.Error("Expected stack identical after missed search")
	}
}

func TestSearchExcludesFocusedValue(t *testing.T) {
	s := load(t, `["needle","other"]`)
	if s.Search("needle", false) {
		t.Errorf("Expected no match beyond the focused value, got focus %v", s.Focus())
	}

	s = load(t, `["needle","other","needle"]`)
	if !s.Search("needle", false) {
		t.Fatal("Expected later occurrence to match")
	}
	if got := s.PeekN(1).Index; got != 2 {
		t.Errorf("Expected match at index 2, got %d", got)
	}
}

func TestSearchKeysAndReverse(t *testing.T) {
	s := load(t, `{"alpha":1,"beta":{"alphabet":2},"gamma":"alp"}`)

	if !s.Search("alp", false) {
		t.Fatal("Expected forward match")
	}
	if got := s.PathString(); got != ".beta.alphabet" {
		t.Errorf("Expected .beta.alphabet, got %s", got)
	}

	if !s.Search("alp", false) {
		t.Fatal("Expected second forward match")
	}
	if got := s.PathString(); got != ".gamma" {
		t.Errorf("Expected .gamma, got %s", got)
	}

	if !s.Search("alp", true) {
		t.Fatal("Expected reverse match")
	}
	if got := s.PathString(); got != ".beta.alphabet" {
		t.Errorf("Expected reverse search to reach .beta.alphabet, got %s", got)
	}

	if !s.Search("alp", true) {
		t.Fatal("Expected second reverse match")
	}
	if got := s.PathString(); got != ".alpha" {
		t.Errorf("Expected .alpha, got %s", got)
	}
}

func TestSearchNumbersUseFixedText(t *testing.T) {
	s := load(t, `[1, 2.5]`)
	if !s.Search("2.500000", false) {
		t.Fatal("Expected number text to match")
	}
	if s.Focus() != value.Number(2.5) {
		t.Errorf("Expected focus 2.5, got %v", s.Focus())
	}
}

func TestPick(t *testing.T) {
	s := load(t, `{"a":[1,2,3],"b":{"c":true}}`)
	s.Descend()

	if !s.Pick(0, 1) {
		t.Fatal("Expected pick of root child 1")
	}
	if got := s.PathString(); got != ".b" {
		t.Errorf("Expected .b, got %s", got)
	}

	if !s.Pick(1, 0) {
		t.Fatal("Expected pick into focused object")
	}
	if s.Focus() != (value.True{}) {
		t.Errorf("Expected focus true, got %v", s.Focus())
	}

	if s.Pick(0, 5) {
		t.Error("Expected out-of-range pick to fail")
	}
	if s.Pick(9, 0) {
		t.Error("Expected pick below stack depth to fail")
	}
}

func TestPushOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on stack overflow")
		}
	}()
	s := &Stack{}
	for i := 0; i <= MaxDepth; i++ {
		s.Push(Frame{Value: value.Null{}})
	}
}

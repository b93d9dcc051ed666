package nav

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/jv/value"
)

// Segment is one step of the path to the focused value
type Segment struct {
	Key      string
	Index    int
	IsMember bool
}

func (g Segment) String() string {
	if g.IsMember {
		return "." + g.Key
	}
	return "[" + strconv.Itoa(g.Index) + "]"
}

// Path returns one segment per frame below the top
func (s *Stack) Path() []Segment {
	if s.size < 2 {
		return nil
	}
	segs := make([]Segment, 0, s.size-1)
	for _, f := range s.frames[:s.size-1] {
		key, isMember, _ := value.Child(f.Value, f.Index)
		segs = append(segs, Segment{Key: key, Index: f.Index, IsMember: isMember})
	}
	return segs
}

// PathString renders the path as .key and [index] steps
func (s *Stack) PathString() string {
	var sb strings.Builder
	for _, g := range s.Path() {
		sb.WriteString(g.String())
	}
	return sb.String()
}

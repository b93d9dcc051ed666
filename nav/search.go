package nav

import (
	"strings"

	"github.com/lixenwraith/jv/value"
)

// Search moves focus to the next node in depth-first order whose member key
// or scalar text contains needle. The focused value is never a candidate:
// forward search starts with its first child, reverse search with its
// previous sibling. Reverse order visits siblings last to first, a container
// still ahead of its children. A miss leaves the stack untouched.
func (s *Stack) Search(needle string, reverse bool) bool {
	if s.size == 0 {
		return false
	}
	work := *s
	if !work.search(needle, reverse) {
		return false
	}
	*s = work
	return true
}

func (s *Stack) search(needle string, reverse bool) bool {
	step := 1
	if reverse {
		step = -1
		s.top().Index = -1
	}

	for s.size > 0 {
		t := s.top()
		if t.Index < 0 || t.Index >= value.ChildCount(t.Value) {
			s.Pop()
			if s.size > 0 {
				s.top().Index += step
			}
			continue
		}

		key, isMember, child := value.Child(t.Value, t.Index)
		start := 0
		if reverse {
			start = value.ChildCount(child) - 1
		}
		s.Push(Frame{Value: child, Index: start})

		if matches(key, isMember, child, needle) {
			s.top().Index = 0
			return true
		}
	}
	return false
}

func matches(key string, isMember bool, v value.Value, needle string) bool {
	if isMember && strings.Contains(key, needle) {
		return true
	}
	if value.IsContainer(v) {
		return false
	}
	return strings.Contains(value.Text(v), needle)
}

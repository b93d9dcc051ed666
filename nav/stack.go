// Package nav tracks the path from the document root to the focused value.
//
// The stack holds one frame per level: frame i records a container and the
// index of its child that frame i+1 describes. The top frame is the focused
// value itself. Outside of the initial state the stack holds at least two frames.
package nav

import (
	"fmt"
	"math"

	"github.com/lixenwraith/jv/value"
)

// MaxDepth is the fixed capacity of the stack
const MaxDepth = 128

// Frame is one level of the navigation path
type Frame struct {
	Value value.Value
	Index int
}

// Stack is a bounded navigation path; pushing past MaxDepth panics
type Stack struct {
	frames [MaxDepth]Frame
	size   int
}

// New starts at root and focuses its first child when it has one
func New(root value.Value) *Stack {
	s := &Stack{}
	s.Push(Frame{Value: root})
	s.Descend()
	return s
}

func (s *Stack) Len() int {
	return s.size
}

// Push adds a frame on top
func (s *Stack) Push(f Frame) {
	if s.size >= MaxDepth {
		panic(fmt.Sprintf("nav: stack overflow at depth %d", s.size))
	}
	s.frames[s.size] = f
	s.size++
}

// Pop removes and returns the top frame
func (s *Stack) Pop() Frame {
	if s.size == 0 {
		panic("nav: pop of empty stack")
	}
	s.size--
	f := s.frames[s.size]
	s.frames[s.size] = Frame{}
	return f
}

// Peek returns the top frame
func (s *Stack) Peek() Frame {
	return s.PeekN(0)
}

// PeekN returns the frame n levels below the top
func (s *Stack) PeekN(n int) Frame {
	if n < 0 || n >= s.size {
		panic(fmt.Sprintf("nav: peek %d of stack with %d frames", n, s.size))
	}
	return s.frames[s.size-1-n]
}

// At returns the frame at depth d counted from the root
func (s *Stack) At(d int) Frame {
	if d < 0 || d >= s.size {
		panic(fmt.Sprintf("nav: frame %d of stack with %d frames", d, s.size))
	}
	return s.frames[d]
}

// Frames returns a read-only view from root to top
func (s *Stack) Frames() []Frame {
	return s.frames[:s.size:s.size]
}

// Focus returns the focused value
func (s *Stack) Focus() value.Value {
	return s.frames[s.size-1].Value
}

func (s *Stack) top() *Frame {
	return &s.frames[s.size-1]
}

// Descend pushes the child selected by the top frame.
// Returns false when the top value has no children.
func (s *Stack) Descend() bool {
	t := s.top()
	if t.Index < 0 || t.Index >= value.ChildCount(t.Value) {
		return false
	}
	_, _, child := value.Child(t.Value, t.Index)
	s.Push(Frame{Value: child})
	return true
}

// Ascend pops the top frame while more than two frames remain
func (s *Stack) Ascend() bool {
	if s.size <= 2 {
		return false
	}
	s.Pop()
	return true
}

// Move shifts the selection among the focused value's siblings by offset,
// clamped to the first and last sibling, then focuses the new sibling.
// math.MinInt and math.MaxInt jump to the ends.
func (s *Stack) Move(offset int) bool {
	if s.size < 2 {
		return false
	}
	s.Pop()
	parent := s.top()
	last := value.ChildCount(parent.Value) - 1
	parent.Index = max(0, min(saturatingAdd(parent.Index, offset), last))
	return s.Descend()
}

func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// Pick refocuses on child index of the container at depth d, discarding
// every frame above it. Used to map a click on a pane row to the stack.
func (s *Stack) Pick(d, index int) bool {
	if d < 0 || d >= s.size {
		return false
	}
	f := s.frames[d]
	if index < 0 || index >= value.ChildCount(f.Value) {
		return false
	}
	for s.size > d+1 {
		s.Pop()
	}
	s.top().Index = index
	return s.Descend()
}

// Equal reports whether two stacks hold the same frames.
// Containers compare by identity, scalars by value.
func (s *Stack) Equal(o *Stack) bool {
	if s.size != o.size {
		return false
	}
	for i := 0; i < s.size; i++ {
		if s.frames[i].Index != o.frames[i].Index || s.frames[i].Value != o.frames[i].Value {
			return false
		}
	}
	return true
}

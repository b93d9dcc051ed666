// Package buffer provides owned, growable containers that keep more than
// half of their capacity free after every write.
//
// Growable backs the object and array records of the value tree; Bytes backs
// every rendered terminal row.
package buffer

import "fmt"

// minCapacity is the capacity used when growing a zero-value container
const minCapacity = 8

// Growable is a contiguous sequence with explicit size and capacity.
// After every mutation Cap() > 2*Len() holds; the zero value is an empty container.
type Growable[T any] struct {
	data []T // len(data) is the capacity
	size int
}

// New creates a container with at least the given capacity
func New[T any](capacity int) *Growable[T] {
	g := Make[T](capacity)
	return &g
}

// Make returns a container by value for embedding in other records
func Make[T any](capacity int) Growable[T] {
	if capacity < 1 {
		capacity = 1
	}
	return Growable[T]{data: make([]T, capacity)}
}

// Len returns the number of items in use
func (g *Growable[T]) Len() int {
	return g.size
}

// Cap returns the allocated capacity
func (g *Growable[T]) Cap() int {
	return len(g.data)
}

// reserve grows the backing storage so that newSize satisfies the capacity
// invariant. The whole old allocation is copied, including bytes written past
// size, so speculative writes into the free tail survive a grow.
func (g *Growable[T]) reserve(newSize int) {
	c := len(g.data)
	if newSize*2 < c {
		return
	}
	if c == 0 {
		c = minCapacity
	}
	for newSize*2 >= c {
		c *= 2
	}
	data := make([]T, c)
	copy(data, g.data)
	g.data = data
}

// Append adds items at the end, doubling capacity as needed
func (g *Growable[T]) Append(items ...T) {
	g.reserve(g.size + len(items))
	copy(g.data[g.size:], items)
	g.size += len(items)
}

// At returns the item at index i; an out-of-range index is a bug in the caller
func (g *Growable[T]) At(i int) T {
	if i < 0 || i >= g.size {
		panic(fmt.Sprintf("buffer: index %d out of range [0,%d)", i, g.size))
	}
	return g.data[i]
}

// Set replaces the item at index i
func (g *Growable[T]) Set(i int, item T) {
	if i < 0 || i >= g.size {
		panic(fmt.Sprintf("buffer: index %d out of range [0,%d)", i, g.size))
	}
	g.data[i] = item
}

// Items returns a read-only view of the items in use.
// The view is invalidated by the next mutation.
func (g *Growable[T]) Items() []T {
	return g.data[:g.size:g.size]
}

// Clear resets size to zero and keeps capacity
func (g *Growable[T]) Clear() {
	clear(g.data[:g.size])
	g.size = 0
}

// ShrinkToFit releases headroom down to the smallest capacity that keeps the invariant
func (g *Growable[T]) ShrinkToFit() {
	c := 2*g.size + 1
	if c >= len(g.data) {
		return
	}
	data := make([]T, c)
	copy(data, g.data[:g.size])
	g.data = data
}

// Free releases the storage; the container is empty and reusable afterwards
func (g *Growable[T]) Free() {
	g.data = nil
	g.size = 0
}

// checkInvariant panics when the capacity invariant does not hold
func (g *Growable[T]) checkInvariant() {
	if g.size > 0 && len(g.data) <= 2*g.size {
		panic(fmt.Sprintf("buffer: capacity %d not greater than twice size %d", len(g.data), g.size))
	}
}

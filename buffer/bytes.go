package buffer

import (
	"fmt"
	"unicode/utf8"
)

// Bytes is a growable byte buffer with text operations.
// Contents are length-delimited; no terminator byte is kept.
type Bytes struct {
	Growable[byte]
}

// NewBytes creates a byte buffer with at least the given capacity
func NewBytes(capacity int) *Bytes {
	return &Bytes{Growable: Make[byte](capacity)}
}

// MakeBytes returns a byte buffer by value for embedding in slices of rows
func MakeBytes(capacity int) Bytes {
	return Bytes{Growable: Make[byte](capacity)}
}

// PutByte appends a single byte
func (b *Bytes) PutByte(c byte) {
	b.reserve(b.size + 1)
	b.data[b.size] = c
	b.size++
}

// AppendString appends the bytes of s
func (b *Bytes) AppendString(s string) {
	b.reserve(b.size + len(s))
	copy(b.data[b.size:], s)
	b.size += len(s)
}

// Write implements io.Writer; it never fails
func (b *Bytes) Write(p []byte) (int, error) {
	b.Append(p...)
	return len(p), nil
}

// Printf appends formatted text and returns the number of bytes written.
// maxLen bounds the bytes written (0 = unbounded); truncation backs off to a
// UTF-8 sequence boundary. The first pass formats into the free tail; when the
// result does not fit the buffer is grown and the same arguments are formatted
// again into the enlarged tail.
func (b *Bytes) Printf(maxLen int, format string, args ...any) int {
	start := b.size
	tail := b.data[start:start:len(b.data)]
	out := fmt.Appendf(tail, format, args...)
	n := len(out)

	if n > cap(tail) {
		// Spilled into a fresh allocation; grow and write in place
		b.reserve(start + n)
		tail = b.data[start:start:len(b.data)]
		out = fmt.Appendf(tail, format, args...)
		n = len(out)
	}

	if maxLen > 0 && n > maxLen {
		n = maxLen
		for n > 0 && !utf8.RuneStart(out[n]) {
			n--
		}
	}

	b.reserve(start + n)
	b.size = start + n
	b.checkInvariant()
	return n
}

// Bytes returns the contents; the slice is invalidated by the next mutation
func (b *Bytes) Bytes() []byte {
	return b.data[:b.size]
}

// String returns a copy of the contents
func (b *Bytes) String() string {
	return string(b.data[:b.size])
}

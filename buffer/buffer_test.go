package buffer

import (
	"strings"
	"testing"
)

func assertInvariant[T any](t *testing.T, g *Growable[T], step string) {
	t.Helper()
	if g.Len() > 0 && g.Cap() <= 2*g.Len() {
		t.Errorf("%s: expected capacity > 2*size, got cap=%d size=%d", step, g.Cap(), g.Len())
	}
}

func TestPrintfGrowsByDoubling(t *testing.T) {
	b := NewBytes(16)
	n := b.Printf(0, "Hello %s!\n", "world")

	if n != 13 {
		t.Errorf("Expected 13 bytes written, got %d", n)
	}
	if b.String() != "Hello world!\n" {
		t.Errorf("Expected %q, got %q", "Hello world!\n", b.String())
	}
	if b.Cap() != 32 {
		t.Errorf("Expected capacity 32, got %d", b.Cap())
	}
}

func TestPrintfSpillRewrites(t *testing.T) {
	b := NewBytes(4)
	b.AppendString("ab")
	long := strings.Repeat("x", 100)
	n := b.Printf(0, "%s|%d", long, 42)

	want := "ab" + long + "|42"
	if n != len(long)+3 {
		t.Errorf("Expected %d bytes written, got %d", len(long)+3, n)
	}
	if b.String() != want {
		t.Errorf("Expected %q, got %q", want, b.String())
	}
	assertInvariant(t, &b.Growable, "spill")
}

func TestPrintfTruncation(t *testing.T) {
	tests := []struct {
		name   string
		maxLen int
		format string
		args   []any
		want   string
	}{
		{"fits", 10, "%d", []any{123}, "123"},
		{"ascii cut", 3, "%s", []any{"abcdef"}, "abc"},
		{"utf8 boundary", 4, "%s", []any{"abéé"}, "abé"},
		{"wide rune not split", 5, "%s", []any{"世界"}, "世"},
		{"unbounded", 0, "%s-%s", []any{"left", "right"}, "left-right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBytes(2)
			n := b.Printf(tt.maxLen, tt.format, tt.args...)
			if b.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, b.String())
			}
			if n != len(tt.want) {
				t.Errorf("Expected %d bytes written, got %d", len(tt.want), n)
			}
		})
	}
}

func TestInvariantAfterEveryWrite(t *testing.T) {
	b := NewBytes(1)
	for i := 0; i < 200; i++ {
		switch i % 4 {
		case 0:
			b.PutByte('x')
		case 1:
			b.Append('a', 'b', 'c')
		case 2:
			b.Printf(0, "%d;", i)
		case 3:
			b.AppendString("été")
		}
		assertInvariant(t, &b.Growable, "write")
	}
}

func TestGrowableRecords(t *testing.T) {
	type record struct {
		key string
		n   int
	}
	g := New[record](0)
	for i := 0; i < 50; i++ {
		g.Append(record{key: "k", n: i})
		assertInvariant(t, g, "append")
	}

	if g.Len() != 50 {
		t.Fatalf("Expected 50 records, got %d", g.Len())
	}
	if g.At(49).n != 49 {
		t.Errorf("Expected last record 49, got %d", g.At(49).n)
	}

	g.ShrinkToFit()
	if g.Cap() != 101 {
		t.Errorf("Expected capacity 101 after shrink, got %d", g.Cap())
	}
	assertInvariant(t, g, "shrink")

	items := g.Items()
	if len(items) != 50 || items[10].n != 10 {
		t.Errorf("Expected items view of 50 records, got %d", len(items))
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	b := NewBytes(8)
	b.AppendString("some row text")
	c := b.Cap()
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("Expected empty buffer, got size %d", b.Len())
	}
	if b.Cap() != c {
		t.Errorf("Expected capacity %d kept, got %d", c, b.Cap())
	}
}

func TestFreeThenReuse(t *testing.T) {
	b := NewBytes(8)
	b.AppendString("abc")
	b.Free()
	if b.Len() != 0 || b.Cap() != 0 {
		t.Errorf("Expected released storage, got size=%d cap=%d", b.Len(), b.Cap())
	}

	b.Printf(0, "%s", "again")
	if b.String() != "again" {
		t.Errorf("Expected %q, got %q", "again", b.String())
	}
	assertInvariant(t, &b.Growable, "reuse")
}

func TestAtOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on out-of-range index")
		}
	}()
	g := New[int](4)
	g.Append(1)
	g.At(1)
}

//go:build unix

package terminal

import (
	"errors"
	"io"
	"os"
	"testing"
)

func TestReadReportsHangup(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer r.Close()

	b := &ttyBackend{inFd: int(r.Fd())}
	stopCh := make(chan struct{})

	if _, err := w.Write([]byte("q")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := b.Read(stopCh)
	if err != nil || string(data) != "q" {
		t.Fatalf("Expected pending input q, got %q (err=%v)", data, err)
	}

	w.Close()
	if _, err := b.Read(stopCh); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF after hangup, got %v", err)
	}
}

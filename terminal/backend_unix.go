//go:build unix

package terminal

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollInterval bounds how long Read blocks before rechecking the stop channel
const pollInterval = 100 // milliseconds

var errNotTerminal = errors.New("stdin is not a terminal")

// ttyBackend drives the controlling terminal through stdin/stdout
type ttyBackend struct {
	out     *os.File
	inFd    int
	outFd   int
	saved   *term.State
	readBuf [256]byte

	watchStop chan struct{}
	watchDone chan struct{}
}

func newBackend() Backend {
	return &ttyBackend{
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// Init switches stdin to raw mode
func (b *ttyBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return errNotTerminal
	}
	saved, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.saved = saved
	return nil
}

// Fini stops the resize watcher and restores the saved terminal mode
func (b *ttyBackend) Fini() {
	if b.watchStop != nil {
		close(b.watchStop)
		<-b.watchDone
		b.watchStop = nil
	}
	if b.saved != nil {
		term.Restore(b.inFd, b.saved)
		b.saved = nil
	}
}

func (b *ttyBackend) Size() (int, int) {
	return windowSize(b.outFd)
}

func (b *ttyBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollInterval)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}

		rn, err := unix.Read(b.inFd, b.readBuf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}
		if rn == 0 {
			// hangup or closed input
			return nil, io.EOF
		}
		data := make([]byte, rn)
		copy(data, b.readBuf[:rn])
		return data, nil
	}
}

// SetResizeHandler starts a goroutine that turns SIGWINCH into handler calls.
// The handler must only hand the size off; it runs concurrently with the caller.
func (b *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	b.watchStop = make(chan struct{})
	b.watchDone = make(chan struct{})

	go func() {
		defer close(b.watchDone)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-b.watchStop:
				return
			case <-sigCh:
				handler(b.Size())
			}
		}
	}()
}

// windowSize returns the terminal size for fd, 80x24 when unknown
func windowSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

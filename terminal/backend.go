package terminal

// Backend is the platform side of the terminal: raw mode, size queries,
// byte I/O and resize notification
type Backend interface {
	Init() error
	Fini()

	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, stopCh is closed or the poll
	// interval elapses; the latter two return no data and no error.
	// End of input is reported as io.EOF.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback run on the backend's watcher
	// goroutine whenever the window size changes
	SetResizeHandler(handler func(width, height int))
}

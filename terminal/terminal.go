package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// Terminal is the screen and input boundary of the viewer
type Terminal interface {
	// Init enters raw mode and the alternate screen and hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the color capability used for styles
	ColorMode() ColorMode

	// PollEvent blocks until the next input, resize or posted event
	PollEvent() Event

	// PostEvent injects a synthetic event
	PostEvent(Event)

	// SetMouseMode enables or disables mouse reporting
	SetMouseMode(mode MouseMode) error

	// BeginFrame starts a full redraw by clearing the screen
	BeginFrame()

	// WriteAt positions the cursor at (x, y), 0-indexed, and writes p
	WriteAt(x, y int, p []byte)

	// EndFrame flushes the frame to the terminal
	EndFrame() error
}

// backendWriter adapts Backend.Write to io.Writer
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// termImpl implements Terminal on top of a Backend
type termImpl struct {
	backend   Backend
	colorMode ColorMode
	writer    *bufio.Writer

	input       *inputReader
	resizeCh    chan Event
	syntheticCh chan Event

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseMode   MouseMode
}

// New creates a terminal on stdin/stdout; the color mode is detected unless given
func New(colorMode ...ColorMode) Terminal {
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return newTerm(newBackend(), c)
}

func newTerm(b Backend, c ColorMode) *termImpl {
	return &termImpl{
		backend:     b,
		colorMode:   c,
		writer:      bufio.NewWriterSize(backendWriter{b}, 64*1024),
		resizeCh:    make(chan Event, 1),
		syntheticCh: make(chan Event, 16),
	}
}

func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.backend.Init(); err != nil {
		return err
	}

	t.input = newInputReader(t.backend)

	// The watcher only hands the latest size over; the main loop redraws
	t.backend.SetResizeHandler(func(w, h int) {
		ev := Event{Type: EventResize, Width: w, Height: h}
		select {
		case t.resizeCh <- ev:
		default:
			// Drain and replace so only the latest size is pending
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ev:
			default:
			}
		}
	})

	t.writer.Write(csiAltScreenEnter)
	t.writer.Write(csiCursorHide)
	t.writer.Write(csiAutoWrapOff)
	t.writer.Write(csiClear)
	t.writer.Flush()

	t.input.start()
	t.initialized = true
	return nil
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.mouseMode != MouseModeNone {
		writeMouseOff(t.writer)
	}
	if t.input != nil {
		t.input.stop()
	}

	t.writer.Write(csiSGR0)
	t.writer.Write(csiCursorShow)
	t.writer.Write(csiAltScreenExit)
	// Re-enable wrap after leaving the alternate screen so the main buffer keeps it
	t.writer.Write(csiAutoWrapOn)
	t.writer.Flush()

	t.backend.Fini()
	t.finalized = true
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

func (t *termImpl) PollEvent() Event {
	select {
	case ev := <-t.syntheticCh:
		return ev
	default:
	}

	select {
	case ev := <-t.syntheticCh:
		return ev
	case ev := <-t.input.events():
		return ev
	case ev := <-t.resizeCh:
		return ev
	}
}

func (t *termImpl) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
	}
}

func (t *termImpl) SetMouseMode(mode MouseMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}

	old := t.mouseMode
	t.mouseMode = mode
	w := t.writer

	// Disable in reverse order of enabling
	if old&MouseModeMotion != 0 && mode&MouseModeMotion == 0 {
		w.Write(csiMouseMotionOff)
	}
	if old&MouseModeDrag != 0 && mode&MouseModeDrag == 0 {
		w.Write(csiMouseDragOff)
	}
	if old&MouseModeClick != 0 && mode&MouseModeClick == 0 {
		w.Write(csiMouseClickOff)
	}
	if mode == MouseModeNone && old != MouseModeNone {
		w.Write(csiMouseSGROff)
	}

	if mode != MouseModeNone && old == MouseModeNone {
		w.Write(csiMouseSGROn)
	}
	if mode&MouseModeClick != 0 && old&MouseModeClick == 0 {
		w.Write(csiMouseClickOn)
	}
	if mode&MouseModeDrag != 0 && old&MouseModeDrag == 0 {
		w.Write(csiMouseDragOn)
	}
	if mode&MouseModeMotion != 0 && old&MouseModeMotion == 0 {
		w.Write(csiMouseMotionOn)
	}

	return w.Flush()
}

func (t *termImpl) BeginFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writer.Write(csiSGR0)
	t.writer.Write(csiClear)
}

func (t *termImpl) WriteAt(x, y int, p []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	writeCursorPos(t.writer, x, y)
	t.writer.Write(p)
}

func (t *termImpl) EndFrame() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writer.Flush()
}

func writeMouseOff(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
}

// EmergencyReset attempts to restore terminal to sane state.
// Call this from panic recovery if Fini() cannot be called normally.
func EmergencyReset(w io.Writer) {
	writeMouseOff(w)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// Package app runs the interactive viewer loop.
//
// All mutable state (the navigation stack, the panes and the search prompt)
// lives in one App owned by the goroutine that calls Run. Terminal input,
// resizes and OS signals reach it as channel messages; each is handled to
// completion and followed by a full redraw.
package app

import (
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/atotto/clipboard"

	"github.com/lixenwraith/jv/keymap"
	"github.com/lixenwraith/jv/nav"
	"github.com/lixenwraith/jv/render"
	"github.com/lixenwraith/jv/terminal"
	"github.com/lixenwraith/jv/value"
)

// yankIndent is the indentation of values copied to the clipboard
const yankIndent = "  "

// SignalError ends Run when a terminating signal arrives
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return "terminated by signal: " + e.Signal.String()
}

// ExitCode follows the shell convention of 128 plus the signal number
func (e *SignalError) ExitCode() int {
	if s, ok := e.Signal.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

// Options configures an App
type Options struct {
	Filename  string
	Theme     render.Theme
	Keys      *keymap.Table
	Mouse     bool
	Clipboard func(string) error // defaults to the system clipboard
}

// App holds the complete viewer state
type App struct {
	term     terminal.Terminal
	stack    *nav.Stack
	layout   *render.Layout
	keys     *keymap.Table
	filename string
	mouse    bool
	copy     func(string) error

	searching bool
	query     []byte
	message   string

	// depth of the stack the panes were laid out for
	depth       int
	needsLayout bool
}

// New creates a viewer for root on term
func New(term terminal.Terminal, root value.Value, opts Options) *App {
	keys := opts.Keys
	if keys == nil {
		keys = keymap.Default()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	return &App{
		term:        term,
		stack:       nav.New(root),
		layout:      render.NewLayout(render.NewRenderer(opts.Theme, term.ColorMode())),
		keys:        keys,
		filename:    opts.Filename,
		mouse:       opts.Mouse,
		copy:        copyFn,
		needsLayout: true,
	}
}

// Stack exposes the navigation state
func (a *App) Stack() *nav.Stack {
	return a.stack
}

// Run initializes the terminal and handles events until the user quits or a
// signal arrives. The terminal is restored on every return path.
func (a *App) Run() error {
	if err := a.term.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer a.term.Fini()

	if a.mouse {
		if err := a.term.SetMouseMode(terminal.MouseModeClick); err != nil {
			log.Printf("mouse mode: %v", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	defer signal.Stop(sigCh)

	pump := terminal.NewPump(a.term)
	pump.Start()
	defer pump.Stop()

	if err := a.Draw(); err != nil {
		return err
	}

	for {
		select {
		case sig := <-sigCh:
			log.Printf("signal %v", sig)
			return &SignalError{Signal: sig}

		case ev := <-pump.Events():
			done, err := a.HandleEvent(ev)
			if err != nil || done {
				return err
			}
			if err := a.Draw(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent applies one event to the state. done reports that the loop
// should end; err carries a signal-style exit or a terminal failure.
func (a *App) HandleEvent(ev terminal.Event) (done bool, err error) {
	switch ev.Type {
	case terminal.EventKey:
		a.message = ""
		if a.searching {
			return a.handleSearchKey(ev)
		}
		return a.handleAction(a.keys.Lookup(ev))

	case terminal.EventMouse:
		if a.mouse {
			a.message = ""
			a.handleMouse(ev)
		}

	case terminal.EventResize:
		log.Printf("resize %dx%d", ev.Width, ev.Height)
		a.needsLayout = true

	case terminal.EventError:
		return true, fmt.Errorf("terminal input: %w", ev.Err)

	case terminal.EventClosed:
		return true, nil
	}
	return false, nil
}

func (a *App) handleSearchKey(ev terminal.Event) (bool, error) {
	switch ev.Key {
	case terminal.KeyEscape:
		a.searching = false
		a.query = a.query[:0]
	case terminal.KeyEnter:
		a.searching = false
		a.search(false)
	case terminal.KeyBackspace:
		if len(a.query) > 0 {
			_, size := utf8.DecodeLastRune(a.query)
			a.query = a.query[:len(a.query)-size]
		}
	case terminal.KeyCtrlC:
		return true, &SignalError{Signal: syscall.SIGINT}
	case terminal.KeyRune:
		if ev.Modifiers&terminal.ModAlt == 0 {
			a.query = utf8.AppendRune(a.query, ev.Rune)
		}
	}
	return false, nil
}

func (a *App) handleAction(act keymap.Action) (bool, error) {
	s := a.stack
	switch act {
	case keymap.ActionQuit, keymap.ActionCancel:
		return true, nil
	case keymap.ActionInterrupt:
		return true, &SignalError{Signal: syscall.SIGINT}

	case keymap.ActionSearch:
		a.searching = true
		a.query = a.query[:0]
	case keymap.ActionSearchNext:
		a.search(false)
	case keymap.ActionSearchPrev:
		a.search(true)

	case keymap.ActionDescend:
		s.Descend()
	case keymap.ActionAscend:
		s.Ascend()
	case keymap.ActionUp:
		a.move(-1)
	case keymap.ActionDown:
		a.move(1)
	case keymap.ActionPageUp:
		a.move(-a.pageSize())
	case keymap.ActionPageDown:
		a.move(a.pageSize())
	case keymap.ActionHome:
		a.move(math.MinInt)
	case keymap.ActionEnd:
		a.move(math.MaxInt)

	case keymap.ActionYankPath:
		path := s.PathString()
		if path == "" {
			path = "."
		}
		a.yank("path", path)
	case keymap.ActionYankValue:
		a.yank("value", value.EncodeString(s.Focus(), yankIndent))

	case keymap.ActionRedraw:
		a.needsLayout = true
	}
	return false, nil
}

// move shifts the selection among siblings. The parent pane is sized to its
// visible rows, so it is laid out again when the move scrolls it.
func (a *App) move(offset int) {
	before := a.parentOffset()
	a.stack.Move(offset)
	if a.parentOffset() != before {
		a.needsLayout = true
	}
}

// parentOffset is the first row shown in the pane left of the focused one
func (a *App) parentOffset() int {
	n := a.layout.NumViews
	if n < 2 || a.stack.Len() < 2 {
		return 0
	}
	f := a.stack.PeekN(1)
	return render.RowOffset(a.layout.Views[n-2].Rows, value.ChildCount(f.Value), f.Index)
}

// search moves to the next match of the last query; an empty query does nothing
func (a *App) search(reverse bool) {
	if len(a.query) == 0 {
		return
	}
	if a.stack.Search(string(a.query), reverse) {
		a.needsLayout = true
		return
	}
	log.Printf("search %q: no match", a.query)
}

func (a *App) handleMouse(ev terminal.Event) {
	if ev.MouseAction != terminal.MouseActionPress {
		return
	}
	switch ev.MouseBtn {
	case terminal.MouseBtnLeft:
		if a.layout.Pick(a.stack, ev.MouseX, ev.MouseY) {
			a.needsLayout = true
		}
	case terminal.MouseBtnWheelUp:
		a.move(-1)
	case terminal.MouseBtnWheelDown:
		a.move(1)
	}
}

func (a *App) yank(what, text string) {
	if err := a.copy(text); err != nil {
		log.Printf("clipboard: %v", err)
		a.message = "Clipboard unavailable: " + err.Error()
		return
	}
	a.message = "Copied " + what
}

// pageSize is the number of rows in a view pane
func (a *App) pageSize() int {
	return max(a.layout.Views[0].Rows, 1)
}

// Status returns what the status bar shows
func (a *App) Status() render.Status {
	return render.Status{
		Filename:  a.filename,
		Searching: a.searching,
		Query:     string(a.query),
		Message:   a.message,
	}
}

// Draw lays the panes out again when the depth or screen changed, then
// redraws the whole screen
func (a *App) Draw() error {
	if a.needsLayout || a.stack.Len() != a.depth {
		w, h := a.term.Size()
		a.layout.Resize(w, h, a.stack)
		a.depth = a.stack.Len()
		a.needsLayout = false
	}
	if err := a.layout.Draw(a.term, a.stack, a.Status()); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

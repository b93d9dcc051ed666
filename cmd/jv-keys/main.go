// Command jv-keys shows how terminal input is decoded and which viewer
// action each key is bound to under the current configuration.
// Press Ctrl+C to quit.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lixenwraith/jv/buffer"
	"github.com/lixenwraith/jv/config"
	"github.com/lixenwraith/jv/keymap"
	"github.com/lixenwraith/jv/terminal"
)

var CLI struct {
	Config string `help:"Path to config file." short:"c" type:"path"`
}

// maxLog is the number of events kept on screen
const maxLog = 20

func main() {
	parser := kong.Must(&CLI, kong.Name("jv-keys"), kong.Description("Inspect key decoding and bindings"), kong.UsageOnError())
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	keys, err := cfg.Keymap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	term := terminal.New()
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()
	term.SetMouseMode(terminal.MouseModeClick)

	eventLog := make([]string, 0, maxLog)
	addLog := func(s string) {
		if len(eventLog) >= maxLog {
			copy(eventLog, eventLog[1:])
			eventLog = eventLog[:maxLog-1]
		}
		eventLog = append(eventLog, s)
	}

	row := buffer.MakeBytes(256)
	draw := func() {
		w, _ := term.Size()
		term.BeginFrame()
		lines := append([]string{"Key test - press keys or click - Ctrl+C to quit", ""}, eventLog...)
		for y, line := range lines {
			row.Clear()
			row.Printf(w, "%s", line)
			term.WriteAt(0, y, row.Bytes())
		}
		term.EndFrame()
	}

	draw()
	for {
		ev := term.PollEvent()
		switch ev.Type {
		case terminal.EventKey:
			if ev.Key == terminal.KeyCtrlC {
				return
			}
			addLog(formatKeyEvent(ev, keys))
		case terminal.EventMouse:
			addLog(formatMouseEvent(ev))
		case terminal.EventResize:
			addLog(fmt.Sprintf("RESIZE: %dx%d", ev.Width, ev.Height))
		case terminal.EventError:
			addLog(fmt.Sprintf("ERROR: %v", ev.Err))
		case terminal.EventClosed:
			return
		}
		draw()
	}
}

func modifiers(m terminal.Modifier) string {
	var sb strings.Builder
	if m&terminal.ModShift != 0 {
		sb.WriteString("Shift+")
	}
	if m&terminal.ModAlt != 0 {
		sb.WriteString("Alt+")
	}
	if m&terminal.ModCtrl != 0 {
		sb.WriteString("Ctrl+")
	}
	return sb.String()
}

func formatKeyEvent(ev terminal.Event, keys *keymap.Table) string {
	name := terminal.KeyName(ev.Key)
	if ev.Key == terminal.KeyRune {
		if ev.Rune >= 0x20 && ev.Rune < 0x7f {
			name = fmt.Sprintf("'%c'", ev.Rune)
		} else {
			name = fmt.Sprintf("U+%04X", ev.Rune)
		}
	}
	return fmt.Sprintf("KEY: %s%s -> %s", modifiers(ev.Modifiers), name, keys.Lookup(ev))
}

func formatMouseEvent(ev terminal.Event) string {
	return fmt.Sprintf("MOUSE: %s%s %s @ (%d,%d)",
		modifiers(ev.Modifiers), ev.MouseBtn, ev.MouseAction, ev.MouseX, ev.MouseY)
}

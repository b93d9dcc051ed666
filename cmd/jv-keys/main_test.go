package main

import (
	"testing"

	"github.com/lixenwraith/jv/keymap"
	"github.com/lixenwraith/jv/terminal"
)

func TestFormatKeyEvent(t *testing.T) {
	keys := keymap.Default()
	tests := []struct {
		ev   terminal.Event
		want string
	}{
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q'}, "KEY: 'q' -> quit"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'é'}, "KEY: U+00E9 -> none"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyPageDown}, "KEY: page_down -> page_down"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRight, Modifiers: terminal.ModCtrl}, "KEY: Ctrl+right -> descend"},
	}
	for _, tt := range tests {
		if got := formatKeyEvent(tt.ev, keys); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestFormatMouseEvent(t *testing.T) {
	ev := terminal.Event{Type: terminal.EventMouse, MouseBtn: terminal.MouseBtnWheelUp, MouseAction: terminal.MouseActionPress, MouseX: 3, MouseY: 7, Modifiers: terminal.ModShift}
	if got := formatMouseEvent(ev); got != "MOUSE: Shift+WheelUp Press @ (3,7)" {
		t.Errorf("Unexpected %q", got)
	}
}

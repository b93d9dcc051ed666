// Package keymap maps terminal key events to viewer actions.
//
// Bindings come from a built-in table that the [keys] section of the
// config file can override entry by entry. A key is either a single character, one of the
// rune aliases ("space", "backslash") or a terminal key name such as
// "page_down" or "ctrl_l". Binding a key to "none" removes it.
package keymap

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/lixenwraith/jv/terminal"
)

var (
	ErrUnknownKey    = errors.New("unknown key name")
	ErrUnknownAction = errors.New("unknown action")
)

// section is the TOML table holding key bindings
const section = "keys"

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// Table holds rune and special key bindings
type Table struct {
	Runes map[rune]Action
	Keys  map[terminal.Key]Action
}

// Default returns the built-in bindings
func Default() *Table {
	return &Table{
		Runes: map[rune]Action{
			'q': ActionQuit,
			'/': ActionSearch,
			'n': ActionSearchNext,
			'N': ActionSearchPrev,
			'b': ActionSearchPrev,
			'h': ActionAscend,
			'j': ActionDown,
			'k': ActionUp,
			'l': ActionDescend,
			'g': ActionHome,
			'G': ActionEnd,
			'y': ActionYankPath,
			'Y': ActionYankValue,
		},
		Keys: map[terminal.Key]Action{
			terminal.KeyEscape:    ActionCancel,
			terminal.KeyEnter:     ActionDescend,
			terminal.KeyRight:     ActionDescend,
			terminal.KeyBackspace: ActionAscend,
			terminal.KeyLeft:      ActionAscend,
			terminal.KeyUp:        ActionUp,
			terminal.KeyDown:      ActionDown,
			terminal.KeyPageUp:    ActionPageUp,
			terminal.KeyPageDown:  ActionPageDown,
			terminal.KeyHome:      ActionHome,
			terminal.KeyEnd:       ActionEnd,
			terminal.KeyCtrlL:     ActionRedraw,
			terminal.KeyCtrlC:     ActionInterrupt,
		},
	}
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	return &Table{
		Runes: maps.Clone(t.Runes),
		Keys:  maps.Clone(t.Keys),
	}
}

// Lookup returns the action bound to a key event, ActionNone if unbound.
// Alt-modified runes are never bound.
func (t *Table) Lookup(ev terminal.Event) Action {
	if ev.Type != terminal.EventKey {
		return ActionNone
	}
	if ev.Key == terminal.KeyRune {
		if ev.Modifiers&terminal.ModAlt != 0 {
			return ActionNone
		}
		return t.Runes[ev.Rune]
	}
	return t.Keys[ev.Key]
}

// Parse converts key -> action name bindings into an override table
func Parse(bindings map[string]string) (*Table, error) {
	t := &Table{}
	for keyStr, name := range bindings {
		a, err := resolveAction(name)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}

		if r, ok := resolveRune(keyStr); ok {
			if t.Runes == nil {
				t.Runes = make(map[rune]Action)
			}
			t.Runes[r] = a
			continue
		}

		k, ok := terminal.KeyByName(strings.ToLower(keyStr))
		if !ok {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, ErrUnknownKey)
		}
		if t.Keys == nil {
			t.Keys = make(map[terminal.Key]Action)
		}
		t.Keys[k] = a
	}
	return t, nil
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

func resolveAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	a, ok := ActionByName(name)
	if !ok {
		return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return a, nil
}

// Merge returns base with override applied; ActionNone entries delete the key
func Merge(base, override *Table) *Table {
	result := base.Clone()
	if result.Runes == nil {
		result.Runes = make(map[rune]Action)
	}
	if result.Keys == nil {
		result.Keys = make(map[terminal.Key]Action)
	}
	mergeMap(result.Runes, override.Runes)
	mergeMap(result.Keys, override.Keys)
	return result
}

func mergeMap[K comparable](base, override map[K]Action) {
	for k, a := range override {
		if a == ActionNone {
			delete(base, k)
		} else {
			base[k] = a
		}
	}
}

package terminal

import "strconv"

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys, contiguous
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous (Ctrl+A = 0x01 ... Ctrl+Z = 0x1A)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCtrlSpace
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

type keyMod struct {
	key Key
	mod Modifier
}

// CSI final bytes and "N~" codes without modifiers (sequence after ESC [)
var csiBase = map[string]Key{
	"A": KeyUp, "B": KeyDown, "C": KeyRight, "D": KeyLeft,
	"H": KeyHome, "F": KeyEnd,
	"1~": KeyHome, "7~": KeyHome, "4~": KeyEnd, "8~": KeyEnd,
	"2~": KeyInsert, "3~": KeyDelete,
	"5~": KeyPageUp, "6~": KeyPageDown,
	"11~": KeyF1, "12~": KeyF2, "13~": KeyF3, "14~": KeyF4,
	"15~": KeyF5, "17~": KeyF6, "18~": KeyF7, "19~": KeyF8,
	"20~": KeyF9, "21~": KeyF10, "23~": KeyF11, "24~": KeyF12,
}

// SS3 final bytes (sequence after ESC O)
var ss3Base = map[string]Key{
	"A": KeyUp, "B": KeyDown, "C": KeyRight, "D": KeyLeft,
	"H": KeyHome, "F": KeyEnd,
	"P": KeyF1, "Q": KeyF2, "R": KeyF3, "S": KeyF4,
	"M": KeyEnter, // keypad Enter
}

var csiMap = buildCSIMap()

// buildCSIMap expands the base table with xterm modifier parameters:
// "1;mX" for letter finals and "N;m~" for tilde codes, m = 1 + modifier bits
func buildCSIMap() map[string]keyMod {
	m := make(map[string]keyMod, len(csiBase)*8)
	for seq, k := range csiBase {
		m[seq] = keyMod{key: k}
		for mod := Modifier(1); mod <= ModShift|ModAlt|ModCtrl; mod++ {
			param := strconv.Itoa(int(mod) + 1)
			last := seq[len(seq)-1]
			if last == '~' {
				m[seq[:len(seq)-1]+";"+param+"~"] = keyMod{key: k, mod: mod}
			} else {
				m["1;"+param+string(last)] = keyMod{key: k, mod: mod}
			}
		}
	}
	for _, final := range "PQRS" {
		for mod := Modifier(1); mod <= ModShift|ModAlt|ModCtrl; mod++ {
			m["1;"+strconv.Itoa(int(mod)+1)+string(final)] = keyMod{key: ss3Base[string(final)], mod: mod}
		}
	}
	m["Z"] = keyMod{key: KeyBacktab, mod: ModShift}
	return m
}

// lookupCSI maps the bytes between ESC [ and the final byte inclusive
// The string([]byte) conversion inline in map access does not allocate
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if km, ok := csiMap[string(seq)]; ok {
		return km.key, km.mod, true
	}
	return KeyNone, ModNone, false
}

func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if k, ok := ss3Base[string(seq)]; ok {
		return k, ModNone, true
	}
	return KeyNone, ModNone, false
}

package key

import (
	"github.com/gdamore/tcell/v2"
)

// Code identifies a non-character key.
type Code uint8

const (
	// CodeRune is a printable character carried in Event.Rune.
	CodeRune Code = iota
	CodeEscape
	CodeEnter
	CodeBackspace
	CodeDelete
	CodeTab
	CodeLeft
	CodeRight
	CodeUp
	CodeDown
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

// HasCtrl reports whether Ctrl is held.
func (m Modifiers) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt reports whether Alt is held.
func (m Modifiers) HasAlt() bool { return m&ModAlt != 0 }

// Event is a single decoded keystroke.
type Event struct {
	Code Code
	Rune rune
	Mod  Modifiers
}

// IsRune reports whether the event is an unmodified printable character.
func (e Event) IsRune() bool {
	return e.Code == CodeRune && e.Mod&(ModCtrl|ModAlt) == 0
}

// FromTcell converts a tcell key event into the editor's representation.
func FromTcell(ev *tcell.EventKey) Event {
	var mod Modifiers
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mod |= ModShift
	}

	switch ev.Key() {
	case tcell.KeyRune:
		return Event{Code: CodeRune, Rune: ev.Rune(), Mod: mod}
	case tcell.KeyEscape:
		return Event{Code: CodeEscape, Mod: mod}
	case tcell.KeyEnter:
		return Event{Code: CodeEnter, Mod: mod}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Code: CodeBackspace, Mod: mod}
	case tcell.KeyDelete:
		return Event{Code: CodeDelete, Mod: mod}
	case tcell.KeyTab:
		return Event{Code: CodeTab, Mod: mod}
	case tcell.KeyLeft:
		return Event{Code: CodeLeft, Mod: mod}
	case tcell.KeyRight:
		return Event{Code: CodeRight, Mod: mod}
	case tcell.KeyUp:
		return Event{Code: CodeUp, Mod: mod}
	case tcell.KeyDown:
		return Event{Code: CodeDown, Mod: mod}
	case tcell.KeyHome:
		return Event{Code: CodeHome, Mod: mod}
	case tcell.KeyEnd:
		return Event{Code: CodeEnd, Mod: mod}
	case tcell.KeyPgUp:
		return Event{Code: CodePageUp, Mod: mod}
	case tcell.KeyPgDn:
		return Event{Code: CodePageDown, Mod: mod}
	default:
		// Ctrl-letter combinations arrive as dedicated tcell keys.
		if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return Event{
				Code: CodeRune,
				Rune: rune('a' + k - tcell.KeyCtrlA),
				Mod:  mod | ModCtrl,
			}
		}
		return Event{Code: CodeRune, Rune: ev.Rune(), Mod: mod}
	}
}

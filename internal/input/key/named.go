package key

import (
	"fmt"
	"strings"
)

// Named identifies a non-character key.
// Character keys use NamedRune and carry the character in Symbol.Rune.
type Named uint16

const (
	// NamedNone represents no key.
	NamedNone Named = iota

	// Special keys
	NamedEscape
	NamedEnter
	NamedTab
	NamedBackspace
	NamedDelete
	NamedInsert
	NamedHome
	NamedEnd
	NamedPageUp
	NamedPageDown

	// Arrow keys
	NamedUp
	NamedDown
	NamedLeft
	NamedRight

	// Function keys
	NamedF1
	NamedF2
	NamedF3
	NamedF4
	NamedF5
	NamedF6
	NamedF7
	NamedF8
	NamedF9
	NamedF10
	NamedF11
	NamedF12

	// NamedRune is used for character keys (letters, digits, punctuation).
	// The actual character is stored in Symbol.Rune.
	NamedRune
)

// String returns a human-readable name for the key.
func (n Named) String() string {
	switch n {
	case NamedNone:
		return "None"
	case NamedEscape:
		return "Esc"
	case NamedEnter:
		return "CR"
	case NamedTab:
		return "Tab"
	case NamedBackspace:
		return "BS"
	case NamedDelete:
		return "Del"
	case NamedInsert:
		return "Ins"
	case NamedHome:
		return "Home"
	case NamedEnd:
		return "End"
	case NamedPageUp:
		return "PageUp"
	case NamedPageDown:
		return "PageDown"
	case NamedUp:
		return "Up"
	case NamedDown:
		return "Down"
	case NamedLeft:
		return "Left"
	case NamedRight:
		return "Right"
	case NamedRune:
		return "Rune"
	default:
		if n.IsFunction() {
			return fmt.Sprintf("F%d", int(n-NamedF1)+1)
		}
		return fmt.Sprintf("Named(%d)", n)
	}
}

// IsFunction returns true for the function keys F1-F12.
func (n Named) IsFunction() bool {
	return n >= NamedF1 && n <= NamedF12
}

// IsArrow returns true for the arrow keys.
func (n Named) IsArrow() bool {
	return n >= NamedUp && n <= NamedRight
}

// namedByName maps lowercase key names to Named values.
// Vim aliases (cr, bs, esc) are included.
var namedByName = map[string]Named{
	"esc":       NamedEscape,
	"escape":    NamedEscape,
	"cr":        NamedEnter,
	"enter":     NamedEnter,
	"return":    NamedEnter,
	"tab":       NamedTab,
	"bs":        NamedBackspace,
	"backspace": NamedBackspace,
	"del":       NamedDelete,
	"delete":    NamedDelete,
	"ins":       NamedInsert,
	"insert":    NamedInsert,
	"home":      NamedHome,
	"end":       NamedEnd,
	"pageup":    NamedPageUp,
	"pgup":      NamedPageUp,
	"pagedown":  NamedPageDown,
	"pgdn":      NamedPageDown,
	"up":        NamedUp,
	"down":      NamedDown,
	"left":      NamedLeft,
	"right":     NamedRight,
	"f1":        NamedF1,
	"f2":        NamedF2,
	"f3":        NamedF3,
	"f4":        NamedF4,
	"f5":        NamedF5,
	"f6":        NamedF6,
	"f7":        NamedF7,
	"f8":        NamedF8,
	"f9":        NamedF9,
	"f10":       NamedF10,
	"f11":       NamedF11,
	"f12":       NamedF12,
}

// NamedFromString returns the Named key for a name (case-insensitive).
// Returns NamedNone if the name is not recognized.
func NamedFromString(name string) Named {
	if n, ok := namedByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return n
	}
	return NamedNone
}

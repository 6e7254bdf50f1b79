package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Symbol is a single logical key press: a character-or-named-key tag plus
// a modifier set. Symbol is a comparable value type; two symbols are equal
// iff tag, rune, and modifiers match.
type Symbol struct {
	// Name identifies the key. Character keys use NamedRune.
	Name Named

	// Rune is the character for NamedRune symbols.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// NewRune creates a symbol for an unmodified character key.
func NewRune(r rune) Symbol {
	return Symbol{Name: NamedRune, Rune: r}
}

// NewRuneMod creates a symbol for a character key with modifiers.
func NewRuneMod(r rune, mods Modifier) Symbol {
	return Symbol{Name: NamedRune, Rune: r, Mods: mods}
}

// NewNamed creates a symbol for a non-character key.
func NewNamed(n Named, mods Modifier) Symbol {
	return Symbol{Name: n, Mods: mods}
}

// Escape is the distinguished cancel key.
var Escape = Symbol{Name: NamedEscape}

// IsRune returns true if this is a character key.
func (s Symbol) IsRune() bool {
	return s.Name == NamedRune && s.Rune != 0
}

// IsChar returns true if this is a printable character.
func (s Symbol) IsChar() bool {
	return s.IsRune() && unicode.IsPrint(s.Rune)
}

// IsDigit returns true for the character keys 0-9.
func (s Symbol) IsDigit() bool {
	return s.IsRune() && s.Rune >= '0' && s.Rune <= '9'
}

// IsModified returns true if any modifier other than an implicit Shift is
// pressed. For character keys Shift is part of the character itself and
// is not considered a modifier.
func (s Symbol) IsModified() bool {
	if s.IsRune() {
		return s.Mods&(ModCtrl|ModAlt) != 0
	}
	return s.Mods != ModNone
}

// IsEscape returns true if this is the unmodified Escape key.
func (s Symbol) IsEscape() bool {
	return s.Name == NamedEscape && s.Mods == ModNone
}

// IsEnter returns true if this is the unmodified Enter key.
func (s Symbol) IsEnter() bool {
	return s.Name == NamedEnter && s.Mods == ModNone
}

// WithMods returns a copy of the symbol with the given modifiers added.
func (s Symbol) WithMods(mods Modifier) Symbol {
	s.Mods = s.Mods.With(mods)
	return s
}

// String returns the Vim-notation display form.
// Examples: "a", "A", "<Esc>", "<C-w>", "<S-Tab>", "<Space>".
func (s Symbol) String() string {
	if s.IsRune() && !s.IsModified() {
		switch s.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		return string(s.Rune)
	}

	var parts []string
	if s.Mods.HasCtrl() {
		parts = append(parts, "C")
	}
	if s.Mods.HasAlt() {
		parts = append(parts, "A")
	}
	if s.Mods.HasShift() && !s.IsRune() {
		parts = append(parts, "S")
	}

	var name string
	switch {
	case s.Name == NamedRune && s.Rune == ' ':
		name = "Space"
	case s.Name == NamedRune:
		name = string(s.Rune)
	default:
		name = s.Name.String()
	}
	parts = append(parts, name)

	return "<" + strings.Join(parts, "-") + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (s Symbol) GoString() string {
	return fmt.Sprintf("Symbol{Name: %s, Rune: %q, Mods: %s}", s.Name, s.Rune, s.Mods)
}

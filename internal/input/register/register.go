// Package register implements the shared register store: named
// registers a-z with uppercase append, the numbered delete history,
// and the special registers (unnamed, small-delete, black-hole,
// last-insert, last-search, clipboard). The store is the single owner
// of register state for all interpreter instances in the process.
package register

import (
	"sync"
	"unicode"
)

// Shape tags how register content was captured.
type Shape uint8

const (
	// ShapeChar is character-wise content.
	ShapeChar Shape = iota

	// ShapeLine is line-wise content.
	ShapeLine

	// ShapeBlock is block-wise content.
	ShapeBlock
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeLine:
		return "line"
	case ShapeBlock:
		return "block"
	default:
		return "char"
	}
}

// Value is the content of one register.
type Value struct {
	Text  string
	Shape Shape
}

// IsEmpty returns true for a register that holds nothing.
func (v Value) IsEmpty() bool {
	return v.Text == ""
}

// Type categorizes registers by behavior.
type Type uint8

const (
	// TypeNamed is a named register (a-z, with A-Z appending).
	TypeNamed Type = iota

	// TypeNumbered is a delete-history register (1-9).
	TypeNumbered

	// TypeLastYank is register 0, written by yanks only.
	TypeLastYank

	// TypeUnnamed is the default register (").
	TypeUnnamed

	// TypeSmallDelete is the small-delete register (-).
	TypeSmallDelete

	// TypeBlackHole is the discarding register (_).
	TypeBlackHole

	// TypeLastInsert is the read-only last-inserted-text register (.).
	TypeLastInsert

	// TypeSearch is the read-only last-search register (/).
	TypeSearch

	// TypeClipboard is the system clipboard register (+).
	TypeClipboard

	// TypeSelection is the primary selection register (*).
	TypeSelection

	// TypeInvalid marks a rune that names no register.
	TypeInvalid
)

// TypeOf classifies a register name.
func TypeOf(name rune) Type {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return TypeNamed
	case name >= '1' && name <= '9':
		return TypeNumbered
	case name == '0':
		return TypeLastYank
	case name == '"':
		return TypeUnnamed
	case name == '-':
		return TypeSmallDelete
	case name == '_':
		return TypeBlackHole
	case name == '.':
		return TypeLastInsert
	case name == '/':
		return TypeSearch
	case name == '+':
		return TypeClipboard
	case name == '*':
		return TypeSelection
	default:
		return TypeInvalid
	}
}

// IsValid returns true if the rune names a register.
func IsValid(name rune) bool {
	return TypeOf(name) != TypeInvalid
}

// readOnly registers reject direct writes.
func readOnly(name rune) bool {
	return name == '.' || name == '/'
}

// ClipboardProvider abstracts system clipboard access for the + and *
// registers.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set replaces the clipboard content.
	Set(content string) error
}

// Store owns all register state. It serializes access internally so
// any view's interpretation step may call it.
type Store struct {
	mu        sync.RWMutex
	values    map[rune]Value
	clipboard ClipboardProvider
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{values: make(map[rune]Value)}
}

// SetClipboard attaches a system clipboard provider to the + and *
// registers. Without one they behave as plain registers.
func (s *Store) SetClipboard(p ClipboardProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = p
}

// Get returns a register's content. Uppercase names fold to their
// lowercase register. Unknown and empty registers return a zero Value.
func (s *Store) Get(name rune) Value {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	if t := TypeOf(name); t == TypeClipboard || t == TypeSelection {
		s.mu.RLock()
		p := s.clipboard
		s.mu.RUnlock()
		if p != nil {
			text, err := p.Get()
			if err != nil {
				return Value{}
			}
			return Value{Text: text}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Set stores content in a register. The black hole discards, read-only
// registers ignore the write, and uppercase names append to their
// lowercase register (joined by a newline for line-wise content).
func (s *Store) Set(name rune, v Value) {
	t := TypeOf(name)
	if t == TypeInvalid || t == TypeBlackHole || readOnly(name) {
		return
	}

	if t == TypeClipboard || t == TypeSelection {
		s.mu.RLock()
		p := s.clipboard
		s.mu.RUnlock()
		if p != nil {
			_ = p.Set(v.Text)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		prev := s.values[name]
		if !prev.IsEmpty() {
			sep := ""
			if prev.Shape == ShapeLine {
				sep = "\n"
			}
			v.Text = prev.Text + sep + v.Text
			v.Shape = prev.Shape
		}
	}
	s.values[name] = v
}

// RecordYank stores a yank in register 0 and the unnamed register.
func (s *Store) RecordYank(v Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values['0'] = v
	s.values['"'] = v
}

// RecordDelete stores a delete in the unnamed register and either the
// small-delete register or, rotating the history 1 through 9, register
// 1. Deletes of less than one line are small.
func (s *Store) RecordDelete(v Value, small bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if small {
		s.values['-'] = v
	} else {
		for r := rune('9'); r > '1'; r-- {
			s.values[r] = s.values[r-1]
		}
		s.values['1'] = v
	}
	s.values['"'] = v
}

// RecordInsert updates the last-inserted-text register.
func (s *Store) RecordInsert(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values['.'] = Value{Text: text}
}

// RecordSearch updates the last-search register.
func (s *Store) RecordSearch(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values['/'] = Value{Text: pattern}
}

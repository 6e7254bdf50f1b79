// Package mode defines interpreter modes and the manager that tracks
// the active one. A mode ties together a display name, the remap
// scope its keys resolve in, and how unmapped printable keys are
// treated.
package mode

// Standard mode names.
const (
	Normal      = "normal"
	Insert      = "insert"
	Visual      = "visual"
	VisualLine  = "visual-line"
	VisualBlock = "visual-block"
	Replace     = "replace"
)

// CursorStyle is the caret appearance a host should use for a mode.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block caret.
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar caret.
	CursorBar

	// CursorUnderline is an underline caret.
	CursorUnderline
)

// String returns the cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "block"
	}
}

// HookFunc observes a mode transition; the argument is the other
// mode's name.
type HookFunc func(other string) error

// Mode describes one interpreter mode.
type Mode struct {
	// Name uniquely identifies the mode.
	Name string

	// Display is the status-line label, like "-- INSERT --".
	Display string

	// Scope is the remap scope keys resolve in while this mode is
	// active.
	Scope string

	// Passthrough marks modes where unmapped printable keys fall
	// through to the host as text input.
	Passthrough bool

	// Cursor is the caret style for this mode.
	Cursor CursorStyle

	// OnEnter runs when the mode is entered. Optional.
	OnEnter HookFunc

	// OnExit runs when the mode is left. Optional.
	OnExit HookFunc
}

// Defaults returns the standard mode set. Hosts may register more or
// replace these.
func Defaults() []Mode {
	return []Mode{
		{Name: Normal, Display: "", Scope: "normal", Cursor: CursorBlock},
		{Name: Insert, Display: "-- INSERT --", Scope: "insert", Passthrough: true, Cursor: CursorBar},
		{Name: Visual, Display: "-- VISUAL --", Scope: "visual", Cursor: CursorBlock},
		{Name: VisualLine, Display: "-- VISUAL LINE --", Scope: "visual", Cursor: CursorBlock},
		{Name: VisualBlock, Display: "-- VISUAL BLOCK --", Scope: "visual", Cursor: CursorBlock},
		{Name: Replace, Display: "-- REPLACE --", Scope: "insert", Passthrough: true, Cursor: CursorUnderline},
	}
}

// IsVisual returns true for the visual mode family.
func IsVisual(name string) bool {
	return name == Visual || name == VisualLine || name == VisualBlock
}

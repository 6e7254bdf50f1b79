// Package motion defines the cursor-movement sublanguage: Motion
// descriptors, the incremental capture that parses them from key
// symbols, and the pure evaluation of a Motion against a caret
// position.
package motion

import (
	"github.com/dshills/vimkit/internal/selection"
)

// Kind identifies a motion variant. The set is closed; dispatch and
// evaluation match exhaustively.
type Kind uint8

const (
	// KindNone is the zero motion.
	KindNone Kind = iota

	// Character motions
	KindLeft
	KindRight
	KindUp
	KindDown

	// Word motions
	KindWordForward
	KindWordBackward
	KindWordEnd

	// Line motions
	KindLineStart
	KindFirstNonBlank
	KindLineEnd

	// Document motions
	KindDocumentStart
	KindDocumentEnd

	// Character-search family; the motion carries a target character.
	KindFindChar
	KindFindCharBack
	KindTillChar
	KindTillCharBack

	// Structure motions
	KindParagraphForward
	KindParagraphBackward
	KindMatchPair
)

// String returns the motion variant name.
func (k Kind) String() string {
	switch k {
	case KindLeft:
		return "left"
	case KindRight:
		return "right"
	case KindUp:
		return "up"
	case KindDown:
		return "down"
	case KindWordForward:
		return "wordForward"
	case KindWordBackward:
		return "wordBackward"
	case KindWordEnd:
		return "wordEnd"
	case KindLineStart:
		return "lineStart"
	case KindFirstNonBlank:
		return "firstNonBlank"
	case KindLineEnd:
		return "lineEnd"
	case KindDocumentStart:
		return "documentStart"
	case KindDocumentEnd:
		return "documentEnd"
	case KindFindChar:
		return "findChar"
	case KindFindCharBack:
		return "findCharBack"
	case KindTillChar:
		return "tillChar"
	case KindTillCharBack:
		return "tillCharBack"
	case KindParagraphForward:
		return "paragraphForward"
	case KindParagraphBackward:
		return "paragraphBackward"
	case KindMatchPair:
		return "matchPair"
	default:
		return "none"
	}
}

// NeedsChar returns true for the character-search family, which
// consumes one further key symbol as the search target.
func (k Kind) NeedsChar() bool {
	switch k {
	case KindFindChar, KindFindCharBack, KindTillChar, KindTillCharBack:
		return true
	default:
		return false
	}
}

// Motion is a pure descriptor of a cursor movement. It carries no
// buffer state; evaluation happens separately against a caret position.
type Motion struct {
	// Kind selects the movement variant.
	Kind Kind

	// Char is the target character for the character-search family.
	Char rune
}

// IsZero returns true for the zero motion.
func (m Motion) IsZero() bool {
	return m.Kind == KindNone
}

// Captured is a parsed motion with its optional repeat count
// (0 means no explicit count).
type Captured struct {
	Motion Motion
	Count  int
}

// EffectiveCount returns the repeat count, treating "no count" as 1.
func (c Captured) EffectiveCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// Wise tags how a motion result extends over text.
type Wise uint8

const (
	// WiseExclusive is character-wise, excluding the end position.
	WiseExclusive Wise = iota

	// WiseInclusive is character-wise, including the end position.
	WiseInclusive

	// WiseLine is line-wise, optionally preserving a target column.
	WiseLine
)

// String returns the wise-ness name.
func (w Wise) String() string {
	switch w {
	case WiseExclusive:
		return "exclusive"
	case WiseInclusive:
		return "inclusive"
	case WiseLine:
		return "linewise"
	default:
		return "unknown"
	}
}

// NoTargetColumn marks a line-wise result without a preserved column.
const NoTargetColumn = -1

// Result is the outcome of evaluating a Motion against a caret
// position: the covered span, the movement direction, and the
// wise-ness tag.
type Result struct {
	// Span covers the moved-over text.
	Span selection.Span

	// Forward is true if the motion moved toward the end of the
	// buffer.
	Forward bool

	// Wise tags how the span extends over text.
	Wise Wise

	// TargetColumn is the column a line-wise motion tries to keep,
	// or NoTargetColumn.
	TargetColumn int
}

// End returns the caret destination implied by the result.
func (r Result) End() selection.Position {
	if r.Forward {
		return r.Span.End()
	}
	return r.Span.Start
}

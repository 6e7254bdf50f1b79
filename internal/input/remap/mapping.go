// Package remap rewrites incoming key sequences according to
// mode-scoped mapping tables, with ambiguity detection and bounded
// recursive expansion.
package remap

import (
	"github.com/dshills/vimkit/internal/input/key"
)

// Mapping is a single remapping rule inside one scope.
type Mapping struct {
	// Scope is the named context the mapping belongs to
	// (e.g. "command-pending", "insert", "select").
	Scope string

	// LHS is the sequence being replaced. Unique within its scope.
	LHS key.Sequence

	// RHS is the replacement sequence.
	RHS key.Sequence

	// Recursive allows the replacement to be expanded again
	// (Vim's :map as opposed to :noremap).
	Recursive bool
}

// Status discriminates the resolution outcomes.
type Status uint8

const (
	// StatusMapped means the sequence resolved fully; the result has
	// no mapped remainder left to deliver.
	StatusMapped Status = iota

	// StatusPartial means a leading portion of the sequence was
	// mapped and a literal unmapped suffix remains. The suffix is not
	// re-resolved here; the caller delivers it separately.
	StatusPartial

	// StatusNeedsMore means the sequence is a strict prefix of some
	// mapping and resolution must wait for one more input symbol.
	StatusNeedsMore

	// StatusRecursive means expansion exceeded the depth bound; the
	// original sequence is used verbatim.
	StatusRecursive
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusMapped:
		return "mapped"
	case StatusPartial:
		return "partial"
	case StatusNeedsMore:
		return "needsMore"
	case StatusRecursive:
		return "recursive"
	default:
		return "unknown"
	}
}

// Result is the outcome of resolving a sequence against a scope.
type Result struct {
	// Status is the resolution outcome.
	Status Status

	// Mapped is the resolved sequence. For StatusMapped it is the
	// full result; for StatusPartial it is the mapped prefix; for
	// StatusNeedsMore it is the sequence seen so far; for
	// StatusRecursive it is the original sequence verbatim.
	Mapped key.Sequence

	// Rest is the literal unmapped suffix for StatusPartial.
	Rest key.Sequence
}

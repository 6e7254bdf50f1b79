// Package selection provides the pure geometric span model: character
// spans, block spans, and the visual-span union used by commands and
// motions. All computations are value-level and side-effect free; the
// only external dependency is a read-only line-length oracle.
package selection

import "fmt"

// Position is a location in buffer coordinates. Lines and columns are
// 0-indexed; Column is measured in display cells.
type Position struct {
	Line   int
	Column int
}

// Before returns true if p is strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Min returns the earlier of p and other in document order.
func (p Position) Min(other Position) Position {
	if other.Before(p) {
		return other
	}
	return p
}

// Max returns the later of p and other in document order.
func (p Position) Max(other Position) Position {
	if p.Before(other) {
		return other
	}
	return p
}

// String returns "line:column" for diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineOracle provides read-only line geometry for span derivation.
// Implementations must be pure with respect to interpreter state.
type LineOracle interface {
	// LineLength returns the length of the given line in columns,
	// excluding the line break.
	LineLength(line int) int

	// LineCount returns the total number of lines.
	LineCount() int
}

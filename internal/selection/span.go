package selection

// Span is a character-wise span: a start position, the number of lines it
// covers, and the length of its final line. The end position is derived,
// honoring line-break semantics (a span reaching the end of a line covers
// the break by extending to the next line).
type Span struct {
	// Start is the first position covered.
	Start Position

	// Lines is the number of lines the span touches (minimum 1).
	Lines int

	// LastLen is the covered length on the final line. For single-line
	// spans this is the total span length; for multi-line spans it is
	// the end column on the last line.
	LastLen int
}

// NewSpan creates a span covering [start, end). The positions may be
// given in either order.
func NewSpan(start, end Position) Span {
	lo, hi := start.Min(end), start.Max(end)
	if lo.Line == hi.Line {
		return Span{Start: lo, Lines: 1, LastLen: hi.Column - lo.Column}
	}
	return Span{
		Start:   lo,
		Lines:   hi.Line - lo.Line + 1,
		LastLen: hi.Column,
	}
}

// End derives the exclusive end position.
func (s Span) End() Position {
	if s.Lines <= 1 {
		return Position{Line: s.Start.Line, Column: s.Start.Column + s.LastLen}
	}
	return Position{Line: s.Start.Line + s.Lines - 1, Column: s.LastLen}
}

// Length returns the covered length on a single-line span. For
// multi-line spans it returns the length of the final line portion.
func (s Span) Length() int {
	return s.LastLen
}

// IsEmpty returns true if the span covers nothing.
func (s Span) IsEmpty() bool {
	return s.Lines <= 1 && s.LastLen <= 0
}

// Contains returns true if the position lies inside the span.
func (s Span) Contains(p Position) bool {
	end := s.End()
	return !p.Before(s.Start) && p.Before(end)
}

// ShrinkExclusive narrows the span by one position for exclusive
// selection policy, against the line geometry the span addresses. A
// multi-line span ending at column 0 covers the prior line's break, so
// narrowing lands at the end of that line's text. The result is never
// negative: an empty span stays empty, clamped at the start point.
func (s Span) ShrinkExclusive(lines LineOracle) Span {
	if s.LastLen > 0 {
		s.LastLen--
		return s
	}
	if s.Lines > 1 {
		s.Lines--
		endLine := s.Start.Line + s.Lines - 1
		if s.Lines == 1 {
			s.LastLen = max(lines.LineLength(endLine)-s.Start.Column, 0)
		} else {
			s.LastLen = lines.LineLength(endLine)
		}
		return s
	}
	return s
}

// ExtendInclusive widens the span by one position for inclusive motions.
func (s Span) ExtendInclusive() Span {
	s.LastLen++
	return s
}

package selection

// Kind discriminates the visual span variants.
type Kind uint8

const (
	// KindChar is a character-wise visual span.
	KindChar Kind = iota

	// KindLine is a line-wise visual span.
	KindLine

	// KindBlock is a block-wise visual span.
	KindBlock
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindLine:
		return "line"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// LineRange is a line-wise visual span covering whole lines.
type LineRange struct {
	// First is the first covered line.
	First int

	// Count is the number of lines covered (minimum 1).
	Count int
}

// Last returns the last covered line.
func (lr LineRange) Last() int {
	return lr.First + lr.Count - 1
}

// Visual is the visual-span union: exactly one of the char span, line
// range, or block is active, selected by Kind.
type Visual struct {
	kind  Kind
	span  Span
	lines LineRange
	block Block
}

// NewCharVisual creates a character-wise visual span.
func NewCharVisual(span Span) Visual {
	return Visual{kind: KindChar, span: span}
}

// NewLineVisual creates a line-wise visual span.
func NewLineVisual(lines LineRange) Visual {
	return Visual{kind: KindLine, lines: lines}
}

// NewBlockVisual creates a block-wise visual span.
func NewBlockVisual(block Block) Visual {
	return Visual{kind: KindBlock, block: block}
}

// Kind returns the active variant.
func (v Visual) Kind() Kind {
	return v.kind
}

// CharSpan returns the character span. Valid only for KindChar.
func (v Visual) CharSpan() Span {
	return v.span
}

// LineRange returns the line range. Valid only for KindLine.
func (v Visual) LineRange() LineRange {
	return v.lines
}

// Block returns the block span. Valid only for KindBlock.
func (v Visual) Block() Block {
	return v.block
}

// EditSpans derives the character span(s) a command operating on this
// visual span must edit. Line-wise spans cover whole lines including
// trailing content; block-wise spans produce one span per row.
func (v Visual) EditSpans(oracle LineOracle) []Span {
	switch v.kind {
	case KindLine:
		spans := make([]Span, 0, v.lines.Count)
		for i := 0; i < v.lines.Count; i++ {
			line := v.lines.First + i
			spans = append(spans, Span{
				Start:   Position{Line: line},
				Lines:   1,
				LastLen: oracle.LineLength(line),
			})
		}
		return spans
	case KindBlock:
		return v.block.Rows(oracle)
	default:
		return []Span{v.span}
	}
}

// ApplyExclusive narrows the visual span for exclusive selection policy.
// Line-wise spans are unaffected.
func (v Visual) ApplyExclusive(oracle LineOracle) Visual {
	switch v.kind {
	case KindChar:
		v.span = v.span.ShrinkExclusive(oracle)
	case KindBlock:
		v.block = v.block.ShrinkExclusive()
	}
	return v
}

// CaretLanding returns the canonical caret position after a command
// consumes this visual span: the span start, clamped to the line length.
func (v Visual) CaretLanding(oracle LineOracle) Position {
	var p Position
	switch v.kind {
	case KindLine:
		p = Position{Line: v.lines.First}
	case KindBlock:
		p = v.block.Start
	default:
		p = v.span.Start
	}

	if length := oracle.LineLength(p.Line); p.Column > length {
		p.Column = length
	}
	return p
}

// Anchors returns the host selection geometry this visual span implies:
// the anchor (selection origin) and head (active end) positions.
func (v Visual) Anchors() (anchor, head Position) {
	switch v.kind {
	case KindLine:
		return Position{Line: v.lines.First}, Position{Line: v.lines.Last()}
	case KindBlock:
		return v.block.Start, v.block.BottomRight()
	default:
		return v.span.Start, v.span.End()
	}
}

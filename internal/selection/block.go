package selection

// Block is a block-wise (rectangular) span: a start position plus a
// width in columns and a height in lines. Each covered line derives one
// character sub-span.
type Block struct {
	// Start is the top-left corner of the block.
	Start Position

	// Width is the number of columns covered (minimum 1).
	Width int

	// Height is the number of lines covered (minimum 1).
	Height int
}

// NewBlock creates a block from two opposite corners, normalizing so the
// stored start is the top-left.
func NewBlock(a, b Position) Block {
	top, bottom := a.Line, b.Line
	if top > bottom {
		top, bottom = bottom, top
	}
	left, right := a.Column, b.Column
	if left > right {
		left, right = right, left
	}
	return Block{
		Start:  Position{Line: top, Column: left},
		Width:  right - left + 1,
		Height: bottom - top + 1,
	}
}

// Rows derives one character span per covered line. Lines shorter than
// the block's left edge yield empty spans at their end; spans never
// extend past the line length reported by the oracle.
func (b Block) Rows(lines LineOracle) []Span {
	rows := make([]Span, 0, b.Height)
	for i := 0; i < b.Height; i++ {
		line := b.Start.Line + i
		length := lines.LineLength(line)

		left := b.Start.Column
		if left > length {
			left = length
		}
		right := b.Start.Column + b.Width
		if right > length {
			right = length
		}

		rows = append(rows, Span{
			Start:   Position{Line: line, Column: left},
			Lines:   1,
			LastLen: right - left,
		})
	}
	return rows
}

// ShrinkExclusive narrows the block's width by one column for exclusive
// selection policy, clamping at a minimum width of 1.
func (b Block) ShrinkExclusive() Block {
	if b.Width > 1 {
		b.Width--
	}
	return b
}

// BottomRight returns the last position inside the block.
func (b Block) BottomRight() Position {
	return Position{
		Line:   b.Start.Line + b.Height - 1,
		Column: b.Start.Column + b.Width - 1,
	}
}

// Package host provides concrete interpreter hosts: a grapheme-aware
// line buffer and terminal key-event translation.
package host

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/vimkit/internal/input"
	"github.com/dshills/vimkit/internal/selection"
)

// Buffer is an in-memory line buffer whose columns are grapheme
// clusters, so a flag emoji or a combining sequence occupies one
// caret position. It implements the full interpreter host surface.
type Buffer struct {
	lines [][]string
	caret selection.Position
}

var _ input.Host = (*Buffer)(nil)

// NewBuffer creates a buffer from text. Lines are split on newlines;
// empty text yields one empty line.
func NewBuffer(text string) *Buffer {
	raw := strings.Split(text, "\n")
	lines := make([][]string, len(raw))
	for i, l := range raw {
		lines[i] = clusters(l)
	}
	return &Buffer{lines: lines}
}

func clusters(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	parts := make([]string, len(b.lines))
	for i := range b.lines {
		parts[i] = strings.Join(b.lines[i], "")
	}
	return strings.Join(parts, "\n")
}

// Line returns the text of one line, empty for out-of-range lines.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return strings.Join(b.lines[n], "")
}

// LineLength returns the number of caret positions on a line.
func (b *Buffer) LineLength(n int) int {
	if n < 0 || n >= len(b.lines) {
		return 0
	}
	return len(b.lines[n])
}

// LineCount returns the number of lines, always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Caret returns the caret position.
func (b *Buffer) Caret() selection.Position {
	return b.caret
}

// SetCaret moves the caret.
func (b *Buffer) SetCaret(pos selection.Position) {
	b.caret = pos
}

// InsertText inserts text at a position. Newlines in the text split
// the line.
func (b *Buffer) InsertText(pos selection.Position, text string) error {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return fmt.Errorf("insert at line %d of %d", pos.Line, len(b.lines))
	}
	line := b.lines[pos.Line]
	col := min(pos.Column, len(line))

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		merged := make([]string, 0, len(line)+len(parts[0]))
		merged = append(merged, line[:col]...)
		merged = append(merged, clusters(parts[0])...)
		merged = append(merged, line[col:]...)
		b.lines[pos.Line] = merged
		return nil
	}

	out := make([][]string, 0, len(b.lines)+len(parts)-1)
	out = append(out, b.lines[:pos.Line]...)

	first := make([]string, 0, col+len(parts[0]))
	first = append(first, line[:col]...)
	first = append(first, clusters(parts[0])...)
	out = append(out, first)

	for _, mid := range parts[1 : len(parts)-1] {
		out = append(out, clusters(mid))
	}

	lastPart := clusters(parts[len(parts)-1])
	last := make([]string, 0, len(lastPart)+len(line)-col)
	last = append(last, lastPart...)
	last = append(last, line[col:]...)
	out = append(out, last)

	out = append(out, b.lines[pos.Line+1:]...)
	b.lines = out
	return nil
}

// DeleteSpan removes a character-wise span and returns the removed
// text.
func (b *Buffer) DeleteSpan(span selection.Span) (string, error) {
	start, end := span.Start, span.End()
	if start.Line < 0 || end.Line >= len(b.lines) {
		return "", fmt.Errorf("span at %s out of range", start)
	}

	if start.Line == end.Line {
		line := b.lines[start.Line]
		lo := min(start.Column, len(line))
		hi := min(end.Column, len(line))
		removed := strings.Join(line[lo:hi], "")

		merged := make([]string, 0, len(line)-(hi-lo))
		merged = append(merged, line[:lo]...)
		merged = append(merged, line[hi:]...)
		b.lines[start.Line] = merged
		return removed, nil
	}

	first := b.lines[start.Line]
	last := b.lines[end.Line]
	lo := min(start.Column, len(first))
	hi := min(end.Column, len(last))

	var sb strings.Builder
	sb.WriteString(strings.Join(first[lo:], ""))
	for line := start.Line + 1; line < end.Line; line++ {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join(b.lines[line], ""))
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(last[:hi], ""))

	joined := make([]string, 0, lo+len(last)-hi)
	joined = append(joined, first[:lo]...)
	joined = append(joined, last[hi:]...)

	out := make([][]string, 0, len(b.lines))
	out = append(out, b.lines[:start.Line]...)
	out = append(out, joined)
	out = append(out, b.lines[end.Line+1:]...)
	b.lines = out
	return sb.String(), nil
}

// DeleteLines removes whole lines and returns the removed text. The
// buffer never drops below one line.
func (b *Buffer) DeleteLines(first, count int) (string, error) {
	if first < 0 || first >= len(b.lines) || count < 1 {
		return "", fmt.Errorf("delete %d lines at %d of %d", count, first, len(b.lines))
	}
	count = min(count, len(b.lines)-first)

	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = strings.Join(b.lines[first+i], "")
	}

	out := make([][]string, 0, len(b.lines)-count)
	out = append(out, b.lines[:first]...)
	out = append(out, b.lines[first+count:]...)
	if len(out) == 0 {
		out = [][]string{nil}
	}
	b.lines = out
	return strings.Join(parts, "\n"), nil
}

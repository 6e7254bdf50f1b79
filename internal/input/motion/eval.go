package motion

import (
	"fmt"
	"unicode"

	"github.com/dshills/vimkit/internal/selection"
)

// Context supplies the buffer text a motion evaluates against.
// Evaluation never mutates the context; evaluating the same motion
// twice against the same context yields the same result.
type Context interface {
	selection.LineOracle

	// Line returns the text of a line without its terminator.
	Line(line int) string
}

// Evaluate computes the span a captured motion covers from the given
// caret position. The span direction is reported separately so callers
// can distinguish the caret destination from the span start.
func Evaluate(c Captured, caret selection.Position, ctx Context) (Result, error) {
	n := c.EffectiveCount()

	switch c.Motion.Kind {
	case KindLeft:
		if caret.Column == 0 {
			return Result{}, ErrCannotMove
		}
		dest := selection.Position{Line: caret.Line, Column: max(caret.Column-n, 0)}
		return exclusive(dest, caret, false), nil

	case KindRight:
		length := ctx.LineLength(caret.Line)
		if caret.Column >= length {
			return Result{}, ErrCannotMove
		}
		dest := selection.Position{Line: caret.Line, Column: min(caret.Column+n, length)}
		return exclusive(caret, dest, true), nil

	case KindUp:
		if caret.Line == 0 {
			return Result{}, ErrCannotMove
		}
		first := max(caret.Line-n, 0)
		return linewise(first, caret.Line, caret.Column, false, ctx), nil

	case KindDown:
		last := ctx.LineCount() - 1
		if caret.Line >= last {
			return Result{}, ErrCannotMove
		}
		return linewise(caret.Line, min(caret.Line+n, last), caret.Column, true, ctx), nil

	case KindLineStart:
		dest := selection.Position{Line: caret.Line}
		return exclusive(dest, caret, false), nil

	case KindFirstNonBlank:
		col := firstNonBlank(ctx.Line(caret.Line))
		dest := selection.Position{Line: caret.Line, Column: col}
		if col >= caret.Column {
			return exclusive(caret, dest, true), nil
		}
		return exclusive(dest, caret, false), nil

	case KindLineEnd:
		// A count moves to the end of the count-1'th line below.
		line := min(caret.Line+n-1, ctx.LineCount()-1)
		col := max(ctx.LineLength(line)-1, 0)
		dest := selection.Position{Line: line, Column: col}
		return inclusive(caret, dest, true), nil

	case KindDocumentStart:
		// With a count, gg jumps to that line number.
		line := 0
		if c.Count > 0 {
			line = min(c.Count-1, ctx.LineCount()-1)
		}
		if line >= caret.Line {
			return linewise(caret.Line, line, NoTargetColumn, true, ctx), nil
		}
		return linewise(line, caret.Line, NoTargetColumn, false, ctx), nil

	case KindDocumentEnd:
		line := ctx.LineCount() - 1
		if c.Count > 0 {
			line = min(c.Count-1, line)
		}
		if line >= caret.Line {
			return linewise(caret.Line, line, NoTargetColumn, true, ctx), nil
		}
		return linewise(line, caret.Line, NoTargetColumn, false, ctx), nil

	case KindWordForward:
		dest := stepN(caret, n, ctx, nextWordStart)
		if dest == caret {
			return Result{}, ErrCannotMove
		}
		return exclusive(caret, dest, true), nil

	case KindWordBackward:
		dest := stepN(caret, n, ctx, prevWordStart)
		if dest == caret {
			return Result{}, ErrCannotMove
		}
		return exclusive(dest, caret, false), nil

	case KindWordEnd:
		dest := stepN(caret, n, ctx, nextWordEnd)
		if dest == caret {
			return Result{}, ErrCannotMove
		}
		return inclusive(caret, dest, true), nil

	case KindFindChar:
		col, err := findForward(ctx.Line(caret.Line), caret.Column, c.Motion.Char, n)
		if err != nil {
			return Result{}, err
		}
		return inclusive(caret, selection.Position{Line: caret.Line, Column: col}, true), nil

	case KindTillChar:
		col, err := findForward(ctx.Line(caret.Line), caret.Column, c.Motion.Char, n)
		if err != nil {
			return Result{}, err
		}
		return inclusive(caret, selection.Position{Line: caret.Line, Column: col - 1}, true), nil

	case KindFindCharBack:
		col, err := findBackward(ctx.Line(caret.Line), caret.Column, c.Motion.Char, n)
		if err != nil {
			return Result{}, err
		}
		return exclusive(selection.Position{Line: caret.Line, Column: col}, caret, false), nil

	case KindTillCharBack:
		col, err := findBackward(ctx.Line(caret.Line), caret.Column, c.Motion.Char, n)
		if err != nil {
			return Result{}, err
		}
		return exclusive(selection.Position{Line: caret.Line, Column: col + 1}, caret, false), nil

	case KindParagraphForward:
		line := caret.Line
		for i := 0; i < n; i++ {
			line = nextParagraph(line, ctx)
		}
		dest := selection.Position{Line: line}
		if line == caret.Line {
			return Result{}, ErrCannotMove
		}
		return exclusive(caret, dest, true), nil

	case KindParagraphBackward:
		line := caret.Line
		for i := 0; i < n; i++ {
			line = prevParagraph(line, ctx)
		}
		dest := selection.Position{Line: line}
		if line == caret.Line {
			return Result{}, ErrCannotMove
		}
		return exclusive(dest, caret, false), nil

	case KindMatchPair:
		return matchPair(caret, ctx)

	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownMotion, c.Motion.Kind)
	}
}

func exclusive(start, end selection.Position, forward bool) Result {
	return Result{
		Span:         selection.NewSpan(start, end),
		Forward:      forward,
		Wise:         WiseExclusive,
		TargetColumn: NoTargetColumn,
	}
}

func inclusive(start, end selection.Position, forward bool) Result {
	return Result{
		Span:         selection.NewSpan(start, end),
		Forward:      forward,
		Wise:         WiseInclusive,
		TargetColumn: NoTargetColumn,
	}
}

func linewise(first, last, targetCol int, forward bool, ctx Context) Result {
	start := selection.Position{Line: first}
	end := selection.Position{Line: last, Column: ctx.LineLength(last)}
	return Result{
		Span:         selection.NewSpan(start, end),
		Forward:      forward,
		Wise:         WiseLine,
		TargetColumn: targetCol,
	}
}

// charClass partitions runes the way word motions group them: blank,
// word (letters, digits, underscore), and other punctuation.
type charClass uint8

const (
	classBlank charClass = iota
	classWord
	classPunct
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classBlank
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

func firstNonBlank(line string) int {
	for i, r := range []rune(line) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

// stepN applies a single-step position function n times, stopping
// early when the step makes no progress.
func stepN(pos selection.Position, n int, ctx Context, step func(selection.Position, Context) (selection.Position, bool)) selection.Position {
	for i := 0; i < n; i++ {
		next, ok := step(pos, ctx)
		if !ok {
			break
		}
		pos = next
	}
	return pos
}

// nextWordStart moves to the start of the next word. An empty line
// counts as a word.
func nextWordStart(pos selection.Position, ctx Context) (selection.Position, bool) {
	line, col := pos.Line, pos.Column
	runes := []rune(ctx.Line(line))

	// Leave the current run of same-class characters.
	if col < len(runes) {
		cls := classOf(runes[col])
		for col < len(runes) && classOf(runes[col]) == cls && cls != classBlank {
			col++
		}
	}

	for {
		for col < len(runes) && classOf(runes[col]) == classBlank {
			col++
		}
		if col < len(runes) {
			return selection.Position{Line: line, Column: col}, true
		}
		if line+1 >= ctx.LineCount() {
			return pos, false
		}
		line++
		col = 0
		runes = []rune(ctx.Line(line))
		if len(runes) == 0 {
			return selection.Position{Line: line}, true
		}
	}
}

// prevWordStart moves to the start of the previous word.
func prevWordStart(pos selection.Position, ctx Context) (selection.Position, bool) {
	line, col := pos.Line, pos.Column
	runes := []rune(ctx.Line(line))

	for {
		col--
		for col >= 0 && classOf(runes[col]) == classBlank {
			col--
		}
		if col >= 0 {
			cls := classOf(runes[col])
			for col > 0 && classOf(runes[col-1]) == cls {
				col--
			}
			return selection.Position{Line: line, Column: col}, true
		}
		if line == 0 {
			return pos, false
		}
		line--
		runes = []rune(ctx.Line(line))
		col = len(runes)
		if col == 0 {
			return selection.Position{Line: line}, true
		}
	}
}

// nextWordEnd moves to the last character of the next word.
func nextWordEnd(pos selection.Position, ctx Context) (selection.Position, bool) {
	line, col := pos.Line, pos.Column
	runes := []rune(ctx.Line(line))

	for {
		col++
		for col < len(runes) && classOf(runes[col]) == classBlank {
			col++
		}
		if col < len(runes) {
			cls := classOf(runes[col])
			for col+1 < len(runes) && classOf(runes[col+1]) == cls {
				col++
			}
			return selection.Position{Line: line, Column: col}, true
		}
		if line+1 >= ctx.LineCount() {
			return pos, false
		}
		line++
		runes = []rune(ctx.Line(line))
		col = -1
	}
}

// findForward locates the n'th occurrence of ch after col.
func findForward(line string, col int, ch rune, n int) (int, error) {
	runes := []rune(line)
	for i := col + 1; i < len(runes); i++ {
		if runes[i] == ch {
			n--
			if n == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrCharNotFound, ch)
}

// findBackward locates the n'th occurrence of ch before col.
func findBackward(line string, col int, ch rune, n int) (int, error) {
	runes := []rune(line)
	for i := min(col, len(runes)) - 1; i >= 0; i-- {
		if runes[i] == ch {
			n--
			if n == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrCharNotFound, ch)
}

// nextParagraph finds the next empty line below, or the last line.
func nextParagraph(line int, ctx Context) int {
	last := ctx.LineCount() - 1
	for i := line + 1; i <= last; i++ {
		if ctx.LineLength(i) == 0 {
			return i
		}
	}
	return last
}

// prevParagraph finds the previous empty line above, or the first line.
func prevParagraph(line int, ctx Context) int {
	for i := line - 1; i >= 0; i-- {
		if ctx.LineLength(i) == 0 {
			return i
		}
	}
	return 0
}

// pairs maps bracket characters to their partner and scan direction.
var pairs = map[rune]struct {
	partner rune
	forward bool
}{
	'(': {')', true},
	')': {'(', false},
	'[': {']', true},
	']': {'[', false},
	'{': {'}', true},
	'}': {'{', false},
}

// matchPair jumps between matching brackets. When the caret is not on
// a bracket, the first bracket at or after the caret on its line is
// used, matching the usual % behavior.
func matchPair(caret selection.Position, ctx Context) (Result, error) {
	runes := []rune(ctx.Line(caret.Line))
	col := caret.Column
	for col < len(runes) {
		if _, ok := pairs[runes[col]]; ok {
			break
		}
		col++
	}
	if col >= len(runes) {
		return Result{}, ErrNoPair
	}

	open := runes[col]
	p := pairs[open]
	from := selection.Position{Line: caret.Line, Column: col}
	dest, ok := scanPair(from, open, p.partner, p.forward, ctx)
	if !ok {
		return Result{}, ErrNoPair
	}

	if p.forward {
		return inclusive(caret, dest, true), nil
	}
	return inclusive(dest, caret, false), nil
}

// scanPair walks the buffer tracking nesting depth until the matching
// partner of open is found.
func scanPair(from selection.Position, open, partner rune, forward bool, ctx Context) (selection.Position, bool) {
	depth := 0
	line, col := from.Line, from.Column
	runes := []rune(ctx.Line(line))

	for {
		ch := runes[col]
		switch ch {
		case open:
			depth++
		case partner:
			depth--
			if depth == 0 {
				return selection.Position{Line: line, Column: col}, true
			}
		}

		if forward {
			col++
			for col >= len(runes) {
				line++
				if line >= ctx.LineCount() {
					return selection.Position{}, false
				}
				runes = []rune(ctx.Line(line))
				col = 0
				if len(runes) > 0 {
					break
				}
			}
		} else {
			col--
			for col < 0 {
				line--
				if line < 0 {
					return selection.Position{}, false
				}
				runes = []rune(ctx.Line(line))
				col = len(runes) - 1
				if col >= 0 {
					break
				}
			}
		}
	}
}

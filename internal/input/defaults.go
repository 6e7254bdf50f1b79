package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/vimkit/internal/input/command"
	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/mode"
	"github.com/dshills/vimkit/internal/input/motion"
	"github.com/dshills/vimkit/internal/input/register"
	"github.com/dshills/vimkit/internal/selection"
)

// ErrNothingToPut reports a put from an empty register.
var ErrNothingToPut = errors.New("nothing to put")

// InstallDefaults populates the standard mode registries with the
// stock binding set: movements, the delete/yank/change operators,
// put, insert-mode entries, and the visual-mode commands. Hosts that
// want a different surface can skip this and register their own
// bindings.
func (it *Interpreter) InstallDefaults() error {
	if err := it.installMovements(); err != nil {
		return err
	}
	if err := it.installNormal(); err != nil {
		return err
	}
	if err := it.installVisual(); err != nil {
		return err
	}
	if err := it.installInsert(); err != nil {
		return err
	}
	return nil
}

func (it *Interpreter) registerAll(modeName string, bindings []command.Binding) error {
	reg := it.Registry(modeName)
	for _, b := range bindings {
		if err := reg.Register(b); err != nil {
			return fmt.Errorf("installing %q in %s: %w", b.Name, modeName, err)
		}
	}
	return nil
}

func (it *Interpreter) installMovements() error {
	specs := []struct {
		trigger string
		name    string
		kind    motion.Kind
	}{
		{"h", "left", motion.KindLeft},
		{"<Left>", "left-arrow", motion.KindLeft},
		{"l", "right", motion.KindRight},
		{"<Right>", "right-arrow", motion.KindRight},
		{"k", "up", motion.KindUp},
		{"<Up>", "up-arrow", motion.KindUp},
		{"j", "down", motion.KindDown},
		{"<Down>", "down-arrow", motion.KindDown},
		{"w", "word-forward", motion.KindWordForward},
		{"b", "word-backward", motion.KindWordBackward},
		{"e", "word-end", motion.KindWordEnd},
		{"0", "line-start", motion.KindLineStart},
		{"<Home>", "line-start-key", motion.KindLineStart},
		{"^", "first-non-blank", motion.KindFirstNonBlank},
		{"$", "line-end", motion.KindLineEnd},
		{"<End>", "line-end-key", motion.KindLineEnd},
		{"gg", "document-start", motion.KindDocumentStart},
		{"G", "document-end", motion.KindDocumentEnd},
		{"{", "paragraph-backward", motion.KindParagraphBackward},
		{"}", "paragraph-forward", motion.KindParagraphForward},
		{"%", "match-pair", motion.KindMatchPair},
		{"f", "find-char", motion.KindFindChar},
		{"F", "find-char-back", motion.KindFindCharBack},
		{"t", "till-char", motion.KindTillChar},
		{"T", "till-char-back", motion.KindTillCharBack},
	}

	bindings := make([]command.Binding, 0, len(specs))
	for _, s := range specs {
		bindings = append(bindings, command.Binding{
			Trigger:  key.MustParseSequence(s.trigger),
			Name:     s.name,
			Movement: true,
			Motion:   motion.Motion{Kind: s.kind},
			Operator: it.moveCaret,
		})
	}

	for _, modeName := range []string{mode.Normal, mode.Visual, mode.VisualLine} {
		if err := it.registerAll(modeName, bindings); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) installNormal() error {
	return it.registerAll(mode.Normal, []command.Binding{
		{Trigger: key.MustParseSequence("x"), Name: "delete-char", Repeatable: true, Coalesce: command.CoalesceDelete, Exec: it.deleteChar(true)},
		{Trigger: key.MustParseSequence("X"), Name: "delete-char-back", Repeatable: true, Coalesce: command.CoalesceDelete, Exec: it.deleteChar(false)},
		{Trigger: key.MustParseSequence("d"), Name: "delete", Repeatable: true, Coalesce: command.CoalesceDelete, Operator: it.deleteOver},
		{Trigger: key.MustParseSequence("dd"), Name: "delete-line", Repeatable: true, Coalesce: command.CoalesceDelete, Exec: it.deleteLines},
		{Trigger: key.MustParseSequence("D"), Name: "delete-to-end", Repeatable: true, Coalesce: command.CoalesceDelete, Exec: it.deleteToLineEnd},
		{Trigger: key.MustParseSequence("y"), Name: "yank", Coalesce: command.CoalesceYank, Operator: it.yankOver},
		{Trigger: key.MustParseSequence("yy"), Name: "yank-line", Coalesce: command.CoalesceYank, Exec: it.yankLines},
		{Trigger: key.MustParseSequence("Y"), Name: "yank-line-alias", Coalesce: command.CoalesceYank, Exec: it.yankLines},
		{Trigger: key.MustParseSequence("c"), Name: "change", Repeatable: true, Coalesce: command.CoalesceDelete, LinksToInsert: true, Operator: it.changeOver},
		{Trigger: key.MustParseSequence("cc"), Name: "change-line", Repeatable: true, Coalesce: command.CoalesceDelete, LinksToInsert: true, Exec: it.changeLines},
		{Trigger: key.MustParseSequence("C"), Name: "change-to-end", Repeatable: true, Coalesce: command.CoalesceDelete, LinksToInsert: true, Exec: it.changeToLineEnd},
		{Trigger: key.MustParseSequence("p"), Name: "put-after", Repeatable: true, Exec: it.put(true)},
		{Trigger: key.MustParseSequence("P"), Name: "put-before", Repeatable: true, Exec: it.put(false)},
		{Trigger: key.MustParseSequence("i"), Name: "insert", LinksToInsert: true, Exec: it.insertHere},
		{Trigger: key.MustParseSequence("a"), Name: "append", LinksToInsert: true, Exec: it.appendAfter},
		{Trigger: key.MustParseSequence("I"), Name: "insert-line-start", LinksToInsert: true, Exec: it.insertLineStart},
		{Trigger: key.MustParseSequence("A"), Name: "append-line-end", LinksToInsert: true, Exec: it.appendLineEnd},
		{Trigger: key.MustParseSequence("o"), Name: "open-below", Repeatable: true, LinksToInsert: true, Exec: it.openBelow},
		{Trigger: key.MustParseSequence("O"), Name: "open-above", Repeatable: true, LinksToInsert: true, Exec: it.openAbove},
		{Trigger: key.MustParseSequence("v"), Name: "visual", Exec: it.enterVisual(mode.Visual)},
		{Trigger: key.MustParseSequence("V"), Name: "visual-line", Exec: it.enterVisual(mode.VisualLine)},
		{Trigger: key.MustParseSequence("R"), Name: "replace-mode", Exec: it.switchTo(mode.Replace)},
	})
}

func (it *Interpreter) installVisual() error {
	bindings := []command.Binding{
		{Trigger: key.MustParseSequence("<Esc>"), Name: "leave-visual", HandlesEscape: true, Exec: it.switchTo(mode.Normal)},
		{Trigger: key.MustParseSequence("o"), Name: "swap-ends", Exec: it.swapVisualEnds},
		{Trigger: key.MustParseSequence("d"), Name: "delete-selection", Coalesce: command.CoalesceDelete, Exec: it.visualDelete(false)},
		{Trigger: key.MustParseSequence("x"), Name: "delete-selection-alias", Coalesce: command.CoalesceDelete, Exec: it.visualDelete(false)},
		{Trigger: key.MustParseSequence("c"), Name: "change-selection", Coalesce: command.CoalesceDelete, LinksToInsert: true, Exec: it.visualDelete(true)},
		{Trigger: key.MustParseSequence("y"), Name: "yank-selection", Coalesce: command.CoalesceYank, Exec: it.visualYank},
	}

	visual := append([]command.Binding{
		{Trigger: key.MustParseSequence("v"), Name: "leave-visual-alias", Exec: it.switchTo(mode.Normal)},
		{Trigger: key.MustParseSequence("V"), Name: "to-visual-line", Exec: it.switchTo(mode.VisualLine)},
	}, bindings...)
	if err := it.registerAll(mode.Visual, visual); err != nil {
		return err
	}

	visualLine := append([]command.Binding{
		{Trigger: key.MustParseSequence("v"), Name: "to-visual-char", Exec: it.switchTo(mode.Visual)},
		{Trigger: key.MustParseSequence("V"), Name: "leave-visual-line", Exec: it.switchTo(mode.Normal)},
	}, bindings...)
	return it.registerAll(mode.VisualLine, visualLine)
}

func (it *Interpreter) installInsert() error {
	leave := []command.Binding{
		{Trigger: key.MustParseSequence("<Esc>"), Name: "leave-insert", HandlesEscape: true, Exec: it.leaveInsert},
	}
	if err := it.registerAll(mode.Insert, leave); err != nil {
		return err
	}
	return it.registerAll(mode.Replace, leave)
}

// moveCaret is the producer behind every movement binding: the
// evaluated motion's destination becomes the caret, clamped to the
// normal-mode column range. A run of vertical moves keeps trying to
// reach the column the run started from.
func (it *Interpreter) moveCaret(_ command.Data, r motion.Result) error {
	pos := r.End()

	if r.Wise == motion.WiseLine {
		col := r.TargetColumn
		switch {
		case col == motion.NoTargetColumn:
			it.sticky = -1
			col = firstNonBlankColumn(it.host.Line(pos.Line))
		case it.sticky > col:
			col = it.sticky
		default:
			it.sticky = col
		}
		it.host.SetCaret(selection.Position{
			Line:   pos.Line,
			Column: clampColumn(col, it.host.LineLength(pos.Line)),
		})
		return nil
	}

	it.sticky = -1
	pos.Column = clampColumn(pos.Column, it.host.LineLength(pos.Line))
	it.host.SetCaret(pos)
	return nil
}

// cut routes deleted text to its register: the named register when
// one was given, the numbered delete history otherwise.
func (it *Interpreter) cut(data command.Data, text string, shape register.Shape) {
	v := register.Value{Text: text, Shape: shape}
	if data.Register != command.NoRegister {
		it.shared.Registers.Set(data.Register, v)
		return
	}
	small := shape == register.ShapeChar && !strings.Contains(text, "\n")
	it.shared.Registers.RecordDelete(v, small)
}

func (it *Interpreter) copied(data command.Data, text string, shape register.Shape) {
	v := register.Value{Text: text, Shape: shape}
	if data.Register != command.NoRegister {
		it.shared.Registers.Set(data.Register, v)
		return
	}
	it.shared.Registers.RecordYank(v)
}

func (it *Interpreter) deleteChar(forward bool) command.Exec {
	return func(data command.Data) error {
		caret := it.host.Caret()
		length := it.host.LineLength(caret.Line)
		n := data.EffectiveCount()

		var span selection.Span
		if forward {
			end := min(caret.Column+n, length)
			if end <= caret.Column {
				return nil
			}
			span = selection.NewSpan(caret, selection.Position{Line: caret.Line, Column: end})
		} else {
			start := max(caret.Column-n, 0)
			if start >= caret.Column {
				return nil
			}
			span = selection.NewSpan(selection.Position{Line: caret.Line, Column: start}, caret)
		}

		text, err := it.host.DeleteSpan(span)
		if err != nil {
			return err
		}
		it.cut(data, text, register.ShapeChar)
		it.host.SetCaret(selection.Position{
			Line:   caret.Line,
			Column: clampColumn(span.Start.Column, it.host.LineLength(caret.Line)),
		})
		return nil
	}
}

// deleteOver is the delete operator: the motion's span is removed and
// recorded with the motion's wise-ness.
func (it *Interpreter) deleteOver(data command.Data, r motion.Result) error {
	if r.Wise == motion.WiseLine {
		first := r.Span.Start.Line
		text, err := it.host.DeleteLines(first, r.Span.Lines)
		if err != nil {
			return err
		}
		it.cut(data, text, register.ShapeLine)
		it.setCaretOnLine(first)
		return nil
	}

	span := charSpan(r)
	text, err := it.host.DeleteSpan(span)
	if err != nil {
		return err
	}
	it.cut(data, text, register.ShapeChar)
	it.host.SetCaret(selection.Position{
		Line:   span.Start.Line,
		Column: clampColumn(span.Start.Column, it.host.LineLength(span.Start.Line)),
	})
	return nil
}

// yankOver is the yank operator: the motion's text is read without
// removal. A backward motion leaves the caret at the span start, as
// the forward form leaves it in place.
func (it *Interpreter) yankOver(data command.Data, r motion.Result) error {
	if r.Wise == motion.WiseLine {
		first := r.Span.Start.Line
		it.copied(data, it.linesText(first, r.Span.Lines), register.ShapeLine)
		if !r.Forward {
			it.setCaretOnLine(first)
		}
		return nil
	}

	span := charSpan(r)
	it.copied(data, it.spanText(span), register.ShapeChar)
	if !r.Forward {
		it.host.SetCaret(span.Start)
	}
	return nil
}

// changeOver is the change operator: delete then enter insert mode.
// A line-wise change keeps one empty line open for the new text.
func (it *Interpreter) changeOver(data command.Data, r motion.Result) error {
	if r.Wise == motion.WiseLine {
		first := r.Span.Start.Line
		last := first + r.Span.Lines - 1
		return it.changeLineRange(data, first, last)
	}

	span := charSpan(r)
	text, err := it.host.DeleteSpan(span)
	if err != nil {
		return err
	}
	it.cut(data, text, register.ShapeChar)
	it.host.SetCaret(span.Start)
	return it.modes.Switch(mode.Insert)
}

// changeLineRange empties the lines of [first, last] without removing
// the line slots, then enters insert mode on the first of them.
func (it *Interpreter) changeLineRange(data command.Data, first, last int) error {
	span := selection.NewSpan(
		selection.Position{Line: first},
		selection.Position{Line: last, Column: it.host.LineLength(last)},
	)
	text, err := it.host.DeleteSpan(span)
	if err != nil {
		return err
	}
	it.cut(data, text, register.ShapeLine)
	it.host.SetCaret(selection.Position{Line: first})
	return it.modes.Switch(mode.Insert)
}

func (it *Interpreter) deleteLines(data command.Data) error {
	caret := it.host.Caret()
	count := min(data.EffectiveCount(), it.host.LineCount()-caret.Line)
	text, err := it.host.DeleteLines(caret.Line, count)
	if err != nil {
		return err
	}
	it.cut(data, text, register.ShapeLine)
	it.setCaretOnLine(caret.Line)
	return nil
}

func (it *Interpreter) yankLines(data command.Data) error {
	caret := it.host.Caret()
	count := min(data.EffectiveCount(), it.host.LineCount()-caret.Line)
	it.copied(data, it.linesText(caret.Line, count), register.ShapeLine)
	return nil
}

func (it *Interpreter) changeLines(data command.Data) error {
	caret := it.host.Caret()
	count := min(data.EffectiveCount(), it.host.LineCount()-caret.Line)
	return it.changeLineRange(data, caret.Line, caret.Line+count-1)
}

func (it *Interpreter) deleteToLineEnd(data command.Data) error {
	caret := it.host.Caret()
	length := it.host.LineLength(caret.Line)
	if caret.Column >= length {
		return nil
	}
	span := selection.NewSpan(caret, selection.Position{Line: caret.Line, Column: length})
	text, err := it.host.DeleteSpan(span)
	if err != nil {
		return err
	}
	it.cut(data, text, register.ShapeChar)
	it.host.SetCaret(selection.Position{
		Line:   caret.Line,
		Column: clampColumn(caret.Column, it.host.LineLength(caret.Line)),
	})
	return nil
}

func (it *Interpreter) changeToLineEnd(data command.Data) error {
	if err := it.deleteToLineEnd(data); err != nil {
		return err
	}
	return it.modes.Switch(mode.Insert)
}

// put inserts register content at the caret. Line-wise content opens
// a new line; character-wise content lands beside the caret.
func (it *Interpreter) put(after bool) command.Exec {
	return func(data command.Data) error {
		name := data.Register
		if name == command.NoRegister {
			name = '"'
		}
		v := it.shared.Registers.Get(name)
		if v.IsEmpty() {
			return fmt.Errorf("%w: register %c is empty", ErrNothingToPut, name)
		}

		caret := it.host.Caret()
		count := data.EffectiveCount()

		if v.Shape == register.ShapeLine {
			text := repeatLines(v.Text, count)
			if after {
				at := selection.Position{Line: caret.Line, Column: it.host.LineLength(caret.Line)}
				if err := it.host.InsertText(at, "\n"+text); err != nil {
					return err
				}
				it.setCaretOnLine(caret.Line + 1)
				return nil
			}
			at := selection.Position{Line: caret.Line}
			if err := it.host.InsertText(at, text+"\n"); err != nil {
				return err
			}
			it.setCaretOnLine(caret.Line)
			return nil
		}

		text := strings.Repeat(v.Text, count)
		col := caret.Column
		if after {
			col = min(col+1, it.host.LineLength(caret.Line))
		}
		at := selection.Position{Line: caret.Line, Column: col}
		if err := it.host.InsertText(at, text); err != nil {
			return err
		}
		it.host.SetCaret(selection.Position{
			Line:   caret.Line,
			Column: clampColumn(col+len([]rune(text))-1, it.host.LineLength(caret.Line)),
		})
		return nil
	}
}

func (it *Interpreter) insertHere(command.Data) error {
	return it.modes.Switch(mode.Insert)
}

func (it *Interpreter) appendAfter(command.Data) error {
	caret := it.host.Caret()
	caret.Column = min(caret.Column+1, it.host.LineLength(caret.Line))
	it.host.SetCaret(caret)
	return it.modes.Switch(mode.Insert)
}

func (it *Interpreter) insertLineStart(command.Data) error {
	caret := it.host.Caret()
	caret.Column = firstNonBlankColumn(it.host.Line(caret.Line))
	it.host.SetCaret(caret)
	return it.modes.Switch(mode.Insert)
}

func (it *Interpreter) appendLineEnd(command.Data) error {
	caret := it.host.Caret()
	caret.Column = it.host.LineLength(caret.Line)
	it.host.SetCaret(caret)
	return it.modes.Switch(mode.Insert)
}

func (it *Interpreter) openBelow(command.Data) error {
	caret := it.host.Caret()
	at := selection.Position{Line: caret.Line, Column: it.host.LineLength(caret.Line)}
	if err := it.host.InsertText(at, "\n"); err != nil {
		return err
	}
	it.host.SetCaret(selection.Position{Line: caret.Line + 1})
	return it.modes.Switch(mode.Insert)
}

func (it *Interpreter) openAbove(command.Data) error {
	caret := it.host.Caret()
	if err := it.host.InsertText(selection.Position{Line: caret.Line}, "\n"); err != nil {
		return err
	}
	it.host.SetCaret(selection.Position{Line: caret.Line})
	return it.modes.Switch(mode.Insert)
}

func (it *Interpreter) enterVisual(name string) command.Exec {
	return func(command.Data) error {
		it.anchor = it.host.Caret()
		return it.modes.Switch(name)
	}
}

func (it *Interpreter) switchTo(name string) command.Exec {
	return func(command.Data) error {
		return it.modes.Switch(name)
	}
}

func (it *Interpreter) leaveInsert(command.Data) error {
	caret := it.host.Caret()
	caret.Column = clampColumn(caret.Column-1, it.host.LineLength(caret.Line))
	it.host.SetCaret(caret)
	return it.modes.Switch(mode.Normal)
}

func (it *Interpreter) swapVisualEnds(command.Data) error {
	caret := it.host.Caret()
	it.host.SetCaret(it.anchor)
	it.anchor = caret
	return nil
}

// visualDelete removes the active selection, entering insert mode for
// the change form and returning to normal mode otherwise.
func (it *Interpreter) visualDelete(change bool) command.Exec {
	return func(data command.Data) error {
		caret := it.host.Caret()

		if it.modes.CurrentName() == mode.VisualLine {
			first := min(it.anchor.Line, caret.Line)
			last := max(it.anchor.Line, caret.Line)
			if change {
				return it.changeLineRange(data, first, last)
			}
			text, err := it.host.DeleteLines(first, last-first+1)
			if err != nil {
				return err
			}
			it.cut(data, text, register.ShapeLine)
			it.setCaretOnLine(first)
			return it.modes.Switch(mode.Normal)
		}

		span := it.visualSpan(caret)
		text, err := it.host.DeleteSpan(span)
		if err != nil {
			return err
		}
		it.cut(data, text, register.ShapeChar)
		it.host.SetCaret(selection.Position{
			Line:   span.Start.Line,
			Column: clampColumn(span.Start.Column, it.host.LineLength(span.Start.Line)),
		})
		if change {
			return it.modes.Switch(mode.Insert)
		}
		return it.modes.Switch(mode.Normal)
	}
}

func (it *Interpreter) visualYank(data command.Data) error {
	caret := it.host.Caret()

	if it.modes.CurrentName() == mode.VisualLine {
		first := min(it.anchor.Line, caret.Line)
		last := max(it.anchor.Line, caret.Line)
		it.copied(data, it.linesText(first, last-first+1), register.ShapeLine)
		it.setCaretOnLine(first)
		return it.modes.Switch(mode.Normal)
	}

	span := it.visualSpan(caret)
	it.copied(data, it.spanText(span), register.ShapeChar)
	it.host.SetCaret(span.Start)
	return it.modes.Switch(mode.Normal)
}

// visualSpan covers the character-wise selection between the anchor
// and the caret, inclusive of both end characters.
func (it *Interpreter) visualSpan(caret selection.Position) selection.Span {
	return selection.NewSpan(it.anchor, caret).ExtendInclusive()
}

// setCaretOnLine lands the caret on a line's first non-blank column,
// clamping the line to the buffer.
func (it *Interpreter) setCaretOnLine(line int) {
	line = min(line, it.host.LineCount()-1)
	line = max(line, 0)
	it.host.SetCaret(selection.Position{
		Line:   line,
		Column: firstNonBlankColumn(it.host.Line(line)),
	})
}

// charSpan widens an inclusive motion result to the span it removes.
func charSpan(r motion.Result) selection.Span {
	if r.Wise == motion.WiseInclusive {
		return r.Span.ExtendInclusive()
	}
	return r.Span
}

func (it *Interpreter) linesText(first, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(it.host.Line(first + i))
	}
	return sb.String()
}

func (it *Interpreter) spanText(span selection.Span) string {
	start := span.Start
	if span.Lines <= 1 {
		runes := []rune(it.host.Line(start.Line))
		lo := min(start.Column, len(runes))
		hi := min(start.Column+span.LastLen, len(runes))
		return string(runes[lo:hi])
	}

	var sb strings.Builder
	first := []rune(it.host.Line(start.Line))
	if start.Column < len(first) {
		sb.WriteString(string(first[start.Column:]))
	}
	for line := start.Line + 1; line < start.Line+span.Lines-1; line++ {
		sb.WriteByte('\n')
		sb.WriteString(it.host.Line(line))
	}
	last := []rune(it.host.Line(start.Line + span.Lines - 1))
	sb.WriteByte('\n')
	sb.WriteString(string(last[:min(span.LastLen, len(last))]))
	return sb.String()
}

func repeatLines(text string, count int) string {
	if count <= 1 {
		return text
	}
	parts := make([]string, count)
	for i := range parts {
		parts[i] = text
	}
	return strings.Join(parts, "\n")
}

func clampColumn(col, length int) int {
	if length <= 0 {
		return 0
	}
	if col >= length {
		return length - 1
	}
	if col < 0 {
		return 0
	}
	return col
}

func firstNonBlankColumn(line string) int {
	for i, r := range []rune(line) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

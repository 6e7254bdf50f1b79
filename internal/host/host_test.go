package host

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimkit/internal/input"
	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/selection"
)

func TestBufferGraphemeColumns(t *testing.T) {
	// The accented e is a combining sequence: one caret position,
	// three bytes.
	b := NewBuffer("aéx")
	if got := b.LineLength(0); got != 3 {
		t.Fatalf("LineLength = %d, want 3", got)
	}

	removed, err := b.DeleteSpan(selection.NewSpan(
		selection.Position{Line: 0, Column: 1},
		selection.Position{Line: 0, Column: 2},
	))
	if err != nil {
		t.Fatalf("DeleteSpan: %v", err)
	}
	if removed != "é" {
		t.Fatalf("removed = %q", removed)
	}
	if b.Text() != "ax" {
		t.Fatalf("text = %q", b.Text())
	}
}

func TestBufferInsertMultiline(t *testing.T) {
	b := NewBuffer("onewo")
	if err := b.InsertText(selection.Position{Line: 0, Column: 3}, "\nt"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if b.Text() != "one\ntwo" {
		t.Fatalf("text = %q", b.Text())
	}
	if b.LineCount() != 2 {
		t.Fatalf("lines = %d", b.LineCount())
	}
}

func TestBufferDeleteSpanAcrossLines(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree")
	removed, err := b.DeleteSpan(selection.NewSpan(
		selection.Position{Line: 0, Column: 2},
		selection.Position{Line: 2, Column: 2},
	))
	if err != nil {
		t.Fatalf("DeleteSpan: %v", err)
	}
	if removed != "e\ntwo\nth" {
		t.Fatalf("removed = %q", removed)
	}
	if b.Text() != "onree" {
		t.Fatalf("text = %q", b.Text())
	}
}

func TestBufferDeleteLinesKeepsOne(t *testing.T) {
	b := NewBuffer("one\ntwo")
	removed, err := b.DeleteLines(0, 5)
	if err != nil {
		t.Fatalf("DeleteLines: %v", err)
	}
	if removed != "one\ntwo" {
		t.Fatalf("removed = %q", removed)
	}
	if b.LineCount() != 1 || b.Text() != "" {
		t.Fatalf("buffer = %q over %d lines", b.Text(), b.LineCount())
	}
}

func TestBufferDrivesInterpreter(t *testing.T) {
	b := NewBuffer("one two")
	it, err := input.New(b, input.NewShared())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := it.InstallDefaults(); err != nil {
		t.Fatalf("InstallDefaults: %v", err)
	}

	for _, sym := range key.MustParseSequence("dw").Symbols() {
		if r := it.ProcessSymbol(sym); r.Outcome == input.OutcomeError {
			t.Fatalf("ProcessSymbol: %v", r.Err)
		}
	}
	if b.Text() != "two" {
		t.Fatalf("text = %q", b.Text())
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Symbol
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), key.NewRune('x')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.NewNamed(key.NamedEscape, key.ModNone)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.NewNamed(key.NamedEnter, key.ModNone)},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), key.NewNamed(key.NamedLeft, key.ModNone)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt), key.NewRuneMod('f', key.ModAlt)},
		{"ctrl chord", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), key.NewRuneMod('w', key.ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKey(tt.ev)
			if !ok {
				t.Fatal("TranslateKey reported no symbol")
			}
			if got != tt.want {
				t.Fatalf("symbol = %#v, want %#v", got, tt.want)
			}
		})
	}
}

package motion

import (
	"errors"
	"testing"

	"github.com/dshills/vimkit/internal/input/bind"
	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/selection"
)

// bufCtx is a fixed buffer for evaluation tests.
type bufCtx []string

func (b bufCtx) Line(i int) string {
	if i < 0 || i >= len(b) {
		return ""
	}
	return b[i]
}

func (b bufCtx) LineLength(i int) int { return len([]rune(b.Line(i))) }
func (b bufCtx) LineCount() int       { return len(b) }

// feed delivers each rune of input to the capture continuation.
func feed(t *testing.T, input string) bind.Result[Captured] {
	t.Helper()
	d := Capture()
	var r bind.Result[Captured]
	for _, ch := range input {
		r = d.Invoke(key.NewRune(ch))
		if r.State() != bind.StateMore {
			return r
		}
		d = r.Next()
	}
	return r
}

func TestCaptureSimple(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		count int
		char  rune
	}{
		{"w", KindWordForward, 0, 0},
		{"b", KindWordBackward, 0, 0},
		{"e", KindWordEnd, 0, 0},
		{"3w", KindWordForward, 3, 0},
		{"12j", KindDown, 12, 0},
		{"0", KindLineStart, 0, 0},
		{"10w", KindWordForward, 10, 0},
		{"$", KindLineEnd, 0, 0},
		{"G", KindDocumentEnd, 0, 0},
		{"gg", KindDocumentStart, 0, 0},
		{"5gg", KindDocumentStart, 5, 0},
		{"fx", KindFindChar, 0, 'x'},
		{"2t;", KindTillChar, 2, ';'},
		{"F(", KindFindCharBack, 0, '('},
		{"}", KindParagraphForward, 0, 0},
		{"%", KindMatchPair, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := feed(t, tt.input)
			if r.State() != bind.StateComplete {
				t.Fatalf("state = %v, err = %v", r.State(), r.Err())
			}
			c := r.Value()
			if c.Motion.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", c.Motion.Kind, tt.kind)
			}
			if c.Count != tt.count {
				t.Errorf("count = %d, want %d", c.Count, tt.count)
			}
			if c.Motion.Char != tt.char {
				t.Errorf("char = %q, want %q", c.Motion.Char, tt.char)
			}
		})
	}
}

func TestCaptureNeedsMore(t *testing.T) {
	for _, input := range []string{"3", "f", "g", "42", "2f"} {
		t.Run(input, func(t *testing.T) {
			if r := feed(t, input); r.State() != bind.StateMore {
				t.Errorf("state = %v, want more", r.State())
			}
		})
	}
}

func TestCaptureUnknown(t *testing.T) {
	for _, input := range []string{"q", "gx", "3z"} {
		t.Run(input, func(t *testing.T) {
			r := feed(t, input)
			if r.State() != bind.StateError {
				t.Fatalf("state = %v, want error", r.State())
			}
			if !errors.Is(r.Err(), ErrUnknownMotion) {
				t.Errorf("err = %v, want ErrUnknownMotion", r.Err())
			}
		})
	}
}

func TestCaptureCancel(t *testing.T) {
	d := Capture()
	r := d.Invoke(key.NewRune('f'))
	if r.State() != bind.StateMore {
		t.Fatalf("state = %v, want more", r.State())
	}
	if r = r.Next().Invoke(key.Escape); r.State() != bind.StateCancelled {
		t.Errorf("state after escape = %v, want cancelled", r.State())
	}
}

func TestCaptureArrowKeys(t *testing.T) {
	d := Capture()
	r := d.Invoke(key.NewNamed(key.NamedLeft, key.ModNone))
	if r.State() != bind.StateComplete {
		t.Fatalf("state = %v", r.State())
	}
	if got := r.Value().Motion.Kind; got != KindLeft {
		t.Errorf("kind = %v, want left", got)
	}
}

func pos(line, col int) selection.Position {
	return selection.Position{Line: line, Column: col}
}

func TestEvaluateCharMotions(t *testing.T) {
	ctx := bufCtx{"hello world"}

	tests := []struct {
		name    string
		c       Captured
		caret   selection.Position
		start   selection.Position
		end     selection.Position
		forward bool
		wise    Wise
	}{
		{"l", Captured{Motion: Motion{Kind: KindRight}}, pos(0, 2), pos(0, 2), pos(0, 3), true, WiseExclusive},
		{"3l", Captured{Motion: Motion{Kind: KindRight}, Count: 3}, pos(0, 2), pos(0, 2), pos(0, 5), true, WiseExclusive},
		{"h", Captured{Motion: Motion{Kind: KindLeft}}, pos(0, 2), pos(0, 1), pos(0, 2), false, WiseExclusive},
		{"5h clamps", Captured{Motion: Motion{Kind: KindLeft}, Count: 5}, pos(0, 2), pos(0, 0), pos(0, 2), false, WiseExclusive},
		{"0", Captured{Motion: Motion{Kind: KindLineStart}}, pos(0, 6), pos(0, 0), pos(0, 6), false, WiseExclusive},
		{"$", Captured{Motion: Motion{Kind: KindLineEnd}}, pos(0, 2), pos(0, 2), pos(0, 10), true, WiseInclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.c, tt.caret, ctx)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if r.Span.Start != tt.start || r.Span.End() != tt.end {
				t.Errorf("span = %v..%v, want %v..%v", r.Span.Start, r.Span.End(), tt.start, tt.end)
			}
			if r.Forward != tt.forward {
				t.Errorf("forward = %v, want %v", r.Forward, tt.forward)
			}
			if r.Wise != tt.wise {
				t.Errorf("wise = %v, want %v", r.Wise, tt.wise)
			}
		})
	}
}

func TestEvaluateBoundary(t *testing.T) {
	ctx := bufCtx{"abc"}
	for _, tt := range []struct {
		name  string
		kind  Kind
		caret selection.Position
	}{
		{"left at col 0", KindLeft, pos(0, 0)},
		{"right at end", KindRight, pos(0, 3)},
		{"up at top", KindUp, pos(0, 1)},
		{"down at bottom", KindDown, pos(0, 1)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(Captured{Motion: Motion{Kind: tt.kind}}, tt.caret, ctx)
			if !errors.Is(err, ErrCannotMove) {
				t.Errorf("err = %v, want ErrCannotMove", err)
			}
		})
	}
}

func TestEvaluateWordMotions(t *testing.T) {
	ctx := bufCtx{"foo bar, baz", "", "next"}

	tests := []struct {
		name  string
		c     Captured
		caret selection.Position
		dest  selection.Position
		wise  Wise
	}{
		{"w", Captured{Motion: Motion{Kind: KindWordForward}}, pos(0, 0), pos(0, 4), WiseExclusive},
		{"w onto punct", Captured{Motion: Motion{Kind: KindWordForward}}, pos(0, 4), pos(0, 7), WiseExclusive},
		{"2w", Captured{Motion: Motion{Kind: KindWordForward}, Count: 2}, pos(0, 0), pos(0, 7), WiseExclusive},
		{"w stops at empty line", Captured{Motion: Motion{Kind: KindWordForward}}, pos(0, 9), pos(1, 0), WiseExclusive},
		{"w across lines", Captured{Motion: Motion{Kind: KindWordForward}, Count: 2}, pos(0, 9), pos(2, 0), WiseExclusive},
		{"e", Captured{Motion: Motion{Kind: KindWordEnd}}, pos(0, 0), pos(0, 2), WiseInclusive},
		{"2e", Captured{Motion: Motion{Kind: KindWordEnd}, Count: 2}, pos(0, 0), pos(0, 6), WiseInclusive},
		{"b", Captured{Motion: Motion{Kind: KindWordBackward}}, pos(0, 4), pos(0, 0), WiseExclusive},
		{"b from mid-word", Captured{Motion: Motion{Kind: KindWordBackward}}, pos(0, 6), pos(0, 4), WiseExclusive},
		{"b across lines", Captured{Motion: Motion{Kind: KindWordBackward}}, pos(2, 0), pos(1, 0), WiseExclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.c, tt.caret, ctx)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got := r.End(); got != tt.dest {
				t.Errorf("dest = %v, want %v", got, tt.dest)
			}
			if r.Wise != tt.wise {
				t.Errorf("wise = %v, want %v", r.Wise, tt.wise)
			}
		})
	}
}

func TestEvaluateCharSearch(t *testing.T) {
	ctx := bufCtx{"a,b,c,d"}

	tests := []struct {
		name string
		c    Captured
		dest selection.Position
		wise Wise
	}{
		{"f", Captured{Motion: Motion{Kind: KindFindChar, Char: ','}}, pos(0, 1), WiseInclusive},
		{"2f", Captured{Motion: Motion{Kind: KindFindChar, Char: ','}, Count: 2}, pos(0, 3), WiseInclusive},
		{"t", Captured{Motion: Motion{Kind: KindTillChar, Char: 'c'}}, pos(0, 3), WiseInclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.c, pos(0, 0), ctx)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got := r.End(); got != tt.dest {
				t.Errorf("dest = %v, want %v", got, tt.dest)
			}
			if r.Wise != tt.wise {
				t.Errorf("wise = %v, want %v", r.Wise, tt.wise)
			}
		})
	}

	t.Run("backward", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindFindCharBack, Char: ','}}, pos(0, 4), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if got := r.End(); got != pos(0, 3) {
			t.Errorf("dest = %v, want 0:3", got)
		}
		if r.Forward {
			t.Error("forward = true, want false")
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Evaluate(Captured{Motion: Motion{Kind: KindFindChar, Char: 'z'}}, pos(0, 0), ctx)
		if !errors.Is(err, ErrCharNotFound) {
			t.Errorf("err = %v, want ErrCharNotFound", err)
		}
	})
}

func TestEvaluateLinewise(t *testing.T) {
	ctx := bufCtx{"one", "two", "three", "four"}

	t.Run("j preserves column", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindDown}}, pos(1, 2), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if r.Wise != WiseLine {
			t.Errorf("wise = %v, want linewise", r.Wise)
		}
		if r.TargetColumn != 2 {
			t.Errorf("target column = %d, want 2", r.TargetColumn)
		}
		if r.Span.Start.Line != 1 || r.Span.End().Line != 2 {
			t.Errorf("lines = %d..%d, want 1..2", r.Span.Start.Line, r.Span.End().Line)
		}
	})

	t.Run("G goes to last line", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindDocumentEnd}}, pos(1, 0), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if r.Span.End().Line != 3 || !r.Forward {
			t.Errorf("end line = %d forward = %v", r.Span.End().Line, r.Forward)
		}
	})

	t.Run("counted G targets a line", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindDocumentEnd}, Count: 2}, pos(3, 0), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if r.Span.Start.Line != 1 || r.Forward {
			t.Errorf("start line = %d forward = %v, want 1 backward", r.Span.Start.Line, r.Forward)
		}
	})

	t.Run("gg goes to first line", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindDocumentStart}}, pos(2, 1), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if r.Span.Start.Line != 0 || r.Forward {
			t.Errorf("start line = %d forward = %v, want 0 backward", r.Span.Start.Line, r.Forward)
		}
	})
}

func TestEvaluateParagraph(t *testing.T) {
	ctx := bufCtx{"a", "b", "", "c", "", "d"}

	t.Run("forward", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindParagraphForward}}, pos(0, 0), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if got := r.End(); got != pos(2, 0) {
			t.Errorf("dest = %v, want 2:0", got)
		}
	})

	t.Run("counted forward", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindParagraphForward}, Count: 2}, pos(0, 0), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if got := r.End(); got != pos(4, 0) {
			t.Errorf("dest = %v, want 4:0", got)
		}
	})

	t.Run("backward", func(t *testing.T) {
		r, err := Evaluate(Captured{Motion: Motion{Kind: KindParagraphBackward}}, pos(5, 0), ctx)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if got := r.End(); got != pos(4, 0) {
			t.Errorf("dest = %v, want 4:0", got)
		}
	})
}

func TestEvaluateMatchPair(t *testing.T) {
	ctx := bufCtx{"f(a, g[1])", "{", "  x", "}"}

	tests := []struct {
		name    string
		caret   selection.Position
		dest    selection.Position
		forward bool
	}{
		{"open paren", pos(0, 1), pos(0, 9), true},
		{"close paren", pos(0, 9), pos(0, 1), false},
		{"nested bracket", pos(0, 6), pos(0, 8), true},
		{"seeks bracket on line", pos(0, 0), pos(0, 9), true},
		{"across lines", pos(1, 0), pos(3, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(Captured{Motion: Motion{Kind: KindMatchPair}}, tt.caret, ctx)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got := r.End(); got != tt.dest {
				t.Errorf("dest = %v, want %v", got, tt.dest)
			}
			if r.Forward != tt.forward {
				t.Errorf("forward = %v, want %v", r.Forward, tt.forward)
			}
			if r.Wise != WiseInclusive {
				t.Errorf("wise = %v, want inclusive", r.Wise)
			}
		})
	}

	t.Run("no pair", func(t *testing.T) {
		_, err := Evaluate(Captured{Motion: Motion{Kind: KindMatchPair}}, pos(2, 0), ctx)
		if !errors.Is(err, ErrNoPair) {
			t.Errorf("err = %v, want ErrNoPair", err)
		}
	})
}

func TestEvaluateIdempotent(t *testing.T) {
	ctx := bufCtx{"alpha beta"}
	c := Captured{Motion: Motion{Kind: KindWordForward}}
	r1, err1 := Evaluate(c, pos(0, 0), ctx)
	r2, err2 := Evaluate(c, pos(0, 0), ctx)
	if err1 != nil || err2 != nil {
		t.Fatalf("errs: %v %v", err1, err2)
	}
	if r1 != r2 {
		t.Errorf("results differ: %+v vs %+v", r1, r2)
	}
}

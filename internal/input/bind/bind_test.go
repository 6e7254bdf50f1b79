package bind

import (
	"errors"
	"testing"

	"github.com/dshills/vimkit/internal/input/key"
)

func TestSingleCompletes(t *testing.T) {
	d := Single("", func(sym key.Symbol) Result[rune] {
		return Complete(sym.Rune)
	})

	r := d.Invoke(key.NewRune('x'))
	if r.State() != StateComplete {
		t.Fatalf("state = %v, want complete", r.State())
	}
	if r.Value() != 'x' {
		t.Errorf("value = %q, want 'x'", r.Value())
	}
}

func TestSingleInterceptsCancelKey(t *testing.T) {
	called := false
	d := Single("", func(sym key.Symbol) Result[rune] {
		called = true
		return Complete(sym.Rune)
	})

	r := d.Invoke(key.Escape)
	if r.State() != StateCancelled {
		t.Fatalf("state = %v, want cancelled", r.State())
	}
	if called {
		t.Error("completion function must never see the cancel key")
	}
}

func TestSingleModifiedEscapePassesThrough(t *testing.T) {
	d := Single("", func(sym key.Symbol) Result[key.Symbol] {
		return Complete(sym)
	})

	// Ctrl+Escape is not the distinguished cancel key.
	r := d.Invoke(key.NewNamed(key.NamedEscape, key.ModCtrl))
	if r.State() != StateComplete {
		t.Errorf("state = %v, want complete", r.State())
	}
}

func TestMapTransformsCompleted(t *testing.T) {
	d := Single("", func(sym key.Symbol) Result[rune] {
		return Complete(sym.Rune)
	})
	mapped := Map(d, func(r rune) string { return string(r) + "!" })

	r := mapped.Invoke(key.NewRune('a'))
	if r.State() != StateComplete {
		t.Fatalf("state = %v", r.State())
	}
	if r.Value() != "a!" {
		t.Errorf("value = %q, want %q", r.Value(), "a!")
	}
}

func TestMapPropagatesThroughNestedInvocations(t *testing.T) {
	// A two-symbol consumer: first symbol selects, second completes.
	two := Data[string]{
		Step: func(first key.Symbol) Result[string] {
			return MoreFunc("", func(second key.Symbol) Result[string] {
				return Complete(string(first.Rune) + string(second.Rune))
			})
		},
	}
	mapped := Map(two, func(s string) int { return len(s) })

	r := mapped.Invoke(key.NewRune('a'))
	if r.State() != StateMore {
		t.Fatalf("state = %v, want more", r.State())
	}
	r = r.Next().Invoke(key.NewRune('b'))
	if r.State() != StateComplete {
		t.Fatalf("state = %v, want complete", r.State())
	}
	if r.Value() != 2 {
		t.Errorf("value = %d, want 2", r.Value())
	}
}

func TestMapPropagatesErrorAndCancel(t *testing.T) {
	boom := errors.New("boom")
	failing := Data[int]{
		Step: func(key.Symbol) Result[int] { return Failed[int](boom) },
	}
	r := Map(failing, func(int) int { return 0 }).Invoke(key.NewRune('x'))
	if r.State() != StateError {
		t.Errorf("state = %v, want error", r.State())
	}
	if !errors.Is(r.Err(), boom) {
		t.Errorf("err = %v, want boom", r.Err())
	}

	cancelling := Data[int]{
		Step: func(key.Symbol) Result[int] { return Cancelled[int]() },
	}
	r = Map(cancelling, func(int) int { return 0 }).Invoke(key.NewRune('x'))
	if r.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", r.State())
	}
}

func TestStepReferentialTransparency(t *testing.T) {
	d := Single("", func(sym key.Symbol) Result[rune] {
		return Complete(sym.Rune)
	})

	a := d.Invoke(key.NewRune('q'))
	b := d.Invoke(key.NewRune('q'))
	if a.State() != b.State() || a.Value() != b.Value() {
		t.Error("repeated invocation with the same symbol must produce the same result")
	}
}

func TestStorageActivatesExactlyOnce(t *testing.T) {
	calls := 0
	s := NewDeferred(func() Data[rune] {
		calls++
		return Single("", func(sym key.Symbol) Result[rune] {
			return Complete(sym.Rune)
		})
	})

	if s.IsActivated() {
		t.Error("deferred storage must not be activated before first use")
	}

	_ = s.Get()
	_ = s.Get()
	r := s.Invoke(key.NewRune('z'))

	if calls != 1 {
		t.Errorf("activation ran %d times, want 1", calls)
	}
	if r.State() != StateComplete || r.Value() != 'z' {
		t.Errorf("unexpected result: %v %q", r.State(), r.Value())
	}
}

func TestStorageAdvancesContinuation(t *testing.T) {
	s := NewStorage(Data[string]{
		Step: func(first key.Symbol) Result[string] {
			return MoreFunc("", func(second key.Symbol) Result[string] {
				return Complete(string(first.Rune) + string(second.Rune))
			})
		},
	})

	if r := s.Invoke(key.NewRune('f')); r.State() != StateMore {
		t.Fatalf("state = %v, want more", r.State())
	}
	r := s.Invoke(key.NewRune('x'))
	if r.State() != StateComplete || r.Value() != "fx" {
		t.Errorf("got %v %q, want complete %q", r.State(), r.Value(), "fx")
	}
}

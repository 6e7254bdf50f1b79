package key

import "testing"

func TestSequenceConstructionPaths(t *testing.T) {
	// The same symbols assembled different ways must compare equal.
	byCtor := NewSequence(NewRune('d'), NewRune('w'))
	byAppend := NewSequence().Append(NewRune('d')).Append(NewRune('w'))
	byConcat := NewSequence(NewRune('d')).Concat(NewSequence(NewRune('w')))
	byString := FromString("dw")
	byParse := MustParseSequence("dw")

	all := []Sequence{byCtor, byAppend, byConcat, byString, byParse}
	for i, a := range all {
		for j, b := range all {
			if !a.Equal(b) {
				t.Errorf("sequence %d != sequence %d (%q vs %q)", i, j, a, b)
			}
		}
	}
}

func TestSequenceImmutability(t *testing.T) {
	base := FromString("ab")
	extended := base.Append(NewRune('c'))

	if base.Len() != 2 {
		t.Errorf("base mutated by Append: len = %d", base.Len())
	}
	if extended.Len() != 3 {
		t.Errorf("extended len = %d, want 3", extended.Len())
	}

	syms := base.Symbols()
	syms[0] = NewRune('z')
	if base.First() != NewRune('a') {
		t.Error("Symbols() must return a copy")
	}
}

func TestSequencePrefix(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		prefix string
		has    bool
		strict bool
	}{
		{"empty prefix", "dd", "", true, true},
		{"own prefix", "dd", "dd", true, false},
		{"single of double", "dd", "d", true, true},
		{"mismatch", "dw", "y", false, false},
		{"longer than seq", "d", "dd", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := FromString(tt.seq)
			prefix := FromString(tt.prefix)
			if got := seq.HasPrefix(prefix); got != tt.has {
				t.Errorf("HasPrefix = %v, want %v", got, tt.has)
			}
			if got := prefix.IsStrictPrefixOf(seq); got != tt.strict {
				t.Errorf("IsStrictPrefixOf = %v, want %v", got, tt.strict)
			}
		})
	}
}

func TestSequenceSlice(t *testing.T) {
	seq := FromString("abcde")

	if got := seq.Head(2).String(); got != "ab" {
		t.Errorf("Head(2) = %q, want %q", got, "ab")
	}
	if got := seq.Tail(3).String(); got != "de" {
		t.Errorf("Tail(3) = %q, want %q", got, "de")
	}
	if !seq.Slice(5, 10).IsEmpty() {
		t.Error("out-of-range slice should be empty")
	}
	if !seq.Slice(3, 2).IsEmpty() {
		t.Error("inverted slice should be empty")
	}
}

func TestSequenceAsString(t *testing.T) {
	if s, ok := FromString("ciw").AsString(); !ok || s != "ciw" {
		t.Errorf("AsString = %q, %v", s, ok)
	}
	if _, ok := NewSequence(Escape).AsString(); ok {
		t.Error("named symbols must not convert to string")
	}
	if _, ok := NewSequence(NewRuneMod('a', ModCtrl)).AsString(); ok {
		t.Error("modified symbols must not convert to string")
	}
	if _, ok := NewSequence().AsString(); ok {
		t.Error("empty sequence must not convert to string")
	}
}

package key

import "strings"

// Sequence is an ordered, immutable list of Symbols. All operations
// return new sequences; equality is structural over the element list,
// regardless of how a sequence was built.
type Sequence struct {
	syms []Symbol
}

// NewSequence creates a sequence from the given symbols.
func NewSequence(syms ...Symbol) Sequence {
	if len(syms) == 0 {
		return Sequence{}
	}
	cp := make([]Symbol, len(syms))
	copy(cp, syms)
	return Sequence{syms: cp}
}

// FromString creates a sequence of unmodified rune symbols, one per rune.
func FromString(s string) Sequence {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, NewRune(r))
	}
	return Sequence{syms: syms}
}

// Len returns the number of symbols in the sequence.
func (s Sequence) Len() int {
	return len(s.syms)
}

// IsEmpty returns true if the sequence has no symbols.
func (s Sequence) IsEmpty() bool {
	return len(s.syms) == 0
}

// At returns the symbol at the given index.
// Returns the zero Symbol if the index is out of bounds.
func (s Sequence) At(i int) Symbol {
	if i < 0 || i >= len(s.syms) {
		return Symbol{}
	}
	return s.syms[i]
}

// First returns the first symbol, or the zero Symbol if empty.
func (s Sequence) First() Symbol {
	return s.At(0)
}

// Last returns the last symbol, or the zero Symbol if empty.
func (s Sequence) Last() Symbol {
	return s.At(len(s.syms) - 1)
}

// Symbols returns a copy of the underlying symbols.
func (s Sequence) Symbols() []Symbol {
	cp := make([]Symbol, len(s.syms))
	copy(cp, s.syms)
	return cp
}

// Append returns a new sequence with the symbol added at the end.
func (s Sequence) Append(sym Symbol) Sequence {
	syms := make([]Symbol, len(s.syms)+1)
	copy(syms, s.syms)
	syms[len(s.syms)] = sym
	return Sequence{syms: syms}
}

// Concat returns a new sequence of s followed by other.
func (s Sequence) Concat(other Sequence) Sequence {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	syms := make([]Symbol, len(s.syms)+len(other.syms))
	copy(syms, s.syms)
	copy(syms[len(s.syms):], other.syms)
	return Sequence{syms: syms}
}

// Slice returns a new sequence covering [start, end).
// Bounds are clamped to the sequence length.
func (s Sequence) Slice(start, end int) Sequence {
	if start < 0 {
		start = 0
	}
	if end > len(s.syms) {
		end = len(s.syms)
	}
	if start >= end {
		return Sequence{}
	}
	syms := make([]Symbol, end-start)
	copy(syms, s.syms[start:end])
	return Sequence{syms: syms}
}

// Head returns a new sequence with only the first n symbols.
func (s Sequence) Head(n int) Sequence {
	return s.Slice(0, n)
}

// Tail returns a new sequence without the first n symbols.
func (s Sequence) Tail(n int) Sequence {
	return s.Slice(n, len(s.syms))
}

// Equal returns true if both sequences contain the same ordered symbols.
func (s Sequence) Equal(other Sequence) bool {
	if len(s.syms) != len(other.syms) {
		return false
	}
	for i, sym := range s.syms {
		if sym != other.syms[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if s starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix.syms) > len(s.syms) {
		return false
	}
	for i, sym := range prefix.syms {
		if sym != s.syms[i] {
			return false
		}
	}
	return true
}

// IsStrictPrefixOf returns true if s is a prefix of other and shorter
// than it.
func (s Sequence) IsStrictPrefixOf(other Sequence) bool {
	return len(s.syms) < len(other.syms) && other.HasPrefix(s)
}

// String returns the Vim-notation display form, e.g. "dd", "<C-w>k".
func (s Sequence) String() string {
	if len(s.syms) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, sym := range s.syms {
		sb.WriteString(sym.String())
	}
	return sb.String()
}

// AsString returns the sequence as plain text if it contains only
// unmodified rune symbols. Returns false otherwise.
func (s Sequence) AsString() (string, bool) {
	if len(s.syms) == 0 {
		return "", false
	}
	var sb strings.Builder
	for _, sym := range s.syms {
		if !sym.IsRune() || sym.IsModified() {
			return "", false
		}
		sb.WriteRune(sym.Rune)
	}
	return sb.String(), true
}

package key

import "testing"

func TestSymbolEquality(t *testing.T) {
	tests := []struct {
		name string
		a, b Symbol
		want bool
	}{
		{"same rune", NewRune('a'), NewRune('a'), true},
		{"different rune", NewRune('a'), NewRune('b'), false},
		{"case sensitive", NewRune('a'), NewRune('A'), false},
		{"same named", NewNamed(NamedEscape, ModNone), Escape, true},
		{"modifier differs", NewRune('a'), NewRuneMod('a', ModCtrl), false},
		{"named vs rune", NewNamed(NamedEnter, ModNone), NewRune('\r'), false},
		{"ctrl combos", NewRuneMod('w', ModCtrl), NewRuneMod('w', ModCtrl), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a == tt.b; got != tt.want {
				t.Errorf("(%v == %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSymbolString(t *testing.T) {
	tests := []struct {
		name string
		sym  Symbol
		want string
	}{
		{"plain rune", NewRune('a'), "a"},
		{"uppercase rune", NewRune('G'), "G"},
		{"space", NewRune(' '), "<Space>"},
		{"less than", NewRune('<'), "<lt>"},
		{"escape", Escape, "<Esc>"},
		{"ctrl rune", NewRuneMod('w', ModCtrl), "<C-w>"},
		{"ctrl alt rune", NewRuneMod('x', ModCtrl|ModAlt), "<C-A-x>"},
		{"shift tab", NewNamed(NamedTab, ModShift), "<S-Tab>"},
		{"enter", NewNamed(NamedEnter, ModNone), "<CR>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sym.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSymbolPredicates(t *testing.T) {
	if !NewRune('5').IsDigit() {
		t.Error("expected '5' to be a digit")
	}
	if NewRune('x').IsDigit() {
		t.Error("expected 'x' not to be a digit")
	}
	if !Escape.IsEscape() {
		t.Error("expected Escape to report IsEscape")
	}
	if NewNamed(NamedEscape, ModCtrl).IsEscape() {
		t.Error("modified Escape must not report IsEscape")
	}

	// Shift alone does not count as modified for character keys.
	if NewRuneMod('A', ModShift).IsModified() {
		t.Error("shifted rune should not be modified")
	}
	if !NewRuneMod('a', ModCtrl).IsModified() {
		t.Error("ctrl rune should be modified")
	}
	if !NewNamed(NamedTab, ModShift).IsModified() {
		t.Error("shifted named key should be modified")
	}
}

// Package key defines the symbol model for key input: a Symbol is a
// single logical key press (character or named key plus modifiers) and a
// Sequence is an immutable ordered list of symbols with structural
// equality and prefix comparison. The package also parses Vim-style key
// notation ("dd", "<C-w>k") used by binding and mapping definitions.
package key

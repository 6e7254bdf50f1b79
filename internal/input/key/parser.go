package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// ParseSymbol parses a single key specification into a Symbol.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Vim-style bracket notation: "<C-s>", "<A-f>", "<C-S-F4>", "<CR>", "<Esc>"
//   - Named aliases: "<Enter>", "<Return>", "<BS>", "<Space>", "<lt>"
func ParseSymbol(spec string) (Symbol, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Symbol{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	runes := []rune(spec)
	if len(runes) != 1 {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return NewRune(runes[0]), nil
}

// parseBracketed parses the inside of <...> notation like "C-s", "S-Tab", "CR".
func parseBracketed(inner string) (Symbol, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Symbol{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")

	// A trailing empty part means the key itself is '-', e.g. "<C-->".
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 1 {
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromString(p)
		if mod == ModNone {
			return Symbol{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyPart(keyPart, mods)
}

// parseKeyPart resolves the key name portion with already-parsed modifiers.
func parseKeyPart(keyPart string, mods Modifier) (Symbol, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Symbol{}, ErrInvalidSpec
	}

	// Literal-character aliases.
	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneMod(' ', mods), nil
	case "lt":
		return NewRuneMod('<', mods), nil
	case "gt":
		return NewRuneMod('>', mods), nil
	case "bar":
		return NewRuneMod('|', mods), nil
	case "bslash":
		return NewRuneMod('\\', mods), nil
	}

	if n := NamedFromString(keyPart); n != NamedNone {
		return NewNamed(n, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		// Ctrl combinations are case-insensitive.
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneMod(r, mods), nil
	}

	return Symbol{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseSequence parses a key-sequence string into a Sequence.
// The string is a run of single characters and bracketed specials.
// Examples: "dd", "gg", "<C-w>k", "ciw", "<Space>f"
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sequence{}, nil
	}

	var syms []Symbol
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == '<' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '>' {
					end = j
					break
				}
			}
			if end > i+1 {
				sym, err := parseBracketed(string(runes[i+1 : end]))
				if err != nil {
					return Sequence{}, err
				}
				syms = append(syms, sym)
				i = end + 1
				continue
			}
			// No closing '>': treat as a literal '<'.
		}
		syms = append(syms, NewRune(runes[i]))
		i++
	}

	return Sequence{syms: syms}, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

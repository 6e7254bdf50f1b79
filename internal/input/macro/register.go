package macro

import "unicode"

// IsValidRegister returns true if the rune can hold a macro: ASCII
// letters and digits, following the usual register conventions.
func IsValidRegister(register rune) bool {
	switch {
	case register >= 'a' && register <= 'z':
		return true
	case register >= 'A' && register <= 'Z':
		return true
	case register >= '0' && register <= '9':
		return true
	default:
		return false
	}
}

// IsAppendRegister returns true for uppercase registers, which append
// to their lowercase register when recorded into.
func IsAppendRegister(register rune) bool {
	return register >= 'A' && register <= 'Z'
}

// Normalize folds a register name to its canonical lowercase form, or
// 0 for an invalid name.
func Normalize(register rune) rune {
	if !IsValidRegister(register) {
		return 0
	}
	return unicode.ToLower(register)
}

package motion

import (
	"fmt"

	"github.com/dshills/vimkit/internal/input/bind"
	"github.com/dshills/vimkit/internal/input/key"
)

// Scope is the remap scope motion capture reads from.
const Scope = "operator-pending"

// motionKeys maps single trigger runes to motion kinds.
var motionKeys = map[rune]Kind{
	'h': KindLeft,
	'l': KindRight,
	'k': KindUp,
	'j': KindDown,
	'w': KindWordForward,
	'b': KindWordBackward,
	'e': KindWordEnd,
	'0': KindLineStart,
	'^': KindFirstNonBlank,
	'$': KindLineEnd,
	'G': KindDocumentEnd,
	'f': KindFindChar,
	'F': KindFindCharBack,
	't': KindTillChar,
	'T': KindTillCharBack,
	'}': KindParagraphForward,
	'{': KindParagraphBackward,
	'%': KindMatchPair,
}

// gMotionKeys maps the second rune of g-prefixed motions.
var gMotionKeys = map[rune]Kind{
	'g': KindDocumentStart, // gg
	'_': KindLineEnd,
}

// namedKeys maps non-character keys to motion kinds.
var namedKeys = map[key.Named]Kind{
	key.NamedLeft:  KindLeft,
	key.NamedRight: KindRight,
	key.NamedUp:    KindUp,
	key.NamedDown:  KindDown,
	key.NamedHome:  KindLineStart,
	key.NamedEnd:   KindLineEnd,
}

// Capture returns a consumer that parses one motion, including an
// optional leading count and the one-symbol argument of the
// character-search family. The cancel key aborts at any point.
func Capture() bind.Data[Captured] {
	return captureWithCount(0)
}

// CaptureTarget returns a consumer that reads the target character
// for a character-search motion whose kind is already known. It is
// used when the motion key itself was matched as a command trigger.
func CaptureTarget(kind Kind) bind.Data[Captured] {
	return captureChar(kind, 0)
}

// captureWithCount continues capture with an accumulated count.
func captureWithCount(count int) bind.Data[Captured] {
	return bind.Single(Scope, func(sym key.Symbol) bind.Result[Captured] {
		// Count accumulation: 1-9 start a count, 0 only continues one
		// (a bare 0 is the line-start motion).
		if sym.IsDigit() {
			d := int(sym.Rune - '0')
			if count > 0 {
				return bind.More(captureWithCount(count*10 + d))
			}
			if d > 0 {
				return bind.More(captureWithCount(d))
			}
		}

		kind, ok := lookupKind(sym)
		if !ok {
			if sym.IsRune() && sym.Rune == 'g' {
				return bind.More(captureGPrefix(count))
			}
			return bind.Failed[Captured](fmt.Errorf("%w: %s", ErrUnknownMotion, sym))
		}

		if kind.NeedsChar() {
			return bind.More(captureChar(kind, count))
		}

		return bind.Complete(Captured{
			Motion: Motion{Kind: kind},
			Count:  count,
		})
	})
}

// captureGPrefix parses the symbol after a leading 'g'.
func captureGPrefix(count int) bind.Data[Captured] {
	return bind.Single(Scope, func(sym key.Symbol) bind.Result[Captured] {
		if sym.IsRune() {
			if kind, ok := gMotionKeys[sym.Rune]; ok {
				return bind.Complete(Captured{
					Motion: Motion{Kind: kind},
					Count:  count,
				})
			}
		}
		return bind.Failed[Captured](fmt.Errorf("%w: g%s", ErrUnknownMotion, sym))
	})
}

// captureChar parses the target character of a character-search motion.
func captureChar(kind Kind, count int) bind.Data[Captured] {
	return bind.Single(Scope, func(sym key.Symbol) bind.Result[Captured] {
		if !sym.IsChar() {
			return bind.Failed[Captured](fmt.Errorf("%w: %s", ErrBadSearchTarget, sym))
		}
		return bind.Complete(Captured{
			Motion: Motion{Kind: kind, Char: sym.Rune},
			Count:  count,
		})
	})
}

// lookupKind resolves a symbol to a motion kind.
func lookupKind(sym key.Symbol) (Kind, bool) {
	if sym.IsRune() && !sym.IsModified() {
		kind, ok := motionKeys[sym.Rune]
		return kind, ok
	}
	kind, ok := namedKeys[sym.Name]
	return kind, ok
}

// IsMotionStart returns true if the symbol can begin a motion.
func IsMotionStart(sym key.Symbol) bool {
	if _, ok := lookupKind(sym); ok {
		return true
	}
	if sym.IsRune() && !sym.IsModified() {
		return sym.Rune == 'g' || (sym.Rune >= '1' && sym.Rune <= '9')
	}
	return false
}

package motion

import "errors"

var (
	// ErrUnknownMotion is returned when a symbol starts no motion.
	ErrUnknownMotion = errors.New("unknown motion")

	// ErrBadSearchTarget is returned when a character-search motion
	// receives a non-character symbol as its target.
	ErrBadSearchTarget = errors.New("invalid search target")

	// ErrCharNotFound is returned when a character-search motion's
	// target does not occur on the caret line.
	ErrCharNotFound = errors.New("character not found")

	// ErrNoPair is returned when no bracket pair is matchable at the
	// caret.
	ErrNoPair = errors.New("no matching pair")

	// ErrCannotMove is returned when a motion does not change the
	// caret position.
	ErrCannotMove = errors.New("cannot move")
)

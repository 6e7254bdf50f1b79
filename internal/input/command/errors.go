package command

import "errors"

var (
	// ErrDuplicateTrigger is returned when a registry already holds a
	// binding with an identical trigger sequence.
	ErrDuplicateTrigger = errors.New("duplicate trigger")

	// ErrEmptyTrigger is returned for a binding with no trigger keys.
	ErrEmptyTrigger = errors.New("empty trigger")

	// ErrNoBinding is returned when an accumulated sequence matches no
	// binding and cannot be extended into one.
	ErrNoBinding = errors.New("no matching binding")

	// ErrBadRegister is returned when the register prefix is followed
	// by a symbol that cannot name a register.
	ErrBadRegister = errors.New("invalid register name")

	// ErrMotionFailed is returned when an operator's motion could not
	// produce a result for the current caret.
	ErrMotionFailed = errors.New("motion evaluation failed")

	// ErrExecution is returned when a fully resolved command fails
	// while acting on the buffer.
	ErrExecution = errors.New("command execution failed")
)

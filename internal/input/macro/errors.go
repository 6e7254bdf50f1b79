package macro

import "errors"

var (
	// ErrInvalidRegister is returned for a rune that cannot hold a
	// macro.
	ErrInvalidRegister = errors.New("invalid macro register")

	// ErrAlreadyRecording is returned when a recording is already in
	// progress.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrEmptyRegister is returned when replaying a register that
	// holds nothing.
	ErrEmptyRegister = errors.New("empty macro register")

	// ErrNilHandler is returned when Play is given no handler.
	ErrNilHandler = errors.New("nil replay handler")

	// ErrReplayHalted wraps the handler error that aborted a replay.
	ErrReplayHalted = errors.New("macro replay halted")

	// ErrReplayTooDeep is returned when nested replays exceed
	// MaxDepth.
	ErrReplayTooDeep = errors.New("macro replay too deep")

	// ErrNothingPlayed is returned by PlayLast before any macro has
	// been played.
	ErrNothingPlayed = errors.New("no macro has been played")
)

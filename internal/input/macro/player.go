package macro

import (
	"fmt"

	"github.com/dshills/vimkit/internal/input/key"
)

// Handler processes one replayed symbol. Returning an error halts the
// replay immediately; remaining symbols and repetitions are dropped.
type Handler func(key.Symbol) error

// Player replays recorded macros synchronously through a handler.
// Replay is re-entrant up to a fixed depth so a macro may itself
// trigger another macro.
type Player struct {
	recorder *Recorder
	depth    int
}

// MaxDepth bounds nested macro replay.
const MaxDepth = 10

// NewPlayer creates a player over a recorder's registers.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder}
}

// Play replays a register's macro count times (minimum 1), delivering
// each symbol to the handler in order. A handler error aborts the
// replay and is returned wrapped in ErrReplayHalted.
func (p *Player) Play(register rune, count int, handler Handler) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %c", ErrInvalidRegister, register)
	}
	seq := p.recorder.Get(register)
	if seq.IsEmpty() {
		return fmt.Errorf("%w: %c", ErrEmptyRegister, register)
	}
	if handler == nil {
		return ErrNilHandler
	}

	if p.depth >= MaxDepth {
		return fmt.Errorf("%w: depth %d", ErrReplayTooDeep, p.depth)
	}
	p.depth++
	defer func() { p.depth-- }()

	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		for _, sym := range seq.Symbols() {
			if err := handler(sym); err != nil {
				return fmt.Errorf("%w: %v", ErrReplayHalted, err)
			}
		}
	}

	p.recorder.setLastPlayed(register)
	return nil
}

// PlayLast replays the most recently played macro, as @@ does.
func (p *Player) PlayLast(count int, handler Handler) error {
	register := p.recorder.LastPlayed()
	if register == 0 {
		return ErrNothingPlayed
	}
	return p.Play(register, count, handler)
}

// IsPlaying returns true while a replay is in progress.
func (p *Player) IsPlaying() bool {
	return p.depth > 0
}

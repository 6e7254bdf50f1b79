package macro

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/dshills/vimkit/internal/input/key"
)

// Recorder records key symbol sequences into macro registers.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	appending  bool
	register   rune
	pending    []key.Symbol
	registers  map[rune][]key.Symbol
	lastPlayed rune
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{registers: make(map[rune][]key.Symbol)}
}

// Start begins recording into a register. An uppercase register
// appends to its lowercase register when the recording stops.
func (r *Recorder) Start(register rune) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %c", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w: register %c", ErrAlreadyRecording, r.register)
	}

	r.recording = true
	r.appending = unicode.IsUpper(register)
	r.register = unicode.ToLower(register)
	r.pending = nil
	return nil
}

// Stop ends the recording and saves it. The recorded symbols are
// returned; an empty recording clears nothing.
func (r *Recorder) Stop() key.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return key.Sequence{}
	}
	r.recording = false

	if len(r.pending) > 0 {
		if r.appending {
			r.registers[r.register] = append(r.registers[r.register], r.pending...)
		} else {
			saved := make([]key.Symbol, len(r.pending))
			copy(saved, r.pending)
			r.registers[r.register] = saved
		}
	}
	recorded := key.NewSequence(r.pending...)
	r.pending = nil
	return recorded
}

// IsRecording returns true while a recording is in progress.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Target returns the register being recorded to, or 0 when idle.
func (r *Recorder) Target() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return r.register
}

// Record appends one symbol to the in-progress recording. It does
// nothing when not recording.
func (r *Recorder) Record(sym key.Symbol) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.pending = append(r.pending, sym)
	}
}

// Get returns the macro stored in a register.
func (r *Recorder) Get(register rune) key.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return key.NewSequence(r.registers[unicode.ToLower(register)]...)
}

// Set replaces a register's macro. An empty sequence clears it.
func (r *Recorder) Set(register rune, seq key.Sequence) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %c", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	register = unicode.ToLower(register)
	if seq.IsEmpty() {
		delete(r.registers, register)
		return nil
	}
	r.registers[register] = seq.Symbols()
	return nil
}

// Has returns true if the register holds a macro.
func (r *Recorder) Has(register rune) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.registers[unicode.ToLower(register)]) > 0
}

// Registers returns the registers that hold macros.
func (r *Recorder) Registers() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]rune, 0, len(r.registers))
	for reg, syms := range r.registers {
		if len(syms) > 0 {
			out = append(out, reg)
		}
	}
	return out
}

// Clear empties all registers.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers = make(map[rune][]key.Symbol)
}

func (r *Recorder) setLastPlayed(register rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPlayed = register
}

// LastPlayed returns the most recently replayed register, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

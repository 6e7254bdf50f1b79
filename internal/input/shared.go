package input

import (
	"errors"
	"sync"

	"github.com/dshills/vimkit/internal/input/macro"
	"github.com/dshills/vimkit/internal/input/register"
	"github.com/dshills/vimkit/internal/input/remap"
	"github.com/dshills/vimkit/internal/selection"
)

// ErrMarkNotSet reports a jump to a mark that holds no position.
var ErrMarkNotSet = errors.New("mark not set")

// Marks stores named caret positions. Lowercase marks are the usual
// per-buffer marks; the store itself does not distinguish.
type Marks struct {
	mu        sync.RWMutex
	positions map[rune]selection.Position
}

// NewMarks creates an empty mark store.
func NewMarks() *Marks {
	return &Marks{positions: make(map[rune]selection.Position)}
}

// Set records a mark.
func (m *Marks) Set(name rune, pos selection.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[name] = pos
}

// Get returns a mark's position.
func (m *Marks) Get(name rune) (selection.Position, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.positions[name]
	return pos, ok
}

// Delete removes a mark.
func (m *Marks) Delete(name rune) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, name)
}

// Shared is the process-wide state independent interpreter instances
// share: registers, marks, macros, mapping tables, and the last search
// pattern. Each resource serializes its own access so any view's
// interpretation step may use it.
type Shared struct {
	Registers *register.Store
	Marks     *Marks
	Macros    *macro.Recorder

	// Remaps is the process-wide mapping table set. Writers go through
	// the engine's own lock; interpreters only resolve against it.
	Remaps *remap.Engine

	mu         sync.RWMutex
	lastSearch string
	onSearch   []func(pattern string)
}

// NewShared creates the shared state for a process.
func NewShared() *Shared {
	return &Shared{
		Registers: register.NewStore(),
		Marks:     NewMarks(),
		Macros:    macro.NewRecorder(),
		Remaps:    remap.NewEngine(),
	}
}

// LastSearch returns the most recent search pattern.
func (s *Shared) LastSearch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSearch
}

// SetLastSearch records a search pattern, mirrors it into the search
// register, and notifies the registered hooks.
func (s *Shared) SetLastSearch(pattern string) {
	s.mu.Lock()
	s.lastSearch = pattern
	hooks := s.onSearch
	s.mu.Unlock()

	s.Registers.RecordSearch(pattern)
	for _, fn := range hooks {
		fn(pattern)
	}
}

// OnSearchChange registers a hook invoked after the search pattern
// changes. Hooks accumulate; there is no removal.
func (s *Shared) OnSearchChange(fn func(pattern string)) {
	s.mu.Lock()
	s.onSearch = append(s.onSearch, fn)
	s.mu.Unlock()
}

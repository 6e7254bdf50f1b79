package mode

import (
	"fmt"
	"sync"
)

// ChangeFunc observes completed mode switches.
type ChangeFunc func(from, to string)

// Manager tracks the active mode and runs transition hooks. A small
// stack supports temporary modes that restore their predecessor.
type Manager struct {
	mu        sync.RWMutex
	modes     map[string]Mode
	current   string
	previous  string
	stack     []string
	callbacks []ChangeFunc
}

// NewManager creates a manager with the given modes registered. The
// first mode becomes current without running its enter hook.
func NewManager(modes ...Mode) (*Manager, error) {
	if len(modes) == 0 {
		return nil, fmt.Errorf("no modes given")
	}
	m := &Manager{modes: make(map[string]Mode, len(modes))}
	for _, md := range modes {
		if md.Name == "" {
			return nil, fmt.Errorf("mode with empty name")
		}
		if _, dup := m.modes[md.Name]; dup {
			return nil, fmt.Errorf("duplicate mode %q", md.Name)
		}
		m.modes[md.Name] = md
	}
	m.current = modes[0].Name
	return m, nil
}

// Register adds or replaces a mode.
func (m *Manager) Register(md Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[md.Name] = md
}

// Get returns a mode by name.
func (m *Manager) Get(name string) (Mode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	md, ok := m.modes[name]
	return md, ok
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[m.current]
}

// CurrentName returns the active mode's name.
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the name of the mode before the last switch.
func (m *Manager) Previous() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Is returns true if the named mode is active.
func (m *Manager) Is(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current == name
}

// Switch leaves the current mode and enters the named one, running
// exit and enter hooks in that order. A hook error aborts the switch
// with the current mode unchanged.
func (m *Manager) Switch(name string) error {
	m.mu.Lock()
	from, to, err := m.transitionLocked(name)
	cbs := append([]ChangeFunc(nil), m.callbacks...)
	m.mu.Unlock()

	if err != nil {
		return err
	}
	for _, cb := range cbs {
		if cb != nil {
			cb(from, to)
		}
	}
	return nil
}

// Push switches to a mode, remembering the current one for Pop.
func (m *Manager) Push(name string) error {
	m.mu.Lock()
	prev := m.current
	from, to, err := m.transitionLocked(name)
	if err == nil {
		m.stack = append(m.stack, prev)
	}
	cbs := append([]ChangeFunc(nil), m.callbacks...)
	m.mu.Unlock()

	if err != nil {
		return err
	}
	for _, cb := range cbs {
		if cb != nil {
			cb(from, to)
		}
	}
	return nil
}

// Pop restores the mode saved by the matching Push.
func (m *Manager) Pop() error {
	m.mu.Lock()
	if len(m.stack) == 0 {
		m.mu.Unlock()
		return fmt.Errorf("mode stack is empty")
	}
	name := m.stack[len(m.stack)-1]
	from, to, err := m.transitionLocked(name)
	if err == nil {
		m.stack = m.stack[:len(m.stack)-1]
	}
	cbs := append([]ChangeFunc(nil), m.callbacks...)
	m.mu.Unlock()

	if err != nil {
		return err
	}
	for _, cb := range cbs {
		if cb != nil {
			cb(from, to)
		}
	}
	return nil
}

// transitionLocked runs the hooks and updates current/previous. The
// caller holds the lock; hooks run under it, matching the cooperative
// single-caller model.
func (m *Manager) transitionLocked(name string) (from, to string, err error) {
	next, ok := m.modes[name]
	if !ok {
		return "", "", fmt.Errorf("unknown mode: %s", name)
	}
	cur := m.modes[m.current]

	if cur.OnExit != nil {
		if err := cur.OnExit(name); err != nil {
			return "", "", fmt.Errorf("exit %s: %w", cur.Name, err)
		}
	}
	if next.OnEnter != nil {
		if err := next.OnEnter(cur.Name); err != nil {
			return "", "", fmt.Errorf("enter %s: %w", next.Name, err)
		}
	}

	m.previous = m.current
	m.current = name
	return m.previous, name, nil
}

// OnChange registers a switch observer. The returned function removes
// it.
func (m *Manager) OnChange(cb ChangeFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, cb)
	idx := len(m.callbacks) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.callbacks) {
			m.callbacks[idx] = nil
		}
	}
}

// Modes returns the registered mode names.
func (m *Manager) Modes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.modes))
	for name := range m.modes {
		names = append(names, name)
	}
	return names
}

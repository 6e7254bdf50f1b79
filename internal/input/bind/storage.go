package bind

import (
	"github.com/dshills/vimkit/internal/input/key"
)

// Storage wraps either an already-built Data or a zero-argument
// activation function. The activation runs exactly once, immediately
// before the first key symbol is delivered. Consumers that must perform
// a side effect before seeing input (entering a visual sub-mode, for
// example) supply an activation function.
type Storage[T any] struct {
	data     Data[T]
	activate func() Data[T]
	active   bool
}

// NewStorage wraps a ready consumer.
func NewStorage[T any](d Data[T]) *Storage[T] {
	return &Storage[T]{data: d, active: true}
}

// NewDeferred wraps an activation function to be run before the first
// symbol is delivered.
func NewDeferred[T any](activate func() Data[T]) *Storage[T] {
	return &Storage[T]{activate: activate}
}

// Get returns the wrapped consumer, running the activation function on
// first call.
func (s *Storage[T]) Get() Data[T] {
	if !s.active {
		s.data = s.activate()
		s.activate = nil
		s.active = true
	}
	return s.data
}

// IsActivated reports whether the activation function has already run
// (always true for Storage built from a ready Data).
func (s *Storage[T]) IsActivated() bool {
	return s.active
}

// Invoke activates if necessary, delivers the symbol, and advances the
// stored consumer when more input is needed.
func (s *Storage[T]) Invoke(sym key.Symbol) Result[T] {
	r := s.Get().Invoke(sym)
	if r.State() == StateMore {
		s.data = r.Next()
	}
	return r
}

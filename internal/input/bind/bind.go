// Package bind implements the generic incremental-parse continuation
// model. A Data[T] consumes one key symbol at a time and reports done,
// need-more-input, error, or cancelled. Every component that parses
// across multiple key events (motion capture, operator arguments,
// register prefixes) is built on this package.
package bind

import (
	"github.com/dshills/vimkit/internal/input/key"
)

// State discriminates the continuation result variants.
type State uint8

const (
	// StateComplete indicates a value was produced.
	StateComplete State = iota

	// StateMore indicates more input is needed.
	StateMore

	// StateError indicates the input could not be parsed.
	StateError

	// StateCancelled indicates the consumer was cancelled.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateComplete:
		return "complete"
	case StateMore:
		return "more"
	case StateError:
		return "error"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// StepFunc consumes one key symbol and reports the parse outcome.
// Step functions must be referentially transparent: invoking one twice
// with the same symbol in the same state yields the same result and
// mutates no shared state, so unconsumed input can be buffered and
// replayed safely.
type StepFunc[T any] func(key.Symbol) Result[T]

// Data is a suspended key consumer: an optional remap scope plus the
// step function that processes the next symbol.
type Data[T any] struct {
	// Scope is the remap scope applied to symbols delivered to this
	// consumer. Empty means the caller's ambient scope.
	Scope string

	// Step processes the next symbol.
	Step StepFunc[T]
}

// Invoke delivers one symbol to the consumer.
func (d Data[T]) Invoke(sym key.Symbol) Result[T] {
	return d.Step(sym)
}

// IsZero returns true if the Data has no step function.
func (d Data[T]) IsZero() bool {
	return d.Step == nil
}

// Result is the outcome of delivering one symbol to a Data.
type Result[T any] struct {
	state State
	value T
	next  Data[T]
	err   error
}

// Complete produces a finished result carrying the parsed value.
func Complete[T any](value T) Result[T] {
	return Result[T]{state: StateComplete, value: value}
}

// More produces a suspended result; the caller delivers the next symbol
// to the returned continuation.
func More[T any](next Data[T]) Result[T] {
	return Result[T]{state: StateMore, next: next}
}

// MoreFunc is shorthand for More with a bare step function in the same
// scope.
func MoreFunc[T any](scope string, step StepFunc[T]) Result[T] {
	return Result[T]{state: StateMore, next: Data[T]{Scope: scope, Step: step}}
}

// Failed produces an error result.
func Failed[T any](err error) Result[T] {
	return Result[T]{state: StateError, err: err}
}

// Cancelled produces a cancelled result.
func Cancelled[T any]() Result[T] {
	return Result[T]{state: StateCancelled}
}

// State returns the result variant.
func (r Result[T]) State() State {
	return r.state
}

// Value returns the parsed value. Valid only for StateComplete.
func (r Result[T]) Value() T {
	return r.value
}

// Next returns the continuation. Valid only for StateMore.
func (r Result[T]) Next() Data[T] {
	return r.next
}

// Err returns the parse error, or nil for non-error results.
func (r Result[T]) Err() error {
	return r.err
}

// Single builds a one-symbol consumer. The cancel key (Escape) is
// intercepted before the completion function ever sees it and yields
// Cancelled.
func Single[T any](scope string, complete func(key.Symbol) Result[T]) Data[T] {
	return Data[T]{
		Scope: scope,
		Step: func(sym key.Symbol) Result[T] {
			if sym.IsEscape() {
				return Cancelled[T]()
			}
			return complete(sym)
		},
	}
}

// Map transforms a consumer's completed value with f, propagating
// More/Error/Cancelled unchanged through nested invocations.
func Map[T, U any](d Data[T], f func(T) U) Data[U] {
	return Data[U]{
		Scope: d.Scope,
		Step: func(sym key.Symbol) Result[U] {
			return mapResult(d.Invoke(sym), f)
		},
	}
}

func mapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	switch r.state {
	case StateComplete:
		return Complete(f(r.value))
	case StateMore:
		return More(Map(r.next, f))
	case StateError:
		return Failed[U](r.err)
	default:
		return Cancelled[U]()
	}
}

// Package command holds the binding registry and the dispatcher that
// matches key sequences against it. The dispatcher resolves counts and
// register prefixes, tolerates ambiguous partial matches, and composes
// operator bindings with a captured motion.
package command

import (
	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/motion"
)

// NoRegister marks command data without a register prefix.
const NoRegister rune = 0

// RegisterPrefix is the key that introduces a register name.
const RegisterPrefix rune = '"'

// Data is the resolved invocation context of one dispatch attempt.
// It is built fresh per attempt and discarded after execution.
type Data struct {
	// Count is the accumulated numeric prefix, 0 when absent.
	Count int

	// Register is the named register, NoRegister when absent.
	Register rune
}

// EffectiveCount returns the count, treating "no count" as 1.
func (d Data) EffectiveCount() int {
	if d.Count <= 0 {
		return 1
	}
	return d.Count
}

// Coalesce tags how a command's register writes combine with adjacent
// commands of the same kind.
type Coalesce uint8

const (
	// CoalesceNone writes registers independently.
	CoalesceNone Coalesce = iota

	// CoalesceDelete participates in delete coalescing.
	CoalesceDelete

	// CoalesceYank participates in yank coalescing.
	CoalesceYank
)

// Exec runs a simple command.
type Exec func(Data) error

// OperatorExec runs an operator command over the span its captured
// motion produced.
type OperatorExec func(Data, motion.Result) error

// Binding associates a trigger sequence with a command producer and
// its capability flags.
type Binding struct {
	// Trigger is the key sequence that fires the binding.
	Trigger key.Sequence

	// Name identifies the command for notifications and display.
	Name string

	// Repeatable marks commands the repeat command may replay.
	Repeatable bool

	// Movement marks commands that only move the caret.
	Movement bool

	// HandlesEscape marks bindings that receive the cancel key
	// instead of cancelling the dispatch.
	HandlesEscape bool

	// LinksToInsert marks commands that end by entering insert mode.
	LinksToInsert bool

	// Coalesce tags delete/yank register coalescing.
	Coalesce Coalesce

	// Exec runs the command. Nil for operator and motion bindings.
	Exec Exec

	// Operator runs the command with a motion result. Non-nil with a
	// zero Motion marks the binding as an operator: matching it
	// activates motion capture instead of executing immediately.
	Operator OperatorExec

	// Motion, when non-zero, makes the binding a fixed-motion
	// command: the motion is evaluated directly (consuming one
	// further symbol for the character-search family) and passed to
	// Operator. Movement commands are built this way.
	Motion motion.Motion
}

// IsOperator returns true if the binding awaits a captured motion
// argument.
func (b Binding) IsOperator() bool {
	return b.Operator != nil && b.Motion.IsZero()
}

package command

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dshills/vimkit/internal/input/bind"
	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/motion"
	"github.com/dshills/vimkit/internal/input/register"
	"github.com/dshills/vimkit/internal/selection"
)

// Host supplies the read-only view state motions evaluate against.
type Host interface {
	motion.Context

	// Caret returns the current caret position.
	Caret() selection.Position
}

// State identifies the dispatcher phase.
type State uint8

const (
	// StateIdle awaits the first symbol of a command.
	StateIdle State = iota

	// StateCount is accumulating a numeric prefix.
	StateCount

	// StateRegister consumes the one symbol naming a register.
	StateRegister

	// StateTrigger holds a partial trigger sequence.
	StateTrigger

	// StateOperator awaits the motion argument of a matched operator.
	StateOperator
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCount:
		return "count"
	case StateRegister:
		return "register"
	case StateTrigger:
		return "trigger"
	case StateOperator:
		return "operator-pending"
	default:
		return "idle"
	}
}

// Status classifies the outcome of feeding one symbol.
type Status uint8

const (
	// StatusMore means the symbol was consumed and more input is
	// needed.
	StatusMore Status = iota

	// StatusExecuted means a command ran.
	StatusExecuted

	// StatusCancelled means the cancel key silently discarded the
	// partial command.
	StatusCancelled

	// StatusFailed means the attempt failed; Err carries the cause.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusExecuted:
		return "executed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "more"
	}
}

// Result reports the outcome of feeding one symbol to the dispatcher.
type Result struct {
	// Status classifies the outcome.
	Status Status

	// Binding is the executed binding for StatusExecuted.
	Binding *Binding

	// Data is the invocation context of an executed command.
	Data Data

	// Motion is the evaluated motion of an executed operator, nil
	// otherwise.
	Motion *motion.Result

	// Err is the failure cause for StatusFailed.
	Err error
}

// ExecutedFunc observes successfully executed commands.
type ExecutedFunc func(Binding, Data)

// Dispatcher is the per-mode state machine matching key symbols
// against a registry. It is driven synchronously by a single caller;
// symbols are processed strictly in arrival order.
type Dispatcher struct {
	registry *Registry
	host     Host
	log      *slog.Logger

	state   State
	count   int
	reg     rune
	partial key.Sequence

	// fallback is the exact match remembered while waiting out an
	// ambiguous longer trigger.
	fallback *Binding

	// pendingOp and capture hold a matched operator awaiting its
	// motion.
	pendingOp *Binding
	opData    Data
	capture   *bind.Storage[motion.Captured]

	onExecuted ExecutedFunc
}

// NewDispatcher creates a dispatcher over a registry and host view.
func NewDispatcher(registry *Registry, host Host) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		host:     host,
		log:      slog.Default().With("component", "dispatcher", "mode", registry.Mode()),
	}
}

// OnExecuted registers an observer invoked after every successful
// command execution.
func (d *Dispatcher) OnExecuted(fn ExecutedFunc) {
	d.onExecuted = fn
}

// State returns the current phase.
func (d *Dispatcher) State() State {
	return d.state
}

// Registry returns the registry the dispatcher matches against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Pending returns the in-progress prefix (count, register, partial
// trigger) for host-side display. Empty when idle.
func (d *Dispatcher) Pending() string {
	var sb strings.Builder
	if d.reg != NoRegister {
		sb.WriteRune(RegisterPrefix)
		sb.WriteRune(d.reg)
	}
	if d.count > 0 {
		sb.WriteString(strconv.Itoa(d.count))
	}
	if d.state == StateOperator {
		sb.WriteString(d.pendingOp.Trigger.String())
	}
	sb.WriteString(d.partial.String())
	return sb.String()
}

// Reset discards all partial state and returns to Idle.
func (d *Dispatcher) Reset() {
	d.state = StateIdle
	d.count = 0
	d.reg = NoRegister
	d.partial = key.Sequence{}
	d.fallback = nil
	d.pendingOp = nil
	d.opData = Data{}
	d.capture = nil
}

// Feed delivers one key symbol. No partial state survives a failed,
// cancelled, or executed attempt.
func (d *Dispatcher) Feed(sym key.Symbol) Result {
	switch d.state {
	case StateRegister:
		return d.feedRegister(sym)
	case StateOperator:
		return d.feedOperator(sym)
	default:
		return d.feedTrigger(sym)
	}
}

func (d *Dispatcher) feedTrigger(sym key.Symbol) Result {
	// The cancel key discards any accumulated prefix. With nothing
	// accumulated it may itself be a bound trigger.
	if sym.IsEscape() && (d.count > 0 || d.reg != NoRegister || !d.partial.IsEmpty()) {
		d.Reset()
		return Result{Status: StatusCancelled}
	}

	if d.partial.IsEmpty() {
		if sym.IsDigit() {
			digit := int(sym.Rune - '0')
			switch {
			case d.count > 0:
				d.count = d.count*10 + digit
				d.state = StateCount
				return Result{Status: StatusMore}
			case digit > 0:
				d.count = digit
				d.state = StateCount
				return Result{Status: StatusMore}
			}
			// A bare 0 falls through as a trigger.
		}
		if sym.IsRune() && sym.Rune == RegisterPrefix && !sym.IsModified() {
			d.state = StateRegister
			return Result{Status: StatusMore}
		}
	}

	d.partial = d.partial.Append(sym)
	b, match := d.registry.Find(d.partial)
	switch match {
	case MatchExact:
		return d.resolve(*b)

	case MatchAmbiguous:
		d.fallback = b
		d.state = StateTrigger
		return Result{Status: StatusMore}

	case MatchPrefix:
		d.fallback = nil
		d.state = StateTrigger
		return Result{Status: StatusMore}

	default:
		if fb := d.fallback; fb != nil {
			// The shorter exact match wins; the symbol that broke
			// the longer trigger is re-dispatched after it.
			d.fallback = nil
			d.partial = key.Sequence{}
			r := d.resolve(*fb)
			if r.Status == StatusFailed {
				return r
			}
			return d.Feed(sym)
		}
		if sym.IsEscape() {
			d.Reset()
			return Result{Status: StatusCancelled}
		}
		seq := d.partial
		d.Reset()
		return d.failed(fmt.Errorf("%w: %s", ErrNoBinding, seq))
	}
}

func (d *Dispatcher) feedRegister(sym key.Symbol) Result {
	if sym.IsEscape() {
		d.Reset()
		return Result{Status: StatusCancelled}
	}
	if !sym.IsChar() || !register.IsValid(sym.Rune) {
		d.Reset()
		return d.failed(fmt.Errorf("%w: %s", ErrBadRegister, sym))
	}
	d.reg = sym.Rune
	d.state = StateTrigger
	return Result{Status: StatusMore}
}

func (d *Dispatcher) feedOperator(sym key.Symbol) Result {
	r := d.capture.Invoke(sym)
	switch r.State() {
	case bind.StateMore:
		return Result{Status: StatusMore}

	case bind.StateCancelled:
		d.Reset()
		return Result{Status: StatusCancelled}

	case bind.StateError:
		err := r.Err()
		d.Reset()
		return d.failed(fmt.Errorf("%w: %v", ErrNoBinding, err))

	default:
		return d.executeOperator(r.Value())
	}
}

// resolve executes a matched binding, or suspends into operator
// pending when the binding requires a motion.
func (d *Dispatcher) resolve(b Binding) Result {
	data := Data{Count: d.count, Register: d.reg}

	if b.IsOperator() {
		d.pendingOp = &b
		d.opData = data
		d.capture = bind.NewStorage(motion.Capture())
		d.state = StateOperator
		d.count = 0
		d.reg = NoRegister
		d.partial = key.Sequence{}
		d.fallback = nil
		return Result{Status: StatusMore}
	}

	if !b.Motion.IsZero() {
		d.pendingOp = &b
		d.opData = data
		if b.Motion.Kind.NeedsChar() {
			d.capture = bind.NewStorage(motion.CaptureTarget(b.Motion.Kind))
			d.state = StateOperator
			d.count = 0
			d.reg = NoRegister
			d.partial = key.Sequence{}
			d.fallback = nil
			return Result{Status: StatusMore}
		}
		return d.executeOperator(motion.Captured{Motion: b.Motion})
	}

	d.Reset()
	if b.Exec != nil {
		if err := b.Exec(data); err != nil {
			return d.failed(fmt.Errorf("%w: %s: %v", ErrExecution, b.Name, err))
		}
	}
	d.notify(b, data)
	return Result{Status: StatusExecuted, Binding: &b, Data: data}
}

// executeOperator merges the captured motion into the pending
// operator's data and runs both as one command. Operator and motion
// counts multiply.
func (d *Dispatcher) executeOperator(captured motion.Captured) Result {
	op := *d.pendingOp
	data := d.opData
	if data.Count > 0 {
		captured.Count = data.Count * captured.EffectiveCount()
	}
	data.Count = captured.Count
	d.Reset()

	res, err := motion.Evaluate(captured, d.host.Caret(), d.host)
	if err != nil {
		return d.failed(fmt.Errorf("%w: %v", ErrMotionFailed, err))
	}

	if err := op.Operator(data, res); err != nil {
		return d.failed(fmt.Errorf("%w: %s: %v", ErrExecution, op.Name, err))
	}
	d.notify(op, data)
	return Result{Status: StatusExecuted, Binding: &op, Data: data, Motion: &res}
}

func (d *Dispatcher) notify(b Binding, data Data) {
	if d.onExecuted != nil {
		d.onExecuted(b, data)
	}
}

func (d *Dispatcher) failed(err error) Result {
	if errors.Is(err, ErrExecution) {
		d.log.Warn("command failed", "error", err)
	} else {
		d.log.Debug("dispatch failed", "error", err)
	}
	return Result{Status: StatusFailed, Err: err}
}

// Package input ties the interpretation pipeline together: remapping,
// dispatch, modes, registers, marks, and macros. One Interpreter
// serves one host view; independent views share process-wide state
// through a Shared instance.
package input

import (
	"fmt"
	"log/slog"

	"github.com/dshills/vimkit/internal/input/command"
	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/macro"
	"github.com/dshills/vimkit/internal/input/mode"
	"github.com/dshills/vimkit/internal/input/remap"
	"github.com/dshills/vimkit/internal/selection"
)

// Host is the surface the interpreter drives. It supplies read-only
// geometry for motion evaluation and the primitive edits commands are
// built from. All methods are called synchronously from ProcessSymbol.
type Host interface {
	command.Host

	// SetCaret moves the caret.
	SetCaret(pos selection.Position)

	// InsertText inserts text at a position.
	InsertText(pos selection.Position, text string) error

	// DeleteSpan removes a character-wise span and returns the
	// removed text.
	DeleteSpan(span selection.Span) (string, error)

	// DeleteLines removes whole lines and returns the removed text
	// without a trailing newline.
	DeleteLines(first, count int) (string, error)
}

// Outcome classifies what ProcessSymbol did with a symbol.
type Outcome uint8

const (
	// OutcomeHandled means the symbol completed or silently cancelled
	// a command; Result.Mode carries the now-active mode.
	OutcomeHandled Outcome = iota

	// OutcomeMore means the symbol was consumed and the interpreter
	// awaits more input.
	OutcomeMore

	// OutcomeNotHandled means the interpreter does not interpret the
	// symbol; the host's default handling (text insertion) applies.
	OutcomeNotHandled

	// OutcomeError means interpretation failed; Result.Err carries
	// the cause and no host state was mutated by the failed attempt.
	OutcomeError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMore:
		return "more"
	case OutcomeNotHandled:
		return "not-handled"
	case OutcomeError:
		return "error"
	default:
		return "handled"
	}
}

// Result reports how one symbol was interpreted.
type Result struct {
	Outcome Outcome

	// Mode is the active mode after processing.
	Mode string

	// Err is the failure cause for OutcomeError.
	Err error
}

// awaitKind tracks an interpreter-level one-symbol argument: the
// register of a macro trigger or the name of a mark.
type awaitKind uint8

const (
	awaitNone awaitKind = iota
	awaitRecord
	awaitPlay
	awaitMarkSet
	awaitMarkJump
	awaitMarkJumpLine
)

// Interpreter is the per-view interpretation pipeline. It is driven
// synchronously: symbols are processed strictly in arrival order by a
// single cooperative caller.
type Interpreter struct {
	host     Host
	shared   *Shared
	remaps   *remap.Engine
	modes    *mode.Manager
	registry map[string]*command.Registry
	dispatch map[string]*command.Dispatcher
	player   *macro.Player
	notifier *Notifier
	log      *slog.Logger

	// pending buffers symbols held back by an ambiguous remap.
	pending key.Sequence

	waiting awaitKind

	// anchor is the fixed end of the active visual selection.
	anchor selection.Position

	// sticky is the column vertical movement tries to return to, -1
	// when no vertical run is in progress.
	sticky int
}

// New creates an interpreter over a host view and shared state. The
// standard modes are registered with empty binding registries; use
// InstallDefaults or Registry to populate them.
func New(host Host, shared *Shared) (*Interpreter, error) {
	modes, err := mode.NewManager(mode.Defaults()...)
	if err != nil {
		return nil, err
	}

	it := &Interpreter{
		host:     host,
		shared:   shared,
		remaps:   shared.Remaps,
		modes:    modes,
		registry: make(map[string]*command.Registry),
		dispatch: make(map[string]*command.Dispatcher),
		player:   macro.NewPlayer(shared.Macros),
		notifier: NewNotifier(),
		log:      slog.Default().With("component", "interpreter"),
		sticky:   -1,
	}

	for _, name := range modes.Modes() {
		it.addMode(name)
	}

	it.remaps.OnChange(func(scope string) {
		it.notifier.Publish(Event{Kind: EventMappingChanged, Scope: scope})
	})
	shared.OnSearchChange(func(pattern string) {
		it.notifier.Publish(Event{Kind: EventSearchChanged, Pattern: pattern})
	})

	return it, nil
}

func (it *Interpreter) addMode(name string) {
	reg := command.NewRegistry(name)
	disp := command.NewDispatcher(reg, it.host)
	disp.OnExecuted(func(b command.Binding, data command.Data) {
		it.notifier.Publish(Event{
			Kind:    EventCommandCompleted,
			Command: b.Name,
			Data:    data,
		})
	})
	it.registry[name] = reg
	it.dispatch[name] = disp
}

// Registry returns the binding registry of a mode, creating an empty
// one for unknown mode names.
func (it *Interpreter) Registry(name string) *command.Registry {
	if _, ok := it.registry[name]; !ok {
		it.addMode(name)
	}
	return it.registry[name]
}

// Remaps returns the process-wide remapping engine held by the shared
// state. Mappings installed through any view apply to all views.
func (it *Interpreter) Remaps() *remap.Engine {
	return it.remaps
}

// Modes returns the mode manager.
func (it *Interpreter) Modes() *mode.Manager {
	return it.modes
}

// Shared returns the process-wide shared state.
func (it *Interpreter) Shared() *Shared {
	return it.shared
}

// Notifications returns the notifier for event subscriptions.
func (it *Interpreter) Notifications() *Notifier {
	return it.notifier
}

// Mode returns the active mode name.
func (it *Interpreter) Mode() string {
	return it.modes.CurrentName()
}

// SwitchMode changes the active mode, discarding any partial command
// of the mode being left.
func (it *Interpreter) SwitchMode(name string) error {
	leaving := it.modes.CurrentName()
	if err := it.modes.Switch(name); err != nil {
		return err
	}
	if d := it.dispatch[leaving]; d != nil {
		d.Reset()
	}
	it.pending = key.Sequence{}
	it.waiting = awaitNone
	return nil
}

// VisualAnchor returns the fixed end of the active visual selection.
// Meaningful only while a visual mode is active.
func (it *Interpreter) VisualAnchor() selection.Position {
	return it.anchor
}

// SetVisualAnchor pins the fixed end of the visual selection.
func (it *Interpreter) SetVisualAnchor(pos selection.Position) {
	it.anchor = pos
}

// BindingsFor returns the trigger sequences bound in a mode, for
// host-side prefix decisions.
func (it *Interpreter) BindingsFor(name string) []key.Sequence {
	reg, ok := it.registry[name]
	if !ok {
		return nil
	}
	return reg.Triggers()
}

// Pending returns the keys of the in-progress command for display.
func (it *Interpreter) Pending() string {
	d := it.dispatch[it.modes.CurrentName()]
	if d == nil {
		return it.pending.String()
	}
	return it.pending.String() + d.Pending()
}

// IsRecording returns true while a macro recording is in progress.
func (it *Interpreter) IsRecording() bool {
	return it.shared.Macros.IsRecording()
}

// ProcessSymbol interprets one key symbol. Remapping is applied while
// no command is in progress; dispatcher state machines consume the
// possibly-expanded symbols; macro record/replay triggers are handled
// at this level.
func (it *Interpreter) ProcessSymbol(sym key.Symbol) Result {
	wasRecording := it.shared.Macros.IsRecording()

	r := it.process(sym)

	// Record the symbol if a recording was and still is in progress,
	// so neither the starting nor the stopping trigger is captured.
	if wasRecording && it.shared.Macros.IsRecording() {
		it.shared.Macros.Record(sym)
	}
	return r
}

func (it *Interpreter) process(sym key.Symbol) Result {
	current := it.modes.Current()
	disp := it.dispatch[current.Name]

	// Interpreter-level one-symbol arguments for macro and mark
	// triggers.
	if it.waiting != awaitNone {
		return it.finishWait(sym)
	}

	// Macro and mark triggers apply in normal mode with no command in
	// progress.
	if current.Name == mode.Normal && disp.State() == command.StateIdle && it.pending.IsEmpty() && sym.IsRune() && !sym.IsModified() {
		switch {
		case sym.Rune == 'q' && it.shared.Macros.IsRecording():
			it.shared.Macros.Stop()
			return it.handled()
		case sym.Rune == 'q':
			it.waiting = awaitRecord
			return Result{Outcome: OutcomeMore, Mode: current.Name}
		case sym.Rune == '@':
			it.waiting = awaitPlay
			return Result{Outcome: OutcomeMore, Mode: current.Name}
		case sym.Rune == 'm':
			it.waiting = awaitMarkSet
			return Result{Outcome: OutcomeMore, Mode: current.Name}
		case sym.Rune == '`':
			it.waiting = awaitMarkJump
			return Result{Outcome: OutcomeMore, Mode: current.Name}
		case sym.Rune == '\'':
			it.waiting = awaitMarkJumpLine
			return Result{Outcome: OutcomeMore, Mode: current.Name}
		}
	}

	// Remapping applies while the dispatcher is idle; a command in
	// progress receives symbols directly.
	if disp.State() == command.StateIdle {
		return it.resolveAndDeliver(sym)
	}
	return it.deliver(disp, sym)
}

// resolveAndDeliver runs the remap engine over the buffered symbols
// and feeds the resolution to the dispatcher.
func (it *Interpreter) resolveAndDeliver(sym key.Symbol) Result {
	current := it.modes.Current()
	it.pending = it.pending.Append(sym)

	res := it.remaps.Resolve(current.Scope, it.pending)
	switch res.Status {
	case remap.StatusNeedsMore:
		return Result{Outcome: OutcomeMore, Mode: current.Name}

	case remap.StatusPartial:
		it.pending = key.Sequence{}
		if r := it.deliverSequence(res.Mapped); r.Outcome == OutcomeError {
			return r
		}
		return it.deliverSequence(res.Rest)

	default:
		// Mapped and Recursive both carry the sequence to use
		// verbatim.
		it.pending = key.Sequence{}
		return it.deliverSequence(res.Mapped)
	}
}

// deliverSequence feeds each symbol to the current mode's dispatcher.
func (it *Interpreter) deliverSequence(seq key.Sequence) Result {
	r := Result{Outcome: OutcomeHandled, Mode: it.modes.CurrentName()}
	for _, sym := range seq.Symbols() {
		disp := it.dispatch[it.modes.CurrentName()]
		r = it.deliver(disp, sym)
		if r.Outcome == OutcomeError {
			return r
		}
	}
	return r
}

// deliver feeds one symbol to a dispatcher and folds the dispatch
// result into an interpretation result.
func (it *Interpreter) deliver(disp *command.Dispatcher, sym key.Symbol) Result {
	current := it.modes.Current()

	// In passthrough modes, symbols that cannot start a binding are
	// the host's to insert.
	if current.Passthrough && disp.State() == command.StateIdle {
		if !disp.Registry().HasPrefix(key.NewSequence(sym)) {
			return Result{Outcome: OutcomeNotHandled, Mode: current.Name}
		}
	}

	res := disp.Feed(sym)
	switch res.Status {
	case command.StatusMore:
		return Result{Outcome: OutcomeMore, Mode: it.modes.CurrentName()}

	case command.StatusFailed:
		it.log.Debug("interpretation failed", "mode", current.Name, "error", res.Err)
		return Result{Outcome: OutcomeError, Mode: it.modes.CurrentName(), Err: res.Err}

	default:
		// Executed and silent cancellation both count as handled.
		return it.handled()
	}
}

// finishWait consumes the one-symbol argument of a macro or mark
// trigger.
func (it *Interpreter) finishWait(sym key.Symbol) Result {
	waiting := it.waiting
	it.waiting = awaitNone

	if sym.IsEscape() {
		return it.handled()
	}
	if !sym.IsChar() {
		return it.fail(fmt.Errorf("%w: %s", macro.ErrInvalidRegister, sym))
	}

	switch waiting {
	case awaitRecord:
		if err := it.shared.Macros.Start(sym.Rune); err != nil {
			return it.fail(err)
		}
		return it.handled()

	case awaitMarkSet:
		it.shared.Marks.Set(sym.Rune, it.host.Caret())
		return it.handled()

	case awaitMarkJump, awaitMarkJumpLine:
		pos, ok := it.shared.Marks.Get(sym.Rune)
		if !ok {
			return it.fail(fmt.Errorf("%w: %c", ErrMarkNotSet, sym.Rune))
		}
		if pos.Line >= it.host.LineCount() {
			return it.fail(fmt.Errorf("%w: %c points past the buffer", ErrMarkNotSet, sym.Rune))
		}
		if waiting == awaitMarkJumpLine {
			pos.Column = firstNonBlankColumn(it.host.Line(pos.Line))
		}
		pos.Column = clampColumn(pos.Column, it.host.LineLength(pos.Line))
		it.host.SetCaret(pos)
		return it.handled()

	default:
		var err error
		if sym.Rune == '@' {
			err = it.player.PlayLast(1, it.replayHandler())
		} else {
			err = it.player.Play(sym.Rune, 1, it.replayHandler())
		}
		if err != nil {
			return it.fail(err)
		}
		return it.handled()
	}
}

// replayHandler feeds replayed symbols back through the pipeline,
// halting the replay on the first interpretation error.
func (it *Interpreter) replayHandler() macro.Handler {
	return func(sym key.Symbol) error {
		r := it.ProcessSymbol(sym)
		if r.Outcome == OutcomeError {
			return r.Err
		}
		return nil
	}
}

func (it *Interpreter) handled() Result {
	return Result{Outcome: OutcomeHandled, Mode: it.modes.CurrentName()}
}

func (it *Interpreter) fail(err error) Result {
	it.log.Debug("interpretation failed", "error", err)
	return Result{Outcome: OutcomeError, Mode: it.modes.CurrentName(), Err: err}
}

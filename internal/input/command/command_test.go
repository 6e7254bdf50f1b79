package command

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/motion"
	"github.com/dshills/vimkit/internal/selection"
)

type testHost struct {
	lines []string
	caret selection.Position
}

func (h *testHost) Line(i int) string {
	if i < 0 || i >= len(h.lines) {
		return ""
	}
	return h.lines[i]
}

func (h *testHost) LineLength(i int) int      { return len([]rune(h.Line(i))) }
func (h *testHost) LineCount() int            { return len(h.lines) }
func (h *testHost) Caret() selection.Position { return h.caret }

// executed records one command execution.
type executed struct {
	name   string
	data   Data
	motion *motion.Result
}

type fixture struct {
	registry   *Registry
	dispatcher *Dispatcher
	host       *testHost
	log        []executed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		registry: NewRegistry("normal"),
		host:     &testHost{lines: []string{"alpha beta gamma", "second line"}},
	}

	record := func(name string) Exec {
		return func(d Data) error {
			f.log = append(f.log, executed{name: name, data: d})
			return nil
		}
	}
	operator := func(name string) OperatorExec {
		return func(d Data, m motion.Result) error {
			f.log = append(f.log, executed{name: name, data: d, motion: &m})
			return nil
		}
	}

	bindings := []Binding{
		{Trigger: key.MustParseSequence("x"), Name: "delete-char", Repeatable: true, Coalesce: CoalesceDelete, Exec: record("delete-char")},
		{Trigger: key.MustParseSequence("p"), Name: "put", Repeatable: true, Exec: record("put")},
		{Trigger: key.MustParseSequence("0"), Name: "line-start", Movement: true, Exec: record("line-start")},
		{Trigger: key.MustParseSequence("i"), Name: "insert", LinksToInsert: true, Exec: record("insert")},
		{Trigger: key.MustParseSequence("d"), Name: "delete", Repeatable: true, Coalesce: CoalesceDelete, Operator: operator("delete")},
		{Trigger: key.MustParseSequence("dd"), Name: "delete-line", Repeatable: true, Coalesce: CoalesceDelete, Exec: record("delete-line")},
		{Trigger: key.MustParseSequence("y"), Name: "yank", Coalesce: CoalesceYank, Operator: operator("yank")},
		{Trigger: key.MustParseSequence("gu"), Name: "lowercase", Exec: record("lowercase")},
	}
	for _, b := range bindings {
		if err := f.registry.Register(b); err != nil {
			t.Fatalf("Register(%s): %v", b.Trigger, err)
		}
	}

	f.dispatcher = NewDispatcher(f.registry, f.host)
	return f
}

// feed delivers each rune of input and returns the last result.
func (f *fixture) feed(input string) Result {
	var r Result
	for _, ch := range input {
		r = f.dispatcher.Feed(key.NewRune(ch))
	}
	return r
}

func TestRegistryFind(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		seq  string
		want Match
	}{
		{"x", MatchExact},
		{"d", MatchAmbiguous},
		{"dd", MatchExact},
		{"g", MatchPrefix},
		{"gu", MatchExact},
		{"q", MatchNone},
		{"dx", MatchNone},
	}
	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			b, m := f.registry.Find(key.MustParseSequence(tt.seq))
			if m != tt.want {
				t.Errorf("match = %v, want %v", m, tt.want)
			}
			if (m == MatchExact || m == MatchAmbiguous) && b == nil {
				t.Error("binding = nil for a matched trigger")
			}
		})
	}
}

func TestRegistryDuplicateTrigger(t *testing.T) {
	f := newFixture(t)
	err := f.registry.Register(Binding{Trigger: key.MustParseSequence("x"), Name: "other", Exec: func(Data) error { return nil }})
	if !errors.Is(err, ErrDuplicateTrigger) {
		t.Errorf("err = %v, want ErrDuplicateTrigger", err)
	}
}

func TestRegistryUnregister(t *testing.T) {
	f := newFixture(t)
	if !f.registry.Unregister(key.MustParseSequence("gu")) {
		t.Fatal("Unregister returned false")
	}
	if _, m := f.registry.Find(key.MustParseSequence("g")); m != MatchNone {
		t.Errorf("match after unregister = %v, want none", m)
	}
	if f.registry.Unregister(key.MustParseSequence("gu")) {
		t.Error("second Unregister returned true")
	}
}

func TestDispatchSimple(t *testing.T) {
	f := newFixture(t)
	r := f.feed("x")
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if len(f.log) != 1 || f.log[0].name != "delete-char" {
		t.Fatalf("log = %+v", f.log)
	}
	if f.dispatcher.State() != StateIdle {
		t.Errorf("state = %v, want idle", f.dispatcher.State())
	}
}

func TestDispatchCount(t *testing.T) {
	f := newFixture(t)
	r := f.feed("32x")
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if got := f.log[0].data.Count; got != 32 {
		t.Errorf("count = %d, want 32", got)
	}
}

func TestDispatchZeroIsTrigger(t *testing.T) {
	f := newFixture(t)
	r := f.feed("0")
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if f.log[0].name != "line-start" {
		t.Errorf("executed %q, want line-start", f.log[0].name)
	}

	// After a count has started, 0 extends the count.
	f.log = nil
	if r = f.feed("10x"); r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if got := f.log[0].data.Count; got != 10 {
		t.Errorf("count = %d, want 10", got)
	}
}

func TestDispatchRegisterPrefix(t *testing.T) {
	f := newFixture(t)
	r := f.feed(`"ap`)
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if got := f.log[0].data.Register; got != 'a' {
		t.Errorf("register = %q, want 'a'", got)
	}
}

func TestDispatchRegisterInvalidName(t *testing.T) {
	f := newFixture(t)
	r := f.feed(`"!`)
	if r.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", r.Status)
	}
	if !errors.Is(r.Err, ErrBadRegister) {
		t.Errorf("err = %v, want ErrBadRegister", r.Err)
	}
	if f.dispatcher.State() != StateIdle {
		t.Errorf("state = %v, want idle", f.dispatcher.State())
	}
	if len(f.log) != 0 {
		t.Errorf("commands executed: %+v", f.log)
	}
}

func TestDispatchAmbiguousTrigger(t *testing.T) {
	f := newFixture(t)

	r := f.feed("d")
	if r.Status != StatusMore {
		t.Fatalf("status after d = %v", r.Status)
	}

	// The second d resolves to the longer dd trigger.
	r = f.feed("d")
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if f.log[0].name != "delete-line" {
		t.Errorf("executed %q, want delete-line", f.log[0].name)
	}
}

func TestDispatchOperatorMotion(t *testing.T) {
	f := newFixture(t)

	r := f.feed("dw")
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if f.log[0].name != "delete" {
		t.Fatalf("executed %q, want delete", f.log[0].name)
	}
	if f.log[0].motion == nil {
		t.Fatal("no motion result recorded")
	}

	// Dispatching the concatenated sequence equals evaluating the
	// motion independently from the same caret.
	want, err := motion.Evaluate(
		motion.Captured{Motion: motion.Motion{Kind: motion.KindWordForward}},
		f.host.Caret(), f.host)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if *f.log[0].motion != want {
		t.Errorf("motion = %+v, want %+v", *f.log[0].motion, want)
	}
}

func TestDispatchOperatorCountsMultiply(t *testing.T) {
	f := newFixture(t)

	r := f.feed("2d3w")
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	if got := f.log[0].data.Count; got != 6 {
		t.Errorf("count = %d, want 6", got)
	}

	want, err := motion.Evaluate(
		motion.Captured{Motion: motion.Motion{Kind: motion.KindWordForward}, Count: 6},
		f.host.Caret(), f.host)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if *f.log[0].motion != want {
		t.Errorf("motion = %+v, want %+v", *f.log[0].motion, want)
	}
}

func TestDispatchOperatorCharSearch(t *testing.T) {
	f := newFixture(t)

	r := f.feed("dfb")
	if r.Status != StatusExecuted {
		t.Fatalf("status = %v, err = %v", r.Status, r.Err)
	}
	m := f.log[0].motion
	if m == nil || m.Wise != motion.WiseInclusive {
		t.Fatalf("motion = %+v, want inclusive find", m)
	}
}

func TestDispatchNoMatch(t *testing.T) {
	f := newFixture(t)
	r := f.feed("q")
	if r.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", r.Status)
	}
	if !errors.Is(r.Err, ErrNoBinding) {
		t.Errorf("err = %v, want ErrNoBinding", r.Err)
	}
	if f.dispatcher.State() != StateIdle {
		t.Errorf("state = %v, want idle", f.dispatcher.State())
	}
}

func TestDispatchCancel(t *testing.T) {
	f := newFixture(t)

	for _, prefix := range []string{"3", `"a`, "d", "2df"} {
		t.Run(prefix, func(t *testing.T) {
			f.dispatcher.Reset()
			f.log = nil
			f.feed(prefix)
			r := f.dispatcher.Feed(key.Escape)
			if r.Status != StatusCancelled {
				t.Fatalf("status = %v, want cancelled", r.Status)
			}
			if f.dispatcher.State() != StateIdle {
				t.Errorf("state = %v, want idle", f.dispatcher.State())
			}
			if f.dispatcher.Pending() != "" {
				t.Errorf("pending = %q, want empty", f.dispatcher.Pending())
			}
			if len(f.log) != 0 {
				t.Errorf("commands executed across cancel: %+v", f.log)
			}
		})
	}
}

func TestDispatchMotionFailure(t *testing.T) {
	f := newFixture(t)
	f.host.caret = selection.Position{Line: 1, Column: 0}

	// No 'z' on the caret line.
	r := f.feed("dfz")
	if r.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", r.Status)
	}
	if !errors.Is(r.Err, ErrMotionFailed) {
		t.Errorf("err = %v, want ErrMotionFailed", r.Err)
	}
	if len(f.log) != 0 {
		t.Errorf("operator ran despite motion failure: %+v", f.log)
	}
}

func TestDispatchExecutionError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	if err := f.registry.Register(Binding{
		Trigger: key.MustParseSequence("Q"),
		Name:    "explode",
		Exec:    func(Data) error { return boom },
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	r := f.feed("Q")
	if r.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", r.Status)
	}
	if !errors.Is(r.Err, ErrExecution) {
		t.Errorf("err = %v, want ErrExecution", r.Err)
	}
}

// levelRecorder captures the levels of emitted log records.
type levelRecorder struct {
	mu     sync.Mutex
	levels []slog.Level
}

func (h *levelRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (h *levelRecorder) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.levels = append(h.levels, r.Level)
	return nil
}

func (h *levelRecorder) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *levelRecorder) WithGroup(string) slog.Handler      { return h }

func (h *levelRecorder) has(level slog.Level) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, l := range h.levels {
		if l == level {
			return true
		}
	}
	return false
}

func TestFailureLogLevels(t *testing.T) {
	rec := &levelRecorder{}
	prev := slog.Default()
	slog.SetDefault(slog.New(rec))
	defer slog.SetDefault(prev)

	f := newFixture(t)
	if err := f.registry.Register(Binding{
		Trigger: key.MustParseSequence("Q"),
		Name:    "explode",
		Exec:    func(Data) error { return errors.New("boom") },
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Interpretation failures stay at Debug.
	f.feed("q")
	if rec.has(slog.LevelWarn) {
		t.Fatal("no-binding failure logged at Warn")
	}

	// Execution failures surface at Warn.
	f.feed("Q")
	if !rec.has(slog.LevelWarn) {
		t.Fatal("execution failure not logged at Warn")
	}
}

func TestDispatchPending(t *testing.T) {
	f := newFixture(t)

	f.feed("2")
	if got := f.dispatcher.Pending(); got != "2" {
		t.Errorf("pending = %q, want 2", got)
	}
	f.feed("d")
	if got := f.dispatcher.Pending(); got != "d" {
		t.Errorf("pending = %q, want d", got)
	}
	f.dispatcher.Feed(key.Escape)
	if got := f.dispatcher.Pending(); got != "" {
		t.Errorf("pending = %q, want empty", got)
	}
}

func TestDispatchNotification(t *testing.T) {
	f := newFixture(t)

	var seen []string
	f.dispatcher.OnExecuted(func(b Binding, d Data) {
		seen = append(seen, b.Name)
	})

	f.feed("x")
	f.feed("dw")
	if len(seen) != 2 || seen[0] != "delete-char" || seen[1] != "delete" {
		t.Errorf("notifications = %v", seen)
	}
}

package remap

import (
	"log/slog"
	"sync"

	"github.com/dshills/vimkit/internal/input/key"
)

// DefaultMaxDepth is the default bound on recursive mapping expansion.
const DefaultMaxDepth = 100

// ChangeFunc is notified after a scope's mapping table changes.
type ChangeFunc func(scope string)

// Engine holds the per-scope mapping tables and performs resolution.
// Tables are process-wide shared state; access is serialized internally
// so any interpreter view may call into the engine.
type Engine struct {
	mu       sync.RWMutex
	scopes   map[string]map[string]Mapping // scope -> lhs display form -> mapping
	maxDepth int
	onChange []ChangeFunc
}

// NewEngine creates an engine with the default expansion depth bound.
func NewEngine() *Engine {
	return &Engine{
		scopes:   make(map[string]map[string]Mapping),
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth overrides the recursive expansion depth bound.
// Values below 1 are ignored.
func (e *Engine) SetMaxDepth(depth int) {
	if depth < 1 {
		return
	}
	e.mu.Lock()
	e.maxDepth = depth
	e.mu.Unlock()
}

// OnChange registers a table-changed notification hook. Hooks
// accumulate, one per subscriber; there is no removal.
func (e *Engine) OnChange(fn ChangeFunc) {
	e.mu.Lock()
	e.onChange = append(e.onChange, fn)
	e.mu.Unlock()
}

func (e *Engine) changed(hooks []ChangeFunc, scope string) {
	for _, fn := range hooks {
		fn(scope)
	}
}

// Map installs a mapping. An existing mapping with the same left-hand
// side in the same scope is silently overwritten (last write wins).
func (e *Engine) Map(m Mapping) {
	if m.LHS.IsEmpty() {
		return
	}

	e.mu.Lock()
	table, ok := e.scopes[m.Scope]
	if !ok {
		table = make(map[string]Mapping)
		e.scopes[m.Scope] = table
	}
	table[m.LHS.String()] = m
	hooks := e.onChange
	e.mu.Unlock()

	slog.Debug("mapping installed", "scope", m.Scope, "lhs", m.LHS.String(), "rhs", m.RHS.String())
	e.changed(hooks, m.Scope)
}

// Unmap removes the mapping with the given left-hand side from a scope.
func (e *Engine) Unmap(scope string, lhs key.Sequence) {
	e.mu.Lock()
	var hooks []ChangeFunc
	if table, ok := e.scopes[scope]; ok {
		if _, had := table[lhs.String()]; had {
			delete(table, lhs.String())
			hooks = e.onChange
		}
	}
	e.mu.Unlock()

	e.changed(hooks, scope)
}

// Clear removes all mappings from a scope.
func (e *Engine) Clear(scope string) {
	e.mu.Lock()
	var hooks []ChangeFunc
	if table, ok := e.scopes[scope]; ok && len(table) > 0 {
		delete(e.scopes, scope)
		hooks = e.onChange
	}
	e.mu.Unlock()

	e.changed(hooks, scope)
}

// Mappings returns all mappings in a scope.
func (e *Engine) Mappings(scope string) []Mapping {
	e.mu.RLock()
	defer e.mu.RUnlock()

	table := e.scopes[scope]
	result := make([]Mapping, 0, len(table))
	for _, m := range table {
		result = append(result, m)
	}
	return result
}

// Resolve rewrites seq according to the scope's mapping table.
//
// If seq is a strict prefix of any mapping's left-hand side, resolution
// cannot yet distinguish the longer mapping from a standalone shorter
// command and returns StatusNeedsMore. Otherwise the longest left-hand
// side that prefixes seq is replaced; a leftover suffix is reported
// literally via StatusPartial and is not re-resolved here. Replacement
// repeats for mappings that allow recursive expansion, up to the depth
// bound; exceeding it abandons expansion and returns StatusRecursive
// with the original sequence.
func (e *Engine) Resolve(scope string, seq key.Sequence) Result {
	e.mu.RLock()
	defer e.mu.RUnlock()

	table := e.scopes[scope]
	if len(table) == 0 || seq.IsEmpty() {
		return Result{Status: StatusMapped, Mapped: seq}
	}

	// Ambiguity: a longer mapping could still match.
	for _, m := range table {
		if seq.IsStrictPrefixOf(m.LHS) {
			return Result{Status: StatusNeedsMore, Mapped: seq}
		}
	}

	cur := seq
	var rest key.Sequence
	first := true
	for depth := 0; ; depth++ {
		if depth >= e.maxDepth {
			return Result{Status: StatusRecursive, Mapped: seq}
		}

		m, ok := longestPrefixMapping(table, cur)
		if !ok {
			break
		}

		tail := cur.Tail(m.LHS.Len())
		if first {
			// The top-level literal remainder is reported to the
			// caller, never re-resolved here.
			rest = tail
			first = false
			cur = m.RHS
		} else {
			cur = m.RHS.Concat(tail)
		}

		if !m.Recursive {
			break
		}
	}

	if !rest.IsEmpty() {
		return Result{Status: StatusPartial, Mapped: cur, Rest: rest}
	}
	return Result{Status: StatusMapped, Mapped: cur}
}

// longestPrefixMapping finds the mapping whose left-hand side is the
// longest prefix of seq.
func longestPrefixMapping(table map[string]Mapping, seq key.Sequence) (Mapping, bool) {
	var best Mapping
	found := false
	for _, m := range table {
		if !seq.HasPrefix(m.LHS) {
			continue
		}
		if !found || m.LHS.Len() > best.LHS.Len() {
			best = m
			found = true
		}
	}
	return best, found
}

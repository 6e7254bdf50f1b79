package command

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/vimkit/internal/input/key"
)

// Match classifies a registry lookup.
type Match uint8

const (
	// MatchNone means the sequence matches nothing and extends
	// nothing.
	MatchNone Match = iota

	// MatchExact means the sequence is a trigger and no longer
	// trigger extends it.
	MatchExact

	// MatchAmbiguous means the sequence is a trigger and is also a
	// strict prefix of longer triggers.
	MatchAmbiguous

	// MatchPrefix means the sequence is a strict prefix of at least
	// one trigger but is not a trigger itself.
	MatchPrefix
)

// String returns the match class name.
func (m Match) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchAmbiguous:
		return "ambiguous"
	case MatchPrefix:
		return "prefix"
	default:
		return "none"
	}
}

// Registry holds the bindings of one mode, indexed by a prefix tree
// over key symbols for incremental lookup.
type Registry struct {
	mu   sync.RWMutex
	mode string
	root *triggerNode
}

type triggerNode struct {
	children map[string]*triggerNode
	binding  *Binding
}

func newTriggerNode() *triggerNode {
	return &triggerNode{children: make(map[string]*triggerNode)}
}

// NewRegistry creates an empty registry for a mode.
func NewRegistry(mode string) *Registry {
	return &Registry{mode: mode, root: newTriggerNode()}
}

// Mode returns the mode the registry serves.
func (r *Registry) Mode() string {
	return r.mode
}

// Register adds a binding. Triggers are unique within a registry;
// registering a trigger twice is an error, not an overwrite.
func (r *Registry) Register(b Binding) error {
	if b.Trigger.IsEmpty() {
		return ErrEmptyTrigger
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.root
	for _, sym := range b.Trigger.Symbols() {
		step := sym.String()
		child, ok := node.children[step]
		if !ok {
			child = newTriggerNode()
			node.children[step] = child
		}
		node = child
	}
	if node.binding != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateTrigger, b.Trigger)
	}
	node.binding = &b
	return nil
}

// Unregister removes the binding with the given trigger, pruning any
// tree path it leaves empty. It reports whether a binding was removed.
func (r *Registry) Unregister(trigger key.Sequence) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	syms := trigger.Symbols()
	path := make([]*triggerNode, 0, len(syms)+1)
	path = append(path, r.root)

	node := r.root
	for _, sym := range syms {
		child, ok := node.children[sym.String()]
		if !ok {
			return false
		}
		path = append(path, child)
		node = child
	}
	if node.binding == nil {
		return false
	}
	node.binding = nil

	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.binding != nil || len(cur.children) > 0 {
			break
		}
		parent := path[i-1]
		delete(parent.children, syms[i-1].String())
	}
	return true
}

// Find classifies a sequence against the registered triggers. The
// returned binding is non-nil for MatchExact and MatchAmbiguous.
func (r *Registry) Find(seq key.Sequence) (*Binding, Match) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node := r.root
	for _, sym := range seq.Symbols() {
		child, ok := node.children[sym.String()]
		if !ok {
			return nil, MatchNone
		}
		node = child
	}

	extendable := len(node.children) > 0
	switch {
	case node.binding != nil && extendable:
		return node.binding, MatchAmbiguous
	case node.binding != nil:
		return node.binding, MatchExact
	case extendable:
		return nil, MatchPrefix
	default:
		return nil, MatchNone
	}
}

// HasPrefix reports whether any trigger starts with the sequence.
func (r *Registry) HasPrefix(seq key.Sequence) bool {
	_, m := r.Find(seq)
	return m != MatchNone
}

// Bindings returns all registered bindings ordered by trigger.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	var walk func(n *triggerNode)
	walk = func(n *triggerNode) {
		if n.binding != nil {
			out = append(out, *n.binding)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(r.root)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Trigger.String() < out[j].Trigger.String()
	})
	return out
}

// Triggers returns every registered trigger sequence ordered by
// notation.
func (r *Registry) Triggers() []key.Sequence {
	bindings := r.Bindings()
	out := make([]key.Sequence, len(bindings))
	for i, b := range bindings {
		out[i] = b.Trigger
	}
	return out
}

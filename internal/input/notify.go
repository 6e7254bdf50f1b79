package input

import (
	"sync"

	"github.com/dshills/vimkit/internal/input/command"
)

// EventKind identifies a notification variant.
type EventKind uint8

const (
	// EventCommandCompleted reports a successfully executed command.
	EventCommandCompleted EventKind = iota

	// EventSearchChanged reports a new search pattern.
	EventSearchChanged

	// EventMappingChanged reports a mutated mapping table.
	EventMappingChanged
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventSearchChanged:
		return "search-changed"
	case EventMappingChanged:
		return "mapping-changed"
	default:
		return "command-completed"
	}
}

// Event is one notification value. Fields beyond Kind are populated
// per variant.
type Event struct {
	Kind EventKind

	// Command and Data describe a completed command.
	Command string
	Data    command.Data

	// Pattern is the new search pattern.
	Pattern string

	// Scope is the mutated mapping scope.
	Scope string
}

// Notifier broadcasts events to subscriber channels. Delivery is
// best-effort: a subscriber that falls behind misses events rather
// than blocking interpretation.
type Notifier struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener with the given channel buffer. The
// returned function removes the subscription and closes the channel.
func (n *Notifier) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = ch
	n.mu.Unlock()

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
}

// Publish delivers an event to all subscribers without blocking.
func (n *Notifier) Publish(ev Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

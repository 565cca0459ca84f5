// Package events carries catalog change notifications between the write path
// and the in-memory snapshot cache.
package events

// Kind labels a catalog change.
type Kind string

const (
	PropertyCreated Kind = "property_created"
	PropertyUpdated Kind = "property_updated"
)

// Event names one changed property. Consumers reload full records from the
// store; only the id travels on the bus.
type Event struct {
	Kind       Kind
	PropertyID int64
}

// Bus is a lightweight in-process pub-sub backed by a buffered channel.
// Publishing never blocks the write path; a full buffer drops the event,
// which is acceptable because consumers refresh on a timer as well.
type Bus struct {
	ch chan Event
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan Event, buffer)}
}

// Publish attempts to enqueue the event without blocking. It reports whether
// the event was accepted.
func (b *Bus) Publish(evt Event) bool {
	if b == nil {
		return false
	}
	select {
	case b.ch <- evt:
		return true
	default:
		return false
	}
}

// Subscribe returns the read-only event stream.
func (b *Bus) Subscribe() <-chan Event {
	return b.ch
}

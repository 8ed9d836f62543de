package events

import "time"

// Event is a domain fact raised by an aggregate.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventRecorder collects events raised during an aggregate mutation until the
// application layer drains them into the outbox. Embed by value.
type EventRecorder struct {
	pending []Event
}

func (r *EventRecorder) Record(e Event) {
	r.pending = append(r.pending, e)
}

func (r *EventRecorder) PendingEvents() []Event {
	return r.pending
}

func (r *EventRecorder) ClearEvents() {
	r.pending = nil
}

package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StorePublisher writes events straight to a store. It fills in the ID and
// timestamp so emitters only supply domain fields.
type StorePublisher struct {
	store Store
}

func NewStorePublisher(store Store) *StorePublisher {
	return &StorePublisher{store: store}
}

func (p *StorePublisher) Emit(ctx context.Context, event Event) error {
	stamp(&event)
	return p.store.Append(ctx, event)
}

// ChannelPublisher hands events to a background worker via a buffered
// channel. Emission never blocks the request path; when the buffer is full
// the event is dropped, which is acceptable for operational audit data.
type ChannelPublisher struct {
	inbox chan<- Event
}

func NewChannelPublisher(inbox chan<- Event) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox}
}

func (p *ChannelPublisher) Emit(_ context.Context, event Event) error {
	stamp(&event)
	select {
	case p.inbox <- event:
	default:
	}
	return nil
}

// Fanout emits to every publisher, returning the first error after trying
// all of them.
type Fanout []Publisher

func (f Fanout) Emit(ctx context.Context, event Event) error {
	var firstErr error
	for _, p := range f {
		if err := p.Emit(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func stamp(event *Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
}

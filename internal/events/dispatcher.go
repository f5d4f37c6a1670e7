package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// EventHandler reacts to one auth event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans auth events out to the audit trail and any other listener.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// HandlerError is returned by Publish for each handler that failed or panicked.
type HandlerError struct {
	Type  EventType
	Index int
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler #%d: %v", e.Type, e.Index, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// ErrHandlerPanic marks a handler that panicked instead of returning.
var ErrHandlerPanic = errors.New("event handler panicked")

type syncDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewInMemoryDispatcher returns a dispatcher that runs handlers on the
// publishing goroutine, in subscription order.
func NewInMemoryDispatcher() Dispatcher {
	return &syncDispatcher{handlers: make(map[EventType][]EventHandler)}
}

// Publish calls every handler subscribed to event.Type. A failing or panicking
// handler does not stop the rest; all failures come back joined.
func (d *syncDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribed := d.handlers[event.Type]
	d.mu.RUnlock()

	var errs []error
	for i, handle := range subscribed {
		if err := invoke(ctx, handle, event); err != nil {
			errs = append(errs, &HandlerError{Type: event.Type, Index: i, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Subscribe appends handler to the list for eventType.
func (d *syncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	if handler == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	// Copy on write so Publish can range over a snapshot without holding the lock.
	next := make([]EventHandler, len(d.handlers[eventType]), len(d.handlers[eventType])+1)
	copy(next, d.handlers[eventType])
	d.handlers[eventType] = append(next, handler)
}

func invoke(ctx context.Context, handle EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return handle(ctx, event)
}

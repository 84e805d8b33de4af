// Package eventbus fans committed domain events out to in-process subscribers:
// metrics, the outlet board and customer notifications.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"laundry/internal/pkg/ddd"
)

// Handler receives one event. Returned errors are logged, never propagated to
// the operation that produced the event.
type Handler interface {
	HandleEvent(ctx context.Context, event ddd.DomainEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event ddd.DomainEvent) error

func (f HandlerFunc) HandleEvent(ctx context.Context, event ddd.DomainEvent) error {
	return f(ctx, event)
}

type subscription struct {
	name    string
	events  map[string]struct{}
	handler Handler
}

func (s subscription) wants(name string) bool {
	if len(s.events) == 0 {
		return true
	}
	_, ok := s.events[name]
	return ok
}

// Bus implements ports.EventPublisher.
type Bus struct {
	mu            sync.RWMutex
	subscriptions []subscription
	logger        *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger.With("component", "event_bus")}
}

// Subscribe registers handler under name for the given event names, or for
// every event when none are given.
func (b *Bus) Subscribe(name string, handler Handler, events ...string) {
	filter := make(map[string]struct{}, len(events))
	for _, e := range events {
		filter[e] = struct{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = append(b.subscriptions, subscription{name: name, events: filter, handler: handler})
}

// Publish delivers events in order to every interested subscriber. A failing
// or panicking subscriber does not stop delivery to the others.
func (b *Bus) Publish(ctx context.Context, events ...ddd.DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subscriptions))
	copy(subs, b.subscriptions)
	b.mu.RUnlock()

	for _, event := range events {
		if event == nil {
			continue
		}
		for _, sub := range subs {
			if !sub.wants(event.EventName()) {
				continue
			}
			if err := b.deliver(ctx, sub, event); err != nil {
				b.logger.Error("event delivery failed",
					"subscriber", sub.name,
					"event", event.EventName(),
					"error", err,
				)
			}
		}
	}
}

func (b *Bus) deliver(ctx context.Context, sub subscription, event ddd.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}
	}()
	return sub.handler.HandleEvent(ctx, event)
}

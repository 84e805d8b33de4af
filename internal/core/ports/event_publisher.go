package ports

import (
	"context"
	"time"

	"laundry/internal/pkg/ddd"
)

// EventPublisher delivers committed domain events to subscribers.
// Implementations must not fail the business operation; delivery problems
// are logged by the publisher itself.
type EventPublisher interface {
	Publish(ctx context.Context, events ...ddd.DomainEvent)
}

// IdempotencyStore guards against replayed client requests such as a payment
// submitted twice.
type IdempotencyStore interface {
	// Reserve claims key for ttl. Returns AlreadyExists when the key is taken.
	Reserve(ctx context.Context, key string, ttl time.Duration) error

	// Release frees a key whose operation failed, so the client may retry.
	Release(ctx context.Context, key string) error
}

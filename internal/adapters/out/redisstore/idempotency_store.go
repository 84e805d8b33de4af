package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "laundry:idempotency:"

// ErrKeyIsEmpty is returned when Reserve or Release is called without a key.
var ErrKeyIsEmpty = errs.NewValueIsRequiredError("idempotency_key")

// IdempotencyStore claims idempotency keys with SET NX so a replayed request
// is rejected while the original is in flight or after it succeeded.
type IdempotencyStore struct {
	client redis.UniversalClient
}

func NewIdempotencyStore(client redis.UniversalClient) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Reserve returns AlreadyExists on "idempotency_key" when key is taken.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return ErrKeyIsEmpty
	}
	if ttl <= 0 {
		return errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}

	ok, err := s.client.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !ok {
		return errs.NewAlreadyExistsError("idempotency_key", key)
	}
	return nil
}

// Release forgets key. Releasing an unknown key is not an error.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyIsEmpty
	}
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

package redisstore_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/redisstore"
	"laundry/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*redisstore.IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewIdempotencyStore(client), mr
}

func TestReserve_FirstCallerWins(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, "order-1:pay-1", time.Minute))

	err := store.Reserve(ctx, "order-1:pay-1", time.Minute)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestReserve_DifferentKeysDoNotCollide(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, "order-1:pay-1", time.Minute))
	require.NoError(t, store.Reserve(ctx, "order-2:pay-1", time.Minute))
}

func TestReserve_KeyExpires(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, "order-1:pay-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	require.NoError(t, store.Reserve(ctx, "order-1:pay-1", time.Minute))
}

func TestRelease_AllowsRetry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, "order-1:pay-1", time.Minute))
	assert.True(t, mr.Exists("laundry:idempotency:order-1:pay-1"))

	require.NoError(t, store.Release(ctx, "order-1:pay-1"))
	assert.False(t, mr.Exists("laundry:idempotency:order-1:pay-1"))
	require.NoError(t, store.Reserve(ctx, "order-1:pay-1", time.Minute))
}

func TestRelease_UnknownKey(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Release(context.Background(), "never-reserved"))
}

func TestReserve_RejectsEmptyKeyAndTTL(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.ErrorIs(t, store.Reserve(ctx, "", time.Minute), errs.ErrValueIsRequired)
	require.ErrorIs(t, store.Reserve(ctx, "k", 0), errs.ErrValueIsOutOfRange)
}

func TestReserve_RedisDown(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	err := store.Reserve(context.Background(), "order-1:pay-1", time.Minute)

	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrAlreadyExists)
}

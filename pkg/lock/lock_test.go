package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, "test:"), mr
}

func TestRedisLockerExclusive(t *testing.T) {
	locker, mr := newLocker(t)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "scan", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:scan"))

	_, err = locker.Acquire(ctx, "scan", time.Minute)
	assert.ErrorIs(t, err, ErrNotAcquired)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("test:scan"))

	release, err = locker.Acquire(ctx, "scan", time.Minute)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRedisLockerExpiredLeaseIsNotReleasedByOldOwner(t *testing.T) {
	locker, mr := newLocker(t)
	ctx := context.Background()

	staleRelease, err := locker.Acquire(ctx, "scan", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	freshRelease, err := locker.Acquire(ctx, "scan", time.Minute)
	require.NoError(t, err)

	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists("test:scan"), "stale owner must not delete the new lease")

	require.NoError(t, freshRelease(ctx))
	assert.False(t, mr.Exists("test:scan"))
}

func TestNoopAlwaysGrants(t *testing.T) {
	release, err := Noop{}.Acquire(context.Background(), "scan", time.Second)
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}

package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps keys in memory and evaluates the release script natively.
type fakeRedis struct {
	redis.Scripter

	mu   sync.Mutex
	keys map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Key: "poll", TTLSeconds: 30}

	t.Run("ExclusiveUntilReleased", func(t *testing.T) {
		fake := newFakeRedis()
		locker := NewRedisLocker(fake, cfg)

		first, err := locker.Acquire(ctx)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, 30*time.Second, fake.ttls["poll"])

		second, err := locker.Acquire(ctx)
		require.NoError(t, err)
		assert.Nil(t, second)

		require.NoError(t, first.Release(ctx))

		third, err := locker.Acquire(ctx)
		require.NoError(t, err)
		assert.NotNil(t, third)
	})

	t.Run("ReleaseAfterTakeover", func(t *testing.T) {
		fake := newFakeRedis()
		locker := NewRedisLocker(fake, cfg)

		lease, err := locker.Acquire(ctx)
		require.NoError(t, err)

		// Simulate expiry followed by another holder.
		fake.keys["poll"] = "someone-else"

		assert.ErrorIs(t, lease.Release(ctx), ErrNotHeld)
		assert.Equal(t, "someone-else", fake.keys["poll"])
	})

	t.Run("AcquireError", func(t *testing.T) {
		fake := newFakeRedis()
		fake.err = assert.AnError
		locker := NewRedisLocker(fake, cfg)

		lease, err := locker.Acquire(ctx)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, lease)
	})

	t.Run("DefaultTTL", func(t *testing.T) {
		locker := NewRedisLocker(newFakeRedis(), Config{Key: "poll"})
		assert.Equal(t, 2*time.Minute, locker.ttl)
	})
}

func TestCycleBound(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		batch       int
		concurrency int
		want        time.Duration
	}{
		{"Defaults", 30 * time.Second, 10, 4, 30*time.Second*4 + cycleMargin},
		{"SingleWave", 10 * time.Second, 4, 4, 10*time.Second*2 + cycleMargin},
		{"SequentialAcks", 5 * time.Second, 3, 1, 5*time.Second*4 + cycleMargin},
		{"ZeroValues", 0, 0, 0, 30*time.Second*2 + cycleMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CycleBound(tt.timeout, tt.batch, tt.concurrency))
		})
	}
}

func TestRedisLocker_AtLeast(t *testing.T) {
	ctx := context.Background()
	bound := CycleBound(30*time.Second, 10, 4)

	t.Run("RaisesShortTTL", func(t *testing.T) {
		fake := newFakeRedis()
		locker := NewRedisLocker(fake, Config{Key: "poll"}).AtLeast(bound)
		assert.Equal(t, bound, locker.TTL())
		assert.Greater(t, locker.TTL(), 2*time.Minute)

		_, err := locker.Acquire(ctx)
		require.NoError(t, err)
		assert.Equal(t, bound, fake.ttls["poll"])
	})

	t.Run("KeepsLongerTTL", func(t *testing.T) {
		locker := NewRedisLocker(newFakeRedis(), Config{Key: "poll", TTLSeconds: 600}).AtLeast(bound)
		assert.Equal(t, 10*time.Minute, locker.TTL())
	})
}

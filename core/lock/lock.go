package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotHeld is returned by Release when the lease expired or was taken over.
var ErrNotHeld = errors.New("lease not held")

// Locker hands out a single named lease at a time.
type Locker interface {
	// Acquire tries to take the lease without blocking. The returned Lease is nil
	// when another holder owns it.
	Acquire(ctx context.Context) (Lease, error)
}

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}

// releaseScript deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client is the subset of *redis.Client the locker uses.
type Client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisLocker implements Locker with SET NX PX on a single key.
type RedisLocker struct {
	client Client
	key    string
	ttl    time.Duration
}

// NewRedisClient builds the redis client for cfg. It does not connect.
func NewRedisClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisLocker creates a locker for the configured key.
func NewRedisLocker(client Client, cfg Config) *RedisLocker {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisLocker{client: client, key: cfg.Key, ttl: ttl}
}

// cycleMargin covers store writes and log appends on top of the network calls.
const cycleMargin = 30 * time.Second

// CycleBound returns the longest a poll cycle can run: one poll followed by
// ceil(batchSize/ackConcurrency) acknowledgement waves, each call bounded by
// callTimeout, plus a fixed margin.
func CycleBound(callTimeout time.Duration, batchSize, ackConcurrency int) time.Duration {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	if batchSize < 1 {
		batchSize = 1
	}
	if ackConcurrency < 1 {
		ackConcurrency = 1
	}
	waves := (batchSize + ackConcurrency - 1) / ackConcurrency
	return callTimeout*time.Duration(1+waves) + cycleMargin
}

// AtLeast raises the lease TTL to floor when the configured one is shorter.
func (l *RedisLocker) AtLeast(floor time.Duration) *RedisLocker {
	if floor > l.ttl {
		l.ttl = floor
	}
	return l
}

// TTL returns the lease expiry used on Acquire.
func (l *RedisLocker) TTL() time.Duration {
	return l.ttl
}

// Acquire implements Locker.
func (l *RedisLocker) Acquire(ctx context.Context) (Lease, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lease %s: %w", l.key, err)
	}
	if !ok {
		return nil, nil
	}
	return &redisLease{client: l.client, key: l.key, token: token}, nil
}

type redisLease struct {
	client Client
	key    string
	token  string
}

func (l *redisLease) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release lease %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrNotHeld
	}
	return nil
}

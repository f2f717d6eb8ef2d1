package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("cache: lock not acquired")

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (c *RedisClient) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.Client.SetNX(ctx, key, value, ttl).Result()
}

func (c *RedisClient) ReleaseLock(ctx context.Context, key, value string) error {
	return releaseScript.Run(ctx, c.Client, []string{key}, value).Err()
}

// Locker hands out short-lived exclusive locks backed by SET NX.
type Locker struct {
	client   *RedisClient
	ttl      time.Duration
	attempts int
	backoff  time.Duration
}

func NewLocker(client *RedisClient, ttl time.Duration) *Locker {
	return &Locker{
		client:   client,
		ttl:      ttl,
		attempts: 3,
		backoff:  100 * time.Millisecond,
	}
}

// Lock blocks for at most attempts*backoff. The returned func releases the lock.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	for i := 0; i < l.attempts; i++ {
		ok, err := l.client.AcquireLock(ctx, key, token, l.ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// ctx may already be canceled by the time we release
				_ = l.client.ReleaseLock(context.Background(), key, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.backoff):
		}
	}
	return nil, ErrLockNotAcquired
}

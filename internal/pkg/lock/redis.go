package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const retryInterval = 25 * time.Millisecond

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker shares locks between several API instances. Each lock is a
// key set with NX and a lease, so a crashed holder frees it after ttl.
type RedisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: "hotelops:lock:",
		ttl:    ttl,
		wait:   wait,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}

		select {
		case <-time.After(retryInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller's ctx may already be done; release on a fresh one
			rctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = releaseScript.Run(rctx, l.client, []string{fullKey}, token).Err()
		})
	}, nil
}

// NewRedisClient parses REDIS_URL. Both redis:// URLs and bare host:port are
// accepted.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if opts, err := redis.ParseURL(redisURL); err == nil {
		return redis.NewClient(opts), nil
	}
	if redisURL == "" {
		return nil, fmt.Errorf("redis url is empty")
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

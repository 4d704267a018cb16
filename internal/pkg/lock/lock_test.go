package lock

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerializesSameKey(t *testing.T) {
	l := NewLocalLocker(time.Second)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), RoomKey(7))
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	l := NewLocalLocker(50 * time.Millisecond)

	unlockA, err := l.Lock(context.Background(), RoomKey(1))
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := l.Lock(context.Background(), RoomKey(2))
	require.NoError(t, err)
	unlockB()
}

func TestLocalLocker_Timeout(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), InvoiceNumberKey)
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), InvoiceNumberKey)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	unlock() // releasing twice is a no-op

	unlock2, err := l.Lock(context.Background(), InvoiceNumberKey)
	require.NoError(t, err)
	unlock2()
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker(time.Second)

	unlock, err := l.Lock(context.Background(), RoomKey(3))
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Lock(ctx, RoomKey(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisLocker(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client, err := NewRedisClient(url)
	require.NoError(t, err)
	defer client.Close()

	l := NewRedisLocker(client, time.Second, 50*time.Millisecond)
	key := "test:" + time.Now().Format(time.RFC3339Nano)

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), key)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	unlock2, err := l.Lock(context.Background(), key)
	require.NoError(t, err)
	unlock2()
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient("redis://:s3cret@cache.internal:6380/2")
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "cache.internal:6380", client.Options().Addr)
	assert.Equal(t, 2, client.Options().DB)
	assert.Equal(t, "s3cret", client.Options().Password)

	client, err = NewRedisClient("localhost:6379")
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "localhost:6379", client.Options().Addr)

	_, err = NewRedisClient("")
	assert.Error(t, err)
}

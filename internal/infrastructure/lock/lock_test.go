package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/pkg/logger"
)

func newTestRedisLocker(t *testing.T) (*RedisLocker, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	l := NewRedisLocker(client, 10*time.Second, logger.Nop())
	l.retryDelay = time.Millisecond
	l.newToken = func() string { return "token-1" }
	return l, mock
}

func TestRedisLocker_LockAndRelease(t *testing.T) {
	l, mock := newTestRedisLocker(t)
	key := "lock:inventory:p1:w1"

	mock.ExpectSetNX(key, "token-1", 10*time.Second).SetVal(true)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{key}, "token-1").SetVal(int64(1))

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)
	unlock()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_RetriesThenFails(t *testing.T) {
	l, mock := newTestRedisLocker(t)
	key := "lock:inventory:p1:w1"

	for i := 0; i < defaultRetries; i++ {
		mock.ExpectSetNX(key, "token-1", 10*time.Second).SetVal(false)
	}

	_, err := l.Lock(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrLockNotAcquired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_AcquiresOnRetry(t *testing.T) {
	l, mock := newTestRedisLocker(t)
	key := "lock:inventory:p1:w1"

	mock.ExpectSetNX(key, "token-1", 10*time.Second).SetVal(false)
	mock.ExpectSetNX(key, "token-1", 10*time.Second).SetVal(true)

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, unlock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalLocker_SerializesSameKey(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "k")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.slots)
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocalLocker_DistinctKeysDoNotBlock(t *testing.T) {
	l := NewLocalLocker()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	u1, err := l.Lock(ctx, "a")
	require.NoError(t, err)
	u2, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	u1()
	u2()
}

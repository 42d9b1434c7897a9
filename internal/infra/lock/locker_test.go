package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLocker(client, 10*time.Second), mr
}

func TestWithLock_RunsAndReleases(t *testing.T) {
	locker, mr := newLocker(t)
	keys := []string{ProfessionalKey(2), ClientKey(1)}

	called := false
	err := locker.WithLock(context.Background(), keys, func(ctx context.Context) error {
		called = true
		assert.True(t, mr.Exists("lock:professional:2"))
		assert.True(t, mr.Exists("lock:client:1"))
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, mr.Keys())
}

func TestWithLock_Busy(t *testing.T) {
	locker, mr := newLocker(t)
	require.NoError(t, mr.Set("lock:professional:2", "other"))

	called := false
	err := locker.WithLock(context.Background(), []string{ClientKey(1), ProfessionalKey(2)}, func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, called)
	// чужой ключ не тронут, свой отпущен
	got, _ := mr.Get("lock:professional:2")
	assert.Equal(t, "other", got)
	assert.False(t, mr.Exists("lock:client:1"))
}

func TestWithLock_ReleasesOnError(t *testing.T) {
	locker, mr := newLocker(t)
	boom := errors.New("boom")

	err := locker.WithLock(context.Background(), []string{ClientKey(1)}, func(context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mr.Keys())
}

func TestWithLock_DoesNotReleaseForeignToken(t *testing.T) {
	locker, mr := newLocker(t)

	err := locker.WithLock(context.Background(), []string{ClientKey(1)}, func(context.Context) error {
		// ключ истёк и его перехватил другой процесс
		require.NoError(t, mr.Set("lock:client:1", "other"))
		return nil
	})

	require.NoError(t, err)
	got, _ := mr.Get("lock:client:1")
	assert.Equal(t, "other", got)
}

func TestWithLock_DuplicateKeys(t *testing.T) {
	locker, _ := newLocker(t)

	err := locker.WithLock(context.Background(), []string{ClientKey(1), ClientKey(1)}, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
}

package catalogservice

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
)

type countingGetter struct {
	calls   int
	service *domain.Service
	err     error
}

func (g *countingGetter) GetService(_ context.Context, serviceID int64) (*domain.Service, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	s := *g.service
	s.ID = serviceID
	return &s, nil
}

func newCache(t *testing.T, next ServiceGetter) (*CachedClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return NewCachedClient(next, client, time.Minute, logger.NewNop()), mr
}

func TestCachedClient_HitAfterMiss(t *testing.T) {
	next := &countingGetter{service: &domain.Service{ProfessionalID: 2, DurationMinutes: 45, TotalSessions: 8, ValidityDays: 60}}
	cache, mr := newCache(t, next)
	ctx := context.Background()

	first, err := cache.GetService(ctx, 3)
	require.NoError(t, err)
	second, err := cache.GetService(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, time.Minute, mr.TTL("catalog:service:3"))
}

func TestCachedClient_Expiry(t *testing.T) {
	next := &countingGetter{service: &domain.Service{DurationMinutes: 45, TotalSessions: 8, ValidityDays: 60}}
	cache, mr := newCache(t, next)
	ctx := context.Background()

	_, err := cache.GetService(ctx, 3)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = cache.GetService(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestCachedClient_NotFoundIsNotCached(t *testing.T) {
	next := &countingGetter{err: ErrServiceNotFound}
	cache, mr := newCache(t, next)

	_, err := cache.GetService(context.Background(), 3)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.False(t, mr.Exists("catalog:service:3"))
}

func TestCachedClient_BrokenEntry(t *testing.T) {
	next := &countingGetter{service: &domain.Service{DurationMinutes: 45, TotalSessions: 8, ValidityDays: 60}}
	cache, mr := newCache(t, next)
	require.NoError(t, mr.Set("catalog:service:3", "{not json"))

	service, err := cache.GetService(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 45, service.DurationMinutes)
	assert.Equal(t, 1, next.calls)
}

func TestCachedClient_RedisDown(t *testing.T) {
	next := &countingGetter{service: &domain.Service{DurationMinutes: 45, TotalSessions: 8, ValidityDays: 60}}
	cache, mr := newCache(t, next)
	mr.Close()

	service, err := cache.GetService(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), service.ID)
	assert.Equal(t, 1, next.calls)
}

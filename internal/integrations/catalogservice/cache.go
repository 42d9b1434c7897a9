package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// CachedClient кэширует ответы каталога в Redis
// Ошибки Redis не мешают работе: запрос уходит напрямую в каталог
type CachedClient struct {
	next  ServiceGetter
	redis redis.UniversalClient
	ttl   time.Duration
	log   Logger
}

// NewCachedClient оборачивает next кэшем с временем жизни ttl
func NewCachedClient(next ServiceGetter, client redis.UniversalClient, ttl time.Duration, log Logger) *CachedClient {
	return &CachedClient{
		next:  next,
		redis: client,
		ttl:   ttl,
		log:   log,
	}
}

func cacheKey(serviceID int64) string {
	return fmt.Sprintf("catalog:service:%d", serviceID)
}

// GetService возвращает услугу из кэша или из каталога
func (c *CachedClient) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	key := cacheKey(serviceID)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached Service
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.ToDomain(), nil
		}
		c.log.Warn("CatalogCache: broken entry for service_id=%d, refetching", serviceID)
	case !errors.Is(err, redis.Nil):
		c.log.Warn("CatalogCache: redis get failed for service_id=%d: %v", serviceID, err)
	}

	service, err := c.next.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(FromDomain(service))
	if err != nil {
		return service, nil
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("CatalogCache: redis set failed for service_id=%d: %v", serviceID, err)
	}

	return service, nil
}

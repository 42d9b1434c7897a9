package lock

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLockNotAcquired возвращается, когда ключ уже удерживает другой процесс
	ErrLockNotAcquired = errors.New("lock: not acquired")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)

// ProfessionalKey ключ блокировки календаря специалиста
func ProfessionalKey(professionalID int64) string {
	return fmt.Sprintf("lock:professional:%d", professionalID)
}

// ClientKey ключ блокировки календаря клиента
func ClientKey(clientID int64) string {
	return fmt.Sprintf("lock:client:%d", clientID)
}

// Locker распределённая блокировка на Redis (SET NX PX + снятие по токену)
type Locker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewLocker создает блокировку; ttl ограничивает и время жизни ключа, и время работы fn
func NewLocker(client redis.UniversalClient, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// WithLock захватывает все keys, выполняет fn и освобождает их
// Ключи берутся в отсортированном порядке, чтобы два процесса с пересекающимися
// наборами не ждали друг друга по кругу. Если хоть один ключ занят,
// уже взятые отпускаются и возвращается ErrLockNotAcquired
func (l *Locker) WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	token := uuid.NewString()
	acquired := make([]string, 0, len(sorted))

	defer func() {
		for _, key := range acquired {
			_ = l.release(context.WithoutCancel(ctx), key, token)
		}
	}()

	for _, key := range sorted {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("%w: acquire %s: %v", ErrRedis, key, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
		}
		acquired = append(acquired, key)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *Locker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: release %s: %v", ErrRedis, key, err)
	}
	return nil
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// KEYS[1] сессия, KEYS[2] счётчик; ARGV[1] TTL в мс
// -1: сессии нет, иначе новый номер расчёта
var nextSequenceScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
local n = redis.call("INCR", KEYS[2])
redis.call("PEXPIRE", KEYS[2], ARGV[1])
return n
`)

// KEYS[1] сессия, KEYS[2] счётчик, KEYS[3] снимок; ARGV[1] номер расчёта, ARGV[2] снимок, ARGV[3] TTL в мс
// -1: сессии нет, 0: расчёт устарел, 1: снимок записан
var storeIfCurrentScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
local current = tonumber(redis.call("GET", KEYS[2]) or "0")
if current ~= tonumber(ARGV[1]) then
  return 0
end
redis.call("SET", KEYS[3], ARGV[2], "PX", ARGV[3])
return 1
`)

// NextSequence регистрирует новый расчёт scope в сессии и возвращает его номер
// Все расчёты с меньшими номерами после этого считаются устаревшими
func (s *Store) NextSequence(ctx context.Context, id string, scope domain.SnapshotScope) (int64, error) {
	n, err := nextSequenceScript.Run(ctx, s.client,
		[]string{sessionKey(id), seqKey(id, scope)},
		s.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: NextSequence - run script: %v", ErrRedis, err)
	}
	if n < 0 {
		return 0, ErrSessionNotFound
	}
	return n, nil
}

// StoreMonthIfCurrent публикует отметки месяца, только если seq всё ещё последний номер расчёта месяца
func (s *Store) StoreMonthIfCurrent(ctx context.Context, id string, seq int64, snapshot *domain.MonthSnapshot) error {
	return s.storeIfCurrent(ctx, id, domain.ScopeMonth, seq, snapshot)
}

// StoreDayIfCurrent публикует слоты дня, только если seq всё ещё последний номер расчёта дня
func (s *Store) StoreDayIfCurrent(ctx context.Context, id string, seq int64, snapshot *domain.DaySnapshot) error {
	return s.storeIfCurrent(ctx, id, domain.ScopeDay, seq, snapshot)
}

func (s *Store) storeIfCurrent(ctx context.Context, id string, scope domain.SnapshotScope, seq int64, snapshot interface{}) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: storeIfCurrent - marshal %s snapshot: %v", ErrDecode, scope, err)
	}

	res, err := storeIfCurrentScript.Run(ctx, s.client,
		[]string{sessionKey(id), seqKey(id, scope), snapshotKey(id, scope)},
		seq, data, s.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("%w: storeIfCurrent - run script: %v", ErrRedis, err)
	}

	switch res {
	case -1:
		return ErrSessionNotFound
	case 0:
		return ErrStaleResult
	default:
		return nil
	}
}

// GetMonth возвращает последние опубликованные отметки месяца или nil, если их ещё нет
func (s *Store) GetMonth(ctx context.Context, id string) (*domain.MonthSnapshot, error) {
	var snapshot domain.MonthSnapshot
	found, err := s.getSnapshot(ctx, id, domain.ScopeMonth, &snapshot)
	if err != nil || !found {
		return nil, err
	}
	return &snapshot, nil
}

// GetDay возвращает последние опубликованные слоты дня или nil, если их ещё нет
func (s *Store) GetDay(ctx context.Context, id string) (*domain.DaySnapshot, error) {
	var snapshot domain.DaySnapshot
	found, err := s.getSnapshot(ctx, id, domain.ScopeDay, &snapshot)
	if err != nil || !found {
		return nil, err
	}
	return &snapshot, nil
}

func (s *Store) getSnapshot(ctx context.Context, id string, scope domain.SnapshotScope, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, snapshotKey(id, scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s snapshot: %v", ErrRedis, scope, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: unmarshal %s snapshot: %v", ErrDecode, scope, err)
	}
	return true, nil
}

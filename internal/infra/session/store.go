package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

const (
	keyPrefix = "booking_session:"

	// сколько раз повторять оптимистичное обновление при конфликте WATCH
	maxUpdateAttempts = 5
)

// Store хранит сессии бронирования в Redis
//
// Ключи одной сессии:
//
//	booking_session:{id}            JSON domain.BookingSession
//	booking_session:{id}:month_seq  номер последнего запущенного расчёта месяца
//	booking_session:{id}:day_seq    номер последнего запущенного расчёта дня
//	booking_session:{id}:month      последние опубликованные отметки месяца
//	booking_session:{id}:day        последние опубликованные слоты дня
//
// Все ключи живут не дольше ttl с момента открытия сессии
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStore создает хранилище сессий
func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func seqKey(id string, scope domain.SnapshotScope) string {
	return keyPrefix + id + ":" + string(scope) + "_seq"
}

func snapshotKey(id string, scope domain.SnapshotScope) string {
	return keyPrefix + id + ":" + string(scope)
}

// Create сохраняет новую сессию
func (s *Store) Create(ctx context.Context, session *domain.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: Create - marshal session: %v", ErrDecode, err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Create - set: %v", ErrRedis, err)
	}
	return nil
}

// Get возвращает сессию или ErrSessionNotFound
func (s *Store) Get(ctx context.Context, id string) (*domain.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get: %v", ErrRedis, err)
	}

	var session domain.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal session: %v", ErrDecode, err)
	}
	return &session, nil
}

// Update читает сессию под WATCH, применяет fn и записывает результат, сохраняя TTL
// Ошибка из fn возвращается как есть, сессия при этом не меняется
func (s *Store) Update(ctx context.Context, id string, fn func(session *domain.BookingSession) error) (*domain.BookingSession, error) {
	key := sessionKey(id)
	var updated *domain.BookingSession

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: Update - get: %v", ErrRedis, err)
		}

		var session domain.BookingSession
		if err := json.Unmarshal(data, &session); err != nil {
			return fmt.Errorf("%w: Update - unmarshal session: %v", ErrDecode, err)
		}

		if err := fn(&session); err != nil {
			return err
		}

		next, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("%w: Update - marshal session: %v", ErrDecode, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, key, next, redis.SetArgs{Mode: "XX", KeepTTL: true})
			return nil
		})
		if err != nil {
			return err
		}

		updated = &session
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, redis.Nil) {
			// SET XX не выполнился: сессию удалили между чтением и записью
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return nil, ErrConcurrentUpdate
}

// Delete удаляет сессию вместе с номерами расчётов и снимками
// Расчёты, которые завершатся позже, получат ErrSessionNotFound
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.client.Del(ctx,
		sessionKey(id),
		seqKey(id, domain.ScopeMonth),
		seqKey(id, domain.ScopeDay),
		snapshotKey(id, domain.ScopeMonth),
		snapshotKey(id, domain.ScopeDay),
	).Err()
	if err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrRedis, err)
	}
	return nil
}

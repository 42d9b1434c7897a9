package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия закрыта, подтверждена или истекла
	ErrSessionNotFound = errors.New("session.store: booking session not found")

	// ErrStaleResult возвращается, когда после расчёта был запущен более новый расчёт
	ErrStaleResult = errors.New("session.store: result superseded by a newer request")

	// ErrConcurrentUpdate возвращается, когда сессию не удалось обновить из-за конкурентных записей
	ErrConcurrentUpdate = errors.New("session.store: concurrent update, retry")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("session.store: redis error")

	// ErrDecode возвращается, когда значение в Redis не разбирается
	ErrDecode = errors.New("session.store: failed to decode value")
)

package toggle_slot

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SessionStore интерфейс хранилища сессий бронирования
type SessionStore interface {
	GetDay(ctx context.Context, id string) (*domain.DaySnapshot, error)
	Update(ctx context.Context, id string, fn func(session *domain.BookingSession) error) (*domain.BookingSession, error)
}

// Metrics интерфейс метрик
type Metrics interface {
	RecordSelectionToggle(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

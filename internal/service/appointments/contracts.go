package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason *string, now time.Time) error
}

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	AdjustUsedCredits(ctx context.Context, id int64, delta int, now time.Time) error
}

// OutboxRepository интерфейс outbox для доменных событий
type OutboxRepository interface {
	Add(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

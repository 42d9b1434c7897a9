package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SessionStore интерфейс хранилища сессий бронирования
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.BookingSession, error)
	Delete(ctx context.Context, id string) error
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// ScheduleProvider источник рабочих часов специалиста
type ScheduleProvider interface {
	WorkingHours(ctx context.Context, professionalID int64) (domain.WorkingHours, error)
	Location() *time.Location
}

// Locker распределённая блокировка календарей
type Locker interface {
	WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetBusyIntervals(ctx context.Context, filter domain.BusyFilter) ([]domain.BusyInterval, error)
	CreateBatch(ctx context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error)
}

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) (*domain.Contract, error)
}

// OutboxRepository интерфейс outbox-таблицы
type OutboxRepository interface {
	Add(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик
type Metrics interface {
	RecordBookingCommit(result string)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

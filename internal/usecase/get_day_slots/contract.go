package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// AppointmentRepository интерфейс чтения занятости
type AppointmentRepository interface {
	GetBusyIntervals(ctx context.Context, filter domain.BusyFilter) ([]domain.BusyInterval, error)
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

// SessionStore интерфейс хранилища сессий бронирования
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.BookingSession, error)
	GetMonth(ctx context.Context, id string) (*domain.MonthSnapshot, error)
	NextSequence(ctx context.Context, id string, scope domain.SnapshotScope) (int64, error)
	StoreDayIfCurrent(ctx context.Context, id string, seq int64, snapshot *domain.DaySnapshot) error
}

// Metrics интерфейс метрик
type Metrics interface {
	RecordAvailabilityRead(scope, result string)
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

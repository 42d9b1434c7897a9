package schedule

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) (*domain.WorkingHours, error)
	Upsert(ctx context.Context, hours *domain.WorkingHours) (*domain.WorkingHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package catalogservice

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ServiceGetter источник описаний услуг: HTTP клиент или кэш над ним
type ServiceGetter interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

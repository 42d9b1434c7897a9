package contracts

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByContractID(ctx context.Context, contractID int64) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

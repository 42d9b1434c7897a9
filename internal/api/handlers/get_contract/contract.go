package get_contract

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/service/contracts/models"
)

type ContractService interface {
	GetByID(ctx context.Context, contractID, userID int64) (*models.ContractResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

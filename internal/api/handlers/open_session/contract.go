package open_session

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
)

type SessionService interface {
	Open(ctx context.Context, req *models.OpenSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

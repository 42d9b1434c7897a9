package get_month_markers

import (
	"context"

	getMonthMarkers "github.com/m04kA/SMC-CoachingService/internal/usecase/get_month_markers"
)

type GetMonthMarkersUseCase interface {
	Execute(ctx context.Context, req *getMonthMarkers.Request) (*getMonthMarkers.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

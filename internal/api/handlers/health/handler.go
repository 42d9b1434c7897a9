package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Check именованная проверка зависимости для readiness
type Check struct {
	Name  string
	Check func(ctx context.Context) error
}

// StatusResponse ответ health-эндпоинтов
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checks []Check
	logger Logger
}

type Logger interface {
	Warn(format string, v ...interface{})
}

func NewHandler(logger Logger, checks ...Check) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Liveness GET /health/live
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Readiness GET /health/ready - проверяет Postgres и Redis
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := check.Check(ctx)
		cancel()

		if err != nil {
			h.logger.Warn("GET /health/ready - %s check failed: %v", check.Name, err)
			resp.Checks[check.Name] = err.Error()
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	handlers.RespondJSON(w, status, resp)
}

package open_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сессии"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceMismatch    = "услуга не принадлежит специалисту"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.OpenSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ClientID = clientID

	session, err := h.service.Open(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /booking-sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sessions.ErrServiceNotFound):
			h.logger.Warn("POST /booking-sessions - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, sessions.ErrServiceMismatch):
			h.logger.Warn("POST /booking-sessions - Service mismatch: service_id=%d, professional_id=%d",
				req.ServiceID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgServiceMismatch)

		default:
			h.logger.Error("POST /booking-sessions - Failed to open session: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions - Session opened: session_id=%s, client_id=%d, professional_id=%d, service_id=%d",
		session.ID, clientID, req.ProfessionalID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

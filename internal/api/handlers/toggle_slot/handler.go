package toggle_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	toggleSlot "github.com/m04kA/SMC-CoachingService/internal/usecase/toggle_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректный ID слота"
	msgNotFound           = "сессия бронирования не найдена"
	msgForbidden          = "доступ запрещен"
	msgSlotNotAvailable   = "слот недоступен для выбора"
	msgConflict           = "сессия изменяется параллельно, повторите запрос"
)

type Handler struct {
	useCase ToggleSlotUseCase
	logger  Logger
}

func NewHandler(useCase ToggleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions/{sessionId}/toggle
// Превышение квоты не является ошибкой: возвращается 200 с quotaExceeded=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID, clientID))
	if err != nil {
		switch {
		case errors.Is(err, toggleSlot.ErrInvalidSlot):
			h.logger.Warn("POST /booking-sessions/{id}/toggle - Invalid slot: slot_id=%q", req.SlotID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, toggleSlot.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, toggleSlot.ErrAccessDenied):
			h.logger.Warn("POST /booking-sessions/{id}/toggle - Access denied: session_id=%s, user_id=%d", sessionID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, toggleSlot.ErrSlotNotAvailable):
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, toggleSlot.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /booking-sessions/{id}/toggle - Failed to toggle slot: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/toggle - Slot toggled: session_id=%s, slot_id=%s, selected=%t, quota_exceeded=%t",
		sessionID, req.SlotID, result.Selected, result.QuotaExceeded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(req.SlotID, result))
}

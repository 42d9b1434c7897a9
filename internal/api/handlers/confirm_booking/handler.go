package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	contractModels "github.com/m04kA/SMC-CoachingService/internal/service/contracts/models"
	confirmBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_booking"
)

const (
	msgNotFound          = "сессия бронирования не найдена"
	msgForbidden         = "доступ запрещен"
	msgEmptySelection    = "не выбрано ни одного слота"
	msgQuotaExceeded     = "выбрано больше слотов, чем сессий в пакете"
	msgServiceNotFound   = "услуга не найдена"
	msgInvalidSlot       = "выбранный слот не соответствует расписанию"
	msgSlotNotAvailable  = "один из выбранных слотов уже занят"
	msgBookingInProgress = "календарь сейчас бронируется, повторите запрос"
	msgBookingFailed     = "не удалось сохранить бронирование, повторите запрос"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions/{sessionId}/confirm
// Создает контракт и все выбранные встречи одной операцией
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		SessionID: sessionID,
		ClientID:  clientID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrAccessDenied):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Access denied: session_id=%s, user_id=%d", sessionID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmBooking.ErrEmptySelection):
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, confirmBooking.ErrQuotaExceeded):
			handlers.RespondBadRequest(w, msgQuotaExceeded)

		case errors.Is(err, confirmBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, confirmBooking.ErrInvalidSlot):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, confirmBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Slot taken: session_id=%s, error=%v", sessionID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, confirmBooking.ErrBookingInProgress):
			handlers.RespondError(w, http.StatusLocked, msgBookingInProgress)

		case errors.Is(err, confirmBooking.ErrBookingFailed):
			h.logger.Error("POST /booking-sessions/{id}/confirm - Booking failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondServiceUnavailable(w, msgBookingFailed)

		default:
			h.logger.Error("POST /booking-sessions/{id}/confirm - Failed to confirm booking: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/confirm - Booking confirmed: session_id=%s, contract_id=%d, appointments=%d",
		sessionID, result.Contract.ID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusCreated, contractModels.FromDomainContract(result.Contract, result.Appointments))
}

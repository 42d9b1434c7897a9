package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	getDaySlots "github.com/m04kA/SMC-CoachingService/internal/usecase/get_day_slots"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput          = "некорректные параметры запроса"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceMismatch       = "услуга не принадлежит специалисту"
	msgSessionNotFound       = "сессия бронирования не найдена"
	msgSessionMismatch       = "сессия бронирования открыта для другой услуги"
	msgDayNotSelectable      = "день недоступен для выбора"
	msgStaleResult           = "результат устарел, запрошен другой день"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/services/{serviceId}/day-slots
// Query params: date (required, YYYY-MM-DD), sessionId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/services/{id}/day-slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/services/{id}/day-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/services/{id}/day-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(clientID, professionalID, serviceID, dateStr, r.URL.Query().Get("sessionId"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/services/{id}/day-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getDaySlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getDaySlots.ErrServiceMismatch):
			handlers.RespondBadRequest(w, msgServiceMismatch)

		case errors.Is(err, getDaySlots.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, getDaySlots.ErrSessionMismatch):
			handlers.RespondForbidden(w, msgSessionMismatch)

		case errors.Is(err, getDaySlots.ErrDayNotSelectable):
			handlers.RespondConflict(w, msgDayNotSelectable)

		case errors.Is(err, getDaySlots.ErrStaleResult):
			handlers.RespondConflict(w, msgStaleResult)

		default:
			h.logger.Error("GET /professionals/{id}/services/{id}/day-slots - Failed to get slots: professional_id=%d, service_id=%d, error=%v",
				professionalID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/services/{id}/day-slots - Slots retrieved: professional_id=%d, service_id=%d, date=%s, slots_count=%d",
		professionalID, serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(professionalID, serviceID, result))
}

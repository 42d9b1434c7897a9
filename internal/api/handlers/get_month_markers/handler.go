package get_month_markers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	getMonthMarkers "github.com/m04kA/SMC-CoachingService/internal/usecase/get_month_markers"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgMissingMonth          = "месяц обязателен"
	msgInvalidMonth          = "некорректный формат месяца, ожидается YYYY-MM"
	msgInvalidInput          = "некорректные параметры запроса"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceMismatch       = "услуга не принадлежит специалисту"
	msgSessionNotFound       = "сессия бронирования не найдена"
	msgSessionMismatch       = "сессия бронирования открыта для другой услуги"
	msgStaleResult           = "результат устарел, запрошен другой месяц"
)

type Handler struct {
	useCase GetMonthMarkersUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthMarkersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/services/{serviceId}/month-markers
// Query params: month (required, YYYY-MM), sessionId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/services/{id}/month-markers - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/services/{id}/month-markers - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /professionals/{id}/services/{id}/month-markers - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	useCaseReq, err := ToUseCaseRequest(clientID, professionalID, serviceID, monthStr, r.URL.Query().Get("sessionId"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/services/{id}/month-markers - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getMonthMarkers.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getMonthMarkers.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getMonthMarkers.ErrServiceMismatch):
			handlers.RespondBadRequest(w, msgServiceMismatch)

		case errors.Is(err, getMonthMarkers.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, getMonthMarkers.ErrSessionMismatch):
			handlers.RespondForbidden(w, msgSessionMismatch)

		case errors.Is(err, getMonthMarkers.ErrStaleResult):
			handlers.RespondConflict(w, msgStaleResult)

		default:
			h.logger.Error("GET /professionals/{id}/services/{id}/month-markers - Failed to compute markers: professional_id=%d, service_id=%d, error=%v",
				professionalID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/services/{id}/month-markers - Markers computed: professional_id=%d, service_id=%d, month=%s, degraded=%t",
		professionalID, serviceID, monthStr, result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(professionalID, serviceID, result))
}

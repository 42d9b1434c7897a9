package get_contract

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/service/contracts"
)

const (
	msgInvalidContractID = "некорректный ID контракта"
	msgNotFound          = "контракт не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ContractService
	logger  Logger
}

func NewHandler(service ContractService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/contracts/{contractId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	// Извлекаем contractId из URL
	vars := mux.Vars(r)
	contractID, err := strconv.ParseInt(vars["contractId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /contracts/{id} - Invalid contract ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContractID)
		return
	}

	contract, err := h.service.GetByID(r.Context(), contractID, userID)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrContractNotFound):
			h.logger.Warn("GET /contracts/{id} - Contract not found: contract_id=%d", contractID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contracts.ErrAccessDenied):
			h.logger.Warn("GET /contracts/{id} - Access denied: contract_id=%d, user_id=%d", contractID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /contracts/{id} - Failed to get contract: contract_id=%d, error=%v", contractID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /contracts/{id} - Contract retrieved: contract_id=%d", contractID)
	handlers.RespondJSON(w, http.StatusOK, contract)
}

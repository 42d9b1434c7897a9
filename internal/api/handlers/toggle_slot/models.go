package toggle_slot

import (
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
	toggleSlot "github.com/m04kA/SMC-CoachingService/internal/usecase/toggle_slot"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	SlotID string `json:"slotId"`
}

// ToggleSlotResponse HTTP response model
type ToggleSlotResponse struct {
	SlotID        string                    `json:"slotId"`
	Selected      bool                      `json:"selected"`
	QuotaExceeded bool                      `json:"quotaExceeded"`
	Selection     *models.SelectionResponse `json:"selection"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *ToggleSlotRequest) ToUseCaseRequest(sessionID string, clientID int64) *toggleSlot.Request {
	return &toggleSlot.Request{
		SessionID: sessionID,
		ClientID:  clientID,
		SlotID:    r.SlotID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(slotID string, resp *toggleSlot.Response) *ToggleSlotResponse {
	return &ToggleSlotResponse{
		SlotID:        slotID,
		Selected:      resp.Selected,
		QuotaExceeded: resp.QuotaExceeded,
		Selection:     models.FromDomainSelection(resp.Selection),
	}
}

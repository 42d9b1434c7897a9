package get_day_slots

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	getDaySlots "github.com/m04kA/SMC-CoachingService/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date           string `json:"date"`
	ProfessionalID int64  `json:"professionalId"`
	ServiceID      int64  `json:"serviceId"`
	Slots          []Slot `json:"slots"`
	Degraded       bool   `json:"degraded"`
}

// Slot модель временного слота
type Slot struct {
	SlotID    string `json:"slotId"`    // передаётся в toggle
	StartTime string `json:"startTime"` // RFC3339 в часовом поясе расписания
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(professionalID, serviceID int64, resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			SlotID:    slot.ID().String(),
			StartTime: slot.Start.Format(time.RFC3339),
			EndTime:   slot.End.Format(time.RFC3339),
			Available: slot.Available,
		}
	}

	return &DaySlotsResponse{
		Date:           resp.Date.String(),
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Slots:          slots,
		Degraded:       resp.Degraded,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(clientID, professionalID, serviceID int64, dateStr, sessionID string) (*getDaySlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getDaySlots.Request{
		ClientID:       clientID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	}
	if sessionID != "" {
		req.SessionID = ptr.Ptr(sessionID)
	}
	return req, nil
}

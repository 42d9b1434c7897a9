package models

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Request модели

// OpenSessionRequest запрос на открытие окна бронирования
type OpenSessionRequest struct {
	ClientID       int64 `json:"-"`
	ProfessionalID int64 `json:"professionalId"`
	ServiceID      int64 `json:"serviceId"`
}

// Response модели

// SelectionResponse текущий выбор слотов
type SelectionResponse struct {
	SlotIDs      []string `json:"slotIds"`
	Selected     int      `json:"selected"`
	Limit        int      `json:"limit"`
	QuotaReached bool     `json:"quotaReached"` // можно переходить к подтверждению
}

// SessionResponse открытая сессия бронирования
type SessionResponse struct {
	ID              string             `json:"id"`
	ClientID        int64              `json:"clientId"`
	ProfessionalID  int64              `json:"professionalId"`
	ServiceID       int64              `json:"serviceId"`
	DurationMinutes int                `json:"durationMinutes"`
	Selection       *SelectionResponse `json:"selection"`
	CreatedAt       string             `json:"createdAt"`
}

// FromDomainSelection конвертирует выбор слотов в ответ
func FromDomainSelection(s domain.SlotSelection) *SelectionResponse {
	ids := make([]string, 0, s.Len())
	for _, id := range s.SlotIDs {
		ids = append(ids, id.String())
	}
	return &SelectionResponse{
		SlotIDs:      ids,
		Selected:     s.Len(),
		Limit:        s.Limit,
		QuotaReached: s.IsFull(),
	}
}

// FromDomainSession конвертирует сессию в ответ
func FromDomainSession(s *domain.BookingSession) *SessionResponse {
	return &SessionResponse{
		ID:              s.ID,
		ClientID:        s.ClientID,
		ProfessionalID:  s.ProfessionalID,
		ServiceID:       s.ServiceID,
		DurationMinutes: s.DurationMinutes,
		Selection:       FromDomainSelection(s.Selection),
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
}

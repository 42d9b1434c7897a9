package get_month_markers

import (
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	getMonthMarkers "github.com/m04kA/SMC-CoachingService/internal/usecase/get_month_markers"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// MonthMarkersResponse HTTP response model
type MonthMarkersResponse struct {
	Month          string            `json:"month"` // "2026-03"
	ProfessionalID int64             `json:"professionalId"`
	ServiceID      int64             `json:"serviceId"`
	Days           map[string]string `json:"days"` // "2026-03-15" -> open | full_disabled | past_disabled
	Degraded       bool              `json:"degraded"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(professionalID, serviceID int64, resp *getMonthMarkers.Response) *MonthMarkersResponse {
	days := make(map[string]string, len(resp.Days))
	for date, marker := range resp.Days {
		days[date.String()] = string(marker)
	}

	return &MonthMarkersResponse{
		Month:          resp.Month.MonthString(),
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Days:           days,
		Degraded:       resp.Degraded,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(clientID, professionalID, serviceID int64, monthStr, sessionID string) (*getMonthMarkers.Request, error) {
	month, err := domain.ParseMonth(monthStr)
	if err != nil {
		return nil, err
	}

	req := &getMonthMarkers.Request{
		ClientID:       clientID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Month:          month,
	}
	if sessionID != "" {
		req.SessionID = ptr.Ptr(sessionID)
	}
	return req, nil
}

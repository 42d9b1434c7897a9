package models

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-CoachingService/internal/service/appointments/models"
)

// ContractResponse контракт вместе со встречами
type ContractResponse struct {
	ID               int64                                    `json:"id"`
	ClientID         int64                                    `json:"clientId"`
	ProfessionalID   int64                                    `json:"professionalId"`
	ServiceID        int64                                    `json:"serviceId"`
	StartDate        string                                   `json:"startDate"` // RFC3339
	EndDate          string                                   `json:"endDate"`
	TotalCredits     int                                      `json:"totalCredits"`
	UsedCredits      int                                      `json:"usedCredits"`
	RemainingCredits int                                      `json:"remainingCredits"`
	Status           string                                   `json:"status"`
	Appointments     []*appointmentModels.AppointmentResponse `json:"appointments"`
	CreatedAt        string                                   `json:"createdAt"`
}

// FromDomainContract конвертирует контракт и его встречи в ответ
func FromDomainContract(c *domain.Contract, appointments []*domain.Appointment) *ContractResponse {
	list := make([]*appointmentModels.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		list = append(list, appointmentModels.FromDomainAppointment(a))
	}

	return &ContractResponse{
		ID:               c.ID,
		ClientID:         c.ClientID,
		ProfessionalID:   c.ProfessionalID,
		ServiceID:        c.ServiceID,
		StartDate:        c.StartDate.Format(time.RFC3339),
		EndDate:          c.EndDate.Format(time.RFC3339),
		TotalCredits:     c.TotalCredits,
		UsedCredits:      c.UsedCredits,
		RemainingCredits: c.RemainingCredits(),
		Status:           string(c.Status),
		Appointments:     list,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Request модели

// UpdateScheduleRequest запрос на изменение рабочих часов специалиста
type UpdateScheduleRequest struct {
	UserID         int64 `json:"-"`
	ProfessionalID int64 `json:"-"`
	WorkStartHour  int   `json:"workStartHour"`
	WorkEndHour    int   `json:"workEndHour"`
}

// ToDomain конвертирует запрос в рабочие часы
func (r *UpdateScheduleRequest) ToDomain() *domain.WorkingHours {
	return &domain.WorkingHours{
		ProfessionalID: r.ProfessionalID,
		StartHour:      r.WorkStartHour,
		EndHour:        r.WorkEndHour,
	}
}

// Response модели

// ScheduleResponse рабочие часы специалиста
type ScheduleResponse struct {
	ProfessionalID int64   `json:"professionalId"`
	WorkStartHour  int     `json:"workStartHour"`
	WorkEndHour    int     `json:"workEndHour"`
	Timezone       string  `json:"timezone"`
	IsDefault      bool    `json:"isDefault"` // у специалиста нет своих часов
	UpdatedAt      *string `json:"updatedAt,omitempty"`
}

// FromDomain конвертирует рабочие часы в ответ
func FromDomain(hours domain.WorkingHours, loc *time.Location, isDefault bool) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProfessionalID: hours.ProfessionalID,
		WorkStartHour:  hours.StartHour,
		WorkEndHour:    hours.EndHour,
		Timezone:       loc.String(),
		IsDefault:      isDefault,
	}
	if !hours.UpdatedAt.IsZero() {
		updated := hours.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}
	return resp
}

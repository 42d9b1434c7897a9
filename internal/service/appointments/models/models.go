package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidRole возвращается при некорректной роли просмотра
	ErrInvalidRole = errors.New("invalid view role")
)

// Request модели

// ListAppointmentsRequest запрос на получение встреч пользователя
type ListAppointmentsRequest struct {
	RequesterID int64      `json:"-"`
	UserID      int64      `json:"userId"`
	Role        string     `json:"role"`             // client | professional
	Status      *string    `json:"status,omitempty"` // опционально
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{From: r.From, To: r.To}

	role, err := ToDomainViewMode(r.Role)
	if err != nil {
		return filter, err
	}
	if role == domain.ViewAsProfessional {
		filter.ProfessionalID = ptr.Ptr(r.UserID)
	} else {
		filter.ClientID = ptr.Ptr(r.UserID)
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = ptr.Ptr(status)
	}

	return filter, nil
}

// CancelAppointmentRequest запрос на отмену встречи
type CancelAppointmentRequest struct {
	UserID             int64   `json:"-"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	ContractID         int64   `json:"contractId"`
	ClientID           int64   `json:"clientId"`
	ProfessionalID     int64   `json:"professionalId"`
	StartTime          string  `json:"startTime"` // RFC3339
	EndTime            string  `json:"endTime"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// AppointmentListResponse список встреч
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует domain.Appointment в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 a.ID,
		ContractID:         a.ContractID,
		ClientID:           a.ClientID,
		ProfessionalID:     a.ProfessionalID,
		StartTime:          a.StartTime.Format(time.RFC3339),
		EndTime:            a.EndTime.Format(time.RFC3339),
		Status:             string(a.Status),
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
	}
	if a.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(a.CancelledAt.Format(time.RFC3339))
	}
	return resp
}

// FromDomainAppointmentList конвертирует список встреч
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result, Total: len(result)}
}

// ToDomainAppointmentStatus проверяет и конвертирует статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	switch status := domain.AppointmentStatus(s); status {
	case domain.AppointmentScheduled, domain.AppointmentCompleted, domain.AppointmentCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainViewMode проверяет и конвертирует роль; пустая роль означает client
func ToDomainViewMode(s string) (domain.ViewMode, error) {
	switch mode := domain.ViewMode(s); mode {
	case "", domain.ViewAsClient:
		return domain.ViewAsClient, nil
	case domain.ViewAsProfessional:
		return mode, nil
	default:
		return "", ErrInvalidRole
	}
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/tracing"
)

// ContractBooked payload события contract.booked
type ContractBooked struct {
	ContractID     int64       `json:"contractId"`
	ClientID       int64       `json:"clientId"`
	ProfessionalID int64       `json:"professionalId"`
	ServiceID      int64       `json:"serviceId"`
	StartDate      time.Time   `json:"startDate"`
	EndDate        time.Time   `json:"endDate"`
	TotalCredits   int         `json:"totalCredits"`
	UsedCredits    int         `json:"usedCredits"`
	Appointments   []BookedRef `json:"appointments"`
}

// BookedRef встреча, созданная вместе с контрактом
type BookedRef struct {
	AppointmentID int64     `json:"appointmentId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

// AppointmentCancelled payload события appointment.cancelled
type AppointmentCancelled struct {
	AppointmentID      int64     `json:"appointmentId"`
	ContractID         int64     `json:"contractId"`
	ClientID           int64     `json:"clientId"`
	ProfessionalID     int64     `json:"professionalId"`
	StartTime          time.Time `json:"startTime"`
	CancelledBy        int64     `json:"cancelledBy"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CancelledAt        time.Time `json:"cancelledAt"`
}

// NewContractBooked собирает outbox-событие о созданном контракте
func NewContractBooked(ctx context.Context, contract *domain.Contract, appointments []*domain.Appointment) (*domain.OutboxEvent, error) {
	refs := make([]BookedRef, 0, len(appointments))
	for _, a := range appointments {
		refs = append(refs, BookedRef{AppointmentID: a.ID, StartTime: a.StartTime, EndTime: a.EndTime})
	}

	return newEvent(ctx, domain.AggregateContract, contract.ID, domain.EventContractBooked, ContractBooked{
		ContractID:     contract.ID,
		ClientID:       contract.ClientID,
		ProfessionalID: contract.ProfessionalID,
		ServiceID:      contract.ServiceID,
		StartDate:      contract.StartDate,
		EndDate:        contract.EndDate,
		TotalCredits:   contract.TotalCredits,
		UsedCredits:    contract.UsedCredits,
		Appointments:   refs,
	})
}

// NewAppointmentCancelled собирает outbox-событие об отмене встречи
func NewAppointmentCancelled(ctx context.Context, a *domain.Appointment, cancelledBy int64) (*domain.OutboxEvent, error) {
	var cancelledAt time.Time
	if a.CancelledAt != nil {
		cancelledAt = *a.CancelledAt
	}

	return newEvent(ctx, domain.AggregateAppointment, a.ID, domain.EventAppointmentCancelled, AppointmentCancelled{
		AppointmentID:      a.ID,
		ContractID:         a.ContractID,
		ClientID:           a.ClientID,
		ProfessionalID:     a.ProfessionalID,
		StartTime:          a.StartTime,
		CancelledBy:        cancelledBy,
		CancellationReason: a.CancellationReason,
		CancelledAt:        cancelledAt,
	})
}

func newEvent(ctx context.Context, aggregateType string, aggregateID int64, eventType string, payload interface{}) (*domain.OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s payload: %w", eventType, err)
	}

	event := &domain.OutboxEvent{
		EventID:       uuid.NewString(),
		AggregateType: aggregateType,
		AggregateID:   strconv.FormatInt(aggregateID, 10),
		EventType:     eventType,
		Payload:       data,
	}

	// traceparent позволяет продолжить трейс запроса в потребителях события
	if tp, ok := tracing.InjectHeaders(ctx)["traceparent"]; ok {
		event.Traceparent = &tp
	}

	return event, nil
}

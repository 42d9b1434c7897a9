package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ViewMode роль, в которой пользователь смотрит на свои встречи
type ViewMode string

const (
	ViewAsClient       ViewMode = "client"
	ViewAsProfessional ViewMode = "professional"
)

// Appointment одна сессия по контракту
// Для одного специалиста (и отдельно для одного клиента) запланированные встречи
// не пересекаются по [StartTime, EndTime)
type Appointment struct {
	ID             int64
	ContractID     int64
	ClientID       int64
	ProfessionalID int64
	StartTime      time.Time
	EndTime        time.Time
	Status         AppointmentStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval занятый встречей промежуток
func (a *Appointment) Interval() BusyInterval {
	return BusyInterval{Start: a.StartTime, End: a.EndTime}
}

// IsScheduled встреча занимает время в календаре
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentScheduled
}

// CanBeCancelled отменить можно только запланированную встречу, которая ещё не началась
func (a *Appointment) CanBeCancelled(now time.Time) bool {
	return a.Status == AppointmentScheduled && a.StartTime.After(now)
}

// IsParticipant является ли пользователь клиентом или специалистом встречи
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.ClientID == userID || a.ProfessionalID == userID
}

// BusyFilter выборка занятых интервалов за период
// Ровно одно из ProfessionalID / ClientID должно быть задано
type BusyFilter struct {
	ProfessionalID *int64
	ClientID       *int64
	From           time.Time
	To             time.Time
}

// AppointmentsFilter фильтр списка встреч пользователя
type AppointmentsFilter struct {
	ClientID       *int64
	ProfessionalID *int64
	Status         *AppointmentStatus // опционально
	From           *time.Time         // опционально
	To             *time.Time         // опционально
}

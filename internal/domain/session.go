package domain

import "time"

// BookingSession состояние одного открытого окна бронирования
// Живёт до подтверждения или закрытия, потом удаляется целиком
type BookingSession struct {
	ID              string        `json:"id"`
	ClientID        int64         `json:"clientId"`
	ProfessionalID  int64         `json:"professionalId"`
	ServiceID       int64         `json:"serviceId"`
	DurationMinutes int           `json:"durationMinutes"`
	Selection       SlotSelection `json:"selection"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Matches относится ли сессия к этой тройке клиент/специалист/услуга
func (s *BookingSession) Matches(clientID, professionalID, serviceID int64) bool {
	return s.ClientID == clientID && s.ProfessionalID == professionalID && s.ServiceID == serviceID
}

// SnapshotScope вид расчёта, для которого действует правило «побеждает последний запрос»
type SnapshotScope string

const (
	ScopeMonth SnapshotScope = "month"
	ScopeDay   SnapshotScope = "day"
)

// MonthSnapshot последние отметки месяца, опубликованные в сессию
type MonthSnapshot struct {
	Month Date                     `json:"month"`
	Days  map[Date]DayAvailability `json:"days"`
}

// IsOpen можно ли выбирать день d по этим отметкам
// Пока отметки не посчитаны, ни один день не выбирается
func (m *MonthSnapshot) IsOpen(d Date) bool {
	if m == nil {
		return false
	}
	return m.Days[d].IsSelectable()
}

// DaySnapshot последние слоты дня, опубликованные в сессию
type DaySnapshot struct {
	Date  Date            `json:"date"`
	Slots map[SlotID]bool `json:"slots"` // slotId -> available
}

// IsAvailable был ли слот предложен клиенту свободным
func (d *DaySnapshot) IsAvailable(id SlotID) bool {
	if d == nil {
		return false
	}
	return d.Slots[id]
}

package domain

import "time"

// ContractStatus represents the status of a contract
type ContractStatus string

const (
	ContractActive  ContractStatus = "active"
	ContractExpired ContractStatus = "expired"
)

// Contract купленный клиентом пакет сессий у специалиста
// Инвариант: UsedCredits <= TotalCredits
type Contract struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64
	StartDate      time.Time
	EndDate        time.Time
	TotalCredits   int
	UsedCredits    int
	Status         ContractStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewContract создает контракт в момент now на срок service.ValidityDays
// usedCredits число слотов, бронируемых сразу при покупке
func NewContract(service Service, clientID, professionalID int64, usedCredits int, now time.Time) *Contract {
	return &Contract{
		ClientID:       clientID,
		ProfessionalID: professionalID,
		ServiceID:      service.ID,
		StartDate:      now,
		EndDate:        now.AddDate(0, 0, service.ValidityDays),
		TotalCredits:   service.TotalSessions,
		UsedCredits:    usedCredits,
		Status:         ContractActive,
	}
}

// RemainingCredits сколько сессий ещё можно забронировать
func (c *Contract) RemainingCredits() int {
	return c.TotalCredits - c.UsedCredits
}

// IsExpired срок действия истёк к моменту now
func (c *Contract) IsExpired(now time.Time) bool {
	return c.Status == ContractExpired || !now.Before(c.EndDate)
}

// IsParticipant является ли пользователь клиентом или специалистом контракта
func (c *Contract) IsParticipant(userID int64) bool {
	return c.ClientID == userID || c.ProfessionalID == userID
}

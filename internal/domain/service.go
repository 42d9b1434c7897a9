package domain

import (
	"fmt"
	"time"
)

// Service пакет услуг специалиста (тренировки, консультации)
// Определяется в каталоге, для бронирования только читается
type Service struct {
	ID              int64
	ProfessionalID  int64
	Name            string
	DurationMinutes int // длительность одной сессии
	TotalSessions   int // сколько сессий даёт один контракт
	ValidityDays    int // срок действия контракта с момента покупки
	Price           *float64
}

// Duration длительность одной сессии
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Validate проверяет, что из услуги можно строить сетку слотов и контракт
func (s Service) Validate() error {
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidService, MinServiceDurationMinutes, MaxServiceDurationMinutes)
	}
	if s.TotalSessions <= 0 || s.TotalSessions > MaxTotalSessions {
		return fmt.Errorf("%w: totalSessions must be between 1 and %d", ErrInvalidService, MaxTotalSessions)
	}
	if s.ValidityDays <= 0 || s.ValidityDays > MaxValidityDays {
		return fmt.Errorf("%w: validityDays must be between 1 and %d", ErrInvalidService, MaxValidityDays)
	}
	return nil
}

package domain

import (
	"fmt"
	"time"
)

// WorkingHours рабочее окно специалиста [StartHour:00, EndHour:00)
// Если у специалиста нет своей записи, используется окно из конфигурации сервиса
type WorkingHours struct {
	ProfessionalID int64
	StartHour      int
	EndHour        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate проверяет 0 <= StartHour < EndHour <= 24
func (w WorkingHours) Validate() error {
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return fmt.Errorf("%w: expected 0 <= start < end <= 24, got %d-%d",
			ErrInvalidWorkingHours, w.StartHour, w.EndHour)
	}
	return nil
}

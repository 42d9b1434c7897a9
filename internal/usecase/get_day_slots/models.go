package get_day_slots

import "github.com/m04kA/SMC-CoachingService/internal/domain"

// Request запрос слотов дня
type Request struct {
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64
	Date           domain.Date
	SessionID      *string // если задан, день должен быть открыт в отметках месяца сессии
}

// Response слоты дня, уже начавшиеся слоты не включаются
type Response struct {
	Date     domain.Date
	Slots    []domain.AnnotatedSlot
	Degraded bool // занятость прочитать не удалось, список пуст
}

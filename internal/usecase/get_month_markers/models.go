package get_month_markers

import "github.com/m04kA/SMC-CoachingService/internal/domain"

// Request запрос отметок месяца
type Request struct {
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64
	Month          domain.Date // любой день месяца, обычно первое число
	SessionID      *string     // если задан, результат публикуется в сессию
}

// Response отметки по всем дням месяца
type Response struct {
	Month    domain.Date
	Days     map[domain.Date]domain.DayAvailability
	Degraded bool // занятость прочитать не удалось, все будущие дни закрыты
}

package confirm_booking

import "github.com/m04kA/SMC-CoachingService/internal/domain"

// Request запрос на подтверждение выбора сессии
type Request struct {
	SessionID string
	ClientID  int64
}

// Response созданный контракт и его встречи
type Response struct {
	Contract     *domain.Contract
	Appointments []*domain.Appointment
}

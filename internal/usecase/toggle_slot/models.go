package toggle_slot

import "github.com/m04kA/SMC-CoachingService/internal/domain"

// Request запрос на переключение слота
type Request struct {
	SessionID string
	ClientID  int64
	SlotID    string
}

// Response выбор после переключения
type Response struct {
	Selection     domain.SlotSelection
	Selected      bool // слот выбран после переключения
	QuotaExceeded bool // выбрать слот не дала квота, выбор не изменился
}

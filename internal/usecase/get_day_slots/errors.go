package get_day_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_slots: invalid input")

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("get_day_slots: service not found")

	// ErrServiceMismatch возвращается, когда услуга принадлежит другому специалисту
	ErrServiceMismatch = errors.New("get_day_slots: service does not belong to professional")

	// ErrSessionNotFound возвращается, если сессия закрыта или истекла
	ErrSessionNotFound = errors.New("get_day_slots: booking session not found")

	// ErrSessionMismatch возвращается, если сессия открыта для другой услуги или другого клиента
	ErrSessionMismatch = errors.New("get_day_slots: booking session does not match request")

	// ErrDayNotSelectable возвращается, если день не отмечен открытым в последних отметках месяца
	ErrDayNotSelectable = errors.New("get_day_slots: day is not selectable")

	// ErrStaleResult возвращается, если за время расчёта в сессии запросили другой день
	ErrStaleResult = errors.New("get_day_slots: result superseded by a newer request")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_day_slots: internal error")
)

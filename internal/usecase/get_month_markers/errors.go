package get_month_markers

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_month_markers: invalid input")

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("get_month_markers: service not found")

	// ErrServiceMismatch возвращается, когда услуга принадлежит другому специалисту
	ErrServiceMismatch = errors.New("get_month_markers: service does not belong to professional")

	// ErrSessionNotFound возвращается, если сессия закрыта или истекла
	ErrSessionNotFound = errors.New("get_month_markers: booking session not found")

	// ErrSessionMismatch возвращается, если сессия открыта для другой услуги или другого клиента
	ErrSessionMismatch = errors.New("get_month_markers: booking session does not match request")

	// ErrStaleResult возвращается, если за время расчёта в сессии запросили другой месяц
	ErrStaleResult = errors.New("get_month_markers: result superseded by a newer request")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_month_markers: internal error")
)

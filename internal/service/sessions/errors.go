package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия закрыта или истекла
	ErrSessionNotFound = errors.New("booking session not found")

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceMismatch возвращается, когда услуга принадлежит другому специалисту
	ErrServiceMismatch = errors.New("service does not belong to professional")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому клиенту
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

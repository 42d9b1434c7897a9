package schedule

import "errors"

var (
	// ErrAccessDenied возвращается, когда часы меняет не сам специалист
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных рабочих часах
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package contracts

import "errors"

var (
	// ErrContractNotFound возвращается, когда контракт не найден
	ErrContractNotFound = errors.New("contract not found")

	// ErrAccessDenied возвращается, когда пользователь не участник контракта
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

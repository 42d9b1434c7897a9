package contract

import "errors"

var (
	// ErrContractNotFound возвращается, когда контракт не найден
	ErrContractNotFound = errors.New("contract.repository: contract not found")

	// ErrCreditsOutOfRange возвращается, когда used_credits вышел бы за [0, total_credits]
	ErrCreditsOutOfRange = errors.New("contract.repository: used credits out of range")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("contract.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("contract.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("contract.repository: failed to scan row")
)

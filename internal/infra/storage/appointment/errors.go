package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrAppointmentOverlap возвращается, когда встреча пересекается с уже запланированной
	// (нарушение exclusion constraint, SQLSTATE 23P01)
	ErrAppointmentOverlap = errors.New("appointment.repository: appointment overlaps a scheduled one")

	// ErrCannotCancel возвращается, когда встреча уже не в статусе scheduled
	ErrCannotCancel = errors.New("appointment.repository: appointment cannot be cancelled")

	// ErrInvalidFilter возвращается, когда в фильтре не задан владелец интервалов
	ErrInvalidFilter = errors.New("appointment.repository: exactly one of professional or client must be set")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

package domain

import "errors"

var (
	// ErrQuotaExceeded возвращается при попытке выбрать больше слотов, чем сессий в пакете
	ErrQuotaExceeded = errors.New("domain: session quota reached")

	// ErrSlotUnavailable возвращается при выборе слота, который не свободен
	ErrSlotUnavailable = errors.New("domain: slot is not available")

	// ErrInvalidSlotID возвращается, когда идентификатор слота не является RFC3339-моментом
	ErrInvalidSlotID = errors.New("domain: invalid slot id")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("domain: invalid date")

	// ErrInvalidService возвращается при некорректном описании услуги
	ErrInvalidService = errors.New("domain: invalid service definition")

	// ErrInvalidWorkingHours возвращается при некорректных рабочих часах
	ErrInvalidWorkingHours = errors.New("domain: invalid working hours")
)

package confirm_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, если сессия закрыта или истекла
	ErrSessionNotFound = errors.New("confirm_booking: booking session not found")

	// ErrAccessDenied возвращается, если сессия принадлежит другому клиенту
	ErrAccessDenied = errors.New("confirm_booking: access denied")

	// ErrEmptySelection возвращается при подтверждении без выбранных слотов
	ErrEmptySelection = errors.New("confirm_booking: no slots selected")

	// ErrQuotaExceeded возвращается, если слотов выбрано больше, чем сессий в пакете услуги
	ErrQuotaExceeded = errors.New("confirm_booking: selection exceeds package size")

	// ErrServiceNotFound возвращается, когда услуги больше нет в каталоге
	ErrServiceNotFound = errors.New("confirm_booking: service not found")

	// ErrInvalidSlot возвращается, если выбранный слот не лежит на сетке рабочего дня
	ErrInvalidSlot = errors.New("confirm_booking: slot is not on the schedule grid")

	// ErrSlotNotAvailable возвращается, если слот уже занят или уже начался
	ErrSlotNotAvailable = errors.New("confirm_booking: slot is not available")

	// ErrBookingInProgress возвращается, если календарь специалиста или клиента сейчас бронируется другим запросом
	ErrBookingInProgress = errors.New("confirm_booking: another booking is in progress")

	// ErrBookingFailed возвращается, если запись не удалась; ничего не сохранено, запрос можно повторить
	ErrBookingFailed = errors.New("confirm_booking: booking failed, please retry")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("confirm_booking: internal error")
)

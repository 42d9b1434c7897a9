package toggle_slot

import "errors"

var (
	// ErrInvalidSlot возвращается, если идентификатор слота некорректен
	ErrInvalidSlot = errors.New("toggle_slot: invalid slot id")

	// ErrSessionNotFound возвращается, если сессия закрыта или истекла
	ErrSessionNotFound = errors.New("toggle_slot: booking session not found")

	// ErrAccessDenied возвращается, если сессия принадлежит другому клиенту
	ErrAccessDenied = errors.New("toggle_slot: access denied")

	// ErrSlotNotAvailable возвращается при выборе слота, который не был предложен свободным
	ErrSlotNotAvailable = errors.New("toggle_slot: slot is not available")

	// ErrConflict возвращается, если сессию не удалось обновить из-за параллельных изменений
	ErrConflict = errors.New("toggle_slot: concurrent update, retry")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("toggle_slot: internal error")
)

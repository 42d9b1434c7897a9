package toggle_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	sessionStore "github.com/m04kA/SMC-CoachingService/internal/infra/session"
)

const (
	resultSelected      = "selected"
	resultDeselected    = "deselected"
	resultQuotaExceeded = "quota_exceeded"
	resultUnavailable   = "unavailable"
)

// UseCase use case для выбора слота и снятия выбора
type UseCase struct {
	sessions SessionStore
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionStore, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute переключает слот в выборе сессии
//
// Доступность слота берётся из последних слотов дня, опубликованных в сессию.
// Превышение квоты не ошибка: возвращается неизменённый выбор с QuotaExceeded = true
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleSlot: session=%s, client=%d, slot=%s", req.SessionID, req.ClientID, req.SlotID)

	// 1. Разбираем идентификатор слота
	slotID, err := domain.ParseSlotID(req.SlotID)
	if err != nil {
		uc.logger.Warn("ToggleSlot: invalid slot id %q", req.SlotID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// 2. Последние предложенные клиенту слоты дня
	day, err := uc.sessions.GetDay(ctx, req.SessionID)
	if err != nil {
		uc.logger.Error("ToggleSlot: failed to get day slots of session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get day slots: %v", ErrInternal, err)
	}
	available := day.IsAvailable(slotID)

	// 3. Применяем переход к выбору сессии
	quotaExceeded := false
	var unchanged domain.SlotSelection

	session, err := uc.sessions.Update(ctx, req.SessionID, func(session *domain.BookingSession) error {
		quotaExceeded = false
		if session.ClientID != req.ClientID {
			return ErrAccessDenied
		}

		next, err := session.Selection.Toggle(slotID, available)
		if errors.Is(err, domain.ErrQuotaExceeded) {
			quotaExceeded = true
			unchanged = session.Selection
			return err
		}
		if err != nil {
			return err
		}

		session.Selection = next
		return nil
	})

	// 4. Разбираем результат
	if err != nil {
		switch {
		case quotaExceeded:
			uc.logger.Info("ToggleSlot: session=%s quota of %d slots reached", req.SessionID, unchanged.Limit)
			uc.metrics.RecordSelectionToggle(resultQuotaExceeded)
			return &Response{Selection: unchanged, QuotaExceeded: true}, nil
		case errors.Is(err, domain.ErrSlotUnavailable):
			uc.logger.Warn("ToggleSlot: slot %s was not offered as available in session=%s", slotID, req.SessionID)
			uc.metrics.RecordSelectionToggle(resultUnavailable)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrAccessDenied):
			uc.logger.Warn("ToggleSlot: client=%d does not own session=%s", req.ClientID, req.SessionID)
			return nil, ErrAccessDenied
		case errors.Is(err, sessionStore.ErrSessionNotFound):
			uc.logger.Warn("ToggleSlot: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionStore.ErrConcurrentUpdate):
			uc.logger.Warn("ToggleSlot: session=%s is updated concurrently", req.SessionID)
			return nil, ErrConflict
		default:
			uc.logger.Error("ToggleSlot: failed to update session=%s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}
	}

	selected := session.Selection.Contains(slotID)
	if selected {
		uc.metrics.RecordSelectionToggle(resultSelected)
	} else {
		uc.metrics.RecordSelectionToggle(resultDeselected)
	}

	uc.logger.Info("ToggleSlot: session=%s slot=%s selected=%t, %d/%d",
		req.SessionID, slotID, selected, session.Selection.Len(), session.Selection.Limit)

	return &Response{
		Selection: session.Selection,
		Selected:  selected,
	}, nil
}

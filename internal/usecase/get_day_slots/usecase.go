package get_day_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/availability"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	sessionStore "github.com/m04kA/SMC-CoachingService/internal/infra/session"
	catalogClient "github.com/m04kA/SMC-CoachingService/internal/integrations/catalogservice"
)

const (
	resultOK       = "ok"
	resultDegraded = "degraded"
	resultStale    = "stale"
)

// UseCase use case для получения слотов выбранного дня
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         CatalogClient
	schedule        ScheduleProvider
	sessions        SessionStore
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog CatalogClient,
	schedule ScheduleProvider,
	sessions SessionStore,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		schedule:        schedule,
		sessions:        sessions,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: client=%d, professional=%d, service=%d, date=%s",
		req.ClientID, req.ProfessionalID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем сессию и регистрируем расчёт
	var seq int64
	if req.SessionID != nil {
		var err error
		seq, err = uc.startSequence(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetDaySlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDaySlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.ProfessionalID != req.ProfessionalID {
		uc.logger.Warn("GetDaySlots: service id=%d belongs to professional=%d, not %d",
			service.ID, service.ProfessionalID, req.ProfessionalID)
		return nil, ErrServiceMismatch
	}

	// 4. Считаем слоты
	loc := uc.schedule.Location()
	now := uc.timeProvider.Now().In(loc)
	from, to := availability.DayRange(req.Date.In(loc))

	slots, degraded := uc.computeSlots(ctx, req, *service, from, to, now)

	// 5. Публикуем слоты в сессию
	if req.SessionID != nil {
		snapshot := &domain.DaySnapshot{
			Date:  req.Date,
			Slots: make(map[domain.SlotID]bool, len(slots)),
		}
		for _, slot := range slots {
			snapshot.Slots[slot.ID()] = slot.Available
		}

		if err := uc.sessions.StoreDayIfCurrent(ctx, *req.SessionID, seq, snapshot); err != nil {
			switch {
			case errors.Is(err, sessionStore.ErrStaleResult):
				uc.logger.Warn("GetDaySlots: session=%s result seq=%d superseded", *req.SessionID, seq)
				uc.metrics.RecordAvailabilityRead(string(domain.ScopeDay), resultStale)
				return nil, ErrStaleResult
			case errors.Is(err, sessionStore.ErrSessionNotFound):
				uc.logger.Warn("GetDaySlots: session=%s closed during computation", *req.SessionID)
				return nil, ErrSessionNotFound
			default:
				uc.logger.Error("GetDaySlots: failed to publish slots to session=%s: %v", *req.SessionID, err)
				return nil, fmt.Errorf("%w: failed to publish slots: %v", ErrInternal, err)
			}
		}
	}

	result := resultOK
	if degraded {
		result = resultDegraded
	}
	uc.metrics.RecordAvailabilityRead(string(domain.ScopeDay), result)

	uc.logger.Info("GetDaySlots: %d slots on %s, degraded=%t", len(slots), req.Date, degraded)

	return &Response{
		Date:     req.Date,
		Slots:    slots,
		Degraded: degraded,
	}, nil
}

func (uc *UseCase) startSequence(ctx context.Context, req *Request) (int64, error) {
	session, err := uc.sessions.Get(ctx, *req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			uc.logger.Warn("GetDaySlots: session=%s not found", *req.SessionID)
			return 0, ErrSessionNotFound
		}
		uc.logger.Error("GetDaySlots: failed to get session=%s: %v", *req.SessionID, err)
		return 0, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if !session.Matches(req.ClientID, req.ProfessionalID, req.ServiceID) {
		uc.logger.Warn("GetDaySlots: session=%s does not match client=%d, professional=%d, service=%d",
			session.ID, req.ClientID, req.ProfessionalID, req.ServiceID)
		return 0, ErrSessionMismatch
	}

	// Пока отметки месяца не посчитаны или день закрыт, выбрать его нельзя
	month, err := uc.sessions.GetMonth(ctx, session.ID)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get month markers of session=%s: %v", session.ID, err)
		return 0, fmt.Errorf("%w: failed to get month markers: %v", ErrInternal, err)
	}
	if !month.IsOpen(req.Date) {
		uc.logger.Warn("GetDaySlots: day %s is not open in session=%s", req.Date, session.ID)
		return 0, ErrDayNotSelectable
	}

	seq, err := uc.sessions.NextSequence(ctx, session.ID, domain.ScopeDay)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return 0, ErrSessionNotFound
		}
		uc.logger.Error("GetDaySlots: failed to start sequence for session=%s: %v", session.ID, err)
		return 0, fmt.Errorf("%w: failed to start sequence: %v", ErrInternal, err)
	}

	return seq, nil
}

func (uc *UseCase) computeSlots(
	ctx context.Context,
	req *Request,
	service domain.Service,
	from, to, now time.Time,
) ([]domain.AnnotatedSlot, bool) {
	hours, err := uc.schedule.WorkingHours(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get working hours of professional=%d: %v", req.ProfessionalID, err)
		return []domain.AnnotatedSlot{}, true
	}

	busy, err := loadBusy(ctx, uc.appointmentRepo, req.ProfessionalID, req.ClientID, from, to)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to read busy intervals: %v", err)
		return []domain.AnnotatedSlot{}, true
	}

	return availability.ComputeDaySlots(from, busy, service, hours, now), false
}

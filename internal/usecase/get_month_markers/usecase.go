package get_month_markers

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

// UseCase use case для получения отметок доступности по дням месяца
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

// Execute выполняет use case получения отметок месяца
//
// Ошибка чтения занятости не возвращается: месяц отдаётся закрытым с Degraded = true.
// Если задана сессия, результат публикуется в неё, только пока этот расчёт последний
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthMarkers: client=%d, professional=%d, service=%d, month=%04d-%02d",
		req.ClientID, req.ProfessionalID, req.ServiceID, req.Month.Year, int(req.Month.Month))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthMarkers: validation failed: %v", err)
		return nil, err
	}

	// 2. Регистрируем расчёт в сессии до чтения данных
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
			uc.logger.Warn("GetMonthMarkers: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetMonthMarkers: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.ProfessionalID != req.ProfessionalID {
		uc.logger.Warn("GetMonthMarkers: service id=%d belongs to professional=%d, not %d",
			service.ID, service.ProfessionalID, req.ProfessionalID)
		return nil, ErrServiceMismatch
	}

	// 4. Границы месяца в часовом поясе расписания
	loc := uc.schedule.Location()
	now := uc.timeProvider.Now().In(loc)
	anchor := req.Month.In(loc)
	from, to := availability.MonthRange(anchor)
	month := domain.DateOf(from)

	// 5. Читаем рабочие часы и занятость, при ошибке отдаём закрытый месяц
	days, degraded := uc.computeDays(ctx, req, *service, from, to, now)

	// 6. Публикуем отметки в сессию
	if req.SessionID != nil {
		snapshot := &domain.MonthSnapshot{Month: month, Days: days}
		if err := uc.sessions.StoreMonthIfCurrent(ctx, *req.SessionID, seq, snapshot); err != nil {
			switch {
			case errors.Is(err, sessionStore.ErrStaleResult):
				uc.logger.Warn("GetMonthMarkers: session=%s result seq=%d superseded", *req.SessionID, seq)
				uc.metrics.RecordAvailabilityRead(string(domain.ScopeMonth), resultStale)
				return nil, ErrStaleResult
			case errors.Is(err, sessionStore.ErrSessionNotFound):
				uc.logger.Warn("GetMonthMarkers: session=%s closed during computation", *req.SessionID)
				return nil, ErrSessionNotFound
			default:
				uc.logger.Error("GetMonthMarkers: failed to publish markers to session=%s: %v", *req.SessionID, err)
				return nil, fmt.Errorf("%w: failed to publish markers: %v", ErrInternal, err)
			}
		}
	}

	result := resultOK
	if degraded {
		result = resultDegraded
	}
	uc.metrics.RecordAvailabilityRead(string(domain.ScopeMonth), result)

	uc.logger.Info("GetMonthMarkers: computed %d days for %04d-%02d, degraded=%t",
		len(days), month.Year, int(month.Month), degraded)

	return &Response{
		Month:    month,
		Days:     days,
		Degraded: degraded,
	}, nil
}

func (uc *UseCase) startSequence(ctx context.Context, req *Request) (int64, error) {
	session, err := uc.sessions.Get(ctx, *req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			uc.logger.Warn("GetMonthMarkers: session=%s not found", *req.SessionID)
			return 0, ErrSessionNotFound
		}
		uc.logger.Error("GetMonthMarkers: failed to get session=%s: %v", *req.SessionID, err)
		return 0, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if !session.Matches(req.ClientID, req.ProfessionalID, req.ServiceID) {
		uc.logger.Warn("GetMonthMarkers: session=%s does not match client=%d, professional=%d, service=%d",
			session.ID, req.ClientID, req.ProfessionalID, req.ServiceID)
		return 0, ErrSessionMismatch
	}

	seq, err := uc.sessions.NextSequence(ctx, session.ID, domain.ScopeMonth)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return 0, ErrSessionNotFound
		}
		uc.logger.Error("GetMonthMarkers: failed to start sequence for session=%s: %v", session.ID, err)
		return 0, fmt.Errorf("%w: failed to start sequence: %v", ErrInternal, err)
	}

	return seq, nil
}

func (uc *UseCase) computeDays(
	ctx context.Context,
	req *Request,
	service domain.Service,
	from, to, now time.Time,
) (map[domain.Date]domain.DayAvailability, bool) {
	hours, err := uc.schedule.WorkingHours(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetMonthMarkers: failed to get working hours of professional=%d: %v", req.ProfessionalID, err)
		return availability.UnavailableMonth(from, now), true
	}

	busy, err := loadBusy(ctx, uc.appointmentRepo, req.ProfessionalID, req.ClientID, from, to)
	if err != nil {
		uc.logger.Error("GetMonthMarkers: failed to read busy intervals: %v", err)
		return availability.UnavailableMonth(from, now), true
	}

	return availability.ComputeMonthAvailability(from, busy, service, hours, now), false
}

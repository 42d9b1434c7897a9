package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-CoachingService/internal/availability"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/events"
	"github.com/m04kA/SMC-CoachingService/internal/infra/lock"
	sessionStore "github.com/m04kA/SMC-CoachingService/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/SMC-CoachingService/internal/integrations/catalogservice"
)

const (
	resultCommitted       = "committed"
	resultSlotUnavailable = "slot_unavailable"
	resultInProgress      = "in_progress"
	resultFailed          = "failed"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_booking")

// UseCase use case для подтверждения бронирования: контракт и встречи по выбранным слотам
type UseCase struct {
	sessions        SessionStore
	catalog         CatalogClient
	schedule        ScheduleProvider
	locker          Locker
	appointmentRepo AppointmentRepository
	contractRepo    ContractRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	catalog CatalogClient,
	schedule ScheduleProvider,
	locker Locker,
	appointmentRepo AppointmentRepository,
	contractRepo ContractRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:        sessions,
		catalog:         catalog,
		schedule:        schedule,
		locker:          locker,
		appointmentRepo: appointmentRepo,
		contractRepo:    contractRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения бронирования
//
// Контракт, встречи и outbox-событие пишутся в одной сериализуемой транзакции
// под блокировкой календарей специалиста и клиента. Внутри транзакции занятость
// перечитывается и каждый слот проверяется заново
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "ConfirmBooking", trace.WithAttributes(
		attribute.String("booking.session_id", req.SessionID),
		attribute.Int64("booking.client_id", req.ClientID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("ConfirmBooking: session=%s, client=%d", req.SessionID, req.ClientID)

	// 1. Получаем сессию
	session, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			uc.logger.Warn("ConfirmBooking: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}
	if session.ClientID != req.ClientID {
		uc.logger.Warn("ConfirmBooking: client=%d does not own session=%s", req.ClientID, req.SessionID)
		return nil, ErrAccessDenied
	}

	// 2. Проверяем выбор
	if session.Selection.IsEmpty() {
		uc.logger.Warn("ConfirmBooking: session=%s has no selected slots", session.ID)
		return nil, ErrEmptySelection
	}
	starts, err := session.Selection.Starts()
	if err != nil {
		uc.logger.Error("ConfirmBooking: session=%s holds a malformed slot: %v", session.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, session.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ConfirmBooking: service id=%d not found", session.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get service id=%d: %v", session.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if len(starts) > service.TotalSessions {
		uc.logger.Warn("ConfirmBooking: session=%s selected %d slots, package has %d",
			session.ID, len(starts), service.TotalSessions)
		return nil, ErrQuotaExceeded
	}

	// 4. Получаем рабочие часы специалиста
	hours, err := uc.schedule.WorkingHours(ctx, session.ProfessionalID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to get working hours of professional=%d: %v", session.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	span.SetAttributes(
		attribute.Int64("booking.professional_id", session.ProfessionalID),
		attribute.Int64("booking.service_id", session.ServiceID),
		attribute.Int("booking.slots", len(starts)),
	)

	// 5. Под блокировкой календарей пишем всё в одной транзакции
	var (
		contract     *domain.Contract
		appointments []*domain.Appointment
	)
	keys := []string{lock.ProfessionalKey(session.ProfessionalID), lock.ClientKey(session.ClientID)}

	err = uc.locker.WithLock(ctx, keys, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			var err error
			contract, appointments, err = uc.commit(txCtx, session, *service, hours, starts)
			return err
		})
	})
	if err != nil {
		return nil, uc.commitError(session, err)
	}

	// 6. Сессия больше не нужна, её отметки и выбор отбрасываются
	if err := uc.sessions.Delete(ctx, session.ID); err != nil {
		uc.logger.Warn("ConfirmBooking: failed to delete session=%s: %v", session.ID, err)
	}

	uc.metrics.RecordBookingCommit(resultCommitted)
	uc.logger.Info("ConfirmBooking: created contract id=%d with %d appointments, credits %d/%d",
		contract.ID, len(appointments), contract.UsedCredits, contract.TotalCredits)

	return &Response{
		Contract:     contract,
		Appointments: appointments,
	}, nil
}

// commit выполняется внутри транзакции и может быть повторён целиком
// Ошибки репозиториев оборачиваются через %w, чтобы txmanager видел конфликт сериализации
func (uc *UseCase) commit(
	ctx context.Context,
	session *domain.BookingSession,
	service domain.Service,
	hours domain.WorkingHours,
	starts []time.Time,
) (*domain.Contract, []*domain.Appointment, error) {
	now := uc.timeProvider.Now()
	loc := uc.schedule.Location()
	duration := service.Duration()

	// 5.1. Перечитываем занятость специалиста и клиента с блокировкой строк (FOR UPDATE)
	from := starts[0]
	to := starts[len(starts)-1].Add(duration)

	professionalBusy, err := uc.appointmentRepo.GetBusyIntervals(ctx, domain.BusyFilter{
		ProfessionalID: &session.ProfessionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get professional busy intervals: %w", err)
	}

	clientBusy, err := uc.appointmentRepo.GetBusyIntervals(ctx, domain.BusyFilter{
		ClientID: &session.ClientID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get client busy intervals: %w", err)
	}

	busy := availability.MergeBusy(professionalBusy, clientBusy)

	// 5.2. Проверяем каждый слот: на сетке, не начался, свободен
	for _, start := range starts {
		local := start.In(loc)
		if !availability.IsGridSlot(local, hours, service.DurationMinutes) {
			return nil, nil, fmt.Errorf("%w: %s", ErrInvalidSlot, domain.NewSlotID(start))
		}
		if local.Before(now) {
			return nil, nil, fmt.Errorf("%w: %s already started", ErrSlotNotAvailable, domain.NewSlotID(start))
		}
		if !availability.IsFree(domain.CandidateSlot{Start: local, End: local.Add(duration)}, busy) {
			return nil, nil, fmt.Errorf("%w: %s overlaps a scheduled appointment", ErrSlotNotAvailable, domain.NewSlotID(start))
		}
	}

	// 5.3. Создаем контракт, кредиты списываются сразу за все выбранные слоты
	contract, err := uc.contractRepo.Create(ctx,
		domain.NewContract(service, session.ClientID, session.ProfessionalID, len(starts), now))
	if err != nil {
		return nil, nil, fmt.Errorf("create contract: %w", err)
	}

	// 5.4. Создаем встречи одной пачкой
	batch := make([]*domain.Appointment, 0, len(starts))
	for _, start := range starts {
		batch = append(batch, &domain.Appointment{
			ContractID:     contract.ID,
			ClientID:       session.ClientID,
			ProfessionalID: session.ProfessionalID,
			StartTime:      start,
			EndTime:        start.Add(duration),
			Status:         domain.AppointmentScheduled,
		})
	}

	appointments, err := uc.appointmentRepo.CreateBatch(ctx, batch)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentOverlap) {
			return nil, nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		return nil, nil, fmt.Errorf("create appointments: %w", err)
	}

	// 5.5. Событие для outbox в той же транзакции
	event, err := events.NewContractBooked(ctx, contract, appointments)
	if err != nil {
		return nil, nil, fmt.Errorf("build event: %w", err)
	}
	if err := uc.outboxRepo.Add(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("add outbox event: %w", err)
	}

	return contract, appointments, nil
}

func (uc *UseCase) commitError(session *domain.BookingSession, err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("ConfirmBooking: session=%s: %v", session.ID, err)
		uc.metrics.RecordBookingCommit(resultSlotUnavailable)
		return err
	case errors.Is(err, ErrInvalidSlot):
		uc.logger.Warn("ConfirmBooking: session=%s: %v", session.ID, err)
		uc.metrics.RecordBookingCommit(resultFailed)
		return err
	case errors.Is(err, lock.ErrLockNotAcquired):
		uc.logger.Warn("ConfirmBooking: calendars of professional=%d or client=%d are locked",
			session.ProfessionalID, session.ClientID)
		uc.metrics.RecordBookingCommit(resultInProgress)
		return ErrBookingInProgress
	default:
		uc.logger.Error("ConfirmBooking: session=%s commit failed, nothing written: %v", session.ID, err)
		uc.metrics.RecordBookingCommit(resultFailed)
		return fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}
}

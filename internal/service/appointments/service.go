package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-CoachingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// Service сервис для работы со встречами
type Service struct {
	appointmentRepo AppointmentRepository
	contractRepo    ContractRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	appointmentRepo AppointmentRepository,
	contractRepo ContractRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		contractRepo:    contractRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// ListUserAppointments получает встречи пользователя в выбранной роли
// Пользователь видит только свои встречи
func (s *Service) ListUserAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListUserAppointments: user=%d, role=%s, requester=%d", req.UserID, req.Role, req.RequesterID)

	if req.RequesterID != req.UserID {
		s.logger.Warn("ListUserAppointments: access denied for requester=%d to user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListUserAppointments: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUserAppointments: fetched %d appointments for user=%d", len(list), req.UserID)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет встречу
// Отменить может клиент или специалист. В одной транзакции:
// статус cancelled, кредит возвращается в контракт, событие appointment.cancelled в outbox
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("CancelAppointment: appointment=%d by user=%d", appointmentID, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason longer than %d", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		now := s.timeProvider.Now()

		// 1. Читаем встречу под блокировкой
		appointment, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: get appointment: %w", ErrInternal, err)
		}

		// 2. Проверяем права и статус
		if !appointment.IsParticipant(req.UserID) {
			return ErrAccessDenied
		}
		if !appointment.CanBeCancelled(now) {
			return ErrCannotCancel
		}

		// Кредиты истёкшего контракта не возвращаются
		contract, err := s.contractRepo.GetByID(txCtx, appointment.ContractID)
		if err != nil {
			return fmt.Errorf("%w: get contract: %w", ErrInternal, err)
		}
		if contract.IsExpired(now) {
			return ErrCannotCancel
		}

		// 3. Отменяем встречу
		if err := s.appointmentRepo.Cancel(txCtx, appointmentID, req.CancellationReason, now); err != nil {
			if errors.Is(err, appointmentRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: cancel appointment: %w", ErrInternal, err)
		}

		// 4. Возвращаем кредит в контракт
		if err := s.contractRepo.AdjustUsedCredits(txCtx, appointment.ContractID, -1, now); err != nil {
			return fmt.Errorf("%w: refund credit: %w", ErrInternal, err)
		}

		appointment.Status = domain.AppointmentCancelled
		appointment.CancellationReason = req.CancellationReason
		appointment.CancelledAt = ptr.Ptr(now)
		appointment.UpdatedAt = now

		// 5. Событие для уведомлений
		event, err := events.NewAppointmentCancelled(txCtx, appointment, req.UserID)
		if err != nil {
			return fmt.Errorf("%w: build event: %v", ErrInternal, err)
		}
		if err := s.outboxRepo.Add(txCtx, event); err != nil {
			return fmt.Errorf("%w: write outbox: %w", ErrInternal, err)
		}

		cancelled = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrCannotCancel):
			s.logger.Warn("CancelAppointment: appointment=%d by user=%d rejected: %v", appointmentID, req.UserID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("CancelAppointment: appointment=%d failed: %v", appointmentID, err)
			return nil, err
		default:
			s.logger.Error("CancelAppointment: appointment=%d transaction failed: %v", appointmentID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.logger.Info("CancelAppointment: appointment=%d cancelled, credit returned to contract=%d", cancelled.ID, cancelled.ContractID)
	return models.FromDomainAppointment(cancelled), nil
}

package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	contractRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/contract"
	"github.com/m04kA/SMC-CoachingService/internal/service/contracts/models"
)

// Service сервис для чтения контрактов
type Service struct {
	contractRepo    ContractRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса контрактов
func NewService(contractRepo ContractRepository, appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		contractRepo:    contractRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает контракт со всеми встречами
// Доступен клиенту и специалисту контракта.
// Контракт и встречи читаются одним снимком
func (s *Service) GetByID(ctx context.Context, contractID, userID int64) (*models.ContractResponse, error) {
	s.logger.Info("GetContract: fetching contract id=%d for user=%d", contractID, userID)

	var (
		contract     *domain.Contract
		appointments []*domain.Appointment
	)
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		contract, err = s.contractRepo.GetByID(txCtx, contractID)
		if err != nil {
			if errors.Is(err, contractRepo.ErrContractNotFound) {
				return ErrContractNotFound
			}
			return fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}

		if !contract.IsParticipant(userID) {
			return ErrAccessDenied
		}

		appointments, err = s.appointmentRepo.GetByContractID(txCtx, contractID)
		if err != nil {
			return fmt.Errorf("%w: GetByID - appointments: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrContractNotFound):
			s.logger.Warn("GetContract: contract id=%d not found", contractID)
			return nil, err
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("GetContract: access denied for user=%d to contract id=%d", userID, contractID)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("GetContract: failed to load contract id=%d: %v", contractID, err)
			return nil, err
		default:
			s.logger.Error("GetContract: transaction failed for contract id=%d: %v", contractID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return models.FromDomainContract(contract, appointments), nil
}

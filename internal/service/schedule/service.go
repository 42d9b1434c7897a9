package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CoachingService/internal/service/schedule/models"
)

// Service сервис рабочих часов специалистов
type Service struct {
	repo     ScheduleRepository
	defaults domain.WorkingHours
	location *time.Location
	logger   Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
// defaults применяются к специалистам без своей записи
func NewService(repo ScheduleRepository, defaults domain.WorkingHours, location *time.Location, logger Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		location: location,
		logger:   logger,
	}
}

// WorkingHours возвращает окно специалиста, подставляя окно по умолчанию
func (s *Service) WorkingHours(ctx context.Context, professionalID int64) (domain.WorkingHours, error) {
	hours, _, err := s.resolve(ctx, professionalID)
	return hours, err
}

// Location часовой пояс, в котором считаются дни и часы
func (s *Service) Location() *time.Location {
	return s.location
}

// Get возвращает рабочие часы специалиста
func (s *Service) Get(ctx context.Context, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for professional=%d", professionalID)

	hours, isDefault, err := s.resolve(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	return models.FromDomain(hours, s.location, isDefault), nil
}

// Update задаёт рабочие часы; менять их может только сам специалист
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: professional=%d, user=%d, hours=%d-%d",
		req.ProfessionalID, req.UserID, req.WorkStartHour, req.WorkEndHour)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("UpdateSchedule: access denied for user=%d to professional=%d", req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	hours := req.ToDomain()
	if err := hours.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: invalid hours for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.repo.Upsert(ctx, hours)
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: professional=%d now works %d-%d", saved.ProfessionalID, saved.StartHour, saved.EndHour)
	return models.FromDomain(*saved, s.location, false), nil
}

func (s *Service) resolve(ctx context.Context, professionalID int64) (domain.WorkingHours, bool, error) {
	hours, err := s.repo.GetByProfessional(ctx, professionalID)
	if err == nil {
		return *hours, false, nil
	}
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		fallback := s.defaults
		fallback.ProfessionalID = professionalID
		return fallback, true, nil
	}

	s.logger.Error("GetSchedule: repository error for professional=%d: %v", professionalID, err)
	return domain.WorkingHours{}, false, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
}

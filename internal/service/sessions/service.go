package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	sessionStore "github.com/m04kA/SMC-CoachingService/internal/infra/session"
	"github.com/m04kA/SMC-CoachingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
)

// Service сервис сессий бронирования (открытое окно выбора слотов)
type Service struct {
	store        SessionStore
	catalog      CatalogClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(store SessionStore, catalog CatalogClient, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		store:        store,
		catalog:      catalog,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Open открывает сессию для пары специалист/услуга
// Квота выбора равна числу сессий в пакете услуги
func (s *Service) Open(ctx context.Context, req *models.OpenSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("OpenSession: client=%d, professional=%d, service=%d", req.ClientID, req.ProfessionalID, req.ServiceID)

	if req.ProfessionalID <= 0 || req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: professionalId and serviceId are required", ErrInvalidInput)
	}

	service, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			s.logger.Warn("OpenSession: service=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("OpenSession: catalog error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: catalog: %v", ErrInternal, err)
	}

	if service.ProfessionalID != req.ProfessionalID {
		s.logger.Warn("OpenSession: service=%d belongs to professional=%d, not %d",
			req.ServiceID, service.ProfessionalID, req.ProfessionalID)
		return nil, ErrServiceMismatch
	}

	session := &domain.BookingSession{
		ID:              uuid.NewString(),
		ClientID:        req.ClientID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Selection:       domain.NewSlotSelection(service.TotalSessions),
		CreatedAt:       s.timeProvider.Now(),
	}

	if err := s.store.Create(ctx, session); err != nil {
		s.logger.Error("OpenSession: failed to store session for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: store: %v", ErrInternal, err)
	}

	s.logger.Info("OpenSession: session=%s opened, limit=%d", session.ID, session.Selection.Limit)
	return models.FromDomainSession(session), nil
}

// Get возвращает сессию её владельцу
func (s *Service) Get(ctx context.Context, sessionID string, userID int64) (*models.SessionResponse, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSession(session), nil
}

// Close закрывает сессию и отбрасывает всё её состояние
func (s *Service) Close(ctx context.Context, sessionID string, userID int64) error {
	s.logger.Info("CloseSession: session=%s by user=%d", sessionID, userID)

	if _, err := s.load(ctx, sessionID, userID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("CloseSession: failed to delete session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: delete: %v", ErrInternal, err)
	}

	s.logger.Info("CloseSession: session=%s closed", sessionID)
	return nil
}

func (s *Service) load(ctx context.Context, sessionID string, userID int64) (*domain.BookingSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Session: failed to load session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: load: %v", ErrInternal, err)
	}

	if session.ClientID != userID {
		s.logger.Warn("Session: access denied for user=%d to session=%s", userID, sessionID)
		return nil, ErrAccessDenied
	}

	return session, nil
}

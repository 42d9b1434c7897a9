package catalogservice

import "github.com/m04kA/SMC-CoachingService/internal/domain"

// Service модель услуги из CatalogService
type Service struct {
	ID              int64    `json:"id"`
	ProfessionalID  int64    `json:"professionalId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	TotalSessions   int      `json:"totalSessions"`
	ValidityDays    int      `json:"validityDays"`
	Price           *float64 `json:"price,omitempty"`
}

// ToDomain преобразует ответ каталога в доменную услугу
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		ProfessionalID:  s.ProfessionalID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		TotalSessions:   s.TotalSessions,
		ValidityDays:    s.ValidityDays,
		Price:           s.Price,
	}
}

// FromDomain обратное преобразование, используется кэшем
func FromDomain(s *domain.Service) *Service {
	return &Service{
		ID:              s.ID,
		ProfessionalID:  s.ProfessionalID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		TotalSessions:   s.TotalSessions,
		ValidityDays:    s.ValidityDays,
		Price:           s.Price,
	}
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

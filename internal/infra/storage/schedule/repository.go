package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/psqlbuilder"
)

// Repository репозиторий рабочих часов специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessional получает рабочие часы специалиста
// Если записи нет, возвращает ErrScheduleNotFound: сервис подставит часы по умолчанию
func (r *Repository) GetByProfessional(ctx context.Context, professionalID int64) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"professional_id",
		"work_start_hour",
		"work_end_hour",
		"created_at",
		"updated_at",
	).
		From("professional_schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.WorkingHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ProfessionalID,
		&hours.StartHour,
		&hours.EndHour,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - scan schedule: %w", ErrScanRow, err)
	}

	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}

// Upsert создает или обновляет рабочие часы специалиста
func (r *Repository) Upsert(ctx context.Context, hours *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("professional_schedules").
		Columns(
			"professional_id",
			"work_start_hour",
			"work_end_hour",
		).
		Values(
			hours.ProfessionalID,
			hours.StartHour,
			hours.EndHour,
		).
		Suffix("ON CONFLICT (professional_id) DO UPDATE SET " +
			"work_start_hour = EXCLUDED.work_start_hour, " +
			"work_end_hour = EXCLUDED.work_end_hour, " +
			"updated_at = NOW() " +
			"RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return hours, nil
}

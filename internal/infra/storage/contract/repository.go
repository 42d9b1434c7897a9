package contract

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с контрактами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория контрактов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает контракт
// Используется только внутри транзакции подтверждения бронирования:
// контракт без встреч в базе остаться не должен
func (r *Repository) Create(ctx context.Context, contract *domain.Contract) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contracts").
		Columns(
			"client_id",
			"professional_id",
			"service_id",
			"start_date",
			"end_date",
			"total_credits",
			"used_credits",
			"status",
		).
		Values(
			contract.ClientID,
			contract.ProfessionalID,
			contract.ServiceID,
			contract.StartDate,
			contract.EndDate,
			contract.TotalCredits,
			contract.UsedCredits,
			contract.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&contract.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	contract.CreatedAt = createdAt.Time
	contract.UpdatedAt = updatedAt.Time

	return contract, nil
}

// GetByID получает контракт по ID
// Внутри транзакции на запись строка блокируется FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"client_id",
		"professional_id",
		"service_id",
		"start_date",
		"end_date",
		"total_credits",
		"used_credits",
		"status",
		"created_at",
		"updated_at",
	).
		From("contracts").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var contract domain.Contract
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&contract.ID,
		&contract.ClientID,
		&contract.ProfessionalID,
		&contract.ServiceID,
		&contract.StartDate,
		&contract.EndDate,
		&contract.TotalCredits,
		&contract.UsedCredits,
		&contract.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan contract: %w", ErrScanRow, err)
	}

	contract.CreatedAt = createdAt.Time
	contract.UpdatedAt = updatedAt.Time

	return &contract, nil
}

// AdjustUsedCredits изменяет used_credits на delta (отрицательное значение возвращает кредит)
// Условие в WHERE не даёт выйти за [0, total_credits], в этом случае ErrCreditsOutOfRange
func (r *Repository) AdjustUsedCredits(ctx context.Context, id int64, delta int, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("used_credits", squirrel.Expr("used_credits + ?", delta)).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("used_credits + ? BETWEEN 0 AND total_credits", delta)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AdjustUsedCredits - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AdjustUsedCredits - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AdjustUsedCredits - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCreditsOutOfRange
	}

	return nil
}

// ExpireOverdue переводит в expired активные контракты, срок которых закончился к now
// Возвращает число обновлённых контрактов
func (r *Repository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("status", domain.ContractExpired).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.ContractActive}).
		Where(squirrel.LtOrEq{"end_date": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOverdue - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOverdue - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOverdue - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

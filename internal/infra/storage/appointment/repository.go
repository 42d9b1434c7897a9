package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/psqlbuilder"
)

// pgExclusionViolation SQLSTATE 23P01
const pgExclusionViolation = "23P01"

var columns = []string{
	"id",
	"contract_id",
	"client_id",
	"professional_id",
	"start_time",
	"end_time",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает встречи одним INSERT
// Вызывается внутри транзакции подтверждения бронирования вместе с созданием контракта.
// Если встреча пересекается с уже запланированной у того же специалиста или клиента,
// база отклоняет всю пачку, и возвращается ErrAppointmentOverlap
func (r *Repository) CreateBatch(ctx context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error) {
	if len(appointments) == 0 {
		return appointments, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("appointments").
		Columns(
			"contract_id",
			"client_id",
			"professional_id",
			"start_time",
			"end_time",
			"status",
		)
	for _, a := range appointments {
		insert = insert.Values(a.ContractID, a.ClientID, a.ProfessionalID, a.StartTime, a.EndTime, a.Status)
	}

	query, args, err := insert.Suffix("RETURNING id, start_time, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError("CreateBatch - execute insert", err)
	}
	defer rows.Close()

	// RETURNING не гарантирует порядок строк, сопоставляем по времени начала
	byStart := make(map[int64]*domain.Appointment, len(appointments))
	for _, a := range appointments {
		byStart[a.StartTime.UnixNano()] = a
	}

	for rows.Next() {
		var (
			id                   int64
			startTime            time.Time
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&id, &startTime, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %v", ErrScanRow, err)
		}

		a, ok := byStart[startTime.UnixNano()]
		if !ok {
			return nil, fmt.Errorf("%w: CreateBatch - unexpected start_time %s in returning", ErrScanRow, startTime)
		}
		a.ID = id
		a.CreatedAt = createdAt.Time
		a.UpdatedAt = updatedAt.Time
	}

	if err := rows.Err(); err != nil {
		return nil, mapWriteError("CreateBatch - rows error", err)
	}

	return appointments, nil
}

// GetBusyIntervals возвращает запланированные встречи специалиста или клиента,
// которые пересекаются с периодом [filter.From, filter.To)
//
// Внутри транзакции строки блокируются FOR UPDATE: подтверждение бронирования
// перечитывает занятость под блокировкой перед записью
func (r *Repository) GetBusyIntervals(ctx context.Context, filter domain.BusyFilter) ([]domain.BusyInterval, error) {
	if (filter.ProfessionalID == nil) == (filter.ClientID == nil) {
		return nil, ErrInvalidFilter
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("start_time", "end_time").
		From("appointments").
		Where(squirrel.Eq{"status": domain.AppointmentScheduled}).
		Where(squirrel.Lt{"start_time": filter.To}).
		Where(squirrel.Gt{"end_time": filter.From}).
		OrderBy("start_time ASC")

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	busy := make([]domain.BusyInterval, 0)
	for rows.Next() {
		var interval domain.BusyInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("%w: GetBusyIntervals - scan row: %v", ErrScanRow, err)
		}
		busy = append(busy, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - rows error: %w", ErrScanRow, err)
	}

	return busy, nil
}

// GetByID получает встречу по ID
// Внутри транзакции строка блокируется FOR UPDATE (отмена встречи)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByContractID получает все встречи контракта в хронологическом порядке
func (r *Repository) GetByContractID(ctx context.Context, contractID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"contract_id": contractID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByContractID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByContractID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// List получает встречи пользователя с фильтрацией
// Поддерживает фильтрацию по:
// - роли (ClientID или ProfessionalID, обязательно одно из них)
// - статусу (Status) - опционально
// - периоду начала встречи (From, To) - опционально
//
// Пример: все запланированные тренировки специалиста на неделю
//
//	status := domain.AppointmentScheduled
//	filter := domain.AppointmentsFilter{ProfessionalID: &id, Status: &status, From: &monday, To: &nextMonday}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if (filter.ProfessionalID == nil) == (filter.ClientID == nil) {
		return nil, ErrInvalidFilter
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		OrderBy("start_time ASC")

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Cancel отменяет запланированную встречу
// Возвращает ErrCannotCancel, если встреча не существует или уже не scheduled
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.AppointmentCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.AppointmentScheduled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ContractID,
		&a.ClientID,
		&a.ProfessionalID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.CancellationReason,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс встреч
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// mapWriteError переводит нарушение exclusion constraint в ErrAppointmentOverlap
// Остальные ошибки оборачиваются с сохранением *pq.Error для повторов транзакции
func mapWriteError(step string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
		return fmt.Errorf("%w: %s: constraint %s", ErrAppointmentOverlap, step, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, step, err)
}

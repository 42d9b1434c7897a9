package appointment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

var (
	day     = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, func() { _ = db.Close() }
}

func TestCreateBatch_AssignsIDsByStartTime(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	first := &domain.Appointment{ContractID: 7, ClientID: 1, ProfessionalID: 2,
		StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour), Status: domain.AppointmentScheduled}
	second := &domain.Appointment{ContractID: 7, ClientID: 1, ProfessionalID: 2,
		StartTime: day.Add(14 * time.Hour), EndTime: day.Add(15 * time.Hour), Status: domain.AppointmentScheduled}

	// строки RETURNING приходят в обратном порядке
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments (contract_id,client_id,professional_id,start_time,end_time,status) VALUES ($1,$2,$3,$4,$5,$6),($7,$8,$9,$10,$11,$12) RETURNING id, start_time, created_at, updated_at")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "created_at", "updated_at"}).
			AddRow(int64(21), second.StartTime, created, created).
			AddRow(int64(20), first.StartTime, created, created))

	result, err := repo.CreateBatch(context.Background(), []*domain.Appointment{first, second})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(20), first.ID)
	assert.Equal(t, int64(21), second.ID)
	assert.Equal(t, created, first.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_Empty(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	result, err := repo.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_ExclusionViolation(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "appointments_professional_no_overlap"})

	_, err := repo.CreateBatch(context.Background(), []*domain.Appointment{{
		ContractID: 1, ClientID: 1, ProfessionalID: 2,
		StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour), Status: domain.AppointmentScheduled,
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAppointmentOverlap)
	assert.NotErrorIs(t, err, ErrExecQuery)
}

func TestCreateBatch_KeepsDriverError(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.CreateBatch(context.Background(), []*domain.Appointment{{
		StartTime: day, EndTime: day.Add(time.Hour), Status: domain.AppointmentScheduled,
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestGetBusyIntervals_ByProfessional(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	from, to := day, day.AddDate(0, 0, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_time, end_time FROM appointments WHERE status = $1 AND start_time < $2 AND end_time > $3 AND professional_id = $4 ORDER BY start_time ASC")).
		WithArgs("scheduled", to, from, int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).
			AddRow(day.Add(10*time.Hour), day.Add(11*time.Hour)).
			AddRow(day.Add(14*time.Hour), day.Add(15*time.Hour)))

	busy, err := repo.GetBusyIntervals(context.Background(), domain.BusyFilter{
		ProfessionalID: ptr.Ptr(int64(2)),
		From:           from,
		To:             to,
	})
	require.NoError(t, err)
	require.Len(t, busy, 2)
	assert.Equal(t, day.Add(10*time.Hour), busy[0].Start)
	assert.Equal(t, day.Add(15*time.Hour), busy[1].End)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBusyIntervals_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("client_id = $4 ORDER BY start_time ASC FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	busy, err := repo.GetBusyIntervals(ctx, domain.BusyFilter{
		ClientID: ptr.Ptr(int64(1)),
		From:     day,
		To:       day.AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, busy)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBusyIntervals_InvalidFilter(t *testing.T) {
	repo, _, closeDB := newRepo(t)
	defer closeDB()

	_, err := repo.GetBusyIntervals(context.Background(), domain.BusyFilter{From: day, To: day.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = repo.GetBusyIntervals(context.Background(), domain.BusyFilter{
		ClientID: ptr.Ptr(int64(1)), ProfessionalID: ptr.Ptr(int64(2)), From: day, To: day.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestGetByID(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	mock.ExpectQuery("FROM appointments WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(5), int64(7), int64(1), int64(2), day.Add(10*time.Hour), day.Add(11*time.Hour),
				"scheduled", nil, nil, created, created))

	a, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.ContractID)
	assert.Equal(t, domain.AppointmentScheduled, a.Status)
	assert.Nil(t, a.CancellationReason)
	assert.Nil(t, a.CancelledAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	mock.ExpectQuery("FROM appointments").WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_ClientWithStatus(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE client_id = $1 AND status = $2 ORDER BY start_time ASC")).
		WithArgs(int64(1), "cancelled").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(5), int64(7), int64(1), int64(2), day.Add(10*time.Hour), day.Add(11*time.Hour),
				"cancelled", "sick", created, created, created))

	status := domain.AppointmentCancelled
	list, err := repo.List(context.Background(), domain.AppointmentsFilter{ClientID: ptr.Ptr(int64(1)), Status: &status})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].CancellationReason)
	assert.Equal(t, "sick", *list[0].CancellationReason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1, cancellation_reason = $2, cancelled_at = $3, updated_at = $4 WHERE id = $5 AND status = $6")).
		WithArgs("cancelled", "busy", now, now, int64(5), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 5, ptr.Ptr("busy"), now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo, mock, closeDB := newRepo(t)
	defer closeDB()

	mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 5, nil, time.Now())
	assert.ErrorIs(t, err, ErrCannotCancel)
}

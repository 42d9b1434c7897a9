package contracts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	contractRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/contract"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
)

type fakeContracts map[int64]*domain.Contract

func (f fakeContracts) GetByID(_ context.Context, id int64) (*domain.Contract, error) {
	c, ok := f[id]
	if !ok {
		return nil, contractRepo.ErrContractNotFound
	}
	return c, nil
}

type fakeAppointments struct {
	list []*domain.Appointment
	err  error
}

func (f *fakeAppointments) GetByContractID(context.Context, int64) ([]*domain.Appointment, error) {
	return f.list, f.err
}

type readOnlyTx struct{ calls int }

func (r *readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

func TestGetByID(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	contracts := fakeContracts{99: {ID: 99, ClientID: 1, ProfessionalID: 2, TotalCredits: 10, UsedCredits: 2,
		StartDate: now, EndDate: now.AddDate(0, 0, 30), Status: domain.ContractActive}}
	appointments := &fakeAppointments{list: []*domain.Appointment{
		{ID: 5, ContractID: 99, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: domain.AppointmentScheduled},
		{ID: 6, ContractID: 99, StartTime: now.Add(26 * time.Hour), EndTime: now.Add(27 * time.Hour), Status: domain.AppointmentScheduled},
	}}
	tx := &readOnlyTx{}
	svc := NewService(contracts, appointments, tx, logger.NewNop())

	for _, userID := range []int64{1, 2} {
		resp, err := svc.GetByID(context.Background(), 99, userID)
		require.NoError(t, err)
		assert.Equal(t, 8, resp.RemainingCredits)
		assert.Len(t, resp.Appointments, 2)
		assert.Equal(t, "active", resp.Status)
	}
	assert.Equal(t, 2, tx.calls)
}

func TestGetByID_Errors(t *testing.T) {
	contracts := fakeContracts{99: {ID: 99, ClientID: 1, ProfessionalID: 2}}

	svc := NewService(contracts, &fakeAppointments{}, &readOnlyTx{}, logger.NewNop())
	_, err := svc.GetByID(context.Background(), 100, 1)
	assert.ErrorIs(t, err, ErrContractNotFound)

	_, err = svc.GetByID(context.Background(), 99, 3)
	assert.ErrorIs(t, err, ErrAccessDenied)

	svc = NewService(contracts, &fakeAppointments{err: errors.New("db down")}, &readOnlyTx{}, logger.NewNop())
	_, err = svc.GetByID(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrInternal)
}

package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CoachingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
)

type fakeRepo struct {
	stored  map[int64]domain.WorkingHours
	readErr error
}

func (f *fakeRepo) GetByProfessional(_ context.Context, professionalID int64) (*domain.WorkingHours, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	hours, ok := f.stored[professionalID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return &hours, nil
}

func (f *fakeRepo) Upsert(_ context.Context, hours *domain.WorkingHours) (*domain.WorkingHours, error) {
	hours.UpdatedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	f.stored[hours.ProfessionalID] = *hours
	return hours, nil
}

func newService(repo *fakeRepo) *Service {
	defaults := domain.WorkingHours{StartHour: domain.DefaultWorkStartHour, EndHour: domain.DefaultWorkEndHour}
	return NewService(repo, defaults, time.UTC, logger.NewNop())
}

func TestWorkingHours_FallsBackToDefaults(t *testing.T) {
	svc := newService(&fakeRepo{stored: map[int64]domain.WorkingHours{}})

	hours, err := svc.WorkingHours(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hours.ProfessionalID)
	assert.Equal(t, 8, hours.StartHour)
	assert.Equal(t, 20, hours.EndHour)

	resp, err := svc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, "UTC", resp.Timezone)
}

func TestWorkingHours_Stored(t *testing.T) {
	svc := newService(&fakeRepo{stored: map[int64]domain.WorkingHours{
		2: {ProfessionalID: 2, StartHour: 10, EndHour: 16},
	}})

	hours, err := svc.WorkingHours(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 10, hours.StartHour)
}

func TestWorkingHours_RepositoryError(t *testing.T) {
	svc := newService(&fakeRepo{readErr: errors.New("db down")})

	_, err := svc.WorkingHours(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate(t *testing.T) {
	repo := &fakeRepo{stored: map[int64]domain.WorkingHours{}}
	svc := newService(repo)

	resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		UserID: 2, ProfessionalID: 2, WorkStartHour: 7, WorkEndHour: 13,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 7, resp.WorkStartHour)
	require.NotNil(t, resp.UpdatedAt)
	assert.Equal(t, 13, repo.stored[2].EndHour)
}

func TestUpdate_Rejections(t *testing.T) {
	svc := newService(&fakeRepo{stored: map[int64]domain.WorkingHours{}})

	_, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		UserID: 1, ProfessionalID: 2, WorkStartHour: 7, WorkEndHour: 13,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Update(context.Background(), &models.UpdateScheduleRequest{
		UserID: 2, ProfessionalID: 2, WorkStartHour: 13, WorkEndHour: 7,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), &models.UpdateScheduleRequest{
		UserID: 2, ProfessionalID: 2, WorkStartHour: 0, WorkEndHour: 25,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

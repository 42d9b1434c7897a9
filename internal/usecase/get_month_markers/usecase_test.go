package get_month_markers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	sessionStore "github.com/m04kA/SMC-CoachingService/internal/infra/session"
	"github.com/m04kA/SMC-CoachingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

const (
	clientID       int64 = 1
	professionalID int64 = 2
	serviceID      int64 = 3
)

var march = domain.Date{Year: 2026, Month: time.March, Day: 1}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeRepo struct {
	mu           sync.Mutex
	professional []domain.BusyInterval
	client       []domain.BusyInterval
	err          error
	calls        int
	onFirstCall  func()
	fired        atomic.Bool
}

func (f *fakeRepo) GetBusyIntervals(_ context.Context, filter domain.BusyFilter) ([]domain.BusyInterval, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.onFirstCall != nil && f.fired.CompareAndSwap(false, true) {
		f.onFirstCall()
	}
	if f.err != nil {
		return nil, f.err
	}
	if filter.ProfessionalID != nil {
		return f.professional, nil
	}
	return f.client, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if id != serviceID {
		return nil, catalogservice.ErrServiceNotFound
	}
	return &domain.Service{ID: serviceID, ProfessionalID: professionalID, DurationMinutes: 60, TotalSessions: 4, ValidityDays: 30}, nil
}

type fakeSchedule struct {
	err error
}

func (f fakeSchedule) WorkingHours(_ context.Context, id int64) (domain.WorkingHours, error) {
	if f.err != nil {
		return domain.WorkingHours{}, f.err
	}
	return domain.WorkingHours{ProfessionalID: id, StartHour: 8, EndHour: 20}, nil
}

func (fakeSchedule) Location() *time.Location { return time.UTC }

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (f *fakeMetrics) RecordAvailabilityRead(_, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

type fixture struct {
	uc      *UseCase
	repo    *fakeRepo
	store   *sessionStore.Store
	metrics *fakeMetrics
}

func newFixture(t *testing.T, now time.Time, schedule fakeSchedule) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		repo:    &fakeRepo{},
		store:   sessionStore.NewStore(client, 30*time.Minute),
		metrics: &fakeMetrics{},
	}
	f.uc = NewUseCase(f.repo, fakeCatalog{}, schedule, f.store, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{t: now}
	return f
}

func (f *fixture) openSession(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.store.Create(context.Background(), &domain.BookingSession{
		ID:              id,
		ClientID:        clientID,
		ProfessionalID:  professionalID,
		ServiceID:       serviceID,
		DurationMinutes: 60,
		Selection:       domain.NewSlotSelection(4),
	}))
}

func fullDay(day int) domain.BusyInterval {
	return domain.BusyInterval{
		Start: time.Date(2026, 3, day, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, day, 20, 0, 0, 0, time.UTC),
	}
}

func request() *Request {
	return &Request{ClientID: clientID, ProfessionalID: professionalID, ServiceID: serviceID, Month: march}
}

func TestExecute_MarksPastFullAndOpenDays(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), fakeSchedule{})
	f.repo.professional = []domain.BusyInterval{fullDay(12)}
	f.repo.client = []domain.BusyInterval{fullDay(13)}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.False(t, resp.Degraded)
	assert.Equal(t, march, resp.Month)
	assert.Len(t, resp.Days, 31)
	assert.Equal(t, domain.DayPastDisabled, resp.Days[domain.Date{Year: 2026, Month: time.March, Day: 9}])
	// сегодняшний день размечается целиком, без отсечения по времени
	assert.Equal(t, domain.DayOpen, resp.Days[domain.Date{Year: 2026, Month: time.March, Day: 10}])
	assert.Equal(t, domain.DayFullDisabled, resp.Days[domain.Date{Year: 2026, Month: time.March, Day: 12}])
	assert.Equal(t, domain.DayFullDisabled, resp.Days[domain.Date{Year: 2026, Month: time.March, Day: 13}])
	assert.Equal(t, domain.DayOpen, resp.Days[domain.Date{Year: 2026, Month: time.March, Day: 31}])
	assert.Equal(t, 2, f.repo.calls)
	assert.Equal(t, []string{resultOK}, f.metrics.results)
}

func TestExecute_OnlyFifteenthOpen(t *testing.T) {
	f := newFixture(t, time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC), fakeSchedule{})
	for day := 1; day <= 31; day++ {
		if day != 15 {
			f.repo.professional = append(f.repo.professional, fullDay(day))
		}
	}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	for date, marker := range resp.Days {
		if date.Day == 15 {
			assert.Equal(t, domain.DayOpen, marker)
		} else {
			assert.Equal(t, domain.DayFullDisabled, marker, date.String())
		}
	}
}

func TestExecute_StoreReadFailureDegrades(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), fakeSchedule{})
	f.repo.err = errors.New("connection refused")

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	for date, marker := range resp.Days {
		if date.Day < 10 {
			assert.Equal(t, domain.DayPastDisabled, marker)
		} else {
			assert.Equal(t, domain.DayFullDisabled, marker)
		}
	}
	assert.Equal(t, []string{resultDegraded}, f.metrics.results)
}

func TestExecute_ScheduleFailureDegrades(t *testing.T) {
	f := newFixture(t, time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), fakeSchedule{err: errors.New("timeout")})

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Zero(t, f.repo.calls)
}

func TestExecute_Rejections(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), fakeSchedule{})
	ctx := context.Background()

	req := request()
	req.ServiceID = 99
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = request()
	req.ProfessionalID = 7
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrServiceMismatch)

	req = request()
	req.Month = domain.Date{}
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PublishesToSession(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), fakeSchedule{})
	f.repo.professional = []domain.BusyInterval{fullDay(12)}
	f.openSession(t, "s1")

	req := request()
	req.SessionID = ptr.Ptr("s1")
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	snapshot, err := f.store.GetMonth(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, resp.Days, snapshot.Days)
	assert.True(t, snapshot.IsOpen(domain.Date{Year: 2026, Month: time.March, Day: 11}))
	assert.False(t, snapshot.IsOpen(domain.Date{Year: 2026, Month: time.March, Day: 12}))
}

func TestExecute_SessionChecks(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), fakeSchedule{})
	f.openSession(t, "s1")
	ctx := context.Background()

	req := request()
	req.SessionID = ptr.Ptr("missing")
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	req = request()
	req.ClientID = 5
	req.SessionID = ptr.Ptr("s1")
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSessionMismatch)
}

func TestExecute_SupersededResultIsDiscarded(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), fakeSchedule{})
	f.openSession(t, "s1")
	ctx := context.Background()

	april := request()
	april.Month = domain.Date{Year: 2026, Month: time.April, Day: 1}
	april.SessionID = ptr.Ptr("s1")

	// пока первый расчёт (март) читает занятость, клиент переключается на апрель
	var aprilErr error
	f.repo.onFirstCall = func() {
		_, aprilErr = f.uc.Execute(ctx, april)
	}

	req := request()
	req.SessionID = ptr.Ptr("s1")
	_, err := f.uc.Execute(ctx, req)

	require.NoError(t, aprilErr)
	assert.ErrorIs(t, err, ErrStaleResult)

	snapshot, err := f.store.GetMonth(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, time.April, snapshot.Month.Month)
}

func TestExecute_ClosedSessionRejectsLateResult(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), fakeSchedule{})
	f.openSession(t, "s1")
	ctx := context.Background()

	f.repo.onFirstCall = func() {
		_ = f.store.Delete(ctx, "s1")
	}

	req := request()
	req.SessionID = ptr.Ptr("s1")
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

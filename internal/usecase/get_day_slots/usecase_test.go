package get_day_slots

import (
	"context"
	"errors"
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

var day = domain.Date{Year: 2026, Month: time.March, Day: 12}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeRepo struct {
	professional []domain.BusyInterval
	client       []domain.BusyInterval
	err          error
}

func (f *fakeRepo) GetBusyIntervals(_ context.Context, filter domain.BusyFilter) ([]domain.BusyInterval, error) {
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
	return &domain.Service{ID: serviceID, ProfessionalID: professionalID, DurationMinutes: 60, TotalSessions: 3, ValidityDays: 30}, nil
}

type fakeSchedule struct{}

func (fakeSchedule) WorkingHours(_ context.Context, id int64) (domain.WorkingHours, error) {
	return domain.WorkingHours{ProfessionalID: id, StartHour: 8, EndHour: 20}, nil
}

func (fakeSchedule) Location() *time.Location { return time.UTC }

type nopMetrics struct{}

func (nopMetrics) RecordAvailabilityRead(_, _ string) {}

type fixture struct {
	uc    *UseCase
	repo  *fakeRepo
	store *sessionStore.Store
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		repo:  &fakeRepo{},
		store: sessionStore.NewStore(client, 30*time.Minute),
	}
	f.uc = NewUseCase(f.repo, fakeCatalog{}, fakeSchedule{}, f.store, nopMetrics{}, logger.NewNop())
	f.uc.timeProvider = fixedTime{t: now}
	return f
}

// openSession создает сессию и публикует в неё отметки месяца, где открыт только day
func (f *fixture) openSession(t *testing.T, id string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Create(ctx, &domain.BookingSession{
		ID:              id,
		ClientID:        clientID,
		ProfessionalID:  professionalID,
		ServiceID:       serviceID,
		DurationMinutes: 60,
		Selection:       domain.NewSlotSelection(3),
	}))

	seq, err := f.store.NextSequence(ctx, id, domain.ScopeMonth)
	require.NoError(t, err)
	require.NoError(t, f.store.StoreMonthIfCurrent(ctx, id, seq, &domain.MonthSnapshot{
		Month: domain.Date{Year: 2026, Month: time.March, Day: 1},
		Days: map[domain.Date]domain.DayAvailability{
			day: domain.DayOpen,
			{Year: 2026, Month: time.March, Day: 13}: domain.DayFullDisabled,
		},
	}))
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 12, hour, 0, 0, 0, time.UTC)
}

func request() *Request {
	return &Request{ClientID: clientID, ProfessionalID: professionalID, ServiceID: serviceID, Date: day}
}

func TestExecute_MarksBusySlot(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	f.repo.professional = []domain.BusyInterval{{Start: at(10), End: at(11)}}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 12)
	for _, slot := range resp.Slots {
		if slot.Start.Equal(at(10)) {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available, slot.Start.String())
		}
	}
	assert.False(t, resp.Degraded)
}

func TestExecute_ClientBusyCountsToo(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	f.repo.client = []domain.BusyInterval{{Start: at(14).Add(30 * time.Minute), End: at(15).Add(30 * time.Minute)}}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	unavailable := 0
	for _, slot := range resp.Slots {
		if !slot.Available {
			unavailable++
		}
	}
	// 14:30-15:30 задевает слоты 14:00 и 15:00
	assert.Equal(t, 2, unavailable)
}

func TestExecute_StartedSlotsAreHidden(t *testing.T) {
	f := newFixture(t, at(13).Add(5*time.Minute))

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 6)
	assert.True(t, resp.Slots[0].Start.Equal(at(14)))
}

func TestExecute_StoreReadFailureDegrades(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	f.repo.err = errors.New("connection reset")

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SessionGuard(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	f.openSession(t, "s1")

	// закрытый день выбрать нельзя
	req := request()
	req.Date = domain.Date{Year: 2026, Month: time.March, Day: 13}
	req.SessionID = ptr.Ptr("s1")
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrDayNotSelectable)

	// день без отметки тоже
	req.Date = domain.Date{Year: 2026, Month: time.March, Day: 20}
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrDayNotSelectable)

	req = request()
	req.SessionID = ptr.Ptr("s1")
	f.repo.professional = []domain.BusyInterval{{Start: at(10), End: at(11)}}
	_, err = f.uc.Execute(ctx, req)
	require.NoError(t, err)

	snapshot, err := f.store.GetDay(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, day, snapshot.Date)
	assert.Len(t, snapshot.Slots, 12)
	assert.False(t, snapshot.IsAvailable(domain.NewSlotID(at(10))))
	assert.True(t, snapshot.IsAvailable(domain.NewSlotID(at(11))))
}

func TestExecute_SessionWithoutMonthMarkers(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	require.NoError(t, f.store.Create(ctx, &domain.BookingSession{
		ID: "s2", ClientID: clientID, ProfessionalID: professionalID, ServiceID: serviceID,
		Selection: domain.NewSlotSelection(3),
	}))

	req := request()
	req.SessionID = ptr.Ptr("s2")
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrDayNotSelectable)
}

func TestExecute_Rejections(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req := request()
	req.ProfessionalID = 9
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrServiceMismatch)

	req = request()
	req.SessionID = ptr.Ptr("nope")
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	req = request()
	req.ClientID = 0
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

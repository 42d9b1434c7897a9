package toggle_slot

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	sessionStore "github.com/m04kA/SMC-CoachingService/internal/infra/session"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
)

const sessionID = "s1"

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) RecordSelectionToggle(result string) {
	f.results = append(f.results, result)
}

func slot(hour int) domain.SlotID {
	return domain.NewSlotID(time.Date(2026, 3, 12, hour, 0, 0, 0, time.UTC))
}

// newUseCase открывает сессию с квотой limit и публикует слоты 08:00-19:00, из которых 12:00 занят
func newUseCase(t *testing.T, limit int) (*UseCase, *sessionStore.Store, *fakeMetrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := sessionStore.NewStore(client, 30*time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.BookingSession{
		ID:              sessionID,
		ClientID:        1,
		ProfessionalID:  2,
		ServiceID:       3,
		DurationMinutes: 60,
		Selection:       domain.NewSlotSelection(limit),
	}))

	slots := make(map[domain.SlotID]bool)
	for hour := 8; hour < 20; hour++ {
		slots[slot(hour)] = hour != 12
	}
	seq, err := store.NextSequence(ctx, sessionID, domain.ScopeDay)
	require.NoError(t, err)
	require.NoError(t, store.StoreDayIfCurrent(ctx, sessionID, seq, &domain.DaySnapshot{
		Date:  domain.Date{Year: 2026, Month: time.March, Day: 12},
		Slots: slots,
	}))

	metrics := &fakeMetrics{}
	return NewUseCase(store, metrics, logger.NewNop()), store, metrics
}

func toggle(t *testing.T, uc *UseCase, id domain.SlotID) *Response {
	t.Helper()
	resp, err := uc.Execute(context.Background(), &Request{SessionID: sessionID, ClientID: 1, SlotID: id.String()})
	require.NoError(t, err)
	return resp
}

func TestExecute_QuotaReached(t *testing.T) {
	uc, store, metrics := newUseCase(t, 3)

	toggle(t, uc, slot(9))
	toggle(t, uc, slot(10))
	resp := toggle(t, uc, slot(11))
	assert.True(t, resp.Selected)
	assert.True(t, resp.Selection.IsFull())

	resp = toggle(t, uc, slot(14))
	assert.True(t, resp.QuotaExceeded)
	assert.False(t, resp.Selected)
	assert.Equal(t, []domain.SlotID{slot(9), slot(10), slot(11)}, resp.Selection.SlotIDs)

	session, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, session.Selection.Len())
	assert.Equal(t, []string{resultSelected, resultSelected, resultSelected, resultQuotaExceeded}, metrics.results)
}

func TestExecute_DeselectAfterQuota(t *testing.T) {
	uc, _, _ := newUseCase(t, 2)

	toggle(t, uc, slot(9))
	toggle(t, uc, slot(10))

	resp := toggle(t, uc, slot(9))
	assert.False(t, resp.Selected)
	assert.False(t, resp.QuotaExceeded)
	assert.Equal(t, []domain.SlotID{slot(10)}, resp.Selection.SlotIDs)
}

func TestExecute_ToggleTwiceRestores(t *testing.T) {
	uc, store, _ := newUseCase(t, 4)
	toggle(t, uc, slot(15))

	before, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)

	toggle(t, uc, slot(9))
	resp := toggle(t, uc, slot(9))

	assert.Equal(t, before.Selection, resp.Selection)
}

func TestExecute_UnavailableSlots(t *testing.T) {
	uc, _, _ := newUseCase(t, 4)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{SessionID: sessionID, ClientID: 1, SlotID: slot(12).String()})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// слот из другого дня клиенту не предлагался
	other := domain.NewSlotID(time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC))
	_, err = uc.Execute(ctx, &Request{SessionID: sessionID, ClientID: 1, SlotID: other.String()})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Rejections(t *testing.T) {
	uc, store, _ := newUseCase(t, 4)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{SessionID: sessionID, ClientID: 1, SlotID: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = uc.Execute(ctx, &Request{SessionID: sessionID, ClientID: 7, SlotID: slot(9).String()})
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, store.Delete(ctx, sessionID))
	_, err = uc.Execute(ctx, &Request{SessionID: sessionID, ClientID: 1, SlotID: slot(9).String()})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_AcceptsOffsetSlotID(t *testing.T) {
	uc, _, _ := newUseCase(t, 4)

	// тот же момент, записанный в другом часовом поясе
	resp, err := uc.Execute(context.Background(), &Request{SessionID: sessionID, ClientID: 1, SlotID: "2026-03-12T12:00:00+03:00"})
	require.NoError(t, err)
	assert.Equal(t, []domain.SlotID{slot(9)}, resp.Selection.SlotIDs)
}

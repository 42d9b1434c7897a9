package confirm_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	contractModels "github.com/m04kA/SMC-CoachingService/internal/service/contracts/models"
	confirmBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_booking"
)

type fakeUseCase struct {
	resp *confirmBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *confirmBooking.Request) (*confirmBooking.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(userID int64) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/booking-sessions/s-1/confirm", nil)
	r = mux.SetURLVars(r, map[string]string{"sessionId": "s-1"})
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &confirmBooking.Response{
		Contract: &domain.Contract{
			ID: 11, ClientID: 7, ProfessionalID: 3, ServiceID: 5,
			TotalCredits: 4, UsedCredits: 2, Status: domain.ContractActive,
		},
		Appointments: []*domain.Appointment{
			{ID: 1, ContractID: 11, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.AppointmentScheduled},
			{ID: 2, ContractID: 11, StartTime: start.Add(24 * time.Hour), EndTime: start.Add(25 * time.Hour), Status: domain.AppointmentScheduled},
		},
	}}

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest(7))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp contractModels.ContractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, 2, resp.RemainingCredits)
	assert.Len(t, resp.Appointments, 2)
	assert.Equal(t, "2026-10-20T09:00:00Z", resp.Appointments[0].StartTime)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"session closed", confirmBooking.ErrSessionNotFound, http.StatusNotFound},
		{"foreign session", confirmBooking.ErrAccessDenied, http.StatusForbidden},
		{"empty selection", confirmBooking.ErrEmptySelection, http.StatusBadRequest},
		{"package shrank", confirmBooking.ErrQuotaExceeded, http.StatusBadRequest},
		{"service gone", confirmBooking.ErrServiceNotFound, http.StatusNotFound},
		{"off grid", confirmBooking.ErrInvalidSlot, http.StatusBadRequest},
		{"slot taken", fmt.Errorf("%w: 2026-10-20T09:00:00Z", confirmBooking.ErrSlotNotAvailable), http.StatusConflict},
		{"calendar locked", confirmBooking.ErrBookingInProgress, http.StatusLocked},
		{"write failed", confirmBooking.ErrBookingFailed, http.StatusServiceUnavailable},
		{"internal", confirmBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest(7))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

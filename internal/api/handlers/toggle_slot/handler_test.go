package toggle_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	toggleSlot "github.com/m04kA/SMC-CoachingService/internal/usecase/toggle_slot"
)

type fakeUseCase struct {
	req  *toggleSlot.Request
	resp *toggleSlot.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *toggleSlot.Request) (*toggleSlot.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(body string, userID int64) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/booking-sessions/s-1/toggle", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"sessionId": "s-1"})
	if userID != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	return r
}

func TestHandle_QuotaExceededIsNotAnError(t *testing.T) {
	selection := domain.NewSlotSelection(1)
	selection.SlotIDs = []domain.SlotID{"2026-10-20T09:00:00Z"}

	uc := &fakeUseCase{resp: &toggleSlot.Response{Selection: selection, QuotaExceeded: true}}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"slotId":"2026-10-20T10:00:00Z"}`, 7))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &toggleSlot.Request{SessionID: "s-1", ClientID: 7, SlotID: "2026-10-20T10:00:00Z"}, uc.req)

	var resp ToggleSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.QuotaExceeded)
	assert.False(t, resp.Selected)
	assert.Equal(t, []string{"2026-10-20T09:00:00Z"}, resp.Selection.SlotIDs)
	assert.True(t, resp.Selection.QuotaReached)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid slot", toggleSlot.ErrInvalidSlot, http.StatusBadRequest},
		{"session closed", toggleSlot.ErrSessionNotFound, http.StatusNotFound},
		{"foreign session", toggleSlot.ErrAccessDenied, http.StatusForbidden},
		{"slot not offered", toggleSlot.ErrSlotNotAvailable, http.StatusConflict},
		{"concurrent update", toggleSlot.ErrConflict, http.StatusConflict},
		{"internal", toggleSlot.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(`{"slotId":"x"}`, 7))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_RejectsBadRequests(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"slotId":"x"}`, 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"slot":"x"}`, 7))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewContract_ValidityWindowAndCredits(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	service := Service{ID: 7, DurationMinutes: 60, TotalSessions: 5, ValidityDays: 30}

	c := NewContract(service, 11, 22, 2, now)

	assert.Equal(t, now, c.StartDate)
	assert.Equal(t, time.Date(2026, 11, 15, 12, 0, 0, 0, time.UTC), c.EndDate)
	assert.Equal(t, 5, c.TotalCredits)
	assert.Equal(t, 2, c.UsedCredits)
	assert.Equal(t, 3, c.RemainingCredits())
	assert.Equal(t, ContractActive, c.Status)
	assert.False(t, c.IsExpired(now))
	assert.True(t, c.IsExpired(c.EndDate))
}

func TestService_Validate(t *testing.T) {
	valid := Service{DurationMinutes: 45, TotalSessions: 8, ValidityDays: 60}
	assert.NoError(t, valid.Validate())

	for name, s := range map[string]Service{
		"zero duration": {DurationMinutes: 0, TotalSessions: 1, ValidityDays: 1},
		"no sessions":   {DurationMinutes: 60, TotalSessions: 0, ValidityDays: 1},
		"no validity":   {DurationMinutes: 60, TotalSessions: 1, ValidityDays: 0},
		"too long slot": {DurationMinutes: 600, TotalSessions: 1, ValidityDays: 1},
	} {
		assert.ErrorIs(t, s.Validate(), ErrInvalidService, name)
	}
}

func TestWorkingHours_Validate(t *testing.T) {
	assert.NoError(t, WorkingHours{StartHour: 8, EndHour: 20}.Validate())
	assert.ErrorIs(t, WorkingHours{StartHour: 20, EndHour: 8}.Validate(), ErrInvalidWorkingHours)
	assert.ErrorIs(t, WorkingHours{StartHour: 0, EndHour: 25}.Validate(), ErrInvalidWorkingHours)
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	a := Appointment{StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: AppointmentScheduled}

	assert.True(t, a.CanBeCancelled(now))
	assert.False(t, a.CanBeCancelled(a.StartTime))
	assert.False(t, a.CanBeCancelled(now.Add(48*time.Hour)))

	a.Status = AppointmentCancelled
	assert.False(t, a.CanBeCancelled(now))
}

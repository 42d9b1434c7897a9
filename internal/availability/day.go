package availability

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// HasAnyFreeSlot есть ли в дне хотя бы один слот без пересечений с busy
// Останавливается на первом свободном слоте
func HasAnyFreeSlot(day time.Time, busy []domain.BusyInterval, service domain.Service, hours domain.WorkingHours) bool {
	for slot := range GenerateSlots(day, hours.StartHour, hours.EndHour, service.DurationMinutes) {
		if !overlapsAny(slot, busy) {
			return true
		}
	}
	return false
}

// ComputeDaySlots размечает все слоты дня флагом доступности
// Слоты, начавшиеся раньше now, в результат не попадают совсем
func ComputeDaySlots(
	day time.Time,
	busy []domain.BusyInterval,
	service domain.Service,
	hours domain.WorkingHours,
	now time.Time,
) []domain.AnnotatedSlot {
	result := make([]domain.AnnotatedSlot, 0)

	for slot := range GenerateSlots(day, hours.StartHour, hours.EndHour, service.DurationMinutes) {
		if slot.Start.Before(now) {
			continue
		}
		result = append(result, domain.AnnotatedSlot{
			CandidateSlot: slot,
			Available:     !overlapsAny(slot, busy),
			IsPast:        false,
		})
	}

	return result
}

// DayRange границы суток day: [00:00, 00:00 следующего дня) в часовом поясе day
func DayRange(day time.Time) (time.Time, time.Time) {
	start := domain.DateOf(day).In(day.Location())
	return start, start.AddDate(0, 0, 1)
}

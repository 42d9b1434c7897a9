package availability

import (
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// GenerateSlots возвращает сетку слотов дня day: от workStartHour:00 с шагом durationMinutes,
// пока конец слота не выходит за workEndHour:00
//
// Слоты идут встык и имеют ровно длительность услуги. Последовательность ленивая
// и перезапускаемая: каждый range считает её заново, прерывание range останавливает генерацию.
// Если длительность больше рабочего окна, последовательность пустая.
// Часы берутся в часовом поясе day
func GenerateSlots(day time.Time, workStartHour, workEndHour, durationMinutes int) iter.Seq[domain.CandidateSlot] {
	return func(yield func(domain.CandidateSlot) bool) {
		if durationMinutes <= 0 || workStartHour >= workEndHour {
			return
		}

		y, m, d := day.Date()
		loc := day.Location()
		windowStart := time.Date(y, m, d, workStartHour, 0, 0, 0, loc)
		windowEnd := time.Date(y, m, d, workEndHour, 0, 0, 0, loc)
		step := time.Duration(durationMinutes) * time.Minute

		for start := windowStart; !start.Add(step).After(windowEnd); start = start.Add(step) {
			if !yield(domain.CandidateSlot{Start: start, End: start.Add(step)}) {
				return
			}
		}
	}
}

// Slots собирает сетку дня в срез
func Slots(day time.Time, workStartHour, workEndHour, durationMinutes int) []domain.CandidateSlot {
	return slices.Collect(GenerateSlots(day, workStartHour, workEndHour, durationMinutes))
}

// IsGridSlot лежит ли start на сетке своего дня для заданных часов и длительности
func IsGridSlot(start time.Time, hours domain.WorkingHours, durationMinutes int) bool {
	for slot := range GenerateSlots(start, hours.StartHour, hours.EndHour, durationMinutes) {
		if slot.Start.Equal(start) {
			return true
		}
		if slot.Start.After(start) {
			return false
		}
	}
	return false
}

package availability

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Overlaps проверяет пересечение полуинтервалов [startA, endA) и [startB, endB)
// Встреча, которая заканчивается ровно в момент начала другой, с ней не пересекается
//
// Примеры:
// - 10:00-11:00 и 10:30-11:30 → пересекаются
// - 10:00-11:00 и 11:00-12:00 → НЕ пересекаются (граничат)
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// IsFree не пересекается ли слот ни с одним занятым интервалом
func IsFree(slot domain.CandidateSlot, busy []domain.BusyInterval) bool {
	return !overlapsAny(slot, busy)
}

func overlapsAny(slot domain.CandidateSlot, busy []domain.BusyInterval) bool {
	for _, b := range busy {
		if Overlaps(slot.Start, slot.End, b.Start, b.End) {
			return true
		}
	}
	return false
}

// busyWithin оставляет интервалы, которые задевают [from, to)
func busyWithin(busy []domain.BusyInterval, from, to time.Time) []domain.BusyInterval {
	result := make([]domain.BusyInterval, 0, len(busy))
	for _, b := range busy {
		if Overlaps(b.Start, b.End, from, to) {
			result = append(result, b)
		}
	}
	return result
}

// MergeBusy объединяет занятость специалиста и клиента в один набор
// После объединения источник интервала не учитывается
func MergeBusy(sets ...[]domain.BusyInterval) []domain.BusyInterval {
	total := 0
	for _, s := range sets {
		total += len(s)
	}
	merged := make([]domain.BusyInterval, 0, total)
	for _, s := range sets {
		merged = append(merged, s...)
	}
	return merged
}

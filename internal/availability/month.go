package availability

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// ComputeMonthAvailability размечает каждый день месяца, в который попадает anchor
//
// День раньше today (по дате, без учёта времени) → past_disabled.
// Иначе день open, если в нём есть свободный слот, и full_disabled, если нет.
// busy содержит занятость за весь месяц, повторных запросов по дням нет.
// Дни считаются в часовом поясе anchor
func ComputeMonthAvailability(
	anchor time.Time,
	busy []domain.BusyInterval,
	service domain.Service,
	hours domain.WorkingHours,
	today time.Time,
) map[domain.Date]domain.DayAvailability {
	first, next := MonthRange(anchor)
	todayDate := domain.DateOf(today.In(anchor.Location()))

	result := make(map[domain.Date]domain.DayAvailability, 31)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		date := domain.DateOf(day)

		if date.Before(todayDate) {
			result[date] = domain.DayPastDisabled
			continue
		}

		dayStart, dayEnd := DayRange(day)
		if HasAnyFreeSlot(day, busyWithin(busy, dayStart, dayEnd), service, hours) {
			result[date] = domain.DayOpen
		} else {
			result[date] = domain.DayFullDisabled
		}
	}

	return result
}

// UnavailableMonth разметка месяца, когда занятость прочитать не удалось:
// прошедшие дни past_disabled, остальные full_disabled
func UnavailableMonth(anchor, today time.Time) map[domain.Date]domain.DayAvailability {
	first, next := MonthRange(anchor)
	todayDate := domain.DateOf(today.In(anchor.Location()))

	result := make(map[domain.Date]domain.DayAvailability, 31)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		date := domain.DateOf(day)
		if date.Before(todayDate) {
			result[date] = domain.DayPastDisabled
		} else {
			result[date] = domain.DayFullDisabled
		}
	}
	return result
}

// MonthRange границы месяца anchor: [1-е число 00:00, 1-е число следующего месяца 00:00)
func MonthRange(anchor time.Time) (time.Time, time.Time) {
	y, m, _ := anchor.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, anchor.Location())
	return first, first.AddDate(0, 1, 0)
}

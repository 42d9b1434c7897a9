package domain

// DayAvailability отметка дня в календаре месяца
type DayAvailability string

const (
	// DayPastDisabled день уже прошёл
	DayPastDisabled DayAvailability = "past_disabled"
	// DayFullDisabled в рабочем окне нет ни одного свободного слота
	DayFullDisabled DayAvailability = "full_disabled"
	// DayOpen есть хотя бы один свободный слот
	DayOpen DayAvailability = "open"
)

// IsSelectable можно ли открыть день для выбора слотов
func (d DayAvailability) IsSelectable() bool {
	return d == DayOpen
}

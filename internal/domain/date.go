package domain

import (
	"fmt"
	"time"
)

// Date календарная дата без времени и часового пояса
// Сравнима через ==, поэтому подходит как ключ map
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf возвращает дату момента t в его часовом поясе
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// ParseMonth разбирает месяц формата YYYY-MM, возвращая его первое число
func ParseMonth(s string) (Date, error) {
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// In возвращает полночь даты в часовом поясе loc
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthString месяц даты в формате YYYY-MM
func (d Date) MonthString() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// MarshalText позволяет использовать Date как ключ map в JSON
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

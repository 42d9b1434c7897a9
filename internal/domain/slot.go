package domain

import (
	"fmt"
	"time"
)

// BusyInterval занятый промежуток [Start, End) из уже запланированной встречи
// специалиста или клиента. После слияния источник интервала не важен
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// CandidateSlot слот сетки дня, End = Start + длительность услуги
type CandidateSlot struct {
	Start time.Time
	End   time.Time
}

// ID идентификатор слота в выборе клиента
func (s CandidateSlot) ID() SlotID {
	return NewSlotID(s.Start)
}

// AnnotatedSlot слот с флагами для экрана дня
type AnnotatedSlot struct {
	CandidateSlot
	Available bool
	IsPast    bool
}

// SlotID идентификатор слота: момент начала в RFC3339 (UTC)
// В UTC строковый порядок совпадает с хронологическим
type SlotID string

// NewSlotID строит идентификатор по моменту начала слота
func NewSlotID(start time.Time) SlotID {
	return SlotID(start.UTC().Format(time.RFC3339))
}

// ParseSlotID разбирает идентификатор и приводит его к UTC
func ParseSlotID(s string) (SlotID, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotID, s)
	}
	return NewSlotID(t), nil
}

// Start момент начала слота
func (id SlotID) Start() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, string(id))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSlotID, string(id))
	}
	return t, nil
}

func (id SlotID) String() string {
	return string(id)
}

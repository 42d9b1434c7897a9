package domain

import (
	"slices"
	"time"
)

// SlotSelection слоты, выбранные клиентом в рамках одной сессии бронирования
// Упорядочена по времени начала, без повторов, не больше Limit элементов
// Значение неизменяемое: Toggle возвращает новую копию
type SlotSelection struct {
	Limit   int      `json:"limit"`
	SlotIDs []SlotID `json:"slotIds"`
}

// NewSlotSelection создает пустой выбор с квотой limit (totalSessions услуги)
func NewSlotSelection(limit int) SlotSelection {
	return SlotSelection{Limit: limit, SlotIDs: []SlotID{}}
}

func (s SlotSelection) Len() int {
	return len(s.SlotIDs)
}

func (s SlotSelection) IsEmpty() bool {
	return len(s.SlotIDs) == 0
}

// IsFull квота исчерпана, следующим шагом ожидается подтверждение
func (s SlotSelection) IsFull() bool {
	return len(s.SlotIDs) >= s.Limit
}

func (s SlotSelection) Contains(id SlotID) bool {
	_, found := slices.BinarySearch(s.SlotIDs, id)
	return found
}

// Toggle снимает выбор со слота или добавляет его
//
// Снятие выбора всегда разрешено. Добавление отклоняется без изменения состояния:
// с ErrQuotaExceeded, если выбрано уже Limit слотов, и с ErrSlotUnavailable,
// если вызывающий сообщил, что слот занят
func (s SlotSelection) Toggle(id SlotID, available bool) (SlotSelection, error) {
	idx, found := slices.BinarySearch(s.SlotIDs, id)
	if found {
		next := make([]SlotID, 0, len(s.SlotIDs)-1)
		next = append(next, s.SlotIDs[:idx]...)
		next = append(next, s.SlotIDs[idx+1:]...)
		return SlotSelection{Limit: s.Limit, SlotIDs: next}, nil
	}

	if len(s.SlotIDs) >= s.Limit {
		return s, ErrQuotaExceeded
	}
	if !available {
		return s, ErrSlotUnavailable
	}

	next := make([]SlotID, 0, len(s.SlotIDs)+1)
	next = append(next, s.SlotIDs[:idx]...)
	next = append(next, id)
	next = append(next, s.SlotIDs[idx:]...)
	return SlotSelection{Limit: s.Limit, SlotIDs: next}, nil
}

// Starts моменты начала выбранных слотов по возрастанию
func (s SlotSelection) Starts() ([]time.Time, error) {
	starts := make([]time.Time, 0, len(s.SlotIDs))
	for _, id := range s.SlotIDs {
		t, err := id.Start()
		if err != nil {
			return nil, err
		}
		starts = append(starts, t)
	}
	return starts, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/m04kA/SMC-CoachingService/internal/availability"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/appointment"
	contractRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/contract"
	scheduleRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
	"github.com/m04kA/SMC-CoachingService/pkg/txmanager"
)

// первые id клиентов, чтобы не пересекаться с id специалистов
const clientIDOffset = 10000

type seeder struct {
	schedules    *scheduleRepo.Repository
	contracts    *contractRepo.Repository
	appointments *appointmentRepo.Repository
	txManager    *txmanager.TransactionManager
	log          *logger.Logger
	loc          *time.Location
	defaults     domain.WorkingHours
	service      domain.Service

	hours map[int64]domain.WorkingHours
	busy  map[string][]domain.BusyInterval
}

func (s *seeder) seedSchedules(ctx context.Context, count int) error {
	s.hours = make(map[int64]domain.WorkingHours, count)

	for id := int64(1); id <= int64(count); id++ {
		hours := s.defaults
		hours.ProfessionalID = id

		// у части специалистов свои часы, остальные работают по умолчанию
		if gofakeit.Bool() {
			start := gofakeit.Number(7, 11)
			hours.StartHour = start
			hours.EndHour = start + gofakeit.Number(6, 10)

			if _, err := s.schedules.Upsert(ctx, &hours); err != nil {
				return fmt.Errorf("professional %d: %w", id, err)
			}
		}
		s.hours[id] = hours
	}

	s.log.Info("Schedules seeded: %d professionals", count)
	return nil
}

func (s *seeder) seedContracts(ctx context.Context, count, professionals, clients int) error {
	created := 0
	for i := 0; i < count; i++ {
		professionalID := int64(gofakeit.Number(1, professionals))
		clientID := int64(clientIDOffset + gofakeit.Number(1, clients))

		slots := s.pickSlots(professionalID, clientID, gofakeit.Number(1, s.service.TotalSessions))
		if len(slots) == 0 {
			continue
		}

		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			contract, err := s.contracts.Create(txCtx, domain.NewContract(s.service, clientID, professionalID, len(slots), time.Now()))
			if err != nil {
				return err
			}

			batch := make([]*domain.Appointment, 0, len(slots))
			for _, slot := range slots {
				batch = append(batch, &domain.Appointment{
					ContractID:     contract.ID,
					ClientID:       clientID,
					ProfessionalID: professionalID,
					StartTime:      slot.Start,
					EndTime:        slot.End,
					Status:         domain.AppointmentScheduled,
				})
			}
			_, err = s.appointments.CreateBatch(txCtx, batch)
			return err
		})
		if errors.Is(err, appointmentRepo.ErrAppointmentOverlap) {
			continue
		}
		if err != nil {
			return fmt.Errorf("contract %d: %w", i, err)
		}

		for _, slot := range slots {
			s.markBusy(professionalID, clientID, slot)
		}
		created++
	}

	s.log.Info("Contracts seeded: %d of %d", created, count)
	return nil
}

// pickSlots выбирает до n свободных слотов в ближайшие две недели
func (s *seeder) pickSlots(professionalID, clientID int64, n int) []domain.CandidateSlot {
	hours := s.hours[professionalID]
	today := domain.DateOf(time.Now().In(s.loc))

	picked := make([]domain.CandidateSlot, 0, n)
	for attempt := 0; attempt < n*5 && len(picked) < n; attempt++ {
		day := today.In(s.loc).AddDate(0, 0, gofakeit.Number(1, 14))
		grid := availability.Slots(day, hours.StartHour, hours.EndHour, s.service.DurationMinutes)
		if len(grid) == 0 {
			continue
		}

		slot := grid[gofakeit.Number(0, len(grid)-1)]
		busy := append(append([]domain.BusyInterval{}, s.busyFor(professionalKey(professionalID))...), s.busyFor(clientKey(clientID))...)
		for _, p := range picked {
			busy = append(busy, domain.BusyInterval{Start: p.Start, End: p.End})
		}

		if availability.IsFree(slot, busy) {
			picked = append(picked, slot)
		}
	}
	return picked
}

func (s *seeder) markBusy(professionalID, clientID int64, slot domain.CandidateSlot) {
	interval := domain.BusyInterval{Start: slot.Start, End: slot.End}
	s.busy[professionalKey(professionalID)] = append(s.busy[professionalKey(professionalID)], interval)
	s.busy[clientKey(clientID)] = append(s.busy[clientKey(clientID)], interval)
}

func (s *seeder) busyFor(key string) []domain.BusyInterval {
	return s.busy[key]
}

func professionalKey(id int64) string { return fmt.Sprintf("p:%d", id) }
func clientKey(id int64) string       { return fmt.Sprintf("c:%d", id) }

package get_day_slots

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CoachingService/internal/availability"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// loadBusy читает занятость специалиста и клиента за [from, to) двумя параллельными запросами
func loadBusy(ctx context.Context, repo AppointmentRepository, professionalID, clientID int64, from, to time.Time) ([]domain.BusyInterval, error) {
	var professionalBusy, clientBusy []domain.BusyInterval

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		professionalBusy, err = repo.GetBusyIntervals(gctx, domain.BusyFilter{
			ProfessionalID: &professionalID,
			From:           from,
			To:             to,
		})
		return err
	})
	g.Go(func() error {
		var err error
		clientBusy, err = repo.GetBusyIntervals(gctx, domain.BusyFilter{
			ClientID: &clientID,
			From:     from,
			To:       to,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return availability.MergeBusy(professionalBusy, clientBusy), nil
}

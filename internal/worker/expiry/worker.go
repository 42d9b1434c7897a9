package expiry

import (
	"context"
	"time"
)

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Worker периодически переводит просроченные контракты в expired
type Worker struct {
	repo         ContractRepository
	interval     time.Duration
	logger       Logger
	timeProvider TimeProvider
}

func NewWorker(repo ContractRepository, interval time.Duration, logger Logger) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		repo:         repo,
		interval:     interval,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// Run выполняет RunOnce сразу и затем каждые interval до отмены ctx
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Contract expiry worker started: interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil {
			w.logger.Error("Contract expiry worker: %v", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Contract expiry worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce истекает контракты, срок которых закончился
func (w *Worker) RunOnce(ctx context.Context) (int64, error) {
	expired, err := w.repo.ExpireOverdue(ctx, w.timeProvider.Now())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		w.logger.Info("Contract expiry worker: expired %d contracts", expired)
	}
	return expired, nil
}

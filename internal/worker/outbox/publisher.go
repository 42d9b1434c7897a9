package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Config настройки публикации
type Config struct {
	TopicPrefix  string
	PollInterval time.Duration
	BatchSize    int
}

// Publisher переносит события из outbox_events в Kafka
// Топик события: {prefix}.{event_type}, ключ: id агрегата
type Publisher struct {
	repo         Repository
	txManager    TransactionManager
	writer       MessageWriter
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
	cfg          Config
}

func NewPublisher(
	repo Repository,
	txManager TransactionManager,
	writer MessageWriter,
	metrics Metrics,
	logger Logger,
	cfg Config,
) *Publisher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Publisher{
		repo:         repo,
		txManager:    txManager,
		writer:       writer,
		metrics:      metrics,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
	}
}

// Run публикует события каждые PollInterval до отмены ctx
func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("Outbox publisher started: poll_interval=%s, batch_size=%d", p.cfg.PollInterval, p.cfg.BatchSize)

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox publisher stopped")
			return
		case <-ticker.C:
			count, err := p.PublishBatch(ctx)
			if err != nil {
				p.logger.Error("Outbox publisher: batch failed: %v", err)
				continue
			}
			if count > 0 {
				p.logger.Info("Outbox publisher: published %d events", count)
			}
		}
	}
}

// PublishBatch отправляет одну пачку неопубликованных событий
// Строки заблокированы на время отправки; если Kafka не приняла пачку,
// транзакция откатывается и события уйдут в следующий раз
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	var published int

	err := p.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Забираем пачку событий
		events, err := p.repo.FetchUnpublished(txCtx, p.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("fetch unpublished: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		// 2. Отправляем в Kafka
		msgs := make([]kafka.Message, 0, len(events))
		ids := make([]int64, 0, len(events))
		for _, event := range events {
			msgs = append(msgs, p.toMessage(event))
			ids = append(ids, event.ID)
		}

		if err := p.writer.WriteMessages(txCtx, msgs...); err != nil {
			return fmt.Errorf("write messages: %w", err)
		}

		// 3. Отмечаем отправленные
		if err := p.repo.MarkPublished(txCtx, ids, p.timeProvider.Now()); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}

		published = len(events)
		return nil
	})

	if err != nil {
		p.metrics.RecordOutboxPublished(0, err)
		return 0, err
	}

	if published > 0 {
		p.metrics.RecordOutboxPublished(published, nil)
	}
	return published, nil
}

func (p *Publisher) toMessage(event *domain.OutboxEvent) kafka.Message {
	headers := []kafka.Header{
		{Key: "event_id", Value: []byte(event.EventID)},
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}

	return kafka.Message{
		Topic:   p.topic(event.EventType),
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: injectTraceHeaders(event.Traceparent, headers),
		Time:    event.CreatedAt,
	}
}

func (p *Publisher) topic(eventType string) string {
	if p.cfg.TopicPrefix == "" {
		return eventType
	}
	return p.cfg.TopicPrefix + "." + eventType
}

package domain

import "time"

// Типы доменных событий, которые уходят в Kafka через outbox
const (
	EventContractBooked       = "contract.booked"
	EventAppointmentCancelled = "appointment.cancelled"
)

// Типы агрегатов
const (
	AggregateContract    = "contract"
	AggregateAppointment = "appointment"
)

// OutboxEvent событие, записанное в той же транзакции, что и изменение данных
type OutboxEvent struct {
	ID            int64
	EventID       string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Traceparent   *string
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

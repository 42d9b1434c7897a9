package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках
// компоненты получают nil и вызовы ничего не делают
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	bookingCommits    *prometheus.CounterVec
	availabilityReads *prometheus.CounterVec
	selectionToggles  *prometheus.CounterVec
	outboxPublished   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		bookingCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_commits_total",
			Help: "Booking commit attempts by result",
		}, []string{"service", "result"}),
		availabilityReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_reads_total",
			Help: "Month/day availability computations by result",
		}, []string{"service", "scope", "result"}),
		selectionToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_selection_toggles_total",
			Help: "Slot selection toggles by result",
		}, []string{"service", "result"}),
		outboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Outbox events shipped to Kafka",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.bookingCommits,
		m.availabilityReads,
		m.selectionToggles,
		m.outboxPublished,
	)

	return m
}

// RecordHTTPRequest учитывает обработанный HTTP-запрос
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// RecordDBQuery учитывает выполненный SQL-запрос
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(m.service, operation, status).Observe(duration.Seconds())
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.service).Set(float64(stats.OpenConnections))
	m.dbInUse.WithLabelValues(m.service).Set(float64(stats.InUse))
	m.dbIdle.WithLabelValues(m.service).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.service).Set(float64(stats.WaitCount))
}

// RecordBookingCommit учитывает результат подтверждения бронирования
// result: committed, slot_unavailable, in_progress, failed
func (m *Metrics) RecordBookingCommit(result string) {
	if m == nil {
		return
	}
	m.bookingCommits.WithLabelValues(m.service, result).Inc()
}

// RecordAvailabilityRead учитывает расчет доступности
// scope: month, day; result: ok, degraded, stale
func (m *Metrics) RecordAvailabilityRead(scope, result string) {
	if m == nil {
		return
	}
	m.availabilityReads.WithLabelValues(m.service, scope, result).Inc()
}

// RecordSelectionToggle учитывает переключение слота
// result: selected, deselected, quota_exceeded, unavailable
func (m *Metrics) RecordSelectionToggle(result string) {
	if m == nil {
		return
	}
	m.selectionToggles.WithLabelValues(m.service, result).Inc()
}

// RecordOutboxPublished учитывает отправленные в Kafka события
func (m *Metrics) RecordOutboxPublished(count int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.outboxPublished.WithLabelValues(m.service, "error").Inc()
		return
	}
	m.outboxPublished.WithLabelValues(m.service, "ok").Add(float64(count))
}

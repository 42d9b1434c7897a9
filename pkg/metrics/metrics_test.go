package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(http.MethodGet, "/x", http.StatusOK, time.Millisecond)
		m.RecordBookingCommit("committed")
		m.RecordAvailabilityRead("month", "ok")
		m.RecordSelectionToggle("selected")
		m.RecordOutboxPublished(3, nil)
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer("coaching", prometheus.NewRegistry())

	m.RecordBookingCommit("committed")
	m.RecordBookingCommit("committed")
	m.RecordAvailabilityRead("day", "degraded")
	m.RecordOutboxPublished(5, nil)
	m.RecordOutboxPublished(0, errors.New("broker down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingCommits.WithLabelValues("coaching", "committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.availabilityReads.WithLabelValues("coaching", "day", "degraded")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.outboxPublished.WithLabelValues("coaching", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outboxPublished.WithLabelValues("coaching", "error")))
}

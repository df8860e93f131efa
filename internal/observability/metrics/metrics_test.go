package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsObserve(t *testing.T) {
	m := NewBookingMetrics(prometheus.NewRegistry())
	m.ObserveOpened()
	m.ObserveTransition("selecting_services", "selecting_date")
	m.ObserveTransition("selecting_services", "selecting_date")
	m.ObserveRejection("selecting_services", "select at least one service")
	m.ObserveHandoff("whatsapp", "ok", 0.02)
	m.ObserveContact("ok")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsOpened))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.transitions.WithLabelValues("selecting_services", "selecting_date")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.handoffs.WithLabelValues("whatsapp", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.contactRequests.WithLabelValues("ok")))
}

func TestBookingMetricsDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewBookingMetrics(reg)
	assert.Panics(t, func() { NewBookingMetrics(reg) })
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveOpened()
	m.ObserveTransition("a", "b")
	m.ObserveRejection("a", "reason")
	m.ObserveHandoff("whatsapp", "error", 0.1)
	m.ObserveContact("invalid")
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking wizard and the
// contact form.
type BookingMetrics struct {
	sessionsOpened  prometheus.Counter
	transitions     *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	handoffs        *prometheus.CounterVec
	handoffLatency  *prometheus.HistogramVec
	contactRequests *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streetlab",
			Subsystem: "booking",
			Name:      "sessions_opened_total",
			Help:      "Total booking wizard sessions opened",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streetlab",
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Wizard step transitions",
		}, []string{"from", "to"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streetlab",
			Subsystem: "booking",
			Name:      "guard_rejections_total",
			Help:      "Wizard actions rejected by a step requirement",
		}, []string{"step", "reason"}),
		handoffs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streetlab",
			Subsystem: "booking",
			Name:      "handoffs_total",
			Help:      "Confirmed bookings handed off to the owner",
		}, []string{"adapter", "status"}),
		handoffLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "streetlab",
			Subsystem: "booking",
			Name:      "handoff_latency_seconds",
			Help:      "Latency of booking handoffs including owner notifications",
			Buckets:   prometheus.DefBuckets,
		}, []string{"adapter"}),
		contactRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streetlab",
			Subsystem: "booking",
			Name:      "contact_requests_total",
			Help:      "Contact form submissions",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsOpened, m.transitions, m.rejections, m.handoffs, m.handoffLatency, m.contactRequests)
	return m
}

func (m *BookingMetrics) ObserveOpened() {
	if m == nil {
		return
	}
	m.sessionsOpened.Inc()
}

func (m *BookingMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *BookingMetrics) ObserveRejection(step, reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(step, reason).Inc()
}

func (m *BookingMetrics) ObserveHandoff(adapter, status string, seconds float64) {
	if m == nil {
		return
	}
	m.handoffs.WithLabelValues(adapter, status).Inc()
	m.handoffLatency.WithLabelValues(adapter).Observe(seconds)
}

func (m *BookingMetrics) ObserveContact(status string) {
	if m == nil {
		return
	}
	m.contactRequests.WithLabelValues(status).Inc()
}

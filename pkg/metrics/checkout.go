package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout submission outcomes.
type CheckoutMetrics struct {
	duration    *prometheus.HistogramVec
	submissions *prometheus.CounterVec
	orderValue  prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"outcome"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_order_value",
		Help:    "Total price of successfully placed orders.",
		Buckets: prometheus.ExponentialBuckets(1000, 2, 12),
	})
	reg.MustRegister(duration, submissions, orderValue)
	return &CheckoutMetrics{
		duration:    duration,
		submissions: submissions,
		orderValue:  orderValue,
	}
}

// ObserveDuration records the duration for a submission outcome.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSubmission counts a submission outcome.
func (c *CheckoutMetrics) IncSubmission(outcome string) {
	if c == nil || c.submissions == nil {
		return
	}
	c.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveOrderValue records the total of a placed order.
func (c *CheckoutMetrics) ObserveOrderValue(total float64) {
	if c == nil || c.orderValue == nil {
		return
	}
	c.orderValue.Observe(total)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

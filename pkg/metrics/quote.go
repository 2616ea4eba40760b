package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records pricing quote computations.
type QuoteMetrics struct {
	duration   *prometheus.HistogramVec
	quotes     *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of cart quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"price_model"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_total",
		Help: "Cart quotes computed, labeled by the store price model.",
	}, []string{"price_model"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_rejections_total",
		Help: "Cart quotes rejected by validation, labeled by reason.",
	}, []string{"reason"})
	reg.MustRegister(duration, quotes, rejections)
	return &QuoteMetrics{
		duration:   duration,
		quotes:     quotes,
		rejections: rejections,
	}
}

// ObserveDuration records the computation time for the given price model.
func (q *QuoteMetrics) ObserveDuration(priceModel string, duration time.Duration) {
	if q == nil || q.duration == nil {
		return
	}
	q.duration.WithLabelValues(normalizeLabel(priceModel)).Observe(duration.Seconds())
}

// IncQuote increments the computed-quote counter for the given price model.
func (q *QuoteMetrics) IncQuote(priceModel string) {
	if q == nil || q.quotes == nil {
		return
	}
	q.quotes.WithLabelValues(normalizeLabel(priceModel)).Inc()
}

// IncRejection increments the rejection counter for the given reason.
func (q *QuoteMetrics) IncRejection(reason string) {
	if q == nil || q.rejections == nil {
		return
	}
	q.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

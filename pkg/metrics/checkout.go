package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order placement and promo lookup outcomes.
type CheckoutMetrics struct {
	processDuration *prometheus.HistogramVec
	ordersPlaced    prometheus.Counter
	ordersFailed    prometheus.Counter
	promoLookups    *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	processDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_process_duration_seconds",
		Help:    "Duration of the external order processing call in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"payment_method"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed successfully.",
	})
	ordersFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Orders that failed during processing.",
	})
	promoLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_lookups_total",
		Help: "Promo code lookups by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(processDuration, ordersPlaced, ordersFailed, promoLookups)
	return &CheckoutMetrics{
		processDuration: processDuration,
		ordersPlaced:    ordersPlaced,
		ordersFailed:    ordersFailed,
		promoLookups:    promoLookups,
	}
}

// ObserveProcessDuration records the processing call duration.
func (c *CheckoutMetrics) ObserveProcessDuration(paymentMethod string, duration time.Duration) {
	if c == nil || c.processDuration == nil {
		return
	}
	c.processDuration.WithLabelValues(normalizeLabel(paymentMethod)).Observe(duration.Seconds())
}

// IncOrderPlaced increments the success counter.
func (c *CheckoutMetrics) IncOrderPlaced() {
	if c == nil || c.ordersPlaced == nil {
		return
	}
	c.ordersPlaced.Inc()
}

// IncOrderFailed increments the failure counter.
func (c *CheckoutMetrics) IncOrderFailed() {
	if c == nil || c.ordersFailed == nil {
		return
	}
	c.ordersFailed.Inc()
}

// IncPromoLookup records a promo lookup outcome ("hit" or "miss").
func (c *CheckoutMetrics) IncPromoLookup(outcome string) {
	if c == nil || c.promoLookups == nil {
		return
	}
	c.promoLookups.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

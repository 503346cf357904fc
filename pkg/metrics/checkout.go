package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order placement outcomes.
type CheckoutMetrics struct {
	duration   *prometheus.HistogramVec
	placed     *prometheus.CounterVec
	stockShort prometheus.Counter
	vouchers   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of order placement in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})
	stockShort := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_insufficient_stock_total",
		Help: "Checkouts rejected because a line had insufficient stock.",
	})
	vouchers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "voucher_redemptions_total",
		Help: "Voucher redemptions by scope.",
	}, []string{"scope"})
	reg.MustRegister(duration, placed, stockShort, vouchers)
	return &CheckoutMetrics{
		duration:   duration,
		placed:     placed,
		stockShort: stockShort,
		vouchers:   vouchers,
	}
}

// ObserveDuration records how long a placement took for the given outcome.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncPlaced increments the placement counter for the given outcome.
func (c *CheckoutMetrics) IncPlaced(outcome string) {
	if c == nil || c.placed == nil {
		return
	}
	c.placed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncInsufficientStock counts a stock-short rejection.
func (c *CheckoutMetrics) IncInsufficientStock() {
	if c == nil || c.stockShort == nil {
		return
	}
	c.stockShort.Inc()
}

// IncVoucherRedemption counts a redeemed voucher for the given scope.
func (c *CheckoutMetrics) IncVoucherRedemption(scope string) {
	if c == nil || c.vouchers == nil {
		return
	}
	c.vouchers.WithLabelValues(normalizeLabel(scope)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

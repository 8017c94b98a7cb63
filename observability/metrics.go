package observability

import (
	gu "github.com/xraph/go-utils/metrics"
)

// Metrics holds metric instruments for Hookgate, backed by any go-utils
// MetricFactory (e.g. metrics.NewMetricsCollector() for standalone usage).
type Metrics struct {
	ReceivedTotal      gu.Counter
	DeliveriesTotal    gu.Counter
	DeliveryLatency    gu.Histogram
	DeadLettersTotal   gu.Counter
	DeadLetterFailures gu.Counter
	SecretCacheHits    gu.Counter
	SecretCacheMisses  gu.Counter
}

// NewMetrics creates Hookgate metric instruments using the supplied factory.
func NewMetrics(factory gu.MetricFactory) *Metrics {
	return &Metrics{
		ReceivedTotal:      factory.Counter("hookgate_webhooks_received_total"),
		DeliveriesTotal:    factory.Counter("hookgate_deliveries_total"),
		DeliveryLatency:    factory.Histogram("hookgate_delivery_latency_seconds"),
		DeadLettersTotal:   factory.Counter("hookgate_dead_letters_total"),
		DeadLetterFailures: factory.Counter("hookgate_dead_letter_failures_total"),
		SecretCacheHits:    factory.Counter("hookgate_secret_cache_hits_total"),
		SecretCacheMisses:  factory.Counter("hookgate_secret_cache_misses_total"),
	}
}

// RecordDelivery records a completed pipeline run with the given terminal
// status ("delivered", "rejected", "failed") and latency.
func (m *Metrics) RecordDelivery(status string, latencySeconds float64) {
	m.DeliveriesTotal.WithLabels(map[string]string{"status": status}).Inc()
	m.DeliveryLatency.Observe(latencySeconds)
}

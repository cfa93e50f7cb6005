package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CheckoutAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Checkout attempts by terminal outcome",
		},
		[]string{"outcome"}, // success|empty_cart|unknown_product|invalid_quantity|payment_declined|payment_transport_error|persistence_error
	)
	PaymentRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_requests_total",
			Help: "Requests to the payment gateway by outcome",
		},
		[]string{"outcome"}, // authorized|declined|transport_error
	)
	PaymentRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_request_duration_seconds",
			Help:    "Payment gateway request duration",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует все метрики в default-реестре.
// Повторные вызовы безопасны (тесты поднимают приложение многократно).
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CheckoutAttempts, PaymentRequests, PaymentRequestDuration,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			CacheOps, CacheSize,
		)
	})
}

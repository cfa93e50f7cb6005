package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/shop_api/config"
)

// TestLoadWithPrefix_Defaults — проверка значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("SHOP_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr: want :8080, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}

	// Postgres
	if c.Postgres.MaxConns != 10 {
		t.Fatalf("Postgres.MaxConns: want 10, got %d", c.Postgres.MaxConns)
	}

	// Kafka
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka.Brokers: want [kafka:9092], got %v", c.Kafka.Brokers)
	}
	if c.Kafka.ProductsTopic != "products" || c.Kafka.OrdersTopic != "orders.placed" {
		t.Fatalf("Kafka topics wrong: %+v", c.Kafka)
	}
	if c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka.StartOffset: want last, got %q", c.Kafka.StartOffset)
	}

	// Payment
	if c.Payment.Currency != "usd" {
		t.Fatalf("Payment.Currency: want usd, got %q", c.Payment.Currency)
	}
	if c.Payment.Timeout != 10*time.Second {
		t.Fatalf("Payment.Timeout: want 10s, got %s", c.Payment.Timeout)
	}

	// Cache
	if c.Cache.Capacity != 1000 || c.Cache.TTL != 10*time.Minute || c.Cache.WarmUpN != 100 {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}
}

// TestLoadWithPrefix_Overrides — переменные окружения перекрывают дефолты.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	t.Setenv("SHOP_TEST_OVR_HTTP_ADDR", ":9090")
	t.Setenv("SHOP_TEST_OVR_PAYMENT_CURRENCY", "eur")
	t.Setenv("SHOP_TEST_OVR_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SHOP_TEST_OVR_CACHE_TTL", "30s")

	c, err := cfg.LoadWithPrefix("SHOP_TEST_OVR")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9090" {
		t.Fatalf("HTTP.Addr: want :9090, got %q", c.HTTP.Addr)
	}
	if c.Payment.Currency != "eur" {
		t.Fatalf("Payment.Currency: want eur, got %q", c.Payment.Currency)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9092"}) {
		t.Fatalf("Kafka.Brokers: want [k1:9092 k2:9092], got %v", c.Kafka.Brokers)
	}
	if c.Cache.TTL != 30*time.Second {
		t.Fatalf("Cache.TTL: want 30s, got %s", c.Cache.TTL)
	}
}

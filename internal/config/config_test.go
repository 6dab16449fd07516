package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "garment_track.db", cfg.DBPath)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "garment-order-events", cfg.KafkaTopic)
	assert.Equal(t, 60, cfg.OrderRateLimit)
	assert.Equal(t, time.Minute, cfg.OrderRateWindow)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.CheckoutSessionTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("ORDER_RATE_LIMIT", "5")
	t.Setenv("ORDER_RATE_WINDOW_SEC", "10")
	t.Setenv("SESSION_TTL_HOUR", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5, cfg.OrderRateLimit)
	assert.Equal(t, 10*time.Second, cfg.OrderRateWindow)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric rate limit", "ORDER_RATE_LIMIT", "lots"},
		{"zero rate limit", "ORDER_RATE_LIMIT", "0"},
		{"negative window", "ORDER_RATE_WINDOW_SEC", "-1"},
		{"non-numeric redis db", "REDIS_DB", "main"},
		{"zero stats ttl", "STATS_CACHE_TTL_SEC", "0"},
		{"zero session ttl", "SESSION_TTL_HOUR", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(4<<20), cfg.MaxMessageSize)
	assert.Equal(t, 100, cfg.HistorySize)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://chat.example.com , http://localhost:3000")
	t.Setenv("MAX_MESSAGE_SIZE", "1048576")
	t.Setenv("HISTORY_SIZE", "50")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2")
	t.Setenv("SHUTDOWN_TIMEOUT", "30")

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.Port, "bare port numbers gain a leading colon")
	assert.Equal(t, []string{"https://chat.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1048576), cfg.MaxMessageSize)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MAX_MESSAGE_SIZE", "not-a-number")
	t.Setenv("HISTORY_SIZE", "-3")
	t.Setenv("RATE_LIMIT_BURST", "0")

	cfg := LoadConfig()

	assert.Equal(t, int64(4<<20), cfg.MaxMessageSize)
	assert.Equal(t, 100, cfg.HistorySize)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestSanitizeConfigFillsZeroValues(t *testing.T) {
	cfg := sanitizeConfig(Config{})

	assert.Equal(t, ":8080", cfg.Port)
	assert.Positive(t, cfg.MaxMessageSize)
	assert.Positive(t, cfg.HistorySize)
	assert.Positive(t, cfg.RateLimit.Burst)
	assert.Positive(t, cfg.RateLimit.RefillInterval)
	assert.Positive(t, cfg.ShutdownTimeout)
}

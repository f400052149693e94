package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"GREENTAX_ADDR", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "JWT_SIGNING_KEY",
		"RECOMPUTE_WORKERS", "RECOMPUTE_BUFFER", "RECOMPUTE_TIMEOUT", "REBATE_CACHE_TTL", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, devSigningKey, cfg.JWTSigningKey)
	assert.Equal(t, 4, cfg.Recompute.Workers)
	assert.Equal(t, 10*time.Second, cfg.Recompute.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.RebateTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GREENTAX_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("RECOMPUTE_WORKERS", "8")
	t.Setenv("RECOMPUTE_TIMEOUT", "2s")
	t.Setenv("JWT_SIGNING_KEY", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 8, cfg.Recompute.Workers)
	assert.Equal(t, 2*time.Second, cfg.Recompute.Timeout)
	assert.Equal(t, "secret", cfg.JWTSigningKey)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("production requires a signing key", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SIGNING_KEY", "")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("RECOMPUTE_TIMEOUT", "soon")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "RECOMPUTE_TIMEOUT")
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("RECOMPUTE_WORKERS", "0")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("EVENTCARE_ADDR", "")
	t.Setenv("AUDIT_BACKEND", "")
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("AUDIT_QUEUE_SIZE", "lots")

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, AuditBackendMemory, cfg.Audit.Backend)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 1024, cfg.Audit.QueueSize)
	assert.Equal(t, "eventcare.audit", cfg.Kafka.TopicPrefix)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,,")
	t.Setenv("AUDIT_BACKEND", "KAFKA")
	t.Setenv("EVENT_CACHE_TTL", "90s")

	cfg := FromEnv()
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, AuditBackendKafka, cfg.Audit.Backend)
	assert.Equal(t, 90*time.Second, cfg.Cache.EventTTL)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("production rejects default signing key", func(t *testing.T) {
		t.Setenv("EVENTCARE_ENV", "production")
		t.Setenv("JWT_SIGNING_KEY", "")
		assert.ErrorContains(t, FromEnv().Validate(), "JWT_SIGNING_KEY")
	})

	t.Run("postgres backend requires a database", func(t *testing.T) {
		t.Setenv("AUDIT_BACKEND", "postgres")
		t.Setenv("DATABASE_URL", "")
		assert.ErrorContains(t, FromEnv().Validate(), "DATABASE_URL")
	})

	t.Run("kafka backend requires brokers", func(t *testing.T) {
		t.Setenv("AUDIT_BACKEND", "kafka")
		t.Setenv("KAFKA_BROKERS", "")
		assert.ErrorContains(t, FromEnv().Validate(), "KAFKA_BROKERS")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("AUDIT_BACKEND", "s3")
		assert.ErrorContains(t, FromEnv().Validate(), "unknown AUDIT_BACKEND")
	})
}

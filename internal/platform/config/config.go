// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSigningKey = "dev-secret-key-change-in-production"

// Audit backends selectable with AUDIT_BACKEND.
const (
	AuditBackendMemory   = "memory"
	AuditBackendPostgres = "postgres"
	AuditBackendSQLite   = "sqlite"
	AuditBackendKafka    = "kafka"
)

// Server captures HTTP server level configuration.
type Server struct {
	Environment   string
	Addr          string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Audit    AuditConfig
	Cache    CacheConfig
}

// RedisConfig configures the go-redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the record store. An empty URL keeps records in memory.
type PostgresConfig struct {
	URL      string
	MaxConns int32
}

type KafkaConfig struct {
	Brokers       []string
	TopicPrefix   string
	ConsumerGroup string
	ClientID      string
}

type AuditConfig struct {
	Backend          string
	SQLitePath       string
	QueueSize        int
	SealKey          string
	BreakerThreshold int
	BreakerCooldown  time.Duration
	DenialBufferSize int
}

type CacheConfig struct {
	EventTTL time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed numbers and durations fall back to their defaults.
func FromEnv() Server {
	return Server{
		Environment:   envOr("EVENTCARE_ENV", "development"),
		Addr:          envOr("EVENTCARE_ADDR", ":8080"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", defaultSigningKey),
		JWTIssuer:     envOr("JWT_ISSUER", "eventcare"),
		TokenTTL:      durationOr("TOKEN_TTL", 12*time.Hour),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:      os.Getenv("DATABASE_URL"),
			MaxConns: int32(intOr("DATABASE_MAX_CONNS", 10)),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(os.Getenv("KAFKA_BROKERS")),
			TopicPrefix:   envOr("KAFKA_TOPIC_PREFIX", "eventcare.audit"),
			ConsumerGroup: envOr("KAFKA_CONSUMER_GROUP", "eventcare-audit-consumer"),
			ClientID:      envOr("KAFKA_CLIENT_ID", "eventcare"),
		},
		Audit: AuditConfig{
			Backend:          strings.ToLower(envOr("AUDIT_BACKEND", AuditBackendMemory)),
			SQLitePath:       envOr("AUDIT_SQLITE_PATH", "eventcare-audit.db"),
			QueueSize:        intOr("AUDIT_QUEUE_SIZE", 1024),
			SealKey:          os.Getenv("AUDIT_SEAL_KEY"),
			BreakerThreshold: intOr("AUDIT_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  durationOr("AUDIT_BREAKER_COOLDOWN", 30*time.Second),
			DenialBufferSize: intOr("DENIAL_BUFFER_SIZE", 1000),
		},
		Cache: CacheConfig{
			EventTTL: durationOr("EVENT_CACHE_TTL", 10*time.Minute),
		},
	}
}

// Validate rejects configurations that must not reach production.
func (s Server) Validate() error {
	var errs []error
	if s.Environment == "production" && s.JWTSigningKey == defaultSigningKey {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be set in production"))
	}
	switch s.Audit.Backend {
	case AuditBackendMemory, AuditBackendSQLite:
	case AuditBackendPostgres:
		if s.Postgres.URL == "" {
			errs = append(errs, errors.New("AUDIT_BACKEND=postgres requires DATABASE_URL"))
		}
	case AuditBackendKafka:
		if len(s.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("AUDIT_BACKEND=kafka requires KAFKA_BROKERS"))
		}
	default:
		errs = append(errs, errors.New("unknown AUDIT_BACKEND "+strconv.Quote(s.Audit.Backend)))
	}
	if s.Audit.QueueSize <= 0 {
		errs = append(errs, errors.New("AUDIT_QUEUE_SIZE must be positive"))
	}
	if s.Audit.SealKey != "" && len(s.Audit.SealKey) > 64 {
		errs = append(errs, errors.New("AUDIT_SEAL_KEY must be at most 64 bytes"))
	}
	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

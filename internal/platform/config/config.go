package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	platformstrings "greentax/pkg/platform/strings"
)

const devSigningKey = "dev-secret-key-change-in-production"

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWTSigningKey string
	DatabaseURL   string

	Redis     RedisConfig
	Kafka     KafkaConfig
	Images    ImageConfig
	Recompute RecomputeConfig
}

// RedisConfig configures the rebate projection cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RebateTTL    time.Duration
}

// KafkaConfig configures the audit sink. No brokers keeps audit in memory.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// ImageConfig configures where uploaded proof images are written and served from.
type ImageConfig struct {
	Dir     string
	BaseURL string
}

// RecomputeConfig sizes the background compliance recomputation pool.
type RecomputeConfig struct {
	Workers int
	Buffer  int
	Timeout time.Duration
}

// IsProduction reports whether the service runs with production defaults.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	cfg := Server{
		Addr:          getEnv("GREENTAX_ADDR", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:    platformstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "greentax.audit"),
		},
		Images: ImageConfig{
			Dir:     getEnv("IMAGE_DIR", "./uploads"),
			BaseURL: getEnv("IMAGE_BASE_URL", "/uploads"),
		},
	}

	var err error
	if cfg.Recompute.Workers, err = getInt("RECOMPUTE_WORKERS", 4); err != nil {
		return Server{}, err
	}
	if cfg.Recompute.Buffer, err = getInt("RECOMPUTE_BUFFER", 256); err != nil {
		return Server{}, err
	}
	if cfg.Recompute.Timeout, err = getDuration("RECOMPUTE_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.RebateTTL, err = getDuration("REBATE_CACHE_TTL", 5*time.Minute); err != nil {
		return Server{}, err
	}

	if cfg.JWTSigningKey == "" {
		if cfg.IsProduction() {
			return Server{}, fmt.Errorf("JWT_SIGNING_KEY is required in production")
		}
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = devSigningKey
	}
	if cfg.Recompute.Workers < 1 {
		return Server{}, fmt.Errorf("RECOMPUTE_WORKERS must be at least 1")
	}
	if cfg.Recompute.Buffer < 1 {
		return Server{}, fmt.Errorf("RECOMPUTE_BUFFER must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

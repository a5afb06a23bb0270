// Package config builds runtime configuration from environment variables so
// main stays lean. Every section is a plain value struct; nothing global.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates all sections consumed in cmd/server.
type Config struct {
	Server    Server
	Auth      Auth
	Postgres  Postgres
	Redis     Redis
	Kafka     Kafka
	Scan      Scan
	Allocator Allocator
	RateLimit RateLimit
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Auth holds token validation settings for the API surface.
type Auth struct {
	JWTSigningKey string
}

// Postgres holds connection settings for the catalog and audit stores.
// An empty URL means postgres-backed stores are disabled (memory fallback).
type Postgres struct {
	URL string
}

// Redis holds connection settings for the scan history store.
// An empty URL means Redis is not configured.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka holds audit publishing settings. Empty broker list disables Kafka.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// Scan tunes the scan resolution pipeline defaults. Per-request parameters
// override these.
type Scan struct {
	TabSubmitMinLength int
	HistoryLimit       int
	LookupBaseURL      string
	LookupTimeout      time.Duration
}

// Allocator tunes barcode uniqueness probing.
type Allocator struct {
	MaxProbes       int
	PersistAttempts int
}

// RateLimit applies to the public scan endpoints.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults. Production deployments must override the signing key.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envString("SCANID_ADDR", ":8080"),
			ShutdownTimeout: envDuration("SCANID_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: Auth{
			JWTSigningKey: envString("SCANID_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		},
		Postgres: Postgres{
			URL: os.Getenv("SCANID_POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("SCANID_REDIS_URL"),
			PoolSize:     envInt("SCANID_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("SCANID_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("SCANID_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("SCANID_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("SCANID_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers:    envStrings("SCANID_KAFKA_BROKERS"),
			AuditTopic: envString("SCANID_KAFKA_AUDIT_TOPIC", "scanid.audit.events"),
		},
		Scan: Scan{
			TabSubmitMinLength: envInt("SCANID_TAB_SUBMIT_MIN_LENGTH", 4),
			HistoryLimit:       envInt("SCANID_SCAN_HISTORY_LIMIT", 50),
			LookupBaseURL:      os.Getenv("SCANID_LOOKUP_BASE_URL"),
			LookupTimeout:      envDuration("SCANID_LOOKUP_TIMEOUT", 5*time.Second),
		},
		Allocator: Allocator{
			MaxProbes:       envInt("SCANID_ALLOCATOR_MAX_PROBES", 10000),
			PersistAttempts: envInt("SCANID_ALLOCATOR_PERSIST_ATTEMPTS", 3),
		},
		RateLimit: RateLimit{
			Limit:  envInt("SCANID_RATE_LIMIT", 120),
			Window: envDuration("SCANID_RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envStrings(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Package config loads the sweeper configuration from the environment,
// reading a .env file first when one is present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database Database
	Detector Detector
	Geocode  Geocode
	Kafka    Kafka
	Redis    Redis
	Sweep    Sweep
}

type Database struct {
	DSN           string
	MigrationsDir string
	Migrate       bool
}

type Detector struct {
	URL     string
	Timeout time.Duration
}

type Geocode struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type Kafka struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether event publishing is configured.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Sweep struct {
	// Interval between sweeps. Zero means run a single sweep and exit.
	Interval     time.Duration
	FetchTimeout time.Duration
}

// Load reads configuration from the environment. DETECTOR_URL and DB_DSN
// are mandatory; everything else has a default or is optional.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Database: Database{
			DSN:           getEnv("DB_DSN", ""),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "migrations"),
			Migrate:       getEnv("DB_MIGRATE", "") == "true",
		},
		Detector: Detector{
			URL:     getEnv("DETECTOR_URL", ""),
			Timeout: getEnvAsDuration("DETECTOR_TIMEOUT", 30*time.Second),
		},
		Geocode: Geocode{
			BaseURL:  getEnv("NOMINATIM_URL", ""),
			Timeout:  getEnvAsDuration("NOMINATIM_TIMEOUT", 5*time.Second),
			CacheTTL: getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC_MEASUREMENTS", ""),
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Sweep: Sweep{
			Interval:     getEnvAsDuration("SWEEP_INTERVAL", 0),
			FetchTimeout: getEnvAsDuration("IMAGE_FETCH_TIMEOUT", 30*time.Second),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("environment variable DB_DSN not set")
	}
	if cfg.Detector.URL == "" {
		return nil, fmt.Errorf("environment variable DETECTOR_URL not set")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

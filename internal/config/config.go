// Package config loads service settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the site service.
type Config struct {
	Addr           string
	BackendBaseURL string
	BackendTimeout time.Duration

	// KVDriver selects where the admin session token is persisted:
	// "sqlite", "redis" or "memory".
	KVDriver string
	KVPath   string
	RedisURL string

	ContentCacheTTL time.Duration

	RateBurst     int
	RatePerSecond int
	MaxBodyBytes  int64
}

// Load reads configuration from IPS_-prefixed environment variables. A .env
// file in the working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:            getString("IPS_ADDR", ":8080"),
		BackendBaseURL:  getString("IPS_BACKEND_URL", "http://localhost:9000"),
		BackendTimeout:  getDuration("IPS_BACKEND_TIMEOUT", 10*time.Second),
		KVDriver:        strings.ToLower(getString("IPS_KV_DRIVER", "sqlite")),
		KVPath:          getString("IPS_KV_PATH", "ipschool.db"),
		RedisURL:        getString("IPS_REDIS_URL", ""),
		ContentCacheTTL: getDuration("IPS_CONTENT_CACHE_TTL", 30*time.Second),
		RateBurst:       getInt("IPS_RATE_BURST", 5),
		RatePerSecond:   getInt("IPS_RATE_PER_SECOND", 2),
		MaxBodyBytes:    int64(getInt("IPS_MAX_BODY_BYTES", 1<<20)),
	}

	switch cfg.KVDriver {
	case "sqlite", "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("IPS_REDIS_URL is required when IPS_KV_DRIVER=redis")
		}
	default:
		return Config{}, fmt.Errorf("unknown IPS_KV_DRIVER %q", cfg.KVDriver)
	}
	if cfg.BackendBaseURL == "" {
		return Config{}, fmt.Errorf("IPS_BACKEND_URL must not be empty")
	}
	return cfg, nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

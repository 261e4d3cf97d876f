package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config del proceso, cargada de env (.env opcional en dev).
type Config struct {
	Addr string

	// Storage: DB_DSN manda sobre DATA_DIR; sin ninguno, in-memory.
	DBDSN   string
	DataDir string

	RxNavBaseURL string
	RxNavTimeout time.Duration

	RateLimitRate     float64
	RateLimitCapacity int64

	RemindersEnabled bool
}

// Load lee .env si existe y arma la config desde env vars.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:              ":" + getEnv("PORT", "8080"),
		DBDSN:             strings.TrimSpace(os.Getenv("DB_DSN")),
		DataDir:           strings.TrimSpace(os.Getenv("DATA_DIR")),
		RxNavBaseURL:      strings.TrimSpace(os.Getenv("RXNAV_BASE_URL")),
		RxNavTimeout:      getDuration("RXNAV_TIMEOUT", 5*time.Second),
		RateLimitRate:     getFloat("RATE_LIMIT_RATE", 10),
		RateLimitCapacity: getInt("RATE_LIMIT_CAPACITY", 100),
		RemindersEnabled:  getBool("REMINDERS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int64) int64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

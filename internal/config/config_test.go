package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_DSN", "DATA_DIR", "RXNAV_BASE_URL", "RXNAV_TIMEOUT",
		"RATE_LIMIT_RATE", "RATE_LIMIT_CAPACITY", "REMINDERS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.DBDSN != "" || cfg.DataDir != "" {
		t.Fatalf("expected in-memory storage defaults, got dsn=%q dir=%q", cfg.DBDSN, cfg.DataDir)
	}
	if cfg.RxNavTimeout != 5*time.Second {
		t.Fatalf("expected 5s rxnav timeout, got %v", cfg.RxNavTimeout)
	}
	if cfg.RateLimitRate != 10 || cfg.RateLimitCapacity != 100 {
		t.Fatalf("unexpected rate limit defaults: %v / %v", cfg.RateLimitRate, cfg.RateLimitCapacity)
	}
	if !cfg.RemindersEnabled {
		t.Fatal("expected reminders enabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_DIR", "/var/lib/meds")
	t.Setenv("RXNAV_TIMEOUT", "2s")
	t.Setenv("RATE_LIMIT_RATE", "2.5")
	t.Setenv("RATE_LIMIT_CAPACITY", "7")
	t.Setenv("REMINDERS_ENABLED", "false")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.Addr)
	}
	if cfg.DataDir != "/var/lib/meds" {
		t.Fatalf("expected data dir, got %q", cfg.DataDir)
	}
	if cfg.RxNavTimeout != 2*time.Second {
		t.Fatalf("expected 2s, got %v", cfg.RxNavTimeout)
	}
	if cfg.RateLimitRate != 2.5 || cfg.RateLimitCapacity != 7 {
		t.Fatalf("unexpected rate limit config: %v / %v", cfg.RateLimitRate, cfg.RateLimitCapacity)
	}
	if cfg.RemindersEnabled {
		t.Fatal("expected reminders disabled")
	}
}

func TestLoad_IgnoresGarbageValues(t *testing.T) {
	t.Setenv("RXNAV_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_RATE", "fast")
	t.Setenv("REMINDERS_ENABLED", "maybe")

	cfg := Load()

	if cfg.RxNavTimeout != 5*time.Second {
		t.Fatalf("expected fallback timeout, got %v", cfg.RxNavTimeout)
	}
	if cfg.RateLimitRate != 10 {
		t.Fatalf("expected fallback rate, got %v", cfg.RateLimitRate)
	}
	if !cfg.RemindersEnabled {
		t.Fatal("expected fallback reminders=true")
	}
}

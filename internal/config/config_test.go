package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/gigpay")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("ADMIN_TOKEN_HASH", "$2a$10$fakefakefakefakefakefake")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.ShutdownPeriod != 10*time.Second {
		t.Fatalf("expected default shutdown period, got %s", cfg.ShutdownPeriod)
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("expected default idempotency TTL, got %s", cfg.IdempotencyTTL)
	}
	if cfg.RatePerMinute != 30 {
		t.Fatalf("expected default rate limit, got %d", cfg.RatePerMinute)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	cases := []string{"DATABASE_URL", "REDIS_URL", "ADMIN_TOKEN_HASH"}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error when %s is unset", missing)
			}
		})
	}
}

func TestLoadDurationOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("IDEMPOTENCY_TTL", "90m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShutdownPeriod != 3*time.Second {
		t.Fatalf("expected 3s shutdown period, got %s", cfg.ShutdownPeriod)
	}
	if cfg.IdempotencyTTL != 90*time.Minute {
		t.Fatalf("expected 90m idempotency TTL, got %s", cfg.IdempotencyTTL)
	}
	if cfg.RatePerMinute != 7 {
		t.Fatalf("expected rate limit 7, got %d", cfg.RatePerMinute)
	}

	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "oops")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid shutdown timeout")
	}
}

func TestAddress(t *testing.T) {
	if got := (Config{Port: "9090"}).Address(); got != ":9090" {
		t.Fatalf("unexpected address %s", got)
	}
	if got := (Config{Port: ":9090"}).Address(); got != ":9090" {
		t.Fatalf("unexpected address %s", got)
	}
}

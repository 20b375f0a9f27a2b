package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENV", "STORE", "DATABASE_DSN", "REDIS_ADDR", "REDIS_PREFIX",
		"JWT_SECRET", "JWT_EXPIRY", "WORKERS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"DEFAULT_COUNT", "DEFAULT_LENGTH", "DEFAULT_COST_FACTOR",
	} {
		t.Setenv(k, "")
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.Store != StoreNone {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreNone)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if cfg.Defaults != DefaultDefaults() {
		t.Errorf("Defaults = %+v, want %+v", cfg.Defaults, DefaultDefaults())
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Workers)
	}
}

func TestParseOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "Redis")
	t.Setenv("WORKERS", "3")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("DEFAULT_COUNT", "10")
	t.Setenv("DEFAULT_LENGTH", "20")
	t.Setenv("DEFAULT_COST_FACTOR", "12")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.Store != StoreRedis {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreRedis)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.JWTExpiry != 90*time.Minute {
		t.Errorf("JWTExpiry = %v, want 90m", cfg.JWTExpiry)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("RateLimitRPS = %v, want 0.5", cfg.RateLimitRPS)
	}
	if cfg.Defaults.Count != 10 || cfg.Defaults.Length != 20 || cfg.Defaults.CostFactor != 12 {
		t.Errorf("Defaults = %+v, want count 10, length 20, cost 12", cfg.Defaults)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{"STORE": "postgres"}},
		{name: "bad workers", env: map[string]string{"WORKERS": "many"}},
		{name: "bad expiry", env: map[string]string{"JWT_EXPIRY": "tomorrow"}},
		{name: "bad rps", env: map[string]string{"RATE_LIMIT_RPS": "fast"}},
		{name: "production with dev secret", env: map[string]string{"ENV": "production"}},
		{name: "bad default count", env: map[string]string{"DEFAULT_COUNT": "abc"}},
		{name: "default count zero", env: map[string]string{"DEFAULT_COUNT": "0"}},
		{name: "default count too high", env: map[string]string{"DEFAULT_COUNT": "101"}},
		{name: "default length too short", env: map[string]string{"DEFAULT_LENGTH": "7"}},
		{name: "default length too long", env: map[string]string{"DEFAULT_LENGTH": "33"}},
		{name: "default cost too low", env: map[string]string{"DEFAULT_COST_FACTOR": "9"}},
		{name: "default cost too high", env: map[string]string{"DEFAULT_COST_FACTOR": "20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Parse(); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}

func TestParseDefaultsAtBounds(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_COUNT", "100")
	t.Setenv("DEFAULT_LENGTH", "8")
	t.Setenv("DEFAULT_COST_FACTOR", "14")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if cfg.Defaults.Count != 100 || cfg.Defaults.Length != 8 || cfg.Defaults.CostFactor != 14 {
		t.Errorf("Defaults = %+v, want count 100, length 8, cost 14", cfg.Defaults)
	}
}

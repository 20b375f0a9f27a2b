package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Accepted ranges for request fields, shared by the DEFAULT_* variables.
const (
	MinCount      = 1
	MaxCount      = 100
	MinLength     = 8
	MaxLength     = 32
	MinCostFactor = 10
	MaxCostFactor = 14
)

// Store backends selectable with STORE.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
	StoreRedis  = "redis"
)

// Config holds the server and CLI settings read from the environment.
type Config struct {
	Port           string
	Env            string
	Store          string
	DatabaseDSN    string
	RedisAddr      string
	RedisPrefix    string
	JWTSecret      string
	JWTExpiry      time.Duration
	Workers        int
	RateLimitRPS   float64
	RateLimitBurst int
	Defaults       Defaults
}

// Defaults fills fields a generation request leaves out.
type Defaults struct {
	Count      int
	Length     int
	CostFactor int
	Uppercase  bool
	Lowercase  bool
	Numbers    bool
	Special    bool
	EasyToRead bool
}

// DefaultDefaults returns 5 passwords of 12 characters at cost 10 with every class enabled.
func DefaultDefaults() Defaults {
	return Defaults{
		Count:      5,
		Length:     12,
		CostFactor: 10,
		Uppercase:  true,
		Lowercase:  true,
		Numbers:    true,
		Special:    true,
	}
}

// Load parses the configuration and exits the process if it is invalid.
func Load() Config {
	cfg, err := Parse()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// Parse reads the configuration from the environment.
func Parse() (Config, error) {
	d := DefaultDefaults()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		Store:          strings.ToLower(getEnv("STORE", StoreNone)),
		DatabaseDSN:    getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passforge?parseTime=true"),
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPrefix:    getEnv("REDIS_PREFIX", "passforge"),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:      24 * time.Hour,
		Workers:        runtime.GOMAXPROCS(0),
		RateLimitRPS:   2,
		RateLimitBurst: 5,
		Defaults:       d,
	}

	var err error
	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", cfg.JWTExpiry); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = getInt("WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return Config{}, err
	}
	if cfg.Defaults.Count, err = getInt("DEFAULT_COUNT", d.Count); err != nil {
		return Config{}, err
	}
	if cfg.Defaults.Length, err = getInt("DEFAULT_LENGTH", d.Length); err != nil {
		return Config{}, err
	}
	if cfg.Defaults.CostFactor, err = getInt("DEFAULT_COST_FACTOR", d.CostFactor); err != nil {
		return Config{}, err
	}

	if err := cfg.Defaults.validate(); err != nil {
		return Config{}, err
	}

	switch cfg.Store {
	case StoreNone, StoreMemory, StoreMySQL, StoreRedis:
	default:
		return Config{}, fmt.Errorf("STORE: unknown backend %q", cfg.Store)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	return cfg, nil
}

func (d Defaults) validate() error {
	checks := []struct {
		key      string
		value    int
		min, max int
	}{
		{"DEFAULT_COUNT", d.Count, MinCount, MaxCount},
		{"DEFAULT_LENGTH", d.Length, MinLength, MaxLength},
		{"DEFAULT_COST_FACTOR", d.CostFactor, MinCostFactor, MaxCostFactor},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return fmt.Errorf("%s: %d not in [%d, %d]", c.key, c.value, c.min, c.max)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

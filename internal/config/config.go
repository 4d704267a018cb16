package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hotelops/internal/domain"
)

const (
	defaultHTTPAddr    = ":8080"
	defaultDatabaseURL = "hotelops.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"
	defaultLockTTL     = "10s"
	defaultLockWait    = "3s"
	defaultLogLevel    = "info"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// RedisURL switches room locks from in-process to Redis.
	RedisURL string
	LockTTL  time.Duration
	LockWait time.Duration

	SameDayTurnover       bool
	HousekeepingTokenHash string

	LogLevel  string
	LogPretty bool

	CORSAllowedOrigins []string
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.HousekeepingTokenHash = strings.TrimSpace(os.Getenv("HOUSEKEEPING_TOKEN_HASH"))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.LockTTL, err = parseDurationEnv("LOCK_TTL", defaultLockTTL)
	if err != nil {
		return nil, err
	}

	cfg.LockWait, err = parseDurationEnv("LOCK_WAIT", defaultLockWait)
	if err != nil {
		return nil, err
	}

	cfg.SameDayTurnover = parseBoolEnv("SAME_DAY_TURNOVER", "false")
	cfg.LogPretty = parseBoolEnv("LOG_PRETTY", fmt.Sprintf("%t", !isProdLike(cfg.AppEnv)))

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// OverlapPolicy maps SAME_DAY_TURNOVER onto the availability boundary rule.
func (c *Config) OverlapPolicy() domain.OverlapPolicy {
	if c.SameDayTurnover {
		return domain.OverlapExclusive
	}
	return domain.OverlapInclusive
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be > 0")
	}
	if cfg.LockWait <= 0 {
		return fmt.Errorf("LOCK_WAIT must be > 0")
	}
	if cfg.LockWait > cfg.LockTTL {
		return fmt.Errorf("LOCK_WAIT must not exceed LOCK_TTL")
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a zerolog level", cfg.LogLevel)
	}
	if cfg.HousekeepingTokenHash != "" && !strings.HasPrefix(cfg.HousekeepingTokenHash, "$2") {
		return fmt.Errorf("HOUSEKEEPING_TOKEN_HASH must be a bcrypt hash")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
			return fmt.Errorf("in prod/release DATABASE_URL must point at Postgres")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

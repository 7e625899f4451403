// Package config loads the server configuration: built-in defaults, then an
// optional TOML file, then environment variables.
//
// Environment variables:
//
//	PORT               HTTP port (default: 8080)
//	DB_DRIVER          sqlite or postgres (default: sqlite)
//	DATABASE_URL       sqlite file path or postgres URL (default: ./data/settleup.db)
//	REDIS_URL          redis://host:port/db; empty uses an in-process cache
//	CACHE_TTL          plan cache TTL, e.g. 5m (default: 5m)
//	NATS_URL           nats://host:port; empty disables events
//	JWT_SECRET         HMAC secret for bearer tokens
//	LOG_LEVEL          debug, info, warn, error (default: info)
//	LOG_FORMAT         text or json (default: text)
//	WORKING_CURRENCY   fixed working currency; empty picks the dominant one
//	DEFAULT_ALGORITHM  minCashFlow, greedy or friendPreference (default: minCashFlow)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

// DevJWTSecret is the default secret. Servers warn when it is still in use.
const DevJWTSecret = "settleup-dev-secret"

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Cache      CacheConfig      `toml:"cache"`
	Events     EventsConfig     `toml:"events"`
	Auth       AuthConfig       `toml:"auth"`
	Log        LogConfig        `toml:"log"`
	Settlement SettlementConfig `toml:"settlement"`
}

type ServerConfig struct {
	Port            int           `toml:"port"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `toml:"driver"`
	URL    string `toml:"url"`
}

type CacheConfig struct {
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

type EventsConfig struct {
	NATSURL string `toml:"nats_url"`
}

type AuthConfig struct {
	JWTSecret string        `toml:"jwt_secret"`
	TokenTTL  time.Duration `toml:"token_ttl"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type SettlementConfig struct {
	WorkingCurrency  string `toml:"working_currency"`
	DefaultAlgorithm string `toml:"default_algorithm"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:     ServerConfig{Port: 8080, ShutdownTimeout: 10 * time.Second},
		Database:   DatabaseConfig{Driver: "sqlite", URL: "./data/settleup.db"},
		Cache:      CacheConfig{TTL: 5 * time.Minute},
		Auth:       AuthConfig{JWTSecret: DevJWTSecret, TokenTTL: 24 * time.Hour},
		Log:        LogConfig{Level: "info", Format: "text"},
		Settlement: SettlementConfig{DefaultAlgorithm: string(calculator.MinCashFlow)},
	}
}

// Load builds the configuration. path may be empty; a named file that does
// not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("DB_DRIVER", &c.Database.Driver)
	str("DATABASE_URL", &c.Database.URL)
	str("REDIS_URL", &c.Cache.RedisURL)
	str("NATS_URL", &c.Events.NATSURL)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("WORKING_CURRENCY", &c.Settlement.WorkingCurrency)
	str("DEFAULT_ALGORITHM", &c.Settlement.DefaultAlgorithm)

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL %q: %w", v, err)
		}
		c.Cache.TTL = ttl
	}
	return nil
}

// Validate checks every field and normalizes the working currency.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Server.Port))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database url is required"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if _, err := calculator.ParseAlgorithm(c.Settlement.DefaultAlgorithm); err != nil {
		errs = append(errs, fmt.Errorf("default algorithm: %w", err))
	}
	if c.Settlement.WorkingCurrency != "" {
		code, ok := models.NormalizeCurrency(c.Settlement.WorkingCurrency)
		if !ok {
			errs = append(errs, fmt.Errorf("invalid working currency %q", c.Settlement.WorkingCurrency))
		}
		c.Settlement.WorkingCurrency = code
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

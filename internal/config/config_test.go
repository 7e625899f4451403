package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "minCashFlow", cfg.Settlement.DefaultAlgorithm)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settleup.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9000

[database]
driver = "postgres"
url = "postgres://localhost/settleup"

[cache]
ttl = "30s"

[settlement]
working_currency = "eur"
default_algorithm = "greedy"
`), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "EUR", cfg.Settlement.WorkingCurrency)
	assert.Equal(t, "greedy", cfg.Settlement.DefaultAlgorithm)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DB_DRIVER":         "postgres",
		"DATABASE_URL":      "postgres://db/settle",
		"REDIS_URL":         "redis://cache:6379/0",
		"CACHE_TTL":         "1m",
		"NATS_URL":          "nats://bus:4222",
		"JWT_SECRET":        "s3cret",
		"DEFAULT_ALGORITHM": "friendPreference",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "redis://cache:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "nats://bus:4222", cfg.Events.NATSURL)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "friendPreference", cfg.Settlement.DefaultAlgorithm)

	env["PORT"] = "eighty"
	assert.Error(t, cfg.applyEnv(lookup))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"unknown algorithm", func(c *Config) { c.Settlement.DefaultAlgorithm = "optimal" }},
		{"bad currency", func(c *Config) { c.Settlement.WorkingCurrency = "EURO" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"no secret", func(c *Config) { c.Auth.JWTSecret = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const sampleConfig = `
[server]
http_port = 8080
timezone = "Europe/Moscow"

[database]
host = "db"
user = "parking"
password = "secret"
dbname = "parking"

[logs]
level = "debug"

[metrics]
enabled = true

[[pricing.tiers]]
name = "1"
multiplier = 1.0

[[pricing.tiers]]
name = "night"
multiplier = 4.5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []domain.PricingTier{{Name: "1", Multiplier: 1}, {Name: "night", Multiplier: 4.5}}, cfg.Pricing.PricingTiers())
	assert.Equal(t, "Europe/Moscow", cfg.Server.Location().String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
}

func TestLoad_BadPortEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = 1"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port out of range", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"unknown timezone", func(c *Config) { c.Server.Timezone = "Mars/Olympus" }},
		{"missing dbname", func(c *Config) { c.Database.DBName = "" }},
		{"idle above open", func(c *Config) { c.Database.MaxIdleConns = 30 }},
		{"metrics path", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }},
		{"negative multiplier", func(c *Config) { c.Pricing.Tiers = []PricingTier{{Name: "1", Multiplier: -1}} }},
		{"blank tier name", func(c *Config) { c.Pricing.Tiers = []PricingTier{{Name: " ", Multiplier: 1}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.DBName = "parking"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5433, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=d sslmode=disable", d.DSN())
}

func TestDefaultPricingTiers(t *testing.T) {
	assert.Equal(t, domain.DefaultPricingTiers, PricingConfig{}.PricingTiers())
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, ServerConfig{Timezone: "nope"}.Location())
}

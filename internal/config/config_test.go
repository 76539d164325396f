package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())

	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.Server.RateLimit.RPS)
	assert.True(t, cfg.Server.Auth.Enabled)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "./data", cfg.Storage.Path)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "lending-desk", cfg.RabbitMQ.ExchangeName)

	assert.Equal(t, "0 2 * * *", cfg.Batch.PortfolioRefreshSchedule)
	assert.Equal(t, 30*time.Second, cfg.Batch.PortfolioRefreshTimeout)

	assert.False(t, cfg.Extraction.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.Extraction.Model)
}

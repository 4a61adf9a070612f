package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
database:
  host: "localhost"
  user: "sheerent"
  database: "sheerent"
detection:
  base_url: "http://localhost:8001"
`

func TestLoad(t *testing.T) {
	t.Run("DefaultsApplied", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 256, cfg.Storage.ThumbnailMaxPx)
		assert.Equal(t, 0.5, cfg.Detection.Confidence)
		assert.Equal(t, []string{"crack", "scratch"}, cfg.Detection.ClassNames)
		assert.Equal(t, []string{"101", "102", "103", "104", "105"}, cfg.Lockers.IDs)
		assert.Equal(t, 0.05, cfg.Pricing.InsuranceRate)
		assert.Equal(t, 0.05, cfg.Pricing.ServiceRate)
		assert.Equal(t, "0 * * * *", cfg.Scheduler.OverdueReminders)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 30*time.Second, cfg.DetectionTimeout())
		assert.Equal(t, 10*time.Second, cfg.DeviceTimeout())
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DETECTION_BASE_URL", "http://detector:9000")

		cfg, err := Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "http://detector:9000", cfg.Detection.BaseURL)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("MissingDatabaseHost", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
database:
  user: "sheerent"
  database: "sheerent"
detection:
  base_url: "http://localhost:8001"
`))
		assert.Error(t, err)
	})

	t.Run("EmailEnabledNeedsKey", func(t *testing.T) {
		_, err := Load(writeConfig(t, minimalConfig+`
email:
  enabled: true
`))
		assert.Error(t, err)
	})
}

func TestConnectionStrings(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8000},
		Database: DatabaseConfig{
			Host: "localhost", Port: 5432, User: "sheerent",
			Password: "secret", Database: "sheerent", SSLMode: "disable",
		},
	}

	assert.Equal(t, "0.0.0.0:8000", cfg.GetServerAddress())
	assert.Equal(t,
		"host=localhost port=5432 user=sheerent password=secret dbname=sheerent sslmode=disable",
		cfg.GetDatabaseConnectionString())
}

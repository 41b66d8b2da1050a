package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	t.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("UPLOAD_DIR", "/tmp/resumes")
	t.Setenv("JOOBLE_API_KEY", "jooble-key")
	t.Setenv("ADZUNA_APP_ID", "adzuna-id")
	t.Setenv("ADZUNA_APP_KEY", "adzuna-key")
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("REMINDER_INTERVAL", "3h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "newConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "/tmp/resumes", cfg.Storage.UploadDir)
	assert.Equal(t, "jooble-key", cfg.Search.JoobleAPIKey)
	assert.Equal(t, "adzuna-id", cfg.Search.AdzunaAppID)
	assert.Equal(t, "adzuna-key", cfg.Search.AdzunaAppKey)
	assert.Equal(t, "tg-token", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
	assert.Equal(t, 3*time.Hour, cfg.Reminders.Interval)
}

func Test_Config_DefaultsFromFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.False(t, cfg.DB.ResetOnStartup)
	assert.Equal(t, 24*time.Hour, cfg.Reminders.Interval)
	assert.Equal(t, 10*time.Minute, cfg.Search.CacheTTL)
	assert.False(t, cfg.Mail.Enabled())
	assert.False(t, cfg.AI.Enabled())
}

func Test_Config_InvalidSectionsAreReported(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("db:\n  driver: mysql\nmail:\n  host: smtp.example.com\nreminders:\n  interval: 0s\n")
	require.NoError(t, os.WriteFile(file, content, 0644))

	_, err := loadConfig(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown db driver")
	assert.Contains(t, err.Error(), "MailConfig")
	assert.Contains(t, err.Error(), "interval must be positive")
}

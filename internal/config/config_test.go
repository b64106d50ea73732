package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Empty(t, cfg.YouTube.APIKey)
	assert.Empty(t, cfg.YouTube.ChannelID)
	assert.Equal(t, 25, cfg.YouTube.MaxUploads)
	assert.Equal(t, 5, cfg.YouTube.MaxPastLive)
	assert.Equal(t, 50, cfg.YouTube.MaxPlaylistItems)

	assert.Equal(t, 3, cfg.Fetch.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Fetch.BaseDelay)
	assert.Equal(t, 8*time.Second, cfg.Fetch.MaxDelay)
	assert.Equal(t, 10*time.Second, cfg.Fetch.AttemptTimeout)

	assert.Equal(t, 60, cfg.Calendar.WindowDays)
	assert.Equal(t, 20, cfg.Calendar.MaxResults)

	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigin)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadUploadsBoundLargerThanPastLive(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Greater(t, cfg.YouTube.MaxUploads, cfg.YouTube.MaxPastLive)
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("APP_YOUTUBE_APIKEY", "env-key")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.YouTube.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
}

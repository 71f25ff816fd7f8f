// File: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("LASTFM_BASE_URL", "")
	t.Setenv("LASTFM_TIMEOUT_SECONDS", "")
	t.Setenv("SONG_LIMIT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "tunegen.db", cfg.DatabasePath)
	assert.Equal(t, "http://ws.audioscrobbler.com/2.0/", cfg.LastFMBaseURL)
	assert.Equal(t, 10*time.Second, cfg.LastFMTimeout)
	assert.Equal(t, 5, cfg.SongLimit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SONG_LIMIT", "10")
	t.Setenv("LASTFM_TIMEOUT_SECONDS", "3")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 10, cfg.SongLimit)
	assert.Equal(t, 3*time.Second, cfg.LastFMTimeout)
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SONG_LIMIT", "not-a-number")

	assert.Equal(t, 5, getEnvAsInt("SONG_LIMIT", 5))
}

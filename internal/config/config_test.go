package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *ServerConfig {
	cfg := DefaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "8080"
	return cfg
}

func TestValidateAcceptsDefaultsWithHostAndPort(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"missing port", func(c *ServerConfig) { c.Server.Port = "" }},
		{"missing host", func(c *ServerConfig) { c.Server.Host = "" }},
		{"short room code", func(c *ServerConfig) { c.Game.RoomCodeLength = 3 }},
		{"zero ttl", func(c *ServerConfig) { c.Game.RoomTTL = 0 }},
		{"zero discussion window", func(c *ServerConfig) { c.Game.DiscussionWindow = 0 }},
		{"zero rate limit", func(c *ServerConfig) { c.Server.RateLimit = 0 }},
		{"zero request size", func(c *ServerConfig) { c.Server.MaxRequestSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("HOST", "0.0.0.0")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	// Defaults fill the rest.
	assert.Equal(t, 6, cfg.Game.RoomCodeLength)
	assert.Equal(t, 2*time.Hour, cfg.Game.RoomTTL)
	assert.Equal(t, 5*time.Minute, cfg.Game.DiscussionWindow)
}

func TestLoadConfigMissingPortFails(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	data := `
server:
  host: 10.0.0.1
  port: "7777"
game:
  roomCodeLength: 8
  discussionWindow: 10m
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", cfg.Server.Host)
	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Game.RoomCodeLength)
	assert.Equal(t, 10*time.Minute, cfg.Game.DiscussionWindow)
}

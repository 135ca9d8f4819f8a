package config

import (
	"fmt"
	"time"
)

// This file defines the configuration structures; loading is handled by
// viper in viper_config.go.

// ServerConfig is the full application configuration.
type ServerConfig struct {
	Server ServerSettings `yaml:"server"`
	Game   GameSettings   `yaml:"game"`
}

// ServerSettings contains server-wide settings.
type ServerSettings struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	PublicBaseURL   string        `yaml:"publicBaseUrl"` // used for QR join links; falls back to the request host
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`

	// Rate limiting (golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	MaxRequestSize int64 `yaml:"maxRequestSize"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"` // "json" or "console"
}

// GameSettings tunes the session registry and pacing. The role table, player
// bounds and round count are deliberately not configurable: they are part of
// the game's balance and live in the game package.
type GameSettings struct {
	RoomCodeLength   int           `yaml:"roomCodeLength"`
	RoomTTL          time.Duration `yaml:"roomTtl"`
	DiscussionWindow time.Duration `yaml:"discussionWindow"`
}

// Validate checks if the configuration is valid.
func (c *ServerConfig) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT environment variable must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HOST environment variable must be set")
	}
	if c.Game.RoomCodeLength < 4 {
		return fmt.Errorf("roomCodeLength must be at least 4")
	}
	if c.Game.RoomTTL <= 0 {
		return fmt.Errorf("roomTtl must be positive")
	}
	if c.Game.DiscussionWindow <= 0 {
		return fmt.Errorf("discussionWindow must be positive")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rateLimit must be positive")
	}
	if c.Server.MaxRequestSize <= 0 {
		return fmt.Errorf("maxRequestSize must be positive")
	}
	return nil
}

// DefaultConfig returns a configuration with every tunable at its default.
// Port and Host still have to come from the environment.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
			MaxRequestSize:  1 << 20,
			LogLevel:        "info",
			LogFormat:       "json",
		},
		Game: GameSettings{
			RoomCodeLength:   6,
			RoomTTL:          2 * time.Hour,
			DiscussionWindow: 5 * time.Minute,
		},
	}
}

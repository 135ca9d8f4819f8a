package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration using Viper.
// Priority order: environment variables > config file > defaults.
func LoadConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("server")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/whodunit")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Short env names for the common knobs.
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.publicbaseurl", "PUBLIC_BASE_URL")
	v.BindEnv("server.loglevel", "LOG_LEVEL")
	v.BindEnv("server.logformat", "LOG_FORMAT")
	v.BindEnv("server.ratelimit", "RATE_LIMIT")
	v.BindEnv("server.ratelimitburst", "RATE_LIMIT_BURST")
	v.BindEnv("server.maxrequestsize", "MAX_REQUEST_SIZE")
	v.BindEnv("game.roomttl", "ROOM_TTL")

	defaults := DefaultConfig()
	v.SetDefault("server.readtimeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.writetimeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.idletimeout", defaults.Server.IdleTimeout)
	v.SetDefault("server.shutdowntimeout", defaults.Server.ShutdownTimeout)
	v.SetDefault("server.requesttimeout", defaults.Server.RequestTimeout)
	v.SetDefault("server.ratelimit", defaults.Server.RateLimit)
	v.SetDefault("server.ratelimitburst", defaults.Server.RateLimitBurst)
	v.SetDefault("server.maxrequestsize", defaults.Server.MaxRequestSize)
	v.SetDefault("server.loglevel", defaults.Server.LogLevel)
	v.SetDefault("server.logformat", defaults.Server.LogFormat)
	v.SetDefault("game.roomcodelength", defaults.Game.RoomCodeLength)
	v.SetDefault("game.roomttl", defaults.Game.RoomTTL)
	v.SetDefault("game.discussionwindow", defaults.Game.DiscussionWindow)

	// The config file is optional; env vars and defaults are enough to run.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !strings.Contains(err.Error(), "no such file or directory") {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &ServerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

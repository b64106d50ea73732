// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server   ServerConfig
	YouTube  YouTubeConfig
	Fetch    FetchConfig
	Calendar CalendarConfig
	Database DatabaseConfig
	Admin    AdminConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

// AdminConfig gates the mutation endpoints. With no keys configured every
// mutation request is rejected.
type AdminConfig struct {
	APIKeys []string
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// YouTubeConfig identifies the channel and curated playlist the sermons feed is
// built from. An empty APIKey or ChannelID is a valid state: the feed endpoints
// serve the mock dataset instead of failing at startup.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type YouTubeConfig struct {
	APIKey           string
	ChannelID        string
	PlaylistID       string
	MaxUploads       int
	MaxPastLive      int
	MaxPlaylistItems int
}

// FetchConfig parameterizes the resilient fetcher's retry behaviour.
type FetchConfig struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration
}

// CalendarConfig identifies the public events calendar.
type CalendarConfig struct {
	APIKey     string
	CalendarID string
	WindowDays int
	MaxResults int
}

// DatabaseConfig contains database connection configuration. An empty URL
// disables the announcements routes.
type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// CORSConfig contains cross-origin settings for the public site.
type CORSConfig struct {
	AllowedOrigin string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// YouTube
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.channelid", "")
	viper.SetDefault("youtube.playlistid", "")
	viper.SetDefault("youtube.maxuploads", 25)
	viper.SetDefault("youtube.maxpastlive", 5)
	viper.SetDefault("youtube.maxplaylistitems", 50)

	// Fetch
	viper.SetDefault("fetch.maxattempts", 3)
	viper.SetDefault("fetch.basedelay", 500*time.Millisecond)
	viper.SetDefault("fetch.maxdelay", 8*time.Second)
	viper.SetDefault("fetch.attempttimeout", 10*time.Second)

	// Calendar
	viper.SetDefault("calendar.apikey", "")
	viper.SetDefault("calendar.calendarid", "")
	viper.SetDefault("calendar.windowdays", 60)
	viper.SetDefault("calendar.maxresults", 20)

	// Database
	viper.SetDefault("database.url", "")
	viper.SetDefault("database.maxconnections", 10)
	viper.SetDefault("database.minconnections", 2)
	viper.SetDefault("database.maxidletime", 10*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// Admin
	viper.SetDefault("admin.apikeys", []string{})

	// CORS
	viper.SetDefault("cors.allowedorigin", "*")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}

// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Socket  SocketConfig  `mapstructure:"socket"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds media server connection settings
type ServerConfig struct {
	URL      string `mapstructure:"url"`       // Server base URL
	Token    string `mapstructure:"token"`     // API access token
	UserID   string `mapstructure:"user_id"`   // Authenticated user ID
	DeviceID string `mapstructure:"device_id"` // Stable per-install device identifier
}

// CacheConfig holds response cache settings
type CacheConfig struct {
	Disabled bool `mapstructure:"disabled"`
}

// SocketConfig holds streaming connection settings
type SocketConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			DeviceID: defaultDeviceID(),
		},
		Socket: SocketConfig{Enabled: true},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultDeviceID derives a stable identifier from the hostname
func defaultDeviceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "myflix"
	}
	return "myflix-" + host
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "myflix", "myflix.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "myflix", "myflix.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "myflix")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "myflix")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("MYFLIX")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.token", cfg.Server.Token)
	viper.Set("server.user_id", cfg.Server.UserID)
	viper.Set("server.device_id", cfg.Server.DeviceID)

	viper.Set("cache.disabled", cfg.Cache.Disabled)
	viper.Set("socket.enabled", cfg.Socket.Enabled)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearServerConfig removes stored server credentials while preserving
// other settings
func ClearServerConfig() error {
	viper.Set("server.url", "")
	viper.Set("server.token", "")
	viper.Set("server.user_id", "")

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL, token and user ID are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != "" && c.Server.UserID != ""
}

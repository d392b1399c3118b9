package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// StateDirName is the per-workspace directory holding config, storage and logs.
const StateDirName = ".sociogram"

// Config holds all sociogram configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Where feed and preference state is kept
	Storage StorageConfig `yaml:"storage"`

	// Feed behaviour
	Feed FeedConfig `yaml:"feed"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "sociogram",
		Version: "0.3.0",

		Storage: StorageConfig{
			Driver:        "file",
			Path:          "storage",
			MaxValueBytes: 5 * 1024 * 1024,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "sociogram:",
				Timeout:   "2s",
			},
		},

		Feed: FeedConfig{
			CurrentUserID: "",
			CommentIDs:    CommentIDsUUID,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// StateDir returns the state directory for a workspace.
func StateDir(workspace string) string {
	return filepath.Join(workspace, StateDirName)
}

// DefaultPath returns the config file path for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(StateDir(workspace), "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults still honour the environment.
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if driver := os.Getenv("SOCIOGRAM_STORAGE"); driver != "" {
		c.Storage.Driver = driver
	}
	if path := os.Getenv("SOCIOGRAM_DB"); path != "" {
		c.Storage.Path = path
	}
	if addr := os.Getenv("SOCIOGRAM_REDIS_ADDR"); addr != "" {
		c.Storage.Redis.Addr = addr
	}
	if user := os.Getenv("SOCIOGRAM_USER"); user != "" {
		c.Feed.CurrentUserID = user
	}
	if level := os.Getenv("SOCIOGRAM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("SOCIOGRAM_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = debug
		}
	}
}

// ValidDrivers lists the supported storage drivers.
var ValidDrivers = []string{"memory", "file", "sqlite3", "sqlite", "redis"}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidDrivers, c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver: %s (valid: %v)", c.Storage.Driver, ValidDrivers)
	}
	if c.Storage.MaxValueBytes < 0 {
		return fmt.Errorf("storage.max_value_bytes must not be negative")
	}
	if c.Feed.CommentIDs != "" && c.Feed.CommentIDs != CommentIDsUUID && c.Feed.CommentIDs != CommentIDsTimestamp {
		return fmt.Errorf("invalid feed.comment_ids: %s (valid: %s, %s)", c.Feed.CommentIDs, CommentIDsUUID, CommentIDsTimestamp)
	}
	if c.Logging.Level != "" && !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging format: %s (valid: text, json)", c.Logging.Format)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// parseDuration returns fallback when s is empty or malformed.
func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

package config

import "time"

// StorageConfig selects and tunes the key-value backend.
type StorageConfig struct {
	Driver        string      `yaml:"driver"`          // memory, file, sqlite3, sqlite, redis
	Path          string      `yaml:"path"`            // directory (file) or database file (sqlite*); relative to .sociogram/
	MaxValueBytes int         `yaml:"max_value_bytes"` // 0 = unlimited
	Redis         RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
	Timeout   string `yaml:"timeout"`
}

// GetRedisTimeout returns the redis operation timeout.
func (s StorageConfig) GetRedisTimeout() time.Duration {
	return parseDuration(s.Redis.Timeout, 2*time.Second)
}

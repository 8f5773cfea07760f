package cache

import (
	"fmt"
	"time"
)

// Config holds cache configuration for both the distributed backend and the
// in-process fallback.
type Config struct {
	Enabled    bool          `json:"enabled" yaml:"enabled"`
	DefaultTTL time.Duration `json:"default_ttl" yaml:"default_ttl"`
	Codec      string        `json:"codec" yaml:"codec"` // json (default), msgpack

	// Redis connection
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`

	// Connection pool
	PoolSize     int           `json:"pool_size" yaml:"pool_size"`
	MinIdleConns int           `json:"min_idle_conns" yaml:"min_idle_conns"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// DialTimeout bounds the one-time startup probe. If Redis does not
	// answer within this window the process runs on the local fallback for
	// its remaining lifetime.
	DialTimeout time.Duration `json:"dial_timeout" yaml:"dial_timeout"`

	// Local fallback store
	Local LocalConfig `json:"local" yaml:"local"`
}

// LocalConfig tunes the in-process fallback store. BigCache evicts on a
// global life window rather than per-entry TTLs.
type LocalConfig struct {
	LifeWindow         time.Duration `json:"life_window" yaml:"life_window"`
	CleanWindow        time.Duration `json:"clean_window" yaml:"clean_window"`
	MaxEntrySize       int           `json:"max_entry_size" yaml:"max_entry_size"`
	HardMaxCacheSizeMB int           `json:"hard_max_cache_size_mb" yaml:"hard_max_cache_size_mb"`
}

// DefaultConfig returns a cache configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		DefaultTTL:   time.Hour,
		Codec:        CodecJSON,
		Host:         "localhost",
		Port:         6379,
		Database:     0,
		PoolSize:     10,
		MinIdleConns: 3,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
		Local: LocalConfig{
			LifeWindow:         time.Hour,
			CleanWindow:        5 * time.Minute,
			HardMaxCacheSizeMB: 256,
		},
	}
}

// Validate checks if the cache configuration is valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil // Skip validation if cache is disabled
	}
	if c.Host == "" {
		return fmt.Errorf("cache host is required when cache is enabled")
	}
	if c.Port <= 0 {
		return fmt.Errorf("cache port must be positive")
	}
	if c.DefaultTTL <= 0 {
		return fmt.Errorf("default_ttl must be positive when cache is enabled")
	}
	if c.Codec != "" && c.Codec != CodecJSON && c.Codec != CodecMsgpack {
		return fmt.Errorf("unknown codec %q", c.Codec)
	}
	return nil
}

// GetAddr returns the Redis connection address.
func (c *Config) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

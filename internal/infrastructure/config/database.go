package config

import "time"

// DatabaseConfig holds settings for the pooled connections opened from
// resolved descriptors
type DatabaseConfig struct {
	// Timeout for establishing and pinging a connection
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`

	// Connection pool settings
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// RedisConfig represents analysis cache configuration
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	TTL          time.Duration `mapstructure:"ttl"`
}

// AnalyticsConfig controls the analysis pipeline
type AnalyticsConfig struct {
	MinDataPoints       int     `mapstructure:"min_data_points"`      // Points required before trend analysis runs
	AnomalyThreshold    float64 `mapstructure:"anomaly_threshold"`    // Band width in standard deviations
	SmoothingFactor     float64 `mapstructure:"smoothing_factor"`     // Exponential smoothing alpha, 0 disables
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"` // Confidence floor before the extra penalty applies
	HistoryCapacity     int     `mapstructure:"history_capacity"`     // Ring buffer size per reading
	Workers             int     `mapstructure:"workers"`              // Analysis worker count, 0 means auto
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis config: %w", err)
	}

	if err := c.Analytics.Validate(); err != nil {
		return fmt.Errorf("analytics config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	return nil
}

// Validate validates redis configuration
func (c *RedisConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	return nil
}

// Validate validates analytics configuration
func (c *AnalyticsConfig) Validate() error {
	if c.MinDataPoints < 1 {
		return fmt.Errorf("min_data_points must be at least 1")
	}

	if c.AnomalyThreshold <= 0 {
		return fmt.Errorf("anomaly_threshold must be positive")
	}

	if c.SmoothingFactor < 0 || c.SmoothingFactor > 1 {
		return fmt.Errorf("smoothing_factor must be in [0, 1]")
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0, 1]")
	}

	if c.HistoryCapacity < 2 {
		return fmt.Errorf("history_capacity must be at least 2")
	}

	// A buffer smaller than the analysis threshold can never trigger analysis.
	if c.HistoryCapacity < c.MinDataPoints {
		return fmt.Errorf("history_capacity (%d) must be at least min_data_points (%d)",
			c.HistoryCapacity, c.MinDataPoints)
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// Addr returns the HTTP listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

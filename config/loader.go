package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/inspection-analytics")
	}

	setDefaults(v)

	v.SetEnvPrefix("INSPECTION")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 50)
	v.SetDefault("redis.min_idle_conns", 10)
	v.SetDefault("redis.ttl", "5m")

	v.SetDefault("analytics.min_data_points", 5)
	v.SetDefault("analytics.anomaly_threshold", 2.0)
	v.SetDefault("analytics.smoothing_factor", 0.0)
	v.SetDefault("analytics.confidence_threshold", 0.5)
	v.SetDefault("analytics.history_capacity", 200)
	v.SetDefault("analytics.workers", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			PoolSize:     50,
			MinIdleConns: 10,
			TTL:          5 * time.Minute,
		},
		Analytics: AnalyticsConfig{
			MinDataPoints:       5,
			AnomalyThreshold:    2.0,
			ConfidenceThreshold: 0.5,
			HistoryCapacity:     200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

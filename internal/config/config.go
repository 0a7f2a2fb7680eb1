// Package config loads the landing service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Port         string `env:"PORT"          envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/attribution.db"`
	RateLimit    int    `env:"RATE_LIMIT"    envDefault:"100"`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	Development  bool   `env:"DEVELOPMENT"`

	// GeoIPPath points at a GeoLite2 country database. Empty disables country lookup.
	GeoIPPath string `env:"GEOIP_DB_PATH"`

	Redis RedisConfig
	Kafka KafkaConfig
	Dapr  DaprConfig
}

// RedisConfig enables the fleet-wide relay switch. Empty Addr disables it.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR"`
	Namespace string `env:"REDIS_NAMESPACE" envDefault:"collector"`

	// RelayConsent, when set, is written to the switch at startup ("accepted" or "declined").
	RelayConsent string `env:"RELAY_CONSENT"`
}

// KafkaConfig enables the Kafka relay backend. No brokers disables it.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC"   envDefault:"analytics.events"`
}

type DaprConfig struct {
	Enabled bool   `env:"DAPR_ENABLED"`
	Pubsub  string `env:"DAPR_PUBSUB" envDefault:"pubsub"`
	Topic   string `env:"DAPR_TOPIC"  envDefault:"analytics-events"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimit < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	return cfg, nil
}

// NewLogger builds the process logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

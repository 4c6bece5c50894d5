package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Env string

const (
	EnvLocal  Env = "local"
	EnvDocker Env = "docker"
)

type Config struct {
	AppEnv    Env    `env:"APP_ENV" envDefault:"local"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`

	Feed FeedConfig
}

// FeedConfig controls publishing of store transactions to a Redis stream.
type FeedConfig struct {
	Enabled        bool          `env:"FEED_ENABLED" envDefault:"false"`
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Stream         string        `env:"FEED_STREAM" envDefault:"musicstore:transactions"`
	QueueSize      int           `env:"FEED_QUEUE_SIZE" envDefault:"1000"`
	Workers        int           `env:"FEED_WORKERS" envDefault:"2"`
	PublishTimeout time.Duration `env:"FEED_PUBLISH_TIMEOUT" envDefault:"5s"`
	MaxLen         int64         `env:"FEED_MAX_LEN" envDefault:"100000"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AppEnv != EnvLocal && c.AppEnv != EnvDocker {
		return fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", c.AppEnv)
	}
	if !c.Feed.Enabled {
		return nil
	}
	if c.Feed.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when FEED_ENABLED")
	}
	if c.Feed.Stream == "" {
		return fmt.Errorf("FEED_STREAM is required when FEED_ENABLED")
	}
	if c.Feed.QueueSize <= 0 {
		return fmt.Errorf("FEED_QUEUE_SIZE must be positive")
	}
	if c.Feed.Workers <= 0 {
		return fmt.Errorf("FEED_WORKERS must be positive")
	}
	if c.Feed.PublishTimeout <= 0 {
		return fmt.Errorf("FEED_PUBLISH_TIMEOUT must be positive")
	}
	if c.Feed.MaxLen <= 0 {
		return fmt.Errorf("FEED_MAX_LEN must be positive")
	}
	return nil
}

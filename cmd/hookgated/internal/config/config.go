// Package config loads the hookgated daemon configuration from a file and
// HOOKGATE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Delivery DeliveryConfig `mapstructure:"delivery"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Listen          string        `mapstructure:"listen"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type VaultConfig struct {
	// Backend selects the secret store: "redis" or "static".
	Backend string            `mapstructure:"backend"`
	Redis   RedisConfig       `mapstructure:"redis"`
	Static  map[string]string `mapstructure:"static"`
}

type QueueConfig struct {
	// Backend selects the dead-letter queue: "redis" or "rabbitmq".
	Backend string       `mapstructure:"backend"`
	Name    string       `mapstructure:"name"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Rabbit  RabbitConfig `mapstructure:"rabbitmq"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RabbitConfig struct {
	URI string `mapstructure:"uri"`
}

type DeliveryConfig struct {
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	BackoffBase    time.Duration `mapstructure:"backoff_base"`
	RateLimit      int           `mapstructure:"rate_limit"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the config file at path, applying defaults and environment
// overrides. An empty path uses defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("hookgate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("vault.backend", "redis")
	v.SetDefault("vault.redis.addr", "localhost:6379")

	v.SetDefault("queue.backend", "redis")
	v.SetDefault("queue.name", "webhook-failed")
	v.SetDefault("queue.redis.addr", "localhost:6379")

	v.SetDefault("delivery.cache_ttl", 5*time.Minute)
	v.SetDefault("delivery.request_timeout", 30*time.Second)
	v.SetDefault("delivery.max_retries", 3)
	v.SetDefault("delivery.backoff_base", 2*time.Second)
	v.SetDefault("delivery.rate_limit", 0)

	v.SetDefault("log.level", "info")
}

func (c Config) Validate() error {
	switch c.Vault.Backend {
	case "redis":
		if c.Vault.Redis.Addr == "" {
			return fmt.Errorf("vault.redis.addr is required")
		}
	case "static":
		if len(c.Vault.Static) == 0 {
			return fmt.Errorf("vault.static must not be empty")
		}
	default:
		return fmt.Errorf("unknown vault.backend %q", c.Vault.Backend)
	}

	switch c.Queue.Backend {
	case "redis":
		if c.Queue.Redis.Addr == "" {
			return fmt.Errorf("queue.redis.addr is required")
		}
	case "rabbitmq":
		if c.Queue.Rabbit.URI == "" {
			return fmt.Errorf("queue.rabbitmq.uri is required")
		}
	default:
		return fmt.Errorf("unknown queue.backend %q", c.Queue.Backend)
	}

	if c.Queue.Name == "" {
		return fmt.Errorf("queue.name is required")
	}
	if c.Delivery.MaxRetries < 0 {
		return fmt.Errorf("delivery.max_retries must not be negative")
	}
	return nil
}

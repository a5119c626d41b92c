// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// EnvPrefix prefixes every environment override, e.g. PREP_STORAGE_BACKEND
const EnvPrefix = "PREP"

// Config is the layered configuration: defaults, then prep.yaml, then PREP_* environment variables.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

// StorageConfig selects where history and progress slots are persisted
type StorageConfig struct {
	Backend      string         `mapstructure:"backend"`
	Path         string         `mapstructure:"path"` // directory for file and sqlite backends
	VerifySchema bool           `mapstructure:"verify_schema"`
	Redis        RedisConfig    `mapstructure:"redis"`
	Postgres     PostgresConfig `mapstructure:"postgres"`
}

// RedisConfig configures the redis slot backend. KeyPrefix namespaces every slot key.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// PostgresConfig configures the postgres slot backend
type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig selects the zap level and encoder
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// ServerConfig configures the HTTP API started by the serve command
type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// DefaultDataDir is where file-based slots live when storage.path is unset
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prep"
	}
	return filepath.Join(home, ".prep", "data")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", DefaultDataDir())
	v.SetDefault("storage.verify_schema", false)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key_prefix", "prep:")
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origin", "*")
}

// LoadConfig reads configuration. With an explicit path that file must exist;
// otherwise prep.yaml is looked up in ., ./configs and $HOME/.prep and is optional.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("prep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".prep"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("config error: 'storage.path' is required for the %s backend", c.Storage.Backend)
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("config error: 'storage.redis.addr' is required for the redis backend")
		}
		if c.Storage.Redis.DB < 0 {
			return fmt.Errorf("config error: 'storage.redis.db' must be non-negative")
		}
	case BackendPostgres:
		if c.Storage.Postgres.URL == "" {
			return fmt.Errorf("config error: 'storage.postgres.url' is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config error: unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("config error: 'log.format' must be console or json")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}
	return nil
}

// Package config loads CLI configuration from file and environment.
//
// Settings are resolved by viper in the usual priority order: command-line
// flags override environment variables (REMOTE_STORE_*), which override the
// config file (remote-store.yaml), which overrides built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the CLI settings.
type Config struct {
	// Bucket is the default remote container.
	Bucket string `mapstructure:"bucket"`

	// CacheDir is the local cache root directory.
	CacheDir string `mapstructure:"cache_dir"`

	// PageSize is the listing page size (0 = provider default).
	PageSize int `mapstructure:"page_size"`

	// RateLimit caps provider requests per second (0 = unlimited).
	RateLimit float64 `mapstructure:"rate_limit"`

	// S3 holds transport settings for the S3 provider.
	S3 S3Config `mapstructure:"s3"`

	// Logging holds logger settings.
	Logging LoggingConfig `mapstructure:"logging"`
}

// S3Config holds the transport settings.
type S3Config struct {
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	Profile        string `mapstructure:"profile"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`

	// RoleARN, when set, is exchanged for temporary credentials via STS
	// before the transport is built.
	RoleARN string `mapstructure:"role_arn"`

	// SessionName names the assume-role session. Empty gets a generated name.
	SessionName string `mapstructure:"session_name"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the optional config file and environment.
// A missing config file is not an error; defaults still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("cache_dir", "/tmp")
	v.SetDefault("page_size", 0)
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("REMOTE_STORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so keys
	// without a default must be bound explicitly for Unmarshal to see
	// their environment variables.
	keys := []string{
		"bucket",
		"cache_dir",
		"page_size",
		"rate_limit",
		"s3.region",
		"s3.endpoint",
		"s3.profile",
		"s3.force_path_style",
		"s3.role_arn",
		"s3.session_name",
		"logging.level",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("remote-store")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/remote-store")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Package config loads kvcrud settings from defaults, an optional config
// file and KVCRUD_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Store  StoreConfig  `mapstructure:"store" validate:"required"`
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Log    LogConfig    `mapstructure:"log" validate:"required"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory persistent"`
	// Path and Bucket are only used by the persistent backend.
	Path     string `mapstructure:"path" validate:"required_if=Backend persistent"`
	Bucket   string `mapstructure:"bucket" validate:"required"`
	FileMode uint32 `mapstructure:"file_mode" validate:"lte=511"`
	// Seed is a JSON file of records loaded into the memory backend.
	Seed string `mapstructure:"seed"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
	Port    int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", "persistent")
	v.SetDefault("store.path", "kvcrud.db")
	v.SetDefault("store.bucket", "records")
	v.SetDefault("store.file_mode", 0600)
	v.SetDefault("store.seed", "")
	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.port", 5555)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads the configuration. file may be empty.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KVCRUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Package config loads chessrules settings from a file, the environment
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes the environment variables read by Load,
// e.g. CHESSRULES_DEPTH.
const EnvPrefix = "CHESSRULES"

type Config struct {
	Depth     int    `mapstructure:"depth"`
	Workers   int    `mapstructure:"workers"`
	DBDir     string `mapstructure:"db_dir"`
	InMemory  bool   `mapstructure:"in_memory"`
	NoStore   bool   `mapstructure:"no_store"`
	FrontSize int    `mapstructure:"front_size"`
	LogLevel  string `mapstructure:"log_level"`
	Color     bool   `mapstructure:"color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("depth", 4)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("db_dir", "")
	v.SetDefault("in_memory", false)
	v.SetDefault("no_store", false)
	v.SetDefault("front_size", 1<<16)
	v.SetDefault("log_level", "info")
	v.SetDefault("color", true)
}

// Load reads the config file at path, if any, then applies environment
// overrides. An empty path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth %d < 1", ErrInvalidConfig, c.Depth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d < 1", ErrInvalidConfig, c.Workers)
	}
	if c.FrontSize < 0 {
		return fmt.Errorf("%w: front_size %d < 0", ErrInvalidConfig, c.FrontSize)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Color modes for the rendered output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the tool configuration loaded from environment variables.
type Config struct {
	UserAgent      string        `mapstructure:"user_agent"`
	LogLevel       string        `mapstructure:"log_level"`
	Color          string        `mapstructure:"color"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from HTTY_* environment variables, with an
// optional .env file providing them.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("user_agent", "htty")
	v.SetDefault("log_level", "warn")
	v.SetDefault("color", ColorAuto)
	v.SetDefault("timeout_seconds", 0) // 0 leaves the transport defaults in place

	v.SetEnvPrefix("HTTY")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, fmt.Errorf("invalid color mode %q (want auto, always or never)", cfg.Color)
	}

	if cfg.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must not be negative)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}

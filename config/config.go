// Package config loads portal configuration from an optional config.yml
// plus environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type StoreConfig struct {
	// Path is the SQLite DSN backing the record store.
	Path string `mapstructure:"path"`
}

type OTPConfig struct {
	CodeTTL     time.Duration `mapstructure:"code_ttl"`
	ResendEvery time.Duration `mapstructure:"resend_every"`
	ResendBurst int           `mapstructure:"resend_burst"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	OTP     OTPConfig     `mapstructure:"otp"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoadConfig reads config.yml from the working directory or ./config,
// falling back to defaults when no file is present. PORTAL_* environment
// variables override file values.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("store.path", "portal.db")
	v.SetDefault("otp.code_ttl", 5*time.Minute)
	v.SetDefault("otp.resend_every", 30*time.Second)
	v.SetDefault("otp.resend_burst", 3)
	v.SetDefault("session.secret", "dev-only-secret")
	v.SetDefault("session.expiry", 24*time.Hour)
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

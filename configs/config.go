// Package configs loads application configuration from configs/config.yaml
// with environment-variable overrides.
package configs

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration.
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`
	JWT struct {
		Secret   string        `mapstructure:"secret"`
		TokenTTL time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"jwt"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// Load reads configs/config.yaml, applies env overrides, and fills in
// defaults. A missing config file is fine; a missing JWT secret is not.
func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("db.path", "./data/hati-tayo.db")
	viper.SetDefault("jwt.token_ttl", 24*time.Hour)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HATITAYO")
	viper.BindEnv("server.addr", "HATITAYO_ADDR")
	viper.BindEnv("db.path", "HATITAYO_DB_PATH")
	viper.BindEnv("jwt.secret", "HATITAYO_JWT_SECRET")
	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("log.format", "LOG_FORMAT")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret required (set jwt.secret or HATITAYO_JWT_SECRET)")
	}
	return cfg, nil
}

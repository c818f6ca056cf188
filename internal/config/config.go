package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	CatalogURL      string `mapstructure:"catalog_url"`
	CatalogUser     string `mapstructure:"catalog_user"`
	CatalogPassword string `mapstructure:"catalog_password" json:"-"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	// TLSInsecureSkipVerify disables certificate validation. It defaults to true
	// because catalog installs commonly run on self-signed certificates; this is insecure.
	TLSInsecureSkipVerify bool `mapstructure:"tls_insecure_skip_verify"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "catalog-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("catalog_url", "")
	v.SetDefault("catalog_user", "")
	v.SetDefault("catalog_password", "")
	v.SetDefault("request_timeout_seconds", 120)
	v.SetDefault("tls_insecure_skip_verify", true)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.CatalogURL = strings.TrimRight(strings.TrimSpace(c.CatalogURL), "/")
	c.CatalogUser = strings.TrimSpace(c.CatalogUser)

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	return nil
}

// Validate checks the settings needed to talk to a catalog.
func (c *Config) Validate() error {
	if c.CatalogURL == "" {
		return fmt.Errorf("catalog_url is required")
	}
	if c.CatalogUser == "" {
		return fmt.Errorf("catalog_user is required")
	}
	return nil
}

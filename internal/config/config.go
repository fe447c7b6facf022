package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	ServerAddress string `mapstructure:"server_address"`
	LogLevel      string `mapstructure:"log_level"`

	// DBSource is the Postgres connection string for the resolution cache.
	// Leaving it empty runs the service without a cache.
	DBSource string `mapstructure:"db_source"`

	ScraperBaseURL        string `mapstructure:"scraper_base_url"`
	ScraperTimeoutSeconds int    `mapstructure:"scraper_timeout_seconds"`

	DirectionsBaseURL string `mapstructure:"directions_base_url"`
	DirectionsProfile string `mapstructure:"directions_profile"`

	SimplifyTolerance float64 `mapstructure:"simplify_tolerance"`
}

// LoadConfig reads configuration from an optional config file in path and
// from GEOROUTE_-prefixed environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server_address", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_source", "")
	v.SetDefault("scraper_base_url", "https://www.google.com")
	v.SetDefault("scraper_timeout_seconds", 10)
	v.SetDefault("directions_base_url", "https://router.project-osrm.org")
	v.SetDefault("directions_profile", "driving")
	v.SetDefault("simplify_tolerance", 0.0001)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	_ = v.ReadInConfig() // config file is optional

	v.SetEnvPrefix("GEOROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var errs []string

	if c.ServerAddress == "" {
		errs = append(errs, "server_address is required")
	}
	if c.ScraperTimeoutSeconds <= 0 {
		errs = append(errs, "scraper_timeout_seconds must be positive")
	}
	if c.SimplifyTolerance < 0 {
		errs = append(errs, "simplify_tolerance must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

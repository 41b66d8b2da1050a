package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type SearchConfig struct {
	JoobleURL            string        `mapstructure:"jooble_url"`
	JoobleAPIKey         string        `mapstructure:"jooble_api_key"`
	AdzunaURL            string        `mapstructure:"adzuna_url"`
	AdzunaCountry        string        `mapstructure:"adzuna_country"`
	AdzunaAppID          string        `mapstructure:"adzuna_app_id"`
	AdzunaAppKey         string        `mapstructure:"adzuna_app_key"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
	// Timeout of 0 leaves upstream calls bounded only by the request context.
	Timeout time.Duration `mapstructure:"timeout"`
}

func (config SearchConfig) validate() error {
	var errs []error

	if config.JoobleURL == "" {
		errs = append(errs, fmt.Errorf("missing variable: jooble_url"))
	}
	if config.AdzunaURL == "" {
		errs = append(errs, fmt.Errorf("missing variable: adzuna_url"))
	}
	if config.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be non-negative"))
	}
	if config.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl must be non-negative"))
	}

	return errors.Join(errs...)
}

func (config SearchConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnvs(v, map[string]string{
		"search.jooble_api_key": "JOOBLE_API_KEY",
		"search.adzuna_app_id":  "ADZUNA_APP_ID",
		"search.adzuna_app_key": "ADZUNA_APP_KEY",
	})
}

type AIConfig struct {
	Key                  string  `mapstructure:"key"`
	Model                string  `mapstructure:"model"`
	MaxRequestsPerMinute float32 `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32 `mapstructure:"max_requests_per_day"`
}

func (config AIConfig) Enabled() bool {
	return config.Key != ""
}

func (config AIConfig) validate() error {
	if config.Enabled() && config.Model == "" {
		return fmt.Errorf("missing variable: model")
	}
	return nil
}

func (config AIConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnvs(v, map[string]string{
		"ai.key":   "AI_KEY",
		"ai.model": "AI_MODEL",
	})
}

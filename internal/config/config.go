package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Search    SearchConfig    `mapstructure:"search"`
	AI        AIConfig        `mapstructure:"ai"`
	Mail      MailConfig      `mapstructure:"mail"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

const defaultConfigFile = "./configs/config.yaml"

type section interface {
	validate() error
	bindEnvironmentVariables(v *viper.Viper) error
}

// Get loads the config from CONFIG_PATH (or ./configs/config.yaml) with environment overrides.
// An optional .env file in the working directory is loaded first.
func Get() *Config {
	config, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return config
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env file: %v", err)
	}

	file := defaultConfigFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}
	return loadConfig(file)
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	setDefaults(v)

	err := bindEnvironmentVariables(v)
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "job-tracker")
	v.SetDefault("logger.output_file", "./logs/errors.log")

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("db.driver", string(DriverSQLite))
	v.SetDefault("db.connection_string", "jobs.db")
	v.SetDefault("db.reset_on_startup", false)

	v.SetDefault("storage.upload_dir", "uploads")

	v.SetDefault("search.jooble_url", "https://jooble.org/api/")
	v.SetDefault("search.adzuna_url", "https://api.adzuna.com/v1/api/jobs")
	v.SetDefault("search.adzuna_country", "us")
	v.SetDefault("search.max_requests_per_second", 2)
	v.SetDefault("search.cache_ttl", "10m")

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.max_requests_per_minute", 15)
	v.SetDefault("ai.max_requests_per_day", 1500)

	v.SetDefault("mail.port", 587)

	v.SetDefault("reminders.interval", "24h")
}

func (config *Config) sections() []struct {
	name    string
	section section
} {
	return []struct {
		name    string
		section section
	}{
		{"LoggerConfig", config.Logger},
		{"ServerConfig", config.Server},
		{"DBConfig", config.DB},
		{"StorageConfig", config.Storage},
		{"SearchConfig", config.Search},
		{"AIConfig", config.AI},
		{"MailConfig", config.Mail},
		{"TelegramConfig", config.Telegram},
		{"RemindersConfig", config.Reminders},
	}
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	empty := Config{}
	for _, s := range empty.sections() {
		if err := s.section.bindEnvironmentVariables(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	for _, s := range config.sections() {
		if err := s.section.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindEnvs(v *viper.Viper, keys map[string]string) error {
	var errs []error
	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type DBConfig struct {
	Driver           Driver `mapstructure:"driver"`
	ConnectionString string `mapstructure:"connection_string"`
	// ResetOnStartup drops the jobs table before migrating. Destroys data.
	ResetOnStartup bool `mapstructure:"reset_on_startup"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.Driver != DriverSQLite && config.Driver != DriverPostgres {
		return fmt.Errorf("unknown db driver: %q", config.Driver)
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnvs(v, map[string]string{
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.driver":            "DB_DRIVER",
		"db.reset_on_startup":  "DB_RESET_ON_STARTUP",
	})
}

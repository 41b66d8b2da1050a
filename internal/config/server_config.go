package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (config ServerConfig) validate() error {
	if config.Addr == "" {
		return fmt.Errorf("missing variable: addr")
	}
	return nil
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("server.addr", "SERVER_ADDR")
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

func (config StorageConfig) validate() error {
	if config.UploadDir == "" {
		return fmt.Errorf("missing variable: upload_dir")
	}
	return nil
}

func (config StorageConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("storage.upload_dir", "UPLOAD_DIR")
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type MailConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Sender    string `mapstructure:"sender"`
	Recipient string `mapstructure:"recipient"`
}

func (config MailConfig) Enabled() bool {
	return config.Host != ""
}

func (config MailConfig) validate() error {
	if !config.Enabled() {
		return nil
	}

	var missingFields []string
	if config.Sender == "" {
		missingFields = append(missingFields, "sender")
	}
	if config.Recipient == "" {
		missingFields = append(missingFields, "recipient")
	}
	if config.Port <= 0 {
		missingFields = append(missingFields, "port")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %v", missingFields)
	}
	return nil
}

func (config MailConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnvs(v, map[string]string{
		"mail.host":      "MAIL_HOST",
		"mail.username":  "MAIL_USERNAME",
		"mail.password":  "MAIL_PASSWORD",
		"mail.sender":    "MAIL_SENDER",
		"mail.recipient": "MAIL_RECIPIENT",
	})
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

func (config TelegramConfig) Enabled() bool {
	return config.Token != ""
}

func (config TelegramConfig) validate() error {
	if config.Enabled() && config.ChatID == 0 {
		return fmt.Errorf("missing variable: chat_id")
	}
	return nil
}

func (config TelegramConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnvs(v, map[string]string{
		"telegram.token":   "TELEGRAM_TOKEN",
		"telegram.chat_id": "TELEGRAM_CHAT_ID",
	})
}

type RemindersConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

func (config RemindersConfig) validate() error {
	if config.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	return nil
}

func (config RemindersConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("reminders.interval", "REMINDER_INTERVAL")
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API    *APIConfig
	Gin    *GinConfig
	Store  *StoreConfig
	Notify *NotifyConfig
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	AdminUsername      string   `mapstructure:"admin_username"`
	AdminPassword      string   `mapstructure:"admin_password"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type StoreConfig struct {
	// SQLitePath is the default backing file; DATABASE_URL switches the
	// store to Postgres.
	SQLitePath string `mapstructure:"sqlite_path"`
}

type NotifyConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if conf.Notify == nil {
		conf.Notify = &NotifyConfig{}
	}
	if conf.Notify.TimeoutSeconds <= 0 {
		conf.Notify.TimeoutSeconds = 10
	}

	return conf, nil
}

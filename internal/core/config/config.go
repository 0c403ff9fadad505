package config

import (
	"time"

	redisclient "github.com/vietddude/appstore/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Environment EnvironmentConfig  `yaml:"environment"`
	Settings    SettingsConfig     `yaml:"settings"`
	Category    CategoryConfig     `yaml:"category"`
	Server      ServerConfig       `yaml:"server"`
	Redis       redisclient.Config `yaml:"redis"`
	Logging     LoggingConfig      `yaml:"logging"`
}

// EnvironmentConfig is the process-wide record of backend endpoints.
type EnvironmentConfig struct {
	Production      bool   `yaml:"production"`
	MetadataServer  string `yaml:"metadata_server"`
	OperationServer string `yaml:"operation_server"`
}

// SettingsConfig holds client settings surfaced alongside the servers.
type SettingsConfig struct {
	Region               string `yaml:"region"`
	SupportSignIn        bool   `yaml:"support_sign_in"`
	ThemeName            string `yaml:"theme_name"`
	AutoInstall          bool   `yaml:"auto_install"`
	AllowShowPackageName bool   `yaml:"allow_show_package_name"`
}

// CategoryConfig tunes the category provider.
type CategoryConfig struct {
	ThrottleWindow time.Duration `yaml:"throttle_window"`
	MaxRetries     *int          `yaml:"max_retries"` // nil = default (3)
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Retries returns the configured retry count.
func (c CategoryConfig) Retries() int {
	if c.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *c.MaxRetries
}

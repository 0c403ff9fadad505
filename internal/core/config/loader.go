package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultPort           = 8080
	DefaultThrottleWindow = 60 * time.Second
	DefaultMaxRetries     = 3
	DefaultRequestTimeout = 10 * time.Second
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding environment variables and
// applying defaults.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Category.ThrottleWindow == 0 {
		cfg.Category.ThrottleWindow = DefaultThrottleWindow
	}
	if cfg.Category.RequestTimeout == 0 {
		cfg.Category.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.Environment.OperationServer = strings.TrimRight(cfg.Environment.OperationServer, "/")
	cfg.Environment.MetadataServer = strings.TrimRight(cfg.Environment.MetadataServer, "/")
}

// Validate checks the configuration for values the service cannot run with.
func (c *AppConfig) Validate() error {
	if c.Environment.OperationServer == "" {
		return errors.New("environment.operation_server is required")
	}
	if c.Category.Retries() < 0 {
		return fmt.Errorf("category.max_retries must not be negative, got %d", c.Category.Retries())
	}
	if c.Category.ThrottleWindow < 0 {
		return fmt.Errorf("category.throttle_window must not be negative, got %s", c.Category.ThrottleWindow)
	}
	return nil
}

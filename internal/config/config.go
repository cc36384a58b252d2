// Package config
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Connection ConnectionConfig `yaml:"connection"`
	Agent      AgentConfig      `yaml:"agent"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ConnectionConfig struct {
	Host               string `yaml:"host" validate:"required"`
	Port               int    `yaml:"port" validate:"required,min=1,max=65535"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	UseTLS             bool   `yaml:"use_tls"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	TimeoutMS          int    `yaml:"timeout_ms" validate:"min=0"`
}

type AgentConfig struct {
	Listen           string   `yaml:"listen"`
	ScrapeIntervalMS int      `yaml:"scrape_interval_ms" validate:"min=0"`
	HistoryLimit     int      `yaml:"history_limit" validate:"min=0"`
	Categories       []string `yaml:"categories" validate:"dive,oneof=clients table compaction storage os"`
	Keyspace         string   `yaml:"keyspace"`
	Table            string   `yaml:"table"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no config file is given.
// 8778 is the standard HTTP management agent port.
func Default() *Config {
	return &Config{
		Connection: ConnectionConfig{
			Host:      "127.0.0.1",
			Port:      8778,
			TimeoutMS: 30000,
		},
		Agent: AgentConfig{
			Listen:           "127.0.0.1:9180",
			ScrapeIntervalMS: 15000,
			HistoryLimit:     24,
			Categories:       []string{"clients", "compaction", "storage", "os"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from file and applies environment variable overrides
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	ApplyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate ensures all required configuration values are set
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	// Credentials come as a pair: the management bridge rejects a blank
	// username or password, so catch it before connecting.
	if (c.Connection.Username == "") != (c.Connection.Password == "") {
		return fmt.Errorf("username and password must be set together")
	}

	// The table category addresses a specific keyspace.table
	for _, cat := range c.Agent.Categories {
		if cat == "table" && (c.Agent.Keyspace == "" || c.Agent.Table == "") {
			return fmt.Errorf("agent category %q requires keyspace and table", cat)
		}
	}

	return nil
}

// ApplyEnvOverrides checks for environment variables with CASSMON_ prefix
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CASSMON_HOST"); v != "" {
		cfg.Connection.Host = v
	}
	if v := os.Getenv("CASSMON_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Connection.Port)
	}
	if v := os.Getenv("CASSMON_USERNAME"); v != "" {
		cfg.Connection.Username = v
	}
	if v := os.Getenv("CASSMON_PASSWORD"); v != "" {
		cfg.Connection.Password = v
	}
	if v := os.Getenv("CASSMON_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// GetTimeout returns the connection timeout as a duration
func (c *ConnectionConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// GetScrapeInterval returns the agent scrape interval as a duration
func (a *AgentConfig) GetScrapeInterval() time.Duration {
	return time.Duration(a.ScrapeIntervalMS) * time.Millisecond
}

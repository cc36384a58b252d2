package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cassmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1", cfg.Connection.Host)
	assert.Equal(t, 8778, cfg.Connection.Port)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
connection:
  host: cass-01.internal
  port: 9778
  username: monitor
  password: secret
agent:
  scrape_interval_ms: 5000
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cass-01.internal", cfg.Connection.Host)
	assert.Equal(t, 9778, cfg.Connection.Port)
	assert.Equal(t, "monitor", cfg.Connection.Username)
	assert.Equal(t, 5000, cfg.Agent.ScrapeIntervalMS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults
	assert.Equal(t, 30000, cfg.Connection.TimeoutMS)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
connection:
  host: from-file
  port: 8778
`)
	t.Setenv("CASSMON_HOST", "from-env")
	t.Setenv("CASSMON_PORT", "9999")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Connection.Host)
	assert.Equal(t, 9999, cfg.Connection.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Connection.Port = 70000 },
			wantErr: "Port",
		},
		{
			name:    "username without password",
			mutate:  func(c *Config) { c.Connection.Username = "monitor" },
			wantErr: "username and password must be set together",
		},
		{
			name:    "password without username",
			mutate:  func(c *Config) { c.Connection.Password = "secret" },
			wantErr: "username and password must be set together",
		},
		{
			name:    "unknown agent category",
			mutate:  func(c *Config) { c.Agent.Categories = []string{"bogus"} },
			wantErr: "Categories",
		},
		{
			name:    "table category without keyspace",
			mutate:  func(c *Config) { c.Agent.Categories = []string{"table"} },
			wantErr: "requires keyspace and table",
		},
		{
			name: "table category with keyspace and table",
			mutate: func(c *Config) {
				c.Agent.Categories = []string{"table"}
				c.Agent.Keyspace = "ks1"
				c.Agent.Table = "users"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDurationGetters(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "30s", cfg.Connection.GetTimeout().String())
	assert.Equal(t, "15s", cfg.Agent.GetScrapeInterval().String())
}

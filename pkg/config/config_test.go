package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RMWIKI_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, 5.0, cfg.API.RateLimit)
	assert.Equal(t, 5, cfg.UI.PageSize)
	assert.Equal(t, 28, cfg.UI.CardWidth)
	assert.Equal(t, 2, cfg.UI.CardSpacing)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "rmwiki.log", filepath.Base(cfg.Log.File))
}

func TestDefaultMatchesLoad(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, Default())
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "rmwiki.toml")
	content := `
[api]
base_url = "http://localhost:9000/api"
timeout = "3s"

[ui]
page_size = 10

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.UI.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 28, cfg.UI.CardWidth)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("RMWIKI_API_BASE_URL", "http://env.example/api")
	t.Setenv("RMWIKI_UI_PAGE_SIZE", "7")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/api", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.UI.PageSize)
}

func TestLoadFlagOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("RMWIKI_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--base-url", "http://flag.example/api"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "http://flag.example/api", cfg.API.BaseURL)
	// unchanged flag does not shadow the env var
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }},
		{"negative rate", func(c *Config) { c.API.RateLimit = -1 }},
		{"zero page size", func(c *Config) { c.UI.PageSize = 0 }},
		{"narrow cards", func(c *Config) { c.UI.CardWidth = 4 }},
		{"negative spacing", func(c *Config) { c.UI.CardSpacing = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

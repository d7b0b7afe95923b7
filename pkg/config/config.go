package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://rickandmortyapi.com/api"

// Config holds application configuration.
type Config struct {
	API APIConfig `mapstructure:"api"`
	UI  UIConfig  `mapstructure:"ui"`
	Log LogConfig `mapstructure:"log"`
}

// APIConfig holds settings for the upstream REST API.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 keeps the http.Client default (no timeout)
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
	UserAgent string        `mapstructure:"user_agent"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize    int `mapstructure:"page_size"`
	CardWidth   int `mapstructure:"card_width"`
	CardSpacing int `mapstructure:"card_spacing"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"` // "-" logs to stderr
	Pretty bool   `mapstructure:"pretty"`
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"base-url":  "api.base_url",
	"log-level": "log.level",
}

// Load reads configuration from defaults, an optional TOML file, env vars
// (prefix RMWIKI_) and the given flags, in increasing priority. path may be
// empty, in which case RMWIKI_CONFIG or ~/.config/rmwiki/config.toml is used.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("RMWIKI_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "rmwiki"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RMWIKI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, a missing explicit one is not
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, c.Validate()
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.rate_limit", 5.0)
	v.SetDefault("api.burst", 2)
	v.SetDefault("api.user_agent", "rmwiki")
	v.SetDefault("ui.page_size", 5)
	v.SetDefault("ui.card_width", 28)
	v.SetDefault("ui.card_spacing", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(homeDir(), ".rmwiki", "rmwiki.log"))
	v.SetDefault("log.pretty", false)
}

// Validate rejects values the application cannot work with.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	if c.UI.CardWidth < 8 {
		return fmt.Errorf("ui.card_width must be at least 8, got %d", c.UI.CardWidth)
	}
	if c.UI.CardSpacing < 0 {
		return fmt.Errorf("ui.card_spacing must not be negative")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

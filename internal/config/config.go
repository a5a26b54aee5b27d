package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is read once at startup and not modified afterwards.
type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	OutDir        string        `mapstructure:"out_dir"`
	Headless      bool          `mapstructure:"headless"`
	Preinstalled  bool          `mapstructure:"preinstalled"`
	Video         bool          `mapstructure:"video"`
	StrictConsole bool          `mapstructure:"strict_console"`
	NavTimeout    time.Duration `mapstructure:"nav_timeout"`
	SettleTimeout time.Duration `mapstructure:"settle_timeout"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
}

// Defaults differ per runner.
type Defaults struct {
	BaseURL string
	OutDir  string
	// BaseURLEnv is the environment variable that overrides BaseURL. Empty
	// means the URL only comes from a flag or config file.
	BaseURLEnv string
}

var envKeys = map[string]string{
	"out_dir":        "QA_OUT_DIR",
	"headless":       "HEADLESS",
	"preinstalled":   "PLAYWRIGHT_PREINSTALLED",
	"video":          "QA_VIDEO",
	"strict_console": "QA_STRICT_CONSOLE",
	"nav_timeout":    "QA_NAV_TIMEOUT",
	"settle_timeout": "QA_SETTLE_TIMEOUT",
	"poll_interval":  "QA_POLL_INTERVAL",
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"url":            "base_url",
	"out":            "out_dir",
	"headless":       "headless",
	"video":          "video",
	"strict-console": "strict_console",
}

// Load resolves configuration from defaults, an optional YAML file at path,
// the environment and any changed flags, in increasing precedence.
func Load(path string, d Defaults, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("headless", true)
	v.SetDefault("preinstalled", false)
	v.SetDefault("video", false)
	v.SetDefault("strict_console", false)
	v.SetDefault("nav_timeout", 40*time.Second)
	v.SetDefault("settle_timeout", 2*time.Second)
	v.SetDefault("poll_interval", 100*time.Millisecond)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	if d.BaseURLEnv != "" {
		if err := v.BindEnv("base_url", d.BaseURLEnv); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.OutDir = strings.TrimSpace(cfg.OutDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("base url %q has no host", c.BaseURL)
		}
	case "file":
	default:
		return fmt.Errorf("base url %q: unsupported scheme %q", c.BaseURL, u.Scheme)
	}
	if c.OutDir == "" {
		return errors.New("output directory is required")
	}
	if c.NavTimeout <= 0 || c.SettleTimeout <= 0 || c.PollInterval <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

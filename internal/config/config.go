package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// PathEnv overrides the config file location.
const PathEnv = "BREWLOG_CONFIG"

// APIConfig configures the connection to the brew log service.
type APIConfig struct {
	BaseURL   string        `toml:"base_url" env:"BREWLOG_API_URL"`
	Timeout   time.Duration `toml:"timeout" env:"BREWLOG_TIMEOUT"`
	RateLimit float64       `toml:"rate_limit"` // requests per second, 0 = unlimited
	UserAgent string        `toml:"user_agent"`
}

// CacheConfig holds the lifetime of cached GET responses.
type CacheConfig struct {
	DefaultTTL     time.Duration `toml:"default_ttl"`
	CoffeeTTL      time.Duration `toml:"coffee_ttl"`
	CoffeeListTTL  time.Duration `toml:"coffee_list_ttl"`
	BrewLogTTL     time.Duration `toml:"brewlog_ttl"`
	BrewLogListTTL time.Duration `toml:"brewlog_list_ttl"`
}

// WebConfig points at the browser front end used by "brewlog open".
type WebConfig struct {
	URL string `toml:"url" env:"BREWLOG_WEB_URL"`
}

// ThemeConfig holds UI theme settings
type ThemeConfig struct {
	Name     string `toml:"name" env:"BREWLOG_THEME"`
	Mode     string `toml:"mode" env:"BREWLOG_THEME_MODE"` // "auto", "light" or "dark"
	Primary  string `toml:"primary"`
	Accent   string `toml:"accent"`
	Success  string `toml:"success"`
	Error    string `toml:"error"`
	Muted    string `toml:"muted"`
	Normal   string `toml:"normal"`
	Info     string `toml:"info"`
	Warning  string `toml:"warning"`
	Nerdfont bool   `toml:"nerdfont"`
}

// AIConfig tunes calls to the AI endpoints.
type AIConfig struct {
	Tries   int           `toml:"tries"`
	Timeout time.Duration `toml:"timeout"`
}

// Config holds the brewlog configuration
type Config struct {
	API   APIConfig   `toml:"api"`
	Cache CacheConfig `toml:"cache"`
	Web   WebConfig   `toml:"web"`
	Theme ThemeConfig `toml:"theme"`
	AI    AIConfig    `toml:"ai"`
}

// Default values
const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultWebURL    = "http://localhost:5173"
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "brewlog"
	DefaultAITries   = 2
	DefaultAITimeout = 10 * time.Second
	MaxAITries       = 5
)

// Default returns the default configuration
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Cache: CacheConfig{
			DefaultTTL:     30 * time.Second,
			CoffeeTTL:      60 * time.Second,
			CoffeeListTTL:  60 * time.Second,
			BrewLogTTL:     10 * time.Second,
			BrewLogListTTL: 30 * time.Second,
		},
		Web: WebConfig{URL: DefaultWebURL},
		Theme: ThemeConfig{
			Mode: "auto",
		},
		AI: AIConfig{
			Tries:   DefaultAITries,
			Timeout: DefaultAITimeout,
		},
	}
}

// Path returns the config file location.
// BREWLOG_CONFIG wins over ~/.config/brewlog/config.toml.
func Path() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "brewlog", "config.toml"), nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Load reads the config from Path() and applies environment overrides.
// Returns Default() with overrides if the file doesn't exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return LoadFile("")
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. An empty path or a missing file
// yields the defaults. Returns an error only if the file exists but is
// invalid, or an override fails to parse.
func LoadFile(path string) (Config, error) {
	return load(path, env.ToMap(os.Environ()))
}

func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return Default(), err
		}
		data, err := os.ReadFile(expanded)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Default(), fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := decode(string(data), &cfg); err != nil {
				return Default(), err
			}
		}
	}

	if err := applyEnvOverrides(&cfg, environ); err != nil {
		return Default(), err
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Web.URL = strings.TrimRight(cfg.Web.URL, "/")

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// decode parses TOML over cfg, so keys not present keep their defaults.
func decode(content string, cfg *Config) error {
	md, err := toml.Decode(content, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// applyEnvOverrides overwrites fields whose BREWLOG_* variable is set
// and non-empty.
func applyEnvOverrides(cfg *Config, environ map[string]string) error {
	set := make(map[string]string, len(environ))
	for k, v := range environ {
		if strings.HasPrefix(k, "BREWLOG_") && v != "" {
			set[k] = v
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: set}); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

type configKey struct{}

// WithConfig returns a new context with the config attached.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(configKey{}).(*Config)
	return cfg
}

// defaultConfig is the commented file written by "brewlog config init".
const defaultConfig = `# brewlog configuration
# Environment variables override the values below:
#   BREWLOG_API_URL, BREWLOG_WEB_URL, BREWLOG_TIMEOUT,
#   BREWLOG_THEME, BREWLOG_THEME_MODE

[api]
# Brew log service address (http or https)
base_url = "http://localhost:8080"
# Per-request timeout
timeout = "15s"
# Client-side request rate cap in requests per second (0 = unlimited)
rate_limit = 0.0
# user_agent = "brewlog"

[cache]
# How long GET responses are reused before they are fetched again.
default_ttl = "30s"
coffee_ttl = "60s"
coffee_list_ttl = "60s"
brewlog_ttl = "10s"
brewlog_list_ttl = "30s"

[web]
# Browser front end opened by "brewlog open"
url = "http://localhost:5173"

[theme]
# Preset: "none", "default", "dracula", "nord", "gruvbox", "catppuccin"
# name = "default"
# "auto" follows the terminal background
mode = "auto"
# Individual colors override the preset (hex or ANSI 256 codes)
# primary = "#89b4fa"
# accent = "#f5c2e7"
# success = "#a6e3a1"
# error = "#f38ba8"
# muted = "#6c7086"
# normal = "#cdd6f4"
# info = "#94e2d5"
# warning = "#fab387"
# nerdfont = false

[ai]
# Attempts per AI request, including the first (1-5)
tries = 2
# Timeout for a single attempt
timeout = "10s"
`

// DefaultConfig returns the commented default config file content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitAt(path, force)
}

// InitAt writes the default config file to path.
func InitAt(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}

// IsValidThemeName reports whether name is a known theme preset.
func IsValidThemeName(name string) bool {
	return slices.Contains(ValidThemeNames, name)
}

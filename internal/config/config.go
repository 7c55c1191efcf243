package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/dshills/rbarchive/internal/ratelimit"
	"github.com/dshills/rbarchive/internal/reviewboard"
	"github.com/tailscale/hujson"
)

// Config represents the rbarchive configuration.
type Config struct {
	APIURL    string `json:"apiURL"`
	SiteURL   string `json:"siteURL"`
	OutputDir string `json:"outputDir"`
	// Limit is the number of seconds to wait before each request.
	Limit *float64 `json:"limit,omitempty"`
	// TimeoutSeconds bounds each HTTP request; 0 means no timeout.
	TimeoutSeconds float64 `json:"timeoutSeconds,omitempty"`
	SkipExisting   bool    `json:"skipExisting"`
	UserAgent      string  `json:"userAgent,omitempty"`
}

const (
	defaultOutputDir = "site"
	defaultLimit     = 1.0

	// maxSeconds is the largest delay or timeout a time.Duration can hold.
	maxSeconds = float64(math.MaxInt64 / int64(time.Second))
)

// Default returns a Config with all defaults applied.
func Default() Config {
	limit := defaultLimit
	return Config{
		APIURL:    reviewboard.DefaultAPIURL,
		SiteURL:   reviewboard.DefaultSiteURL,
		OutputDir: defaultOutputDir,
		Limit:     &limit,
	}
}

// LimitSeconds returns the configured delay in seconds.
func (c Config) LimitSeconds() float64 {
	if c.Limit == nil {
		return defaultLimit
	}
	return *c.Limit
}

// Delay returns the delay between requests.
func (c Config) Delay() time.Duration {
	return ratelimit.Seconds(c.LimitSeconds())
}

// Timeout returns the per-request HTTP timeout, 0 for none.
func (c Config) Timeout() time.Duration {
	return ratelimit.Seconds(c.TimeoutSeconds)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("apiURL must not be empty")
	}
	if c.SiteURL == "" {
		return errors.New("siteURL must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("outputDir must not be empty")
	}
	if err := checkSeconds("limit", c.LimitSeconds()); err != nil {
		return err
	}
	return checkSeconds("timeoutSeconds", c.TimeoutSeconds)
}

func checkSeconds(key string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("%s must be a finite number, got %v", key, v)
	case v < 0:
		return fmt.Errorf("%s must be >= 0, got %v", key, v)
	case v > maxSeconds:
		return fmt.Errorf("%s must be at most %v seconds, got %v", key, maxSeconds, v)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for rbarchive.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rbarchive"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "rbarchive"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "rbarchive"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "rbarchive"), nil
	default:
		return filepath.Join(home, ".config", "rbarchive"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a config file body. Comments and trailing commas are allowed.
func Parse(data []byte) (Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only flags the user set should appear).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadStored()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadStored returns the defaults merged with the config file, ignoring the
// environment. This is what "config set" edits and writes back.
func LoadStored() (Config, error) {
	cfg := Default()
	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
	if src.SiteURL != "" {
		dst.SiteURL = src.SiteURL
	}
	if src.OutputDir != "" {
		dst.OutputDir = src.OutputDir
	}
	if src.Limit != nil {
		v := *src.Limit
		dst.Limit = &v
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.UserAgent != "" {
		dst.UserAgent = src.UserAgent
	}
	dst.SkipExisting = src.SkipExisting || dst.SkipExisting
}

var envKeys = map[string]string{
	"RBARCHIVE_API_URL":       "apiURL",
	"RBARCHIVE_SITE_URL":      "siteURL",
	"RBARCHIVE_OUTPUT_DIR":    "outputDir",
	"RBARCHIVE_LIMIT":         "limit",
	"RBARCHIVE_TIMEOUT":       "timeoutSeconds",
	"RBARCHIVE_SKIP_EXISTING": "skipExisting",
	"RBARCHIVE_USER_AGENT":    "userAgent",
}

func mergeEnv(cfg *Config) error {
	for env, key := range envKeys {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "apiURL":
		cfg.APIURL = value
	case "siteURL":
		cfg.SiteURL = value
	case "outputDir":
		cfg.OutputDir = value
	case "limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("limit must be a number: %w", err)
		}
		cfg.Limit = &f
	case "timeoutSeconds":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be a number: %w", err)
		}
		cfg.TimeoutSeconds = f
	case "skipExisting":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("skipExisting must be a boolean: %w", err)
		}
		cfg.SkipExisting = b
	case "userAgent":
		cfg.UserAgent = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

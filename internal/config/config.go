package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/hoyotext/internal/adapter"
	"github.com/amishk599/hoyotext/internal/category"
	"github.com/amishk599/hoyotext/internal/model"
)

// Config is the root configuration for hoyotext.
type Config struct {
	Server       ServerConfig
	HoYoLAB      HoYoLABConfig
	RateLimit    RateLimitConfig
	Retry        RetryConfig
	Archive      ArchiveConfig
	Watch        WatchConfig
	Notification NotificationConfig

	// Categories adds or replaces category labels per wiki.
	Categories map[model.GameFamily]map[string]category.Strategy
	// CategoryTypes sets the record type for a label; default is the label.
	CategoryTypes map[model.GameFamily]map[string]string
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr string
}

// HoYoLABConfig controls the upstream wiki API client.
type HoYoLABConfig struct {
	BaseURL   string
	Language  string
	UserAgent string
	Timeout   time.Duration
}

// RateLimitConfig controls wiki-level rate limiting.
type RateLimitConfig struct {
	MinDelay      time.Duration                      // minimum gap between requests to the same wiki
	WikiOverrides map[model.GameFamily]time.Duration // per-wiki overrides
}

// RetryConfig controls the retry decorator around the fetcher.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// ArchiveConfig controls the SQLite record archive.
type ArchiveConfig struct {
	Enabled   bool
	Path      string
	Retention time.Duration // zero keeps records forever
}

// WatchConfig lists the pages the watch command keeps refreshed.
type WatchConfig struct {
	Interval time.Duration
	Pages    map[model.GameFamily][]int
}

// NotificationConfig controls which notifier watch uses for changed records.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" (default) or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server        ServerConfig                 `yaml:"server"`
	HoYoLAB       rawHoYoLABConfig             `yaml:"hoyolab"`
	RateLimit     rawRateLimitConfig           `yaml:"rate_limit"`
	Retry         rawRetryConfig               `yaml:"retry"`
	Archive       rawArchiveConfig             `yaml:"archive"`
	Watch         rawWatchConfig               `yaml:"watch"`
	Notification  NotificationConfig           `yaml:"notification"`
	Categories    map[string]map[string]string `yaml:"categories"`
	CategoryTypes map[string]map[string]string `yaml:"category_types"`
}

type rawHoYoLABConfig struct {
	BaseURL   string `yaml:"base_url"`
	Language  string `yaml:"language"`
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"`
}

type rawRateLimitConfig struct {
	MinDelay      string            `yaml:"min_delay"`
	WikiOverrides map[string]string `yaml:"wiki_overrides"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

type rawWatchConfig struct {
	Interval string           `yaml:"interval"`
	Pages    map[string][]int `yaml:"pages"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		HoYoLAB: HoYoLABConfig{
			BaseURL:   adapter.DefaultBaseURL,
			Language:  adapter.DefaultLanguage,
			UserAgent: adapter.DefaultUserAgent,
			Timeout:   30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			MinDelay:      time.Second,
			WikiOverrides: map[model.GameFamily]time.Duration{},
		},
		Retry: RetryConfig{
			MaxRetries: 2,
			BaseDelay:  2 * time.Second,
		},
		Archive: ArchiveConfig{
			Path: "hoyotext.db",
		},
		Watch: WatchConfig{
			Interval: 6 * time.Hour,
			Pages:    map[model.GameFamily][]int{},
		},
		Notification:  NotificationConfig{Type: "log"},
		Categories:    map[model.GameFamily]map[string]category.Strategy{},
		CategoryTypes: map[model.GameFamily]map[string]string{},
	}
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
// Settings absent from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	if raw.HoYoLAB.BaseURL != "" {
		cfg.HoYoLAB.BaseURL = raw.HoYoLAB.BaseURL
	}
	if raw.HoYoLAB.Language != "" {
		cfg.HoYoLAB.Language = raw.HoYoLAB.Language
	}
	if raw.HoYoLAB.UserAgent != "" {
		cfg.HoYoLAB.UserAgent = raw.HoYoLAB.UserAgent
	}
	if err := parseDuration("hoyolab.timeout", raw.HoYoLAB.Timeout, &cfg.HoYoLAB.Timeout); err != nil {
		return nil, err
	}

	if err := parseDuration("rate_limit.min_delay", raw.RateLimit.MinDelay, &cfg.RateLimit.MinDelay); err != nil {
		return nil, err
	}
	for wiki, rawDelay := range raw.RateLimit.WikiOverrides {
		family, err := model.ParseGameFamily(wiki)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.wiki_overrides: %w", err)
		}
		d, err := time.ParseDuration(rawDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.wiki_overrides[%q]: %w", wiki, err)
		}
		cfg.RateLimit.WikiOverrides[family] = d
	}

	if raw.Retry.MaxRetries != nil {
		cfg.Retry.MaxRetries = *raw.Retry.MaxRetries
	}
	if err := parseDuration("retry.base_delay", raw.Retry.BaseDelay, &cfg.Retry.BaseDelay); err != nil {
		return nil, err
	}

	cfg.Archive.Enabled = raw.Archive.Enabled
	if raw.Archive.Path != "" {
		cfg.Archive.Path = raw.Archive.Path
	}
	if err := parseDuration("archive.retention", raw.Archive.Retention, &cfg.Archive.Retention); err != nil {
		return nil, err
	}

	if raw.Notification.Type != "" {
		cfg.Notification = raw.Notification
	}

	if err := parseDuration("watch.interval", raw.Watch.Interval, &cfg.Watch.Interval); err != nil {
		return nil, err
	}
	for wiki, ids := range raw.Watch.Pages {
		family, err := model.ParseGameFamily(wiki)
		if err != nil {
			return nil, fmt.Errorf("parse watch.pages: %w", err)
		}
		cfg.Watch.Pages[family] = ids
	}

	for wiki, labels := range raw.Categories {
		family, err := model.ParseGameFamily(wiki)
		if err != nil {
			return nil, fmt.Errorf("parse categories: %w", err)
		}
		table := make(map[string]category.Strategy, len(labels))
		for label, tag := range labels {
			st, err := category.ParseStrategy(tag)
			if err != nil {
				return nil, fmt.Errorf("parse categories.%s[%q]: %w", wiki, label, err)
			}
			table[label] = st
		}
		cfg.Categories[family] = table
	}
	for wiki, types := range raw.CategoryTypes {
		family, err := model.ParseGameFamily(wiki)
		if err != nil {
			return nil, fmt.Errorf("parse category_types: %w", err)
		}
		cfg.CategoryTypes[family] = types
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseDuration overwrites dst when value is set.
func parseDuration(key, value string, dst *time.Duration) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s %q: %w", key, value, err)
	}
	*dst = d
	return nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.HoYoLAB.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("hoyolab.base_url must be an absolute http(s) URL, got %q", cfg.HoYoLAB.BaseURL)
	}
	if cfg.HoYoLAB.Timeout <= 0 {
		return fmt.Errorf("hoyolab.timeout must be positive, got %v", cfg.HoYoLAB.Timeout)
	}
	if cfg.RateLimit.MinDelay < 0 {
		return fmt.Errorf("rate_limit.min_delay must not be negative, got %v", cfg.RateLimit.MinDelay)
	}
	for wiki, d := range cfg.RateLimit.WikiOverrides {
		if d < 0 {
			return fmt.Errorf("rate_limit.wiki_overrides[%q] must not be negative, got %v", wiki, d)
		}
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.MaxRetries > 0 && cfg.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be positive when retries are enabled, got %v", cfg.Retry.BaseDelay)
	}
	if cfg.Archive.Enabled && cfg.Archive.Path == "" {
		return fmt.Errorf("archive.path is required when archive.enabled is true")
	}
	if cfg.Archive.Retention < 0 {
		return fmt.Errorf("archive.retention must not be negative, got %v", cfg.Archive.Retention)
	}
	if cfg.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %v", cfg.Watch.Interval)
	}
	for wiki, ids := range cfg.Watch.Pages {
		for _, id := range ids {
			if id <= 0 {
				return fmt.Errorf("watch.pages[%q] contains invalid page id %d", wiki, id)
			}
		}
	}
	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}
	if _, err := cfg.Registry(); err != nil {
		return err
	}
	return nil
}

// Registry builds the category tables: the built-in defaults with the
// configured categories and types applied on top.
func (c *Config) Registry() (*category.Registry, error) {
	reg := category.DefaultRegistry()
	for family, labels := range c.Categories {
		for label, st := range labels {
			if err := reg.Override(family, label, st, c.CategoryTypes[family][label]); err != nil {
				return nil, err
			}
		}
	}
	for family, types := range c.CategoryTypes {
		fam, err := reg.Family(family)
		if err != nil {
			return nil, err
		}
		for label, typ := range types {
			if _, ok := c.Categories[family][label]; ok {
				continue
			}
			entry, ok := fam.Categories[label]
			if !ok {
				return nil, fmt.Errorf("category_types.%s[%q]: label has no strategy; add it under categories", family, label)
			}
			if err := reg.Override(family, label, entry.Strategy, typ); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

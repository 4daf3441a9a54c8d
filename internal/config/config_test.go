package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/hoyotext/internal/category"
	"github.com/amishk599/hoyotext/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
hoyolab:
  language: ja-jp
  timeout: 10s
rate_limit:
  min_delay: 500ms
  wiki_overrides:
    genshin: 2s
retry:
  max_retries: 0
archive:
  enabled: true
  path: records.db
  retention: 720h
notification:
  type: slack
  webhook_url: https://hooks.slack.com/services/T000/B000/XXXX
watch:
  interval: 1h
  pages:
    hsr: [1001, 1002]
categories:
  hsr:
    Planar Ornaments: generic
    Aeons: bare
category_types:
  hsr:
    Planar Ornaments: Relics
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.HoYoLAB.Language != "ja-jp" || cfg.HoYoLAB.Timeout != 10*time.Second {
		t.Errorf("HoYoLAB = %+v", cfg.HoYoLAB)
	}
	if cfg.HoYoLAB.BaseURL == "" || cfg.HoYoLAB.UserAgent == "" {
		t.Errorf("expected defaults for unset hoyolab fields, got %+v", cfg.HoYoLAB)
	}
	if cfg.RateLimit.MinDelay != 500*time.Millisecond {
		t.Errorf("RateLimit.MinDelay = %v, want 500ms", cfg.RateLimit.MinDelay)
	}
	if cfg.RateLimit.WikiOverrides[model.Genshin] != 2*time.Second {
		t.Errorf("WikiOverrides = %v", cfg.RateLimit.WikiOverrides)
	}
	if cfg.Retry.MaxRetries != 0 {
		t.Errorf("Retry.MaxRetries = %d, want explicit 0", cfg.Retry.MaxRetries)
	}
	if !cfg.Archive.Enabled || cfg.Archive.Path != "records.db" || cfg.Archive.Retention != 720*time.Hour {
		t.Errorf("Archive = %+v", cfg.Archive)
	}

	if cfg.Notification.Type != "slack" || cfg.Notification.WebhookURL == "" {
		t.Errorf("Notification = %+v", cfg.Notification)
	}
	if cfg.Watch.Interval != time.Hour || len(cfg.Watch.Pages[model.StarRail]) != 2 {
		t.Errorf("Watch = %+v", cfg.Watch)
	}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	fam, _ := reg.Family(model.StarRail)
	e, ok := fam.Categories.Lookup("Planar Ornaments")
	if !ok || e.Strategy != category.Generic || e.Type != "Relics" {
		t.Errorf("Planar Ornaments = %+v, %v", e, ok)
	}
	if e, _ := fam.Categories.Lookup("Aeons"); e.Strategy != category.Bare {
		t.Errorf("expected Aeons overridden to bare, got %+v", e)
	}
}

func TestRegistry_StrategyOverrideKeepsBuiltInType(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
categories:
  hsr:
    Characters: generic
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	fam, _ := reg.Family(model.StarRail)
	e, ok := fam.Categories.Lookup("Characters")
	if !ok || e.Strategy != category.Generic || e.Type != "Character" {
		t.Errorf("Characters = %+v, %v; want generic with type Character", e, ok)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Server.Addr != def.Server.Addr || cfg.Retry.MaxRetries != def.Retry.MaxRetries || cfg.Archive.Enabled {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("HOYOTEXT_TEST_BASE", "http://127.0.0.1:9999/hoyowiki")
	cfg, err := Load(writeConfig(t, "hoyolab:\n  base_url: ${HOYOTEXT_TEST_BASE}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HoYoLAB.BaseURL != "http://127.0.0.1:9999/hoyowiki" {
		t.Errorf("BaseURL = %q", cfg.HoYoLAB.BaseURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "hoyolab:\n  timeout: soon\n"},
		{"zero timeout", "hoyolab:\n  timeout: 0s\n"},
		{"relative base url", "hoyolab:\n  base_url: /hoyowiki\n"},
		{"unknown wiki override", "rate_limit:\n  wiki_overrides:\n    zzz: 1s\n"},
		{"negative retries", "retry:\n  max_retries: -1\n"},
		{"unknown strategy", "categories:\n  hsr:\n    Relics: fancy\n"},
		{"unknown category wiki", "categories:\n  honkai3:\n    Relics: generic\n"},
		{"type for unknown label", "category_types:\n  hsr:\n    Nope: Thing\n"},
		{"negative retention", "archive:\n  retention: -1h\n"},
		{"unknown notifier", "notification:\n  type: email\n"},
		{"slack without webhook", "notification:\n  type: slack\n"},
		{"slack with foreign webhook", "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n"},
		{"zero watch interval", "watch:\n  interval: 0s\n"},
		{"bad watch page id", "watch:\n  pages:\n    genshin: [0]\n"},
		{"unknown watch wiki", "watch:\n  pages:\n    zzz: [1]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Fatalf("Load: expected validation error for %s", tc.name)
			}
		})
	}
}

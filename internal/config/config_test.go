package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse([]byte(""))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.NewsAPI.APIKeyEnv != "NEWSAPI_KEY" {
		t.Errorf("expected default api_key_env, got %q", cfg.NewsAPI.APIKeyEnv)
	}
	if cfg.NewsAPI.PageSize != 50 || cfg.NewsAPI.Language != "en" || cfg.NewsAPI.Sort != "relevancy" {
		t.Errorf("unexpected newsapi defaults: %+v", cfg.NewsAPI)
	}
	if cfg.Recommend.TopK != 5 || cfg.Recommend.MaxLiked != 10 || cfg.Recommend.PaceMs != 250 {
		t.Errorf("unexpected recommend defaults: %+v", cfg.Recommend)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parse([]byte(`
newsapi:
  page_size: 25
recommend:
  top_k: 3
sources:
  feeds:
    - url: https://example.com/rss
      name: Example
server:
  port: 9000
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.NewsAPI.PageSize != 25 {
		t.Errorf("expected page_size 25, got %d", cfg.NewsAPI.PageSize)
	}
	if cfg.NewsAPI.Language != "en" {
		t.Errorf("expected untouched default language, got %q", cfg.NewsAPI.Language)
	}
	if cfg.Recommend.TopK != 3 {
		t.Errorf("expected top_k 3, got %d", cfg.Recommend.TopK)
	}
	if len(cfg.Sources.Feeds) != 1 || cfg.Sources.Feeds[0].Name != "Example" {
		t.Errorf("unexpected feeds: %+v", cfg.Sources.Feeds)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
}

func TestDefaultConfigYAMLParses(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("embedded default config does not parse: %v", err)
	}
	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected default feeds in embedded config")
	}
}

func TestResolveConfigPathExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveConfigPath(path)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}

	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("server:\n  port: 4321\n"), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 4321 {
		t.Errorf("expected port 4321, got %d", cfg.Server.Port)
	}
}

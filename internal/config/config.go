// Package config loads the newsrec YAML configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	NewsAPI   NewsAPI   `yaml:"newsapi"`
	Recommend Recommend `yaml:"recommend"`
	Sources   Sources   `yaml:"sources"`
	Server    Server    `yaml:"server"`
	Output    Output    `yaml:"output"`
	Logging   Logging   `yaml:"logging"`
}

type NewsAPI struct {
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Language  string `yaml:"language"`
	PageSize  int    `yaml:"page_size"`
	Sort      string `yaml:"sort"`
}

type Recommend struct {
	TopK     int `yaml:"top_k"`
	MaxLiked int `yaml:"max_liked"`
	PaceMs   int `yaml:"pace_ms"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for newsrec.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "newsrec")
}

// DataDir returns the XDG data directory for newsrec.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "newsrec")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/newsrec/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'newsrec init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		NewsAPI: NewsAPI{
			APIKeyEnv: "NEWSAPI_KEY",
			BaseURL:   "https://newsapi.org/v2/everything",
			Language:  "en",
			PageSize:  50,
			Sort:      "relevancy",
		},
		Recommend: Recommend{
			TopK:     5,
			MaxLiked: 10,
			PaceMs:   250,
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// APIKey reads the NewsAPI key from the configured environment variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.NewsAPI.APIKeyEnv)
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gitlanes/gitlanes/pkg/pipeline"
)

// Config holds user preferences read from ~/.config/gitlanes/config.toml.
// Every field has a sensible zero-value default; a missing file is not an
// error. Command-line flags override config values.
//
// Example config:
//
//	[log]
//	max_commits = 200
//	all = true
//
//	[render]
//	no_color = false
//	show_author = true
//
//	[cache]
//	dir = "/tmp/gitlanes-cache"
//	disabled = false
//
//	[serve]
//	addr = ":8395"
//	redis_addr = "localhost:6379"
type Config struct {
	Log    LogConfig    `toml:"log"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

// LogConfig controls how much history is loaded.
type LogConfig struct {
	MaxCommits int  `toml:"max_commits"`
	All        bool `toml:"all"`
}

// RenderConfig controls terminal output defaults.
type RenderConfig struct {
	NoColor    bool `toml:"no_color"`
	ShowAuthor bool `toml:"show_author"`
	ShowTime   bool `toml:"show_time"`
}

// CacheConfig controls the layout cache.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// ServeConfig controls the HTTP server.
type ServeConfig struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			MaxCommits: pipeline.DefaultMaxCommits,
		},
		Serve: ServeConfig{
			Addr: ":8395",
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file returns the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Log.MaxCommits <= 0 {
		cfg.Log.MaxCommits = pipeline.DefaultMaxCommits
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8395"
	}
	return cfg, nil
}

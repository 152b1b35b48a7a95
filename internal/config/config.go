// Package config loads server settings: defaults, then an optional YAML
// file named by POKEDEX_CONFIG, then environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            string        `yaml:"port"`
	UpstreamBase    string        `yaml:"upstream_base"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	FavoritesDB     string        `yaml:"favorites_db"` // empty keeps favorites in memory
	BattleLogDir    string        `yaml:"battle_log_dir"`
	PreloadCount    int           `yaml:"preload_count"`
	PreloadWorkers  int           `yaml:"preload_workers"`
	LogLevel        string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Port:            "3000",
		UpstreamBase:    "https://pokeapi.co/api/v2",
		UpstreamTimeout: 8 * time.Second,
		CacheTTL:        5 * time.Minute,
		AllowedOrigins:  []string{"http://localhost:4200"},
		PreloadCount:    151,
		PreloadWorkers:  8,
		LogLevel:        "info",
	}
}

// Load builds the configuration from the process environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(env func(string) string) (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(env("POKEDEX_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	getenv := func(k, def string) string {
		if v := strings.TrimSpace(env(k)); v != "" {
			return v
		}
		return def
	}
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.UpstreamBase = getenv("POKEAPI_BASE", cfg.UpstreamBase)
	cfg.FavoritesDB = getenv("FAVORITES_DB", cfg.FavoritesDB)
	cfg.BattleLogDir = getenv("BATTLE_LOG_DIR", cfg.BattleLogDir)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	if v := getenv("ALLOWED_ORIGIN", ""); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := getenv("PRELOAD_COUNT", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("PRELOAD_COUNT: invalid value %q", v)
		}
		cfg.PreloadCount = n
	}
	if v := getenv("UPSTREAM_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("UPSTREAM_TIMEOUT: invalid duration %q", v)
		}
		cfg.UpstreamTimeout = d
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

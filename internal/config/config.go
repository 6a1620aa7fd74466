package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/cookanything/pantry/internal/recipe"
)

// Config holds everything pantry reads from config.toml.
type Config struct {
	SourceURL string
	BaseURL   string
	Timeout   time.Duration

	CacheBackend     string
	CacheDir         string
	CacheTTL         time.Duration
	CacheReadEnabled bool

	PageSize        int
	Debounce        time.Duration
	ScrollThreshold int

	Listen     string
	DemoConfig string
	LogFile    string
	LogLevel   slog.Level
}

// Cache backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const (
	defaultTimeout         = 15 * time.Second
	defaultCacheTTL        = 30 * time.Minute
	defaultPageSize        = 24
	defaultDebounce        = 300 * time.Millisecond
	defaultScrollThreshold = 10
	defaultListen          = "127.0.0.1:8080"
)

// DefaultPath returns the config location used when none is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "pantry", "config.toml")
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:         recipe.DefaultBaseURL,
		Timeout:         defaultTimeout,
		CacheBackend:    BackendFile,
		CacheDir:        filepath.Join(xdg.CacheHome, "pantry"),
		CacheTTL:        defaultCacheTTL,
		PageSize:        defaultPageSize,
		Debounce:        defaultDebounce,
		ScrollThreshold: defaultScrollThreshold,
		Listen:          defaultListen,
		LogFile:         filepath.Join(xdg.StateHome, "pantry", "pantry.log"),
		LogLevel:        slog.LevelInfo,
	}
}

type rawConfig struct {
	DemoConfig string `toml:"demo_config"`
	LogFile    string `toml:"log_file"`
	LogLevel   string `toml:"log_level"`

	Source struct {
		URL     string `toml:"url"`
		BaseURL string `toml:"base_url"`
		Timeout string `toml:"timeout"`
	} `toml:"source"`

	Cache struct {
		Backend     string `toml:"backend"`
		Path        string `toml:"path"`
		TTL         string `toml:"ttl"`
		ReadEnabled bool   `toml:"read_enabled"`
	} `toml:"cache"`

	Display struct {
		PageSize        int    `toml:"page_size"`
		Debounce        string `toml:"debounce"`
		ScrollThreshold int    `toml:"scroll_threshold"`
	} `toml:"display"`

	Server struct {
		Listen string `toml:"listen"`
	} `toml:"server"`
}

// Load parses the config at path, falling back to defaults when the file is
// missing or a field is left empty.
func Load(path string) (Config, error) {
	resolved := DefaultPath()
	if strings.TrimSpace(path) != "" {
		var err error
		resolved, err = expandPath(path)
		if err != nil {
			return Config{}, err
		}
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.SourceURL = strings.TrimSpace(raw.Source.URL)
	if base := strings.TrimSpace(raw.Source.BaseURL); base != "" {
		cfg.BaseURL = recipe.BaseURL(base)
	}
	if cfg.Timeout, err = parseDuration("source.timeout", raw.Source.Timeout, defaultTimeout); err != nil {
		return Config{}, err
	}

	switch backend := strings.ToLower(strings.TrimSpace(raw.Cache.Backend)); backend {
	case "":
	case BackendFile, BackendSQLite:
		cfg.CacheBackend = backend
	default:
		return Config{}, fmt.Errorf("cache.backend %q: want %q or %q", raw.Cache.Backend, BackendFile, BackendSQLite)
	}
	if dir := strings.TrimSpace(raw.Cache.Path); dir != "" {
		cfg.CacheDir = mustExpand(dir)
	}
	if cfg.CacheTTL, err = parseDuration("cache.ttl", raw.Cache.TTL, defaultCacheTTL); err != nil {
		return Config{}, err
	}
	cfg.CacheReadEnabled = raw.Cache.ReadEnabled

	if raw.Display.PageSize > 0 {
		cfg.PageSize = raw.Display.PageSize
	}
	if cfg.Debounce, err = parseDuration("display.debounce", raw.Display.Debounce, defaultDebounce); err != nil {
		return Config{}, err
	}
	if raw.Display.ScrollThreshold > 0 {
		cfg.ScrollThreshold = raw.Display.ScrollThreshold
	}

	if listen := strings.TrimSpace(raw.Server.Listen); listen != "" {
		cfg.Listen = listen
	}
	if demo := strings.TrimSpace(raw.DemoConfig); demo != "" {
		cfg.DemoConfig = mustExpand(demo)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("log_level %q: %w", level, err)
		}
	}

	return cfg, nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s: negative duration %s", field, value)
	}
	return d, nil
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// Package demo decides whether the "live demo" banner is shown.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Banner copy.
const (
	LeadText   = "👀 You’re viewing a live demo of Cook Anything Kitchen —"
	LinkText   = "Get your own copy →"
	LicenseURL = "https://cookanythingkitchen.com/license.html"
)

// QueryParam and SessionKey name the override switches.
const (
	QueryParam = "demo"
	SessionKey = "demoMode"
)

// Config is the demo config document, e.g. {"demo": true}.
type Config struct {
	Demo bool `json:"demo"`
}

// Load reads the demo config from a file path or http(s) URL. It is read
// fresh on every call. Any failure is logged and treated as demo=false.
func Load(ctx context.Context, location string, logger *slog.Logger) bool {
	location = strings.TrimSpace(location)
	if location == "" {
		return false
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := read(ctx, location)
	if err != nil {
		logger.Warn("could not load demo config, assuming demo=false", "location", location, "error", err)
		return false
	}
	return cfg.Demo
}

func read(ctx context.Context, location string) (Config, error) {
	var body io.ReadCloser
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return Config{}, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Cache-Control", "no-store")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return Config{}, fmt.Errorf("execute request: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return Config{}, fmt.Errorf("demo config returned %d", resp.StatusCode)
		}
		body = resp.Body
	} else {
		f, err := os.Open(location)
		if err != nil {
			return Config{}, fmt.Errorf("open demo config: %w", err)
		}
		body = f
	}
	defer body.Close()

	var cfg Config
	if err := json.NewDecoder(body).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode demo config: %w", err)
	}
	return cfg, nil
}

// Resolve combines the config flag with the query override and the sticky
// session flag. persist reports whether the session flag should be set, which
// happens whenever the override (not the config file) switched demo mode on.
func Resolve(configured bool, query url.Values, sticky bool) (active, persist bool) {
	if query.Get(QueryParam) == "true" || sticky {
		return true, true
	}
	return configured, false
}

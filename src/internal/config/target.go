// FILE: autolog/src/internal/config/target.go
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// TargetConfig declares a named output destination.
type TargetConfig struct {
	// Unique target name referenced by decisions and entries
	Name string `toml:"name"`

	// Target type: "console", "file", "http", "tcp"
	Type string `toml:"type"`

	// Disabled targets resolve to the fallback at dispatch time
	Enabled bool `toml:"enabled"`

	// Entries per second allowed through; 0 disables limiting
	RateLimitPerSecond float64 `toml:"rate_limit_per_second"`

	// Type-specific configuration options
	Options map[string]any `toml:"options"`
}

func validateTarget(index int, cfg *TargetConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("target[%d]: missing name", index)
	}
	if cfg.RateLimitPerSecond < 0 {
		return fmt.Errorf("target[%d]: rate limit cannot be negative", index)
	}

	switch cfg.Type {
	case "console":
		if out, ok := cfg.Options["output"].(string); ok {
			if out != "stdout" && out != "stderr" && out != "split" {
				return fmt.Errorf("target[%d]: console output must be stdout, stderr or split: %s", index, out)
			}
		}

	case "file":
		directory, ok := cfg.Options["directory"].(string)
		if !ok || directory == "" {
			return fmt.Errorf("target[%d]: file target requires 'directory' option", index)
		}
		if strings.Contains(directory, "..") {
			return fmt.Errorf("target[%d]: directory contains path traversal", index)
		}
		if maxSize, ok := toInt(cfg.Options["max_size_mb"]); ok && maxSize < 1 {
			return fmt.Errorf("target[%d]: max_size_mb must be positive: %d", index, maxSize)
		}
		if backups, ok := toInt(cfg.Options["max_backups"]); ok && backups < 0 {
			return fmt.Errorf("target[%d]: max_backups cannot be negative: %d", index, backups)
		}

	case "http":
		urlStr, ok := cfg.Options["url"].(string)
		if !ok || urlStr == "" {
			return fmt.Errorf("target[%d]: http target requires 'url' option", index)
		}
		parsedURL, err := url.Parse(urlStr)
		if err != nil {
			return fmt.Errorf("target[%d]: invalid URL: %w", index, err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("target[%d]: URL must use http or https scheme", index)
		}
		if batchSize, ok := toInt(cfg.Options["batch_size"]); ok && batchSize < 1 {
			return fmt.Errorf("target[%d]: batch_size must be positive: %d", index, batchSize)
		}
		if timeout, ok := toInt(cfg.Options["timeout_seconds"]); ok && timeout < 1 {
			return fmt.Errorf("target[%d]: timeout_seconds must be positive: %d", index, timeout)
		}

	case "tcp":
		address, ok := cfg.Options["address"].(string)
		if !ok || address == "" {
			return fmt.Errorf("target[%d]: tcp target requires 'address' option", index)
		}
		if _, _, err := net.SplitHostPort(address); err != nil {
			return fmt.Errorf("target[%d]: invalid address format (expected host:port): %w", index, err)
		}
		if dialTimeout, ok := toInt(cfg.Options["dial_timeout_seconds"]); ok && dialTimeout < 1 {
			return fmt.Errorf("target[%d]: dial_timeout_seconds must be positive: %d", index, dialTimeout)
		}

	default:
		return fmt.Errorf("target[%d]: unknown target type '%s'", index, cfg.Type)
	}

	return nil
}

// Helper functions for option bag type conversion
func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}

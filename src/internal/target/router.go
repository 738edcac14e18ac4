// FILE: autolog/src/internal/target/router.go
package target

import (
	"context"
	"fmt"

	"autolog/src/internal/config"
	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Router owns the configured targets and resolves which one an entry
// should reach. Resolution precedence: the entry's own target, then the
// configured default, then a built-in stderr console fallback. Unknown
// and disabled names fall through to the fallback so a misrouted entry
// is still visible somewhere.
type Router struct {
	targets     map[string]Target
	defaultName string
	fallback    Target
	logger      *log.Logger
}

// NewRouter builds all enabled targets from configuration. Targets with
// a rate limit are wrapped with a token bucket that reports drops
// through onLimited.
func NewRouter(cfgs []config.TargetConfig, defaultName string, onLimited func(), logger *log.Logger) (*Router, error) {
	fallback, err := NewConsoleTarget(map[string]any{"output": "stderr"}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback console target: %w", err)
	}

	r := &Router{
		targets:     make(map[string]Target, len(cfgs)),
		defaultName: defaultName,
		fallback:    fallback,
		logger:      logger,
	}

	for _, cfg := range cfgs {
		if !cfg.Enabled {
			logger.Debug("msg", "Skipping disabled target",
				"component", "router",
				"target", cfg.Name)
			continue
		}

		t, err := newTarget(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create target '%s': %w", cfg.Name, err)
		}

		if cfg.RateLimitPerSecond > 0 {
			t = NewRateLimited(t, cfg.RateLimitPerSecond, onLimited, logger)
		}

		r.targets[cfg.Name] = t
	}

	if defaultName != "" && defaultName != core.DefaultTargetName {
		if _, ok := r.targets[defaultName]; !ok {
			return nil, fmt.Errorf("default target '%s' is not configured", defaultName)
		}
	}

	return r, nil
}

func newTarget(cfg config.TargetConfig, logger *log.Logger) (Target, error) {
	switch cfg.Type {
	case "console":
		return NewConsoleTarget(cfg.Options, logger)
	case "file":
		return NewFileTarget(cfg.Options, logger)
	case "http":
		return NewHTTPTarget(cfg.Options, logger)
	case "tcp":
		return NewTCPTarget(cfg.Options, logger)
	default:
		return nil, fmt.Errorf("unknown target type: %s", cfg.Type)
	}
}

// Resolve returns the target an entry should be written to.
func (r *Router) Resolve(entry core.Entry) Target {
	if entry.Target != "" {
		if t, ok := r.targets[entry.Target]; ok {
			return t
		}
		r.logger.Debug("msg", "Entry references unknown target, using fallback",
			"component", "router",
			"target", entry.Target)
		return r.fallback
	}

	if t, ok := r.targets[r.defaultName]; ok {
		return t
	}
	return r.fallback
}

// Start starts all targets, fallback included.
func (r *Router) Start(ctx context.Context) error {
	if err := r.fallback.Start(ctx); err != nil {
		return err
	}
	for name, t := range r.targets {
		if err := t.Start(ctx); err != nil {
			return fmt.Errorf("failed to start target '%s': %w", name, err)
		}
	}
	return nil
}

// Stop stops all targets.
func (r *Router) Stop() {
	for _, t := range r.targets {
		t.Stop()
	}
	r.fallback.Stop()
}

// GetStats returns per-target statistics keyed by target name.
func (r *Router) GetStats() map[string]TargetStats {
	stats := make(map[string]TargetStats, len(r.targets))
	for name, t := range r.targets {
		stats[name] = t.GetStats()
	}
	return stats
}

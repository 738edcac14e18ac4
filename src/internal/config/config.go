// FILE: autolog/src/internal/config/config.go
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autolog/src/internal/core"

	lconfig "github.com/lixenwraith/config"
)

// Config is the root configuration for the method-logging pipeline.
type Config struct {
	// Lowest-precedence default: log every eligible method when no more
	// specific signal exists
	AutoIntercept bool `toml:"auto_intercept"`

	// Defaults applied when neither an annotation nor a service pattern
	// specifies otherwise
	DefaultLevel     string `toml:"default_level"`
	DefaultFormatter string `toml:"default_formatter"`
	DefaultTarget    string `toml:"default_target"`

	// Background queue tuning
	QueueSize         int64 `toml:"queue_size"`
	BatchSize         int64 `toml:"batch_size"`
	BatchWaitMs       int64 `toml:"batch_wait_ms"`
	ShutdownGraceMs   int64 `toml:"shutdown_grace_ms"`
	DispatchTimeoutMs int64 `toml:"dispatch_timeout_ms"`

	// Service-name patterns mapping to logging behavior
	Services []ServicePattern `toml:"services"`

	// Named output targets
	Targets []TargetConfig `toml:"targets"`

	// Named message templates
	Templates []TemplateConfig `toml:"templates"`

	// Diagnostic side-channel logger for the pipeline itself
	Logging *LogConfig `toml:"logging"`
}

func defaults() *Config {
	return &Config{
		AutoIntercept:     true,
		DefaultLevel:      "info",
		DefaultFormatter:  "text",
		DefaultTarget:     core.DefaultTargetName,
		QueueSize:         core.DefaultQueueSize,
		BatchSize:         core.DefaultBatchSize,
		BatchWaitMs:       core.DefaultBatchWait.Milliseconds(),
		ShutdownGraceMs:   core.DefaultShutdownGrace.Milliseconds(),
		DispatchTimeoutMs: core.DefaultDispatchTimeout.Milliseconds(),
		Targets: []TargetConfig{
			{Name: core.DefaultTargetName, Type: "console", Enabled: true},
		},
		Logging: DefaultLogConfig(),
	}
}

// Load builds the configuration from defaults, the config file, environment
// variables and CLI arguments, then merges any remote provider documents
// into the tree before scanning it into the typed struct.
func Load(ctx context.Context, cliArgs []string, providers ...Provider) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("AUTOLOG_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := ApplyProviders(ctx, cfg, providers...); err != nil {
		return nil, err
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.validate()
}

// GetConfigPath resolves the configuration file location.
func GetConfigPath() string {
	if configFile := os.Getenv("AUTOLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("AUTOLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("AUTOLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "autolog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "autolog.toml")
	}

	return "autolog.toml"
}

// BatchWait returns the worker's batch flush interval.
func (c *Config) BatchWait() time.Duration {
	return time.Duration(c.BatchWaitMs) * time.Millisecond
}

// ShutdownGrace returns the bounded drain period on shutdown.
func (c *Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceMs) * time.Millisecond
}

// DispatchTimeout returns the per-entry dispatch deadline.
func (c *Config) DispatchTimeout() time.Duration {
	return time.Duration(c.DispatchTimeoutMs) * time.Millisecond
}

// Template looks up a named template config, nil when absent.
func (c *Config) Template(name string) *TemplateConfig {
	for i := range c.Templates {
		if c.Templates[i].Name == name {
			return &c.Templates[i]
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.QueueSize < 1 {
		return fmt.Errorf("queue size must be positive: %d", c.QueueSize)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be positive: %d", c.BatchSize)
	}
	if c.BatchWaitMs < 1 {
		return fmt.Errorf("batch wait too small: %d ms", c.BatchWaitMs)
	}
	if c.ShutdownGraceMs < 0 {
		return fmt.Errorf("shutdown grace cannot be negative: %d ms", c.ShutdownGraceMs)
	}

	for i, svc := range c.Services {
		if err := validateServicePattern(i, &svc); err != nil {
			return err
		}
	}

	names := make(map[string]bool, len(c.Targets))
	for i, tgt := range c.Targets {
		if err := validateTarget(i, &tgt); err != nil {
			return err
		}
		if names[tgt.Name] {
			return fmt.Errorf("target[%d]: duplicate target name '%s'", i, tgt.Name)
		}
		names[tgt.Name] = true
	}

	for i, tpl := range c.Templates {
		if tpl.Name == "" {
			return fmt.Errorf("template[%d]: missing name", i)
		}
	}

	if c.Logging != nil {
		if err := validateLogConfig(c.Logging); err != nil {
			return err
		}
	}

	return nil
}

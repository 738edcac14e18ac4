// FILE: autolog/src/internal/format/format.go
package format

import (
	"fmt"

	"autolog/src/internal/config"
	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming an Entry into a byte slice.
type Formatter interface {
	// Format takes an Entry and returns the formatted log as a byte slice.
	Format(entry core.Entry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a new Formatter based on the provided configuration.
func New(name string, cfg *config.Config, logger *log.Logger) (Formatter, error) {
	// Default to text if no format specified
	if name == "" {
		name = "text"
	}

	switch name {
	case "text":
		return NewTextFormatter(logger), nil
	case "json":
		return NewJSONFormatter(logger), nil
	case "hybrid":
		return NewHybridFormatter(logger), nil
	case "template":
		return NewTemplateFormatter(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

// Registry holds the configured formatters and resolves the one to use for
// each entry: entry override > configured default > text.
type Registry struct {
	formatters  map[string]Formatter
	defaultName string
	logger      *log.Logger
}

// NewRegistry instantiates every built-in formatter over the configuration.
func NewRegistry(cfg *config.Config, logger *log.Logger) (*Registry, error) {
	r := &Registry{
		formatters:  make(map[string]Formatter, 4),
		defaultName: cfg.DefaultFormatter,
		logger:      logger,
	}
	if r.defaultName == "" {
		r.defaultName = "text"
	}

	for _, name := range []string{"text", "json", "hybrid", "template"} {
		f, err := New(name, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("formatter '%s': %w", name, err)
		}
		r.formatters[name] = f
	}

	if _, ok := r.formatters[r.defaultName]; !ok {
		return nil, fmt.Errorf("unknown default formatter: %s", r.defaultName)
	}

	return r, nil
}

// For resolves the formatter for an entry. Unknown overrides fall back to
// the default rather than failing the entry.
func (r *Registry) For(entry core.Entry) Formatter {
	if entry.Formatter != "" {
		if f, ok := r.formatters[entry.Formatter]; ok {
			return f
		}
		r.logger.Debug("msg", "Unknown formatter override, using default",
			"component", "format_registry",
			"formatter", entry.Formatter)
	}
	return r.formatters[r.defaultName]
}

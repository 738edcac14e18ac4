// FILE: autolog/src/internal/config/service.go
package config

import "fmt"

// ServicePattern maps a type-name pattern (exact or wildcard) to logging
// behavior. Patterns are matched against a service's full type name; the
// most specific match wins (exact beats wildcard, then longest literal
// prefix, then declaration order).
type ServicePattern struct {
	// Type-name pattern: exact or wildcard ("MyApp.Services.*")
	Pattern string `toml:"pattern"`

	// Logging mode: "input", "output", "both", "none"
	Mode string `toml:"mode"`

	// Entry level; malformed values fall back to info
	Level string `toml:"level"`

	// Level for failure entries; defaults to error
	ErrorLevel string `toml:"error_level"`

	// Method-name patterns excluded from this pattern's behavior,
	// evaluated as exact / prefix* / *suffix / *contains*
	ExcludeMethodPatterns []string `toml:"exclude_method_patterns"`

	// Routing overrides; empty defers to the global defaults
	Target    string `toml:"target"`
	Formatter string `toml:"formatter"`
	Template  string `toml:"template"`

	// Masking rules applied to logged data
	MaskParameterPatterns []string `toml:"mask_parameter_patterns"`
	MaskPropertyPatterns  []string `toml:"mask_property_patterns"`
	MaskOutputPatterns    []string `toml:"mask_output_patterns"`
	MaskReplacement       string   `toml:"mask_replacement"`
}

func validateServicePattern(index int, cfg *ServicePattern) error {
	if cfg.Pattern == "" {
		return fmt.Errorf("service[%d]: missing pattern", index)
	}

	switch cfg.Mode {
	case "", "input", "output", "both", "none":
	default:
		return fmt.Errorf("service[%d]: unknown mode '%s'", index, cfg.Mode)
	}

	return nil
}

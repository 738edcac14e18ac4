// FILE: autolog/src/internal/mask/mask.go
package mask

import (
	"reflect"

	"autolog/src/internal/core"
	"autolog/src/internal/pattern"

	"github.com/lixenwraith/log"
)

// maxDepth bounds reflection recursion so cyclic values terminate.
const maxDepth = 8

// RuleSet is a decision's effective masking configuration.
type RuleSet struct {
	// Patterns matched against scalar parameter names
	ParameterPatterns []string

	// Patterns matched against struct field / map key names
	PropertyPatterns []string

	// Patterns matched against field names in return values
	OutputPatterns []string

	// Replacement text; empty uses the global default
	Replacement string
}

// Empty reports whether the rule set can never mask anything.
func (r RuleSet) Empty() bool {
	return len(r.ParameterPatterns) == 0 &&
		len(r.PropertyPatterns) == 0 &&
		len(r.OutputPatterns) == 0
}

func (r RuleSet) replacement() string {
	if r.Replacement == "" {
		return core.DefaultMaskReplacement
	}
	return r.Replacement
}

// Replacer marks a type whose logged representation is always a fixed
// replacement, regardless of any pattern rules. The type-level analog of a
// mask annotation.
type Replacer interface {
	MaskReplacement() string
}

// Engine produces redacted copies of values before they are serialized
// into log entries. A masking failure degrades to the unmasked original;
// it never fails the monitored call.
type Engine struct {
	logger *log.Logger
}

// NewEngine creates a masking engine.
func NewEngine(logger *log.Logger) *Engine {
	return &Engine{logger: logger}
}

// Parameter masks a single call argument. The parameter's own name is
// checked first; complex values then get property-level masking.
func (e *Engine) Parameter(name string, v any, rules RuleSet) any {
	if r, ok := v.(Replacer); ok {
		return r.MaskReplacement()
	}
	if pattern.MatchesAnyFold(rules.ParameterPatterns, name) {
		return rules.replacement()
	}
	return e.mask(v, rules.PropertyPatterns, rules.replacement())
}

// Value masks a complex value using the property patterns.
func (e *Engine) Value(v any, rules RuleSet) any {
	return e.mask(v, rules.PropertyPatterns, rules.replacement())
}

// Output masks a return value using the output patterns.
func (e *Engine) Output(v any, rules RuleSet) any {
	return e.mask(v, rules.OutputPatterns, rules.replacement())
}

func (e *Engine) mask(v any, patterns []string, replacement string) (out any) {
	if v == nil {
		return nil
	}
	if r, ok := v.(Replacer); ok {
		return r.MaskReplacement()
	}

	// Reflection over arbitrary caller types can trip on unexported or
	// exotic values; fall back to the original rather than failing the call.
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Debug("msg", "Masking failed, logging unmasked value",
					"component", "mask",
					"panic", r)
			}
			out = v
		}
	}()

	return maskValue(reflect.ValueOf(v), patterns, replacement, 0)
}

func maskValue(rv reflect.Value, patterns []string, replacement string, depth int) any {
	if depth > maxDepth {
		return nil
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		// Pointer-receiver Replacer implementations satisfy the interface
		// only before dereferencing
		if rep, ok := replacerFor(rv); ok {
			return rep
		}
		return maskValue(rv.Elem(), patterns, replacement, depth+1)

	case reflect.Struct:
		if rep, ok := replacerFor(rv); ok {
			return rep
		}
		t := rv.Type()
		out := make(map[string]any, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			if tag, ok := field.Tag.Lookup("mask"); ok {
				if tag == "" {
					out[field.Name] = replacement
				} else {
					out[field.Name] = tag
				}
				continue
			}
			if pattern.MatchesAnyFold(patterns, field.Name) {
				out[field.Name] = replacement
				continue
			}
			out[field.Name] = maskValue(rv.Field(i), patterns, replacement, depth+1)
		}
		return out

	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			if key.Kind() != reflect.String {
				// Non-string keys carry no name to match; pass through
				return rv.Interface()
			}
			name := key.String()
			if pattern.MatchesAnyFold(patterns, name) {
				out[name] = replacement
				continue
			}
			out[name] = maskValue(iter.Value(), patterns, replacement, depth+1)
		}
		return out

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		// []byte stays opaque
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface()
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = maskValue(rv.Index(i), patterns, replacement, depth+1)
		}
		return out

	default:
		return rv.Interface()
	}
}

func replacerFor(rv reflect.Value) (string, bool) {
	if !rv.CanInterface() {
		return "", false
	}
	if r, ok := rv.Interface().(Replacer); ok {
		return r.MaskReplacement(), true
	}
	return "", false
}

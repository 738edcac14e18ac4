// FILE: autolog/src/internal/decision/cache.go
package decision

import (
	"reflect"
	"strings"
	"sync"

	"autolog/src/internal/config"
	"autolog/src/internal/core"
	"autolog/src/internal/mask"
	"autolog/src/internal/pattern"

	"github.com/lixenwraith/log"
)

// Cache precomputes and stores the logging decision for every method of a
// registered type. Population happens once per type at composition time;
// lookups on the interception hot path are read-only map access.
type Cache struct {
	cfg    *config.Config
	logger *log.Logger

	mu        sync.RWMutex
	decisions map[string]map[string]Decision

	// Pattern list extracted once so BestMatch runs over a plain slice
	patterns []string

	defaultLevel core.Level
}

// NewCache creates a decision cache over the loaded configuration.
func NewCache(cfg *config.Config, logger *log.Logger) *Cache {
	patterns := make([]string, len(cfg.Services))
	for i := range cfg.Services {
		patterns[i] = cfg.Services[i].Pattern
	}

	return &Cache{
		cfg:          cfg,
		logger:       logger,
		decisions:    make(map[string]map[string]Decision),
		patterns:     patterns,
		defaultLevel: core.ParseLevel(cfg.DefaultLevel),
	}
}

// TypeName produces the full name used for pattern matching: the import
// path joined to the type name with dots, pointer indirection stripped.
func TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return strings.ReplaceAll(t.PkgPath(), "/", ".") + "." + t.Name()
}

// CacheType computes decisions for every exported method of the instance's
// type. Idempotent; the first computation wins for the process lifetime.
func (c *Cache) CacheType(instance any, ann *Annotations) {
	t := reflect.TypeOf(instance)
	if t == nil {
		return
	}
	methods := make([]string, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		methods = append(methods, t.Method(i).Name)
	}
	c.CacheMethods(TypeName(t), methods, ann)
}

// CacheMethods computes decisions for an explicit method list, the entry
// point for scanners that discover candidate types externally.
func (c *Cache) CacheMethods(typeName string, methods []string, ann *Annotations) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.decisions[typeName]; exists {
		return
	}

	// Zero methods is a valid no-op registration
	set := make(map[string]Decision, len(methods))
	for _, m := range methods {
		set[m] = c.resolve(typeName, m, ann)
	}
	c.decisions[typeName] = set

	c.logger.Debug("msg", "Type decisions cached",
		"component", "decision_cache",
		"type", typeName,
		"method_count", len(methods))
}

// Get returns the decision for a (type, method) pair. Unknown types and
// methods yield the disabled decision: fail safe, not fail loud.
func (c *Cache) Get(typeName, method string) Decision {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set, ok := c.decisions[typeName]
	if !ok {
		return Disabled
	}
	d, ok := set[method]
	if !ok {
		return Disabled
	}
	return d
}

// resolve applies the precedence algorithm for one method:
// method marker > class marker > exact config pattern > wildcard config
// pattern > auto-intercept default > disabled.
func (c *Cache) resolve(typeName, method string, ann *Annotations) Decision {
	// Pattern-declared mask rules apply to whichever tier wins, so the
	// matching service pattern is looked up first.
	matched := c.matchedPattern(typeName)

	if m := ann.Method(method); m != nil {
		if m.NoLog {
			return Disabled
		}
		if m.Mode != core.ModeNone {
			return c.fromMarker(m, matched)
		}
	}

	if ann != nil {
		if ann.Type != nil && ann.Type.NoLog {
			return Disabled
		}
		if pattern.MatchesAny(ann.ExcludeMethodPatterns, method) {
			return Disabled
		}
		if ann.Type != nil && ann.Type.Mode != core.ModeNone {
			return c.fromMarker(ann.Type, matched)
		}
	}

	if matched != nil {
		if pattern.MatchesAny(matched.ExcludeMethodPatterns, method) {
			return Disabled
		}
		return c.fromPattern(matched)
	}

	if c.cfg.AutoIntercept && (ann == nil || (!ann.NoAuto && !ann.Manual)) {
		return Decision{
			Mode:       core.ModeInput,
			Level:      core.LevelInfo,
			ErrorLevel: core.LevelError,
		}
	}

	return Disabled
}

func (c *Cache) matchedPattern(typeName string) *config.ServicePattern {
	idx := pattern.BestMatch(c.patterns, typeName)
	if idx < 0 {
		return nil
	}
	return &c.cfg.Services[idx]
}

func (c *Cache) fromMarker(m *Marker, matched *config.ServicePattern) Decision {
	d := Decision{
		Mode:       m.Mode,
		Level:      c.defaultLevel,
		ErrorLevel: core.LevelError,
		Target:     m.Target,
		Formatter:  m.Formatter,
		Template:   m.Template,
		Mask:       maskRules(matched),
	}
	if m.Level != nil {
		d.Level = *m.Level
	}
	if m.ErrorLevel != nil {
		d.ErrorLevel = *m.ErrorLevel
	}

	// Marker silent on routing: inherit the pattern's routing if one matched
	if matched != nil {
		if d.Target == "" {
			d.Target = matched.Target
		}
		if d.Formatter == "" {
			d.Formatter = matched.Formatter
		}
		if d.Template == "" {
			d.Template = matched.Template
		}
	}
	return d
}

func (c *Cache) fromPattern(p *config.ServicePattern) Decision {
	mode := core.ModeInput
	if p.Mode != "" {
		mode = core.ParseMode(p.Mode)
	}

	level := c.defaultLevel
	if p.Level != "" {
		level = core.ParseLevel(p.Level)
	}

	errorLevel := core.LevelError
	if p.ErrorLevel != "" {
		errorLevel = core.ParseLevel(p.ErrorLevel)
	}

	return Decision{
		Mode:       mode,
		Level:      level,
		ErrorLevel: errorLevel,
		Target:     p.Target,
		Formatter:  p.Formatter,
		Template:   p.Template,
		Mask:       maskRules(p),
	}
}

func maskRules(p *config.ServicePattern) mask.RuleSet {
	if p == nil {
		return mask.RuleSet{}
	}
	return mask.RuleSet{
		ParameterPatterns: p.MaskParameterPatterns,
		PropertyPatterns:  p.MaskPropertyPatterns,
		OutputPatterns:    p.MaskOutputPatterns,
		Replacement:       p.MaskReplacement,
	}
}

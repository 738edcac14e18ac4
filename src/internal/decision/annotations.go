// FILE: autolog/src/internal/decision/annotations.go
package decision

import "autolog/src/internal/core"

// Marker is a declarative logging directive attached to a type or a single
// method at registration time. Go has no runtime attributes, so markers are
// supplied explicitly when a service is registered; the decision engine
// treats them exactly as it would an annotation read off the type.
type Marker struct {
	// NoLog disables logging absolutely, short-circuiting every
	// lower-precedence source
	NoLog bool

	Mode core.Mode

	// nil means not specified; the effective value comes from lower tiers
	Level      *core.Level
	ErrorLevel *core.Level

	Target    string
	Formatter string
	Template  string
}

// Annotations collects the markers declared for one registered type.
type Annotations struct {
	// Class-level marker inherited by all methods not otherwise covered
	Type *Marker

	// Per-method markers, highest precedence
	Methods map[string]*Marker

	// Excludes the type from the auto-intercept default
	NoAuto bool

	// Marks a type that logs through the manual API; excluded from
	// auto-interception like a constructor-injected manual logger
	Manual bool

	// Method-name patterns excluded from the class-level marker
	ExcludeMethodPatterns []string
}

// Method returns the marker for a method name, nil when absent.
func (a *Annotations) Method(name string) *Marker {
	if a == nil || a.Methods == nil {
		return nil
	}
	return a.Methods[name]
}

// SetMethod records a per-method marker, allocating the map lazily.
func (a *Annotations) SetMethod(name string, m *Marker) {
	if a.Methods == nil {
		a.Methods = make(map[string]*Marker)
	}
	a.Methods[name] = m
}

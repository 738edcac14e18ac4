// FILE: autolog/src/internal/service/register.go
package service

import (
	"autolog/src/internal/core"
	"autolog/src/internal/decision"
)

// RegisterOption declares logging markers for a type at registration
// time, the Go stand-in for source-level annotations.
type RegisterOption func(*decision.Annotations)

// WithTypeMarker sets the class-level marker.
func WithTypeMarker(m decision.Marker) RegisterOption {
	return func(a *decision.Annotations) {
		marker := m
		a.Type = &marker
	}
}

// WithMethodMarker sets a marker for one method, overriding the class
// marker and any config pattern.
func WithMethodMarker(method string, m decision.Marker) RegisterOption {
	return func(a *decision.Annotations) {
		marker := m
		a.SetMethod(method, &marker)
	}
}

// WithNoLog excludes named methods from logging entirely.
func WithNoLog(methods ...string) RegisterOption {
	return func(a *decision.Annotations) {
		for _, method := range methods {
			a.SetMethod(method, &decision.Marker{NoLog: true})
		}
	}
}

// WithMode enables interception for the whole type at the given mode.
func WithMode(mode core.Mode) RegisterOption {
	return func(a *decision.Annotations) {
		if a.Type == nil {
			a.Type = &decision.Marker{}
		}
		a.Type.Mode = mode
	}
}

// WithExcludedMethods excludes methods matching the patterns from the
// class-level marker.
func WithExcludedMethods(patterns ...string) RegisterOption {
	return func(a *decision.Annotations) {
		a.ExcludeMethodPatterns = append(a.ExcludeMethodPatterns, patterns...)
	}
}

// WithoutAutoIntercept opts the type out of the global auto default;
// config patterns and markers still apply.
func WithoutAutoIntercept() RegisterOption {
	return func(a *decision.Annotations) {
		a.NoAuto = true
	}
}

// WithManualOnly marks the type as manual-API only: no automatic
// interception at any tier short of an explicit marker or pattern.
func WithManualOnly() RegisterOption {
	return func(a *decision.Annotations) {
		a.Manual = true
	}
}

// Register precomputes decisions for every exported method of the
// instance's type. Must be called before the first intercepted call;
// unregistered types resolve to disabled.
func (s *Service) Register(instance any, opts ...RegisterOption) {
	ann := &decision.Annotations{}
	for _, opt := range opts {
		opt(ann)
	}
	s.decisions.CacheType(instance, ann)
}

// RegisterMethods precomputes decisions for an explicit method list
// under an explicit type name, for callers that manage discovery
// themselves.
func (s *Service) RegisterMethods(typeName string, methods []string, opts ...RegisterOption) {
	ann := &decision.Annotations{}
	for _, opt := range opts {
		opt(ann)
	}
	s.decisions.CacheMethods(typeName, methods, ann)
}

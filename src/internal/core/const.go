// FILE: autolog/src/internal/core/const.go
package core

import "time"

// Pipeline defaults, overridable through configuration
const (
	DefaultQueueSize       = 8192
	DefaultBatchSize       = 100
	DefaultBatchWait       = 200 * time.Millisecond
	DefaultShutdownGrace   = 5 * time.Second
	DefaultDispatchTimeout = 2 * time.Second
)

// DefaultMaskReplacement substitutes masked values when no replacement
// text is configured
const DefaultMaskReplacement = "***"

// DefaultTargetName is the built-in fallback target
const DefaultTargetName = "console"

// FILE: autolog/src/internal/decision/decision.go
package decision

import (
	"autolog/src/internal/core"
	"autolog/src/internal/mask"
)

// Decision is the precomputed logging policy for one method: what to log,
// at what level, where to send it, and which masking rules apply. Decisions
// are immutable once cached.
type Decision struct {
	Mode       core.Mode
	Level      core.Level
	ErrorLevel core.Level

	// Empty values defer to the global defaults at dispatch time
	Target    string
	Formatter string
	Template  string

	Mask mask.RuleSet
}

// Disabled is the do-not-log decision, returned for unknown types and for
// methods excluded at any precedence tier.
var Disabled = Decision{Mode: core.ModeNone, Level: core.LevelInfo, ErrorLevel: core.LevelError}

// Enabled reports whether an intercepted call should produce an entry.
func (d Decision) Enabled() bool {
	return d.Mode != core.ModeNone
}

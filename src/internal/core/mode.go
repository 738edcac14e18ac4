// FILE: autolog/src/internal/core/mode.go
package core

import "strings"

// Mode selects what an intercepted call records.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeInput
	ModeOutput
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeOutput:
		return "output"
	case ModeBoth:
		return "both"
	default:
		return "none"
	}
}

// LogsInput reports whether the mode captures call arguments.
func (m Mode) LogsInput() bool {
	return m == ModeInput || m == ModeBoth
}

// LogsOutput reports whether the mode captures the return value.
func (m Mode) LogsOutput() bool {
	return m == ModeOutput || m == ModeBoth
}

// ParseMode converts a configured mode string to a Mode.
// Unknown strings fall back to ModeInput, the auto-intercept default.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "disabled":
		return ModeNone
	case "input", "loginput":
		return ModeInput
	case "output", "logoutput":
		return ModeOutput
	case "both", "logboth":
		return ModeBoth
	default:
		return ModeInput
	}
}

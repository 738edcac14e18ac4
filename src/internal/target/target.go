// FILE: autolog/src/internal/target/target.go
package target

import (
	"context"
	"time"

	"autolog/src/internal/core"
)

// Target represents an output destination for formatted log entries.
// Writes are synchronous: the background worker is the single consumer, so
// targets need no internal queueing.
type Target interface {
	// Start prepares the target for writes
	Start(ctx context.Context) error

	// Write delivers one formatted entry
	Write(entry core.Entry, formatted []byte) error

	// Stop gracefully shuts down the target
	Stop()

	// GetStats returns target statistics
	GetStats() TargetStats
}

// TargetStats contains statistics about a target
type TargetStats struct {
	Type         string
	TotalWritten uint64
	TotalFailed  uint64
	StartTime    time.Time
	LastWrite    time.Time
	Details      map[string]any
}

// Helper functions for option bag type conversion
func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// FILE: autolog/src/internal/format/json.go
package format

import (
	"fmt"
	"time"

	"autolog/src/internal/core"

	"github.com/goccy/go-json"
	"github.com/lixenwraith/log"
)

// JSONFormatter produces structured JSON objects from entries.
type JSONFormatter struct {
	logger *log.Logger
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(logger *log.Logger) *JSONFormatter {
	return &JSONFormatter{logger: logger}
}

// Format transforms a single entry into a JSON byte slice.
func (f *JSONFormatter) Format(entry core.Entry) ([]byte, error) {
	output := map[string]any{
		"id":        entry.ID,
		"timestamp": entry.Timestamp().Format(time.RFC3339Nano),
		"level":     entry.EffectiveLevel().String(),
		"type":      entry.TypeName,
		"method":    entry.Method,
		"goroutine": entry.GoroutineID,
	}

	if entry.Completed {
		output["duration_ms"] = float64(entry.Duration) / float64(time.Millisecond)
		output["success"] = entry.Success
	}
	if entry.ErrorType != "" {
		output["error_type"] = entry.ErrorType
		output["error"] = entry.ErrorMessage
	}
	if entry.StackTrace != "" {
		output["stack_trace"] = entry.StackTrace
	}
	if len(entry.Input) > 0 {
		output["input"] = json.RawMessage(entry.Input)
	}
	if len(entry.Output) > 0 {
		output["output"] = json.RawMessage(entry.Output)
	}
	if entry.TraceID != "" {
		output["trace_id"] = entry.TraceID
	}

	result, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

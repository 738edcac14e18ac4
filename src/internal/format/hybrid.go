// FILE: autolog/src/internal/format/hybrid.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"autolog/src/internal/core"

	"github.com/goccy/go-json"
	"github.com/lixenwraith/log"
)

// HybridFormatter renders a human-readable header followed by a JSON
// payload with the structured data, useful when logs are read by people
// first and machines second.
type HybridFormatter struct {
	logger *log.Logger
}

// NewHybridFormatter creates a new hybrid formatter.
func NewHybridFormatter(logger *log.Logger) *HybridFormatter {
	return &HybridFormatter{logger: logger}
}

// Format renders "[ts] [LEVEL] type.method (duration) | {payload}".
func (f *HybridFormatter) Format(entry core.Entry) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "[%s] [%s] %s.%s",
		entry.Timestamp().Format(time.RFC3339),
		strings.ToUpper(entry.EffectiveLevel().String()),
		entry.TypeName,
		entry.Method)

	if entry.Completed {
		fmt.Fprintf(&buf, " (%s)", entry.Duration)
	}

	payload := make(map[string]any, 6)
	if entry.Completed {
		payload["success"] = entry.Success
	}
	if entry.ErrorType != "" {
		payload["error_type"] = entry.ErrorType
		payload["error"] = entry.ErrorMessage
	}
	if len(entry.Input) > 0 {
		payload["input"] = json.RawMessage(entry.Input)
	}
	if len(entry.Output) > 0 {
		payload["output"] = json.RawMessage(entry.Output)
	}
	if entry.TraceID != "" {
		payload["trace_id"] = entry.TraceID
	}

	if len(payload) > 0 {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal hybrid payload: %w", err)
		}
		buf.WriteString(" | ")
		buf.Write(data)
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Name returns the formatter's type name.
func (f *HybridFormatter) Name() string {
	return "hybrid"
}

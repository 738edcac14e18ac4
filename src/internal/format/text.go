// FILE: autolog/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// TextFormatter produces a structured key=value line per entry.
type TextFormatter struct {
	logger *log.Logger
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(logger *log.Logger) *TextFormatter {
	return &TextFormatter{logger: logger}
}

// Format renders the entry as a single key=value line.
func (f *TextFormatter) Format(entry core.Entry) ([]byte, error) {
	var buf bytes.Buffer

	writePair(&buf, "ts", entry.Timestamp().Format(time.RFC3339Nano))
	writePair(&buf, "level", entry.EffectiveLevel().String())
	writePair(&buf, "type", entry.TypeName)
	writePair(&buf, "method", entry.Method)

	if entry.Completed {
		writePair(&buf, "duration", entry.Duration.String())
		writePair(&buf, "success", strconv.FormatBool(entry.Success))
	}
	if entry.ErrorType != "" {
		writePair(&buf, "error_type", entry.ErrorType)
		writePair(&buf, "error", strconv.Quote(entry.ErrorMessage))
	}
	if len(entry.Input) > 0 {
		writePair(&buf, "input", string(entry.Input))
	}
	if len(entry.Output) > 0 {
		writePair(&buf, "output", string(entry.Output))
	}
	if entry.TraceID != "" {
		writePair(&buf, "trace_id", entry.TraceID)
	}
	writePair(&buf, "goroutine", strconv.FormatUint(entry.GoroutineID, 10))
	writePair(&buf, "id", entry.ID)

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Name returns the formatter's type name.
func (f *TextFormatter) Name() string {
	return "text"
}

func writePair(buf *bytes.Buffer, key, value string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
	fmt.Fprintf(buf, "%s=%s", key, value)
}

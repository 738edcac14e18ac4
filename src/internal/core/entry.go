// FILE: autolog/src/internal/core/entry.go
package core

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Entry captures one method invocation's lifecycle as it flows through the
// pipeline. Entries are values: StartEntry creates one, the With* methods
// derive extended copies, nothing mutates in place. That keeps construction
// safe when a call's completion lands on a different goroutine than its
// start.
type Entry struct {
	ID       string
	TypeName string
	Method   string

	// Start carries Go's monotonic clock reading; wall-clock time is
	// derived on read, never stored separately, so long-running calls
	// are immune to wall-clock adjustments.
	Start time.Time

	Completed bool
	Duration  time.Duration

	Success      bool
	ErrorType    string
	ErrorMessage string
	StackTrace   string

	Input  json.RawMessage
	Output json.RawMessage

	Level      Level
	ErrorLevel Level

	Target    string
	Formatter string
	Template  string

	GoroutineID uint64
	TraceID     string
}

// StartEntry creates an in-flight entry for a method invocation.
func StartEntry(typeName, method string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		TypeName:    typeName,
		Method:      method,
		Start:       time.Now(),
		Level:       LevelInfo,
		ErrorLevel:  LevelError,
		GoroutineID: goroutineID(),
	}
}

// Timestamp returns the wall-clock time of the entry's creation.
func (e Entry) Timestamp() time.Time {
	return e.Start.Round(0)
}

// Elapsed returns time since the entry started, from the monotonic clock.
func (e Entry) Elapsed() time.Duration {
	return time.Since(e.Start)
}

// WithInput attaches a serialized input snapshot.
func (e Entry) WithInput(input json.RawMessage) Entry {
	e.Input = input
	return e
}

// WithOutput attaches a serialized output snapshot.
func (e Entry) WithOutput(output json.RawMessage) Entry {
	e.Output = output
	return e
}

// WithCompletion marks the entry completed, computing its duration from the
// monotonic clock. On failure err populates the exception fields.
func (e Entry) WithCompletion(success bool, err error) Entry {
	e.Completed = true
	e.Duration = time.Since(e.Start)
	e.Success = success
	if err != nil {
		e.ErrorType = fmt.Sprintf("%T", err)
		e.ErrorMessage = err.Error()
	}
	return e
}

// WithStackTrace attaches a captured stack, used on panic paths.
func (e Entry) WithStackTrace(stack string) Entry {
	e.StackTrace = stack
	return e
}

// WithLevel overrides the entry's log level.
func (e Entry) WithLevel(level Level) Entry {
	e.Level = level
	return e
}

// WithErrorLevel overrides the level used when the entry records a failure.
func (e Entry) WithErrorLevel(level Level) Entry {
	e.ErrorLevel = level
	return e
}

// WithTarget routes the entry to a named target.
func (e Entry) WithTarget(target string) Entry {
	e.Target = target
	return e
}

// WithFormatter selects a formatter by name for this entry.
func (e Entry) WithFormatter(name string) Entry {
	e.Formatter = name
	return e
}

// WithTemplate selects a named message template for this entry.
func (e Entry) WithTemplate(name string) Entry {
	e.Template = name
	return e
}

// WithTraceID attaches a distributed-trace correlation id.
func (e Entry) WithTraceID(id string) Entry {
	e.TraceID = id
	return e
}

// EffectiveLevel returns the level the entry should be emitted at. Failure
// entries use the exception level.
func (e Entry) EffectiveLevel() Level {
	if e.Completed && !e.Success {
		return e.ErrorLevel
	}
	return e.Level
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID extracts the current goroutine's id from the runtime stack
// header. It stands in for a thread id in entries; diagnostic only, never
// used for control flow.
func goroutineID() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(b[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

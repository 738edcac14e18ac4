// FILE: autolog/src/internal/service/manual.go
package service

import (
	"context"

	"autolog/src/internal/core"

	"github.com/goccy/go-json"
)

// Manual logging API for call sites that opt out of interception but
// still want entries in the same pipeline.

// Begin starts a manual entry for a logical operation. The returned
// entry carries the context's trace id when one is present; complete it
// with the With* derivations and hand it to Log.
func (s *Service) Begin(ctx context.Context, typeName, operation string) core.Entry {
	entry := core.StartEntry(typeName, operation)
	if trace := core.TraceIDFromContext(ctx); trace != "" {
		entry = entry.WithTraceID(trace)
	}
	return entry
}

// Log enqueues a manually built entry. Like intercepted entries it never
// blocks; a full queue drops the entry.
func (s *Service) Log(entry core.Entry) bool {
	return s.queue.Enqueue(entry)
}

// Capture serializes a value for use with Entry.WithInput or WithOutput,
// applying the masking rules cached for the entry's method.
func (s *Service) Capture(entry core.Entry, v any) (json.RawMessage, error) {
	d := s.decisions.Get(entry.TypeName, entry.Method)
	masked := s.masker.Value(v, d.Mask)
	return json.Marshal(masked)
}

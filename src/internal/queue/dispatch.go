// FILE: autolog/src/internal/queue/dispatch.go
package queue

import (
	"fmt"

	"autolog/src/internal/core"
	"autolog/src/internal/format"
	"autolog/src/internal/target"
)

// PipelineDispatcher glues the formatter registry to the target router:
// format the entry with its resolved formatter, write it to its resolved
// target.
type PipelineDispatcher struct {
	formats *format.Registry
	router  *target.Router
}

// NewDispatcher creates the standard formatter-to-target dispatcher.
func NewDispatcher(formats *format.Registry, router *target.Router) *PipelineDispatcher {
	return &PipelineDispatcher{
		formats: formats,
		router:  router,
	}
}

func (d *PipelineDispatcher) Dispatch(entry core.Entry) error {
	formatter := d.formats.For(entry)

	data, err := formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("formatting with '%s' failed: %w", formatter.Name(), err)
	}

	if err := d.router.Resolve(entry).Write(entry, data); err != nil {
		return fmt.Errorf("target write failed: %w", err)
	}
	return nil
}

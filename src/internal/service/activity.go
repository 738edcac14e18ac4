// FILE: autolog/src/internal/service/activity.go
package service

import (
	"context"
	"sync"

	"autolog/src/internal/core"

	"github.com/google/uuid"
)

// StartActivity opens a correlation scope: the returned context carries
// a fresh trace id that every entry logged beneath it inherits, and the
// release func logs the scope's own completion entry. Release is safe to
// call exactly once on any exit path, normal or panicking.
func (s *Service) StartActivity(ctx context.Context, name string) (context.Context, func(err error)) {
	traceID := uuid.NewString()
	actCtx := core.ContextWithTraceID(ctx, traceID)

	entry := core.StartEntry("activity", name).WithTraceID(traceID)

	var once sync.Once
	release := func(err error) {
		once.Do(func() {
			s.queue.Enqueue(entry.WithCompletion(err == nil, err))
		})
	}

	return actCtx, release
}

// TimeOperation logs fn as a single manual entry, a convenience over
// Begin/Log for simple timed blocks.
func (s *Service) TimeOperation(ctx context.Context, typeName, operation string, fn func(context.Context) error) error {
	entry := s.Begin(ctx, typeName, operation)
	err := fn(ctx)
	s.Log(entry.WithCompletion(err == nil, err))
	return err
}

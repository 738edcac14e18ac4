// FILE: autolog/src/internal/intercept/intercept.go
package intercept

import (
	"context"
	"fmt"
	"runtime/debug"

	"autolog/src/internal/core"
	"autolog/src/internal/decision"
	"autolog/src/internal/mask"
	"autolog/src/internal/queue"

	"github.com/goccy/go-json"
	"github.com/lixenwraith/log"
)

// Arg is a named call argument captured for input logging.
type Arg struct {
	Name  string
	Value any
}

// Interceptor turns method calls into log entries. It is pure
// side-effect: return values and errors pass through unchanged, panics
// are re-raised, and a full queue silently drops the entry. The
// monitored call can never fail because of logging.
type Interceptor struct {
	decisions *decision.Cache
	masker    *mask.Engine
	queue     *queue.Queue
	logger    *log.Logger
}

// New creates an interceptor over a decision cache and queue.
func New(decisions *decision.Cache, masker *mask.Engine, q *queue.Queue, logger *log.Logger) *Interceptor {
	return &Interceptor{
		decisions: decisions,
		masker:    masker,
		queue:     q,
		logger:    logger,
	}
}

// Decision exposes the cached policy for a method, mainly for hosts that
// want to skip argument capture entirely for disabled methods.
func (i *Interceptor) Decision(typeName, method string) decision.Decision {
	return i.decisions.Get(typeName, method)
}

// begin builds the entry for an intercepted call, capturing masked input
// when the decision asks for it.
func (i *Interceptor) begin(ctx context.Context, typeName, method string, d decision.Decision, args []Arg) core.Entry {
	entry := core.StartEntry(typeName, method).
		WithLevel(d.Level).
		WithErrorLevel(d.ErrorLevel)

	if d.Target != "" {
		entry = entry.WithTarget(d.Target)
	}
	if d.Formatter != "" {
		entry = entry.WithFormatter(d.Formatter)
	}
	if d.Template != "" {
		entry = entry.WithTemplate(d.Template)
	}
	if trace := core.TraceIDFromContext(ctx); trace != "" {
		entry = entry.WithTraceID(trace)
	}

	if d.Mode.LogsInput() && len(args) > 0 {
		input := make(map[string]any, len(args))
		for _, arg := range args {
			input[arg.Name] = i.masker.Parameter(arg.Name, arg.Value, d.Mask)
		}
		if raw, ok := i.serialize(typeName, method, input); ok {
			entry = entry.WithInput(raw)
		}
	}

	return entry
}

// finish completes the entry and enqueues it.
func (i *Interceptor) finish(entry core.Entry, d decision.Decision, output any, hasOutput bool, callErr error) {
	entry = entry.WithCompletion(callErr == nil, callErr)

	if callErr == nil && hasOutput && d.Mode.LogsOutput() {
		masked := i.masker.Output(output, d.Mask)
		if raw, ok := i.serialize(entry.TypeName, entry.Method, masked); ok {
			entry = entry.WithOutput(raw)
		}
	}

	i.queue.Enqueue(entry)
}

// finishPanic records a failure entry for a panicking call. The caller
// re-raises the panic value unchanged.
func (i *Interceptor) finishPanic(entry core.Entry, recovered any) {
	entry = entry.
		WithCompletion(false, fmt.Errorf("panic: %v", recovered)).
		WithStackTrace(string(debug.Stack()))

	i.queue.Enqueue(entry)
}

// serialize marshals a captured value. Serialization failures degrade to
// an entry without that payload.
func (i *Interceptor) serialize(typeName, method string, v any) (json.RawMessage, bool) {
	raw, err := json.Marshal(v)
	if err != nil {
		i.logger.Debug("msg", "Failed to serialize captured value",
			"component", "interceptor",
			"type", typeName,
			"method", method,
			"error", err)
		return nil, false
	}
	return raw, true
}

// Do wraps a call with no results beyond its error.
func Do(ctx context.Context, i *Interceptor, typeName, method string, args []Arg, fn func(context.Context) error) error {
	d := i.decisions.Get(typeName, method)
	if !d.Enabled() {
		return fn(ctx)
	}

	entry := i.begin(ctx, typeName, method, d, args)
	defer func() {
		if r := recover(); r != nil {
			i.finishPanic(entry, r)
			panic(r)
		}
	}()

	err := fn(ctx)
	i.finish(entry, d, nil, false, err)
	return err
}

// Do1 wraps a call with one result.
func Do1[T any](ctx context.Context, i *Interceptor, typeName, method string, args []Arg, fn func(context.Context) (T, error)) (T, error) {
	d := i.decisions.Get(typeName, method)
	if !d.Enabled() {
		return fn(ctx)
	}

	entry := i.begin(ctx, typeName, method, d, args)
	defer func() {
		if r := recover(); r != nil {
			i.finishPanic(entry, r)
			panic(r)
		}
	}()

	out, err := fn(ctx)
	i.finish(entry, d, out, true, err)
	return out, err
}

// Do2 wraps a call with two results.
func Do2[T1, T2 any](ctx context.Context, i *Interceptor, typeName, method string, args []Arg, fn func(context.Context) (T1, T2, error)) (T1, T2, error) {
	d := i.decisions.Get(typeName, method)
	if !d.Enabled() {
		return fn(ctx)
	}

	entry := i.begin(ctx, typeName, method, d, args)
	defer func() {
		if r := recover(); r != nil {
			i.finishPanic(entry, r)
			panic(r)
		}
	}()

	out1, out2, err := fn(ctx)
	i.finish(entry, d, []any{out1, out2}, true, err)
	return out1, out2, err
}

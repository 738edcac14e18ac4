// FILE: autolog/src/internal/intercept/intercept_test.go
package intercept

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"autolog/src/internal/config"
	"autolog/src/internal/core"
	"autolog/src/internal/decision"
	"autolog/src/internal/mask"
	"autolog/src/internal/metrics"
	"autolog/src/internal/queue"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureDispatcher struct {
	mu      sync.Mutex
	entries []core.Entry
}

func (d *captureDispatcher) Dispatch(entry core.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, entry)
	return nil
}

func (d *captureDispatcher) captured() []core.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]core.Entry(nil), d.entries...)
}

type harness struct {
	interceptor *Interceptor
	queue       *queue.Queue
	dispatcher  *captureDispatcher
	cache       *decision.Cache
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()

	logger := log.NewLogger()
	d := &captureDispatcher{}
	q := queue.New(d, queue.Options{}, metrics.New(nil), logger)
	require.NoError(t, q.Start(context.Background()))
	t.Cleanup(func() { q.Stop(time.Second) })

	cache := decision.NewCache(cfg, logger)

	return &harness{
		interceptor: New(cache, mask.NewEngine(logger), q, logger),
		queue:       q,
		dispatcher:  d,
		cache:       cache,
	}
}

func (h *harness) flush(t *testing.T) []core.Entry {
	t.Helper()
	require.NoError(t, h.queue.Flush(context.Background()))
	return h.dispatcher.captured()
}

func autoConfig() *config.Config {
	return &config.Config{AutoIntercept: true, DefaultLevel: "info"}
}

type orderService struct{}

func (orderService) Place(ctx context.Context, customer string, amount int) (string, error) {
	if amount <= 0 {
		return "", errors.New("invalid amount")
	}
	return "order-1", nil
}

func (orderService) Cancel(ctx context.Context, id string) error {
	return nil
}

func TestDoSuccessProducesOneEntry(t *testing.T) {
	cfg := autoConfig()
	cfg.Services = []config.ServicePattern{
		{Pattern: "shop.OrderService", Mode: "both"},
	}
	h := newHarness(t, cfg)
	h.cache.CacheMethods("shop.OrderService", []string{"Place"}, nil)

	out, err := Do1(context.Background(), h.interceptor, "shop.OrderService", "Place",
		[]Arg{{Name: "customer", Value: "alice"}, {Name: "amount", Value: 42}},
		func(ctx context.Context) (string, error) {
			return "order-1", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "order-1", out)

	entries := h.flush(t)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "shop.OrderService", entry.TypeName)
	assert.Equal(t, "Place", entry.Method)
	assert.True(t, entry.Completed)
	assert.True(t, entry.Success)
	assert.Contains(t, string(entry.Input), "alice")
	assert.Contains(t, string(entry.Output), "order-1")
	assert.GreaterOrEqual(t, entry.Duration, time.Duration(0))
}

func TestErrorPropagatesWithOneFailureEntry(t *testing.T) {
	cfg := autoConfig()
	h := newHarness(t, cfg)
	h.cache.CacheMethods("shop.OrderService", []string{"Place"}, nil)

	sentinel := errors.New("card declined")
	err := Do(context.Background(), h.interceptor, "shop.OrderService", "Place", nil,
		func(ctx context.Context) error {
			return sentinel
		})
	// The caller sees the original error, untouched
	assert.Same(t, sentinel, err)

	entries := h.flush(t)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.True(t, entry.Completed)
	assert.False(t, entry.Success)
	assert.Equal(t, "card declined", entry.ErrorMessage)
	assert.NotEmpty(t, entry.ErrorType)
	assert.Equal(t, core.LevelError, entry.EffectiveLevel())
}

func TestPanicIsLoggedAndReRaised(t *testing.T) {
	h := newHarness(t, autoConfig())
	h.cache.CacheMethods("shop.OrderService", []string{"Place"}, nil)

	assert.PanicsWithValue(t, "boom", func() {
		_ = Do(context.Background(), h.interceptor, "shop.OrderService", "Place", nil,
			func(ctx context.Context) error {
				panic("boom")
			})
	})

	entries := h.flush(t)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.False(t, entry.Success)
	assert.Contains(t, entry.ErrorMessage, "boom")
	assert.NotEmpty(t, entry.StackTrace)
}

func TestDisabledMethodBypassesCapture(t *testing.T) {
	cfg := autoConfig()
	cfg.AutoIntercept = false
	h := newHarness(t, cfg)
	h.cache.CacheMethods("shop.OrderService", []string{"Place"}, nil)

	called := false
	err := Do(context.Background(), h.interceptor, "shop.OrderService", "Place", nil,
		func(ctx context.Context) error {
			called = true
			return nil
		})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, h.flush(t))
}

func TestInputOnlyModeSkipsOutput(t *testing.T) {
	h := newHarness(t, autoConfig())
	h.cache.CacheMethods("shop.OrderService", []string{"Place"}, nil)

	out, err := Do1(context.Background(), h.interceptor, "shop.OrderService", "Place",
		[]Arg{{Name: "customer", Value: "alice"}},
		func(ctx context.Context) (string, error) {
			return "order-1", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "order-1", out)

	entries := h.flush(t)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].Input)
	assert.Empty(t, entries[0].Output)
}

func TestMaskedParameterNeverReachesEntry(t *testing.T) {
	cfg := autoConfig()
	cfg.Services = []config.ServicePattern{
		{
			Pattern:               "shop.OrderService",
			Mode:                  "input",
			MaskParameterPatterns: []string{"*card*"},
		},
	}
	h := newHarness(t, cfg)
	h.cache.CacheMethods("shop.OrderService", []string{"Place"}, nil)

	err := Do(context.Background(), h.interceptor, "shop.OrderService", "Place",
		[]Arg{{Name: "cardNumber", Value: "4111-1111-1111-1111"}, {Name: "customer", Value: "alice"}},
		func(ctx context.Context) error {
			return nil
		})
	require.NoError(t, err)

	entries := h.flush(t)
	require.Len(t, entries, 1)

	input := string(entries[0].Input)
	assert.NotContains(t, input, "4111")
	assert.Contains(t, input, core.DefaultMaskReplacement)
	assert.Contains(t, input, "alice")
}

func TestTraceIDFlowsFromContext(t *testing.T) {
	h := newHarness(t, autoConfig())
	h.cache.CacheMethods("shop.OrderService", []string{"Place"}, nil)

	ctx := core.ContextWithTraceID(context.Background(), "trace-7")
	err := Do(ctx, h.interceptor, "shop.OrderService", "Place", nil,
		func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	entries := h.flush(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "trace-7", entries[0].TraceID)
}

func TestInvokeReflective(t *testing.T) {
	h := newHarness(t, autoConfig())

	svc := orderService{}
	h.cache.CacheType(svc, nil)
	typeName := decision.TypeName(reflect.TypeOf(svc))

	outputs, err := h.interceptor.Invoke(context.Background(), svc, "Place", "alice", 42)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "order-1", outputs[0])

	entries := h.flush(t)
	require.Len(t, entries, 1)
	assert.Equal(t, typeName, entries[0].TypeName)
	assert.Equal(t, "Place", entries[0].Method)
	assert.True(t, entries[0].Success)
}

func TestInvokeErrorReturn(t *testing.T) {
	h := newHarness(t, autoConfig())

	svc := orderService{}
	h.cache.CacheType(svc, nil)

	outputs, err := h.interceptor.Invoke(context.Background(), svc, "Place", "alice", -1)
	require.Error(t, err)
	assert.Equal(t, "invalid amount", err.Error())
	require.Len(t, outputs, 1)
	assert.Equal(t, "", outputs[0])

	entries := h.flush(t)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
}

func TestInvokeUnknownMethod(t *testing.T) {
	h := newHarness(t, autoConfig())

	_, err := h.interceptor.Invoke(context.Background(), orderService{}, "Teleport")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}

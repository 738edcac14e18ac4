// FILE: autolog/src/internal/target/ratelimit.go
package target

import (
	"context"
	"sync/atomic"

	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// rateLimitedTarget wraps a target with a token bucket. Entries over the
// limit are dropped silently toward the caller and reported through the
// onLimited callback.
type rateLimitedTarget struct {
	inner     Target
	limiter   *rate.Limiter
	onLimited func()
	logger    *log.Logger

	dropped atomic.Uint64
}

// NewRateLimited wraps a target with a per-second write limit. Burst
// equals the rate so short spikes pass through.
func NewRateLimited(inner Target, perSecond float64, onLimited func(), logger *log.Logger) Target {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}

	return &rateLimitedTarget{
		inner:     inner,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
		onLimited: onLimited,
		logger:    logger,
	}
}

func (t *rateLimitedTarget) Start(ctx context.Context) error {
	return t.inner.Start(ctx)
}

func (t *rateLimitedTarget) Write(entry core.Entry, formatted []byte) error {
	if !t.limiter.Allow() {
		t.dropped.Add(1)
		if t.onLimited != nil {
			t.onLimited()
		}
		return nil
	}
	return t.inner.Write(entry, formatted)
}

func (t *rateLimitedTarget) Stop() {
	if dropped := t.dropped.Load(); dropped > 0 {
		t.logger.Debug("msg", "Rate limiter dropped entries",
			"component", "rate_limited_target",
			"dropped", dropped)
	}
	t.inner.Stop()
}

func (t *rateLimitedTarget) GetStats() TargetStats {
	stats := t.inner.GetStats()
	if stats.Details == nil {
		stats.Details = map[string]any{}
	}
	stats.Details["rate_limited"] = t.dropped.Load()
	return stats
}

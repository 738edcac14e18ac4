// FILE: autolog/src/internal/service/service.go
package service

import (
	"context"
	"fmt"
	"sync"

	"autolog/src/internal/config"
	"autolog/src/internal/decision"
	"autolog/src/internal/format"
	"autolog/src/internal/intercept"
	"autolog/src/internal/mask"
	"autolog/src/internal/metrics"
	"autolog/src/internal/queue"
	"autolog/src/internal/target"

	"github.com/lixenwraith/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Service is the composition root: it owns the decision cache, masking
// engine, background queue, formatter registry and target router, and
// hands out the interceptor that instrumented code calls through.
// Everything is explicit; there are no package-level globals.
type Service struct {
	cfg         *config.Config
	logger      *log.Logger
	metrics     *metrics.Metrics
	decisions   *decision.Cache
	masker      *mask.Engine
	formats     *format.Registry
	router      *target.Router
	queue       *queue.Queue
	interceptor *intercept.Interceptor

	mu      sync.Mutex
	started bool
	stopped bool
}

// New wires a service from loaded configuration. The registerer may be
// nil to run without registered metrics.
func New(cfg *config.Config, logger *log.Logger, registerer prometheus.Registerer) (*Service, error) {
	m := metrics.New(registerer)

	formats, err := format.NewRegistry(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build formatter registry: %w", err)
	}

	router, err := target.NewRouter(cfg.Targets, cfg.DefaultTarget, m.RateLimited.Inc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build target router: %w", err)
	}

	q := queue.New(queue.NewDispatcher(formats, router), queue.Options{
		Size:            int(cfg.QueueSize),
		BatchSize:       int(cfg.BatchSize),
		BatchWait:       cfg.BatchWait(),
		DispatchTimeout: cfg.DispatchTimeout(),
	}, m, logger)

	decisions := decision.NewCache(cfg, logger)
	masker := mask.NewEngine(logger)

	return &Service{
		cfg:         cfg,
		logger:      logger,
		metrics:     m,
		decisions:   decisions,
		masker:      masker,
		formats:     formats,
		router:      router,
		queue:       q,
		interceptor: intercept.New(decisions, masker, q, logger),
	}, nil
}

// Start brings up the targets and the queue worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("service already started")
	}

	if err := s.router.Start(ctx); err != nil {
		return fmt.Errorf("failed to start targets: %w", err)
	}
	if err := s.queue.Start(ctx); err != nil {
		s.router.Stop()
		return fmt.Errorf("failed to start queue: %w", err)
	}

	s.started = true
	s.logger.Info("msg", "Logging service started",
		"component", "service",
		"auto_intercept", s.cfg.AutoIntercept,
		"targets", len(s.cfg.Targets))
	return nil
}

// Interceptor returns the call interceptor backed by this service.
func (s *Service) Interceptor() *intercept.Interceptor {
	return s.interceptor
}

// Flush synchronously drains everything enqueued so far.
func (s *Service) Flush(ctx context.Context) error {
	return s.queue.Flush(ctx)
}

// Shutdown drains the queue within the configured grace period, then
// stops the targets. Safe to call more than once.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.stopped {
		return
	}
	s.stopped = true

	s.logger.Info("msg", "Logging service shutdown initiated", "component", "service")

	s.queue.Stop(s.cfg.ShutdownGrace())
	s.router.Stop()

	stats := s.queue.GetStats()
	s.logger.Info("msg", "Logging service shutdown complete",
		"component", "service",
		"processed", stats.Processed,
		"dropped", stats.Dropped)
}

// GetStats returns a snapshot of queue and target statistics.
func (s *Service) GetStats() map[string]any {
	queueStats := s.queue.GetStats()

	targets := make(map[string]any)
	for name, ts := range s.router.GetStats() {
		targets[name] = map[string]any{
			"type":          ts.Type,
			"total_written": ts.TotalWritten,
			"total_failed":  ts.TotalFailed,
			"details":       ts.Details,
		}
	}

	return map[string]any{
		"queue": map[string]any{
			"state":     queueStats.State,
			"depth":     queueStats.Depth,
			"enqueued":  queueStats.Enqueued,
			"processed": queueStats.Processed,
			"dropped":   queueStats.Dropped,
			"errors":    queueStats.Errors,
		},
		"targets": targets,
	}
}

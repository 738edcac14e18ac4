// FILE: autolog/src/internal/queue/queue.go
package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"autolog/src/internal/core"
	"autolog/src/internal/metrics"

	"github.com/lixenwraith/log"
)

// State tracks the queue lifecycle. Transitions only move forward.
type State int32

const (
	StateCreated State = iota
	StateStarted
	StateRunning
	StateStopRequested
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarted:
		return "started"
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop_requested"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Dispatcher delivers one entry to its formatter and target.
type Dispatcher interface {
	Dispatch(entry core.Entry) error
}

// Options configures the background queue.
type Options struct {
	Size            int
	BatchSize       int
	BatchWait       time.Duration
	DispatchTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.Size <= 0 {
		o.Size = core.DefaultQueueSize
	}
	if o.BatchSize <= 0 {
		o.BatchSize = core.DefaultBatchSize
	}
	if o.BatchWait <= 0 {
		o.BatchWait = core.DefaultBatchWait
	}
	if o.DispatchTimeout <= 0 {
		o.DispatchTimeout = core.DefaultDispatchTimeout
	}
}

// Queue is the multi-producer single-consumer channel between
// instrumented call sites and the output pipeline. Enqueue never blocks:
// when the buffer is full the newest entry is dropped and counted. A
// single worker drains entries in batches and dispatches them one by
// one, surviving dispatcher panics and slow targets.
type Queue struct {
	entries    chan core.Entry
	dispatcher Dispatcher
	opts       Options
	metrics    *metrics.Metrics
	logger     *log.Logger

	state    atomic.Int32
	done     chan struct{}
	stopOnce sync.Once
	flushReq chan chan struct{}
	wg       sync.WaitGroup

	// Statistics
	totalEnqueued  atomic.Uint64
	totalDropped   atomic.Uint64
	totalProcessed atomic.Uint64
	totalErrors    atomic.Uint64
}

// New creates a queue in the created state. Start must be called before
// entries are accepted.
func New(dispatcher Dispatcher, opts Options, m *metrics.Metrics, logger *log.Logger) *Queue {
	opts.applyDefaults()

	q := &Queue{
		entries:    make(chan core.Entry, opts.Size),
		dispatcher: dispatcher,
		opts:       opts,
		metrics:    m,
		logger:     logger,
		done:       make(chan struct{}),
		flushReq:   make(chan chan struct{}),
	}
	q.state.Store(int32(StateCreated))

	return q
}

// State returns the current lifecycle state.
func (q *Queue) State() State {
	return State(q.state.Load())
}

// Start launches the worker. Calling Start more than once is an error.
func (q *Queue) Start(ctx context.Context) error {
	if !q.state.CompareAndSwap(int32(StateCreated), int32(StateStarted)) {
		return fmt.Errorf("queue already started (state: %s)", q.State())
	}

	q.wg.Add(1)
	go q.worker(ctx)

	q.logger.Debug("msg", "Log queue started",
		"component", "queue",
		"size", q.opts.Size,
		"batch_size", q.opts.BatchSize,
		"batch_wait", q.opts.BatchWait)
	return nil
}

// Enqueue offers an entry to the queue without blocking. Entries are
// silently dropped when the queue is full or not accepting; drops are
// only visible through metrics and stats.
func (q *Queue) Enqueue(entry core.Entry) bool {
	switch q.State() {
	case StateStarted, StateRunning:
	default:
		q.totalDropped.Add(1)
		q.metrics.Dropped.Inc()
		return false
	}

	select {
	case q.entries <- entry:
		q.totalEnqueued.Add(1)
		q.metrics.Enqueued.Inc()
		q.metrics.QueueDepth.Set(float64(len(q.entries)))
		return true
	default:
		q.totalDropped.Add(1)
		q.metrics.Dropped.Inc()
		return false
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()

	q.state.CompareAndSwap(int32(StateStarted), int32(StateRunning))

	batch := make([]core.Entry, 0, q.opts.BatchSize)
	timer := time.NewTimer(q.opts.BatchWait)
	defer timer.Stop()

	flushBatch := func() {
		for _, entry := range batch {
			q.dispatchOne(entry)
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-q.entries:
			q.metrics.QueueDepth.Set(float64(len(q.entries)))
			batch = append(batch, entry)
			if len(batch) >= q.opts.BatchSize {
				flushBatch()
				resetTimer(timer, q.opts.BatchWait)
			}

		case <-timer.C:
			flushBatch()
			timer.Reset(q.opts.BatchWait)

		case ack := <-q.flushReq:
			q.drainInto(&batch)
			flushBatch()
			close(ack)
			resetTimer(timer, q.opts.BatchWait)

		case <-ctx.Done():
			q.drain(&batch, flushBatch)
			return

		case <-q.done:
			q.drain(&batch, flushBatch)
			return
		}
	}
}

// drain empties the channel and dispatches everything still pending.
// A producer that passed the state check just before draining began can
// still land an entry, so a second sweep runs after the first dispatch;
// anything arriving later than that is recounted as dropped.
func (q *Queue) drain(batch *[]core.Entry, flushBatch func()) {
	q.state.Store(int32(StateDraining))
	q.drainInto(batch)
	flushBatch()
	q.drainInto(batch)
	flushBatch()

	for {
		select {
		case <-q.entries:
			q.totalDropped.Add(1)
			q.metrics.Dropped.Inc()
		default:
			q.metrics.QueueDepth.Set(0)
			return
		}
	}
}

func (q *Queue) drainInto(batch *[]core.Entry) {
	for {
		select {
		case entry := <-q.entries:
			*batch = append(*batch, entry)
		default:
			return
		}
	}
}

// dispatchOne delivers a single entry, bounding dispatch time and
// containing dispatcher panics so one bad entry cannot stall the worker.
func (q *Queue) dispatchOne(entry core.Entry) {
	result := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("dispatch panic: %v", r)
			}
		}()
		result <- q.dispatcher.Dispatch(entry)
	}()

	select {
	case err := <-result:
		if err != nil {
			q.totalErrors.Add(1)
			q.metrics.DispatchErrors.Inc()
			q.logger.Warn("msg", "Entry dispatch failed",
				"component", "queue",
				"type", entry.TypeName,
				"method", entry.Method,
				"error", err)
			return
		}
		q.totalProcessed.Add(1)
		q.metrics.Processed.Inc()

	case <-time.After(q.opts.DispatchTimeout):
		q.totalErrors.Add(1)
		q.metrics.DispatchErrors.Inc()
		q.logger.Warn("msg", "Entry dispatch timed out",
			"component", "queue",
			"type", entry.TypeName,
			"method", entry.Method,
			"timeout", q.opts.DispatchTimeout)
	}
}

// Flush synchronously drains everything enqueued so far. It returns when
// all pending entries have been dispatched or the context expires.
func (q *Queue) Flush(ctx context.Context) error {
	switch q.State() {
	case StateStarted, StateRunning:
	default:
		return fmt.Errorf("queue not running (state: %s)", q.State())
	}

	ack := make(chan struct{})
	select {
	case q.flushReq <- ack:
	case <-q.done:
		return fmt.Errorf("queue stopping")
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-ack:
		return nil
	case <-q.done:
		return fmt.Errorf("queue stopping")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains and shuts down the worker, waiting up to grace for
// pending entries to be dispatched. Entries still pending after the
// grace period are abandoned.
func (q *Queue) Stop(grace time.Duration) {
	switch q.State() {
	case StateCreated:
		q.state.Store(int32(StateStopped))
		return
	case StateStopped:
		return
	}

	q.state.CompareAndSwap(int32(StateRunning), int32(StateStopRequested))
	q.state.CompareAndSwap(int32(StateStarted), int32(StateStopRequested))
	q.stopOnce.Do(func() { close(q.done) })

	finished := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(grace):
		q.logger.Warn("msg", "Queue drain exceeded shutdown grace",
			"component", "queue",
			"grace", grace,
			"pending", len(q.entries))
	}

	q.state.Store(int32(StateStopped))

	// Entries landed by producers that raced the worker's final sweep are
	// lost; count them so stats stay truthful
	for drained := false; !drained; {
		select {
		case <-q.entries:
			q.totalDropped.Add(1)
			q.metrics.Dropped.Inc()
		default:
			drained = true
		}
	}

	q.logger.Debug("msg", "Log queue stopped",
		"component", "queue",
		"enqueued", q.totalEnqueued.Load(),
		"processed", q.totalProcessed.Load(),
		"dropped", q.totalDropped.Load(),
		"errors", q.totalErrors.Load())
}

// Stats is a point-in-time snapshot of queue counters.
type Stats struct {
	State     string
	Depth     int
	Enqueued  uint64
	Processed uint64
	Dropped   uint64
	Errors    uint64
}

// GetStats returns queue statistics.
func (q *Queue) GetStats() Stats {
	return Stats{
		State:     q.State().String(),
		Depth:     len(q.entries),
		Enqueued:  q.totalEnqueued.Load(),
		Processed: q.totalProcessed.Load(),
		Dropped:   q.totalDropped.Load(),
		Errors:    q.totalErrors.Load(),
	}
}

// resetTimer restarts a possibly-fired timer for a fresh interval.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// FILE: autolog/src/internal/target/http.go
package target

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// HTTPTarget forwards formatted entries to a remote collector endpoint,
// batching writes into newline-delimited POST bodies.
type HTTPTarget struct {
	// Configuration
	url           string
	batchSize     int
	flushInterval time.Duration
	timeout       time.Duration

	// Network
	client *fasthttp.Client

	// Batching
	batch   [][]byte
	batchMu sync.Mutex

	// Runtime
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalWritten  atomic.Uint64
	totalFailed   atomic.Uint64
	totalBatches  atomic.Uint64
	failedBatches atomic.Uint64
	lastWrite     atomic.Value // time.Time
}

// NewHTTPTarget creates an HTTP client target from its option bag.
func NewHTTPTarget(options map[string]any, logger *log.Logger) (*HTTPTarget, error) {
	url, ok := toString(options["url"])
	if !ok || url == "" {
		return nil, fmt.Errorf("http target requires 'url' option")
	}

	t := &HTTPTarget{
		url:           url,
		batchSize:     50,
		flushInterval: time.Second,
		timeout:       10 * time.Second,
		done:          make(chan struct{}),
		startTime:     time.Now(),
		logger:        logger,
	}

	if batchSize, ok := toInt(options["batch_size"]); ok && batchSize > 0 {
		t.batchSize = batchSize
	}
	if flushMs, ok := toInt(options["flush_interval_ms"]); ok && flushMs > 0 {
		t.flushInterval = time.Duration(flushMs) * time.Millisecond
	}
	if timeout, ok := toInt(options["timeout_seconds"]); ok && timeout > 0 {
		t.timeout = time.Duration(timeout) * time.Second
	}

	t.batch = make([][]byte, 0, t.batchSize)
	t.lastWrite.Store(time.Time{})

	t.client = &fasthttp.Client{
		MaxConnsPerHost:     10,
		MaxIdleConnDuration: 10 * time.Second,
		ReadTimeout:         t.timeout,
		WriteTimeout:        t.timeout,
	}

	return t, nil
}

func (t *HTTPTarget) Start(ctx context.Context) error {
	t.wg.Add(1)
	go t.flushLoop(ctx)

	t.logger.Debug("msg", "HTTP target started",
		"component", "http_target",
		"url", t.url,
		"batch_size", t.batchSize)
	return nil
}

func (t *HTTPTarget) Write(entry core.Entry, formatted []byte) error {
	t.batchMu.Lock()
	buf := make([]byte, len(formatted))
	copy(buf, formatted)
	t.batch = append(t.batch, buf)
	full := len(t.batch) >= t.batchSize
	t.batchMu.Unlock()

	t.totalWritten.Add(1)
	t.lastWrite.Store(time.Now())

	if full {
		return t.flush()
	}
	return nil
}

func (t *HTTPTarget) flushLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := t.flush(); err != nil {
				t.logger.Warn("msg", "Periodic batch flush failed",
					"component", "http_target",
					"error", err)
			}
		case <-ctx.Done():
			return
		case <-t.done:
			return
		}
	}
}

func (t *HTTPTarget) flush() error {
	t.batchMu.Lock()
	if len(t.batch) == 0 {
		t.batchMu.Unlock()
		return nil
	}
	pending := t.batch
	t.batch = make([][]byte, 0, t.batchSize)
	t.batchMu.Unlock()

	body := bytes.Join(pending, nil)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(t.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-ndjson")
	req.SetBody(body)

	if err := t.client.DoTimeout(req, resp, t.timeout); err != nil {
		t.failedBatches.Add(1)
		t.totalFailed.Add(uint64(len(pending)))
		return fmt.Errorf("batch post failed: %w", err)
	}

	if resp.StatusCode() >= 400 {
		t.failedBatches.Add(1)
		t.totalFailed.Add(uint64(len(pending)))
		return fmt.Errorf("collector returned status %d", resp.StatusCode())
	}

	t.totalBatches.Add(1)
	return nil
}

func (t *HTTPTarget) Stop() {
	close(t.done)
	t.wg.Wait()

	// Final flush of anything still batched
	if err := t.flush(); err != nil {
		t.logger.Warn("msg", "Final batch flush failed",
			"component", "http_target",
			"error", err)
	}

	t.logger.Debug("msg", "HTTP target stopped",
		"component", "http_target",
		"total_batches", t.totalBatches.Load(),
		"failed_batches", t.failedBatches.Load())
}

func (t *HTTPTarget) GetStats() TargetStats {
	lastWrite, _ := t.lastWrite.Load().(time.Time)

	return TargetStats{
		Type:         "http",
		TotalWritten: t.totalWritten.Load(),
		TotalFailed:  t.totalFailed.Load(),
		StartTime:    t.startTime,
		LastWrite:    lastWrite,
		Details: map[string]any{
			"url":            t.url,
			"total_batches":  t.totalBatches.Load(),
			"failed_batches": t.failedBatches.Load(),
		},
	}
}

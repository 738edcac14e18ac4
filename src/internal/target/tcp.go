// FILE: autolog/src/internal/target/tcp.go
package target

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// TCPTarget forwards formatted entries to a remote TCP endpoint. A
// background connection manager dials and re-dials with exponential
// backoff; writes while disconnected fail and are counted.
type TCPTarget struct {
	// Configuration
	address           string
	dialTimeout       time.Duration
	writeTimeout      time.Duration
	keepAlive         time.Duration
	reconnectDelay    time.Duration
	maxReconnectDelay time.Duration
	reconnectBackoff  float64

	// Connection state
	conn     net.Conn
	connMu   sync.RWMutex
	connLost chan struct{}

	// Runtime
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalWritten    atomic.Uint64
	totalFailed     atomic.Uint64
	totalReconnects atomic.Uint64
	lastWrite       atomic.Value // time.Time
}

// NewTCPTarget creates a TCP client target from its option bag.
func NewTCPTarget(options map[string]any, logger *log.Logger) (*TCPTarget, error) {
	address, ok := toString(options["address"])
	if !ok || address == "" {
		return nil, fmt.Errorf("tcp target requires 'address' option")
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		return nil, fmt.Errorf("invalid address format (expected host:port): %w", err)
	}

	t := &TCPTarget{
		address:           address,
		dialTimeout:       10 * time.Second,
		writeTimeout:      30 * time.Second,
		keepAlive:         30 * time.Second,
		reconnectDelay:    time.Second,
		maxReconnectDelay: 30 * time.Second,
		reconnectBackoff:  1.5,
		connLost:          make(chan struct{}, 1),
		done:              make(chan struct{}),
		startTime:         time.Now(),
		logger:            logger,
	}

	if dialTimeout, ok := toInt(options["dial_timeout_seconds"]); ok && dialTimeout > 0 {
		t.dialTimeout = time.Duration(dialTimeout) * time.Second
	}
	if writeTimeout, ok := toInt(options["write_timeout_seconds"]); ok && writeTimeout > 0 {
		t.writeTimeout = time.Duration(writeTimeout) * time.Second
	}
	if keepAlive, ok := toInt(options["keep_alive_seconds"]); ok && keepAlive > 0 {
		t.keepAlive = time.Duration(keepAlive) * time.Second
	}
	if reconnectDelay, ok := toInt(options["reconnect_delay_ms"]); ok && reconnectDelay > 0 {
		t.reconnectDelay = time.Duration(reconnectDelay) * time.Millisecond
	}
	if maxDelay, ok := toInt(options["max_reconnect_delay_seconds"]); ok && maxDelay > 0 {
		t.maxReconnectDelay = time.Duration(maxDelay) * time.Second
	}

	t.lastWrite.Store(time.Time{})

	return t, nil
}

func (t *TCPTarget) Start(ctx context.Context) error {
	t.wg.Add(1)
	go t.connectionManager(ctx)

	t.logger.Debug("msg", "TCP target started",
		"component", "tcp_target",
		"address", t.address)
	return nil
}

func (t *TCPTarget) Write(entry core.Entry, formatted []byte) error {
	t.connMu.RLock()
	conn := t.conn
	t.connMu.RUnlock()

	if conn == nil {
		t.totalFailed.Add(1)
		return fmt.Errorf("not connected to %s", t.address)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	if _, err := conn.Write(formatted); err != nil {
		t.totalFailed.Add(1)
		t.dropConnection(conn)
		return fmt.Errorf("tcp write failed: %w", err)
	}

	t.totalWritten.Add(1)
	t.lastWrite.Store(time.Now())
	return nil
}

// dropConnection clears a failed connection and wakes the manager.
func (t *TCPTarget) dropConnection(conn net.Conn) {
	t.connMu.Lock()
	if t.conn == conn {
		_ = conn.Close()
		t.conn = nil
		select {
		case t.connLost <- struct{}{}:
		default:
		}
	}
	t.connMu.Unlock()
}

func (t *TCPTarget) connectionManager(ctx context.Context) {
	defer t.wg.Done()

	delay := t.reconnectDelay

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.done:
			return
		default:
		}

		conn, err := t.connect()
		if err != nil {
			t.logger.Warn("msg", "Failed to connect to TCP collector",
				"component", "tcp_target",
				"address", t.address,
				"error", err,
				"retry_delay", delay)

			select {
			case <-ctx.Done():
				return
			case <-t.done:
				return
			case <-time.After(delay):
			}

			delay = time.Duration(float64(delay) * t.reconnectBackoff)
			if delay > t.maxReconnectDelay {
				delay = t.maxReconnectDelay
			}
			continue
		}

		delay = t.reconnectDelay
		t.totalReconnects.Add(1)

		t.connMu.Lock()
		t.conn = conn
		t.connMu.Unlock()

		t.logger.Info("msg", "Connected to TCP collector",
			"component", "tcp_target",
			"address", t.address,
			"local_addr", conn.LocalAddr())

		// Wait until the connection is lost or shutdown requested
		select {
		case <-ctx.Done():
			return
		case <-t.done:
			return
		case <-t.connLost:
		}
	}
}

func (t *TCPTarget) connect() (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout:   t.dialTimeout,
		KeepAlive: t.keepAlive,
	}

	conn, err := dialer.Dial("tcp", t.address)
	if err != nil {
		return nil, err
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetKeepAlive(true)
		_ = tcpConn.SetKeepAlivePeriod(t.keepAlive)
		_ = tcpConn.SetNoDelay(true)
	}

	return conn, nil
}

func (t *TCPTarget) Stop() {
	close(t.done)
	t.wg.Wait()

	t.connMu.Lock()
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
	t.connMu.Unlock()

	t.logger.Debug("msg", "TCP target stopped",
		"component", "tcp_target",
		"total_written", t.totalWritten.Load(),
		"total_failed", t.totalFailed.Load(),
		"total_reconnects", t.totalReconnects.Load())
}

func (t *TCPTarget) GetStats() TargetStats {
	lastWrite, _ := t.lastWrite.Load().(time.Time)

	t.connMu.RLock()
	connected := t.conn != nil
	t.connMu.RUnlock()

	return TargetStats{
		Type:         "tcp",
		TotalWritten: t.totalWritten.Load(),
		TotalFailed:  t.totalFailed.Load(),
		StartTime:    t.startTime,
		LastWrite:    lastWrite,
		Details: map[string]any{
			"address":          t.address,
			"connected":        connected,
			"total_reconnects": t.totalReconnects.Load(),
		},
	}
}

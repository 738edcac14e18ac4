// FILE: autolog/src/internal/target/console_test.go
package target

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestConsoleTargetWrites(t *testing.T) {
	ct, err := NewConsoleTarget(map[string]any{"output": "stdout"}, newTestLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	ct.stdout = &buf

	require.NoError(t, ct.Start(context.Background()))
	defer ct.Stop()

	entry := core.StartEntry("billing.Invoicer", "Issue")
	require.NoError(t, ct.Write(entry, []byte("hello\n")))

	assert.Equal(t, "hello\n", buf.String())
	assert.Equal(t, uint64(1), ct.GetStats().TotalWritten)
}

func TestConsoleTargetSplitRouting(t *testing.T) {
	ct, err := NewConsoleTarget(map[string]any{"output": "split"}, newTestLogger())
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	ct.stdout = &stdout
	ct.stderr = &stderr

	require.NoError(t, ct.Start(context.Background()))
	defer ct.Stop()

	ok := core.StartEntry("billing.Invoicer", "Issue").
		WithCompletion(true, nil)
	require.NoError(t, ct.Write(ok, []byte("ok\n")))

	failed := core.StartEntry("billing.Invoicer", "Issue").
		WithCompletion(false, assert.AnError)
	require.NoError(t, ct.Write(failed, []byte("failed\n")))

	assert.Equal(t, "ok\n", stdout.String())
	assert.Equal(t, "failed\n", stderr.String())
}

func TestRateLimitedTargetDrops(t *testing.T) {
	ct, err := NewConsoleTarget(map[string]any{"output": "stdout"}, newTestLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	ct.stdout = &buf

	limited := 0
	rl := NewRateLimited(ct, 2, func() { limited++ }, newTestLogger())
	require.NoError(t, rl.Start(context.Background()))
	defer rl.Stop()

	entry := core.StartEntry("billing.Invoicer", "Issue")
	for i := 0; i < 10; i++ {
		require.NoError(t, rl.Write(entry, []byte("x\n")))
	}

	// Burst of 2 passes, the rest are dropped without error
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("x\n")))
	assert.Equal(t, 8, limited)

	stats := rl.GetStats()
	assert.Equal(t, uint64(8), stats.Details["rate_limited"])
}

func TestRateLimitedStatsConcurrentWithWrites(t *testing.T) {
	ct, err := NewConsoleTarget(map[string]any{"output": "stdout"}, newTestLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	ct.stdout = &buf

	rl := NewRateLimited(ct, 1, nil, newTestLogger())
	require.NoError(t, rl.Start(context.Background()))
	defer rl.Stop()

	entry := core.StartEntry("billing.Invoicer", "Issue")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = rl.Write(entry, []byte("x\n"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = rl.GetStats()
		}
	}()
	wg.Wait()

	stats := rl.GetStats()
	dropped := stats.Details["rate_limited"].(uint64)
	assert.Equal(t, stats.TotalWritten+dropped, uint64(1000))
}

func TestFileTargetRequiresDirectory(t *testing.T) {
	_, err := NewFileTarget(map[string]any{}, newTestLogger())
	assert.Error(t, err)
}

func TestFileTargetWritesAndRotatesConfig(t *testing.T) {
	dir := t.TempDir()

	ft, err := NewFileTarget(map[string]any{
		"directory":   dir,
		"name":        "audit",
		"max_size_mb": 1,
	}, newTestLogger())
	require.NoError(t, err)

	require.NoError(t, ft.Start(context.Background()))

	entry := core.StartEntry("billing.Invoicer", "Issue")
	require.NoError(t, ft.Write(entry, []byte("line\n")))
	ft.Stop()

	stats := ft.GetStats()
	assert.Equal(t, uint64(1), stats.TotalWritten)
	assert.WithinDuration(t, time.Now(), stats.LastWrite, 5*time.Second)
}

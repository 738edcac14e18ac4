// FILE: autolog/src/internal/target/console.go
package target

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// ConsoleTarget writes formatted entries to stdout, stderr, or both in
// split mode (warn/error to stderr, everything else to stdout).
type ConsoleTarget struct {
	output    string // "stdout", "stderr", or "split"
	stdout    io.Writer
	stderr    io.Writer
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalWritten atomic.Uint64
	totalFailed  atomic.Uint64
	lastWrite    atomic.Value // time.Time
}

// NewConsoleTarget creates a console target from its option bag.
func NewConsoleTarget(options map[string]any, logger *log.Logger) (*ConsoleTarget, error) {
	output := "stderr"
	if o, ok := toString(options["output"]); ok && o != "" {
		output = o
	}

	t := &ConsoleTarget{
		output:    output,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		startTime: time.Now(),
		logger:    logger,
	}
	t.lastWrite.Store(time.Time{})

	return t, nil
}

func (t *ConsoleTarget) Start(ctx context.Context) error {
	t.logger.Debug("msg", "Console target started",
		"component", "console_target",
		"output", t.output)
	return nil
}

func (t *ConsoleTarget) Write(entry core.Entry, formatted []byte) error {
	w := t.writerFor(entry)

	if _, err := w.Write(formatted); err != nil {
		t.totalFailed.Add(1)
		return err
	}

	t.totalWritten.Add(1)
	t.lastWrite.Store(time.Now())
	return nil
}

func (t *ConsoleTarget) writerFor(entry core.Entry) io.Writer {
	switch t.output {
	case "stdout":
		return t.stdout
	case "split":
		switch entry.EffectiveLevel() {
		case core.LevelWarn, core.LevelError:
			return t.stderr
		default:
			return t.stdout
		}
	default:
		return t.stderr
	}
}

func (t *ConsoleTarget) Stop() {
	t.logger.Debug("msg", "Console target stopped", "component", "console_target")
}

func (t *ConsoleTarget) GetStats() TargetStats {
	lastWrite, _ := t.lastWrite.Load().(time.Time)

	return TargetStats{
		Type:         "console",
		TotalWritten: t.totalWritten.Load(),
		TotalFailed:  t.totalFailed.Load(),
		StartTime:    t.startTime,
		LastWrite:    lastWrite,
		Details: map[string]any{
			"output": t.output,
		},
	}
}

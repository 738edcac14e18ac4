// FILE: autolog/src/internal/target/file.go
package target

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileTarget writes formatted entries to a rotating log file.
type FileTarget struct {
	writer    *lumberjack.Logger
	path      string
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalWritten atomic.Uint64
	totalFailed  atomic.Uint64
	lastWrite    atomic.Value // time.Time
}

// NewFileTarget creates a file target with rotation from its option bag.
func NewFileTarget(options map[string]any, logger *log.Logger) (*FileTarget, error) {
	directory, ok := toString(options["directory"])
	if !ok || directory == "" {
		return nil, fmt.Errorf("file target requires 'directory' option")
	}

	name := "autolog.output"
	if n, ok := toString(options["name"]); ok && n != "" {
		name = n
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(directory, name+".log"),
		MaxSize:    100, // MB
		MaxBackups: 10,
		Compress:   false,
	}

	if maxSize, ok := toInt(options["max_size_mb"]); ok && maxSize > 0 {
		writer.MaxSize = maxSize
	}
	if backups, ok := toInt(options["max_backups"]); ok && backups >= 0 {
		writer.MaxBackups = backups
	}
	if ageDays, ok := toInt(options["max_age_days"]); ok && ageDays > 0 {
		writer.MaxAge = ageDays
	}
	if compress, ok := options["compress"].(bool); ok {
		writer.Compress = compress
	}

	t := &FileTarget{
		writer:    writer,
		path:      writer.Filename,
		startTime: time.Now(),
		logger:    logger,
	}
	t.lastWrite.Store(time.Time{})

	return t, nil
}

func (t *FileTarget) Start(ctx context.Context) error {
	t.logger.Debug("msg", "File target started",
		"component", "file_target",
		"path", t.path)
	return nil
}

func (t *FileTarget) Write(entry core.Entry, formatted []byte) error {
	if _, err := t.writer.Write(formatted); err != nil {
		t.totalFailed.Add(1)
		return fmt.Errorf("file write failed: %w", err)
	}

	t.totalWritten.Add(1)
	t.lastWrite.Store(time.Now())
	return nil
}

func (t *FileTarget) Stop() {
	if err := t.writer.Close(); err != nil {
		t.logger.Error("msg", "Error closing file target",
			"component", "file_target",
			"error", err)
	}
	t.logger.Debug("msg", "File target stopped", "component", "file_target")
}

func (t *FileTarget) GetStats() TargetStats {
	lastWrite, _ := t.lastWrite.Load().(time.Time)

	return TargetStats{
		Type:         "file",
		TotalWritten: t.totalWritten.Load(),
		TotalFailed:  t.totalFailed.Load(),
		StartTime:    t.startTime,
		LastWrite:    lastWrite,
		Details: map[string]any{
			"path": t.path,
		},
	}
}

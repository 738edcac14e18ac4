// FILE: autolog/src/cmd/autolog-demo/bootstrap.go
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"autolog/src/internal/config"

	"github.com/lixenwraith/log"
)

// initializeLogger sets up the diagnostic logger from configuration.
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	logging := cfg.Logging
	if logging == nil {
		logging = config.DefaultLogConfig()
	}

	var configArgs []string

	levelValue, err := parseLogLevel(logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		configureFileLogging(&configArgs, logging)

	case "both":
		configArgs = append(configArgs, "enable_stdout=true")
		configureFileLogging(&configArgs, logging)
		configureConsoleTarget(&configArgs, logging)

	default:
		return fmt.Errorf("invalid log output mode: %s", logging.Output)
	}

	if logging.Console != nil && logging.Console.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", logging.Console.Format))
	}

	return logger.ApplyConfigString(configArgs...)
}

func configureFileLogging(configArgs *[]string, logging *config.LogConfig) {
	if logging.File == nil {
		return
	}
	*configArgs = append(*configArgs,
		fmt.Sprintf("directory=%s", logging.File.Directory),
		fmt.Sprintf("name=%s", logging.File.Name),
		fmt.Sprintf("max_size_mb=%d", logging.File.MaxSizeMB),
		fmt.Sprintf("max_total_size_mb=%d", logging.File.MaxTotalSizeMB))

	if logging.File.RetentionHours > 0 {
		*configArgs = append(*configArgs,
			fmt.Sprintf("retention_period_hrs=%.1f", logging.File.RetentionHours))
	}
}

func configureConsoleTarget(configArgs *[]string, logging *config.LogConfig) {
	target := "stderr"
	if logging.Console != nil && logging.Console.Target != "" {
		target = logging.Console.Target
	}

	if target == "split" {
		*configArgs = append(*configArgs, "stdout_split_mode=true", "stdout_target=split")
	} else {
		*configArgs = append(*configArgs, fmt.Sprintf("stdout_target=%s", target))
	}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
		}
	}
}

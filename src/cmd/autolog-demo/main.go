// FILE: autolog/src/cmd/autolog-demo/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autolog/src/internal/config"
	"autolog/src/internal/service"
	"autolog/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/prometheus/client_golang/prometheus"
)

var logger *log.Logger

var (
	configFile  = flag.String("config", "", "Config file path")
	showVersion = flag.Bool("version", false, "Show version information")
	interval    = flag.Duration("interval", 500*time.Millisecond, "Demo traffic interval")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if *configFile != "" {
		os.Setenv("AUTOLOG_CONFIG_FILE", *configFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := initializeLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer shutdownLogger()

	logger.Info("msg", "autolog demo starting",
		"version", version.String(),
		"config_file", *configFile,
		"auto_intercept", cfg.AutoIntercept)

	svc, err := service.New(cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("msg", "Failed to build service", "error", err)
		os.Exit(1)
	}
	if err := svc.Start(ctx); err != nil {
		logger.Error("msg", "Failed to start service", "error", err)
		os.Exit(1)
	}

	demo := newDemo(svc, logger)
	go demo.run(ctx, *interval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("msg", "Shutdown signal received, starting graceful shutdown")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		svc.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("msg", "Shutdown complete")
	case <-shutdownCtx.Done():
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		os.Exit(1)
	}
}

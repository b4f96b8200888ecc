// Command sortbench generates datasets and benchmarks the sorting package's
// algorithms on them, from flags or an interactive menu.
package main

import (
	"context"
	"os"
	"time"

	ampcli "github.com/amp-labs/amp-sort/cli"
	"github.com/amp-labs/amp-sort/logger"
	"github.com/amp-labs/amp-sort/shutdown"
	"github.com/amp-labs/amp-sort/stage"
	"github.com/amp-labs/amp-sort/startup"
	"github.com/amp-labs/amp-sort/telemetry"
)

const (
	appName         = "sortbench"
	shutdownTimeout = 5 * time.Second
)

// buildInfo is a JSON build.Info injected with -ldflags "-X main.buildInfo=...".
var buildInfo string //nolint:gochecknoglobals

func main() {
	ctx := shutdown.SetupHandler()

	envErr := startup.ConfigureEnvironment()

	logger.ConfigureLogging(appName)

	if envErr != nil {
		logger.Fatal("Loading environment files failed", "error", envErr)
	}

	ctx = logger.WithSubsystem(ctx, appName)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}

	stopTelemetry := startTelemetry(ctx)

	shutdown.BeforeShutdown(stopTelemetry)

	err = newApp(cfg, os.Stdout, ampcli.NewTerminal()).command().Run(ctx, os.Args)

	stopTelemetry()

	if err != nil {
		logger.Get(ctx).Error("sortbench failed", "error", err)
		os.Exit(1)
	}
}

// startTelemetry turns on tracing when OTEL_ENABLED is set and returns the
// func that flushes and stops it. The returned func may be called more than once.
func startTelemetry(ctx context.Context) func() {
	cfg, err := telemetry.LoadConfigFromEnv(ctx, string(stage.Current()))
	if err != nil {
		logger.Get(ctx).Warn("Ignoring telemetry configuration", "error", err)

		return func() {}
	}

	if err := telemetry.Initialize(ctx, cfg); err != nil {
		logger.Get(ctx).Warn("Tracing is off", "error", err)

		return func() {}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := telemetry.Shutdown(ctx); err != nil {
			logger.Get(ctx).Warn("Flushing traces failed", "error", err)
		}
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/iwvelando/rental-forecast/internal/server"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"go.uber.org/zap"
)

type serveCmd struct {
	configPath    string
	address       string
	maxUploadSize string
	logLevel      string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the calculation API over HTTP" }
func (*serveCmd) Usage() string {
	return `rental-forecast serve [-config <server-config>] [-address <addr>] [-max-upload <size>]

  Serves POST /api/calculate, POST /api/upload, GET /api/version and
  GET /metrics until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", constants.DefaultServerConfigFile, "path to server configuration file")
	f.StringVar(&c.address, "address", "", "listen address override")
	f.StringVar(&c.maxUploadSize, "max-upload", "", "maximum upload size override (e.g. 512K, 2M)")
	f.StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := server.LoadConfig(c.configPath)
	if err != nil {
		return fatalf("%v", err)
	}
	if c.address != "" {
		cfg.Address = c.address
	}
	if c.maxUploadSize != "" {
		size, err := server.ParseSize(c.maxUploadSize)
		if err != nil {
			return fatalf("%v", err)
		}
		cfg.SetUploadSizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, c.logLevel)
	if err != nil {
		return fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, logger, cfg); err != nil {
		logger.Error("server failed",
			zap.String("op", "main.serve"),
			zap.Error(err),
		)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, logger *zap.Logger, cfg *server.Config) error {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg.UploadSizeBytes(), version),
		ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down server", zap.String("op", "main.serve"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server exited", zap.String("op", "main.serve"))
	return nil
}

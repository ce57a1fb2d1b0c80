package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/courtboard"
	"github.com/jpalmerr/courtboard/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadBoard reads the config file named by the --config flag and builds a
// board from it.
func loadBoard(cmd *cobra.Command, logger *slog.Logger) (*config.Config, *courtboard.Board, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build options: %w", err)
	}
	opts = append(opts, courtboard.WithLogger(logger))

	b, err := courtboard.New(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create board: %w", err)
	}
	return cfg, b, nil
}

// serveCmd starts polling and the dashboard server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start polling and the dashboard server",
	Long: `Start the courtboard dashboard server.

The server will:
  - Load configuration from the specified YAML file
  - Poll the status endpoint on the configured interval
  - Serve the dashboard on the configured port

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  courtboard serve -c config.yaml
  courtboard serve --config /etc/courtboard/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	serveCmd.Flags().Bool("debug", false, "enable debug logging")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := newLogger(level)

	cfg, b, err := loadBoard(cmd, logger)
	if err != nil {
		return err
	}

	logger.Info("config loaded",
		"status_url", cfg.StatusURL,
		"schema", cfg.Schema,
	)
	logger.Info("starting server",
		"port", cfg.Port,
		"poll_interval", b.PollingInterval().String(),
	)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}

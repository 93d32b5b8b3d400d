package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exaccum-go/internal/api"
	"github.com/ukaji3/exaccum-go/internal/config"
	"github.com/ukaji3/exaccum-go/pkg/exaccum"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/session"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (configured from the environment)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Flags override the environment.
	if schemaPath != "" {
		cfg.SchemaPath = schemaPath
	}
	if strict {
		cfg.StrictNumbers = true
	}

	opts := exaccum.DefaultOptions()
	opts.Strict = cfg.StrictNumbers
	opts.Logger = logger
	if cfg.SchemaPath != "" {
		sc, err := schema.Load(cfg.SchemaPath)
		if err != nil {
			logger.Error("failed to load schema", "path", cfg.SchemaPath, "error", err)
			return err
		}
		opts.Schema = sc
	}

	if _, err := os.Stat(cfg.SourcePath); err != nil {
		logger.Warn("source workbook not readable, requests will fail until it exists",
			"path", cfg.SourcePath, "error", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessions
	store := session.NewStore(cfg.SessionTTL)
	go store.Run(ctx, cfg.SweepInterval, func(removed int) {
		logger.Info("expired sessions evicted", "removed", removed, "live", store.Len())
	})

	router := api.NewRouter(api.Settings{
		SourcePath:   cfg.SourcePath,
		ExportPrefix: cfg.ExportPrefix,
		ResultPrefix: cfg.ResultPrefix,
		Options:      opts,
	}, store, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("exaccum server starting", "addr", addr, "source", cfg.SourcePath, "session_ttl", cfg.SessionTTL.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

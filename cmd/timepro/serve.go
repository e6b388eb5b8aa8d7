package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kulesy/TimePro-MCP/internal/config"
	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
	"github.com/kulesy/TimePro-MCP/internal/mcp"
	"github.com/kulesy/TimePro-MCP/internal/sqlite"
	"github.com/kulesy/TimePro-MCP/internal/storage/jsonfile"
	"github.com/kulesy/TimePro-MCP/internal/transport"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the timesheet API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg.Log.Level, cfg.Log.Path, os.Stdout)
			if err != nil {
				return err
			}
			defer closeLog()
			return runServe(cmd.Context(), cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	repo, closeRepo, err := openRepository(cfg.Store)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "path", cfg.Store.Path, "error", err)
		return err
	}
	defer closeRepo()

	svc := timesheet.NewService(repo, logger)
	handler := mcp.NewHandler(svc, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           transport.NewServer(handler, svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "store", cfg.Store.Driver, "path", cfg.Store.Path)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func openRepository(cfg config.StoreConfig) (timesheet.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewTimesheetRepository(db), func() { _ = db.Close() }, nil
	default:
		store, err := jsonfile.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

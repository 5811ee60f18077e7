package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care/internal/adapters/auth/remote"
	"pet-care/internal/adapters/storage/blob"
	pg "pet-care/internal/adapters/storage/postgres"
	"pet-care/internal/config"
	"pet-care/internal/platform/logger"
	"pet-care/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer syncLogger(log)

	opts := router.Options{
		Logger:          log,
		Locale:          cfg.Locale,
		DefaultFoodKcal: cfg.DefaultFoodKcal,
	}
	// Sin AUTH_VERIFY_URL queda nil => modo dev
	if cfg.AuthVerifyURL != "" {
		v, err := remote.NewVerifier(remote.Config{BaseURL: cfg.AuthVerifyURL, APIKey: cfg.AuthAPIKey})
		if err != nil {
			return fmt.Errorf("auth verifier: %w", err)
		}
		opts.AuthVerifier = v
	}

	closeStore, err := openStorage(cmd.Context(), cfg, &opts)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": cfg.Addr, "storage": string(cfg.Storage)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStorage completa opts según el backend configurado y devuelve cómo cerrarlo.
func openStorage(ctx context.Context, cfg config.Config, opts *router.Options) (func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts.DB = db
		return func() { _ = db.Close() }, nil
	case config.StorageSQLite:
		store, err := blob.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		opts.Blob = store
		return func() { _ = store.Close() }, nil
	default:
		return func() {}, nil
	}
}

// openPostgres abre la conexión y aplica el schema.
func openPostgres(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pg.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

func syncLogger(l logger.Logger) {
	if s, ok := l.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

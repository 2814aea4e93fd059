// Package serve implements the serve command that runs the HTTP API.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/ukdirectory/internal/api"
	"github.com/jonesrussell/ukdirectory/internal/config"
	"github.com/jonesrussell/ukdirectory/internal/logger"
	"github.com/jonesrussell/ukdirectory/internal/scraper"
	"github.com/jonesrussell/ukdirectory/internal/search"
)

// shutdownTimeout bounds the drain of in-flight requests on exit.
const shutdownTimeout = 10 * time.Second

// Command returns the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Development: cfg.Logger.Development,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	client := scraper.NewClient(cfg.Scraper.RequestTimeout, cfg.Scraper.UserAgent)
	adapters := scraper.DefaultAdapters(scraper.Options{
		Client:   client,
		DelayMin: cfg.Scraper.DelayMin,
		DelayMax: cfg.Scraper.DelayMax,
		Logger:   log,
	})

	orchestrator := search.NewOrchestrator(adapters, log)
	router := api.NewRouter(api.NewHandler(orchestrator, log), log)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", cfg.Server.Address, "env", cfg.Env)
		if serveErr := srv.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err = <-errCh:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
	"github.com/MrJamesThe3rd/cedar/internal/budget"
	"github.com/MrJamesThe3rd/cedar/internal/config"
	"github.com/MrJamesThe3rd/cedar/internal/export"
	cedarHttp "github.com/MrJamesThe3rd/cedar/internal/http"
	assistantHandler "github.com/MrJamesThe3rd/cedar/internal/http/assistant"
	exportHandler "github.com/MrJamesThe3rd/cedar/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/cedar/internal/http/importcsv"
	summaryHandler "github.com/MrJamesThe3rd/cedar/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/cedar/internal/http/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/importer"
	"github.com/MrJamesThe3rd/cedar/internal/logger"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
	txStore "github.com/MrJamesThe3rd/cedar/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	if err != nil {
		log.Error().Err(err).Msg("invalid log level, using info")
	}

	log = log.With().Str("app", cfg.App.Name).Logger()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ai, err := assistant.NewGemini(ctx, cfg.Assistant(), log)
	if err != nil {
		return fmt.Errorf("create assistant: %w", err)
	}

	var (
		transactionService = transaction.NewService(txStore.New())
		budgetService      = budget.NewService(transactionService)
		importService      = importer.NewService(transactionService, log)
		exportService      = export.NewService(transactionService)
		videoJobs          = assistant.NewVideoJobs(ctx, ai, log)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		importH      = importHandler.NewHandler(importService)
		summaryH     = summaryHandler.NewHandler(budgetService)
		exportH      = exportHandler.NewHandler(exportService)
		assistantH   = assistantHandler.NewHandler(ai, videoJobs, transactionService)
	)

	router := cedarHttp.New(log, cedarHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}, transactionH, importH, summaryH, exportH, assistantH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		videoJobs.Wait()

		return nil
	})

	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/tally/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/tally/internal/http/category"
	expenseHandler "github.com/MrJamesThe3rd/tally/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	statsHandler "github.com/MrJamesThe3rd/tally/internal/http/stats"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, time.Now)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	router := tallyHttp.New(tallyHttp.Handlers{
		Expenses:   expenseHandler.NewHandler(a.Ledger),
		Budget:     budgetHandler.NewHandler(a.Ledger, time.Now),
		Stats:      statsHandler.NewHandler(a.Ledger, time.Now),
		Categories: categoryHandler.NewHandler(),
		Import:     importHandler.NewHandler(a.ImportService),
		Export:     exportHandler.NewHandler(a.ExportService, time.Now),
	}, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", srv.Addr, "store", cfg.Store.Backend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

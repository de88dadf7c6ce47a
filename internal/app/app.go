// Package app wires the configured store, the ledger and the services shared
// by the API server and the TUI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/memstore"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

type App struct {
	Store  ledger.Store
	Ledger *ledger.Ledger

	ImportService *importer.Service
	ExportService *export.Service

	db *sql.DB
}

// New opens the configured store, loads the ledger from it and builds the
// services around it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, now func() time.Time) (*App, error) {
	st, db, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	l := ledger.New(st, ledger.WithLogger(logger), ledger.WithClock(now))
	if err := l.Load(ctx); err != nil {
		if db != nil {
			db.Close()
		}

		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	return &App{
		Store:         st,
		Ledger:        l,
		ImportService: importer.NewService(l),
		ExportService: export.NewService(l),
		db:            db,
	}, nil
}

func openStore(cfg *config.Config) (ledger.Store, *sql.DB, error) {
	driver, dsn, ok := cfg.Driver()
	if !ok {
		return memstore.New(), nil, nil
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(driver, dsn); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}

	return store.New(db, driver), db, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}

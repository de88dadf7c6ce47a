package app_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

var now = func() time.Time { return time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC) }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Backend = config.BackendMemory

	a, err := app.New(context.Background(), cfg, discard(), now)
	require.NoError(t, err)
	defer a.Close()

	snap := a.Ledger.Snapshot()
	assert.NotZero(t, snap.Len())
	assert.Equal(t, ledger.DefaultBudget, snap.Budget())
}

func TestNew_SQLitePersistsAcrossRestarts(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Backend = config.BackendSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "data", "tally.db")

	ctx := context.Background()

	first, err := app.New(ctx, cfg, discard(), now)
	require.NoError(t, err)

	created, err := first.Ledger.Create(ctx, ledger.Params{
		Amount:   12345,
		Category: expense.Travel,
		Date:     expense.NewDate(2025, time.August, 19),
	})
	require.NoError(t, err)
	require.NoError(t, first.Ledger.SetBudget(ctx, 200000))
	require.NoError(t, first.Close())

	second, err := app.New(ctx, cfg, discard(), now)
	require.NoError(t, err)
	defer second.Close()

	got, ok := second.Ledger.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.Amount, got.Amount)
	assert.Equal(t, expense.Money(200000), second.Ledger.Snapshot().Budget())
}

package theme_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/memstore"
	"github.com/MrJamesThe3rd/tally/internal/theme"
)

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	got, err := theme.Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, got)

	require.NoError(t, theme.Save(ctx, store, got.Toggle()))

	got, err = theme.Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, got)
	assert.Equal(t, theme.Light, got.Toggle())

	assert.Error(t, theme.Save(ctx, store, "sepia"))
}

func TestLoad_UnknownValue(t *testing.T) {
	store := memstore.NewWith(map[string]string{theme.Key: "neon"})

	got, err := theme.Load(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, got)
}

func TestStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ledger.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), theme.Key).Return("", false, errors.New("offline"))
	store.EXPECT().Set(gomock.Any(), theme.Key, "dark").Return(errors.New("offline"))

	var pErr *ledger.PersistenceError

	_, err := theme.Load(context.Background(), store)
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "get", pErr.Op)

	err = theme.Save(context.Background(), store, theme.Dark)
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "set", pErr.Op)
}

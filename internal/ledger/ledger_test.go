package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/memstore"
)

var fixedNow = time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC)

func newLedger(t *testing.T, store ledger.Store) *ledger.Ledger {
	t.Helper()

	return ledger.New(store, ledger.WithClock(func() time.Time { return fixedNow }))
}

func loadedLedger(t *testing.T) (*ledger.Ledger, *memstore.Store) {
	t.Helper()

	store := memstore.New()
	l := newLedger(t, store)
	require.NoError(t, l.Load(context.Background()))

	return l, store
}

func coffee() ledger.Params {
	return ledger.Params{
		Amount:      350,
		Category:    expense.FoodDining,
		Description: "Coffee",
		Date:        expense.NewDate(2025, time.August, 19),
	}
}

func TestLedger_Load_SeedsWhenEmpty(t *testing.T) {
	l, store := loadedLedger(t)

	snap := l.Snapshot()
	require.Equal(t, 5, snap.Len())
	assert.Equal(t, ledger.DefaultBudget, snap.Budget())

	records := snap.Records()
	assert.Equal(t, expense.Money(2550), records[0].Amount)
	assert.Equal(t, expense.FoodDining, records[0].Category)
	assert.Equal(t, "Lunch at local cafe", records[0].Description)
	assert.Equal(t, expense.NewDate(2025, time.August, 15), records[0].Date)
	assert.Equal(t, time.Date(2025, time.August, 15, 12, 30, 0, 0, time.UTC), records[0].CreatedAt)

	assert.Equal(t, "Internet bill", records[4].Description)
	assert.Equal(t, expense.BillsUtilities, records[4].Category)
	assert.Equal(t, expense.Money(8500), records[4].Amount)

	stored := store.Snapshot()
	assert.Contains(t, stored, ledger.KeyExpenses)
	assert.NotContains(t, stored, ledger.KeyBudget)
}

func TestLedger_Load_StoredData(t *testing.T) {
	store := memstore.NewWith(map[string]string{
		ledger.KeyExpenses: `[{"id":"0198c0de-0000-7000-8000-000000000001","amount":25.5,"category":"Food & Dining",` +
			`"description":"Lunch","date":"2025-08-15","createdAt":"2025-08-15T12:30:00Z"}]`,
		ledger.KeyBudget: "2000",
	})

	l := newLedger(t, store)
	require.NoError(t, l.Load(context.Background()))

	snap := l.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, expense.Money(200000), snap.Budget())

	got := snap.Records()[0]
	assert.Equal(t, uuid.MustParse("0198c0de-0000-7000-8000-000000000001"), got.ID)
	assert.Equal(t, expense.Money(2550), got.Amount)
}

func TestLedger_Load_EmptyListIsNotReseeded(t *testing.T) {
	store := memstore.NewWith(map[string]string{ledger.KeyExpenses: `[]`})

	l := newLedger(t, store)
	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestLedger_Load_CorruptedExpenses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "NotJSON", raw: `{oops`},
		{name: "UnknownCategory", raw: `[{"id":"0198c0de-0000-7000-8000-000000000001","amount":1,"category":"Pets","date":"2025-08-15","createdAt":"2025-08-15T12:30:00Z"}]`},
		{name: "BadDate", raw: `[{"id":"0198c0de-0000-7000-8000-000000000001","amount":1,"category":"Other","date":"15/08/2025","createdAt":"2025-08-15T12:30:00Z"}]`},
		{name: "NegativeAmount", raw: `[{"id":"0198c0de-0000-7000-8000-000000000001","amount":-1,"category":"Other","date":"2025-08-15","createdAt":"2025-08-15T12:30:00Z"}]`},
		{
			name: "DuplicateID",
			raw: `[{"id":"0198c0de-0000-7000-8000-000000000001","amount":1,"category":"Other","date":"2025-08-15","createdAt":"2025-08-15T12:30:00Z"},` +
				`{"id":"0198c0de-0000-7000-8000-000000000001","amount":2,"category":"Other","date":"2025-08-15","createdAt":"2025-08-15T12:30:00Z"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.NewWith(map[string]string{ledger.KeyExpenses: tt.raw})
			l := newLedger(t, store)

			err := l.Load(context.Background())

			var pErr *ledger.PersistenceError
			require.True(t, errors.As(err, &pErr))
			assert.Equal(t, "decode", pErr.Op)
			assert.Equal(t, ledger.KeyExpenses, pErr.Key)
			assert.Equal(t, 0, l.Snapshot().Len())

			v, _, _ := store.Get(context.Background(), ledger.KeyExpenses)
			assert.Equal(t, tt.raw, v, "corrupted data must not be overwritten")
		})
	}
}

func TestLedger_Load_UnusableBudgetFallsBack(t *testing.T) {
	for _, raw := range []string{"lots", "0", "-10"} {
		store := memstore.NewWith(map[string]string{ledger.KeyExpenses: `[]`, ledger.KeyBudget: raw})

		l := newLedger(t, store)
		require.NoError(t, l.Load(context.Background()), raw)
		assert.Equal(t, ledger.DefaultBudget, l.Snapshot().Budget(), raw)
	}
}

func TestLedger_Load_StoreErrors(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *ledger.MockStore)
		wantOp    string
		wantKey   string
	}

	tests := []testCase{
		{
			name: "GetExpenses",
			setupMock: func(m *ledger.MockStore) {
				m.EXPECT().Get(gomock.Any(), ledger.KeyExpenses).Return("", false, errors.New("disk gone"))
			},
			wantOp:  "get",
			wantKey: ledger.KeyExpenses,
		},
		{
			name: "PersistSeed",
			setupMock: func(m *ledger.MockStore) {
				m.EXPECT().Get(gomock.Any(), ledger.KeyExpenses).Return("", false, nil)
				m.EXPECT().Set(gomock.Any(), ledger.KeyExpenses, gomock.Any()).Return(errors.New("quota exceeded"))
			},
			wantOp:  "set",
			wantKey: ledger.KeyExpenses,
		},
		{
			name: "GetBudget",
			setupMock: func(m *ledger.MockStore) {
				m.EXPECT().Get(gomock.Any(), ledger.KeyExpenses).Return("[]", true, nil)
				m.EXPECT().Get(gomock.Any(), ledger.KeyBudget).Return("", false, errors.New("disk gone"))
			},
			wantOp:  "get",
			wantKey: ledger.KeyBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := ledger.NewMockStore(ctrl)
			tt.setupMock(store)

			err := newLedger(t, store).Load(context.Background())

			var pErr *ledger.PersistenceError
			require.True(t, errors.As(err, &pErr))
			assert.Equal(t, tt.wantOp, pErr.Op)
			assert.Equal(t, tt.wantKey, pErr.Key)
		})
	}
}

func TestLedger_Create(t *testing.T) {
	l, store := loadedLedger(t)

	got, err := l.Create(context.Background(), coffee())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, expense.Money(350), got.Amount)
	assert.Equal(t, "Coffee", got.Description)

	snap := l.Snapshot()
	require.Equal(t, 6, snap.Len())
	assert.Equal(t, got, snap.Records()[5])

	reloaded := newLedger(t, store)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Equal(t, snap.Records(), reloaded.Snapshot().Records())
}

func TestLedger_Create_UniqueIDs(t *testing.T) {
	l := newLedger(t, memstore.NewWith(map[string]string{ledger.KeyExpenses: `[]`}))
	require.NoError(t, l.Load(context.Background()))

	const n = 200

	ids := make(map[uuid.UUID]struct{}, n)

	for range n {
		e, err := l.Create(context.Background(), coffee())
		require.NoError(t, err)

		ids[e.ID] = struct{}{}
	}

	assert.Len(t, ids, n)
	assert.Equal(t, n, l.Snapshot().Len())
}

func TestLedger_Create_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ledger.NewMockStore(ctrl)
	l := newLedger(t, store)

	params := coffee()
	params.Category = 0

	_, err := l.Create(context.Background(), params)

	var vErr *expense.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "category", vErr.Field)
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestLedger_Create_PersistFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ledger.NewMockStore(ctrl)
	store.EXPECT().Set(gomock.Any(), ledger.KeyExpenses, gomock.Any()).Return(errors.New("quota exceeded"))

	l := newLedger(t, store)

	_, err := l.Create(context.Background(), coffee())

	var pErr *ledger.PersistenceError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "set", pErr.Op)
	assert.EqualError(t, errors.Unwrap(err), "quota exceeded")
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestLedger_Create_OversizedAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ledger.NewMockStore(ctrl)
	l := newLedger(t, store)

	params := coffee()
	params.Amount = expense.MaxAmount + 1

	_, err := l.Create(context.Background(), params)

	var vErr *expense.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "amount", vErr.Field)
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestLedger_CreateBatch_AllOrNothing(t *testing.T) {
	l, _ := loadedLedger(t)

	bad := coffee()
	bad.Amount = -5

	_, err := l.CreateBatch(context.Background(), []ledger.Params{coffee(), bad})
	require.Error(t, err)
	assert.Equal(t, 5, l.Snapshot().Len())

	created, err := l.CreateBatch(context.Background(), []ledger.Params{coffee(), coffee()})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, 7, l.Snapshot().Len())

	created, err = l.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestLedger_Update(t *testing.T) {
	l, _ := loadedLedger(t)
	original := l.Snapshot().Records()[1]

	patch := ledger.Params{
		Amount:      5000,
		Category:    expense.Travel,
		Description: "Train ticket",
		Date:        expense.NewDate(2025, time.August, 16),
	}

	got, found, err := l.Update(context.Background(), original.ID, patch)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)
	assert.Equal(t, patch.Amount, got.Amount)
	assert.Equal(t, patch.Category, got.Category)
	assert.Equal(t, patch.Description, got.Description)
	assert.Equal(t, patch.Date, got.Date)

	records := l.Snapshot().Records()
	assert.Len(t, records, 5)
	assert.Equal(t, got, records[1])
}

func TestLedger_Update_UnknownIDIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ledger.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), ledger.KeyExpenses).Return("[]", true, nil)
	store.EXPECT().Get(gomock.Any(), ledger.KeyBudget).Return("", false, nil)

	l := newLedger(t, store)
	require.NoError(t, l.Load(context.Background()))

	_, found, err := l.Update(context.Background(), uuid.New(), coffee())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestLedger_Update_ValidationError(t *testing.T) {
	l, _ := loadedLedger(t)
	before := l.Snapshot().Records()

	patch := coffee()
	patch.Date = expense.Date{}

	_, found, err := l.Update(context.Background(), before[0].ID, patch)
	assert.True(t, found)

	var vErr *expense.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, before, l.Snapshot().Records())
}

func TestLedger_Delete(t *testing.T) {
	l, store := loadedLedger(t)
	target := l.Snapshot().Records()[2]

	deleted, err := l.Delete(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	records := l.Snapshot().Records()
	assert.Len(t, records, 4)

	for _, r := range records {
		assert.NotEqual(t, target.ID, r.ID)
	}

	deleted, err = l.Delete(context.Background(), target.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 4, l.Snapshot().Len())

	reloaded := newLedger(t, store)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Equal(t, records, reloaded.Snapshot().Records())
}

func TestLedger_SetBudget(t *testing.T) {
	l, store := loadedLedger(t)

	for _, bad := range []expense.Money{0, -100, expense.MaxAmount + 1} {
		err := l.SetBudget(context.Background(), bad)

		var vErr *expense.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "budget", vErr.Field)
	}

	assert.Equal(t, ledger.DefaultBudget, l.Snapshot().Budget())

	require.NoError(t, l.SetBudget(context.Background(), 250075))
	assert.Equal(t, expense.Money(250075), l.Snapshot().Budget())

	v, ok, err := store.Get(context.Background(), ledger.KeyBudget)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2500.75", v)
}

func TestLedger_SaveLoadRoundTrip(t *testing.T) {
	l, store := loadedLedger(t)

	_, err := l.Create(context.Background(), coffee())
	require.NoError(t, err)
	require.NoError(t, l.SetBudget(context.Background(), 99999))
	require.NoError(t, l.Save(context.Background()))

	reloaded := newLedger(t, store)
	require.NoError(t, reloaded.Load(context.Background()))

	assert.Equal(t, l.Snapshot().Records(), reloaded.Snapshot().Records())
	assert.Equal(t, expense.Money(99999), reloaded.Snapshot().Budget())
}

func TestSnapshot_IsACopy(t *testing.T) {
	l, _ := loadedLedger(t)

	snap := l.Snapshot()
	records := snap.Records()
	records[0].Description = "changed"

	assert.Equal(t, "Lunch at local cafe", snap.Records()[0].Description)
	assert.Equal(t, "Lunch at local cafe", l.Snapshot().Records()[0].Description)
}

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

//go:generate mockgen -source=ledger.go -destination=store_mock.go -package=ledger
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Params holds the user-editable fields of an expense.
type Params struct {
	Amount      expense.Money
	Category    expense.Category
	Description string
	Date        expense.Date
}

// Ledger owns the expense list and the monthly budget. Every mutation is
// written through to the Store before it returns.
type Ledger struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() (uuid.UUID, error)

	mu       sync.RWMutex
	expenses []expense.Expense
	budget   expense.Money
}

type Option func(*Ledger)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(l *Ledger) { l.newID = newID }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewV7,
		budget: DefaultBudget,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load replaces the in-memory state with what the Store holds. When no
// expenses have ever been stored the sample expenses are seeded and
// persisted.
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, ok, err := l.store.Get(ctx, KeyExpenses)
	if err != nil {
		return &PersistenceError{Op: "get", Key: KeyExpenses, Err: err}
	}

	var expenses []expense.Expense

	if ok {
		expenses, err = decodeExpenses(raw)
		if err != nil {
			return &PersistenceError{Op: "decode", Key: KeyExpenses, Err: err}
		}
	} else {
		expenses, err = l.seed()
		if err != nil {
			return err
		}

		if err := l.persistExpenses(ctx, expenses); err != nil {
			return err
		}

		l.logger.InfoContext(ctx, "seeded sample expenses", "count", len(expenses))
	}

	budget, err := l.loadBudget(ctx)
	if err != nil {
		return err
	}

	l.expenses = expenses
	l.budget = budget

	return nil
}

func (l *Ledger) loadBudget(ctx context.Context) (expense.Money, error) {
	raw, ok, err := l.store.Get(ctx, KeyBudget)
	if err != nil {
		return 0, &PersistenceError{Op: "get", Key: KeyBudget, Err: err}
	}

	if !ok {
		return DefaultBudget, nil
	}

	budget, err := decodeBudget(raw)
	if err != nil {
		l.logger.WarnContext(ctx, "ignoring stored budget", "value", raw, "error", err)
		return DefaultBudget, nil
	}

	return budget, nil
}

func (l *Ledger) seed() ([]expense.Expense, error) {
	expenses := make([]expense.Expense, 0, len(seedParams))

	for _, s := range seedParams {
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("generating id: %w", err)
		}

		expenses = append(expenses, newExpense(id, s.Params, s.CreatedAt))
	}

	return expenses, nil
}

// Save persists the full expense list and the budget.
func (l *Ledger) Save(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := l.persistExpenses(ctx, l.expenses); err != nil {
		return err
	}

	return l.persistBudget(ctx, l.budget)
}

func (l *Ledger) Create(ctx context.Context, params Params) (expense.Expense, error) {
	created, err := l.CreateBatch(ctx, []Params{params})
	if err != nil {
		return expense.Expense{}, err
	}

	return created[0], nil
}

// CreateBatch validates every params before adding any of them, then
// persists once.
func (l *Ledger) CreateBatch(ctx context.Context, params []Params) ([]expense.Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	created := make([]expense.Expense, 0, len(params))

	for i, p := range params {
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("generating id: %w", err)
		}

		e := newExpense(id, p, now)
		if err := e.Validate(); err != nil {
			if len(params) > 1 {
				return nil, fmt.Errorf("expense %d: %w", i+1, err)
			}

			return nil, err
		}

		created = append(created, e)
	}

	next := append(slices.Clip(l.expenses), created...)
	if err := l.persistExpenses(ctx, next); err != nil {
		return nil, err
	}

	l.expenses = next

	l.logger.DebugContext(ctx, "created expenses", "count", len(created))

	return created, nil
}

// Update replaces every field of the expense except its ID and creation
// time. An unknown id is not an error: nothing changes and found is false.
func (l *Ledger) Update(ctx context.Context, id uuid.UUID, params Params) (expense.Expense, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return expense.Expense{}, false, nil
	}

	current := l.expenses[idx]

	updated := newExpense(current.ID, params, current.CreatedAt)
	if err := updated.Validate(); err != nil {
		return expense.Expense{}, true, err
	}

	next := slices.Clone(l.expenses)
	next[idx] = updated

	if err := l.persistExpenses(ctx, next); err != nil {
		return expense.Expense{}, true, err
	}

	l.expenses = next

	return updated, true, nil
}

// Delete removes the expense. Deleting an unknown id is a no-op and reports
// false.
func (l *Ledger) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(l.expenses), idx, idx+1)
	if err := l.persistExpenses(ctx, next); err != nil {
		return false, err
	}

	l.expenses = next

	return true, nil
}

func (l *Ledger) Get(id uuid.UUID) (expense.Expense, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return expense.Expense{}, false
	}

	return l.expenses[idx], true
}

// SetBudget overwrites the monthly budget. Only positive values are accepted.
func (l *Ledger) SetBudget(ctx context.Context, budget expense.Money) error {
	if budget <= 0 {
		return &expense.ValidationError{Field: "budget", Reason: "must be greater than zero"}
	}

	if budget > expense.MaxAmount {
		return &expense.ValidationError{Field: "budget", Reason: "out of range"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.persistBudget(ctx, budget); err != nil {
		return err
	}

	l.budget = budget

	return nil
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Snapshot{
		expenses: slices.Clone(l.expenses),
		budget:   l.budget,
	}
}

func (l *Ledger) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(l.expenses, func(e expense.Expense) bool {
		return e.ID == id
	})
}

func (l *Ledger) persistExpenses(ctx context.Context, expenses []expense.Expense) error {
	raw, err := encodeExpenses(expenses)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: KeyExpenses, Err: err}
	}

	if err := l.store.Set(ctx, KeyExpenses, raw); err != nil {
		return &PersistenceError{Op: "set", Key: KeyExpenses, Err: err}
	}

	return nil
}

func (l *Ledger) persistBudget(ctx context.Context, budget expense.Money) error {
	if err := l.store.Set(ctx, KeyBudget, encodeBudget(budget)); err != nil {
		return &PersistenceError{Op: "set", Key: KeyBudget, Err: err}
	}

	return nil
}

func newExpense(id uuid.UUID, p Params, createdAt time.Time) expense.Expense {
	return expense.Expense{
		ID:          id,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		Date:        p.Date,
		CreatedAt:   createdAt,
	}
}

// Snapshot is a read-only copy of the ledger state.
type Snapshot struct {
	expenses []expense.Expense
	budget   expense.Money
}

// Records returns the expenses in insertion order. The slice is a copy and
// may be modified by the caller.
func (s Snapshot) Records() []expense.Expense {
	return slices.Clone(s.expenses)
}

func (s Snapshot) Budget() expense.Money {
	return s.budget
}

func (s Snapshot) Len() int {
	return len(s.expenses)
}

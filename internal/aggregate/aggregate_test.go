package aggregate_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/memstore"
)

func seedRecords(t *testing.T) []expense.Expense {
	t.Helper()

	l := ledger.New(memstore.New())
	require.NoError(t, l.Load(context.Background()))

	return l.Snapshot().Records()
}

func descriptions(records []expense.Expense) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Description
	}

	return out
}

func rec(amount expense.Money, c expense.Category, desc string, date expense.Date, created time.Time) expense.Expense {
	return expense.Expense{
		ID:          uuid.New(),
		Amount:      amount,
		Category:    c,
		Description: desc,
		Date:        date,
		CreatedAt:   created,
	}
}

func TestTotals_SeedScenario(t *testing.T) {
	records := seedRecords(t)

	total := aggregate.TotalAll(records)
	assert.Equal(t, expense.Money(29149), total)
	assert.Equal(t, "291.49", total.String())

	month := aggregate.TotalInMonth(records, time.August, 2025)
	assert.Equal(t, total, month)
	assert.Equal(t, expense.Money(0), aggregate.TotalInMonth(records, time.September, 2025))
	assert.Equal(t, expense.Money(0), aggregate.TotalInMonth(records, time.August, 2024))

	remaining := aggregate.BudgetRemaining(ledger.DefaultBudget, month)
	assert.Equal(t, "1208.51", remaining.String())

	percent, ok := aggregate.BudgetProgressPercent(ledger.DefaultBudget, month)
	require.True(t, ok)
	assert.InDelta(t, 19.4327, percent, 0.0001)
}

func TestTotals_Empty(t *testing.T) {
	assert.Equal(t, expense.Money(0), aggregate.TotalAll(nil))
	assert.Equal(t, expense.Money(0), aggregate.TotalInMonth(nil, time.August, 2025))

	start := expense.NewDate(2025, time.August, 17)
	assert.Equal(t, expense.Money(0), aggregate.TotalInWeek(nil, start, start.AddDays(3)))
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want expense.Date
	}{
		{
			name: "Wednesday",
			now:  time.Date(2025, time.August, 20, 18, 0, 0, 0, time.UTC),
			want: expense.NewDate(2025, time.August, 17),
		},
		{
			name: "Sunday",
			now:  time.Date(2025, time.August, 17, 0, 0, 0, 0, time.UTC),
			want: expense.NewDate(2025, time.August, 17),
		},
		{
			name: "Saturday",
			now:  time.Date(2025, time.August, 23, 23, 59, 0, 0, time.UTC),
			want: expense.NewDate(2025, time.August, 17),
		},
		{
			name: "AcrossMonth",
			now:  time.Date(2025, time.October, 2, 9, 0, 0, 0, time.UTC),
			want: expense.NewDate(2025, time.September, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.WeekStart(tt.now))
		})
	}
}

func TestTotalInWeek(t *testing.T) {
	records := seedRecords(t)

	now := time.Date(2025, time.August, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, expense.Money(29149), aggregate.TotalInWeek(records, aggregate.WeekStart(now), expense.DateOf(now)))

	now = time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, expense.Money(0), aggregate.TotalInWeek(records, aggregate.WeekStart(now), expense.DateOf(now)))

	// Only the 12th, 13th and 14th fall inside the window.
	start := expense.NewDate(2025, time.August, 11)
	assert.Equal(t, expense.Money(18099), aggregate.TotalInWeek(records, start, expense.NewDate(2025, time.August, 14)))
}

func TestBudgetRemaining_Negative(t *testing.T) {
	assert.Equal(t, expense.Money(-500), aggregate.BudgetRemaining(1000, 1500))
}

func TestBudgetProgressPercent(t *testing.T) {
	tests := []struct {
		name   string
		budget expense.Money
		spent  expense.Money
		want   float64
		wantOK bool
	}{
		{name: "Half", budget: 10000, spent: 5000, want: 50, wantOK: true},
		{name: "Capped", budget: 10000, spent: 25000, want: 100, wantOK: true},
		{name: "NothingSpent", budget: 10000, spent: 0, want: 0, wantOK: true},
		{name: "ZeroBudget", budget: 0, spent: 5000, want: 0, wantOK: false},
		{name: "NegativeBudget", budget: -100, spent: 5000, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := aggregate.BudgetProgressPercent(tt.budget, tt.spent)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
		})
	}
}

func TestRecentTransactions(t *testing.T) {
	records := seedRecords(t)

	recent := aggregate.RecentTransactions(records, aggregate.DefaultRecentLimit)
	assert.Equal(t, []string{
		"Lunch at local cafe", "Gas for car", "Grocery shopping", "Movie ticket", "Internet bill",
	}, descriptions(recent))

	assert.Len(t, aggregate.RecentTransactions(records, 2), 2)
	assert.Empty(t, aggregate.RecentTransactions(records, 0))
	assert.Empty(t, aggregate.RecentTransactions(nil, 5))
}

func TestRecentTransactions_TiesKeepInsertionOrder(t *testing.T) {
	at := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	day := expense.NewDate(2025, time.August, 1)

	records := []expense.Expense{
		rec(100, expense.Other, "first", day, at),
		rec(100, expense.Other, "second", day, at),
		rec(100, expense.Other, "newest", day, at.Add(time.Minute)),
		rec(100, expense.Other, "third", day, at),
	}

	got := aggregate.RecentTransactions(records, 10)
	assert.Equal(t, []string{"newest", "first", "second", "third"}, descriptions(got))
	assert.Equal(t, "first", records[0].Description, "input must not be reordered")
}

func TestCategoryBreakdown(t *testing.T) {
	records := seedRecords(t)

	got := aggregate.CategoryBreakdown(records, aggregate.DefaultBreakdownLimit)
	assert.Equal(t, []aggregate.CategoryAmount{
		{Category: expense.Shopping, Amount: 12000},
		{Category: expense.BillsUtilities, Amount: 8500},
		{Category: expense.Transportation, Amount: 4500},
		{Category: expense.FoodDining, Amount: 2550},
		{Category: expense.Entertainment, Amount: 1599},
	}, got)

	top := aggregate.CategoryBreakdown(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, expense.Shopping, top[0].Category)

	assert.Empty(t, aggregate.CategoryBreakdown(nil, 6))
}

func TestCategoryBreakdown_GroupsAndOrders(t *testing.T) {
	day := expense.NewDate(2025, time.August, 1)
	at := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	var records []expense.Expense
	for i, c := range expense.Categories() {
		records = append(records, rec(expense.Money(100*(i%3+1)), c, "", day, at))
	}

	records = append(records, rec(250, expense.Travel, "", day, at))

	got := aggregate.CategoryBreakdown(records, 6)
	require.Len(t, got, 6)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Amount, got[i].Amount)
	}

	// Travel is the only category with two records.
	assert.Equal(t, expense.Travel, got[0].Category)
	assert.Equal(t, expense.Money(350), got[0].Amount)
	// Among equal totals the first-seen category comes first.
	assert.Equal(t, expense.Shopping, got[1].Category)
	assert.Equal(t, expense.Healthcare, got[2].Category)
	assert.Equal(t, expense.Transportation, got[3].Category)
}

func TestCategoryTotals(t *testing.T) {
	records := seedRecords(t)

	got := aggregate.CategoryTotals(records, expense.Categories())
	require.Len(t, got, len(expense.Categories()))

	for i, c := range expense.Categories() {
		assert.Equal(t, c, got[i].Category)
	}

	assert.Equal(t, aggregate.CategoryTotal{Category: expense.Shopping, Total: 12000, Count: 1}, got[2])
	assert.Equal(t, aggregate.CategoryTotal{Category: expense.Healthcare}, got[5])

	var sum expense.Money
	for _, ct := range got {
		sum += ct.Total
	}

	assert.Equal(t, aggregate.TotalAll(records), sum)

	subset := aggregate.CategoryTotals(records, []expense.Category{expense.Travel, expense.FoodDining})
	assert.Equal(t, []aggregate.CategoryTotal{
		{Category: expense.Travel},
		{Category: expense.FoodDining, Total: 2550, Count: 1},
	}, subset)
}

func TestFilterAndSort(t *testing.T) {
	records := seedRecords(t)

	tests := []struct {
		name   string
		filter aggregate.Filter
		want   []string
	}{
		{
			name:   "Default",
			filter: aggregate.Filter{},
			want:   []string{"Lunch at local cafe", "Gas for car", "Grocery shopping", "Movie ticket", "Internet bill"},
		},
		{
			name:   "SearchDescription",
			filter: aggregate.Filter{Search: "gas"},
			want:   []string{"Gas for car"},
		},
		{
			name:   "SearchMatchesCategoryName",
			filter: aggregate.Filter{Search: "ING"},
			want:   []string{"Lunch at local cafe", "Grocery shopping"},
		},
		{
			name:   "SearchNoMatch",
			filter: aggregate.Filter{Search: "rent"},
			want:   []string{},
		},
		{
			name:   "Category",
			filter: aggregate.Filter{Category: expense.Entertainment},
			want:   []string{"Movie ticket"},
		},
		{
			name:   "CategoryAndSearch",
			filter: aggregate.Filter{Category: expense.Shopping, Search: "gas"},
			want:   []string{},
		},
		{
			name:   "DateAsc",
			filter: aggregate.Filter{Sort: aggregate.SortDateAsc},
			want:   []string{"Internet bill", "Movie ticket", "Grocery shopping", "Gas for car", "Lunch at local cafe"},
		},
		{
			name:   "AmountDesc",
			filter: aggregate.Filter{Sort: aggregate.SortAmountDesc},
			want:   []string{"Grocery shopping", "Internet bill", "Gas for car", "Lunch at local cafe", "Movie ticket"},
		},
		{
			name:   "AmountAsc",
			filter: aggregate.Filter{Sort: aggregate.SortAmountAsc},
			want:   []string{"Movie ticket", "Lunch at local cafe", "Gas for car", "Internet bill", "Grocery shopping"},
		},
		{
			name:   "SortCategory",
			filter: aggregate.Filter{Sort: aggregate.SortCategory},
			want:   []string{"Internet bill", "Movie ticket", "Lunch at local cafe", "Grocery shopping", "Gas for car"},
		},
		{
			name:   "UnknownSortFallsBack",
			filter: aggregate.Filter{Sort: "price"},
			want:   []string{"Lunch at local cafe", "Gas for car", "Grocery shopping", "Movie ticket", "Internet bill"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, descriptions(aggregate.FilterAndSort(records, tt.filter)))
		})
	}
}

func TestFilterAndSort_StableAndPure(t *testing.T) {
	day := expense.NewDate(2025, time.August, 1)
	at := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	records := []expense.Expense{
		rec(100, expense.Other, "a", day, at),
		rec(200, expense.Other, "b", day.AddDays(1), at),
		rec(100, expense.Other, "c", day, at),
	}

	assert.Equal(t, []string{"b", "a", "c"}, descriptions(aggregate.FilterAndSort(records, aggregate.Filter{})))
	assert.Equal(t, []string{"a", "c", "b"}, descriptions(aggregate.FilterAndSort(records, aggregate.Filter{Sort: aggregate.SortAmountAsc})))
	assert.Equal(t, []string{"a", "b", "c"}, descriptions(records))
}

func TestFilterAndSort_UnicodeFolding(t *testing.T) {
	day := expense.NewDate(2025, time.August, 1)
	at := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	records := []expense.Expense{
		rec(100, expense.FoodDining, "Éclair at the bakery", day, at),
		rec(100, expense.FoodDining, "Dinner", day, at),
	}

	got := aggregate.FilterAndSort(records, aggregate.Filter{Search: "éCLAIR", Category: expense.FoodDining})
	assert.Equal(t, []string{"Éclair at the bakery"}, descriptions(got))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, aggregate.SortAmountAsc, aggregate.ParseSortKey("amount-asc"))
	assert.Equal(t, aggregate.SortCategory, aggregate.ParseSortKey(" Category "))
	assert.Equal(t, aggregate.SortDateDesc, aggregate.ParseSortKey(""))
	assert.Equal(t, aggregate.SortDateDesc, aggregate.ParseSortKey("newest"))
}

func TestSummarize(t *testing.T) {
	records := seedRecords(t)
	now := time.Date(2025, time.August, 15, 20, 0, 0, 0, time.UTC)

	d := aggregate.Summarize(records, ledger.DefaultBudget, now)

	assert.Equal(t, expense.Money(29149), d.Total)
	assert.Equal(t, expense.Money(29149), d.ThisMonth)
	assert.Equal(t, expense.Money(29149), d.ThisWeek)
	assert.Equal(t, expense.Money(120851), d.Remaining)
	assert.True(t, d.HasProgress)
	assert.InDelta(t, 19.43, d.Progress, 0.01)
	assert.False(t, d.Warning)
	assert.Len(t, d.Recent, 5)
	assert.Len(t, d.Breakdown, 5)
	assert.Len(t, d.Categories, 8)
}

func TestSummarize_Warning(t *testing.T) {
	records := seedRecords(t)
	now := time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC)

	d := aggregate.Summarize(records, 30000, now)
	assert.True(t, d.Warning)
	assert.Equal(t, expense.Money(0), d.ThisWeek)
	assert.Equal(t, expense.Money(851), d.Remaining)

	d = aggregate.Summarize(records, 20000, now)
	assert.True(t, d.Warning)
	assert.InDelta(t, 100, d.Progress, 1e-9)
	assert.Equal(t, expense.Money(-9149), d.Remaining)

	d = aggregate.Summarize(nil, 0, now)
	assert.False(t, d.HasProgress)
	assert.False(t, d.Warning)
	assert.Empty(t, d.Recent)
	assert.Empty(t, d.Breakdown)
}

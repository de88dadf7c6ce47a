package aggregate

import (
	"cmp"
	"slices"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

const (
	DefaultRecentLimit    = 5
	DefaultBreakdownLimit = 6
)

type CategoryAmount struct {
	Category expense.Category `json:"category"`
	Amount   expense.Money    `json:"amount"`
}

type CategoryTotal struct {
	Category expense.Category `json:"category"`
	Total    expense.Money    `json:"total"`
	Count    int              `json:"count"`
}

// RecentTransactions returns at most n records, newest CreatedAt first.
// Records created at the same instant keep their insertion order.
func RecentTransactions(records []expense.Expense, n int) []expense.Expense {
	sorted := clone(records)
	slices.SortStableFunc(sorted, func(a, b expense.Expense) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return truncate(sorted, n)
}

// CategoryBreakdown sums the records per category and returns the topN
// largest. Equal totals keep the order in which their category first
// appeared.
func CategoryBreakdown(records []expense.Expense, topN int) []CategoryAmount {
	breakdown := []CategoryAmount{}
	index := make(map[expense.Category]int)

	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(breakdown)
			index[r.Category] = i
			breakdown = append(breakdown, CategoryAmount{Category: r.Category})
		}

		breakdown[i].Amount += r.Amount
	}

	slices.SortStableFunc(breakdown, func(a, b CategoryAmount) int {
		return cmp.Compare(b.Amount, a.Amount)
	})

	return truncate(breakdown, topN)
}

// CategoryTotals returns one entry per requested category, in the given
// order, including categories without any records.
func CategoryTotals(records []expense.Expense, categories []expense.Category) []CategoryTotal {
	totals := make([]CategoryTotal, len(categories))
	index := make(map[expense.Category]int, len(categories))

	for i, c := range categories {
		totals[i].Category = c
		index[c] = i
	}

	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			continue
		}

		totals[i].Total += r.Amount
		totals[i].Count++
	}

	return totals
}

func truncate[T any](s []T, n int) []T {
	n = max(n, 0)
	if len(s) > n {
		return s[:n]
	}

	return s
}

// clone returns a non-nil copy.
func clone(records []expense.Expense) []expense.Expense {
	return append(make([]expense.Expense, 0, len(records)), records...)
}

package aggregate

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// WarningThreshold is the budget progress percentage from which the
// dashboard flags the month.
const WarningThreshold = 90.0

type Dashboard struct {
	Total     expense.Money `json:"total"`
	ThisMonth expense.Money `json:"thisMonth"`
	ThisWeek  expense.Money `json:"thisWeek"`

	Budget    expense.Money `json:"budget"`
	Remaining expense.Money `json:"remaining"`
	// Progress is only meaningful when HasProgress is set.
	Progress    float64 `json:"progress"`
	HasProgress bool    `json:"hasProgress"`
	Warning     bool    `json:"warning"`

	Recent     []expense.Expense `json:"recent"`
	Breakdown  []CategoryAmount  `json:"breakdown"`
	Categories []CategoryTotal   `json:"categories"`
}

// Summarize computes the dashboard as of now. Month and week figures use
// now's calendar date.
func Summarize(records []expense.Expense, budget expense.Money, now time.Time) Dashboard {
	today := expense.DateOf(now)
	month := TotalInMonth(records, today.Month(), today.Year())
	progress, ok := BudgetProgressPercent(budget, month)

	return Dashboard{
		Total:       TotalAll(records),
		ThisMonth:   month,
		ThisWeek:    TotalInWeek(records, WeekStart(now), today),
		Budget:      budget,
		Remaining:   BudgetRemaining(budget, month),
		Progress:    progress,
		HasProgress: ok,
		Warning:     ok && progress >= WarningThreshold,
		Recent:      RecentTransactions(records, DefaultRecentLimit),
		Breakdown:   CategoryBreakdown(records, DefaultBreakdownLimit),
		Categories:  CategoryTotals(records, expense.Categories()),
	}
}

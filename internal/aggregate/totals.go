// Package aggregate derives totals, budget figures and filtered views from a
// list of expenses. Every function is pure and leaves its input untouched.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

var hundred = decimal.NewFromInt(100)

func TotalAll(records []expense.Expense) expense.Money {
	var total expense.Money
	for _, r := range records {
		total += r.Amount
	}

	return total
}

// TotalInMonth sums the records whose Date falls in the given month.
func TotalInMonth(records []expense.Expense, month time.Month, year int) expense.Money {
	var total expense.Money

	for _, r := range records {
		if r.Date.InMonth(month, year) {
			total += r.Amount
		}
	}

	return total
}

// WeekStart returns the Sunday on or before now's calendar date.
func WeekStart(now time.Time) expense.Date {
	today := expense.DateOf(now)
	return today.AddDays(-int(today.Weekday()))
}

// TotalInWeek sums the records dated between weekStart and today, both
// inclusive.
func TotalInWeek(records []expense.Expense, weekStart, today expense.Date) expense.Money {
	var total expense.Money

	for _, r := range records {
		if r.Date.Before(weekStart) || r.Date.After(today) {
			continue
		}

		total += r.Amount
	}

	return total
}

// BudgetRemaining is negative once spending exceeds the budget.
func BudgetRemaining(budget, spent expense.Money) expense.Money {
	return budget - spent
}

// BudgetProgressPercent returns spent as a percentage of budget, capped at
// 100. ok is false when the budget is not positive.
func BudgetProgressPercent(budget, spent expense.Money) (percent float64, ok bool) {
	if budget <= 0 {
		return 0, false
	}

	p := spent.Decimal().Mul(hundred).Div(budget.Decimal()).InexactFloat64()

	return min(p, 100), true
}

package view

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// expenseFields holds the huh form bindings. Models keep it behind a pointer
// so the bindings survive the model being copied by bubbletea.
type expenseFields struct {
	amount      string
	category    expense.Category
	description string
	date        string
}

func newExpenseFields(today expense.Date) *expenseFields {
	return &expenseFields{
		category: expense.FoodDining,
		date:     today.String(),
	}
}

func fieldsFrom(e expense.Expense) *expenseFields {
	return &expenseFields{
		amount:      e.Amount.String(),
		category:    e.Category,
		description: e.Description,
		date:        e.Date.String(),
	}
}

func (f *expenseFields) params() (ledger.Params, error) {
	amount, err := expense.ParseMoney(f.amount)
	if err != nil {
		return ledger.Params{}, err
	}

	date, err := expense.ParseDate(f.date)
	if err != nil {
		return ledger.Params{}, err
	}

	return ledger.Params{
		Amount:      amount,
		Category:    f.category,
		Description: strings.TrimSpace(f.description),
		Date:        date,
	}, nil
}

func categoryOptions() []huh.Option[expense.Category] {
	opts := make([]huh.Option[expense.Category], 0, len(expense.Categories()))
	for _, c := range expense.Categories() {
		info := c.Info()
		opts = append(opts, huh.NewOption(info.Icon+" "+info.Name, c))
	}

	return opts
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("amount is required")
	}

	m, err := expense.ParseMoney(s)
	if err != nil {
		return errors.New("enter a number like 250 or 99.50")
	}

	if m < 0 {
		return errors.New("amount cannot be negative")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := expense.ParseDate(s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func newExpenseForm(title string, f *expenseFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(title).
				Description("Amount (₹)").
				Placeholder("0.00").
				Value(&f.amount).
				Validate(validateAmount),

			huh.NewSelect[expense.Category]().
				Key("category").
				Title("Category").
				Options(categoryOptions()...).
				Value(&f.category),

			huh.NewInput().
				Key("description").
				Title("Description").
				Placeholder("optional").
				Value(&f.description),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.date).
				Validate(validateDate),
		),
	).WithWidth(45).WithShowHelp(false)
}

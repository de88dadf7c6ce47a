package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// Store keys.
const (
	KeyExpenses = "expenses"
	KeyBudget   = "budget"
)

// record is the stored shape of an expense.
type record struct {
	ID          uuid.UUID        `json:"id"`
	Amount      expense.Money    `json:"amount"`
	Category    expense.Category `json:"category"`
	Description string           `json:"description"`
	Date        expense.Date     `json:"date"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func encodeExpenses(expenses []expense.Expense) (string, error) {
	records := make([]record, len(expenses))
	for i, e := range expenses {
		records[i] = record(e)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshalling expenses: %w", err)
	}

	return string(data), nil
}

func decodeExpenses(raw string) ([]expense.Expense, error) {
	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("unmarshalling expenses: %w", err)
	}

	expenses := make([]expense.Expense, 0, len(records))
	seen := make(map[uuid.UUID]struct{}, len(records))

	for i, r := range records {
		e := expense.Expense(r)
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %s", i, e.ID)
		}

		seen[e.ID] = struct{}{}

		expenses = append(expenses, e)
	}

	return expenses, nil
}

func encodeBudget(budget expense.Money) string {
	return budget.Decimal().String()
}

func decodeBudget(raw string) (expense.Money, error) {
	budget, err := expense.ParseMoney(raw)
	if err != nil {
		return 0, err
	}

	if budget <= 0 {
		return 0, fmt.Errorf("budget %s is not positive", budget)
	}

	return budget, nil
}

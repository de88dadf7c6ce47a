package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type expenseResponse struct {
	ID          uuid.UUID        `json:"id"`
	Amount      expense.Money    `json:"amount"`
	Category    expense.Category `json:"category"`
	Description string           `json:"description"`
	Label       string           `json:"label"`
	Date        expense.Date     `json:"date"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func toResponse(e expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Label:       e.Label(),
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func toResponseList(records []expense.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(records))
	for _, e := range records {
		out = append(out, toResponse(e))
	}

	return out
}

package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents a single recorded expense.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	Amount      Money     `json:"amount"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Date        Date      `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Label is the text shown for the expense: its description, or the category
// name when the description is empty.
func (e Expense) Label() string {
	if e.Description != "" {
		return e.Description
	}

	return e.Category.String()
}

// Validate checks the user-editable fields of the expense.
func (e Expense) Validate() error {
	if e.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	if e.Amount > MaxAmount {
		return &ValidationError{Field: "amount", Reason: "out of range"}
	}

	if !e.Category.Valid() {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}

	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "missing date"}
	}

	if e.Date.Year() < MinYear {
		return &ValidationError{Field: "date", Reason: "out of range"}
	}

	return nil
}

// ValidationError reports a field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

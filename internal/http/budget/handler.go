package budget

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/api"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	ledger *ledger.Ledger
	now    func() time.Time
}

func NewHandler(l *ledger.Ledger, now func() time.Time) *Handler {
	return &Handler{ledger: l, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.set)
}

type budgetRequest struct {
	Budget expense.Money `json:"budget"`
}

type budgetResponse struct {
	Budget expense.Money `json:"budget"`
	Month  MonthOverview `json:"month"`
}

// MonthOverview is the spending of one month measured against the budget.
type MonthOverview struct {
	Year        int           `json:"year"`
	Month       time.Month    `json:"month"`
	Spent       expense.Money `json:"spent"`
	Remaining   expense.Money `json:"remaining"`
	Progress    float64       `json:"progress"`
	HasProgress bool          `json:"hasProgress"`
	Warning     bool          `json:"warning"`
}

// Overview computes the MonthOverview for the given month.
func Overview(snap ledger.Snapshot, month time.Month, year int) MonthOverview {
	spent := aggregate.TotalInMonth(snap.Records(), month, year)
	progress, ok := aggregate.BudgetProgressPercent(snap.Budget(), spent)

	return MonthOverview{
		Year:        year,
		Month:       month,
		Spent:       spent,
		Remaining:   aggregate.BudgetRemaining(snap.Budget(), spent),
		Progress:    progress,
		HasProgress: ok,
		Warning:     ok && progress >= aggregate.WarningThreshold,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK)
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ledger.SetBudget(r.Context(), req.Budget); err != nil {
		api.Error(w, err)
		return
	}

	h.respond(w, http.StatusOK)
}

func (h *Handler) respond(w http.ResponseWriter, status int) {
	snap := h.ledger.Snapshot()
	today := expense.DateOf(h.now())

	api.JSON(w, status, budgetResponse{
		Budget: snap.Budget(),
		Month:  Overview(snap, today.Month(), today.Year()),
	})
}

package stats

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/api"
	"github.com/MrJamesThe3rd/tally/internal/http/budget"
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
	r.Get("/dashboard", h.dashboard)
	r.Get("/month", h.month)
	r.Get("/recent", h.recent)
	r.Get("/breakdown", h.breakdown)
	r.Get("/categories", h.categories)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.ledger.Snapshot()

	api.JSON(w, http.StatusOK, aggregate.Summarize(snap.Records(), snap.Budget(), h.now()))
}

// month defaults to the current month; year and month narrow it.
func (h *Handler) month(w http.ResponseWriter, r *http.Request) {
	today := expense.DateOf(h.now())
	q := r.URL.Query()

	year, err := api.Int(q, "year", today.Year())
	if err != nil {
		api.Error(w, err)
		return
	}

	month, err := api.Int(q, "month", int(today.Month()))
	if err != nil {
		api.Error(w, err)
		return
	}

	if month < 1 || month > 12 {
		api.Error(w, &expense.ValidationError{Field: "month", Reason: "must be between 1 and 12"})
		return
	}

	api.JSON(w, http.StatusOK, budget.Overview(h.ledger.Snapshot(), time.Month(month), year))
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	n, err := api.Int(r.URL.Query(), "n", aggregate.DefaultRecentLimit)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, aggregate.RecentTransactions(h.ledger.Snapshot().Records(), n))
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	top, err := api.Int(r.URL.Query(), "top", aggregate.DefaultBreakdownLimit)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, aggregate.CategoryBreakdown(h.ledger.Snapshot().Records(), top))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, aggregate.CategoryTotals(h.ledger.Snapshot().Records(), expense.Categories()))
}

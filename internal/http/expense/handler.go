package expense

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/api"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	ledger *ledger.Ledger
}

func NewHandler(l *ledger.Ledger) *Handler {
	return &Handler{ledger: l}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type expenseRequest struct {
	Amount      expense.Money    `json:"amount"`
	Category    expense.Category `json:"category"`
	Description string           `json:"description"`
	Date        expense.Date     `json:"date"`
}

func (req expenseRequest) params() ledger.Params {
	return ledger.Params{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := api.Filter(r.URL.Query())
	if err != nil {
		api.Error(w, err)
		return
	}

	records := aggregate.FilterAndSort(h.ledger.Snapshot().Records(), filter)

	api.JSON(w, http.StatusOK, toResponseList(records))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.ledger.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, ok := h.ledger.Get(id)
	if !ok {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	e, found, err := h.ledger.Update(r.Context(), id, req.params())
	if !found {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(e))
}

// delete succeeds whether or not the expense existed.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := h.ledger.Delete(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

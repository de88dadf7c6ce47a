package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/api"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type categoryResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	categories := expense.Categories()

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		info := c.Info()
		resp = append(resp, categoryResponse{Name: info.Name, Color: info.Color, Icon: info.Icon})
	}

	api.JSON(w, http.StatusOK, resp)
}

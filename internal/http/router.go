package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/http/budget"
	"github.com/MrJamesThe3rd/tally/internal/http/category"
	"github.com/MrJamesThe3rd/tally/internal/http/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/http/stats"
)

type Handlers struct {
	Expenses   *expense.Handler
	Budget     *budget.Handler
	Stats      *stats.Handler
	Categories *category.Handler
	Import     *importcsv.Handler
	Export     *export.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Expenses.Routes(r)
		})

		r.Route("/budget", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budget.Routes(r)
		})

		r.Route("/stats", h.Stats.Routes)
		r.Route("/categories", h.Categories.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}

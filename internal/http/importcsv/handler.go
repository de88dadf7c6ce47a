package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/api"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int               `json:"imported"`
	Charset  string            `json:"charset"`
	Expenses []expense.Expense `json:"expenses"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.importSvc.Import(r.Context(), importer.FormatCSV, file)
	if err != nil {
		// Anything but a storage failure is a problem with the uploaded file.
		var pErr *ledger.PersistenceError
		if errors.As(err, &pErr) {
			api.Error(w, err)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	api.JSON(w, http.StatusCreated, importResponse{
		Imported: len(res.Created),
		Charset:  res.Charset,
		Expenses: append([]expense.Expense{}, res.Created...),
	})
}

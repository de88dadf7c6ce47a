// Package api holds the response and query helpers shared by the v1
// handlers.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps domain errors to status codes: validation failures are the
// client's fault, everything else is logged and reported as a 500.
func Error(w http.ResponseWriter, err error) {
	var vErr *expense.ValidationError
	if errors.As(err, &vErr) {
		http.Error(w, vErr.Error(), http.StatusBadRequest)
		return
	}

	var pErr *ledger.PersistenceError
	if errors.As(err, &pErr) {
		slog.Error("persistence failure", "op", pErr.Op, "key", pErr.Key, "error", pErr.Err)
	} else {
		slog.Error("request failed", "error", err)
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}

// Filter reads the q, category and sort query parameters.
func Filter(q url.Values) (aggregate.Filter, error) {
	f := aggregate.Filter{
		Search: q.Get("q"),
		Sort:   aggregate.ParseSortKey(q.Get("sort")),
	}

	if name := q.Get("category"); name != "" {
		c, err := expense.ParseCategory(name)
		if err != nil {
			return f, err
		}

		f.Category = c
	}

	return f, nil
}

// Int reads an integer query parameter, returning def when it is absent.
func Int(q url.Values, key string, def int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &expense.ValidationError{Field: key, Reason: "must be an integer"}
	}

	return n, nil
}

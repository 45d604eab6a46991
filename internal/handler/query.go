package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farmasys/orcamento-api/internal/report"
)

// Executor runs report queries against the database.
// Satisfied by *database.Client; narrow interface for testability.
type Executor interface {
	Execute(ctx context.Context, sqlText string, args ...any) (*report.QueryResult, error)
}

// QueryHandler handles the raw query endpoint.
type QueryHandler struct {
	db      Executor
	timeout time.Duration
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(db Executor, timeout time.Duration) *QueryHandler {
	return &QueryHandler{db: db, timeout: timeout}
}

// RegisterRoutes registers the query endpoint on the given Chi router.
func (h *QueryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/query", h.Run)
}

// Run executes the SELECT passed in ?sql= and returns the rows as a JSON
// array of objects. An empty result is valid here and returns [], unlike the
// report endpoints which treat it as not found. Validation failures never
// reach the database.
func (h *QueryHandler) Run(w http.ResponseWriter, r *http.Request) {
	sqlText := r.URL.Query().Get("sql")
	if err := ValidateSQL(sqlText); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.db.Execute(ctx, sqlText)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows := res.Rows
	if rows == nil {
		rows = []report.Row{}
	}
	writeJSON(w, http.StatusOK, rows)
}

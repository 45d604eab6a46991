package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farmasys/orcamento-api/internal/apperr"
	"github.com/farmasys/orcamento-api/internal/report"
)

// budgetLookupSQL is the canonical budget query used by the order-lookup
// variant (?nrorc=&filial=). Parameters are bound, never interpolated.
const budgetLookupSQL = `
SELECT o.NRORC, o.SERIEO, i.DESCR, i.QUANT, i.UNIDA,
       o.VOLUME, o.UNIVOL, o.PRCOBR, o.VRDSC, o.NOMEPAC, o.DTEMIS
  FROM FC15000 o
  LEFT JOIN FC15100 i ON i.NRORC = o.NRORC AND i.SERIEO = o.SERIEO
 WHERE o.NRORC = $1 AND o.FILIAL = $2
 ORDER BY o.SERIEO, i.ORDEM`

// ReportHandler handles the PDF and HTML budget report endpoints.
type ReportHandler struct {
	db      Executor
	logo    *report.Logo
	timeout time.Duration
}

// NewReportHandler creates a new ReportHandler. logo may be nil when the
// asset is absent; reports then render without it.
func NewReportHandler(db Executor, logo *report.Logo, timeout time.Duration) *ReportHandler {
	return &ReportHandler{db: db, logo: logo, timeout: timeout}
}

// RegisterRoutes registers the report endpoints on the given Chi router.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/pdf", h.PDF)
	r.Get("/html", h.HTML)
}

// PDF runs the query → group → layout pipeline and streams the paginated
// document as an attachment.
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	rc, err := h.buildContext(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := report.RenderPDF(rc, h.logo)
	if err != nil {
		writeError(w, r, apperr.Wrap(apperr.Render, "PDF generation failed", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(rc, "pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// HTML renders the same report as a standalone HTML document.
func (h *ReportHandler) HTML(w http.ResponseWriter, r *http.Request) {
	rc, err := h.buildContext(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := report.RenderHTML(rc, h.logo)
	if err != nil {
		writeError(w, r, apperr.Wrap(apperr.Render, "HTML generation failed", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(rc, "html"))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, out)
}

// buildContext resolves the SQL source (raw ?sql= or the ?nrorc=&filial=
// lookup), runs it and groups the rows. Zero rows map to a not-found
// failure: a report needs at least one row.
func (h *ReportHandler) buildContext(r *http.Request) (*report.ReportContext, error) {
	sqlText := r.URL.Query().Get("sql")
	var args []any

	if sqlText == "" {
		nrorc := r.URL.Query().Get("nrorc")
		filial := r.URL.Query().Get("filial")
		if nrorc == "" {
			return nil, apperr.New(apperr.Validation, "sql or nrorc parameter is required")
		}
		if filial == "" {
			return nil, apperr.New(apperr.Validation, "filial parameter is required")
		}
		sqlText = budgetLookupSQL
		args = []any{nrorc, filial}
	} else if err := ValidateSQL(sqlText); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.db.Execute(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}

	rc, err := report.Group(res)
	if err != nil {
		if errors.Is(err, report.ErrEmptyResult) {
			return nil, apperr.Wrap(apperr.EmptyResult, "no data found", err)
		}
		return nil, err
	}
	return rc, nil
}

func attachment(rc *report.ReportContext, ext string) string {
	name := rc.OrderNumber
	if name == "" {
		name = "relatorio"
	}
	return fmt.Sprintf("attachment; filename=orcamento_%s.%s", name, ext)
}

// Package report builds budget reports from raw query results: it groups
// result rows into formulations, computes totals, and renders the grouped
// structure as a paginated PDF or a standalone HTML page.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column names produced by the budget queries. The database layer normalizes
// result columns to upper case, so lookups here use these keys directly.
const (
	ColOrderNumber = "NRORC"
	ColSeries      = "SERIEO"
	ColDescription = "DESCR"
	ColQuantity    = "QUANT"
	ColUnit        = "UNIDA"
	ColVolume      = "VOLUME"
	ColVolumeUnit  = "UNIVOL"
	ColListPrice   = "PRCOBR"
	ColDiscount    = "VRDSC"
	ColPatientName = "NOMEPAC"
	ColOrderDate   = "DTEMIS"
)

// ValidityDays is how long a budget stays valid after its issue date.
const ValidityDays = 7

// Row is a single query result row, keyed by upper-case column name.
type Row map[string]any

// QueryResult is a raw query result: ordered column names plus rows.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// LineItem is one ingredient row within a formulation.
type LineItem struct {
	Description string
	Quantity    string
	Unit        string
}

// FormulationGroup bundles the line items and pricing of one formulation,
// identified by its (order, series) pair.
type FormulationGroup struct {
	OrderNumber string
	Series      string
	Items       []LineItem
	Volume      string
	VolumeUnit  string
	ListPrice   decimal.Decimal
	Discount    decimal.Decimal
}

// Total returns the formulation total: list price minus discount. Negative
// results (discount exceeding price) pass through unclamped so the grand
// total stays the exact sum of group totals.
func (g *FormulationGroup) Total() decimal.Decimal {
	return g.ListPrice.Sub(g.Discount)
}

// ReportContext is the request-scoped aggregate a render works from.
// Groups preserve first-seen order; items preserve row order.
type ReportContext struct {
	OrderNumber  string
	PatientName  string
	OrderDate    time.Time // zero when the source rows carry no issue date
	ValidityDate time.Time // OrderDate + ValidityDays; zero when OrderDate is zero
	Groups       []*FormulationGroup
}

// GrandTotal recomputes the sum of all group totals. It is never cached:
// the invariant is that it always equals the sum of the current groups.
func (rc *ReportContext) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, g := range rc.Groups {
		total = total.Add(g.Total())
	}
	return total
}

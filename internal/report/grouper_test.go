package report_test

import (
	"errors"
	"testing"
	"time"

	"github.com/farmasys/orcamento-api/internal/report"
)

func budgetRow(overrides report.Row) report.Row {
	row := report.Row{
		"NRORC":  "100",
		"SERIEO": "1",
		"DESCR":  "Item A",
		"QUANT":  "2",
		"UNIDA":  "UN",
		"VOLUME": "100",
		"UNIVOL": "ML",
		"PRCOBR": 50.00,
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func mustGroup(t *testing.T, rows ...report.Row) *report.ReportContext {
	t.Helper()
	rc, err := report.Group(&report.QueryResult{Rows: rows})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	return rc
}

func TestGroupSingleRow(t *testing.T) {
	rc := mustGroup(t, budgetRow(nil))

	if len(rc.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(rc.Groups))
	}
	g := rc.Groups[0]
	if len(g.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(g.Items))
	}
	if g.Items[0].Description != "Item A" {
		t.Errorf("expected description 'Item A', got %q", g.Items[0].Description)
	}
	if got := g.Total().StringFixed(2); got != "50.00" {
		t.Errorf("expected group total 50.00, got %s", got)
	}
	if got := rc.GrandTotal().StringFixed(2); got != "50.00" {
		t.Errorf("expected grand total 50.00, got %s", got)
	}
	if rc.OrderNumber != "100" {
		t.Errorf("expected order number 100, got %q", rc.OrderNumber)
	}
}

func TestGroupEmptyResult(t *testing.T) {
	_, err := report.Group(&report.QueryResult{})
	if !errors.Is(err, report.ErrEmptyResult) {
		t.Errorf("expected ErrEmptyResult, got %v", err)
	}

	_, err = report.Group(nil)
	if !errors.Is(err, report.ErrEmptyResult) {
		t.Errorf("expected ErrEmptyResult for nil result, got %v", err)
	}
}

func TestGroupBlankDescriptionAddsNoItem(t *testing.T) {
	rc := mustGroup(t,
		budgetRow(nil),
		budgetRow(report.Row{"DESCR": "   "}),
	)

	if len(rc.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(rc.Groups))
	}
	if len(rc.Groups[0].Items) != 1 {
		t.Errorf("blank description row must not add an item, got %d items", len(rc.Groups[0].Items))
	}
}

func TestGroupBlankDescriptionStillSeedsMetadata(t *testing.T) {
	// First row for the key has a blank description: no item, but the
	// group's volume and pricing come from it.
	rc := mustGroup(t,
		budgetRow(report.Row{"DESCR": "", "PRCOBR": 80.00, "VRDSC": 15.00}),
		budgetRow(report.Row{"DESCR": "Item B", "PRCOBR": 999.0}),
	)

	g := rc.Groups[0]
	if len(g.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(g.Items))
	}
	if got := g.Total().StringFixed(2); got != "65.00" {
		t.Errorf("metadata must come from the first row of the key: expected total 65.00, got %s", got)
	}
}

func TestGroupTwoSeriesUnderOneOrder(t *testing.T) {
	rc := mustGroup(t,
		budgetRow(report.Row{"SERIEO": "1", "PRCOBR": 50.00}),
		budgetRow(report.Row{"SERIEO": "2", "DESCR": "Item B", "PRCOBR": 30.00}),
	)

	if len(rc.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(rc.Groups))
	}
	if rc.Groups[0].Series != "1" || rc.Groups[1].Series != "2" {
		t.Errorf("groups must keep first-seen order, got series %q then %q",
			rc.Groups[0].Series, rc.Groups[1].Series)
	}
	if got := rc.GrandTotal().StringFixed(2); got != "80.00" {
		t.Errorf("expected grand total 80.00, got %s", got)
	}
}

func TestGroupDiscountApplied(t *testing.T) {
	rc := mustGroup(t, budgetRow(report.Row{"PRCOBR": 80.00, "VRDSC": 15.00}))

	if got := rc.Groups[0].Total().StringFixed(2); got != "65.00" {
		t.Errorf("expected total 65.00, got %s", got)
	}
	if got := rc.GrandTotal().StringFixed(2); got != "65.00" {
		t.Errorf("expected grand total 65.00, got %s", got)
	}
}

func TestGroupFirstRowWinsContextFields(t *testing.T) {
	first := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rc := mustGroup(t,
		budgetRow(report.Row{"NOMEPAC": "Maria Silva", "DTEMIS": first}),
		budgetRow(report.Row{
			"SERIEO":  "2",
			"NOMEPAC": "Outro Nome",
			"DTEMIS":  time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		}),
	)

	if rc.PatientName != "Maria Silva" {
		t.Errorf("patient name must come from the first row, got %q", rc.PatientName)
	}
	if !rc.OrderDate.Equal(first) {
		t.Errorf("order date must come from the first row, got %v", rc.OrderDate)
	}
	want := first.AddDate(0, 0, 7)
	if !rc.ValidityDate.Equal(want) {
		t.Errorf("expected validity date %v, got %v", want, rc.ValidityDate)
	}
}

func TestGroupItemsKeepRowOrder(t *testing.T) {
	rc := mustGroup(t,
		budgetRow(report.Row{"DESCR": "Primeiro"}),
		budgetRow(report.Row{"DESCR": "Segundo"}),
		budgetRow(report.Row{"DESCR": "Terceiro"}),
	)

	g := rc.Groups[0]
	want := []string{"Primeiro", "Segundo", "Terceiro"}
	if len(g.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(g.Items))
	}
	for i, w := range want {
		if g.Items[i].Description != w {
			t.Errorf("item %d: expected %q, got %q", i, w, g.Items[i].Description)
		}
	}
}

func TestGroupNullMoneyCoercesToZero(t *testing.T) {
	rc := mustGroup(t, budgetRow(report.Row{"PRCOBR": nil, "VRDSC": nil}))

	if got := rc.Groups[0].Total().StringFixed(2); got != "0.00" {
		t.Errorf("null price and discount must coerce to zero, got total %s", got)
	}
}

func TestGroupTextualDateParsed(t *testing.T) {
	rc := mustGroup(t, budgetRow(report.Row{"DTEMIS": "2026-03-10"}))

	if rc.OrderDate.IsZero() {
		t.Fatal("expected a parsed order date")
	}
	if got := rc.ValidityDate.Format("2006-01-02"); got != "2026-03-17" {
		t.Errorf("expected validity 2026-03-17, got %s", got)
	}
}

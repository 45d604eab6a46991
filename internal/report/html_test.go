package report_test

import (
	"strings"
	"testing"

	"github.com/farmasys/orcamento-api/internal/report"
)

func TestRenderHTMLStructure(t *testing.T) {
	out, err := report.RenderHTML(sampleContext(), nil)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}

	for _, want := range []string{
		"ORÇAMENTO: 100-2",
		"PACIENTE: Maria Silva",
		"Validade: 17/03/2026",
		"Formulação 01",
		"Formulação 02",
		"Minoxidil",
		"Volume: 100 ML",
		"Total: R$ 65.00",
		"Total: R$ 50.00",
		"TOTAL GERAL DO ORÇAMENTO: R$ 115.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
}

func TestRenderHTMLIdempotent(t *testing.T) {
	rc := sampleContext()

	first, err := report.RenderHTML(rc, nil)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := report.RenderHTML(rc, nil)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if first != second {
		t.Error("rendering the same context twice must yield identical output")
	}
}

func TestRenderHTMLOmitsEmptyOptionalFields(t *testing.T) {
	rc := &report.ReportContext{
		OrderNumber: "100",
		Groups:      sampleContext().Groups,
	}

	out, err := report.RenderHTML(rc, nil)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if strings.Contains(out, "PACIENTE") {
		t.Error("patient line must be omitted when no patient name is set")
	}
	if strings.Contains(out, "Validade") {
		t.Error("validity line must be omitted when no order date is set")
	}
	if strings.Contains(out, "<img") {
		t.Error("logo image must be omitted when no logo is configured")
	}
}

func TestRenderHTMLEmbedsLogo(t *testing.T) {
	logo := &report.Logo{Bytes: []byte{0x89, 0x50, 0x4E, 0x47}, Ext: ".png"}
	out, err := report.RenderHTML(sampleContext(), logo)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if !strings.Contains(out, "data:image/png;base64,") {
		t.Error("expected an embedded base64 logo")
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	rc := sampleContext()
	rc.Groups[0].Items[0].Description = `<script>alert("x")</script>`

	out, err := report.RenderHTML(rc, nil)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if strings.Contains(out, "<script>alert") {
		t.Error("item descriptions must be HTML-escaped")
	}
}

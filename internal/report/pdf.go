package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	bandBlue  = props.Color{Red: 200, Green: 220, Blue: 255}
	bandGray  = props.Color{Red: 230, Green: 230, Blue: 230}
	textWhite = props.Color{Red: 255, Green: 255, Blue: 255}
	bandDark  = props.Color{Red: 60, Green: 60, Blue: 60}
)

// Logo is an optional header image. A nil Logo (asset missing or unreadable)
// renders the header without it and never fails the request.
type Logo struct {
	Bytes []byte
	Ext   string // "png", "jpg" etc., without the dot
}

// RenderPDF lays the grouped budget out as a paginated A4 document: a
// repeating header with the logo and order/patient lines, per-formulation
// banded sections, a grand-total band, and a page-numbered footer. Each
// band and item row is one atomic layout row, so a block is never split
// across a page boundary; the library re-emits the registered header on
// every page it opens and substitutes the {current}/{total} placeholders
// once the final page count is known.
func RenderPDF(rc *ReportContext, logo *Logo) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: fmt.Sprintf("Orçamento: %s - Página {current}/{total}", rc.OrderNumber),
			Place:   props.Bottom,
			Size:    8,
		}).
		WithLeftMargin(10).
		WithTopMargin(12).
		WithRightMargin(10).
		WithCreationDate(pdfCreationDate(rc)).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(headerRows(rc, logo)...); err != nil {
		return nil, fmt.Errorf("register header: %w", err)
	}

	for i, g := range rc.Groups {
		addFormulation(m, i+1, g)
	}

	m.AddRow(4)
	m.AddRow(10,
		col.New(12).Add(
			text.New(fmt.Sprintf("TOTAL GERAL DO ORÇAMENTO: %s", FormatBRL(rc.GrandTotal())), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &textWhite,
				Top:   2,
			}),
		).WithStyle(&props.Cell{BackgroundColor: &bandDark}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// pdfCreationDate pins the document metadata date so rendering the same
// context twice yields identical bytes.
func pdfCreationDate(rc *ReportContext) time.Time {
	if !rc.OrderDate.IsZero() {
		return rc.OrderDate
	}
	return time.Unix(0, 0).UTC()
}

func headerRows(rc *ReportContext, logo *Logo) []core.Row {
	var left []core.Col
	if logo != nil && len(logo.Bytes) > 0 {
		left = append(left, image.NewFromBytesCol(3, logo.Bytes, logoExtension(logo.Ext), props.Rect{
			Percent: 90,
		}))
	} else {
		left = append(left, col.New(3))
	}

	right := []core.Component{
		text.New(fmt.Sprintf("ORÇAMENTO: %s-%d", rc.OrderNumber, len(rc.Groups)), props.Text{
			Size:  13,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	}
	offset := 6.0
	if rc.PatientName != "" {
		right = append(right, text.New(fmt.Sprintf("PACIENTE: %s", rc.PatientName), props.Text{
			Size:  10,
			Top:   offset,
			Align: align.Right,
		}))
		offset += 5
	}
	if !rc.ValidityDate.IsZero() {
		right = append(right, text.New(fmt.Sprintf("Validade: %s", rc.ValidityDate.Format("02/01/2006")), props.Text{
			Size:  9,
			Top:   offset,
			Align: align.Right,
		}))
	}

	header := row.New(20).Add(append(left, col.New(9).Add(right...))...)
	return []core.Row{header, row.New(3).Add(line.NewCol(12))}
}

func addFormulation(m core.Maroto, seq int, g *FormulationGroup) {
	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("Formulação %02d", seq), props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Left,
				Left:  2,
				Top:   1,
			}),
		).WithStyle(&props.Cell{BackgroundColor: &bandGray}),
	)

	m.AddRow(7,
		col.New(8).Add(
			text.New("Descrição", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left, Left: 2, Top: 1}),
		).WithStyle(&props.Cell{BackgroundColor: &bandBlue}),
		col.New(2).Add(
			text.New("Qtde", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1}),
		).WithStyle(&props.Cell{BackgroundColor: &bandBlue}),
		col.New(2).Add(
			text.New("Unid.", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Right: 2, Top: 1}),
		).WithStyle(&props.Cell{BackgroundColor: &bandBlue}),
	)

	for _, item := range g.Items {
		m.AddRow(itemRowHeight(item.Description),
			col.New(8).Add(
				text.New(item.Description, props.Text{Size: 9, Align: align.Left, Left: 2, Top: 1}),
			),
			col.New(2).Add(
				text.New(item.Quantity, props.Text{Size: 9, Align: align.Right, Top: 1}),
			),
			col.New(2).Add(
				text.New(item.Unit, props.Text{Size: 9, Align: align.Right, Right: 2, Top: 1}),
			),
		)
	}

	m.AddRow(1, line.NewCol(12))
	m.AddRow(7,
		col.New(6).Add(
			text.New(volumeLabel(g), props.Text{Size: 9, Align: align.Left, Left: 2, Top: 1}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Total: %s", FormatBRL(g.Total())), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
				Right: 2,
				Top:   1,
			}),
		),
	)
	m.AddRow(5)
}

// itemRowHeight widens rows for long descriptions that the text component
// will wrap onto a second line.
func itemRowHeight(desc string) float64 {
	if len(desc) > 70 {
		return 10
	}
	return 6
}

func volumeLabel(g *FormulationGroup) string {
	if g.Volume == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("Volume: %s %s", g.Volume, g.VolumeUnit))
}

func logoExtension(ext string) extension.Type {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return extension.Jpg
	default:
		return extension.Png
	}
}

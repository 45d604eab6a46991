package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/shopspring/decimal"
)

// RenderHTML produces a self-contained HTML version of the budget: same
// header, per-formulation sections and grand total as the PDF, without
// pagination. Currency values go through FormatBRL so both formats render
// identical numbers.
func RenderHTML(rc *ReportContext, logo *Logo) (string, error) {
	tmpl, err := template.New("orcamento").Funcs(template.FuncMap{
		"brl": FormatBRL,
		"seq": func(i int) string { return fmt.Sprintf("%02d", i+1) },
	}).Parse(budgetHTMLTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	data := htmlData{
		Ctx:        rc,
		GrandTotal: rc.GrandTotal(),
		GroupCount: len(rc.Groups),
	}
	if logo != nil && len(logo.Bytes) > 0 {
		data.LogoURI = template.URL(fmt.Sprintf("data:image/%s;base64,%s",
			logoMIMESubtype(logo.Ext), base64.StdEncoding.EncodeToString(logo.Bytes)))
	}
	if !rc.ValidityDate.IsZero() {
		data.Validity = rc.ValidityDate.Format("02/01/2006")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

type htmlData struct {
	Ctx        *ReportContext
	GrandTotal decimal.Decimal
	GroupCount int
	LogoURI    template.URL
	Validity   string
}

func logoMIMESubtype(ext string) string {
	if logoExtension(ext) == extension.Jpg {
		return "jpeg"
	}
	return "png"
}

const budgetHTMLTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Orçamento {{.Ctx.OrderNumber}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; color: #222; margin: 24px; }
  header { display: flex; justify-content: space-between; align-items: flex-start;
           border-bottom: 2px solid #3c3c3c; padding-bottom: 12px; }
  header img { max-height: 64px; }
  .order-info { text-align: right; }
  .order-info h1 { font-size: 18px; margin: 0; }
  .order-info p { margin: 2px 0; font-size: 13px; }
  section.formulation { margin-top: 18px; }
  .band { background: #e6e6e6; font-weight: bold; padding: 6px 8px; font-size: 14px; }
  table { width: 100%; border-collapse: collapse; margin-top: 4px; }
  th { background: #c8dcff; text-align: left; padding: 4px 8px; font-size: 12px; }
  th.num, td.num { text-align: right; }
  td { padding: 4px 8px; font-size: 12px; border-bottom: 1px solid #eee; }
  .totals { display: flex; justify-content: space-between; padding: 6px 8px;
            font-size: 13px; border-top: 1px solid #999; }
  .totals .total { font-weight: bold; }
  .grand-total { margin-top: 24px; background: #3c3c3c; color: #fff; font-weight: bold;
                 text-align: right; padding: 10px 12px; font-size: 15px; }
</style>
</head>
<body>
<header>
  <div>{{if .LogoURI}}<img src="{{.LogoURI}}" alt="logo">{{end}}</div>
  <div class="order-info">
    <h1>ORÇAMENTO: {{.Ctx.OrderNumber}}-{{.GroupCount}}</h1>
    {{- if .Ctx.PatientName}}
    <p>PACIENTE: {{.Ctx.PatientName}}</p>
    {{- end}}
    {{- if .Validity}}
    <p>Validade: {{.Validity}}</p>
    {{- end}}
  </div>
</header>
{{- range $i, $g := .Ctx.Groups}}
<section class="formulation">
  <div class="band">Formulação {{seq $i}}</div>
  <table>
    <tr><th>Descrição</th><th class="num">Qtde</th><th class="num">Unid.</th></tr>
    {{- range $g.Items}}
    <tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Unit}}</td></tr>
    {{- end}}
  </table>
  <div class="totals">
    <span>{{if $g.Volume}}Volume: {{$g.Volume}} {{$g.VolumeUnit}}{{end}}</span>
    <span class="total">Total: {{brl $g.Total}}</span>
  </div>
</section>
{{- end}}
<div class="grand-total">TOTAL GERAL DO ORÇAMENTO: {{brl .GrandTotal}}</div>
</body>
</html>
`
